package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/store"
)

type OrderService struct {
	orders store.Orders
	exp    expander
	now    func() time.Time
}

// OrderInput is stored as supplied: no stock is reserved and the payment
// type is only a label.
type OrderInput struct {
	Products    []models.LineItem
	Total       float64
	Tax         float64
	GrandTotal  float64
	PaymentType string
}

func (s *OrderService) Place(ctx context.Context, actor models.User, in OrderInput) (models.OrderDetail, error) {
	missing, err := s.exp.missingProducts(ctx, in.Products)
	if err != nil {
		return models.OrderDetail{}, apperr.Internalf(err)
	}
	if len(missing) > 0 {
		return models.OrderDetail{}, apperr.Missing("Product is not Found! " + missing[0].Hex())
	}

	now := s.now()
	order := models.Order{
		Products:    in.Products,
		Total:       in.Total,
		Tax:         in.Tax,
		GrandTotal:  in.GrandTotal,
		PaymentType: strings.TrimSpace(in.PaymentType),
		OrderStatus: models.DefaultOrderStatus,
		OrderBy:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orders.Insert(ctx, &order); err != nil {
		return models.OrderDetail{}, apperr.Internalf(err)
	}

	metrics.OrdersPlaced.Inc()
	logrus.WithFields(logrus.Fields{
		"area":        "ORDER",
		"order_id":    order.ID.Hex(),
		"user_id":     actor.ID.Hex(),
		"grand_total": order.GrandTotal,
	}).Info("order placed")

	details, err := s.exp.orderDetails(ctx, []models.Order{order})
	if err != nil {
		return models.OrderDetail{}, apperr.Internalf(err)
	}
	return details[0], nil
}

func (s *OrderService) All(ctx context.Context, actor models.User) ([]models.OrderDetail, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.list(ctx, store.OrderFilter{})
}

func (s *OrderService) Mine(ctx context.Context, actor models.User) ([]models.OrderDetail, error) {
	return s.list(ctx, store.OrderFilter{OrderBy: actor.ID})
}

func (s *OrderService) list(ctx context.Context, filter store.OrderFilter) ([]models.OrderDetail, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internalf(err)
	}
	details, err := s.exp.orderDetails(ctx, orders)
	if err != nil {
		return nil, apperr.Internalf(err)
	}
	return details, nil
}

// UpdateStatus changes only orderStatus. The author or an admin may call it.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.User, id primitive.ObjectID, status string) (models.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.OrderDetail{}, notFoundOr(err, "No Order Found!")
	}
	if err := requireOwnerOrAdmin(actor, order.OrderBy, "order"); err != nil {
		return models.OrderDetail{}, err
	}

	updated, err := s.orders.SetStatus(ctx, id, strings.TrimSpace(status))
	if err != nil {
		return models.OrderDetail{}, notFoundOr(err, "No Order Found!")
	}

	details, err := s.exp.orderDetails(ctx, []models.Order{updated})
	if err != nil {
		return models.OrderDetail{}, apperr.Internalf(err)
	}
	return details[0], nil
}

func (s *OrderService) Delete(ctx context.Context, actor models.User, id primitive.ObjectID) (models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Order{}, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, notFoundOr(err, "No Order Found!")
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return models.Order{}, notFoundOr(err, "No Order Found!")
	}
	return order, nil
}
