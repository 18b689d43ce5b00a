package services

import (
	"context"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

type CartService struct {
	carts store.Carts
	exp   expander
	now   func() time.Time
}

// CartInput totals are taken as supplied; they are not recomputed.
type CartInput struct {
	Products   []models.LineItem
	Total      float64
	Tax        float64
	GrandTotal float64
}

// Create replaces the actor's cart, if any, with the given one.
func (s *CartService) Create(ctx context.Context, actor models.User, in CartInput) (models.CartDetail, error) {
	missing, err := s.exp.missingProducts(ctx, in.Products)
	if err != nil {
		return models.CartDetail{}, apperr.Internalf(err)
	}
	if len(missing) > 0 {
		return models.CartDetail{}, apperr.Missing("Product is not Found! " + missing[0].Hex())
	}

	now := s.now()
	cart := models.Cart{
		Products:   in.Products,
		Total:      in.Total,
		Tax:        in.Tax,
		GrandTotal: in.GrandTotal,
		UserObj:    actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	saved, err := upsertOwned(func() (models.Cart, error) {
		return s.carts.ReplaceForOwner(ctx, cart)
	})
	if err != nil {
		return models.CartDetail{}, apperr.Internalf(err)
	}

	detail, err := s.exp.cartDetail(ctx, saved)
	if err != nil {
		return models.CartDetail{}, apperr.Internalf(err)
	}
	return detail, nil
}

func (s *CartService) Mine(ctx context.Context, actor models.User) (models.CartDetail, error) {
	cart, err := s.carts.FindByOwner(ctx, actor.ID)
	if err != nil {
		return models.CartDetail{}, notFoundOr(err, "Cart is not Found!")
	}
	detail, err := s.exp.cartDetail(ctx, cart)
	if err != nil {
		return models.CartDetail{}, apperr.Internalf(err)
	}
	return detail, nil
}

func (s *CartService) Clear(ctx context.Context, actor models.User) error {
	if err := s.carts.DeleteByOwner(ctx, actor.ID); err != nil {
		return notFoundOr(err, "Cart is not Found!")
	}
	return nil
}
