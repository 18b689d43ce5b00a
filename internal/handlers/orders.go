package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/response"
	"storefront/internal/services"
)

type placeOrderRequest struct {
	Products    []lineItemRequest `json:"products" binding:"required,min=1,dive"`
	Total       *float64          `json:"total" binding:"required,gte=0"`
	Tax         *float64          `json:"tax" binding:"required,gte=0"`
	GrandTotal  *float64          `json:"grandTotal" binding:"required,gte=0"`
	PaymentType string            `json:"paymentType" binding:"required"`
}

type orderStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

func PlaceOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := orders.Place(c.Request.Context(), user, services.OrderInput{
			Products:    toLineItems(req.Products),
			Total:       *req.Total,
			Tax:         *req.Tax,
			GrandTotal:  *req.GrandTotal,
			PaymentType: req.PaymentType,
		})
		if err != nil {
			response.Error(c, "ORDER", err)
			return
		}
		response.OK(c, "Order is placed Successfully!", order)
	}
}

func ListAllOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		all, err := orders.All(c.Request.Context(), user)
		if err != nil {
			response.Error(c, "ORDER", err)
			return
		}
		response.OK(c, "All Orders Info", all)
	}
}

func ListMyOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		mine, err := orders.Mine(c.Request.Context(), user)
		if err != nil {
			response.Error(c, "ORDER", err)
			return
		}
		response.OK(c, "My Orders Info", mine)
	}
}

func UpdateOrderStatus(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "orderId")
		if !ok {
			return
		}
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := orders.UpdateStatus(c.Request.Context(), user, id, req.OrderStatus)
		if err != nil {
			response.Error(c, "ORDER", err)
			return
		}
		response.OK(c, "Order Status Updated!", order)
	}
}

func DeleteOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "orderId")
		if !ok {
			return
		}

		order, err := orders.Delete(c.Request.Context(), user, id)
		if err != nil {
			response.Error(c, "ORDER", err)
			return
		}
		response.OK(c, "Order is Deleted!", order)
	}
}
