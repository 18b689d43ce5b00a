package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/response"
	"storefront/internal/services"
)

type cartRequest struct {
	Products   []lineItemRequest `json:"products" binding:"required,dive"`
	Total      *float64          `json:"total" binding:"required,gte=0"`
	Tax        *float64          `json:"tax" binding:"required,gte=0"`
	GrandTotal *float64          `json:"grandTotal" binding:"required,gte=0"`
}

func CreateCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		cart, err := carts.Create(c.Request.Context(), user, services.CartInput{
			Products:   toLineItems(req.Products),
			Total:      *req.Total,
			Tax:        *req.Tax,
			GrandTotal: *req.GrandTotal,
		})
		if err != nil {
			response.Error(c, "CART", err)
			return
		}
		response.OK(c, "Cart is created Successfully!", cart)
	}
}

func GetMyCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		cart, err := carts.Mine(c.Request.Context(), user)
		if err != nil {
			response.Error(c, "CART", err)
			return
		}
		response.OK(c, "Cart Info", cart)
	}
}

func ClearMyCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		if err := carts.Clear(c.Request.Context(), user); err != nil {
			response.Error(c, "CART", err)
			return
		}
		response.OK(c, "Cart is Cleared!", nil)
	}
}
