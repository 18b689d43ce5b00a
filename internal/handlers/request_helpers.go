package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/response"
)

// actor returns the user UserAuth attached to the request.
func actor(c *gin.Context) (models.User, bool) {
	user, ok := auth.UserFrom(c.Request.Context())
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized, invalid token")
		return models.User{}, false
	}
	return user, true
}

type lineItemRequest struct {
	Product string   `json:"product" binding:"required,objectid"`
	Count   int      `json:"count" binding:"required,min=1"`
	Price   *float64 `json:"price" binding:"required,gte=0"`
}

func toLineItems(items []lineItemRequest) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.LineItem{
			Product: mustObjectID(item.Product),
			Count:   item.Count,
			Price:   *item.Price,
		})
	}
	return out
}
