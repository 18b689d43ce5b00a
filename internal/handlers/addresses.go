package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/response"
	"storefront/internal/services"
)

type addressRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Flat     string `json:"flat" binding:"required"`
	Landmark string `json:"landmark" binding:"required"`
	Street   string `json:"street" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Country  string `json:"country" binding:"required"`
	PinCode  string `json:"pinCode" binding:"required"`
}

func (r addressRequest) input() services.AddressInput {
	return services.AddressInput{
		Mobile:   r.Mobile,
		Flat:     r.Flat,
		Landmark: r.Landmark,
		Street:   r.Street,
		City:     r.City,
		State:    r.State,
		Country:  r.Country,
		PinCode:  r.PinCode,
	}
}

func CreateAddress(addresses *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		address, err := addresses.Create(c.Request.Context(), user, req.input())
		if err != nil {
			response.Error(c, "ADDRESS", err)
			return
		}
		response.OK(c, "New Shipping Address is Added!", address)
	}
}

func GetMyAddress(addresses *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		address, err := addresses.Mine(c.Request.Context(), user)
		if err != nil {
			response.Error(c, "ADDRESS", err)
			return
		}
		response.OK(c, "Address Found", address)
	}
}

func UpdateAddress(addresses *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "addressId")
		if !ok {
			return
		}
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		address, err := addresses.Update(c.Request.Context(), user, id, req.input())
		if err != nil {
			response.Error(c, "ADDRESS", err)
			return
		}
		response.OK(c, "Shipping Address is Updated!", address)
	}
}

func DeleteAddress(addresses *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "addressId")
		if !ok {
			return
		}

		address, err := addresses.Delete(c.Request.Context(), user, id)
		if err != nil {
			response.Error(c, "ADDRESS", err)
			return
		}
		response.OK(c, "Shipping Address is Deleted Successfully!", address)
	}
}
