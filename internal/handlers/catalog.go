package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/response"
	"storefront/internal/services"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func CreateCategory(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		category, err := catalog.CreateCategory(c.Request.Context(), user, req.Name, req.Description)
		if err != nil {
			response.Error(c, "CATEGORY", err)
			return
		}
		response.OK(c, "New Category is Created!", category)
	}
}

func CreateSubCategory(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		categoryID, ok := pathID(c, "categoryId")
		if !ok {
			return
		}
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		category, err := catalog.CreateSubCategory(c.Request.Context(), user, categoryID, req.Name, req.Description)
		if err != nil {
			response.Error(c, "CATEGORY", err)
			return
		}
		response.Created(c, "Sub Category is Created!", category)
	}
}

func ListCategories(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			response.Error(c, "CATEGORY", err)
			return
		}
		response.OK(c, "All Categories", categories)
	}
}
