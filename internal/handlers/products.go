package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/response"
	"storefront/internal/services"
)

type productRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	ImageURL       string   `json:"imageUrl" binding:"required"`
	Brand          string   `json:"brand" binding:"required"`
	Price          *float64 `json:"price" binding:"required,gte=0"`
	Quantity       *int     `json:"quantity" binding:"required,gte=0"`
	CategoryObj    string   `json:"categoryObj" binding:"required,objectid"`
	SubCategoryObj string   `json:"subCategoryObj" binding:"required,objectid"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		Title:          r.Title,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		Brand:          r.Brand,
		Price:          *r.Price,
		Quantity:       *r.Quantity,
		CategoryObj:    mustObjectID(r.CategoryObj),
		SubCategoryObj: mustObjectID(r.SubCategoryObj),
	}
}

func CreateProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product, err := products.Create(c.Request.Context(), user, req.input())
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "New Product is Created Successfully!", product)
	}
}

func UpdateProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product, err := products.Update(c.Request.Context(), user, id, req.input())
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "Product is Updated Successfully!", product)
	}
}

func ListProducts(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := products.List(c.Request.Context(), primitive.NilObjectID)
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "All Products", all)
	}
}

func ListProductsByCategory(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := pathID(c, "categoryId")
		if !ok {
			return
		}
		list, err := products.List(c.Request.Context(), categoryID)
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "All the products based on Category", list)
	}
}

func GetProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		product, err := products.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "Product Found", product)
	}
}

func DeleteProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}

		deleted, err := products.Delete(c.Request.Context(), user, id)
		if err != nil {
			response.Error(c, "PRODUCT", err)
			return
		}
		response.OK(c, "The Product "+deleted.Title+" is Deleted!", deleted)
	}
}
