package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	Brand          string             `bson:"brand" json:"brand"`
	Price          float64            `bson:"price" json:"price"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	CategoryObj    primitive.ObjectID `bson:"categoryObj" json:"categoryObj"`
	SubCategoryObj primitive.ObjectID `bson:"subCategoryObj" json:"subCategoryObj"`
	UserObj        primitive.ObjectID `bson:"userObj" json:"userObj"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductDetail is a Product with owner, category and subcategory expanded.
// A reference that no longer resolves is rendered as null.
type ProductDetail struct {
	ID             primitive.ObjectID `json:"_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	ImageURL       string             `json:"imageUrl"`
	Brand          string             `json:"brand"`
	Price          float64            `json:"price"`
	Quantity       int                `json:"quantity"`
	CategoryObj    *Category          `json:"categoryObj"`
	SubCategoryObj *SubCategory       `json:"subCategoryObj"`
	UserObj        *User              `json:"userObj"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
