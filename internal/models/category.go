package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description" json:"description"`
	SubCategories []primitive.ObjectID `bson:"subCategories" json:"subCategories"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// SubCategory names are unique across all categories.
type SubCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}

// CategoryDetail is a Category with its subcategory references expanded.
type CategoryDetail struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	SubCategories []SubCategory      `json:"subCategories"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
