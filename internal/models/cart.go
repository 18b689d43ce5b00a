package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem is one product entry of a cart or an order. Price is the unit
// price supplied by the caller.
type LineItem struct {
	Product primitive.ObjectID `bson:"product" json:"product"`
	Count   int                `bson:"count" json:"count"`
	Price   float64            `bson:"price" json:"price"`
}

type LineItemDetail struct {
	Product *Product `json:"product"`
	Count   int      `json:"count"`
	Price   float64  `json:"price"`
}

// Cart totals are computed by the client and stored as given.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Products   []LineItem         `bson:"products" json:"products"`
	Total      float64            `bson:"total" json:"total"`
	Tax        float64            `bson:"tax" json:"tax"`
	GrandTotal float64            `bson:"grandTotal" json:"grandTotal"`
	UserObj    primitive.ObjectID `bson:"userObj" json:"userObj"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CartDetail struct {
	ID         primitive.ObjectID `json:"_id"`
	Products   []LineItemDetail   `json:"products"`
	Total      float64            `json:"total"`
	Tax        float64            `json:"tax"`
	GrandTotal float64            `json:"grandTotal"`
	UserObj    *User              `json:"userObj"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
