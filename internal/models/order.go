package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultOrderStatus = "Order Placed"

// Order documents are immutable apart from OrderStatus.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Products    []LineItem         `bson:"products" json:"products"`
	Total       float64            `bson:"total" json:"total"`
	Tax         float64            `bson:"tax" json:"tax"`
	GrandTotal  float64            `bson:"grandTotal" json:"grandTotal"`
	PaymentType string             `bson:"paymentType" json:"paymentType"`
	OrderStatus string             `bson:"orderStatus" json:"orderStatus"`
	OrderBy     primitive.ObjectID `bson:"orderBy" json:"orderBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderDetail struct {
	ID          primitive.ObjectID `json:"_id"`
	Products    []LineItemDetail   `json:"products"`
	Total       float64            `json:"total"`
	Tax         float64            `json:"tax"`
	GrandTotal  float64            `json:"grandTotal"`
	PaymentType string             `json:"paymentType"`
	OrderStatus string             `json:"orderStatus"`
	OrderBy     *User              `json:"orderBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
