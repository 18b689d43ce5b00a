package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the single shipping address a user keeps.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Flat      string             `bson:"flat" json:"flat"`
	Landmark  string             `bson:"landmark" json:"landmark"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Country   string             `bson:"country" json:"country"`
	PinCode   string             `bson:"pinCode" json:"pinCode"`
	UserObj   primitive.ObjectID `bson:"userObj" json:"userObj"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type AddressDetail struct {
	Address
	UserObj *User `json:"userObj"`
}
