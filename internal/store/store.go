// Package store declares the persistence contracts the services depend on.
// internal/database implements them on MongoDB and storetest in memory.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type Users interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserUpdate sets only the non-nil fields.
type UserUpdate struct {
	ImageURL     *string
	Password     *string
	IsAdmin      *bool
	IsSuperAdmin *bool
}

type Categories interface {
	Insert(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	AppendSubCategory(ctx context.Context, categoryID, subCategoryID primitive.ObjectID) (models.Category, error)
}

type SubCategories interface {
	Insert(ctx context.Context, sub *models.SubCategory) error
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error)
}

// ProductFilter narrows a product listing. A zero CategoryID lists everything.
type ProductFilter struct {
	CategoryID primitive.ObjectID
}

type Products interface {
	Insert(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Replace(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Addresses keeps at most one document per owner. ReplaceForOwner is a
// single atomic upsert keyed on the owner.
type Addresses interface {
	ReplaceForOwner(ctx context.Context, address models.Address) (models.Address, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (models.Address, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Address, error)
	Replace(ctx context.Context, address models.Address) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Carts interface {
	ReplaceForOwner(ctx context.Context, cart models.Cart) (models.Cart, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (models.Cart, error)
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
}

// OrderFilter narrows an order listing. A zero OrderBy lists every order.
type OrderFilter struct {
	OrderBy primitive.ObjectID
}

type Orders interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	// List returns orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles every collection.
type Store struct {
	Users         Users
	Categories    Categories
	SubCategories SubCategories
	Products      Products
	Addresses     Addresses
	Carts         Carts
	Orders        Orders
}
