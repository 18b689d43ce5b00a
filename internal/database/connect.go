package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/store"
)

const (
	UsersCollection         = "users"
	CategoriesCollection    = "categories"
	SubCategoriesCollection = "subCategories"
	ProductsCollection      = "products"
	AddressesCollection     = "addresses"
	CartsCollection         = "carts"
	OrdersCollection        = "orders"
)

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := Ping(connectCtx, client.Database("admin")); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func Ping(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

// NewStore wires every repository onto db.
func NewStore(db *mongo.Database) store.Store {
	return store.Store{
		Users:         &UserRepository{coll: db.Collection(UsersCollection)},
		Categories:    &CategoryRepository{coll: db.Collection(CategoriesCollection)},
		SubCategories: &SubCategoryRepository{coll: db.Collection(SubCategoriesCollection)},
		Products:      &ProductRepository{coll: db.Collection(ProductsCollection)},
		Addresses:     &AddressRepository{coll: db.Collection(AddressesCollection)},
		Carts:         &CartRepository{coll: db.Collection(CartsCollection)},
		Orders:        &OrderRepository{coll: db.Collection(OrdersCollection)},
	}
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	default:
		return err
	}
}
