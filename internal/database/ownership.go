package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/internal/store"
)

// replaceForOwner swaps the owner's document for doc in one upsert. The
// existing _id survives; the unique userObj index keeps it singular.
func replaceForOwner(ctx context.Context, coll *mongo.Collection, owner primitive.ObjectID, doc, out any) error {
	err := coll.FindOneAndReplace(
		ctx,
		bson.M{"userObj": owner},
		doc,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(out)
	return translate(err)
}

type AddressRepository struct {
	coll *mongo.Collection
}

func (r *AddressRepository) ReplaceForOwner(ctx context.Context, address models.Address) (models.Address, error) {
	address.ID = primitive.NilObjectID
	var saved models.Address
	err := replaceForOwner(ctx, r.coll, address.UserObj, address, &saved)
	return saved, err
}

func (r *AddressRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) (models.Address, error) {
	var address models.Address
	err := r.coll.FindOne(ctx, bson.M{"userObj": owner}).Decode(&address)
	return address, translate(err)
}

func (r *AddressRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Address, error) {
	var address models.Address
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	return address, translate(err)
}

func (r *AddressRepository) Replace(ctx context.Context, address models.Address) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": address.ID}, address)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

type CartRepository struct {
	coll *mongo.Collection
}

func (r *CartRepository) ReplaceForOwner(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.ID = primitive.NilObjectID
	if cart.Products == nil {
		cart.Products = []models.LineItem{}
	}
	var saved models.Cart
	err := replaceForOwner(ctx, r.coll, cart.UserObj, cart, &saved)
	return saved, err
}

func (r *CartRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userObj": owner}).Decode(&cart)
	return cart, translate(err)
}

func (r *CartRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	return deleted(r.coll.DeleteOne(ctx, bson.M{"userObj": owner}))
}
