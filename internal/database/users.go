package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/internal/store"
)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := []models.User{}
	if len(ids) == 0 {
		return out, nil
	}
	return out, findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return out, findAll(ctx, r.coll, bson.M{}, opts, &out)
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, update store.UserUpdate) (models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.ImageURL != nil {
		set["imageUrl"] = *update.ImageURL
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.IsAdmin != nil {
		set["isAdmin"] = *update.IsAdmin
	}
	if update.IsSuperAdmin != nil {
		set["isSuperAdmin"] = *update.IsSuperAdmin
	}

	var user models.User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, out any) error {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = coll.Find(ctx, filter, opts)
	} else {
		cursor, err = coll.Find(ctx, filter)
	}
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	return deleted(coll.DeleteOne(ctx, bson.M{"_id": id}))
}

// deleted reports a delete that matched nothing as store.ErrNotFound.
func deleted(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res == nil || res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
