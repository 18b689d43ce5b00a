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

type CategoryRepository struct {
	coll *mongo.Collection
}

func (r *CategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if category.SubCategories == nil {
		category.SubCategories = []primitive.ObjectID{}
	}
	_, err := r.coll.InsertOne(ctx, category)
	return translate(err)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	return category, translate(err)
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	out := []models.Category{}
	if len(ids) == 0 {
		return out, nil
	}
	return out, findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return out, findAll(ctx, r.coll, bson.M{}, opts, &out)
}

func (r *CategoryRepository) AppendSubCategory(ctx context.Context, categoryID, subCategoryID primitive.ObjectID) (models.Category, error) {
	var category models.Category
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": categoryID},
		bson.M{
			"$push": bson.M{"subCategories": subCategoryID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	return category, translate(err)
}

type SubCategoryRepository struct {
	coll *mongo.Collection
}

func (r *SubCategoryRepository) Insert(ctx context.Context, sub *models.SubCategory) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, sub)
	return translate(err)
}

func (r *SubCategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error) {
	out := []models.SubCategory{}
	if len(ids) == 0 {
		return out, nil
	}
	return out, findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
}

type ProductRepository struct {
	coll *mongo.Collection
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, product)
	return translate(err)
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, translate(err)
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	out := []models.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	return out, findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
}

func (r *ProductRepository) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if !filter.CategoryID.IsZero() {
		query["categoryObj"] = filter.CategoryID
	}
	out := []models.Product{}
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	return out, findAll(ctx, r.coll, query, opts, &out)
}

func (r *ProductRepository) Replace(ctx context.Context, product models.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
