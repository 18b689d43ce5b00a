package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexSpec struct {
	Collection string
	Model      mongo.IndexModel
}

func uniqueIndex(collection, field string) IndexSpec {
	return IndexSpec{
		Collection: collection,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetName(field + "_unique").SetUnique(true),
		},
	}
}

// Indexes lists every index the storefront relies on. The unique ones back
// the Conflict checks and the one-address/one-cart-per-user rule.
func Indexes() []IndexSpec {
	return []IndexSpec{
		uniqueIndex(UsersCollection, "email"),
		uniqueIndex(CategoriesCollection, "name"),
		uniqueIndex(SubCategoriesCollection, "name"),
		uniqueIndex(ProductsCollection, "title"),
		uniqueIndex(AddressesCollection, "userObj"),
		uniqueIndex(CartsCollection, "userObj"),
		{
			Collection: ProductsCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "categoryObj", Value: 1}},
				Options: options.Index().SetName("categoryObj_index"),
			},
		},
		{
			Collection: OrdersCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "orderBy", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("orderBy_createdAt_index"),
			},
		},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	for _, spec := range Indexes() {
		name := *spec.Model.Options.Name
		log := logrus.WithFields(logrus.Fields{"area": "DB", "collection": spec.Collection, "index": name})

		log.Debug("creating index")
		if _, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, spec.Model); err != nil {
			log.WithError(err).Error("index creation failed")
			return err
		}
		log.Info("index ensured")
	}
	return nil
}
