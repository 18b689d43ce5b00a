package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/cache"
)

func TestCreateCategoryTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)

	created, err := f.svc.Catalog.CreateCategory(ctx, alice, "Shoes", "footwear")
	require.NoError(t, err)
	assert.Empty(t, created.SubCategories)

	_, err = f.svc.Catalog.CreateCategory(ctx, alice, "Shoes", "again")
	assertKind(t, apperr.Conflict, err)
	assert.Equal(t, 1, f.mem.Count("categories"))
}

func TestCreateSubCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)

	_, err := f.svc.Catalog.CreateSubCategory(ctx, alice, primitive.NewObjectID(), "Sneakers", "")
	assertKind(t, apperr.NotFound, err)
	assert.Equal(t, 0, f.mem.Count("subCategories"))

	shoes, err := f.svc.Catalog.CreateCategory(ctx, alice, "Shoes", "")
	require.NoError(t, err)
	bags, err := f.svc.Catalog.CreateCategory(ctx, alice, "Bags", "")
	require.NoError(t, err)

	detail, err := f.svc.Catalog.CreateSubCategory(ctx, alice, shoes.ID, "Sneakers", "running")
	require.NoError(t, err)
	require.Len(t, detail.SubCategories, 1)
	assert.Equal(t, "Sneakers", detail.SubCategories[0].Name)

	// Names are unique across parents.
	_, err = f.svc.Catalog.CreateSubCategory(ctx, alice, bags.ID, "Sneakers", "")
	assertKind(t, apperr.Conflict, err)
	assert.Equal(t, 1, f.mem.Count("subCategories"))
}

func TestCreateSubCategoryLeavesOrphanWhenParentUpdateFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	shoes, err := f.svc.Catalog.CreateCategory(ctx, alice, "Shoes", "")
	require.NoError(t, err)

	f.mem.FailAppendSubCategory = errors.New("write concern timeout")
	_, err = f.svc.Catalog.CreateSubCategory(ctx, alice, shoes.ID, "Sneakers", "")
	assertKind(t, apperr.Internal, err)
	assert.Equal(t, 1, f.mem.Count("subCategories"))
}

func TestListCategoriesIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	f.catalog(t, alice, "Shoes")

	list, err := f.svc.Catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Shoes-sub", list[0].SubCategories[0].Name)
	assert.True(t, f.cache.Has(cache.CategoriesKey))

	_, err = f.svc.Catalog.CreateCategory(ctx, alice, "Bags", "")
	require.NoError(t, err)
	assert.False(t, f.cache.Has(cache.CategoriesKey))

	list, err = f.svc.Catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCatalogAdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{CatalogAdminOnly: true})
	alice := f.user(t, "alice", false)
	admin := f.user(t, "root", true)

	_, err := f.svc.Catalog.CreateCategory(ctx, alice, "Shoes", "")
	assertKind(t, apperr.Forbidden, err)

	categoryID, subID := f.catalog(t, admin, "Shoes")
	_, err = f.svc.Products.Create(ctx, alice, ProductInput{Title: "Widget", CategoryObj: categoryID, SubCategoryObj: subID})
	assertKind(t, apperr.Forbidden, err)
}
