package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/store/storetest"
)

type fixture struct {
	mem   *storetest.Memory
	cache *cache.Memory
	svc   *Services
	clock time.Time
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		mem:   storetest.New(),
		cache: cache.NewMemory(),
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	opts.Cache = f.cache
	opts.Now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	f.svc = New(f.mem.Store(), auth.NewTokens("test-secret", time.Hour), opts)
	return f
}

func (f *fixture) user(t *testing.T, name string, admin bool) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", IsAdmin: admin}
	require.NoError(t, f.mem.Store().Users.Insert(context.Background(), &u))
	return u
}

// catalog creates a category with one subcategory.
func (f *fixture) catalog(t *testing.T, actor models.User, name string) (primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	category, err := f.svc.Catalog.CreateCategory(ctx, actor, name, "")
	require.NoError(t, err)
	detail, err := f.svc.Catalog.CreateSubCategory(ctx, actor, category.ID, name+"-sub", "")
	require.NoError(t, err)
	require.Len(t, detail.SubCategories, 1)
	return category.ID, detail.SubCategories[0].ID
}

func (f *fixture) product(t *testing.T, actor models.User, title string, categoryID, subID primitive.ObjectID) models.Product {
	t.Helper()
	p, err := f.svc.Products.Create(context.Background(), actor, ProductInput{
		Title:          title,
		Price:          50,
		Quantity:       3,
		CategoryObj:    categoryID,
		SubCategoryObj: subID,
	})
	require.NoError(t, err)
	return p
}

func assertKind(t *testing.T, want apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperr.KindOf(err), "error: %v", err)
}
