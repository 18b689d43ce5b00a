package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

func TestAddressCreateReplaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", false)

	first, err := f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Pune", PinCode: "411001"})
	require.NoError(t, err)
	_, err = f.svc.Addresses.Create(ctx, bob, AddressInput{City: "Delhi"})
	require.NoError(t, err)
	second, err := f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Mumbai", PinCode: "400001"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, f.mem.Count("addresses"))

	mine, err := f.svc.Addresses.Mine(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", mine.City)
	assert.Equal(t, "400001", mine.PinCode)
	assert.Equal(t, "alice", mine.Name)
	assert.Equal(t, "alice@example.com", mine.Email)
	require.NotNil(t, mine.UserObj)
	assert.Equal(t, alice.ID, mine.UserObj.ID)
}

func TestAddressMineNotFound(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.svc.Addresses.Mine(context.Background(), f.user(t, "alice", false))
	assertKind(t, apperr.NotFound, err)
}

func TestAddressUpdateChecksOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	mallory := f.user(t, "mallory", false)
	admin := f.user(t, "root", true)

	address, err := f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Pune"})
	require.NoError(t, err)

	_, err = f.svc.Addresses.Update(ctx, mallory, address.ID, AddressInput{City: "Nowhere"})
	assertKind(t, apperr.Forbidden, err)

	_, err = f.svc.Addresses.Update(ctx, alice, primitive.NewObjectID(), AddressInput{City: "Nowhere"})
	assertKind(t, apperr.NotFound, err)

	byAdmin, err := f.svc.Addresses.Update(ctx, admin, address.ID, AddressInput{City: "Goa"})
	require.NoError(t, err)
	assert.Equal(t, "Goa", byAdmin.City)
	assert.Equal(t, alice.ID, byAdmin.UserObj)
	assert.Equal(t, "alice", byAdmin.Name)

	mine, err := f.svc.Addresses.Mine(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Goa", mine.City)
}

func TestAddressDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	mallory := f.user(t, "mallory", false)
	address, err := f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Pune"})
	require.NoError(t, err)

	_, err = f.svc.Addresses.Delete(ctx, alice, primitive.NewObjectID())
	assertKind(t, apperr.NotFound, err)
	_, err = f.svc.Addresses.Delete(ctx, mallory, address.ID)
	assertKind(t, apperr.Forbidden, err)
	assert.Equal(t, 1, f.mem.Count("addresses"))

	deleted, err := f.svc.Addresses.Delete(ctx, alice, address.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", deleted.City)
	assert.Equal(t, 0, f.mem.Count("addresses"))
}

func TestCartCreateReplaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	categoryID, subID := f.catalog(t, alice, "Tools")
	widget := f.product(t, alice, "Widget", categoryID, subID)
	gadget := f.product(t, alice, "Gadget", categoryID, subID)

	_, err := f.svc.Carts.Create(ctx, alice, CartInput{
		Products: []models.LineItem{{Product: widget.ID, Count: 1, Price: 50}},
		Total:    50, Tax: 5, GrandTotal: 55,
	})
	require.NoError(t, err)

	second, err := f.svc.Carts.Create(ctx, alice, CartInput{
		Products: []models.LineItem{{Product: gadget.ID, Count: 2, Price: 50}},
		Total:    100, Tax: 10, GrandTotal: 110,
	})
	require.NoError(t, err)
	require.NotNil(t, second.UserObj)
	assert.Equal(t, alice.ID, second.UserObj.ID)
	assert.Equal(t, 1, f.mem.Count("carts"))

	mine, err := f.svc.Carts.Mine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine.Products, 1)
	require.NotNil(t, mine.Products[0].Product)
	assert.Equal(t, "Gadget", mine.Products[0].Product.Title)
	assert.Equal(t, 2, mine.Products[0].Count)
	assert.Equal(t, 110.0, mine.GrandTotal)
}

func TestCartRejectsUnknownProductAndClears(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)

	_, err := f.svc.Carts.Create(ctx, alice, CartInput{
		Products: []models.LineItem{{Product: primitive.NewObjectID(), Count: 1, Price: 5}},
	})
	assertKind(t, apperr.NotFound, err)
	assert.Equal(t, 0, f.mem.Count("carts"))

	_, err = f.svc.Carts.Mine(ctx, alice)
	assertKind(t, apperr.NotFound, err)

	_, err = f.svc.Carts.Create(ctx, alice, CartInput{Products: []models.LineItem{}})
	require.NoError(t, err)
	require.NoError(t, f.svc.Carts.Clear(ctx, alice))
	assertKind(t, apperr.NotFound, f.svc.Carts.Clear(ctx, alice))
}

func TestOwnedUpsertRetriesAfterConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)

	f.mem.UpsertConflicts = 1
	address, err := f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, "Pune", address.City)
	assert.Equal(t, 1, f.mem.Count("addresses"))

	f.mem.UpsertConflicts = 1
	_, err = f.svc.Carts.Create(ctx, alice, CartInput{Products: []models.LineItem{}, Total: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, f.mem.Count("carts"))

	f.mem.UpsertConflicts = 2
	_, err = f.svc.Addresses.Create(ctx, alice, AddressInput{City: "Mumbai"})
	assertKind(t, apperr.Internal, err)
}
