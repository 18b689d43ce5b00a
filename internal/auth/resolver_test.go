package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/store/storetest"
)

type failingUsers struct{ store.Users }

func (failingUsers) FindByID(context.Context, primitive.ObjectID) (models.User, error) {
	return models.User{}, errors.New("connection reset")
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	mem := storetest.New()
	users := mem.Store().Users
	tokens := NewTokens(testSecret, time.Hour)

	alice := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Insert(ctx, alice))

	valid, err := tokens.Issue(alice.ID.Hex(), alice.Email)
	require.NoError(t, err)
	ghost, err := tokens.Issue(primitive.NewObjectID().Hex(), "ghost@example.com")
	require.NoError(t, err)
	notAnID, err := tokens.Issue("not-an-object-id", "x@example.com")
	require.NoError(t, err)

	resolver := NewResolver(tokens, users)

	t.Run("valid token resolves user", func(t *testing.T) {
		user, err := resolver.Resolve(ctx, "Bearer "+valid)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	unauthenticated := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", valid},
		{"bad signature", "Bearer " + valid + "x"},
		{"deleted user", "Bearer " + ghost},
		{"non object id claim", "Bearer " + notAnID},
	}
	for _, tt := range unauthenticated {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, tt.header)
			assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
		})
	}

	t.Run("store failure is internal", func(t *testing.T) {
		_, err := NewResolver(tokens, failingUsers{users}).Resolve(ctx, "Bearer "+valid)
		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	})
}

func TestUserContext(t *testing.T) {
	_, ok := UserFrom(context.Background())
	assert.False(t, ok)

	user := models.User{ID: primitive.NewObjectID(), Username: "bob"}
	got, ok := UserFrom(WithUser(context.Background(), user))
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
}
