package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	err := f.svc.Users.Register(ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	stored, err := f.mem.Store().Users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Pass", stored.Password)
	assert.Equal(t, auth.AvatarURL("alice@example.com"), stored.ImageURL)
	assert.False(t, stored.IsAdmin)

	res, err := f.svc.Users.Login(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, stored.ID, res.User.ID)

	claims, err := auth.NewTokens("test-secret", 0).Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), claims.ID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "Str0ng!Pass"}
	require.NoError(t, f.svc.Users.Register(ctx, in))

	in.Email = " ALICE@example.com"
	assertKind(t, apperr.Conflict, f.svc.Users.Register(ctx, in))
	assert.Equal(t, 1, f.mem.Count("users"))
}

func TestLoginFailuresIssueNoToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	require.NoError(t, f.svc.Users.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "Str0ng!Pass"}))

	res, err := f.svc.Users.Login(ctx, "alice@example.com", "wrong")
	assertKind(t, apperr.Unauthenticated, err)
	assert.Empty(t, res.Token)

	res, err = f.svc.Users.Login(ctx, "nobody@example.com", "Str0ng!Pass")
	assertKind(t, apperr.Unauthenticated, err)
	assert.Empty(t, res.Token)
}

func TestProfileAndPasswordTouchOnlyActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", false)

	updated, err := f.svc.Users.UpdateProfilePicture(ctx, alice, "https://img.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", updated.ImageURL)

	_, err = f.svc.Users.ChangePassword(ctx, alice, "N3w!Password")
	require.NoError(t, err)
	stored, err := f.mem.Store().Users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "N3w!Password"))

	untouched, err := f.mem.Store().Users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, untouched.ImageURL)
	assert.Empty(t, untouched.Password)
}

func TestUserAdministrationRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", false)
	admin := f.user(t, "root", true)
	yes := true

	_, err := f.svc.Users.List(ctx, alice)
	assertKind(t, apperr.Forbidden, err)
	_, err = f.svc.Users.UpdateRoles(ctx, alice, alice.ID, RoleUpdate{IsAdmin: &yes})
	assertKind(t, apperr.Forbidden, err)
	_, err = f.svc.Users.Delete(ctx, alice, bob.ID)
	assertKind(t, apperr.Forbidden, err)

	users, err := f.svc.Users.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	promoted, err := f.svc.Users.UpdateRoles(ctx, admin, alice.ID, RoleUpdate{IsAdmin: &yes})
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	_, err = f.svc.Users.UpdateRoles(ctx, admin, alice.ID, RoleUpdate{IsSuperAdmin: &yes})
	assertKind(t, apperr.Forbidden, err)

	_, err = f.svc.Users.UpdateRoles(ctx, admin, primitive.NewObjectID(), RoleUpdate{IsAdmin: &yes})
	assertKind(t, apperr.NotFound, err)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	admin := f.user(t, "root", true)
	bob := f.user(t, "bob", false)

	_, err := f.svc.Users.Delete(ctx, admin, primitive.NewObjectID())
	assertKind(t, apperr.NotFound, err)
	assert.Equal(t, 2, f.mem.Count("users"))

	deleted, err := f.svc.Users.Delete(ctx, admin, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", deleted.Username)
	assert.Equal(t, 1, f.mem.Count("users"))
}

func TestPromote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.user(t, "alice", false)

	user, err := f.svc.Users.Promote(ctx, "ALICE@example.com", true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsSuperAdmin)

	_, err = f.svc.Users.Promote(ctx, "ghost@example.com", false)
	assertKind(t, apperr.NotFound, err)
}
