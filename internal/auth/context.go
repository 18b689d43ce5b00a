package auth

import (
	"context"

	"storefront/internal/models"
)

type userKey struct{}

// WithUser attaches the resolved caller to ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
