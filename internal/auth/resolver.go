package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

// Resolver turns an Authorization header into the caller's user record.
// It is the single authentication gate for protected routes.
type Resolver struct {
	verifier Verifier
	users    store.Users
}

func NewResolver(verifier Verifier, users store.Users) *Resolver {
	return &Resolver{verifier: verifier, users: users}
}

func (r *Resolver) Resolve(ctx context.Context, header string) (models.User, error) {
	raw, err := BearerToken(header)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Unauthenticated, "Unauthorized, invalid token", err)
	}

	claims, err := r.verifier.Verify(raw)
	if err != nil {
		msg := "Unauthorized, invalid token"
		if errors.Is(err, ErrExpiredToken) {
			msg = "Unauthorized, token expired"
		}
		return models.User{}, apperr.Wrap(apperr.Unauthenticated, msg, err)
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Unauthenticated, "Unauthorized, invalid token", err)
	}

	user, err := r.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		logrus.WithFields(logrus.Fields{"area": "AUTH", "user_id": claims.ID}).Warn("token for deleted user")
		return models.User{}, apperr.Unauthorized("Unauthorized, user not found")
	}
	if err != nil {
		return models.User{}, apperr.Internalf(err)
	}
	return user, nil
}
