package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/store"
)

type UserService struct {
	users  store.Users
	tokens *auth.Tokens
	cache  cache.Cache
	now    func() time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  models.User
}

// RoleUpdate leaves nil flags untouched.
type RoleUpdate struct {
	IsAdmin      *bool
	IsSuperAdmin *bool
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	email := normalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return apperr.Duplicate("User with this Email already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return apperr.Internalf(err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return apperr.Internalf(err)
	}

	now := s.now()
	user := models.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     email,
		Password:  hash,
		ImageURL:  auth.AvatarURL(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.Duplicate("User with this Email already exists")
		}
		return apperr.Internalf(err)
	}

	metrics.Registrations.Inc()
	logrus.WithFields(logrus.Fields{"area": "USER", "user_id": user.ID.Hex()}).Info("user registered")
	return nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, apperr.Internalf(err)
	}
	if err != nil || !auth.CheckPassword(user.Password, password) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return LoginResult{}, apperr.Unauthorized("Invalid Email or Password")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return LoginResult{}, apperr.Internalf(err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return LoginResult{Token: token, User: user}, nil
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, actor models.User, imageURL string) (models.User, error) {
	user, err := s.users.Update(ctx, actor.ID, store.UserUpdate{ImageURL: &imageURL})
	if err != nil {
		return models.User{}, notFoundOr(err, "User is not Found!")
	}
	invalidate(ctx, s.cache, cache.ProductsPrefix)
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor models.User, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Internalf(err)
	}
	user, err := s.users.Update(ctx, actor.ID, store.UserUpdate{Password: &hash})
	if err != nil {
		return models.User{}, notFoundOr(err, "User is not Found!")
	}
	logrus.WithFields(logrus.Fields{"area": "USER", "user_id": actor.ID.Hex()}).Info("password changed")
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor models.User) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internalf(err)
	}
	return users, nil
}

// UpdateRoles sets role flags on another account. Only a super admin may
// grant or revoke super admin.
func (s *UserService) UpdateRoles(ctx context.Context, actor models.User, id primitive.ObjectID, roles RoleUpdate) (models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return models.User{}, err
	}
	if roles.IsSuperAdmin != nil && !actor.IsSuperAdmin {
		return models.User{}, apperr.Denied("Only a super admin can change super admin access")
	}

	user, err := s.users.Update(ctx, id, store.UserUpdate{IsAdmin: roles.IsAdmin, IsSuperAdmin: roles.IsSuperAdmin})
	if err != nil {
		return models.User{}, notFoundOr(err, "The User does not exist!")
	}
	invalidate(ctx, s.cache, cache.ProductsPrefix)

	logrus.WithFields(logrus.Fields{
		"area":     "USER",
		"actor_id": actor.ID.Hex(),
		"user_id":  id.Hex(),
		"admin":    user.IsAdmin,
		"super":    user.IsSuperAdmin,
	}).Info("user roles updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor models.User, id primitive.ObjectID) (models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, notFoundOr(err, "User is not Found!")
	}
	if user.IsSuperAdmin && !actor.IsSuperAdmin {
		return models.User{}, apperr.Denied("Only a super admin can delete a super admin")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return models.User{}, notFoundOr(err, "User is not Found!")
	}

	invalidate(ctx, s.cache, cache.ProductsPrefix)
	logrus.WithFields(logrus.Fields{"area": "USER", "actor_id": actor.ID.Hex(), "user_id": id.Hex()}).Info("user deleted")
	return user, nil
}

// Promote grants admin, and optionally super admin, by email. It backs the
// promote command and bypasses the actor checks.
func (s *UserService) Promote(ctx context.Context, email string, super bool) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, notFoundOr(err, fmt.Sprintf("No user registered with %s", email))
	}

	grant := true
	update := store.UserUpdate{IsAdmin: &grant}
	if super {
		update.IsSuperAdmin = &grant
	}
	user, err = s.users.Update(ctx, user.ID, update)
	if err != nil {
		return models.User{}, notFoundOr(err, "User is not Found!")
	}
	invalidate(ctx, s.cache, cache.ProductsPrefix)
	return user, nil
}
