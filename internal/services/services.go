// Package services holds the storefront operations. Every mutating call
// takes the resolved caller as an explicit actor and runs its capability
// check before touching the store.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/store"
)

type Options struct {
	// CatalogAdminOnly restricts category, subcategory and product creation to admins.
	CatalogAdminOnly bool
	Cache            cache.Cache
	Now              func() time.Time
}

type Services struct {
	Users     *UserService
	Catalog   *CatalogService
	Products  *ProductService
	Addresses *AddressService
	Carts     *CartService
	Orders    *OrderService
}

func New(st store.Store, tokens *auth.Tokens, opts Options) *Services {
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	exp := expander{st: st}

	return &Services{
		Users:     &UserService{users: st.Users, tokens: tokens, cache: opts.Cache, now: opts.Now},
		Catalog:   &CatalogService{st: st, exp: exp, cache: opts.Cache, adminOnly: opts.CatalogAdminOnly, now: opts.Now},
		Products:  &ProductService{st: st, exp: exp, cache: opts.Cache, adminOnly: opts.CatalogAdminOnly, now: opts.Now},
		Addresses: &AddressService{addresses: st.Addresses, exp: exp, now: opts.Now},
		Carts:     &CartService{carts: st.Carts, exp: exp, now: opts.Now},
		Orders:    &OrderService{orders: st.Orders, exp: exp, now: opts.Now},
	}
}

// notFoundOr maps store.ErrNotFound to a NotFound error with msg and
// anything else to Internal.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Missing(msg)
	}
	return apperr.Internalf(err)
}

func invalidate(ctx context.Context, c cache.Cache, prefix string) {
	if err := c.DeletePrefix(ctx, prefix); err != nil {
		logrus.WithFields(logrus.Fields{"area": "CACHE", "prefix": prefix}).WithError(err).Warn("cache invalidation failed")
	}
}

// upsertOwned runs an owner-keyed upsert, retrying once when a concurrent
// upsert for the same owner won the insert on the unique index.
func upsertOwned[T any](upsert func() (T, error)) (T, error) {
	saved, err := upsert()
	if errors.Is(err, store.ErrDuplicate) {
		return upsert()
	}
	return saved, err
}
