package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

type AddressService struct {
	addresses store.Addresses
	exp       expander
	now       func() time.Time
}

type AddressInput struct {
	Mobile   string
	Flat     string
	Landmark string
	Street   string
	City     string
	State    string
	Country  string
	PinCode  string
}

func (in AddressInput) apply(address *models.Address) {
	address.Mobile = in.Mobile
	address.Flat = in.Flat
	address.Landmark = in.Landmark
	address.Street = in.Street
	address.City = in.City
	address.State = in.State
	address.Country = in.Country
	address.PinCode = in.PinCode
}

// Create replaces the actor's address, if any, with a fresh one stamped
// with the actor's id, username and email.
func (s *AddressService) Create(ctx context.Context, actor models.User, in AddressInput) (models.Address, error) {
	now := s.now()
	address := models.Address{
		Name:      actor.Username,
		Email:     actor.Email,
		UserObj:   actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(&address)

	saved, err := upsertOwned(func() (models.Address, error) {
		return s.addresses.ReplaceForOwner(ctx, address)
	})
	if err != nil {
		return models.Address{}, apperr.Internalf(err)
	}
	return saved, nil
}

func (s *AddressService) Mine(ctx context.Context, actor models.User) (models.AddressDetail, error) {
	address, err := s.addresses.FindByOwner(ctx, actor.ID)
	if err != nil {
		return models.AddressDetail{}, notFoundOr(err, "No Address Found")
	}
	users, err := s.exp.users(ctx, []primitive.ObjectID{address.UserObj})
	if err != nil {
		return models.AddressDetail{}, apperr.Internalf(err)
	}
	return models.AddressDetail{Address: address, UserObj: users[address.UserObj]}, nil
}

// Update overwrites the mutable fields. When the owner edits, the contact
// stamp is refreshed from the actor; an admin edit keeps the owner's stamp.
func (s *AddressService) Update(ctx context.Context, actor models.User, id primitive.ObjectID, in AddressInput) (models.Address, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return models.Address{}, notFoundOr(err, "No Address Found")
	}
	if err := requireOwnerOrAdmin(actor, address.UserObj, "address"); err != nil {
		return models.Address{}, err
	}

	in.apply(&address)
	if actor.ID == address.UserObj {
		address.Name = actor.Username
		address.Email = actor.Email
	}
	address.UpdatedAt = s.now()

	if err := s.addresses.Replace(ctx, address); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Address{}, apperr.Duplicate("An address already exists for this user")
		}
		return models.Address{}, notFoundOr(err, "No Address Found")
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, actor models.User, id primitive.ObjectID) (models.Address, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return models.Address{}, notFoundOr(err, "No Address Found")
	}
	if err := requireOwnerOrAdmin(actor, address.UserObj, "address"); err != nil {
		return models.Address{}, err
	}
	if err := s.addresses.Delete(ctx, id); err != nil {
		return models.Address{}, notFoundOr(err, "No Address Found")
	}
	return address, nil
}
