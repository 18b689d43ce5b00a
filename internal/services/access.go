package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

func isAdmin(user models.User) bool {
	return user.IsAdmin || user.IsSuperAdmin
}

func requireAdmin(actor models.User) error {
	if !isAdmin(actor) {
		return apperr.Denied("Admin access required")
	}
	return nil
}

// requireOwnerOrAdmin is the capability check run before every mutation of
// an owned document.
func requireOwnerOrAdmin(actor models.User, owner primitive.ObjectID, resource string) error {
	if actor.ID == owner || isAdmin(actor) {
		return nil
	}
	return apperr.Denied("You are not allowed to modify this " + resource)
}
