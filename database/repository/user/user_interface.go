package userRepo

import (
	"github.com/itelsaia/agente-itelsa-ia/models"
)

// UserRepository defines data access for registered contacts.
type UserRepository interface {
	// FindByEmail retrieves a profile by its contact email. Returns
	// (nil, nil) when no profile exists for that contact.
	FindByEmail(email string) (*models.UserProfile, error)
	// Save inserts a new profile or replaces an existing one for the
	// same contact email.
	Save(profile *models.UserProfile) error
}
