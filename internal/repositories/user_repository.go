package repositories

import "cardshop/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	// GetByIdentifier matches either the email or the username.
	GetByIdentifier(identifier string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
}
