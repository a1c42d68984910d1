package repositories

import (
	"errors"
	"fmt"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Role = models.NormalizeRole(string(user.Role))
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.Conflict, "User already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username)
}

// GetByIdentifier retrieves a user whose email or username matches identifier.
func (r *GORMUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	return r.first("email = ? OR username = ?", identifier, identifier)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.first("id = ?", id)
}

// Update persists all fields of an existing user, including zero values
// such as a cleared verification code. Updates (not Save) so a missing row
// reports NotFound instead of being re-inserted.
func (r *GORMUserRepository) Update(user *models.User) error {
	user.Role = models.NormalizeRole(string(user.Role))
	res := r.db.Model(user).Select("*").Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Newf(apperrors.NotFound, "User not found")
	}
	return nil
}

func (r *GORMUserRepository) first(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
