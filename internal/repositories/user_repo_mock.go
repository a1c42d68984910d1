package repositories

import (
	"sync"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User // keyed by ID
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return apperrors.New(apperrors.Conflict, "User already exists")
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Role = models.NormalizeRole(string(user.Role))
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

// GetByIdentifier returns a user whose email or username matches identifier.
func (r *MockUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == identifier || u.Username == identifier })
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "User not found")
	}
	user.Role = models.NormalizeRole(string(user.Role))
	r.users[user.ID] = *user
	return nil
}

func (r *MockUserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "User not found")
}
