package repositories

import (
	"sync"

	"cardshop/internal/apperrors"
)

// MockSettingRepository is an in-memory implementation of SettingRepository.
type MockSettingRepository struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMockSettingRepository creates a new instance of MockSettingRepository.
func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (r *MockSettingRepository) Get(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	if !ok {
		return "", apperrors.Newf(apperrors.NotFound, "setting %s not found", key)
	}
	return value, nil
}

// Upsert inserts or overwrites the value stored under key.
func (r *MockSettingRepository) Upsert(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}
