package repositories

import (
	"errors"
	"fmt"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSettingRepository is a GORM implementation of SettingRepository.
type GORMSettingRepository struct {
	db *gorm.DB
}

// NewGORMSettingRepository creates a new instance of GORMSettingRepository.
func NewGORMSettingRepository(db *gorm.DB) *GORMSettingRepository {
	return &GORMSettingRepository{
		db: db,
	}
}

// Get returns the value stored under key.
func (r *GORMSettingRepository) Get(key string) (string, error) {
	var setting models.Setting
	if err := r.db.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.Newf(apperrors.NotFound, "setting %s not found", key)
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// Upsert inserts or overwrites the value stored under key.
func (r *GORMSettingRepository) Upsert(key, value string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
