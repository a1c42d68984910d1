package repositories

import (
	"errors"
	"fmt"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCardRepository is a GORM implementation of CardRepository.
type GORMCardRepository struct {
	db *gorm.DB
}

// NewGORMCardRepository creates a new instance of GORMCardRepository.
func NewGORMCardRepository(db *gorm.DB) *GORMCardRepository {
	return &GORMCardRepository{
		db: db,
	}
}

// filtered returns a fresh query with the list filters applied. Built per
// call because GORM statements accumulate clauses across Count/Find.
func (r *GORMCardRepository) filtered(params CardListParams) *gorm.DB {
	q := r.db.Model(&models.Card{})
	if params.Category != "" {
		q = q.Where("category = ?", params.Category)
	}
	if params.Language != "" {
		q = q.Where("language = ?", params.Language)
	}
	return q
}

// List returns one page of cards plus the total filtered count. Creation
// time is the insertion-order surrogate breaking price ties.
func (r *GORMCardRepository) List(params CardListParams) ([]models.Card, int64, error) {
	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	var cards []models.Card
	err := r.filtered(params).
		Order("manual_price DESC, created_at ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Preload("Images", orderImages).
		Find(&cards).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

// GetByID retrieves a single card with its images sorted ascending.
func (r *GORMCardRepository) GetByID(id string) (*models.Card, error) {
	var card models.Card
	err := r.db.Preload("Images", orderImages).First(&card, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "Card not found")
		}
		return nil, fmt.Errorf("failed to get card by ID %s: %w", id, err)
	}
	return &card, nil
}

// Create persists a new card together with its images.
func (r *GORMCardRepository) Create(card *models.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	for i := range card.Images {
		if card.Images[i].ID == "" {
			card.Images[i].ID = uuid.New().String()
		}
		card.Images[i].CardID = card.ID
	}
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// Update persists the card's scalar fields and replaces the entire image set
// inside a single transaction, so a mid-sequence failure leaves either the
// old or the new complete set.
func (r *GORMCardRepository) Update(card *models.Card, images []models.CardImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Card{}).Where("id = ?", card.ID).Updates(map[string]interface{}{
			"name":         card.Name,
			"category":     card.Category,
			"language":     card.Language,
			"set_name":     card.SetName,
			"year":         card.Year,
			"condition":    card.Condition,
			"manual_price": card.ManualPrice,
			"image_url":    card.ImageURL,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update card: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.NotFound, "Card not found")
		}

		if err := tx.Where("card_id = ?", card.ID).Delete(&models.CardImage{}).Error; err != nil {
			return fmt.Errorf("failed to clear card images: %w", err)
		}
		for i := range images {
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			images[i].CardID = card.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to insert card images: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a card and cascades its image deletion.
func (r *GORMCardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Card{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete card: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.NotFound, "Card not found")
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.CardImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete card images: %w", err)
		}
		return nil
	})
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}
