package repositories

import (
	"sort"
	"sync"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"

	"github.com/google/uuid"
)

// MockCardRepository is an in-memory implementation of CardRepository.
// Cards are kept in a slice so listing can preserve insertion order for
// price ties, matching the contract of the persistent implementation.
type MockCardRepository struct {
	cards []models.Card
	mu    sync.RWMutex
}

// NewMockCardRepository creates a new instance of MockCardRepository.
func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{}
}

// List returns one page of cards plus the total filtered count.
func (r *MockCardRepository) List(params CardListParams) ([]models.Card, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]models.Card, 0, len(r.cards))
	for _, c := range r.cards {
		if params.Category != "" && c.Category != params.Category {
			continue
		}
		if params.Language != "" && c.Language != params.Language {
			continue
		}
		filtered = append(filtered, copyCard(c))
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ManualPrice > filtered[j].ManualPrice
	})

	total := int64(len(filtered))
	start := params.Offset()
	if start >= len(filtered) {
		return []models.Card{}, total, nil
	}
	end := start + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// GetByID returns a card by its ID with images sorted ascending.
func (r *MockCardRepository) GetByID(id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cards {
		if c.ID == id {
			copied := copyCard(c)
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "Card not found")
}

// Create appends a new card, assigning IDs where missing.
func (r *MockCardRepository) Create(card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	for i := range card.Images {
		if card.Images[i].ID == "" {
			card.Images[i].ID = uuid.New().String()
		}
		card.Images[i].CardID = card.ID
	}
	r.cards = append(r.cards, copyCard(*card))
	return nil
}

// Update modifies a card's scalar fields and replaces its full image set.
func (r *MockCardRepository) Update(card *models.Card, images []models.CardImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.cards {
		if r.cards[idx].ID != card.ID {
			continue
		}
		for i := range images {
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			images[i].CardID = card.ID
		}
		updated := copyCard(*card)
		updated.Images = append([]models.CardImage(nil), images...)
		updated.CreatedAt = r.cards[idx].CreatedAt // keep insertion position stable
		r.cards[idx] = updated
		return nil
	}
	return apperrors.New(apperrors.NotFound, "Card not found")
}

// Delete removes a card and its images.
func (r *MockCardRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.cards {
		if r.cards[idx].ID == id {
			r.cards = append(r.cards[:idx], r.cards[idx+1:]...)
			return nil
		}
	}
	return apperrors.New(apperrors.NotFound, "Card not found")
}

// copyCard deep-copies a card with its images sorted ascending, so callers
// never alias or mutate repository state.
func copyCard(c models.Card) models.Card {
	copied := c
	copied.Images = append([]models.CardImage(nil), c.Images...)
	sort.SliceStable(copied.Images, func(i, j int) bool {
		return copied.Images[i].SortOrder < copied.Images[j].SortOrder
	})
	return copied
}
