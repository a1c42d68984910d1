package repositories

import "cardshop/internal/models"

// CardListParams narrows and pages a card listing. Empty Category or
// Language means no filter on that attribute; the "All" sentinel is resolved
// before it reaches the repository.
type CardListParams struct {
	Page     int
	Limit    int
	Category string
	Language string
}

// Offset returns the number of records to skip for the requested page.
func (p CardListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CardRepository defines the interface for card data access.
//
// List returns one page of cards ordered by manual price descending (ties
// keep insertion order) with images sorted ascending by sort order, plus the
// total filtered count before pagination. ReplaceAll on update and the
// cascade on delete are each a single all-or-nothing unit.
type CardRepository interface {
	List(params CardListParams) ([]models.Card, int64, error)
	GetByID(id string) (*models.Card, error)
	Create(card *models.Card) error
	// Update persists the card's scalar fields and replaces the entire
	// image set (delete-all, insert-all) in one transaction.
	Update(card *models.Card, images []models.CardImage) error
	Delete(id string) error
}
