package services

import (
	"time"

	"cardshop/internal/models"
)

// NewsService serves the static editorial feed shown on the storefront.
// Read-only for now; a persisted news table can replace the seed list
// without changing the handler.
type NewsService struct {
	items []models.NewsItem
}

// NewNewsService creates a NewsService with the seed entries.
func NewNewsService() *NewsService {
	return &NewsService{
		items: []models.NewsItem{
			{
				ID:      "1",
				Title:   "Grand Opening",
				Content: "Welcome to CardCollector Pro!",
				Date:    time.Now(),
			},
		},
	}
}

// GetNews returns all news items.
func (s *NewsService) GetNews() []models.NewsItem {
	items := make([]models.NewsItem, len(s.items))
	copy(items, s.items)
	return items
}
