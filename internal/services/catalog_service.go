package services

import (
	"hash/fnv"
	"time"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/repositories"
)

const (
	defaultPageLimit  = 10
	priceHistoryWidth = 7 // monthly points, ending at the current month
)

// CatalogService provides public, read-only access to the card catalog.
type CatalogService struct {
	cardRepo    repositories.CardRepository
	settingRepo repositories.SettingRepository
}

// CardPage is one page of a card listing. Total is the filtered count
// before pagination.
type CardPage struct {
	Data  []models.Card `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(cardRepo repositories.CardRepository, settingRepo repositories.SettingRepository) *CatalogService {
	return &CatalogService{
		cardRepo:    cardRepo,
		settingRepo: settingRepo,
	}
}

// ListCards returns one page of cards sorted by manual price descending.
// The "All" category sentinel and empty filters return the whole catalog;
// an out-of-range page yields an empty slice with the correct total.
func (s *CatalogService) ListCards(page, limit int, category, language string) (*CardPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if category == models.CategoryAll {
		category = ""
	}

	cards, total, err := s.cardRepo.List(repositories.CardListParams{
		Page:     page,
		Limit:    limit,
		Category: category,
		Language: language,
	})
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	for i := range cards {
		projectImageURL(&cards[i])
	}
	return &CardPage{
		Data:  cards,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetCardByID returns a card with images sorted ascending and the legacy
// imageUrl projected from the cover image.
func (s *CatalogService) GetCardByID(id string) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	projectImageURL(card)
	return card, nil
}

// GetPriceHistory returns the synthetic price series for a card: exactly 7
// points, one per month ending at the current month. It succeeds for any
// id; the series is deterministic per card so repeated requests agree.
func (s *CatalogService) GetPriceHistory(cardID string) []models.PricePoint {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]models.PricePoint, 0, priceHistoryWidth)
	for i := priceHistoryWidth - 1; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0)
		points = append(points, models.PricePoint{
			Date:  month.Format("2006-01-02"),
			Price: syntheticPrice(cardID, month),
		})
	}
	return points
}

// GetQrImageURL returns the configured purchase QR image URL, or the empty
// string when none has been uploaded yet.
func (s *CatalogService) GetQrImageURL() (string, error) {
	url, err := s.settingRepo.Get(models.SettingQrImage)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return "", nil
		}
		return "", err
	}
	return url, nil
}

// syntheticPrice derives a placeholder price in the 100-150 band from the
// card id and month.
func syntheticPrice(cardID string, month time.Time) float64 {
	h := fnv.New32a()
	h.Write([]byte(cardID))
	h.Write([]byte(month.Format("2006-01")))
	return 100 + float64(h.Sum32()%5000)/100
}

// projectImageURL overwrites the legacy imageUrl field with the cover
// image's URL. Computed at the service boundary so the two representations
// cannot drift; the stored value only shows through when images are empty.
func projectImageURL(c *models.Card) {
	if c.Images == nil {
		c.Images = []models.CardImage{}
	}
	if len(c.Images) > 0 {
		c.ImageURL = c.Images[0].URL
	}
}
