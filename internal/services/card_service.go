package services

import (
	"sort"

	"cardshop/internal/models"
	"cardshop/internal/repositories"
)

// CardService handles the administrator's inventory operations. Role
// enforcement happens in the HTTP middleware; the service assumes an
// authorized caller.
type CardService struct {
	cardRepo    repositories.CardRepository
	settingRepo repositories.SettingRepository
}

// NewCardService creates a new CardService.
func NewCardService(cardRepo repositories.CardRepository, settingRepo repositories.SettingRepository) *CardService {
	return &CardService{
		cardRepo:    cardRepo,
		settingRepo: settingRepo,
	}
}

// CreateCard persists a new card with its images stacked as supplied by the
// caller, and returns it with the assigned id.
func (s *CardService) CreateCard(card *models.Card) (*models.Card, error) {
	if err := s.cardRepo.Create(card); err != nil {
		return nil, err
	}
	sortImages(card)
	projectImageURL(card)
	return card, nil
}

// UpdateCard updates the scalar fields and atomically replaces the full
// image set, then returns the refreshed card. Concurrent editors race here;
// the last writer's complete image set wins.
func (s *CardService) UpdateCard(id string, card *models.Card) (*models.Card, error) {
	card.ID = id
	if err := s.cardRepo.Update(card, card.Images); err != nil {
		return nil, err
	}

	updated, err := s.cardRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	projectImageURL(updated)
	return updated, nil
}

// DeleteCard removes a card, cascading its image deletion.
func (s *CardService) DeleteCard(id string) error {
	return s.cardRepo.Delete(id)
}

// SetQrImage overwrites the single QR configuration value with the URL of
// the freshly uploaded file and returns it.
func (s *CardService) SetQrImage(url string) (string, error) {
	if err := s.settingRepo.Upsert(models.SettingQrImage, url); err != nil {
		return "", err
	}
	return url, nil
}

func sortImages(card *models.Card) {
	sort.SliceStable(card.Images, func(i, j int) bool {
		return card.Images[i].SortOrder < card.Images[j].SortOrder
	})
}
