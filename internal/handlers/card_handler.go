package handlers

import (
	"cardshop/internal/models"
	"cardshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CardHandler handles HTTP requests for the card catalog: public reads and
// administrator inventory management.
type CardHandler struct {
	catalog  *services.CatalogService
	cards    *services.CardService
	validate *validator.Validate
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(catalog *services.CatalogService, cards *services.CardService) *CardHandler {
	return &CardHandler{
		catalog:  catalog,
		cards:    cards,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the card routes. The write routes are gated by
// the supplied auth and admin middlewares.
func (h *CardHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	cardRoutes := router.Group("/cards")
	cardRoutes.Get("/", h.HandleListCards)
	cardRoutes.Get("/:id", h.HandleGetCard)
	cardRoutes.Get("/:id/history", h.HandleGetPriceHistory)
	cardRoutes.Post("/", authRequired, adminRequired, h.HandleCreateCard)
	cardRoutes.Put("/:id", authRequired, adminRequired, h.HandleUpdateCard)
	cardRoutes.Delete("/:id", authRequired, adminRequired, h.HandleDeleteCard)
}

// HandleListCards returns one page of cards with optional category and
// language filters.
func (h *CardHandler) HandleListCards(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	category := c.Query("category")
	language := c.Query("language")

	result, err := h.catalog.ListCards(page, limit, category, language)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetCard returns a single card with its ordered images.
func (h *CardHandler) HandleGetCard(c *fiber.Ctx) error {
	card, err := h.catalog.GetCardByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

// HandleGetPriceHistory returns the 7-point monthly price series.
func (h *CardHandler) HandleGetPriceHistory(c *fiber.Ctx) error {
	return c.JSON(h.catalog.GetPriceHistory(c.Params("id")))
}

// ImageInput is one entry of the ordered image list supplied by the admin
// client.
type ImageInput struct {
	URL       string `json:"url" validate:"required"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// CardRequest is the request body for creating or updating a card. The
// image list carries the caller's ordering and is capped at 10 entries at
// this boundary; the store itself does not enforce the cap.
type CardRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Category    string       `json:"category" validate:"required,oneof=Pokemon Baseball Football"`
	Language    string       `json:"language" validate:"required,oneof=en th jp"`
	SetName     string       `json:"setName" validate:"required"`
	Year        int          `json:"year" validate:"required"`
	Condition   string       `json:"condition" validate:"required"`
	ManualPrice float64      `json:"manualPrice" validate:"gte=0"`
	Images      []ImageInput `json:"images" validate:"max=10,dive"`
}

func (r *CardRequest) toCard() *models.Card {
	images := make([]models.CardImage, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, models.CardImage{
			URL:       img.URL,
			SortOrder: img.SortOrder,
		})
	}
	return &models.Card{
		Name:        r.Name,
		Category:    r.Category,
		Language:    r.Language,
		SetName:     r.SetName,
		Year:        r.Year,
		Condition:   r.Condition,
		ManualPrice: r.ManualPrice,
		Images:      images,
	}
}

// HandleCreateCard creates a new card with its images.
func (h *CardHandler) HandleCreateCard(c *fiber.Ctx) error {
	var req CardRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	created, err := h.cards.CreateCard(req.toCard())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateCard updates a card's fields and replaces its image set.
func (h *CardHandler) HandleUpdateCard(c *fiber.Ctx) error {
	var req CardRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	updated, err := h.cards.UpdateCard(c.Params("id"), req.toCard())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteCard deletes a card and its images.
func (h *CardHandler) HandleDeleteCard(c *fiber.Ctx) error {
	if err := h.cards.DeleteCard(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
