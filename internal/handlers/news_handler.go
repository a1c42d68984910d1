package handlers

import (
	"cardshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NewsHandler serves the storefront news feed.
type NewsHandler struct {
	news *services.NewsService
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(news *services.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// RegisterRoutes registers the news routes.
func (h *NewsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/news", h.HandleGetNews)
}

// HandleGetNews returns all news items.
func (h *NewsHandler) HandleGetNews(c *fiber.Ctx) error {
	return c.JSON(h.news.GetNews())
}
