package handlers

import (
	"fmt"

	"cardshop/internal/apperrors"
	"cardshop/internal/services"
	"cardshop/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// SystemHandler handles uploads and the purchase QR configuration.
type SystemHandler struct {
	catalog *services.CatalogService
	cards   *services.CardService
	store   storage.FileStore
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(catalog *services.CatalogService, cards *services.CardService, store storage.FileStore) *SystemHandler {
	return &SystemHandler{
		catalog: catalog,
		cards:   cards,
		store:   store,
	}
}

// RegisterRoutes registers the upload and QR routes.
func (h *SystemHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	router.Post("/upload", authRequired, adminRequired, h.HandleUpload)

	systemRoutes := router.Group("/system")
	systemRoutes.Get("/qr", h.HandleGetQr)
	systemRoutes.Post("/qr", authRequired, adminRequired, h.HandleSetQr)
}

// HandleUpload stores one multipart file and returns its public URL.
func (h *SystemHandler) HandleUpload(c *fiber.Ctx) error {
	url, err := h.saveUploadedFile(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"url": url,
	})
}

// HandleGetQr returns the configured QR image URL, or an empty string when
// none has been uploaded yet.
func (h *SystemHandler) HandleGetQr(c *fiber.Ctx) error {
	url, err := h.catalog.GetQrImageURL()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"url": url,
	})
}

// HandleSetQr stores the uploaded file and overwrites the QR configuration
// with its URL.
func (h *SystemHandler) HandleSetQr(c *fiber.Ctx) error {
	url, err := h.saveUploadedFile(c)
	if err != nil {
		return respondError(c, err)
	}
	stored, err := h.cards.SetQrImage(url)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"url": stored,
	})
}

// saveUploadedFile reads the "file" multipart part and hands it to the file
// store.
func (h *SystemHandler) saveUploadedFile(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", apperrors.New(apperrors.BadRequest, "No file uploaded")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	url, err := h.store.Save(fileHeader.Filename, f)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	return url, nil
}
