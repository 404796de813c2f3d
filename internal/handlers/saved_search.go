package handlers

import (
	"strings"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SavedSearchHandler struct {
	service *services.SavedSearchService
}

func NewSavedSearchHandler(db *database.DB) *SavedSearchHandler {
	return &SavedSearchHandler{
		service: services.NewSavedSearchService(db),
	}
}

// List godoc
// @Summary List the user's saved searches
// @Tags saved-searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SavedSearch
// @Router /searches/saved/all [get]
func (h *SavedSearchHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	saved, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(saved)
}

// Create godoc
// @Summary Save a search for monitoring
// @Tags saved-searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateSavedSearchRequest true "Saved search data"
// @Success 201 {object} models.SavedSearch
// @Failure 400 {object} ErrorResponse
// @Router /searches/saved [post]
func (h *SavedSearchHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req services.CreateSavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query is required"})
	}

	saved, err := h.service.Create(userID, &req)
	if err == services.ErrDuplicateSavedSearch {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This search is already saved"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

// Update godoc
// @Summary Update alert settings of a saved search
// @Tags saved-searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Saved search ID"
// @Param request body services.UpdateSavedSearchRequest true "Fields to update"
// @Success 200 {object} models.SavedSearch
// @Failure 404 {object} ErrorResponse
// @Router /searches/saved/{id} [patch]
func (h *SavedSearchHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid saved search ID"})
	}

	var req services.UpdateSavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saved, err := h.service.Update(userID, id, &req)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Saved search not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(saved)
}

// Delete godoc
// @Summary Delete a saved search
// @Tags saved-searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Saved search ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /searches/saved/{id} [delete]
func (h *SavedSearchHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid saved search ID"})
	}

	if err := h.service.Delete(userID, id); err != nil {
		if err == services.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Saved search not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(MessageResponse{
		Message: "Saved search deleted successfully",
		Success: true,
	})
}
