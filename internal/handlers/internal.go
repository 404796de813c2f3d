package handlers

import (
	"log"

	"github.com/gentleman654/VoxLens/internal/config"
	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InternalHandler receives result batches from the analysis worker.
// These routes are API-key authenticated, not user authenticated.
type InternalHandler struct {
	cfg    *config.Config
	ingest *services.IngestService
}

func NewInternalHandler(db *database.DB, cfg *config.Config) *InternalHandler {
	return &InternalHandler{
		cfg:    cfg,
		ingest: services.NewIngestService(db),
	}
}

func SetupInternalRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewInternalHandler(db, cfg)

	router.Post("/search-results", h.ApplySearchResults)
}

// ApplySearchResults godoc
// @Summary Apply analysis results for a search
// @Description The worker posts status, summaries and tweet/sentiment rows for a search it processed
// @Tags internal
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Internal API Key"
// @Param request body services.SearchResultsRequest true "Result batch"
// @Success 200 {object} models.Search
// @Router /internal/search-results [post]
func (h *InternalHandler) ApplySearchResults(c *fiber.Ctx) error {
	apiKey := c.Get("X-API-Key")
	if apiKey == "" || apiKey != h.cfg.InternalAPIKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing API key",
		})
	}

	var req services.SearchResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SearchID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "search_id is required"})
	}
	if !validStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	search, err := h.ingest.ApplySearchResults(&req)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("[Internal] Applied %d tweets to search %s (status=%s)", len(req.Tweets), search.ID, search.Status)

	return c.JSON(search)
}
