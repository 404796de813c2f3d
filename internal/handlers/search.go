package handlers

import (
	"strconv"
	"strings"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SearchHandler struct {
	service *services.SearchService
}

func NewSearchHandler(db *database.DB) *SearchHandler {
	return &SearchHandler{
		service: services.NewSearchService(db),
	}
}

func SetupSearchRoutes(router fiber.Router, db *database.DB) {
	h := NewSearchHandler(db)
	sh := NewSavedSearchHandler(db)

	// Saved-search routes register first so "saved" never matches :id
	router.Get("/saved/all", sh.List)
	router.Post("/saved", sh.Create)
	router.Patch("/saved/:id", sh.Update)
	router.Delete("/saved/:id", sh.Delete)

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Delete("/:id", h.Delete)
	router.Get("/:id/tweets", h.ListTweets)
}

func validTimeRange(tr string) bool {
	switch tr {
	case models.TimeRange24h, models.TimeRange7d, models.TimeRange30d:
		return true
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case models.SearchStatusPending, models.SearchStatusProcessing,
		models.SearchStatusCompleted, models.SearchStatusFailed:
		return true
	}
	return false
}

// Create godoc
// @Summary Create a sentiment analysis search
// @Tags searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateSearchRequest true "Search data"
// @Success 201 {object} models.Search
// @Failure 402 {object} ErrorResponse
// @Router /searches [post]
func (h *SearchHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req services.CreateSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query is required"})
	}
	if req.TimeRange == "" {
		req.TimeRange = models.TimeRange7d
	}
	if !validTimeRange(req.TimeRange) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid time range"})
	}

	search, err := h.service.Create(userID, &req)
	if err == services.ErrQuotaExceeded {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "No credits remaining. Please upgrade to continue.",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(search)
}

// List godoc
// @Summary List the user's search history
// @Tags searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page (max 100)"
// @Param query query string false "Substring filter on query text"
// @Param status_filter query string false "Filter by status"
// @Success 200 {object} services.SearchListResponse
// @Router /searches [get]
func (h *SearchHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Page must be >= 1"})
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Page size must be between 1 and 100"})
	}

	statusFilter := c.Query("status_filter")
	if statusFilter != "" && !validStatus(statusFilter) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	filter := services.SearchFilter{
		Page:         page,
		PageSize:     pageSize,
		Query:        c.Query("query"),
		StatusFilter: statusFilter,
	}

	response, err := h.service.List(userID, &filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Get godoc
// @Summary Get a search by ID
// @Tags searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Search ID"
// @Success 200 {object} models.Search
// @Failure 404 {object} ErrorResponse
// @Router /searches/{id} [get]
func (h *SearchHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid search ID"})
	}

	search, err := h.service.Get(userID, id)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(search)
}

// Delete godoc
// @Summary Delete a search
// @Tags searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Search ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /searches/{id} [delete]
func (h *SearchHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid search ID"})
	}

	if err := h.service.Delete(userID, id); err != nil {
		if err == services.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(MessageResponse{
		Message: "Search deleted successfully",
		Success: true,
	})
}

// ListTweets godoc
// @Summary List tweets collected for a search
// @Tags searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Search ID"
// @Success 200 {array} models.Tweet
// @Failure 404 {object} ErrorResponse
// @Router /searches/{id}/tweets [get]
func (h *SearchHandler) ListTweets(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid search ID"})
	}

	tweets, err := h.service.ListTweets(userID, id)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(tweets)
}
