package handlers

import (
	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(db *database.DB) *ReportHandler {
	return &ReportHandler{
		service: services.NewReportService(db),
	}
}

func SetupReportRoutes(router fiber.Router, db *database.DB) {
	h := NewReportHandler(db)

	router.Post("/generate", h.Generate)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
}

func validReportFormat(format string) bool {
	switch format {
	case models.ReportFormatPDF, models.ReportFormatCSV, models.ReportFormatJSON:
		return true
	}
	return false
}

// Generate godoc
// @Summary Request a report export for a search
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.GenerateReportRequest true "Report request"
// @Success 201 {object} models.Report
// @Failure 404 {object} ErrorResponse
// @Router /reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req services.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Format == "" {
		req.Format = models.ReportFormatPDF
	}
	if !validReportFormat(req.Format) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report format"})
	}

	report, err := h.service.Generate(userID, &req)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// List godoc
// @Summary List the user's reports
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Report
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	reports, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(reports)
}

// Get godoc
// @Summary Get a report by ID
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} models.Report
// @Failure 404 {object} ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	report, err := h.service.Get(userID, id)
	if err == services.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
