package handlers

import (
	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(db *database.DB) *UserHandler {
	return &UserHandler{
		service: services.NewUserService(db),
	}
}

func SetupUserRoutes(router fiber.Router, db *database.DB) {
	h := NewUserHandler(db)

	router.Get("/me", h.GetMe)
	router.Patch("/me", h.UpdateMe)
	router.Get("/me/credits", h.GetCredits)
	router.Delete("/me", h.DeleteMe)
}

// GetMe godoc
// @Summary Get current user info
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.UserResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	user, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(services.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.UpdateUserRequest true "Fields to update"
// @Success 200 {object} services.UserResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req services.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.Update(userID, &req)
	if err == services.ErrEmailTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(services.NewUserResponse(user))
}

// GetCredits godoc
// @Summary Get the user's remaining credits
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.CreditsResponse
// @Router /users/me/credits [get]
func (h *UserHandler) GetCredits(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	credits, err := h.service.Credits(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(credits)
}

// DeleteMe godoc
// @Summary Delete the current user and everything they own
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	if err := h.service.Delete(userID); err != nil {
		if err == services.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(MessageResponse{
		Message: "Account deleted successfully",
		Success: true,
	})
}
