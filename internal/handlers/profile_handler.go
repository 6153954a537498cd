package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

type ProfileHandler struct {
	authService services.AuthService
}

func NewProfileHandler(authService services.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(currentUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(models.NewUserResponse(user))
}

func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(currentUserID(c), req)
	switch {
	case err == nil:
		return c.JSON(models.NewUserResponse(user))
	case errors.Is(err, services.ErrWrongPassword):
		return errorJSON(c, fiber.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, "Email is already in use")
	case errors.Is(err, repositories.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, "failed to update profile")
	}
}
