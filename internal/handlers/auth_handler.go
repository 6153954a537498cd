package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	store       *session.Store
}

func NewAuthHandler(authService services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials. Please try again.")
		}
		log.Printf("❌ Login lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to log in")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to start session")
	}
	// New id on login so a pre-auth cookie cannot be reused.
	if err := sess.Regenerate(); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to start session")
	}
	sess.Set(userIDKey, user.ID.String())
	if err := sess.Save(); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to save session")
	}

	return c.JSON(models.NewUserResponse(user))
}

func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load session")
	}
	if err := sess.Destroy(); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to end session")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequireAuth rejects requests without a logged-in session and exposes the
// user id to later handlers.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "authentication required")
	}

	raw, _ := sess.Get(userIDKey).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "authentication required")
	}

	c.Locals(userIDKey, id)
	return c.Next()
}
