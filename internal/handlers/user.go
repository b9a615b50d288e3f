package handlers

import (
	"errors"

	"apexscore/internal/models"
	"apexscore/internal/services/user"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a new operator account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Create(&input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return response.Error(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, user.ErrEmailRequired), errors.Is(err, user.ErrWeakPassword):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to create account")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          created.ID,
		"email":       created.Email,
		"name":        created.Name,
		"role":        created.Role,
		"institution": created.Institution,
	})
}

// GetProfile returns the authenticated operator's account.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	u, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"role":        u.Role,
		"institution": u.Institution,
		"department":  u.Department,
		"position":    u.Position,
		"permissions": models.GetDefaultPermissions(u.Role),
	})
}
