package handler

import (
	"errors"

	"go-cafe-pos/internal/middleware"
	"go-cafe-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication and sets the session cookie
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.Token,
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"user": result.User})
}

// Logout deletes the server-side session and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if err := h.authService.Logout(token); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Logout failed"})
	}

	c.ClearCookie(middleware.SessionCookieName)
	return c.JSON(fiber.Map{"success": true})
}

// Session resolves the current cookie to a user, or user:null when absent
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	session, err := h.authService.ResolveSession(token)
	if err != nil {
		c.ClearCookie(middleware.SessionCookieName)
		return c.JSON(fiber.Map{"user": nil})
	}

	return c.JSON(fiber.Map{"user": session.User.ToResponse()})
}

// UpdateDetails changes the caller's email and/or password after verifying
// the current password
// PUT /api/v1/user/details
func (h *AuthHandler) UpdateDetails(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.UpdateDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.CurrentPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is required"})
	}

	if err := h.authService.UpdateDetails(userID, &req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User details updated successfully"})
}
