package handlers

import (
	"cardshop/internal/middleware"
	"cardshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/verify", h.HandleVerify)
	authRoutes.Post("/resend", h.HandleResend)
	authRoutes.Get("/me", authRequired, h.HandleMe)
}

// RegisterRequest is the request body for registration. Username is
// optional and defaults to the local part of the email.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"omitempty,min=3,max=100"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if _, err := h.authService.Register(req.Email, req.Password, req.Username); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Registration successful. Please verify email.",
	})
}

// VerifyRequest is the request body for email verification.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// HandleVerify checks the verification code and issues the first session
// token.
func (h *AuthHandler) HandleVerify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, token, err := h.authService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.PublicProfile(),
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, token, err := h.authService.Login(req.EmailOrUsername, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.PublicProfile(),
	})
}

// ResendRequest is the request body for re-sending a verification code.
type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResend re-delivers the verification code. It always reports
// success so the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) HandleResend(c *fiber.Ctx) error {
	var req ResendRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.authService.ResendCode(req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleMe returns the authenticated user's public profile.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.PublicProfile())
}
