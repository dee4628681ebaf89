package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feeportal/fee-service/internal/api/dto"
	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/service"
	apperrors "github.com/feeportal/fee-service/pkg/util"
)

// AuthHandler exposes signup and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Designation == "" {
		return apperrors.NewValidationError("username, email, password, designation required", nil)
	}

	_, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Designation,
	})
	if err != nil {
		return translateError(err)
	}

	return c.JSON(dto.SignupResponse{
		Message:  "Signup successful!",
		Redirect: domain.LandingLogin,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewInvalidCredentials()
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(dto.LoginResponse{
		Message:  "Login successful",
		Token:    result.Token,
		Role:     string(result.Account.Role),
		Redirect: result.Redirect,
	})
}
