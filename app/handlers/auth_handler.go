// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	businessflow "github.com/brandscope-io/brandscope/business_flow"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	InitCaptcha(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	RefreshToken(c fiber.Ctx) error
}

// AuthHandler handles operator authentication HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: validator.New(),
	}
}

// InitCaptcha issues a rotate-captcha challenge for the login form
// @Summary Init Captcha
// @Description Generate a rotate-captcha challenge required for operator login
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CaptchaChallengeResponse} "Captcha challenge generated"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/captcha [post]
func (h *AuthHandler) InitCaptcha(c fiber.Ctx) error {
	result, err := h.authFlow.InitCaptcha(h.createRequestContext(c, "/api/v1/auth/captcha"))
	if err != nil {
		log.Println("Captcha init failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to initialize captcha", "CAPTCHA_INIT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Captcha challenge generated", result)
}

// Login authenticates the operator
// @Summary Operator Login
// @Description Authenticate the operator with password and captcha, returning a token pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Operator credentials and captcha answer"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid captcha"
// @Failure 401 {object} dto.APIResponse "Incorrect password"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	// Get client information
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Login(h.createRequestContext(c, "/api/v1/auth/login"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidCaptcha(err) || businessflow.IsCaptchaExpired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Captcha validation failed", "CAPTCHA_INVALID", nil)
		}
		if businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Incorrect password", "INCORRECT_PASSWORD", nil)
		}

		log.Println("Login failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// RefreshToken exchanges a refresh token for a fresh token pair
// @Summary Refresh Tokens
// @Description Exchange a valid refresh token for a new access/refresh token pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Tokens refreshed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Refresh token expired or invalid"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Refresh(h.createRequestContext(c, "/api/v1/auth/refresh"), &req, metadata)
	if err != nil {
		if errors.Is(err, services.ErrTokenExpired) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token has expired", "TOKEN_EXPIRED", nil)
		}
		if errors.Is(err, services.ErrTokenInvalid) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token is invalid", "TOKEN_INVALID", nil)
		}

		log.Println("Token refresh failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Token refresh failed", "TOKEN_REFRESH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tokens refreshed", result)
}

// createRequestContext creates a context with request metadata and timeout
func (h *AuthHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
