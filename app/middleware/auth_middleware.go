// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate is the middleware function that validates operator JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authorization header is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_AUTHORIZATION_HEADER",
				},
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Error: dto.ErrorDetail{
					Code: "INVALID_AUTHORIZATION_FORMAT",
				},
			})
		}

		// Extract the token (remove "Bearer " prefix)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Access token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_ACCESS_TOKEN",
				},
			})
		}

		// Validate the token
		claims, err := m.tokenService.ValidateOperatorToken(token)
		if err != nil {
			var errorCode string
			var message string

			// Determine the specific error type
			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenInvalid) {
				errorCode = "TOKEN_INVALID"
				message = "Invalid access token"
			} else {
				errorCode = "TOKEN_VALIDATION_FAILED"
				message = "Token validation failed"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		// Refresh tokens cannot be used to access protected endpoints
		if claims.TokenType != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid access token",
				Error: dto.ErrorDetail{
					Code: "TOKEN_INVALID",
				},
			})
		}

		// Store operator information in context for downstream handlers
		c.Locals("operator_id", claims.OperatorID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		// Continue to the next handler
		return c.Next()
	}
}

// GetOperatorIDFromContext extracts the operator ID from the request context
func GetOperatorIDFromContext(c fiber.Ctx) (uint, bool) {
	operatorID, ok := c.Locals("operator_id").(uint)
	return operatorID, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.OperatorTokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.OperatorTokenClaims)
	return claims, ok
}
