// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/brandscope-io/brandscope/app/dto"
	businessflow "github.com/brandscope-io/brandscope/business_flow"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// BrandHandlerInterface defines the contract for brand configuration handlers
type BrandHandlerInterface interface {
	GetBrand(c fiber.Ctx) error
	SaveBrand(c fiber.Ctx) error
	DescribeBrand(c fiber.Ctx) error
}

// BrandHandler handles brand-related HTTP requests
type BrandHandler struct {
	brandFlow businessflow.BrandFlow
	validator *validator.Validate
}

func (h *BrandHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *BrandHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandFlow businessflow.BrandFlow) *BrandHandler {
	return &BrandHandler{
		brandFlow: brandFlow,
		validator: validator.New(),
	}
}

// GetBrand returns the configured brand profile
// @Summary Get Brand
// @Description Retrieve the stored brand name, website URL, and description
// @Tags Brand
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GetBrandResponse} "Brand profile"
// @Failure 404 {object} dto.APIResponse "Brand not configured yet"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/brand [get]
func (h *BrandHandler) GetBrand(c fiber.Ctx) error {
	result, err := h.brandFlow.Get(h.createRequestContext(c, "/api/v1/brand"))
	if err != nil {
		if businessflow.IsBrandNotConfigured(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Brand is not configured yet", "BRAND_NOT_CONFIGURED", nil)
		}

		log.Println("Brand lookup failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load brand information", "BRAND_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Brand profile retrieved", result)
}

// SaveBrand stores the brand name and website URL
// @Summary Save Brand
// @Description Save brand basics. Saving clears any previously generated description.
// @Tags Brand
// @Accept json
// @Produce json
// @Param request body dto.SaveBrandRequest true "Brand name and website URL"
// @Success 200 {object} dto.APIResponse{data=dto.SaveBrandResponse} "Brand saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/brand [put]
func (h *BrandHandler) SaveBrand(c fiber.Ctx) error {
	var req dto.SaveBrandRequest
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

	result, err := h.brandFlow.Save(h.createRequestContext(c, "/api/v1/brand"), &req, metadata)
	if err != nil {
		if businessflow.IsBrandNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Brand name is required", "BRAND_NAME_REQUIRED", nil)
		}
		if businessflow.IsWebsiteURLRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Website URL is required", "WEBSITE_URL_REQUIRED", nil)
		}
		if businessflow.IsInvalidWebsiteURL(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Website URL must start with http:// or https://", "INVALID_WEBSITE_URL", nil)
		}

		log.Println("Brand save failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save brand information", "BRAND_SAVE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Brand information saved", result)
}

// DescribeBrand scrapes the brand website and generates a description
// @Summary Describe Brand
// @Description Fetch the brand website, extract readable text, and generate a marketing description via the completion API
// @Tags Brand
// @Accept json
// @Produce json
// @Param request body dto.DescribeBrandRequest true "Brand name and website URL"
// @Success 200 {object} dto.APIResponse{data=dto.DescribeBrandResponse} "Description generated and saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 502 {object} dto.APIResponse "Website scrape or completion API failure"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/brand/describe [post]
func (h *BrandHandler) DescribeBrand(c fiber.Ctx) error {
	var req dto.DescribeBrandRequest
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

	// Scraping plus a completion call can take a while
	result, err := h.brandFlow.Describe(h.createRequestContextWithTimeout(c, "/api/v1/brand/describe", 3*time.Minute), &req, metadata)
	if err != nil {
		if businessflow.IsBrandNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Brand name is required", "BRAND_NAME_REQUIRED", nil)
		}
		if businessflow.IsWebsiteURLRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Website URL is required", "WEBSITE_URL_REQUIRED", nil)
		}
		if businessflow.IsInvalidWebsiteURL(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Website URL must start with http:// or https://", "INVALID_WEBSITE_URL", nil)
		}
		if businessflow.IsEmptyWebsiteText(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Website returned no readable text", "WEBSITE_EMPTY", nil)
		}
		if businessflow.IsEmptyCompletionResponse(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Empty response from completion API", "EMPTY_COMPLETION_RESPONSE", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "WEBSITE_SCRAPE_FAILED":
				return h.ErrorResponse(c, fiber.StatusBadGateway, "Failed to fetch website content", be.Code, nil)
			case "DESCRIPTION_GENERATION_FAILED":
				return h.ErrorResponse(c, fiber.StatusBadGateway, "Failed to generate brand description", be.Code, nil)
			}
		}

		log.Println("Brand description failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate brand description", "DESCRIPTION_GENERATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Brand description generated", result)
}

// createRequestContext creates a context with request metadata and timeout
func (h *BrandHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *BrandHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
