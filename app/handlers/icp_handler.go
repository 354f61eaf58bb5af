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

// ICPHandlerInterface defines the contract for ICP persona handlers
type ICPHandlerInterface interface {
	ListICPs(c fiber.Ctx) error
	CreateICP(c fiber.Ctx) error
	UpdateICP(c fiber.Ctx) error
	DeleteICP(c fiber.Ctx) error
	DeleteAllICPs(c fiber.Ctx) error
	SuggestICPs(c fiber.Ctx) error
}

// ICPHandler handles ICP persona HTTP requests
type ICPHandler struct {
	icpFlow   businessflow.ICPFlow
	validator *validator.Validate
}

func (h *ICPHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ICPHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewICPHandler creates a new ICP persona handler
func NewICPHandler(icpFlow businessflow.ICPFlow) *ICPHandler {
	return &ICPHandler{
		icpFlow:   icpFlow,
		validator: validator.New(),
	}
}

// ListICPs returns all stored personas
// @Summary List ICP Personas
// @Description Retrieve all ideal customer profile personas ordered by name
// @Tags ICP Personas
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListICPsResponse} "Personas retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps [get]
func (h *ICPHandler) ListICPs(c fiber.Ctx) error {
	result, err := h.icpFlow.List(h.createRequestContext(c, "/api/v1/icps"))
	if err != nil {
		log.Println("ICP listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load ICP personas", "ICP_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Personas retrieved", result)
}

// CreateICP stores a new persona
// @Summary Create ICP Persona
// @Description Create a new ideal customer profile persona
// @Tags ICP Personas
// @Accept json
// @Produce json
// @Param request body dto.CreateICPRequest true "Persona fields"
// @Success 201 {object} dto.APIResponse{data=dto.ICPPersonaResponse} "Persona created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "A persona with this name already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps [post]
func (h *ICPHandler) CreateICP(c fiber.Ctx) error {
	var req dto.CreateICPRequest
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

	result, err := h.icpFlow.Create(h.createRequestContext(c, "/api/v1/icps"), &req, metadata)
	if err != nil {
		if businessflow.IsPersonaFieldsRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Name, role, goals and challenges are all required", "ICP_FIELDS_REQUIRED", nil)
		}
		if businessflow.IsICPPersonaAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A persona with this name already exists", "ICP_ALREADY_EXISTS", nil)
		}

		log.Println("ICP creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create ICP persona", "ICP_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "ICP persona created", result)
}

// UpdateICP updates an existing persona by name
// @Summary Update ICP Persona
// @Description Update the role, goals, and challenges of an existing persona
// @Tags ICP Personas
// @Accept json
// @Produce json
// @Param name path string true "Persona name"
// @Param request body dto.UpdateICPRequest true "Updated persona fields"
// @Success 200 {object} dto.APIResponse{data=dto.ICPPersonaResponse} "Persona updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Persona not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps/{name} [put]
func (h *ICPHandler) UpdateICP(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Persona name is required", "MISSING_PERSONA_NAME", nil)
	}

	var req dto.UpdateICPRequest
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

	result, err := h.icpFlow.Update(h.createRequestContext(c, "/api/v1/icps/"+name), name, &req, metadata)
	if err != nil {
		if businessflow.IsPersonaFieldsRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Role, goals and challenges are all required", "ICP_FIELDS_REQUIRED", nil)
		}
		if businessflow.IsICPPersonaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "ICP persona not found", "ICP_NOT_FOUND", nil)
		}

		log.Println("ICP update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update ICP persona", "ICP_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "ICP persona updated", result)
}

// DeleteICP removes one persona by name
// @Summary Delete ICP Persona
// @Description Delete one persona by its name
// @Tags ICP Personas
// @Produce json
// @Param name path string true "Persona name"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteICPsResponse} "Persona deleted"
// @Failure 404 {object} dto.APIResponse "Persona not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps/{name} [delete]
func (h *ICPHandler) DeleteICP(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Persona name is required", "MISSING_PERSONA_NAME", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.icpFlow.Delete(h.createRequestContext(c, "/api/v1/icps/"+name), name, metadata)
	if err != nil {
		if businessflow.IsICPPersonaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "ICP persona not found", "ICP_NOT_FOUND", nil)
		}

		log.Println("ICP deletion failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete ICP persona", "ICP_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "ICP persona deleted", result)
}

// DeleteAllICPs removes every persona
// @Summary Delete All ICP Personas
// @Description Delete all stored personas and return the count
// @Tags ICP Personas
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DeleteICPsResponse} "Personas deleted"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps [delete]
func (h *ICPHandler) DeleteAllICPs(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.icpFlow.DeleteAll(h.createRequestContext(c, "/api/v1/icps"), metadata)
	if err != nil {
		log.Println("ICP clear failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete ICP personas", "ICP_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "All ICP personas deleted", result)
}

// SuggestICPs generates persona drafts from the brand profile and market data
// @Summary Suggest ICP Personas
// @Description Generate persona drafts via the completion API. Drafts are returned for review and are not persisted.
// @Tags ICP Personas
// @Accept json
// @Produce json
// @Param request body dto.SuggestICPsRequest false "Optional suggestion count (1-5, default 3)"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestICPsResponse} "Suggestions generated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 412 {object} dto.APIResponse "Brand not configured"
// @Failure 502 {object} dto.APIResponse "Completion API failure"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/icps/suggest [post]
func (h *ICPHandler) SuggestICPs(c fiber.Ctx) error {
	var req dto.SuggestICPsRequest
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

	// One completion call, allow extra time
	result, err := h.icpFlow.Suggest(h.createRequestContextWithTimeout(c, "/api/v1/icps/suggest", 3*time.Minute), &req, metadata)
	if err != nil {
		if businessflow.IsBrandNotConfigured(err) {
			return h.ErrorResponse(c, fiber.StatusPreconditionFailed, "Configure the brand before requesting persona suggestions", "BRAND_NOT_CONFIGURED", nil)
		}
		if businessflow.IsEmptyCompletionResponse(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Empty response from completion API", "EMPTY_COMPLETION_RESPONSE", nil)
		}
		if businessflow.IsSchemaParse(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Failed to parse persona suggestions", "SCHEMA_PARSE_ERROR", nil)
		}

		log.Println("ICP suggestion failed:", err)
		return h.ErrorResponse(c, fiber.StatusBadGateway, "Failed to generate persona suggestions", "SUGGESTION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Persona suggestions generated", result)
}

// createRequestContext creates a context with request metadata and timeout
func (h *ICPHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *ICPHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
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
