// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/brandscope-io/brandscope/app/dto"
	businessflow "github.com/brandscope-io/brandscope/business_flow"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/gofiber/fiber/v3"
)

// RecommendationHandlerInterface defines the contract for recommendation handlers
type RecommendationHandlerInterface interface {
	Generate(c fiber.Ctx) error
	GetLatest(c fiber.Ctx) error
	ListSessions(c fiber.Ctx) error
	GetSession(c fiber.Ctx) error
	ExportSession(c fiber.Ctx) error
	GetDebugLogs(c fiber.Ctx) error
	ClearDebugLogs(c fiber.Ctx) error
}

// RecommendationHandler handles recommendation pipeline HTTP requests
type RecommendationHandler struct {
	recommendationFlow businessflow.RecommendationFlow
}

func (h *RecommendationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *RecommendationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationFlow businessflow.RecommendationFlow) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationFlow: recommendationFlow,
	}
}

// Generate runs the full two-stage recommendation pipeline
// @Summary Generate Recommendations
// @Description Aggregate brand and market data, select marketing actions via the strategic model, generate content examples per action, and persist the session
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GenerateRecommendationsResponse} "Recommendations generated"
// @Failure 412 {object} dto.APIResponse "Brand not configured or no personas defined"
// @Failure 502 {object} dto.APIResponse "Strategic selection failed"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/generate [post]
func (h *RecommendationHandler) Generate(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	// The pipeline makes one selector call plus one generator call per
	// selected action, all sequential
	ctx := h.createRequestContextWithTimeout(c, "/api/v1/recommendations/generate", 15*time.Minute)

	result, err := h.recommendationFlow.Generate(ctx, metadata)
	if err != nil {
		if businessflow.IsBrandNotConfigured(err) {
			return h.ErrorResponse(c, fiber.StatusPreconditionFailed, "Configure the brand before generating recommendations", "BRAND_NOT_CONFIGURED", nil)
		}
		if businessflow.IsNoICPPersonas(err) {
			return h.ErrorResponse(c, fiber.StatusPreconditionFailed, "Define at least one ICP persona before generating recommendations", "NO_ICP_PERSONAS", nil)
		}

		// Selector failures abort the run before a session row exists. The
		// business error detail carries the raw model text where relevant.
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch {
			case businessflow.IsEmptyCompletionResponse(err):
				return h.ErrorResponse(c, fiber.StatusBadGateway, be.Message, "EMPTY_COMPLETION_RESPONSE", nil)
			case businessflow.IsSchemaParse(err):
				return h.ErrorResponse(c, fiber.StatusBadGateway, be.Message, "SCHEMA_PARSE_ERROR", be.Err.Error())
			case businessflow.IsMissingSelectedActions(err):
				return h.ErrorResponse(c, fiber.StatusBadGateway, be.Message, "MISSING_SELECTED_ACTIONS", nil)
			case businessflow.IsNoActionsSelected(err):
				return h.ErrorResponse(c, fiber.StatusBadGateway, be.Message, "NO_ACTIONS_SELECTED", nil)
			case businessflow.IsInvalidActionID(err):
				return h.ErrorResponse(c, fiber.StatusBadGateway, be.Message, "INVALID_ACTION_ID", be.Err.Error())
			}
		}

		log.Println("Recommendation generation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate recommendations", "GENERATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Recommendations generated", result)
}

// GetLatest returns the most recent session with actions and examples
// @Summary Latest Recommendations
// @Description Retrieve the most recent recommendation session with its actions ordered by priority and their examples
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationSessionDTO} "Latest session"
// @Failure 404 {object} dto.APIResponse "No sessions exist yet"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/latest [get]
func (h *RecommendationHandler) GetLatest(c fiber.Ctx) error {
	result, err := h.recommendationFlow.Latest(h.createRequestContext(c, "/api/v1/recommendations/latest"))
	if err != nil {
		if businessflow.IsSessionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No recommendation sessions exist yet", "NO_SESSIONS", nil)
		}

		log.Println("Latest session lookup failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load the latest session", "SESSION_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Latest recommendations retrieved", result)
}

// ListSessions returns the session history, newest first
// @Summary List Recommendation Sessions
// @Description Retrieve session history without example payloads
// @Tags Recommendations
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.APIResponse{data=dto.ListSessionsResponse} "Sessions retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/sessions [get]
func (h *RecommendationHandler) ListSessions(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	result, err := h.recommendationFlow.ListSessions(h.createRequestContext(c, "/api/v1/recommendations/sessions"), limit, offset)
	if err != nil {
		log.Println("Session listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load sessions", "SESSION_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Sessions retrieved", result)
}

// GetSession returns one session by id with actions and examples
// @Summary Get Recommendation Session
// @Description Retrieve a single session with its actions ordered by priority and their examples
// @Tags Recommendations
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationSessionDTO} "Session retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid session id"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/sessions/{id} [get]
func (h *RecommendationHandler) GetSession(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Session id must be a positive integer", "INVALID_SESSION_ID", nil)
	}

	result, err := h.recommendationFlow.GetSession(h.createRequestContext(c, "/api/v1/recommendations/sessions/"+c.Params("id")), uint(id))
	if err != nil {
		if businessflow.IsSessionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Recommendation session not found", "SESSION_NOT_FOUND", nil)
		}

		log.Println("Session lookup failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load session", "SESSION_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Session retrieved", result)
}

// ExportSession streams one session as an XLSX workbook
// @Summary Export Recommendation Session
// @Description Download a session as an XLSX workbook with Summary, Actions, and Examples sheets
// @Tags Recommendations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Session ID"
// @Success 200 {string} string "XLSX file"
// @Failure 400 {object} dto.APIResponse "Invalid session id"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/sessions/{id}/export [get]
func (h *RecommendationHandler) ExportSession(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Session id must be a positive integer", "INVALID_SESSION_ID", nil)
	}

	filename, data, err := h.recommendationFlow.ExportSessionXLSX(h.createRequestContext(c, "/api/v1/recommendations/sessions/"+c.Params("id")+"/export"), uint(id))
	if err != nil {
		if businessflow.IsSessionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Recommendation session not found", "SESSION_NOT_FOUND", nil)
		}

		log.Println("Session export failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export session", "EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// GetDebugLogs returns recorded completion exchanges, newest first
// @Summary Get Debug Logs
// @Description Retrieve the in-memory log of completion API exchanges for prompt debugging
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DiagnosticLogResponse} "Debug logs retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/debug/logs [get]
func (h *RecommendationHandler) GetDebugLogs(c fiber.Ctx) error {
	result, err := h.recommendationFlow.DebugLogs(h.createRequestContext(c, "/api/v1/recommendations/debug/logs"))
	if err != nil {
		log.Println("Debug log retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load debug logs", "DEBUG_LOGS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Debug logs retrieved", result)
}

// ClearDebugLogs empties the in-memory diagnostic log
// @Summary Clear Debug Logs
// @Description Remove all recorded completion API exchanges
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ClearDiagnosticLogResponse} "Debug logs cleared"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/recommendations/debug/logs [delete]
func (h *RecommendationHandler) ClearDebugLogs(c fiber.Ctx) error {
	result, err := h.recommendationFlow.ClearDebugLogs(h.createRequestContext(c, "/api/v1/recommendations/debug/logs"))
	if err != nil {
		log.Println("Debug log clear failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear debug logs", "DEBUG_LOGS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// createRequestContext creates a context with request metadata and timeout
func (h *RecommendationHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *RecommendationHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
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
