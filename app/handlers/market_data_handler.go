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

// MarketDataHandlerInterface defines the contract for market data handlers
type MarketDataHandlerInterface interface {
	GetStatus(c fiber.Ctx) error
	ImportDomains(c fiber.Ctx) error
	ImportChats(c fiber.Ctx) error
	ListDomains(c fiber.Ctx) error
	ListChats(c fiber.Ctx) error
	ClearDomains(c fiber.Ctx) error
	ClearChats(c fiber.Ctx) error
}

// MarketDataHandler handles market data HTTP requests
type MarketDataHandler struct {
	marketDataFlow businessflow.MarketDataFlow
}

func (h *MarketDataHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MarketDataHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewMarketDataHandler creates a new market data handler
func NewMarketDataHandler(marketDataFlow businessflow.MarketDataFlow) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataFlow: marketDataFlow,
	}
}

// GetStatus summarizes available market data
// @Summary Market Data Status
// @Description Report whether the brand is configured and how many personas, chats, and domains are stored
// @Tags Market Data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MarketDataStatusResponse} "Status retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/status [get]
func (h *MarketDataHandler) GetStatus(c fiber.Ctx) error {
	result, err := h.marketDataFlow.Status(h.createRequestContext(c, "/api/v1/market-data/status"))
	if err != nil {
		log.Println("Market data status failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load market data status", "STATUS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Market data status retrieved", result)
}

// ImportDomains imports a cited-domain spreadsheet
// @Summary Import Cited Domains
// @Description Upload a .csv or .xlsx file with Domain, Type, Used, and "Avg. Citations" columns. The whole file is validated before anything is imported.
// @Tags Market Data
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Domain spreadsheet (.csv or .xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportDomainsResponse} "Domains imported"
// @Failure 400 {object} dto.APIResponse "Missing file, unsupported format, or failed validation"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/domains/import [post]
func (h *MarketDataHandler) ImportDomains(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "MISSING_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.marketDataFlow.ImportDomains(h.createRequestContext(c, "/api/v1/market-data/domains/import"), fileHeader.Filename, file, metadata)
	if err != nil {
		if status, code, message, ok := importErrorResponse(err); ok {
			return h.ErrorResponse(c, status, message, code, nil)
		}

		log.Println("Domain import failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to import domains", "DOMAIN_IMPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ImportChats imports an assistant-conversation spreadsheet
// @Summary Import Chat Samples
// @Description Upload a .csv or .xlsx file with id, model, user, and assistant columns. The whole file is validated before anything is imported.
// @Tags Market Data
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Chat spreadsheet (.csv or .xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportChatsResponse} "Chats imported"
// @Failure 400 {object} dto.APIResponse "Missing file, unsupported format, or failed validation"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/chats/import [post]
func (h *MarketDataHandler) ImportChats(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "MISSING_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.marketDataFlow.ImportChats(h.createRequestContext(c, "/api/v1/market-data/chats/import"), fileHeader.Filename, file, metadata)
	if err != nil {
		if status, code, message, ok := importErrorResponse(err); ok {
			return h.ErrorResponse(c, status, message, code, nil)
		}

		log.Println("Chat import failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to import chats", "CHAT_IMPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListDomains returns stored cited domains ordered by citations
// @Summary List Cited Domains
// @Description Retrieve cited domains ordered by average citations (desc), then domain name
// @Tags Market Data
// @Produce json
// @Param limit query int false "Maximum rows to return (default 50)"
// @Success 200 {object} dto.APIResponse{data=dto.ListDomainsResponse} "Domains retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/domains [get]
func (h *MarketDataHandler) ListDomains(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	result, err := h.marketDataFlow.ListDomains(h.createRequestContext(c, "/api/v1/market-data/domains"), limit)
	if err != nil {
		log.Println("Domain listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load cited domains", "DOMAIN_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Cited domains retrieved", result)
}

// ListChats returns stored chat samples
// @Summary List Chat Samples
// @Description Retrieve imported assistant conversations ordered by id
// @Tags Market Data
// @Produce json
// @Param limit query int false "Maximum rows to return (default 50)"
// @Success 200 {object} dto.APIResponse{data=dto.ListChatsResponse} "Chats retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/chats [get]
func (h *MarketDataHandler) ListChats(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	result, err := h.marketDataFlow.ListChats(h.createRequestContext(c, "/api/v1/market-data/chats"), limit)
	if err != nil {
		log.Println("Chat listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load chat samples", "CHAT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Chat samples retrieved", result)
}

// ClearDomains deletes every cited domain
// @Summary Clear Cited Domains
// @Description Delete all cited domains and return the removed count
// @Tags Market Data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ClearMarketDataResponse} "Domains deleted"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/domains [delete]
func (h *MarketDataHandler) ClearDomains(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.marketDataFlow.ClearDomains(h.createRequestContext(c, "/api/v1/market-data/domains"), metadata)
	if err != nil {
		log.Println("Domain clear failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear cited domains", "DOMAIN_CLEAR_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ClearChats deletes every chat sample
// @Summary Clear Chat Samples
// @Description Delete all chat samples and return the removed count
// @Tags Market Data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ClearMarketDataResponse} "Chats deleted"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/market-data/chats [delete]
func (h *MarketDataHandler) ClearChats(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.marketDataFlow.ClearChats(h.createRequestContext(c, "/api/v1/market-data/chats"), metadata)
	if err != nil {
		log.Println("Chat clear failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear chat samples", "CHAT_CLEAR_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// importErrorResponse maps file validation failures to a 400 with the
// original business message, which names the offending column or value
func importErrorResponse(err error) (int, string, string, bool) {
	switch {
	case businessflow.IsUnsupportedFileFormat(err),
		businessflow.IsEmptyImportFile(err),
		businessflow.IsMissingColumns(err),
		businessflow.IsInvalidDomainType(err),
		businessflow.IsEmptyDomainValue(err),
		businessflow.IsInvalidNumericValue(err),
		businessflow.IsEmptyRequiredCell(err):
		if be, ok := err.(*businessflow.BusinessError); ok {
			return fiber.StatusBadRequest, be.Code, be.Message, true
		}
		return fiber.StatusBadRequest, "IMPORT_INVALID", err.Error(), true
	}
	return 0, "", "", false
}

// createRequestContext creates a context with request metadata and timeout
func (h *MarketDataHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
