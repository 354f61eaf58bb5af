package businessflow

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

// Column headers expected in domain import files, matched exactly.
var requiredDomainColumns = []string{"Domain", "Type", "Used", "Avg. Citations"}

// Column headers expected in chat import files, matched exactly. Extra
// columns are ignored.
var requiredChatColumns = []string{"id", "model", "user", "assistant"}

// MarketDataFlow represents market data import and inspection operations
type MarketDataFlow interface {
	Status(ctx context.Context) (*dto.MarketDataStatusResponse, error)
	ImportDomains(ctx context.Context, filename string, file io.Reader, metadata *ClientMetadata) (*dto.ImportDomainsResponse, error)
	ImportChats(ctx context.Context, filename string, file io.Reader, metadata *ClientMetadata) (*dto.ImportChatsResponse, error)
	ListDomains(ctx context.Context, limit int) (*dto.ListDomainsResponse, error)
	ListChats(ctx context.Context, limit int) (*dto.ListChatsResponse, error)
	ClearDomains(ctx context.Context, metadata *ClientMetadata) (*dto.ClearMarketDataResponse, error)
	ClearChats(ctx context.Context, metadata *ClientMetadata) (*dto.ClearMarketDataResponse, error)
}

// MarketDataFlowImpl implements validated spreadsheet imports with
// all-or-nothing semantics per file
type MarketDataFlowImpl struct {
	brandRepo   repository.BrandInfoRepository
	icpRepo     repository.ICPPersonaRepository
	domainRepo  repository.CitedDomainRepository
	chatRepo    repository.ChatSampleRepository
	cacheConfig *config.CacheConfig
	rc          *redis.Client
}

func NewMarketDataFlow(
	brandRepo repository.BrandInfoRepository,
	icpRepo repository.ICPPersonaRepository,
	domainRepo repository.CitedDomainRepository,
	chatRepo repository.ChatSampleRepository,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
) MarketDataFlow {
	return &MarketDataFlowImpl{
		brandRepo:   brandRepo,
		icpRepo:     icpRepo,
		domainRepo:  domainRepo,
		chatRepo:    chatRepo,
		cacheConfig: cacheConfig,
		rc:          rc,
	}
}

func (f *MarketDataFlowImpl) Status(ctx context.Context) (*dto.MarketDataStatusResponse, error) {
	cacheKey := redisKey(*f.cacheConfig, utils.MarketDataStatusCacheKey)

	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.MarketDataStatusResponse
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	brand, err := f.brandRepo.Get(ctx)
	if err != nil {
		return nil, NewBusinessError("BRAND_LOOKUP_FAILED", "Failed to load brand information", err)
	}
	icpCount, err := f.icpRepo.Count(ctx, models.ICPPersonaFilter{})
	if err != nil {
		return nil, NewBusinessError("ICP_LIST_FAILED", "Failed to count ICP personas", err)
	}
	chatCount, err := f.chatRepo.Count(ctx, models.ChatSampleFilter{})
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to count chat samples", err)
	}
	domainCount, err := f.domainRepo.Count(ctx, models.CitedDomainFilter{})
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to count cited domains", err)
	}

	status := &dto.MarketDataStatusResponse{
		BrandConfigured: brand != nil,
		ICPCount:        icpCount,
		ChatCount:       chatCount,
		DomainCount:     domainCount,
	}

	if f.rc != nil {
		if bs, err := json.Marshal(status); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, f.cacheConfig.DefaultTTL).Err()
		}
	}

	return status, nil
}

func (f *MarketDataFlowImpl) ImportDomains(ctx context.Context, filename string, file io.Reader, metadata *ClientMetadata) (*dto.ImportDomainsResponse, error) {
	header, rows, err := readTable(filename, file)
	if err != nil {
		return nil, err
	}

	colIndex, err := requireColumns(header, requiredDomainColumns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewBusinessError("EMPTY_IMPORT_FILE", "The uploaded file contains no data rows", ErrEmptyImportFile)
	}

	// Column-wise validation mirrors the upload form: the whole file is
	// rejected on the first failing check, nothing is partially imported.
	for _, row := range rows {
		if strings.TrimSpace(cellAt(row, colIndex["Domain"])) == "" {
			return nil, NewBusinessError("DOMAIN_IMPORT_INVALID", "Some domains are empty", ErrEmptyDomainValue)
		}
	}
	for _, row := range rows {
		if _, err := parsePercent(cellAt(row, colIndex["Used"])); err != nil {
			return nil, NewBusinessError("DOMAIN_IMPORT_INVALID", "'Used' column contains non-numeric values", ErrInvalidNumericValue)
		}
	}
	for _, row := range rows {
		if _, err := parseNumeric(cellAt(row, colIndex["Avg. Citations"])); err != nil {
			return nil, NewBusinessError("DOMAIN_IMPORT_INVALID", "'Avg. Citations' column contains non-numeric values", ErrInvalidNumericValue)
		}
	}
	invalidTypes := make([]string, 0)
	seenInvalid := make(map[string]bool)
	for _, row := range rows {
		value := strings.TrimSpace(cellAt(row, colIndex["Type"]))
		if !models.DomainType(value).Valid() && !seenInvalid[value] {
			seenInvalid[value] = true
			invalidTypes = append(invalidTypes, value)
		}
	}
	if len(invalidTypes) > 0 {
		message := fmt.Sprintf("Invalid Type values found: %s. Must be one of: %s",
			strings.Join(invalidTypes, ", "), strings.Join(models.DomainTypeNames(), ", "))
		return nil, NewBusinessError("DOMAIN_IMPORT_INVALID", message, ErrInvalidDomainType)
	}

	domains := make([]*models.CitedDomain, 0, len(rows))
	typeSet := make(map[string]bool)
	var citationsSum float64
	for _, row := range rows {
		usage, _ := parsePercent(cellAt(row, colIndex["Used"]))
		citations, _ := parseNumeric(cellAt(row, colIndex["Avg. Citations"]))
		domainType := strings.TrimSpace(cellAt(row, colIndex["Type"]))
		typeSet[domainType] = true
		citationsSum += citations
		domains = append(domains, &models.CitedDomain{
			Domain:       strings.TrimSpace(cellAt(row, colIndex["Domain"])),
			Type:         models.DomainType(domainType),
			UsagePercent: usage,
			AvgCitations: citations,
		})
	}

	if err := f.domainRepo.UpsertBatch(ctx, domains); err != nil {
		return nil, NewBusinessError("DOMAIN_IMPORT_FAILED", "Failed to import domains", err)
	}

	total, err := f.domainRepo.Count(ctx, models.CitedDomainFilter{})
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to count cited domains", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.ImportDomainsResponse{
		Message:      fmt.Sprintf("Successfully imported %d domains", len(domains)),
		Imported:     len(domains),
		TotalDomains: total,
		UniqueTypes:  len(typeSet),
		AvgCitations: citationsSum / float64(len(domains)),
	}, nil
}

func (f *MarketDataFlowImpl) ImportChats(ctx context.Context, filename string, file io.Reader, metadata *ClientMetadata) (*dto.ImportChatsResponse, error) {
	header, rows, err := readTable(filename, file)
	if err != nil {
		return nil, err
	}

	colIndex, err := requireColumns(header, requiredChatColumns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewBusinessError("EMPTY_IMPORT_FILE", "The uploaded file contains no data rows", ErrEmptyImportFile)
	}

	for _, row := range rows {
		if strings.TrimSpace(cellAt(row, colIndex["id"])) == "" {
			return nil, NewBusinessError("CHAT_IMPORT_INVALID", "Some chat IDs are empty", ErrEmptyRequiredCell)
		}
	}
	for _, row := range rows {
		if strings.TrimSpace(cellAt(row, colIndex["model"])) == "" {
			return nil, NewBusinessError("CHAT_IMPORT_INVALID", "Some model values are empty", ErrEmptyRequiredCell)
		}
	}

	chats := make([]*models.ChatSample, 0, len(rows))
	modelSet := make(map[string]bool)
	withResponse := 0
	for _, row := range rows {
		model := strings.TrimSpace(cellAt(row, colIndex["model"]))
		assistant := cellAt(row, colIndex["assistant"])
		modelSet[model] = true
		if strings.TrimSpace(assistant) != "" {
			withResponse++
		}
		chats = append(chats, &models.ChatSample{
			ID:            strings.TrimSpace(cellAt(row, colIndex["id"])),
			Model:         model,
			UserText:      cellAt(row, colIndex["user"]),
			AssistantText: assistant,
		})
	}

	if err := f.chatRepo.UpsertBatch(ctx, chats); err != nil {
		return nil, NewBusinessError("CHAT_IMPORT_FAILED", "Failed to import chats", err)
	}

	total, err := f.chatRepo.Count(ctx, models.ChatSampleFilter{})
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to count chat samples", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.ImportChatsResponse{
		Message:             fmt.Sprintf("Successfully imported %d chats", len(chats)),
		Imported:            len(chats),
		TotalChats:          total,
		UniqueModels:        len(modelSet),
		WithResponsePercent: float64(withResponse) / float64(len(chats)) * 100,
	}, nil
}

func (f *MarketDataFlowImpl) ListDomains(ctx context.Context, limit int) (*dto.ListDomainsResponse, error) {
	if limit <= 0 {
		limit = utils.DefaultListLimit
	}
	domains, err := f.domainRepo.ListTopCited(ctx, limit)
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to load cited domains", err)
	}
	total, err := f.domainRepo.Count(ctx, models.CitedDomainFilter{})
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to count cited domains", err)
	}

	out := make([]dto.CitedDomainDTO, 0, len(domains))
	for _, domain := range domains {
		out = append(out, ToCitedDomainDTO(*domain))
	}
	return &dto.ListDomainsResponse{Domains: out, Total: total}, nil
}

func (f *MarketDataFlowImpl) ListChats(ctx context.Context, limit int) (*dto.ListChatsResponse, error) {
	if limit <= 0 {
		limit = utils.DefaultListLimit
	}
	chats, err := f.chatRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to load chat samples", err)
	}
	total, err := f.chatRepo.Count(ctx, models.ChatSampleFilter{})
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to count chat samples", err)
	}

	out := make([]dto.ChatSampleDTO, 0, len(chats))
	for _, chat := range chats {
		out = append(out, ToChatSampleDTO(*chat))
	}
	return &dto.ListChatsResponse{Chats: out, Total: total}, nil
}

func (f *MarketDataFlowImpl) ClearDomains(ctx context.Context, metadata *ClientMetadata) (*dto.ClearMarketDataResponse, error) {
	total, err := f.domainRepo.Count(ctx, models.CitedDomainFilter{})
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to count cited domains", err)
	}
	if err := f.domainRepo.DeleteAll(ctx); err != nil {
		return nil, NewBusinessError("DOMAIN_CLEAR_FAILED", "Failed to clear cited domains", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.ClearMarketDataResponse{Message: "All cited domains deleted", Deleted: total}, nil
}

func (f *MarketDataFlowImpl) ClearChats(ctx context.Context, metadata *ClientMetadata) (*dto.ClearMarketDataResponse, error) {
	total, err := f.chatRepo.Count(ctx, models.ChatSampleFilter{})
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to count chat samples", err)
	}
	if err := f.chatRepo.DeleteAll(ctx); err != nil {
		return nil, NewBusinessError("CHAT_CLEAR_FAILED", "Failed to clear chat samples", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.ClearMarketDataResponse{Message: "All chat samples deleted", Deleted: total}, nil
}

func (f *MarketDataFlowImpl) invalidateStatusCache(ctx context.Context) {
	if f.rc == nil {
		return
	}
	_ = f.rc.Del(ctx, redisKey(*f.cacheConfig, utils.MarketDataStatusCacheKey)).Err()
}

// readTable reads an uploaded .csv or .xlsx file into a header row plus data
// rows. XLSX files are read from their first sheet.
func readTable(filename string, file io.Reader) ([]string, [][]string, error) {
	if file == nil {
		return nil, nil, NewBusinessError("VALIDATION_ERROR", "Import file is required", ErrEmptyImportFile)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSVTable(file)
	case ".xlsx":
		return readXLSXTable(file)
	default:
		return nil, nil, NewBusinessError("UNSUPPORTED_FILE_FORMAT", "Only .csv and .xlsx files are supported", ErrUnsupportedFileFormat)
	}
}

func readCSVTable(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(bufio.NewReader(file))
	reader.TrimLeadingSpace = true
	// Ragged rows are tolerated; missing trailing cells read as empty
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, NewBusinessError("FILE_READ_ERROR", "Failed to read CSV header", err)
	}

	rows := make([][]string, 0, 256)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, NewBusinessError("FILE_READ_ERROR", "Failed to read CSV row", err)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

func readXLSXTable(file io.Reader) ([]string, [][]string, error) {
	xl, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, NewBusinessError("FILE_READ_ERROR", "Failed to open XLSX file", err)
	}
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, nil, NewBusinessError("FILE_READ_ERROR", "Failed to read XLSX rows", err)
	}
	if len(rows) == 0 {
		return nil, nil, NewBusinessError("EMPTY_IMPORT_FILE", "The uploaded file contains no rows", ErrEmptyImportFile)
	}
	return rows[0], rows[1:], nil
}

// requireColumns maps required header names to their indexes, failing when
// any is absent. Matching is exact, like the upload form it replaces.
func requireColumns(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.TrimSpace(h)] = i
	}

	missing := make([]string, 0)
	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		message := fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))
		return nil, NewBusinessError("MISSING_COLUMNS", message, ErrMissingColumns)
	}
	return colIndex, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parsePercent parses a numeric cell that may carry a trailing percent sign.
func parsePercent(value string) (float64, error) {
	return parseNumeric(strings.TrimSuffix(strings.TrimSpace(value), "%"))
}

func parseNumeric(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("value %q is not a finite number", value)
	}
	return parsed, nil
}
