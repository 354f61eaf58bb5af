package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// RecommendationFlow represents the two-stage recommendation pipeline and
// the read side over its persisted sessions
type RecommendationFlow interface {
	Generate(ctx context.Context, metadata *ClientMetadata) (*dto.GenerateRecommendationsResponse, error)
	Latest(ctx context.Context) (*dto.RecommendationSessionDTO, error)
	ListSessions(ctx context.Context, limit, offset int) (*dto.ListSessionsResponse, error)
	GetSession(ctx context.Context, id uint) (*dto.RecommendationSessionDTO, error)
	ExportSessionXLSX(ctx context.Context, id uint) (string, []byte, error)
	DebugLogs(ctx context.Context) (*dto.DiagnosticLogResponse, error)
	ClearDebugLogs(ctx context.Context) (*dto.ClearDiagnosticLogResponse, error)
}

// RecommendationFlowImpl implements aggregate, select, generate and persist.
// One call to Generate is one pipeline run: a single synchronous pass with no
// retries and no parallel generation.
type RecommendationFlowImpl struct {
	db                *gorm.DB
	brandRepo         repository.BrandInfoRepository
	icpRepo           repository.ICPPersonaRepository
	chatRepo          repository.ChatSampleRepository
	domainRepo        repository.CitedDomainRepository
	sessionRepo       repository.RecommendationSessionRepository
	actionRepo        repository.RecommendationActionRepository
	exampleRepo       repository.RecommendationExampleRepository
	completionService services.CompletionService
	completionConfig  *config.CompletionConfig
	cacheConfig       *config.CacheConfig
	rc                *redis.Client
	diag              *DiagnosticLog
}

func NewRecommendationFlow(
	db *gorm.DB,
	brandRepo repository.BrandInfoRepository,
	icpRepo repository.ICPPersonaRepository,
	chatRepo repository.ChatSampleRepository,
	domainRepo repository.CitedDomainRepository,
	sessionRepo repository.RecommendationSessionRepository,
	actionRepo repository.RecommendationActionRepository,
	exampleRepo repository.RecommendationExampleRepository,
	completionService services.CompletionService,
	completionConfig *config.CompletionConfig,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
	diag *DiagnosticLog,
) RecommendationFlow {
	return &RecommendationFlowImpl{
		db:                db,
		brandRepo:         brandRepo,
		icpRepo:           icpRepo,
		chatRepo:          chatRepo,
		domainRepo:        domainRepo,
		sessionRepo:       sessionRepo,
		actionRepo:        actionRepo,
		exampleRepo:       exampleRepo,
		completionService: completionService,
		completionConfig:  completionConfig,
		cacheConfig:       cacheConfig,
		rc:                rc,
		diag:              diag,
	}
}

func (f *RecommendationFlowImpl) Generate(ctx context.Context, metadata *ClientMetadata) (*dto.GenerateRecommendationsResponse, error) {
	// Stage 0: aggregate. Preconditions are checked before any API call.
	bundle, err := f.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	// Stage 1: strategic selector. Any failure here aborts the run before a
	// session row exists.
	selected, warnings, err := f.selectActions(ctx, bundle)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(dto.DataSnapshotDTO{
		ICPCount:    len(bundle.ICPs),
		ChatCount:   len(bundle.Chats),
		DomainCount: len(bundle.Domains),
	})
	if err != nil {
		return nil, NewBusinessError("SESSION_CREATE_FAILED", "Failed to encode data snapshot", err)
	}

	session := &models.RecommendationSession{
		BrandName:    bundle.Brand.Name,
		DataSnapshot: string(snapshot),
	}
	if err := f.sessionRepo.Save(ctx, session); err != nil {
		return nil, NewBusinessError("SESSION_CREATE_FAILED", "Failed to create recommendation session", err)
	}

	// Stage 2: one content generator call per selected action, sequential.
	// Failures skip the action; committed rows from earlier actions stay.
	generated := make([]dto.GeneratedActionSummary, 0, len(selected))
	skipped := make([]dto.SkippedAction, 0)
	for _, sel := range selected {
		action := ActionByID(sel.ActionID)

		examples, err := f.generateExamples(ctx, bundle, action, &sel)
		if err != nil {
			log.Printf("Content generation skipped for %s: %v", sel.ActionID, err)
			skipped = append(skipped, dto.SkippedAction{
				ActionType: sel.ActionID,
				Reason:     generatorSkipReason(err),
			})
			continue
		}

		summary, err := f.persistAction(ctx, session.ID, action, &sel, examples)
		if err != nil {
			log.Printf("Persisting action %s failed: %v", sel.ActionID, err)
			skipped = append(skipped, dto.SkippedAction{
				ActionType: sel.ActionID,
				Reason:     "Failed to save generated examples",
			})
			continue
		}
		generated = append(generated, *summary)
	}

	f.invalidateLatestCache(ctx)

	return &dto.GenerateRecommendationsResponse{
		Message:     "Recommendations generated",
		SessionID:   session.ID,
		SessionUUID: session.UUID.String(),
		Actions:     generated,
		Skipped:     skipped,
		Warnings:    warnings,
	}, nil
}

// aggregate loads the pipeline's inputs: the brand, every persona, up to 20
// chats and the top 20 domains by average citations.
func (f *RecommendationFlowImpl) aggregate(ctx context.Context) (*MarketingBundle, error) {
	brand, err := f.brandRepo.Get(ctx)
	if err != nil {
		return nil, NewBusinessError("BRAND_LOOKUP_FAILED", "Failed to load brand information", err)
	}
	if brand == nil {
		return nil, NewBusinessError("BRAND_NOT_CONFIGURED", "Configure the brand before generating recommendations", ErrBrandNotConfigured)
	}

	icps, err := f.icpRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("ICP_LIST_FAILED", "Failed to load ICP personas", err)
	}
	if len(icps) == 0 {
		return nil, NewBusinessError("NO_ICP_PERSONAS", "Add at least one ICP persona before generating recommendations", ErrNoICPPersonas)
	}

	chats, err := f.chatRepo.ListRecent(ctx, utils.MaxAggregatedChats)
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to load chat samples", err)
	}
	domains, err := f.domainRepo.ListTopCited(ctx, utils.MaxAggregatedDomains)
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to load cited domains", err)
	}

	return NewMarketingBundle(brand, deref(icps), deref(chats), deref(domains)), nil
}

// selectActions runs the strategic selector and validates its response.
// Validation order is part of the contract: empty response, then schema
// parse, then the missing field, then the zero-action check, then the soft
// count warning, then the closed-catalog ID check. An out-of-range count only
// warns; a single unknown ID fails the whole run.
func (f *RecommendationFlowImpl) selectActions(ctx context.Context, bundle *MarketingBundle) ([]SelectedAction, []string, error) {
	systemPrompt := BuildSelectorSystemPrompt()
	userPrompt := BuildSelectorUserPrompt(bundle)

	raw, err := f.completionService.Complete(ctx, &services.CompletionRequest{
		Model:        f.completionConfig.SelectorModel,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Schema:       StrategicRecommendationsSchema(),
	})
	if err != nil {
		f.diag.Record("Strategic Selector", f.completionConfig.SelectorModel, "", systemPrompt, userPrompt, "ERROR: "+err.Error())
		return nil, nil, NewBusinessError("SELECTOR_CALL_FAILED", "Strategic selector call failed", err)
	}
	f.diag.Record("Strategic Selector", f.completionConfig.SelectorModel, "", systemPrompt, userPrompt, raw)

	text := services.SanitizeJSONText(raw)
	if text == "" {
		return nil, nil, NewBusinessError("EMPTY_COMPLETION_RESPONSE", "Empty response from strategic selector", ErrEmptyCompletionResponse)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, nil, NewBusinessError("SCHEMA_PARSE_ERROR", "Failed to parse strategic selector response", fmt.Errorf("%w: raw response: %s", ErrSchemaParse, text))
	}

	rawActions, ok := payload["selected_actions"]
	if !ok {
		return nil, nil, NewBusinessError("MISSING_SELECTED_ACTIONS", "Strategic selector response is missing 'selected_actions'", ErrMissingSelectedActions)
	}

	var actions []SelectedAction
	if err := json.Unmarshal(rawActions, &actions); err != nil {
		return nil, nil, NewBusinessError("SCHEMA_PARSE_ERROR", "Failed to parse strategic selector response", fmt.Errorf("%w: raw response: %s", ErrSchemaParse, text))
	}

	if len(actions) == 0 {
		return nil, nil, NewBusinessError("NO_ACTIONS_SELECTED", "Strategic selector returned zero actions", ErrNoActionsSelected)
	}

	var warnings []string
	if len(actions) < utils.MinSelectedActions || len(actions) > utils.MaxSelectedActions {
		warning := fmt.Sprintf("Expected 3-5 actions, got %d. Proceeding anyway...", len(actions))
		log.Println(warning)
		warnings = append(warnings, warning)
	}

	// No partial acceptance: one unknown ID rejects the whole selection
	for _, action := range actions {
		if !IsValidActionID(action.ActionID) {
			message := fmt.Sprintf("Invalid action_id: %s. Must be one of: %s", action.ActionID, strings.Join(ActionCatalogIDs(), ", "))
			return nil, nil, NewBusinessError("INVALID_ACTION_ID", message, ErrInvalidActionID)
		}
	}

	return actions, warnings, nil
}

// generateExamples runs one content generator call for one selected action.
// All failure modes here are recoverable at the run level.
func (f *RecommendationFlowImpl) generateExamples(ctx context.Context, bundle *MarketingBundle, action *MarketingAction, sel *SelectedAction) ([]GeneratedExample, error) {
	systemPrompt := BuildGeneratorSystemPrompt(action, sel)
	exampleCount := ExampleCountHint(sel.ActionID, len(sel.TargetICPs))
	userPrompt := BuildGeneratorUserPrompt(bundle, action.Name, exampleCount)
	agent := fmt.Sprintf("Content Generator (%s)", action.Name)

	raw, err := f.completionService.Complete(ctx, &services.CompletionRequest{
		Model:        f.completionConfig.GeneratorModel,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Schema:       ContentExamplesSchema(),
	})
	if err != nil {
		f.diag.Record(agent, f.completionConfig.GeneratorModel, sel.ActionID, systemPrompt, userPrompt, "ERROR: "+err.Error())
		return nil, fmt.Errorf("content generator call failed: %w", err)
	}
	f.diag.Record(agent, f.completionConfig.GeneratorModel, sel.ActionID, systemPrompt, userPrompt, raw)

	text := services.SanitizeJSONText(raw)
	if text == "" {
		return nil, ErrEmptyCompletionResponse
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
	}

	rawExamples, ok := payload["examples"]
	if !ok {
		return nil, ErrMissingExamples
	}

	var examples []GeneratedExample
	if err := json.Unmarshal(rawExamples, &examples); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
	}
	if len(examples) == 0 {
		return nil, ErrNoExamplesGenerated
	}

	return examples, nil
}

// persistAction writes one action row and its example rows in a single
// transaction. The session row referenced here was committed earlier, so
// rolling back one action never touches previous actions.
func (f *RecommendationFlowImpl) persistAction(ctx context.Context, sessionID uint, action *MarketingAction, sel *SelectedAction, examples []GeneratedExample) (*dto.GeneratedActionSummary, error) {
	targetICPs := sel.TargetICPs
	if targetICPs == nil {
		targetICPs = []string{}
	}

	priority := int(sel.Priority)
	if priority == 0 {
		priority = utils.DefaultActionPriority
	}

	actionRow := &models.RecommendationAction{
		SessionID:  sessionID,
		ActionType: models.ActionType(sel.ActionID),
		ActionName: action.Name,
		Rationale:  sel.Rationale,
		TargetICPs: pq.StringArray(targetICPs),
		Priority:   priority,
	}

	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.actionRepo.Save(txCtx, actionRow); err != nil {
			return err
		}

		exampleRows := make([]*models.RecommendationExample, 0, len(examples))
		for _, example := range examples {
			title := strings.TrimSpace(example.Title)
			if title == "" {
				title = utils.DefaultExampleTitle
			}
			exampleRows = append(exampleRows, &models.RecommendationExample{
				ActionID:       actionRow.ID,
				Title:          title,
				Content:        example.Content,
				TargetingNotes: example.TargetingNotes,
			})
		}
		return f.exampleRepo.SaveBatch(txCtx, exampleRows)
	})
	if err != nil {
		return nil, err
	}

	return &dto.GeneratedActionSummary{
		ActionType:   sel.ActionID,
		ActionName:   action.Name,
		Priority:     priority,
		ExampleCount: len(examples),
	}, nil
}

func generatorSkipReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCompletionResponse):
		return "Empty response from completion API"
	case errors.Is(err, ErrMissingExamples):
		return "No 'examples' key in response"
	case errors.Is(err, ErrNoExamplesGenerated):
		return "No examples generated"
	case errors.Is(err, ErrSchemaParse):
		return "Failed to parse content generator response"
	default:
		return "Content generator call failed"
	}
}

func (f *RecommendationFlowImpl) Latest(ctx context.Context) (*dto.RecommendationSessionDTO, error) {
	cacheKey := redisKey(*f.cacheConfig, utils.LatestSessionCacheKey)

	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.RecommendationSessionDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	session, err := f.sessionRepo.Latest(ctx)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to load the latest session", err)
	}
	if session == nil {
		return nil, NewBusinessError("NO_SESSIONS", "No recommendation sessions exist yet", ErrSessionNotFound)
	}

	out := ToRecommendationSessionDTO(*session)

	if f.rc != nil {
		if bs, err := json.Marshal(out); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, f.cacheConfig.DefaultTTL).Err()
		}
	}

	return &out, nil
}

func (f *RecommendationFlowImpl) ListSessions(ctx context.Context, limit, offset int) (*dto.ListSessionsResponse, error) {
	if limit <= 0 {
		limit = utils.DefaultSessionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := f.sessionRepo.ListSessions(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to list sessions", err)
	}
	total, err := f.sessionRepo.Count(ctx, models.RecommendationSessionFilter{})
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to count sessions", err)
	}

	out := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, ToSessionSummaryDTO(*session))
	}
	return &dto.ListSessionsResponse{Sessions: out, Total: total}, nil
}

func (f *RecommendationFlowImpl) GetSession(ctx context.Context, id uint) (*dto.RecommendationSessionDTO, error) {
	session, err := f.sessionRepo.ByIDWithDetails(ctx, id)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to load session", err)
	}
	if session == nil {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Recommendation session not found", ErrSessionNotFound)
	}
	out := ToRecommendationSessionDTO(*session)
	return &out, nil
}

// ExportSessionXLSX renders one session as a three-sheet workbook.
func (f *RecommendationFlowImpl) ExportSessionXLSX(ctx context.Context, id uint) (string, []byte, error) {
	session, err := f.sessionRepo.ByIDWithDetails(ctx, id)
	if err != nil {
		return "", nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to load session", err)
	}
	if session == nil {
		return "", nil, NewBusinessError("SESSION_NOT_FOUND", "Recommendation session not found", ErrSessionNotFound)
	}

	detail := ToRecommendationSessionDTO(*session)

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	// Summary sheet
	summarySheet := "Summary"
	xl.SetSheetName(xl.GetSheetName(0), summarySheet)
	exampleTotal := 0
	for _, action := range detail.Actions {
		exampleTotal += len(action.Examples)
	}
	summaryRows := [][]string{
		{"Session ID", strconv.FormatUint(uint64(detail.ID), 10)},
		{"Session UUID", detail.UUID},
		{"Created At", detail.CreatedAt},
		{"Brand", detail.BrandName},
		{"ICP Count", strconv.Itoa(detail.DataSnapshot.ICPCount)},
		{"Chat Count", strconv.Itoa(detail.DataSnapshot.ChatCount)},
		{"Domain Count", strconv.Itoa(detail.DataSnapshot.DomainCount)},
		{"Actions", strconv.Itoa(len(detail.Actions))},
		{"Examples", strconv.Itoa(exampleTotal)},
	}
	for ri, row := range summaryRows {
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+1)
		_ = xl.SetSheetRow(summarySheet, cellRef, &row)
	}

	// Actions sheet, already ordered by priority
	actionsSheet := "Actions"
	_, _ = xl.NewSheet(actionsSheet)
	actionsHeader := []string{"action_type", "action_name", "priority", "target_icps", "rationale", "example_count"}
	_ = xl.SetSheetRow(actionsSheet, "A1", &actionsHeader)
	for ri, action := range detail.Actions {
		record := []string{
			action.ActionType,
			action.ActionName,
			strconv.Itoa(action.Priority),
			strings.Join(action.TargetICPs, ", "),
			action.Rationale,
			strconv.Itoa(len(action.Examples)),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(actionsSheet, cellRef, &record)
	}

	// Examples sheet
	examplesSheet := "Examples"
	_, _ = xl.NewSheet(examplesSheet)
	examplesHeader := []string{"action_type", "action_name", "title", "content", "targeting_notes"}
	_ = xl.SetSheetRow(examplesSheet, "A1", &examplesHeader)
	ri := 2
	for _, action := range detail.Actions {
		for _, example := range action.Examples {
			record := []string{
				action.ActionType,
				action.ActionName,
				example.Title,
				example.Content,
				example.TargetingNotes,
			}
			cellRef, _ := excelize.CoordinatesToCellName(1, ri)
			_ = xl.SetSheetRow(examplesSheet, cellRef, &record)
			ri++
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("recommendations_session_%d.xlsx", detail.ID)
	return filename, buf.Bytes(), nil
}

func (f *RecommendationFlowImpl) DebugLogs(ctx context.Context) (*dto.DiagnosticLogResponse, error) {
	entries := f.diag.Entries()
	out := make([]dto.DiagnosticEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.DiagnosticEntryDTO{
			Timestamp: entry.Timestamp,
			Agent:     entry.Agent,
			Model:     entry.Model,
			Request: dto.DiagnosticRequestDTO{
				Action:       entry.Request.Action,
				SystemPrompt: entry.Request.SystemPrompt,
				UserPrompt:   entry.Request.UserPrompt,
			},
			Response: entry.Response,
		})
	}
	return &dto.DiagnosticLogResponse{Entries: out, Total: len(out)}, nil
}

func (f *RecommendationFlowImpl) ClearDebugLogs(ctx context.Context) (*dto.ClearDiagnosticLogResponse, error) {
	removed := f.diag.Clear()
	return &dto.ClearDiagnosticLogResponse{Message: "Debug logs cleared", Cleared: removed}, nil
}

func (f *RecommendationFlowImpl) invalidateLatestCache(ctx context.Context) {
	if f.rc == nil {
		return
	}
	_ = f.rc.Del(ctx, redisKey(*f.cacheConfig, utils.LatestSessionCacheKey)).Err()
}
