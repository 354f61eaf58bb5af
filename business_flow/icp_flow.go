package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/redis/go-redis/v9"
)

// ICPFlow represents persona management operations used by handlers
type ICPFlow interface {
	List(ctx context.Context) (*dto.ListICPsResponse, error)
	Create(ctx context.Context, req *dto.CreateICPRequest, metadata *ClientMetadata) (*dto.ICPPersonaResponse, error)
	Update(ctx context.Context, name string, req *dto.UpdateICPRequest, metadata *ClientMetadata) (*dto.ICPPersonaResponse, error)
	Delete(ctx context.Context, name string, metadata *ClientMetadata) (*dto.DeleteICPsResponse, error)
	DeleteAll(ctx context.Context, metadata *ClientMetadata) (*dto.DeleteICPsResponse, error)
	Suggest(ctx context.Context, req *dto.SuggestICPsRequest, metadata *ClientMetadata) (*dto.SuggestICPsResponse, error)
}

// ICPFlowImpl implements persona CRUD plus completion-backed suggestions
type ICPFlowImpl struct {
	icpRepo           repository.ICPPersonaRepository
	brandRepo         repository.BrandInfoRepository
	chatRepo          repository.ChatSampleRepository
	domainRepo        repository.CitedDomainRepository
	completionService services.CompletionService
	completionConfig  *config.CompletionConfig
	cacheConfig       *config.CacheConfig
	rc                *redis.Client
	diag              *DiagnosticLog
}

func NewICPFlow(
	icpRepo repository.ICPPersonaRepository,
	brandRepo repository.BrandInfoRepository,
	chatRepo repository.ChatSampleRepository,
	domainRepo repository.CitedDomainRepository,
	completionService services.CompletionService,
	completionConfig *config.CompletionConfig,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
	diag *DiagnosticLog,
) ICPFlow {
	return &ICPFlowImpl{
		icpRepo:           icpRepo,
		brandRepo:         brandRepo,
		chatRepo:          chatRepo,
		domainRepo:        domainRepo,
		completionService: completionService,
		completionConfig:  completionConfig,
		cacheConfig:       cacheConfig,
		rc:                rc,
		diag:              diag,
	}
}

func (f *ICPFlowImpl) List(ctx context.Context) (*dto.ListICPsResponse, error) {
	personas, err := f.icpRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("ICP_LIST_FAILED", "Failed to load ICP personas", err)
	}

	out := make([]dto.ICPPersonaDTO, 0, len(personas))
	for _, persona := range personas {
		out = append(out, ToICPPersonaDTO(*persona))
	}
	return &dto.ListICPsResponse{Personas: out, Total: len(out)}, nil
}

func (f *ICPFlowImpl) Create(ctx context.Context, req *dto.CreateICPRequest, metadata *ClientMetadata) (*dto.ICPPersonaResponse, error) {
	name := strings.TrimSpace(req.Name)
	role := strings.TrimSpace(req.Role)
	goals := strings.TrimSpace(req.Goals)
	challenges := strings.TrimSpace(req.Challenges)
	if name == "" || role == "" || goals == "" || challenges == "" {
		return nil, NewBusinessError("ICP_FIELDS_REQUIRED", "Name, role, goals and challenges are all required", ErrPersonaFieldsRequired)
	}

	existing, err := f.icpRepo.ByName(ctx, name)
	if err != nil {
		return nil, NewBusinessError("ICP_LOOKUP_FAILED", "Failed to check existing personas", err)
	}
	if existing != nil {
		return nil, NewBusinessError("ICP_ALREADY_EXISTS", "A persona with this name already exists", ErrICPPersonaAlreadyExists)
	}

	persona := &models.ICPPersona{
		Name:       name,
		Role:       role,
		Goals:      goals,
		Challenges: challenges,
	}
	if err := f.icpRepo.Save(ctx, persona); err != nil {
		return nil, NewBusinessError("ICP_CREATE_FAILED", "Failed to create ICP persona", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.ICPPersonaResponse{
		Message: "ICP persona created",
		Persona: ToICPPersonaDTO(*persona),
	}, nil
}

func (f *ICPFlowImpl) Update(ctx context.Context, name string, req *dto.UpdateICPRequest, metadata *ClientMetadata) (*dto.ICPPersonaResponse, error) {
	name = strings.TrimSpace(name)
	role := strings.TrimSpace(req.Role)
	goals := strings.TrimSpace(req.Goals)
	challenges := strings.TrimSpace(req.Challenges)
	if name == "" || role == "" || goals == "" || challenges == "" {
		return nil, NewBusinessError("ICP_FIELDS_REQUIRED", "Name, role, goals and challenges are all required", ErrPersonaFieldsRequired)
	}

	existing, err := f.icpRepo.ByName(ctx, name)
	if err != nil {
		return nil, NewBusinessError("ICP_LOOKUP_FAILED", "Failed to load ICP persona", err)
	}
	if existing == nil {
		return nil, NewBusinessError("ICP_NOT_FOUND", "ICP persona not found", ErrICPPersonaNotFound)
	}

	existing.Role = role
	existing.Goals = goals
	existing.Challenges = challenges
	if err := f.icpRepo.Update(ctx, existing); err != nil {
		return nil, NewBusinessError("ICP_UPDATE_FAILED", "Failed to update ICP persona", err)
	}

	return &dto.ICPPersonaResponse{
		Message: "ICP persona updated",
		Persona: ToICPPersonaDTO(*existing),
	}, nil
}

func (f *ICPFlowImpl) Delete(ctx context.Context, name string, metadata *ClientMetadata) (*dto.DeleteICPsResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewBusinessError("ICP_FIELDS_REQUIRED", "Persona name is required", ErrPersonaFieldsRequired)
	}

	existing, err := f.icpRepo.ByName(ctx, name)
	if err != nil {
		return nil, NewBusinessError("ICP_LOOKUP_FAILED", "Failed to load ICP persona", err)
	}
	if existing == nil {
		return nil, NewBusinessError("ICP_NOT_FOUND", "ICP persona not found", ErrICPPersonaNotFound)
	}

	if err := f.icpRepo.DeleteByName(ctx, name); err != nil {
		return nil, NewBusinessError("ICP_DELETE_FAILED", "Failed to delete ICP persona", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.DeleteICPsResponse{Message: "ICP persona deleted", Deleted: 1}, nil
}

func (f *ICPFlowImpl) DeleteAll(ctx context.Context, metadata *ClientMetadata) (*dto.DeleteICPsResponse, error) {
	total, err := f.icpRepo.Count(ctx, models.ICPPersonaFilter{})
	if err != nil {
		return nil, NewBusinessError("ICP_LIST_FAILED", "Failed to count ICP personas", err)
	}

	if err := f.icpRepo.DeleteAll(ctx); err != nil {
		return nil, NewBusinessError("ICP_DELETE_FAILED", "Failed to delete ICP personas", err)
	}

	f.invalidateStatusCache(ctx)

	return &dto.DeleteICPsResponse{Message: "All ICP personas deleted", Deleted: total}, nil
}

func (f *ICPFlowImpl) Suggest(ctx context.Context, req *dto.SuggestICPsRequest, metadata *ClientMetadata) (*dto.SuggestICPsResponse, error) {
	count := req.Count
	if count <= 0 {
		count = utils.DefaultSuggestedPersonaCount
	}
	if count > utils.MaxSuggestedPersonaCount {
		count = utils.MaxSuggestedPersonaCount
	}

	brand, err := f.brandRepo.Get(ctx)
	if err != nil {
		return nil, NewBusinessError("BRAND_LOOKUP_FAILED", "Failed to load brand information", err)
	}
	if brand == nil {
		return nil, NewBusinessError("BRAND_NOT_CONFIGURED", "Configure the brand before requesting persona suggestions", ErrBrandNotConfigured)
	}

	personas, err := f.icpRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("ICP_LIST_FAILED", "Failed to load ICP personas", err)
	}
	chats, err := f.chatRepo.ListRecent(ctx, utils.MaxAggregatedChats)
	if err != nil {
		return nil, NewBusinessError("CHAT_LIST_FAILED", "Failed to load chat samples", err)
	}
	domains, err := f.domainRepo.ListTopCited(ctx, utils.MaxAggregatedDomains)
	if err != nil {
		return nil, NewBusinessError("DOMAIN_LIST_FAILED", "Failed to load cited domains", err)
	}

	bundle := NewMarketingBundle(brand, deref(personas), deref(chats), deref(domains))
	systemPrompt := BuildPersonaSuggestionSystemPrompt(count)
	userPrompt := BuildPersonaSuggestionUserPrompt(bundle, count)

	raw, err := f.completionService.Complete(ctx, &services.CompletionRequest{
		Model:        f.completionConfig.GeneratorModel,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Schema:       PersonaSuggestionsSchema(),
	})
	if err != nil {
		f.diag.Record("ICP Suggester", f.completionConfig.GeneratorModel, "", systemPrompt, userPrompt, "ERROR: "+err.Error())
		return nil, NewBusinessError("SUGGESTION_FAILED", "Failed to generate persona suggestions", err)
	}
	f.diag.Record("ICP Suggester", f.completionConfig.GeneratorModel, "", systemPrompt, userPrompt, raw)

	text := services.SanitizeJSONText(raw)
	if text == "" {
		return nil, NewBusinessError("EMPTY_COMPLETION_RESPONSE", "Empty response from completion API", ErrEmptyCompletionResponse)
	}

	var payload struct {
		Personas []SuggestedPersona `json:"personas"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, NewBusinessError("SCHEMA_PARSE_ERROR", "Failed to parse persona suggestions", fmt.Errorf("%w: raw response: %s", ErrSchemaParse, text))
	}
	if len(payload.Personas) == 0 {
		return nil, NewBusinessError("EMPTY_COMPLETION_RESPONSE", "Completion API returned no personas", ErrEmptyCompletionResponse)
	}

	drafts := make([]dto.ICPPersonaDTO, 0, len(payload.Personas))
	for _, p := range payload.Personas {
		drafts = append(drafts, dto.ICPPersonaDTO{
			Name:       strings.TrimSpace(p.Name),
			Role:       strings.TrimSpace(p.Role),
			Goals:      strings.TrimSpace(p.Goals),
			Challenges: strings.TrimSpace(p.Challenges),
		})
	}

	// Drafts are returned for review, never persisted here
	return &dto.SuggestICPsResponse{
		Message:  "Persona suggestions generated",
		Personas: drafts,
	}, nil
}

func (f *ICPFlowImpl) invalidateStatusCache(ctx context.Context) {
	if f.rc == nil {
		return
	}
	_ = f.rc.Del(ctx, redisKey(*f.cacheConfig, utils.MarketDataStatusCacheKey)).Err()
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, item := range in {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}
