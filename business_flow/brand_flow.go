package businessflow

import (
	"context"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/redis/go-redis/v9"
)

// BrandFlow represents brand configuration operations used by handlers
type BrandFlow interface {
	Get(ctx context.Context) (*dto.GetBrandResponse, error)
	Save(ctx context.Context, req *dto.SaveBrandRequest, metadata *ClientMetadata) (*dto.SaveBrandResponse, error)
	Describe(ctx context.Context, req *dto.DescribeBrandRequest, metadata *ClientMetadata) (*dto.DescribeBrandResponse, error)
}

// BrandFlowImpl implements the brand configuration flow
type BrandFlowImpl struct {
	brandRepo         repository.BrandInfoRepository
	scrapeService     services.ScrapeService
	completionService services.CompletionService
	completionConfig  *config.CompletionConfig
	cacheConfig       *config.CacheConfig
	rc                *redis.Client
	diag              *DiagnosticLog
}

func NewBrandFlow(
	brandRepo repository.BrandInfoRepository,
	scrapeService services.ScrapeService,
	completionService services.CompletionService,
	completionConfig *config.CompletionConfig,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
	diag *DiagnosticLog,
) BrandFlow {
	return &BrandFlowImpl{
		brandRepo:         brandRepo,
		scrapeService:     scrapeService,
		completionService: completionService,
		completionConfig:  completionConfig,
		cacheConfig:       cacheConfig,
		rc:                rc,
		diag:              diag,
	}
}

func (bf *BrandFlowImpl) Get(ctx context.Context) (*dto.GetBrandResponse, error) {
	brand, err := bf.brandRepo.Get(ctx)
	if err != nil {
		return nil, NewBusinessError("BRAND_LOOKUP_FAILED", "Failed to load brand information", err)
	}
	if brand == nil {
		return nil, NewBusinessError("BRAND_NOT_CONFIGURED", "Brand is not configured yet", ErrBrandNotConfigured)
	}
	return &dto.GetBrandResponse{Brand: ToBrandInfoDTO(*brand)}, nil
}

func (bf *BrandFlowImpl) Save(ctx context.Context, req *dto.SaveBrandRequest, metadata *ClientMetadata) (*dto.SaveBrandResponse, error) {
	name, websiteURL, err := bf.validateBrandInput(req.Name, req.WebsiteURL)
	if err != nil {
		return nil, err
	}

	// Saving without a description clears any previously generated one
	brand := models.BrandInfo{
		ID:         models.BrandInfoID,
		Name:       name,
		WebsiteURL: websiteURL,
	}
	if err := bf.brandRepo.Upsert(ctx, &brand); err != nil {
		return nil, NewBusinessError("BRAND_SAVE_FAILED", "Failed to save brand information", err)
	}

	bf.invalidateStatusCache(ctx)

	return &dto.SaveBrandResponse{
		Message: "Brand information saved",
		Brand:   ToBrandInfoDTO(brand),
	}, nil
}

func (bf *BrandFlowImpl) Describe(ctx context.Context, req *dto.DescribeBrandRequest, metadata *ClientMetadata) (*dto.DescribeBrandResponse, error) {
	name, websiteURL, err := bf.validateBrandInput(req.Name, req.WebsiteURL)
	if err != nil {
		return nil, err
	}

	websiteText, err := bf.scrapeService.FetchWebsiteText(ctx, websiteURL)
	if err != nil {
		return nil, NewBusinessError("WEBSITE_SCRAPE_FAILED", "Failed to fetch website content", err)
	}
	if strings.TrimSpace(websiteText) == "" {
		return nil, NewBusinessError("WEBSITE_EMPTY", "Website returned no readable text", ErrEmptyWebsiteText)
	}

	systemPrompt := BuildBrandDescriptionSystemPrompt()
	userPrompt := BuildBrandDescriptionUserPrompt(name, websiteURL, websiteText)

	raw, err := bf.completionService.Complete(ctx, &services.CompletionRequest{
		Model:        bf.completionConfig.GeneratorModel,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		bf.diag.Record("Brand Describer", bf.completionConfig.GeneratorModel, "", systemPrompt, userPrompt, "ERROR: "+err.Error())
		return nil, NewBusinessError("DESCRIPTION_GENERATION_FAILED", "Failed to generate brand description", err)
	}
	bf.diag.Record("Brand Describer", bf.completionConfig.GeneratorModel, "", systemPrompt, userPrompt, raw)

	description := strings.TrimSpace(raw)
	if description == "" {
		return nil, NewBusinessError("EMPTY_COMPLETION_RESPONSE", "Empty response from completion API", ErrEmptyCompletionResponse)
	}

	brand := models.BrandInfo{
		ID:          models.BrandInfoID,
		Name:        name,
		WebsiteURL:  websiteURL,
		Description: description,
	}
	if err := bf.brandRepo.Upsert(ctx, &brand); err != nil {
		return nil, NewBusinessError("BRAND_SAVE_FAILED", "Failed to save brand information", err)
	}

	bf.invalidateStatusCache(ctx)

	return &dto.DescribeBrandResponse{
		Message: "Brand description generated",
		Brand:   ToBrandInfoDTO(brand),
	}, nil
}

func (bf *BrandFlowImpl) validateBrandInput(name, websiteURL string) (string, string, error) {
	name = strings.TrimSpace(name)
	websiteURL = strings.TrimSpace(websiteURL)
	if name == "" {
		return "", "", NewBusinessError("BRAND_NAME_REQUIRED", "Brand name is required", ErrBrandNameRequired)
	}
	if websiteURL == "" {
		return "", "", NewBusinessError("BRAND_URL_REQUIRED", "Brand URL is required", ErrWebsiteURLRequired)
	}
	if !services.IsValidWebsiteURL(websiteURL) {
		return "", "", NewBusinessError("BRAND_URL_INVALID", "Please enter a valid URL starting with http:// or https://", ErrInvalidWebsiteURL)
	}
	return name, websiteURL, nil
}

func (bf *BrandFlowImpl) invalidateStatusCache(ctx context.Context) {
	if bf.rc == nil {
		return
	}
	_ = bf.rc.Del(ctx, redisKey(*bf.cacheConfig, utils.MarketDataStatusCacheKey)).Err()
}
