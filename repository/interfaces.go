// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/brandscope-io/brandscope/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// BrandInfoRepository defines operations for the single brand profile row.
type BrandInfoRepository interface {
	Repository[models.BrandInfo, models.BrandInfoFilter]
	Get(ctx context.Context) (*models.BrandInfo, error)
	Upsert(ctx context.Context, brand *models.BrandInfo) error
}

// ICPPersonaRepository defines operations for ICP personas. Personas are
// keyed by name, so the generic uint ByID lookup does not apply.
type ICPPersonaRepository interface {
	ByFilter(ctx context.Context, filter models.ICPPersonaFilter, orderBy string, limit, offset int) ([]*models.ICPPersona, error)
	Save(ctx context.Context, persona *models.ICPPersona) error
	SaveBatch(ctx context.Context, personas []*models.ICPPersona) error
	Count(ctx context.Context, filter models.ICPPersonaFilter) (int64, error)
	Exists(ctx context.Context, filter models.ICPPersonaFilter) (bool, error)
	ByName(ctx context.Context, name string) (*models.ICPPersona, error)
	ListAll(ctx context.Context) ([]*models.ICPPersona, error)
	Update(ctx context.Context, persona *models.ICPPersona) error
	DeleteByName(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) error
}

// CitedDomainRepository defines operations for cited domains, keyed by the
// domain string.
type CitedDomainRepository interface {
	ByFilter(ctx context.Context, filter models.CitedDomainFilter, orderBy string, limit, offset int) ([]*models.CitedDomain, error)
	Save(ctx context.Context, domain *models.CitedDomain) error
	SaveBatch(ctx context.Context, domains []*models.CitedDomain) error
	Count(ctx context.Context, filter models.CitedDomainFilter) (int64, error)
	Exists(ctx context.Context, filter models.CitedDomainFilter) (bool, error)
	ByDomain(ctx context.Context, domain string) (*models.CitedDomain, error)
	UpsertBatch(ctx context.Context, domains []*models.CitedDomain) error
	ListTopCited(ctx context.Context, limit int) ([]*models.CitedDomain, error)
	DeleteAll(ctx context.Context) error
}

// ChatSampleRepository defines operations for imported chat transcripts,
// keyed by the exporting tool's row id.
type ChatSampleRepository interface {
	ByFilter(ctx context.Context, filter models.ChatSampleFilter, orderBy string, limit, offset int) ([]*models.ChatSample, error)
	Save(ctx context.Context, chat *models.ChatSample) error
	SaveBatch(ctx context.Context, chats []*models.ChatSample) error
	Count(ctx context.Context, filter models.ChatSampleFilter) (int64, error)
	Exists(ctx context.Context, filter models.ChatSampleFilter) (bool, error)
	ByChatID(ctx context.Context, id string) (*models.ChatSample, error)
	UpsertBatch(ctx context.Context, chats []*models.ChatSample) error
	ListRecent(ctx context.Context, limit int) ([]*models.ChatSample, error)
	DeleteAll(ctx context.Context) error
}

// RecommendationSessionRepository defines operations for pipeline sessions.
type RecommendationSessionRepository interface {
	Repository[models.RecommendationSession, models.RecommendationSessionFilter]
	Latest(ctx context.Context) (*models.RecommendationSession, error)
	ByIDWithDetails(ctx context.Context, id uint) (*models.RecommendationSession, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*models.RecommendationSession, error)
}

// RecommendationActionRepository defines operations for selected actions.
type RecommendationActionRepository interface {
	Repository[models.RecommendationAction, models.RecommendationActionFilter]
	ListBySession(ctx context.Context, sessionID uint) ([]*models.RecommendationAction, error)
}

// RecommendationExampleRepository defines operations for generated examples.
type RecommendationExampleRepository interface {
	Repository[models.RecommendationExample, models.RecommendationExampleFilter]
	ListByAction(ctx context.Context, actionID uint) ([]*models.RecommendationExample, error)
}
