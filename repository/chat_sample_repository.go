package repository

import (
	"context"
	"errors"

	"github.com/brandscope-io/brandscope/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatSampleRepositoryImpl implements ChatSampleRepository interface.
type ChatSampleRepositoryImpl struct {
	*BaseRepository[models.ChatSample, models.ChatSampleFilter]
}

// NewChatSampleRepository creates a new chat sample repository.
func NewChatSampleRepository(db *gorm.DB) ChatSampleRepository {
	return &ChatSampleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ChatSample, models.ChatSampleFilter](db),
	}
}

// ByChatID retrieves one chat sample, nil when absent.
func (r *ChatSampleRepositoryImpl) ByChatID(ctx context.Context, id string) (*models.ChatSample, error) {
	db := r.getDB(ctx)
	var row models.ChatSample
	if err := db.Where("id = ?", id).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertBatch inserts chat samples, replacing rows whose id already exists.
// Rows are deduplicated by id first so a single statement never conflicts
// with itself.
func (r *ChatSampleRepositoryImpl) UpsertBatch(ctx context.Context, chats []*models.ChatSample) error {
	if len(chats) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(chats))
	deduped := make([]*models.ChatSample, 0, len(chats))
	for _, row := range chats {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		deduped = append(deduped, row)
	}

	db := r.getDB(ctx)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"model":          clause.Expr{SQL: "EXCLUDED.model"},
			"user_text":      clause.Expr{SQL: "EXCLUDED.user_text"},
			"assistant_text": clause.Expr{SQL: "EXCLUDED.assistant_text"},
			"updated_at":     clause.Expr{SQL: "EXCLUDED.updated_at"},
		}),
	}).Create(&deduped).Error
}

// ListRecent retrieves the most recently imported chat samples.
func (r *ChatSampleRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.ChatSample, error) {
	return r.ByFilter(ctx, models.ChatSampleFilter{}, "created_at DESC, id ASC", limit, 0)
}

// DeleteAll removes every chat sample.
func (r *ChatSampleRepositoryImpl) DeleteAll(ctx context.Context) error {
	db := r.getDB(ctx)
	return db.Where("1 = 1").Delete(&models.ChatSample{}).Error
}

// applyFilter applies filter criteria to a GORM query.
func (r *ChatSampleRepositoryImpl) applyFilter(query *gorm.DB, filter models.ChatSampleFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Model != nil {
		query = query.Where("model = ?", *filter.Model)
	}
	return query
}

// ByFilter retrieves chat samples based on filter criteria.
func (r *ChatSampleRepositoryImpl) ByFilter(ctx context.Context, filter models.ChatSampleFilter, orderBy string, limit, offset int) ([]*models.ChatSample, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ChatSample{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "created_at DESC, id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ChatSample
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of chat samples matching filter.
func (r *ChatSampleRepositoryImpl) Count(ctx context.Context, filter models.ChatSampleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ChatSample{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any chat sample matches the filter.
func (r *ChatSampleRepositoryImpl) Exists(ctx context.Context, filter models.ChatSampleFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
