package repository

import (
	"context"
	"errors"

	"github.com/brandscope-io/brandscope/models"
	"gorm.io/gorm"
)

// RecommendationSessionRepositoryImpl implements RecommendationSessionRepository interface.
type RecommendationSessionRepositoryImpl struct {
	*BaseRepository[models.RecommendationSession, models.RecommendationSessionFilter]
}

// NewRecommendationSessionRepository creates a new recommendation session repository.
func NewRecommendationSessionRepository(db *gorm.DB) RecommendationSessionRepository {
	return &RecommendationSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RecommendationSession, models.RecommendationSessionFilter](db),
	}
}

// withDetails preloads actions in priority order and their examples.
func (r *RecommendationSessionRepositoryImpl) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC, id ASC")
		}).
		Preload("Actions.Examples", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

// Latest retrieves the most recent session with actions and examples, nil
// when no pipeline run has been stored yet.
func (r *RecommendationSessionRepositoryImpl) Latest(ctx context.Context) (*models.RecommendationSession, error) {
	db := r.getDB(ctx)
	var row models.RecommendationSession
	err := r.withDetails(db).Order("created_at DESC, id DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByIDWithDetails retrieves one session with actions and examples, nil when
// absent.
func (r *RecommendationSessionRepositoryImpl) ByIDWithDetails(ctx context.Context, id uint) (*models.RecommendationSession, error) {
	db := r.getDB(ctx)
	var row models.RecommendationSession
	err := r.withDetails(db).Where("id = ?", id).Last(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListSessions retrieves sessions newest first, without examples.
func (r *RecommendationSessionRepositoryImpl) ListSessions(ctx context.Context, limit, offset int) ([]*models.RecommendationSession, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationSession{}).
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC, id ASC")
		}).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.RecommendationSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *RecommendationSessionRepositoryImpl) applyFilter(query *gorm.DB, filter models.RecommendationSessionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.BrandName != nil {
		query = query.Where("brand_name = ?", *filter.BrandName)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves sessions based on filter criteria.
func (r *RecommendationSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.RecommendationSessionFilter, orderBy string, limit, offset int) ([]*models.RecommendationSession, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationSession{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "created_at DESC, id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.RecommendationSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of sessions matching filter.
func (r *RecommendationSessionRepositoryImpl) Count(ctx context.Context, filter models.RecommendationSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationSession{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any session matches the filter.
func (r *RecommendationSessionRepositoryImpl) Exists(ctx context.Context, filter models.RecommendationSessionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// RecommendationActionRepositoryImpl implements RecommendationActionRepository interface.
type RecommendationActionRepositoryImpl struct {
	*BaseRepository[models.RecommendationAction, models.RecommendationActionFilter]
}

// NewRecommendationActionRepository creates a new recommendation action repository.
func NewRecommendationActionRepository(db *gorm.DB) RecommendationActionRepository {
	return &RecommendationActionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RecommendationAction, models.RecommendationActionFilter](db),
	}
}

// ListBySession retrieves a session's actions in priority order.
func (r *RecommendationActionRepositoryImpl) ListBySession(ctx context.Context, sessionID uint) ([]*models.RecommendationAction, error) {
	return r.ByFilter(ctx, models.RecommendationActionFilter{SessionID: &sessionID}, "priority ASC, id ASC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query.
func (r *RecommendationActionRepositoryImpl) applyFilter(query *gorm.DB, filter models.RecommendationActionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.SessionID != nil {
		query = query.Where("session_id = ?", *filter.SessionID)
	}
	if filter.ActionType != nil {
		query = query.Where("action_type = ?", *filter.ActionType)
	}
	return query
}

// ByFilter retrieves actions based on filter criteria.
func (r *RecommendationActionRepositoryImpl) ByFilter(ctx context.Context, filter models.RecommendationActionFilter, orderBy string, limit, offset int) ([]*models.RecommendationAction, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationAction{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "priority ASC, id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.RecommendationAction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of actions matching filter.
func (r *RecommendationActionRepositoryImpl) Count(ctx context.Context, filter models.RecommendationActionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationAction{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any action matches the filter.
func (r *RecommendationActionRepositoryImpl) Exists(ctx context.Context, filter models.RecommendationActionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// RecommendationExampleRepositoryImpl implements RecommendationExampleRepository interface.
type RecommendationExampleRepositoryImpl struct {
	*BaseRepository[models.RecommendationExample, models.RecommendationExampleFilter]
}

// NewRecommendationExampleRepository creates a new recommendation example repository.
func NewRecommendationExampleRepository(db *gorm.DB) RecommendationExampleRepository {
	return &RecommendationExampleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RecommendationExample, models.RecommendationExampleFilter](db),
	}
}

// ListByAction retrieves an action's examples in insertion order.
func (r *RecommendationExampleRepositoryImpl) ListByAction(ctx context.Context, actionID uint) ([]*models.RecommendationExample, error) {
	return r.ByFilter(ctx, models.RecommendationExampleFilter{ActionID: &actionID}, "id ASC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query.
func (r *RecommendationExampleRepositoryImpl) applyFilter(query *gorm.DB, filter models.RecommendationExampleFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.ActionID != nil {
		query = query.Where("action_id = ?", *filter.ActionID)
	}
	return query
}

// ByFilter retrieves examples based on filter criteria.
func (r *RecommendationExampleRepositoryImpl) ByFilter(ctx context.Context, filter models.RecommendationExampleFilter, orderBy string, limit, offset int) ([]*models.RecommendationExample, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationExample{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.RecommendationExample
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of examples matching filter.
func (r *RecommendationExampleRepositoryImpl) Count(ctx context.Context, filter models.RecommendationExampleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.RecommendationExample{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any example matches the filter.
func (r *RecommendationExampleRepositoryImpl) Exists(ctx context.Context, filter models.RecommendationExampleFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
