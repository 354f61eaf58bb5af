package repository

import (
	"context"
	"errors"

	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
)

// ICPPersonaRepositoryImpl implements ICPPersonaRepository interface.
type ICPPersonaRepositoryImpl struct {
	*BaseRepository[models.ICPPersona, models.ICPPersonaFilter]
}

// NewICPPersonaRepository creates a new ICP persona repository.
func NewICPPersonaRepository(db *gorm.DB) ICPPersonaRepository {
	return &ICPPersonaRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ICPPersona, models.ICPPersonaFilter](db),
	}
}

// ByName retrieves a persona by its name, nil when absent.
func (r *ICPPersonaRepositoryImpl) ByName(ctx context.Context, name string) (*models.ICPPersona, error) {
	db := r.getDB(ctx)
	var row models.ICPPersona
	if err := db.Where("name = ?", name).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListAll retrieves every persona ordered by name.
func (r *ICPPersonaRepositoryImpl) ListAll(ctx context.Context) ([]*models.ICPPersona, error) {
	return r.ByFilter(ctx, models.ICPPersonaFilter{}, "name ASC", 0, 0)
}

// Update rewrites the mutable fields of an existing persona.
func (r *ICPPersonaRepositoryImpl) Update(ctx context.Context, persona *models.ICPPersona) error {
	db := r.getDB(ctx)
	result := db.Model(&models.ICPPersona{}).
		Where("name = ?", persona.Name).
		Updates(map[string]any{
			"role":       persona.Role,
			"goals":      persona.Goals,
			"challenges": persona.Challenges,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByName removes one persona.
func (r *ICPPersonaRepositoryImpl) DeleteByName(ctx context.Context, name string) error {
	db := r.getDB(ctx)
	result := db.Where("name = ?", name).Delete(&models.ICPPersona{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every persona.
func (r *ICPPersonaRepositoryImpl) DeleteAll(ctx context.Context) error {
	db := r.getDB(ctx)
	return db.Where("1 = 1").Delete(&models.ICPPersona{}).Error
}

// applyFilter applies filter criteria to a GORM query.
func (r *ICPPersonaRepositoryImpl) applyFilter(query *gorm.DB, filter models.ICPPersonaFilter) *gorm.DB {
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	return query
}

// ByFilter retrieves personas based on filter criteria.
func (r *ICPPersonaRepositoryImpl) ByFilter(ctx context.Context, filter models.ICPPersonaFilter, orderBy string, limit, offset int) ([]*models.ICPPersona, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ICPPersona{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "name ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ICPPersona
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of personas matching filter.
func (r *ICPPersonaRepositoryImpl) Count(ctx context.Context, filter models.ICPPersonaFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ICPPersona{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any persona matches the filter.
func (r *ICPPersonaRepositoryImpl) Exists(ctx context.Context, filter models.ICPPersonaFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
