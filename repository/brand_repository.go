package repository

import (
	"context"

	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BrandInfoRepositoryImpl implements BrandInfoRepository interface.
type BrandInfoRepositoryImpl struct {
	*BaseRepository[models.BrandInfo, models.BrandInfoFilter]
}

// NewBrandInfoRepository creates a new brand info repository.
func NewBrandInfoRepository(db *gorm.DB) BrandInfoRepository {
	return &BrandInfoRepositoryImpl{
		BaseRepository: NewBaseRepository[models.BrandInfo, models.BrandInfoFilter](db),
	}
}

// Get retrieves the single brand profile row, nil when not configured yet.
func (r *BrandInfoRepositoryImpl) Get(ctx context.Context) (*models.BrandInfo, error) {
	return r.ByID(ctx, models.BrandInfoID)
}

// Upsert writes the brand profile, replacing the existing row when present.
func (r *BrandInfoRepositoryImpl) Upsert(ctx context.Context, brand *models.BrandInfo) error {
	brand.ID = models.BrandInfoID
	brand.UpdatedAt = utils.UTCNow()

	db := r.getDB(ctx)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":        clause.Expr{SQL: "EXCLUDED.name"},
			"website_url": clause.Expr{SQL: "EXCLUDED.website_url"},
			"description": clause.Expr{SQL: "EXCLUDED.description"},
			"updated_at":  clause.Expr{SQL: "EXCLUDED.updated_at"},
		}),
	}).Create(brand).Error
}

// applyFilter applies filter criteria to a GORM query.
func (r *BrandInfoRepositoryImpl) applyFilter(query *gorm.DB, filter models.BrandInfoFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	return query
}

// ByFilter retrieves brand profiles based on filter criteria.
func (r *BrandInfoRepositoryImpl) ByFilter(ctx context.Context, filter models.BrandInfoFilter, orderBy string, limit, offset int) ([]*models.BrandInfo, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.BrandInfo{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.BrandInfo
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of brand profiles matching filter.
func (r *BrandInfoRepositoryImpl) Count(ctx context.Context, filter models.BrandInfoFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.BrandInfo{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any brand profile matches the filter.
func (r *BrandInfoRepositoryImpl) Exists(ctx context.Context, filter models.BrandInfoFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
