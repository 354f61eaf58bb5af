package repository

import (
	"context"
	"errors"

	"github.com/brandscope-io/brandscope/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CitedDomainRepositoryImpl implements CitedDomainRepository interface.
type CitedDomainRepositoryImpl struct {
	*BaseRepository[models.CitedDomain, models.CitedDomainFilter]
}

// NewCitedDomainRepository creates a new cited domain repository.
func NewCitedDomainRepository(db *gorm.DB) CitedDomainRepository {
	return &CitedDomainRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CitedDomain, models.CitedDomainFilter](db),
	}
}

// ByDomain retrieves one cited domain row, nil when absent.
func (r *CitedDomainRepositoryImpl) ByDomain(ctx context.Context, domain string) (*models.CitedDomain, error) {
	db := r.getDB(ctx)
	var row models.CitedDomain
	if err := db.Where("domain = ?", domain).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertBatch inserts rows, replacing metrics of domains already present.
// Rows are deduplicated by domain first so a single statement never
// conflicts with itself.
func (r *CitedDomainRepositoryImpl) UpsertBatch(ctx context.Context, domains []*models.CitedDomain) error {
	if len(domains) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(domains))
	deduped := make([]*models.CitedDomain, 0, len(domains))
	for _, row := range domains {
		if _, ok := seen[row.Domain]; ok {
			continue
		}
		seen[row.Domain] = struct{}{}
		deduped = append(deduped, row)
	}

	db := r.getDB(ctx)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "domain"}},
		DoUpdates: clause.Assignments(map[string]any{
			"type":          clause.Expr{SQL: "EXCLUDED.type"},
			"usage_percent": clause.Expr{SQL: "EXCLUDED.usage_percent"},
			"avg_citations": clause.Expr{SQL: "EXCLUDED.avg_citations"},
			"updated_at":    clause.Expr{SQL: "EXCLUDED.updated_at"},
		}),
	}).Create(&deduped).Error
}

// ListTopCited retrieves domains ordered by citation frequency, most cited
// first, ties broken by domain name for stable output.
func (r *CitedDomainRepositoryImpl) ListTopCited(ctx context.Context, limit int) ([]*models.CitedDomain, error) {
	return r.ByFilter(ctx, models.CitedDomainFilter{}, "avg_citations DESC, domain ASC", limit, 0)
}

// DeleteAll removes every cited domain row.
func (r *CitedDomainRepositoryImpl) DeleteAll(ctx context.Context) error {
	db := r.getDB(ctx)
	return db.Where("1 = 1").Delete(&models.CitedDomain{}).Error
}

// applyFilter applies filter criteria to a GORM query.
func (r *CitedDomainRepositoryImpl) applyFilter(query *gorm.DB, filter models.CitedDomainFilter) *gorm.DB {
	if filter.Domain != nil {
		query = query.Where("domain = ?", *filter.Domain)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.MinUsagePercent != nil {
		query = query.Where("usage_percent >= ?", *filter.MinUsagePercent)
	}
	return query
}

// ByFilter retrieves cited domains based on filter criteria.
func (r *CitedDomainRepositoryImpl) ByFilter(ctx context.Context, filter models.CitedDomainFilter, orderBy string, limit, offset int) ([]*models.CitedDomain, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CitedDomain{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "avg_citations DESC, domain ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.CitedDomain
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of cited domains matching filter.
func (r *CitedDomainRepositoryImpl) Count(ctx context.Context, filter models.CitedDomainFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CitedDomain{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any cited domain matches the filter.
func (r *CitedDomainRepositoryImpl) Exists(ctx context.Context, filter models.CitedDomainFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
