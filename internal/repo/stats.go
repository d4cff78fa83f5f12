// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// Stats is the row count and latest UpdatedAt of a result set. MaxUpdatedAt
// is nil when Count is 0.
type Stats struct {
	Count        int64
	MaxUpdatedAt *time.Time
}

// Unix returns MaxUpdatedAt in Unix nanoseconds, or 0 when there are no rows.
func (s Stats) Unix() int64 {
	if s.MaxUpdatedAt == nil {
		return 0
	}
	return s.MaxUpdatedAt.UnixNano()
}

// RequirementsStats returns count and latest update of the requirements that
// match f.
func RequirementsStats(ctx context.Context, db *gorm.DB, f RequirementFilter) (Stats, error) {
	if f.VegetableIDs != nil && len(f.VegetableIDs) == 0 {
		return Stats{}, nil
	}
	return tableStats(applyRequirementFilter(db.WithContext(ctx).Model(&domain.Requirement{}), f))
}

// CatalogStats folds hotels and vegetables into one Stats value. It changes
// whenever a name that appears in enriched requirement listings could have
// changed.
func CatalogStats(ctx context.Context, db *gorm.DB) (Stats, error) {
	hs, err := tableStats(db.WithContext(ctx).Model(&domain.Hotel{}))
	if err != nil {
		return Stats{}, err
	}
	vs, err := tableStats(db.WithContext(ctx).Model(&domain.Vegetable{}))
	if err != nil {
		return Stats{}, err
	}
	out := Stats{Count: hs.Count + vs.Count, MaxUpdatedAt: hs.MaxUpdatedAt}
	if vs.MaxUpdatedAt != nil && (out.MaxUpdatedAt == nil || vs.MaxUpdatedAt.After(*out.MaxUpdatedAt)) {
		out.MaxUpdatedAt = vs.MaxUpdatedAt
	}
	return out, nil
}

func tableStats(q *gorm.DB) (Stats, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Stats{}, err
	}
	if count == 0 {
		return Stats{}, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err := q.Session(&gorm.Session{}).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return Stats{}, err
	}
	return Stats{Count: count, MaxUpdatedAt: &row.UpdatedAt}, nil
}
