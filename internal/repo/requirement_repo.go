// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the requirement repository: natural-key
// lookup, insert, partial update, the conditional bulk status transition
// and filtered range queries.
//
// Requirement timestamps are supplied by the caller so that one logical
// operation stamps every row it touches with the same instant.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// RequirementFilter narrows a requirement listing. Empty strings match
// everything. When VegetableIDs is non-nil only those vegetables match, so
// an empty non-nil slice matches nothing.
type RequirementFilter struct {
	HotelID      string
	Date         string
	Status       domain.RequirementStatus
	VegetableIDs []string
}

// FindRequirementByKey returns the requirement stored under the natural key
// (hotelID, vegetableID, date) or ErrNotFound.
func FindRequirementByKey(ctx context.Context, db *gorm.DB, hotelID, vegetableID, date string) (*domain.Requirement, error) {
	var r domain.Requirement
	err := db.WithContext(ctx).
		Where("hotel_id = ? AND vegetable_id = ? AND date = ?", hotelID, vegetableID, date).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRequirement fetches one requirement by id.
func GetRequirement(ctx context.Context, db *gorm.DB, id string) (*domain.Requirement, error) {
	var r domain.Requirement
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRequirement inserts r, assigning an id when it has none. A natural
// key collision is reported as ErrDuplicate.
func CreateRequirement(ctx context.Context, db *gorm.DB, r *domain.Requirement) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateRequirementColumns applies the given column values to requirement id.
// The map is passed to GORM unchanged, so callers choose which columns move.
func UpdateRequirementColumns(ctx context.Context, db *gorm.DB, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return errors.New("no columns to update")
	}
	res := db.WithContext(ctx).
		Model(&domain.Requirement{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRequirement removes requirement id.
func DeleteRequirement(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Requirement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRequirementsByHotel removes every requirement of hotelID and returns
// how many rows went away.
func DeleteRequirementsByHotel(ctx context.Context, db *gorm.DB, hotelID string) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Requirement{}, "hotel_id = ?", hotelID)
	return res.RowsAffected, res.Error
}

// MarkDelivered flips every pending requirement of (hotelID, date) to
// delivered in a single conditional UPDATE and returns the number of rows
// transitioned. Rows already delivered are not matched.
func MarkDelivered(ctx context.Context, db *gorm.DB, hotelID, date string, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Requirement{}).
		Where("hotel_id = ? AND date = ? AND status = ?", hotelID, date, domain.StatusPending).
		Updates(map[string]any{
			"status":     domain.StatusDelivered,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// ListRequirements returns the requirements matching f, newest date first
// and in creation order within a date.
func ListRequirements(ctx context.Context, db *gorm.DB, f RequirementFilter) ([]domain.Requirement, error) {
	if f.VegetableIDs != nil && len(f.VegetableIDs) == 0 {
		return []domain.Requirement{}, nil
	}
	var out []domain.Requirement
	err := applyRequirementFilter(db.WithContext(ctx), f).
		Order("date DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CountRequirements returns the number of requirements matching f.
func CountRequirements(ctx context.Context, db *gorm.DB, f RequirementFilter) (int64, error) {
	if f.VegetableIDs != nil && len(f.VegetableIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := applyRequirementFilter(db.WithContext(ctx).Model(&domain.Requirement{}), f).Count(&n).Error
	return n, err
}

func applyRequirementFilter(q *gorm.DB, f RequirementFilter) *gorm.DB {
	if f.HotelID != "" {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.VegetableIDs) > 0 {
		q = q.Where("vegetable_id IN ?", f.VegetableIDs)
	}
	return q
}
