// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the hotel store: thin, context-aware
// functions that take a *gorm.DB (plain or transaction-bound) so callers can
// compose them inside a single transaction.
//
// Conventions:
//   - IDs are UUIDv4 strings generated here.
//   - Timestamps are set explicitly in UTC.
//   - Lookups that miss return ErrNotFound (gorm.ErrRecordNotFound).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// HotelFields carries the mutable columns of a hotel.
type HotelFields struct {
	Name         string
	ManagerName  string
	ManagerPhone string
}

// CreateHotel inserts a new hotel and returns it.
func CreateHotel(ctx context.Context, db *gorm.DB, f HotelFields) (*domain.Hotel, error) {
	now := time.Now().UTC()
	h := &domain.Hotel{
		ID:           uuid.NewString(),
		Name:         f.Name,
		ManagerName:  f.ManagerName,
		ManagerPhone: f.ManagerPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// GetHotel fetches one hotel by id.
func GetHotel(ctx context.Context, db *gorm.DB, id string) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHotels returns every hotel ordered by name.
func ListHotels(ctx context.Context, db *gorm.DB) ([]domain.Hotel, error) {
	var out []domain.Hotel
	err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// HotelsByIDs loads the hotels whose ids appear in ids, keyed by id.
func HotelsByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.Hotel, error) {
	out := make(map[string]domain.Hotel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Hotel
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, h := range rows {
		out[h.ID] = h
	}
	return out, nil
}

// UpdateHotel applies cols to hotel id and bumps updated_at. Columns not in
// cols keep their values.
func UpdateHotel(ctx context.Context, db *gorm.DB, id string, cols map[string]any) error {
	return updateColumns(ctx, db, &domain.Hotel{}, id, cols)
}

// updateColumns applies cols plus a fresh updated_at to the row of model
// with the given id. ErrNotFound is returned when no row matched.
func updateColumns(ctx context.Context, db *gorm.DB, model any, id string, cols map[string]any) error {
	set := make(map[string]any, len(cols)+1)
	for k, v := range cols {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHotel removes hotel id. Requirements are not touched; callers that
// need the cascade run DeleteRequirementsByHotel in the same transaction.
func DeleteHotel(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Hotel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountHotels returns the number of hotels.
func CountHotels(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Hotel{}).Count(&n).Error
	return n, err
}
