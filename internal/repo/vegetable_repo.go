package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// VegetableFields carries the mutable columns of a vegetable.
type VegetableFields struct {
	Name     string
	Unit     string
	SellerID string
}

// CreateVegetable inserts a catalog entry and returns it.
func CreateVegetable(ctx context.Context, db *gorm.DB, f VegetableFields) (*domain.Vegetable, error) {
	now := time.Now().UTC()
	v := &domain.Vegetable{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Unit:      f.Unit,
		SellerID:  f.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVegetable fetches one vegetable by id.
func GetVegetable(ctx context.Context, db *gorm.DB, id string) (*domain.Vegetable, error) {
	var v domain.Vegetable
	if err := db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVegetables returns the whole catalog ordered by name.
func ListVegetables(ctx context.Context, db *gorm.DB) ([]domain.Vegetable, error) {
	var out []domain.Vegetable
	err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// ListVegetablesBySeller returns the catalog of one seller ordered by name.
func ListVegetablesBySeller(ctx context.Context, db *gorm.DB, sellerID string) ([]domain.Vegetable, error) {
	var out []domain.Vegetable
	err := db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("name ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

// VegetableIDsBySeller returns just the ids of a seller's catalog.
func VegetableIDsBySeller(ctx context.Context, db *gorm.DB, sellerID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Vegetable{}).
		Where("seller_id = ?", sellerID).
		Pluck("id", &ids).Error
	return ids, err
}

// VegetablesByIDs loads the vegetables whose ids appear in ids, keyed by id.
func VegetablesByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.Vegetable, error) {
	out := make(map[string]domain.Vegetable, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Vegetable
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, v := range rows {
		out[v.ID] = v
	}
	return out, nil
}

// DeleteVegetable removes vegetable id.
func DeleteVegetable(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Vegetable{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVegetablesBySeller removes a seller's whole catalog and returns the
// number of rows removed.
func DeleteVegetablesBySeller(ctx context.Context, db *gorm.DB, sellerID string) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Vegetable{}, "seller_id = ?", sellerID)
	return res.RowsAffected, res.Error
}

// CountVegetables returns the catalog size.
func CountVegetables(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Vegetable{}).Count(&n).Error
	return n, err
}
