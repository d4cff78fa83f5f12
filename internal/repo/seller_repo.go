package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// SellerFields carries the mutable columns of a seller.
type SellerFields struct {
	Name  string
	Phone string
}

// CreateSeller inserts a new seller and returns it.
func CreateSeller(ctx context.Context, db *gorm.DB, f SellerFields) (*domain.Seller, error) {
	now := time.Now().UTC()
	s := &domain.Seller{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Phone:     f.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSeller fetches one seller by id.
func GetSeller(ctx context.Context, db *gorm.DB, id string) (*domain.Seller, error) {
	var s domain.Seller
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSellers returns every seller ordered by name.
func ListSellers(ctx context.Context, db *gorm.DB) ([]domain.Seller, error) {
	var out []domain.Seller
	err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// UpdateSeller applies cols to seller id and bumps updated_at.
func UpdateSeller(ctx context.Context, db *gorm.DB, id string, cols map[string]any) error {
	return updateColumns(ctx, db, &domain.Seller{}, id, cols)
}

// DeleteSeller removes seller id.
func DeleteSeller(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Seller{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSellers returns the number of sellers.
func CountSellers(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Seller{}).Count(&n).Error
	return n, err
}
