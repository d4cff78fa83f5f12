package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/repo"
)

// HotelCount is the number of sample hotels written on first start.
const HotelCount = 10

// Result summarizes what EnsureSampleData wrote.
type Result struct {
	Seeded     bool
	Hotels     int
	Sellers    int
	Vegetables int
}

// LoadCatalog returns the catalog at path, or DefaultCatalog when path is
// empty.
func LoadCatalog(path string) ([]CatalogSeller, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cat, err := ParseCatalogMarkdown(f)
	if err != nil {
		return nil, fmt.Errorf("seed catalog %s: %w", path, err)
	}
	return cat, nil
}

// EnsureSampleData writes ten hotels and the seller catalog when the hotels
// table is empty. It is a no-op otherwise. Everything is written in one
// transaction.
func EnsureSampleData(ctx context.Context, db *gorm.DB, catalogPath string) (Result, error) {
	n, err := repo.CountHotels(ctx, db)
	if err != nil {
		return Result{}, err
	}
	if n > 0 {
		log.Debug().Int64("hotels", n).Msg("seed skipped; data present")
		return Result{}, nil
	}
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return Result{}, err
	}

	res := Result{Seeded: true}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 1; i <= HotelCount; i++ {
			if _, err := repo.CreateHotel(ctx, tx, repo.HotelFields{
				Name:         fmt.Sprintf("Hotel %d", i),
				ManagerName:  fmt.Sprintf("Manager %d", i),
				ManagerPhone: fmt.Sprintf("+1234567%03d", i),
			}); err != nil {
				return err
			}
			res.Hotels++
		}
		for _, s := range cat {
			seller, err := repo.CreateSeller(ctx, tx, repo.SellerFields{Name: s.Name, Phone: s.Phone})
			if err != nil {
				return err
			}
			res.Sellers++
			for _, v := range s.Vegetables {
				if _, err := repo.CreateVegetable(ctx, tx, repo.VegetableFields{
					Name: v.Name, Unit: v.Unit, SellerID: seller.ID,
				}); err != nil {
					return err
				}
				res.Vegetables++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Info().
		Int("hotels", res.Hotels).
		Int("sellers", res.Sellers).
		Int("vegetables", res.Vegetables).
		Msg("sample data seeded")
	return res, nil
}
