// Package services – CatalogService
//
// CatalogService manages the reference data requirements point at: hotels,
// sellers and the vegetables each seller offers. Deleting a hotel removes its
// requirements; deleting a seller removes its vegetables. Both cascades run
// in one transaction with the parent delete.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/repo"
	"github.com/tbourn/go-veg-procurement/internal/search"
)

// HotelInput is the body of hotel create.
type HotelInput struct {
	Name         string `json:"name"`
	ManagerName  string `json:"manager_name"`
	ManagerPhone string `json:"manager_phone"`
}

// HotelPatch is the body of hotel update. Nil fields are left unchanged.
type HotelPatch struct {
	Name         *string `json:"name,omitempty"`
	ManagerName  *string `json:"manager_name,omitempty"`
	ManagerPhone *string `json:"manager_phone,omitempty"`
}

// SellerInput is the body of seller create.
type SellerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SellerPatch is the body of seller update. Nil fields are left unchanged.
type SellerPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// VegetableInput is the body of vegetable create.
type VegetableInput struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	SellerID string `json:"seller_id"`
}

// CatalogService provides CRUD over hotels, sellers and vegetables plus a
// search over the vegetable catalog.
type CatalogService struct {
	DB    *gorm.DB
	Cache MatrixCache

	// SearchOptions configure the catalog index.
	SearchOptions []search.Option

	mu    sync.Mutex
	index search.Index
	dirty bool
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB, cache MatrixCache, opts ...search.Option) *CatalogService {
	return &CatalogService{DB: db, Cache: cache, SearchOptions: opts, dirty: true}
}

func (s *CatalogService) tracer() trace.Tracer {
	return otel.Tracer("services/CatalogService")
}

// ---- hotels ----

// CreateHotel stores a new hotel.
func (s *CatalogService) CreateHotel(ctx context.Context, in HotelInput) (*domain.Hotel, error) {
	f, err := hotelFields(in)
	if err != nil {
		return nil, err
	}
	h, err := repo.CreateHotel(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx)
	return h, nil
}

// GetHotel returns hotel id.
func (s *CatalogService) GetHotel(ctx context.Context, id string) (*domain.Hotel, error) {
	h, err := repo.GetHotel(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// ListHotels returns hotels in matrix column order.
func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	hs, err := repo.ListHotels(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return OrderHotels(hs), nil
}

// UpdateHotel changes the fields of hotel id that p sets.
func (s *CatalogService) UpdateHotel(ctx context.Context, id string, p HotelPatch) (*domain.Hotel, error) {
	cols, err := patchColumns(
		patchField{"name", p.Name, true},
		patchField{"manager_name", p.ManagerName, false},
		patchField{"manager_phone", p.ManagerPhone, false},
	)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateHotel(ctx, s.DB, id, cols); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	s.catalogChanged(ctx)
	return s.GetHotel(ctx, id)
}

// DeleteHotel removes hotel id and all of its requirements. It returns the
// number of requirements removed.
func (s *CatalogService) DeleteHotel(ctx context.Context, id string) (int64, error) {
	ctx, span := s.tracer().Start(ctx, "DeleteHotel", trace.WithAttributes(attribute.String("hotel.id", id)))
	defer span.End()

	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DeleteHotel(ctx, tx, id); err != nil {
			return err
		}
		n, err := repo.DeleteRequirementsByHotel(ctx, tx, id)
		removed = n
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrHotelNotFound
	}
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("requirements.removed", removed))
	s.catalogChanged(ctx)
	return removed, nil
}

// ---- sellers ----

// CreateSeller stores a new seller.
func (s *CatalogService) CreateSeller(ctx context.Context, in SellerInput) (*domain.Seller, error) {
	f, err := sellerFields(in)
	if err != nil {
		return nil, err
	}
	seller, err := repo.CreateSeller(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx)
	return seller, nil
}

// GetSeller returns seller id.
func (s *CatalogService) GetSeller(ctx context.Context, id string) (*domain.Seller, error) {
	seller, err := repo.GetSeller(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSellerNotFound
	}
	return seller, err
}

// ListSellers returns all sellers by name.
func (s *CatalogService) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	return repo.ListSellers(ctx, s.DB)
}

// UpdateSeller changes the fields of seller id that p sets.
func (s *CatalogService) UpdateSeller(ctx context.Context, id string, p SellerPatch) (*domain.Seller, error) {
	cols, err := patchColumns(
		patchField{"name", p.Name, true},
		patchField{"phone", p.Phone, false},
	)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateSeller(ctx, s.DB, id, cols); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, err
	}
	s.catalogChanged(ctx)
	return s.GetSeller(ctx, id)
}

// DeleteSeller removes seller id and its vegetables. Requirements that
// referenced those vegetables stay and list as "Unknown".
func (s *CatalogService) DeleteSeller(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DeleteSeller(ctx, tx, id); err != nil {
			return err
		}
		n, err := repo.DeleteVegetablesBySeller(ctx, tx, id)
		removed = n
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrSellerNotFound
	}
	if err != nil {
		return 0, err
	}
	s.catalogChanged(ctx)
	return removed, nil
}

// ---- vegetables ----

// CreateVegetable adds a vegetable to an existing seller's catalog.
func (s *CatalogService) CreateVegetable(ctx context.Context, in VegetableInput) (*domain.Vegetable, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SellerID = strings.TrimSpace(in.SellerID)
	if in.Name == "" {
		return nil, invalid("name", "is required")
	}
	if in.SellerID == "" {
		return nil, invalid("seller_id", "is required")
	}
	if _, err := repo.GetSeller(ctx, s.DB, in.SellerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, err
	}
	v, err := repo.CreateVegetable(ctx, s.DB, repo.VegetableFields{
		Name:     in.Name,
		Unit:     normalizeUnit(in.Unit),
		SellerID: in.SellerID,
	})
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx)
	return v, nil
}

// ListVegetables returns the whole catalog by name.
func (s *CatalogService) ListVegetables(ctx context.Context) ([]domain.Vegetable, error) {
	return repo.ListVegetables(ctx, s.DB)
}

// ListVegetablesBySeller returns one seller's catalog. An unknown seller
// yields an empty list.
func (s *CatalogService) ListVegetablesBySeller(ctx context.Context, sellerID string) ([]domain.Vegetable, error) {
	vs, err := repo.ListVegetablesBySeller(ctx, s.DB, sellerID)
	if err != nil {
		return nil, err
	}
	if vs == nil {
		vs = []domain.Vegetable{}
	}
	return vs, nil
}

// DeleteVegetable removes vegetable id.
func (s *CatalogService) DeleteVegetable(ctx context.Context, id string) error {
	if err := repo.DeleteVegetable(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrVegetableNotFound
		}
		return err
	}
	s.catalogChanged(ctx)
	return nil
}

// SearchVegetables ranks catalog entries against q by name and seller name.
// The index is rebuilt lazily after any catalog write.
func (s *CatalogService) SearchVegetables(ctx context.Context, q string, limit int) ([]search.Hit, error) {
	ctx, span := s.tracer().Start(ctx, "SearchVegetables", trace.WithAttributes(attribute.String("query", q)))
	defer span.End()

	if strings.TrimSpace(q) == "" {
		return nil, invalid("q", "is required")
	}
	idx, err := s.searchIndex(ctx)
	if err != nil {
		return nil, err
	}
	hits := idx.TopK(q, limit)
	if hits == nil {
		hits = []search.Hit{}
	}
	return hits, nil
}

func (s *CatalogService) searchIndex(ctx context.Context) (search.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil && !s.dirty {
		return s.index, nil
	}
	vegs, err := repo.ListVegetables(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	sellers, err := repo.ListSellers(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sellers))
	for _, sl := range sellers {
		names[sl.ID] = sl.Name
	}
	s.index = search.NewCatalogIndex(vegs, names, s.SearchOptions...)
	s.dirty = false
	return s.index, nil
}

// catalogChanged marks the search index stale and drops cached matrices,
// whose columns and row labels come from the catalog.
func (s *CatalogService) catalogChanged(ctx context.Context) {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	if s.Cache != nil {
		s.Cache.InvalidateAll(ctx)
	}
}

func hotelFields(in HotelInput) (repo.HotelFields, error) {
	f := repo.HotelFields{
		Name:         strings.TrimSpace(in.Name),
		ManagerName:  strings.TrimSpace(in.ManagerName),
		ManagerPhone: strings.TrimSpace(in.ManagerPhone),
	}
	if f.Name == "" {
		return f, invalid("name", "is required")
	}
	return f, nil
}

func sellerFields(in SellerInput) (repo.SellerFields, error) {
	f := repo.SellerFields{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}
	if f.Name == "" {
		return f, invalid("name", "is required")
	}
	return f, nil
}

type patchField struct {
	column   string
	value    *string
	required bool
}

// patchColumns maps the set fields to trimmed column values. A required
// field may be omitted but not blanked.
func patchColumns(fields ...patchField) (map[string]any, error) {
	cols := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if f.required && v == "" {
			return nil, invalid(f.column, "must not be blank")
		}
		cols[f.column] = v
	}
	return cols, nil
}
