// Package handlers exposes the procurement REST API:
//
//   - /requirements            submit, bulk submit, list, update, delete
//   - /hotels                  CRUD, mark-delivered, per-date status
//   - /sellers                 CRUD
//   - /vegetables              create, list, by-seller, search, delete
//   - /dashboard/admin         counters and the hotel × vegetable matrix
//
// Handlers are transport-thin: they bind input, call the services and map
// service errors onto ErrorResponse via writeError.
package handlers

import (
	"context"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/search"
	"github.com/tbourn/go-veg-procurement/internal/services"
)

//
// Service contracts (context-aware)
//

// RequirementService is the requirement lifecycle consumed by the handlers.
type RequirementService interface {
	Submit(ctx context.Context, in services.RequirementInput) (*domain.Requirement, error)
	// SubmitIdempotent returns replayed=true when key already produced a
	// requirement within scope.
	SubmitIdempotent(ctx context.Context, scope, key string, in services.RequirementInput) (*domain.Requirement, bool, error)
	BulkSubmit(ctx context.Context, items []services.RequirementInput) ([]services.BulkResult, error)
	Update(ctx context.Context, id string, p services.RequirementPatch) (*domain.Requirement, error)
	Delete(ctx context.Context, id string) error
	MarkDelivered(ctx context.Context, hotelID, date string) (int64, error)
	HotelStatus(ctx context.Context, hotelID, date string) (domain.HotelStatus, error)
	List(ctx context.Context, q services.RequirementQuery) ([]services.RequirementView, error)
	// ListETag returns a weak validator for List(q).
	ListETag(ctx context.Context, q services.RequirementQuery) (string, error)
}

// CatalogService manages hotels, sellers and vegetables.
type CatalogService interface {
	CreateHotel(ctx context.Context, in services.HotelInput) (*domain.Hotel, error)
	GetHotel(ctx context.Context, id string) (*domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	UpdateHotel(ctx context.Context, id string, p services.HotelPatch) (*domain.Hotel, error)
	DeleteHotel(ctx context.Context, id string) (int64, error)

	CreateSeller(ctx context.Context, in services.SellerInput) (*domain.Seller, error)
	GetSeller(ctx context.Context, id string) (*domain.Seller, error)
	ListSellers(ctx context.Context) ([]domain.Seller, error)
	UpdateSeller(ctx context.Context, id string, p services.SellerPatch) (*domain.Seller, error)
	DeleteSeller(ctx context.Context, id string) (int64, error)

	CreateVegetable(ctx context.Context, in services.VegetableInput) (*domain.Vegetable, error)
	ListVegetables(ctx context.Context) ([]domain.Vegetable, error)
	ListVegetablesBySeller(ctx context.Context, sellerID string) ([]domain.Vegetable, error)
	DeleteVegetable(ctx context.Context, id string) error
	SearchVegetables(ctx context.Context, q string, limit int) ([]search.Hit, error)
}

// DashboardService builds the admin reports.
type DashboardService interface {
	// Today is the current date in the configured timezone.
	Today() string
	Matrix(ctx context.Context, date string) (*domain.MatrixReport, error)
	AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error)
}

//
// Handler wiring
//

// Handlers groups the API endpoints.
type Handlers struct {
	reqSvc  RequirementService
	catSvc  CatalogService
	dashSvc DashboardService
}

// New constructs Handlers bound to the given services.
func New(reqSvc RequirementService, catSvc CatalogService, dashSvc DashboardService) *Handlers {
	return &Handlers{reqSvc: reqSvc, catSvc: catSvc, dashSvc: dashSvc}
}
