package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/observability"
	"github.com/tbourn/go-veg-procurement/internal/repo"
)

// DashboardService serves the admin dashboard and the status matrix.
// "Today" is evaluated in Loc.
type DashboardService struct {
	DB    *gorm.DB
	Cache MatrixCache
	Loc   *time.Location
	Now   func() time.Time
}

// NewDashboardService constructs a DashboardService. A nil loc means UTC.
func NewDashboardService(db *gorm.DB, cache MatrixCache, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{DB: db, Cache: cache, Loc: loc, Now: time.Now}
}

// Today returns the current calendar date in Loc.
func (s *DashboardService) Today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Loc
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc).Format(domain.DateLayout)
}

// Matrix returns the status matrix for date, today when date is empty.
// Reports are served from Cache when present. A freshly built report is
// cached only if no write invalidated date while it was being built.
func (s *DashboardService) Matrix(ctx context.Context, date string) (*domain.MatrixReport, error) {
	if date == "" {
		date = s.Today()
	}
	date, err := normalizeDate(date, "date")
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Matrix",
		trace.WithAttributes(attribute.String("date", date)),
	)
	defer span.End()

	var gen string
	if s.Cache != nil {
		if m, ok := s.Cache.Get(ctx, date); ok {
			observability.MatrixCache.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return m, nil
		}
		observability.MatrixCache.WithLabelValues("miss").Inc()
		gen = s.Cache.Generation(ctx, date)
	}

	hotels, err := repo.ListHotels(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	vegs, err := repo.ListVegetables(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	reqs, err := repo.ListRequirements(ctx, s.DB, repo.RequirementFilter{Date: date})
	if err != nil {
		return nil, err
	}

	m := BuildMatrix(date, hotels, vegs, reqs)
	if s.Cache != nil {
		s.Cache.Set(ctx, date, gen, &m)
	}
	return &m, nil
}

// AdminDashboard returns catalog sizes, today's requirement count and
// quantity, and the global pending and delivered counts.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	var (
		out domain.AdminDashboard
		err error
	)
	if out.TotalHotels, err = repo.CountHotels(ctx, s.DB); err != nil {
		return nil, err
	}
	if out.TotalSellers, err = repo.CountSellers(ctx, s.DB); err != nil {
		return nil, err
	}
	if out.TotalVegetables, err = repo.CountVegetables(ctx, s.DB); err != nil {
		return nil, err
	}
	today, err := repo.ListRequirements(ctx, s.DB, repo.RequirementFilter{Date: s.Today()})
	if err != nil {
		return nil, err
	}
	out.TodayRequirementsCount = int64(len(today))
	sum := decimal.Zero
	for _, r := range today {
		sum = sum.Add(decimal.NewFromFloat(r.Quantity))
	}
	out.TodayQuantity, _ = sum.Float64()

	if out.PendingCount, err = repo.CountRequirements(ctx, s.DB, repo.RequirementFilter{Status: domain.StatusPending}); err != nil {
		return nil, err
	}
	if out.DeliveredCount, err = repo.CountRequirements(ctx, s.DB, repo.RequirementFilter{Status: domain.StatusDelivered}); err != nil {
		return nil, err
	}
	return &out, nil
}
