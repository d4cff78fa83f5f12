// Package services – RequirementService
//
// This file implements the requirement lifecycle: strict single submission,
// merge-on-resubmit bulk submission, partial updates, the per-hotel
// "mark delivered" transition, deletion, and the enriched listing used by
// order sheets.
//
// Every write that can create a row looks up the (hotel, vegetable, date) key
// first; the unique index on that key catches the races the lookup misses.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/observability"
	"github.com/tbourn/go-veg-procurement/internal/repo"
)

// UnknownName replaces hotel and vegetable names that no longer resolve.
const UnknownName = "Unknown"

// MatrixCache stores built matrix reports by date. Implementations must be
// safe for concurrent use; a nil MatrixCache disables caching.
type MatrixCache interface {
	Get(ctx context.Context, date string) (*domain.MatrixReport, bool)
	// Generation returns a token identifying the current cache generation
	// of date. It must be read before the reads a report is built from.
	Generation(ctx context.Context, date string) string
	// Set stores m unless date was invalidated after gen was read.
	Set(ctx context.Context, date, gen string, m *domain.MatrixReport)
	Invalidate(ctx context.Context, dates ...string)
	InvalidateAll(ctx context.Context)
}

// RequirementInput is one submission line.
type RequirementInput struct {
	HotelID     string  `json:"hotel_id"`
	VegetableID string  `json:"vegetable_id"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Date        string  `json:"date"`
}

// RequirementPatch carries the optional fields of an update. Nil fields are
// left untouched.
type RequirementPatch struct {
	Quantity *float64                  `json:"quantity,omitempty"`
	Unit     *string                   `json:"unit,omitempty"`
	Status   *domain.RequirementStatus `json:"status,omitempty"`
}

// BulkOutcome tells whether a bulk line created or merged a requirement.
type BulkOutcome string

const (
	OutcomeCreated BulkOutcome = "created"
	OutcomeMerged  BulkOutcome = "merged"
)

// BulkResult is the stored requirement for one bulk line.
type BulkResult struct {
	domain.Requirement
	Outcome BulkOutcome `json:"outcome"`
}

// RequirementQuery filters the enriched listing. Empty fields match all.
type RequirementQuery struct {
	HotelID  string
	SellerID string
	Date     string
}

// RequirementView is a requirement with display names resolved. Unit is
// taken from the vegetable when it still exists.
type RequirementView struct {
	domain.Requirement
	HotelName     string `json:"hotel_name"`
	VegetableName string `json:"vegetable_name"`
}

// RequirementService implements the requirement lifecycle.
type RequirementService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Cache holds built matrix reports; may be nil.
	Cache MatrixCache
	// Now is the service clock; defaults to time.Now().UTC().
	Now func() time.Time
	// IdempotencyTTL bounds how long an Idempotency-Key is remembered.
	IdempotencyTTL time.Duration
}

// NewRequirementService constructs a RequirementService with a UTC clock.
func NewRequirementService(db *gorm.DB, cache MatrixCache, idemTTL time.Duration) *RequirementService {
	return &RequirementService{
		DB:             db,
		Cache:          cache,
		Now:            func() time.Time { return time.Now().UTC() },
		IdempotencyTTL: idemTTL,
	}
}

func (s *RequirementService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *RequirementService) tracer() trace.Tracer {
	return otel.Tracer("services/RequirementService")
}

// Submit stores a new pending requirement. It fails with ErrConflict when a
// requirement already exists for the natural key.
func (s *RequirementService) Submit(ctx context.Context, in RequirementInput) (*domain.Requirement, error) {
	ctx, span := s.tracer().Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("hotel.id", in.HotelID),
		attribute.String("vegetable.id", in.VegetableID),
		attribute.String("date", in.Date),
	))
	defer span.End()

	in, err := normalizeInput(in, "")
	if err != nil {
		return nil, err
	}
	now := s.now()
	r := newRequirement(in, now)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := repo.FindRequirementByKey(ctx, tx, in.HotelID, in.VegetableID, in.Date)
		switch {
		case err == nil:
			return ErrConflict
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}
		if err := repo.CreateRequirement(ctx, tx, r); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			observability.RequirementWrites.WithLabelValues("conflict").Inc()
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submit failed")
		}
		return nil, err
	}

	observability.RequirementWrites.WithLabelValues(string(OutcomeCreated)).Inc()
	s.invalidate(ctx, in.Date)
	return r, nil
}

// SubmitIdempotent is Submit keyed by a client-supplied idempotency key.
// A repeated key within IdempotencyTTL returns the stored requirement with
// replayed=true, provided the submission matches the one the key was first
// used with; otherwise it fails with ErrIdempotencyMismatch. A blank key
// behaves like Submit.
func (s *RequirementService) SubmitIdempotent(ctx context.Context, scope, key string, in RequirementInput) (r *domain.Requirement, replayed bool, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		r, err = s.Submit(ctx, in)
		return r, false, err
	}

	norm, err := normalizeInput(in, "")
	if err != nil {
		return nil, false, err
	}
	hash := requestHash(norm)

	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, s.now())
	switch {
	case err == nil:
		if rec.RequestHash != "" && rec.RequestHash != hash {
			return nil, false, ErrIdempotencyMismatch
		}
		stored, gerr := repo.GetRequirement(ctx, s.DB, rec.RequirementID)
		if gerr == nil {
			observability.RequirementWrites.WithLabelValues("replayed").Inc()
			return stored, true, nil
		}
		if !errors.Is(gerr, repo.ErrNotFound) {
			return nil, false, gerr
		}
		// requirement deleted since; forget the key and submit afresh
		if derr := repo.DeleteIdempotency(ctx, s.DB, scope, key); derr != nil {
			return nil, false, derr
		}
	case !errors.Is(err, repo.ErrNotFound):
		return nil, false, err
	}

	r, err = s.Submit(ctx, norm)
	if err != nil {
		return nil, false, err
	}
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if _, ierr := repo.CreateIdempotency(ctx, s.DB, scope, key, hash, r.ID, http.StatusCreated, ttl); ierr != nil {
		log.Ctx(ctx).Warn().Err(ierr).Str("scope", scope).Msg("idempotency record not stored")
	}
	return r, false, nil
}

// BulkSubmit creates or merges every line in one transaction. Lines are
// validated up front; nothing is written if any line is invalid or any
// write fails. A line whose natural key exists has its quantity replaced and
// updated_at bumped; status and created_at are preserved. Results follow
// input order.
func (s *RequirementService) BulkSubmit(ctx context.Context, items []RequirementInput) ([]BulkResult, error) {
	ctx, span := s.tracer().Start(ctx, "BulkSubmit", trace.WithAttributes(
		attribute.Int("items", len(items)),
	))
	defer span.End()

	norm := make([]RequirementInput, len(items))
	for i, in := range items {
		n, err := normalizeInput(in, fmt.Sprintf("items[%d].", i))
		if err != nil {
			return nil, err
		}
		norm[i] = n
	}
	if len(norm) == 0 {
		return []BulkResult{}, nil
	}

	now := s.now()
	results := make([]BulkResult, len(norm))
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, in := range norm {
			res, err := upsertRequirement(ctx, tx, in, now)
			if err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
			results[i] = res
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bulk submit failed")
		return nil, err
	}

	dates := make([]string, 0, len(norm))
	for _, res := range results {
		observability.RequirementWrites.WithLabelValues(string(res.Outcome)).Inc()
		dates = append(dates, res.Date)
	}
	s.invalidate(ctx, dates...)
	return results, nil
}

// upsertRequirement merges into the row stored under in's natural key or
// creates one. The insert runs in a savepoint so a lost race can be retried
// as a merge without aborting the enclosing transaction.
func upsertRequirement(ctx context.Context, tx *gorm.DB, in RequirementInput, now time.Time) (BulkResult, error) {
	existing, err := repo.FindRequirementByKey(ctx, tx, in.HotelID, in.VegetableID, in.Date)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return BulkResult{}, err
	}
	if existing == nil {
		r := newRequirement(in, now)
		err = tx.Transaction(func(sp *gorm.DB) error {
			return repo.CreateRequirement(ctx, sp, r)
		})
		if err == nil {
			return BulkResult{Requirement: *r, Outcome: OutcomeCreated}, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return BulkResult{}, err
		}
		if existing, err = repo.FindRequirementByKey(ctx, tx, in.HotelID, in.VegetableID, in.Date); err != nil {
			return BulkResult{}, err
		}
	}

	if err := repo.UpdateRequirementColumns(ctx, tx, existing.ID, map[string]any{
		"quantity":   in.Quantity,
		"updated_at": now,
	}); err != nil {
		return BulkResult{}, err
	}
	existing.Quantity = in.Quantity
	existing.UpdatedAt = now
	return BulkResult{Requirement: *existing, Outcome: OutcomeMerged}, nil
}

// Update applies the non-nil fields of p to requirement id and always bumps
// updated_at.
func (s *RequirementService) Update(ctx context.Context, id string, p RequirementPatch) (*domain.Requirement, error) {
	ctx, span := s.tracer().Start(ctx, "Update", trace.WithAttributes(attribute.String("requirement.id", id)))
	defer span.End()

	now := s.now()
	cols := map[string]any{"updated_at": now}
	if p.Quantity != nil {
		if err := validQuantity(*p.Quantity, "quantity"); err != nil {
			return nil, err
		}
		cols["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		cols["unit"] = normalizeUnit(*p.Unit)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, invalid("status", "must be pending or delivered")
		}
		cols["status"] = *p.Status
	}

	var out *domain.Requirement
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateRequirementColumns(ctx, tx, id, cols); err != nil {
			return err
		}
		r, err := repo.GetRequirement(ctx, tx, id)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRequirementNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.RequirementWrites.WithLabelValues("updated").Inc()
	s.invalidate(ctx, out.Date)
	return out, nil
}

// MarkDelivered moves every pending requirement of (hotelID, date) to
// delivered and returns how many rows changed. Zero is not an error.
func (s *RequirementService) MarkDelivered(ctx context.Context, hotelID, date string) (int64, error) {
	ctx, span := s.tracer().Start(ctx, "MarkDelivered", trace.WithAttributes(
		attribute.String("hotel.id", hotelID),
		attribute.String("date", date),
	))
	defer span.End()

	if strings.TrimSpace(hotelID) == "" {
		return 0, invalid("hotel_id", "is required")
	}
	date, err := normalizeDate(date, "date")
	if err != nil {
		return 0, err
	}
	n, err := repo.MarkDelivered(ctx, s.DB, hotelID, date, s.now())
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("modified", n))
	if n > 0 {
		observability.DeliveriesMarked.Add(float64(n))
		s.invalidate(ctx, date)
	}
	return n, nil
}

// Delete removes requirement id.
func (s *RequirementService) Delete(ctx context.Context, id string) error {
	var date string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetRequirement(ctx, tx, id)
		if err != nil {
			return err
		}
		date = r.Date
		return repo.DeleteRequirement(ctx, tx, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRequirementNotFound
	}
	if err != nil {
		return err
	}
	observability.RequirementWrites.WithLabelValues("deleted").Inc()
	s.invalidate(ctx, date)
	return nil
}

// List returns requirements matching q with hotel and vegetable names
// resolved. Names that do not resolve become UnknownName. SellerID narrows
// the result to that seller's current catalog.
func (s *RequirementService) List(ctx context.Context, q RequirementQuery) ([]RequirementView, error) {
	ctx, span := s.tracer().Start(ctx, "List")
	defer span.End()

	f, err := s.filter(ctx, q)
	if err != nil {
		return nil, err
	}
	reqs, err := repo.ListRequirements(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return []RequirementView{}, nil
	}

	hotelIDs := make([]string, 0, len(reqs))
	vegIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		hotelIDs = append(hotelIDs, r.HotelID)
		vegIDs = append(vegIDs, r.VegetableID)
	}
	hotels, err := repo.HotelsByIDs(ctx, s.DB, hotelIDs)
	if err != nil {
		return nil, err
	}
	vegs, err := repo.VegetablesByIDs(ctx, s.DB, vegIDs)
	if err != nil {
		return nil, err
	}

	out := make([]RequirementView, 0, len(reqs))
	for _, r := range reqs {
		v := RequirementView{Requirement: r, HotelName: UnknownName, VegetableName: UnknownName}
		if h, ok := hotels[r.HotelID]; ok {
			v.HotelName = h.Name
		}
		veg, ok := vegs[r.VegetableID]
		if ok {
			v.VegetableName = veg.Name
		}
		switch {
		case ok && veg.Unit != "":
			v.Unit = veg.Unit
		case v.Unit == "":
			v.Unit = domain.DefaultUnit
		}
		out = append(out, v)
	}
	span.SetAttributes(attribute.Int("results", len(out)))
	return out, nil
}

// ListETag returns a weak validator for List(q). It changes whenever the
// matching requirements or any hotel or vegetable changes.
func (s *RequirementService) ListETag(ctx context.Context, q RequirementQuery) (string, error) {
	f, err := s.filter(ctx, q)
	if err != nil {
		return "", err
	}
	rs, err := repo.RequirementsStats(ctx, s.DB, f)
	if err != nil {
		return "", err
	}
	cs, err := repo.CatalogStats(ctx, s.DB)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s|%s|%d", f.HotelID, f.Date, q.SellerID, len(f.VegetableIDs))
	return fmt.Sprintf(`W/"reqs:%x:%d:%d:%d:%d"`, h.Sum64(), rs.Count, rs.Unix(), cs.Count, cs.Unix()), nil
}

// HotelStatus rolls up the delivery state of hotelID on date.
func (s *RequirementService) HotelStatus(ctx context.Context, hotelID, date string) (domain.HotelStatus, error) {
	date, err := normalizeDate(date, "date")
	if err != nil {
		return "", err
	}
	if _, err := repo.GetHotel(ctx, s.DB, hotelID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrHotelNotFound
		}
		return "", err
	}
	reqs, err := repo.ListRequirements(ctx, s.DB, repo.RequirementFilter{HotelID: hotelID, Date: date})
	if err != nil {
		return "", err
	}
	return RollupHotelStatus(hotelID, date, reqs), nil
}

func (s *RequirementService) filter(ctx context.Context, q RequirementQuery) (repo.RequirementFilter, error) {
	f := repo.RequirementFilter{HotelID: strings.TrimSpace(q.HotelID)}
	if strings.TrimSpace(q.Date) != "" {
		d, err := normalizeDate(q.Date, "date")
		if err != nil {
			return f, err
		}
		f.Date = d
	}
	if sid := strings.TrimSpace(q.SellerID); sid != "" {
		ids, err := repo.VegetableIDsBySeller(ctx, s.DB, sid)
		if err != nil {
			return f, err
		}
		if ids == nil {
			ids = []string{}
		}
		f.VegetableIDs = ids
	}
	return f, nil
}

func (s *RequirementService) invalidate(ctx context.Context, dates ...string) {
	if s.Cache != nil && len(dates) > 0 {
		s.Cache.Invalidate(ctx, dates...)
	}
}

// --- input helpers ---

func newRequirement(in RequirementInput, now time.Time) *domain.Requirement {
	return &domain.Requirement{
		HotelID:     in.HotelID,
		VegetableID: in.VegetableID,
		Date:        in.Date,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// normalizeInput trims ids and unit, canonicalizes the date, and validates the
// line. prefix qualifies field names in errors ("items[2].").
func normalizeInput(in RequirementInput, prefix string) (RequirementInput, error) {
	in.HotelID = strings.TrimSpace(in.HotelID)
	in.VegetableID = strings.TrimSpace(in.VegetableID)
	if in.HotelID == "" {
		return in, invalid(prefix+"hotel_id", "is required")
	}
	if in.VegetableID == "" {
		return in, invalid(prefix+"vegetable_id", "is required")
	}
	if err := validQuantity(in.Quantity, prefix+"quantity"); err != nil {
		return in, err
	}
	d, err := normalizeDate(in.Date, prefix+"date")
	if err != nil {
		return in, err
	}
	in.Date = d
	in.Unit = normalizeUnit(in.Unit)
	return in, nil
}

// requestHash fingerprints a normalized submission for idempotency checks.
func requestHash(in RequirementInput) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		in.HotelID,
		in.VegetableID,
		in.Date,
		strconv.FormatFloat(in.Quantity, 'g', -1, 64),
		in.Unit,
	}, "\x1f")))
	return hex.EncodeToString(sum[:])
}

func validQuantity(q float64, field string) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return invalid(field, "must be a finite number")
	}
	if q < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// normalizeDate accepts YYYY-MM-DD and returns it in canonical form.
func normalizeDate(s, field string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "is required")
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return "", invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return t.Format(domain.DateLayout), nil
}

// normalizeUnit trims a unit and collapses inner whitespace, keeping its
// case; blank becomes DefaultUnit.
func normalizeUnit(u string) string {
	u = strings.Join(strings.Fields(u), " ")
	if u == "" {
		return domain.DefaultUnit
	}
	return u
}
