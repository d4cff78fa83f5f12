package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/http/middleware"
	"github.com/tbourn/go-veg-procurement/internal/repo"
	"github.com/tbourn/go-veg-procurement/internal/services"
)

// ---------- test API over a real sqlite store ----------

type testAPI struct {
	db   *gorm.DB
	r    *gin.Engine
	dash *services.DashboardService
}

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(db) })
	return db
}

// routes mirrors the router's /api group without the cross-cutting middleware.
func routes(r *gin.Engine, h *Handlers, idem gin.HandlerFunc) {
	api := r.Group("/api")
	api.GET("/requirements", h.ListRequirements)
	api.POST("/requirements", idem, h.SubmitRequirement)
	api.POST("/requirements/bulk", h.BulkSubmitRequirements)
	api.PUT("/requirements/:id", h.UpdateRequirement)
	api.DELETE("/requirements/:id", h.DeleteRequirement)

	api.POST("/hotels", h.CreateHotel)
	api.GET("/hotels", h.ListHotels)
	api.GET("/hotels/:id", h.GetHotel)
	api.PUT("/hotels/:id", h.UpdateHotel)
	api.DELETE("/hotels/:id", h.DeleteHotel)
	api.PUT("/hotels/:id/mark-delivered", h.MarkDelivered)
	api.GET("/hotels/:id/status", h.HotelStatus)

	api.POST("/sellers", h.CreateSeller)
	api.GET("/sellers", h.ListSellers)
	api.GET("/sellers/:id", h.GetSeller)
	api.PUT("/sellers/:id", h.UpdateSeller)
	api.DELETE("/sellers/:id", h.DeleteSeller)

	api.POST("/vegetables", h.CreateVegetable)
	api.GET("/vegetables", h.ListVegetables)
	api.GET("/vegetables/search", h.SearchVegetables)
	api.GET("/vegetables/by-seller/:seller_id", h.ListVegetablesBySeller)
	api.DELETE("/vegetables/:id", h.DeleteVegetable)

	api.GET("/dashboard/admin", h.AdminDashboard)
	api.GET("/dashboard/admin/matrix", h.Matrix)
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)

	reqSvc := services.NewRequirementService(db, nil, time.Hour)
	catSvc := services.NewCatalogService(db, nil)
	dash := services.NewDashboardService(db, nil, time.UTC)
	dash.Now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

	lookup := func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
		return rec != nil && err == nil, err
	}

	r := gin.New()
	routes(r, New(reqSvc, catSvc, dash), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, lookup))
	return &testAPI{db: db, r: r, dash: dash}
}

func (a *testAPI) do(t *testing.T, method, target string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v body=%s", v, err, w.Body.String())
	}
	return v
}

// seedCatalog creates Hotel 1, Hotel 2 and a seller with Kale and Leeks.
func (a *testAPI) seedCatalog(t *testing.T) (h1, h2 domain.Hotel, kale, leeks domain.Vegetable) {
	t.Helper()
	ctx := context.Background()
	mk := func(name string) domain.Hotel {
		h, err := repo.CreateHotel(ctx, a.db, repo.HotelFields{Name: name, ManagerName: "M", ManagerPhone: "+1"})
		if err != nil {
			t.Fatalf("hotel: %v", err)
		}
		return *h
	}
	h1, h2 = mk("Hotel 1"), mk("Hotel 2")
	s, err := repo.CreateSeller(ctx, a.db, repo.SellerFields{Name: "Green Grocers", Phone: "+9"})
	if err != nil {
		t.Fatalf("seller: %v", err)
	}
	k, _ := repo.CreateVegetable(ctx, a.db, repo.VegetableFields{Name: "Kale", Unit: "kg", SellerID: s.ID})
	l, _ := repo.CreateVegetable(ctx, a.db, repo.VegetableFields{Name: "Leeks", Unit: "bunch", SellerID: s.ID})
	return h1, h2, *k, *l
}

// ---------- stub services for error paths ----------

var errStore = errors.New("store unavailable")

type stubReqSvc struct{}

func (stubReqSvc) Submit(context.Context, services.RequirementInput) (*domain.Requirement, error) {
	return nil, errStore
}
func (stubReqSvc) SubmitIdempotent(context.Context, string, string, services.RequirementInput) (*domain.Requirement, bool, error) {
	return nil, false, errStore
}
func (stubReqSvc) BulkSubmit(context.Context, []services.RequirementInput) ([]services.BulkResult, error) {
	return nil, errStore
}
func (stubReqSvc) Update(context.Context, string, services.RequirementPatch) (*domain.Requirement, error) {
	return nil, errStore
}
func (stubReqSvc) Delete(context.Context, string) error { return errStore }
func (stubReqSvc) MarkDelivered(context.Context, string, string) (int64, error) {
	return 0, errStore
}
func (stubReqSvc) HotelStatus(context.Context, string, string) (domain.HotelStatus, error) {
	return "", errStore
}
func (stubReqSvc) List(context.Context, services.RequirementQuery) ([]services.RequirementView, error) {
	return nil, errStore
}
func (stubReqSvc) ListETag(context.Context, services.RequirementQuery) (string, error) {
	return "", errStore
}

type stubDashSvc struct{ today string }

func (s stubDashSvc) Today() string { return s.today }
func (stubDashSvc) Matrix(context.Context, string) (*domain.MatrixReport, error) {
	return nil, errStore
}
func (stubDashSvc) AdminDashboard(context.Context) (*domain.AdminDashboard, error) {
	return nil, errStore
}

// ---------- Submit ----------

func TestSubmitRequirement_CreateConflictValidation(t *testing.T) {
	a := newTestAPI(t)
	h1, _, kale, _ := a.seedCatalog(t)

	w := a.do(t, http.MethodPost, "/api/requirements", "{bad")
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Code != ErrCodeBadRequest {
		t.Fatalf("bad json -> %d %s", w.Code, w.Body.String())
	}

	in := services.RequirementInput{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 2.5, Date: "2024-01-01"}
	w = a.do(t, http.MethodPost, "/api/requirements", in)
	if w.Code != http.StatusCreated {
		t.Fatalf("create -> %d %s", w.Code, w.Body.String())
	}
	got := decode[domain.Requirement](t, w)
	if got.Status != domain.StatusPending || got.Unit != domain.DefaultUnit || got.Quantity != 2.5 {
		t.Fatalf("unexpected requirement: %+v", got)
	}
	if w.Header().Get(middleware.HeaderIdempotentReplay) != "" {
		t.Fatalf("plain submit must not be marked as replay")
	}

	w = a.do(t, http.MethodPost, "/api/requirements", in)
	if w.Code != http.StatusConflict || decode[ErrorResponse](t, w).Code != ErrCodeConflict {
		t.Fatalf("duplicate -> %d %s", w.Code, w.Body.String())
	}

	in.Quantity = -1
	in.Date = "2024-01-02"
	w = a.do(t, http.MethodPost, "/api/requirements", in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative quantity -> %d", w.Code)
	}
	if e := decode[ErrorResponse](t, w); e.Code != ErrCodeValidation || e.Message != "quantity: must not be negative" {
		t.Fatalf("validation body: %+v", e)
	}
}

func TestSubmitRequirement_IdempotentReplay(t *testing.T) {
	a := newTestAPI(t)
	h1, _, kale, _ := a.seedCatalog(t)
	in := services.RequirementInput{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 1, Date: "2024-01-01"}

	first := a.do(t, http.MethodPost, "/api/requirements", in, middleware.HeaderIdempotencyKey, "order-1")
	if first.Code != http.StatusCreated || first.Header().Get(middleware.HeaderIdempotentReplay) != "" {
		t.Fatalf("first -> %d replay=%q", first.Code, first.Header().Get(middleware.HeaderIdempotentReplay))
	}
	second := a.do(t, http.MethodPost, "/api/requirements", in, middleware.HeaderIdempotencyKey, "order-1")
	if second.Code != http.StatusCreated || second.Header().Get(middleware.HeaderIdempotentReplay) != "true" {
		t.Fatalf("retry -> %d replay=%q body=%s", second.Code, second.Header().Get(middleware.HeaderIdempotentReplay), second.Body.String())
	}
	if decode[domain.Requirement](t, first).ID != decode[domain.Requirement](t, second).ID {
		t.Fatalf("replay returned a different requirement")
	}

	// the same key with another hotel's order is refused, not replayed
	other := in
	other.HotelID = "another-hotel"
	reused := a.do(t, http.MethodPost, "/api/requirements", other, middleware.HeaderIdempotencyKey, "order-1")
	if reused.Code != http.StatusUnprocessableEntity || reused.Header().Get(middleware.HeaderIdempotentReplay) != "" {
		t.Fatalf("reused key -> %d replay=%q", reused.Code, reused.Header().Get(middleware.HeaderIdempotentReplay))
	}
	if decode[ErrorResponse](t, reused).Code != ErrCodeIdempotencyReuse {
		t.Fatalf("reused key body: %s", reused.Body.String())
	}

	// a different key for the same natural key is a real conflict
	third := a.do(t, http.MethodPost, "/api/requirements", in, middleware.HeaderIdempotencyKey, "order-2")
	if third.Code != http.StatusConflict {
		t.Fatalf("new key, same requirement -> %d", third.Code)
	}

	bad := a.do(t, http.MethodPost, "/api/requirements", in, middleware.HeaderIdempotencyKey, "not a key")
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("malformed key -> %d", bad.Code)
	}
}

// ---------- Bulk ----------

func TestBulkSubmit_MergesAndPreservesOrder(t *testing.T) {
	a := newTestAPI(t)
	h1, h2, kale, leeks := a.seedCatalog(t)

	seed := services.RequirementInput{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 2, Date: "2024-01-01"}
	if w := a.do(t, http.MethodPost, "/api/requirements", seed); w.Code != http.StatusCreated {
		t.Fatalf("seed -> %d", w.Code)
	}

	items := []services.RequirementInput{
		{HotelID: h2.ID, VegetableID: leeks.ID, Quantity: 4, Date: "2024-01-01"},
		{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 3, Date: "2024-01-01"},
	}
	w := a.do(t, http.MethodPost, "/api/requirements/bulk", items)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk -> %d %s", w.Code, w.Body.String())
	}
	out := decode[[]services.BulkResult](t, w)
	if len(out) != 2 ||
		out[0].Outcome != services.OutcomeCreated || out[0].HotelID != h2.ID ||
		out[1].Outcome != services.OutcomeMerged || out[1].Quantity != 3 || out[1].Status != domain.StatusPending {
		t.Fatalf("bulk results: %+v", out)
	}

	w = a.do(t, http.MethodPost, "/api/requirements/bulk", `{"hotel_id":"x"}`)
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Code != ErrCodeBadRequest {
		t.Fatalf("object body -> %d", w.Code)
	}

	bad := []services.RequirementInput{
		{HotelID: h2.ID, VegetableID: kale.ID, Quantity: 1, Date: "2024-01-03"},
		{HotelID: h2.ID, VegetableID: kale.ID, Quantity: 1, Date: "03/01/2024"},
	}
	w = a.do(t, http.MethodPost, "/api/requirements/bulk", bad)
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Message != "items[1].date: must be a date in YYYY-MM-DD format" {
		t.Fatalf("invalid line -> %d %s", w.Code, w.Body.String())
	}
	if n, _ := repo.CountRequirements(context.Background(), a.db, repo.RequirementFilter{Date: "2024-01-03"}); n != 0 {
		t.Fatalf("rejected batch wrote %d rows", n)
	}

	w = a.do(t, http.MethodPost, "/api/requirements/bulk", []services.RequirementInput{})
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty bulk -> %d %q", w.Code, w.Body.String())
	}
}

// ---------- Update / Delete ----------

func TestUpdateAndDeleteRequirement(t *testing.T) {
	a := newTestAPI(t)
	h1, _, kale, _ := a.seedCatalog(t)
	created := decode[domain.Requirement](t, a.do(t, http.MethodPost, "/api/requirements",
		services.RequirementInput{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 1, Date: "2024-01-01"}))

	w := a.do(t, http.MethodPut, "/api/requirements/"+created.ID, `{"quantity":7,"unit":" Crate "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update -> %d %s", w.Code, w.Body.String())
	}
	if up := decode[domain.Requirement](t, w); up.Quantity != 7 || up.Unit != "Crate" || up.Status != domain.StatusPending {
		t.Fatalf("updated: %+v", up)
	}

	if w := a.do(t, http.MethodPut, "/api/requirements/"+created.ID, `{"status":"lost"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad status -> %d", w.Code)
	}
	if w := a.do(t, http.MethodPut, "/api/requirements/"+created.ID, `{"quantity":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json -> %d", w.Code)
	}
	if w := a.do(t, http.MethodPut, "/api/requirements/missing", `{"quantity":1}`); w.Code != http.StatusNotFound {
		t.Fatalf("missing -> %d", w.Code)
	}

	if w := a.do(t, http.MethodDelete, "/api/requirements/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d", w.Code)
	}
	w = a.do(t, http.MethodDelete, "/api/requirements/"+created.ID, nil)
	if w.Code != http.StatusNotFound || decode[ErrorResponse](t, w).Code != ErrCodeNotFound {
		t.Fatalf("second delete -> %d", w.Code)
	}
}

// ---------- List ----------

func TestListRequirements_EnrichmentAndETag(t *testing.T) {
	a := newTestAPI(t)
	h1, h2, kale, leeks := a.seedCatalog(t)
	for _, in := range []services.RequirementInput{
		{HotelID: h1.ID, VegetableID: kale.ID, Quantity: 1, Date: "2024-01-01"},
		{HotelID: h2.ID, VegetableID: leeks.ID, Quantity: 2, Date: "2024-01-02"},
	} {
		if w := a.do(t, http.MethodPost, "/api/requirements", in); w.Code != http.StatusCreated {
			t.Fatalf("seed -> %d", w.Code)
		}
	}

	w := a.do(t, http.MethodGet, "/api/requirements", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	all := decode[[]services.RequirementView](t, w)
	if len(all) != 2 || all[0].Date != "2024-01-02" || all[0].HotelName != "Hotel 2" || all[0].VegetableName != "Leeks" || all[0].Unit != "bunch" {
		t.Fatalf("list: %+v", all)
	}

	if w := a.do(t, http.MethodGet, "/api/requirements", nil, "If-None-Match", etag); w.Code != http.StatusNotModified {
		t.Fatalf("conditional -> %d", w.Code)
	}

	filtered := decode[[]services.RequirementView](t, a.do(t, http.MethodGet, "/api/requirements?hotel_id="+h1.ID+"&date=2024-01-01", nil))
	if len(filtered) != 1 || filtered[0].VegetableName != "Kale" {
		t.Fatalf("filtered: %+v", filtered)
	}

	// a write changes the validator
	if w := a.do(t, http.MethodPost, "/api/requirements", services.RequirementInput{HotelID: h1.ID, VegetableID: leeks.ID, Quantity: 1, Date: "2024-01-01"}); w.Code != http.StatusCreated {
		t.Fatalf("third -> %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/api/requirements", nil, "If-None-Match", etag); w.Code != http.StatusOK || w.Header().Get("ETag") == etag {
		t.Fatalf("stale etag -> %d etag=%q", w.Code, w.Header().Get("ETag"))
	}

	if w := a.do(t, http.MethodGet, "/api/requirements?date=yesterday", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date -> %d", w.Code)
	}
}

// ---------- Mark delivered / status ----------

func TestMarkDeliveredAndHotelStatus(t *testing.T) {
	a := newTestAPI(t)
	h1, _, kale, leeks := a.seedCatalog(t)

	status := func(target string) HotelStatusResponse {
		t.Helper()
		w := a.do(t, http.MethodGet, target, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status %s -> %d %s", target, w.Code, w.Body.String())
		}
		return decode[HotelStatusResponse](t, w)
	}

	// date defaults to the dashboard's today (2024-01-01)
	if st := status("/api/hotels/" + h1.ID + "/status"); st.Status != domain.HotelStatusNone || st.Date != "2024-01-01" {
		t.Fatalf("initial: %+v", st)
	}

	for _, v := range []domain.Vegetable{kale, leeks} {
		a.do(t, http.MethodPost, "/api/requirements", services.RequirementInput{HotelID: h1.ID, VegetableID: v.ID, Quantity: 1, Date: "2024-01-01"})
	}
	if st := status("/api/hotels/" + h1.ID + "/status?date=2024-01-01"); st.Status != domain.HotelStatusPending {
		t.Fatalf("after submit: %+v", st)
	}

	w := a.do(t, http.MethodPut, "/api/hotels/"+h1.ID+"/mark-delivered?date=2024-01-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark -> %d %s", w.Code, w.Body.String())
	}
	if m := decode[MessageResponse](t, w); m.ModifiedCount != 2 || m.Message != "Marked 2 requirements as delivered" {
		t.Fatalf("mark body: %+v", m)
	}
	if st := status("/api/hotels/" + h1.ID + "/status?date=2024-01-01"); st.Status != domain.HotelStatusDelivered {
		t.Fatalf("after delivery: %+v", st)
	}

	again := decode[MessageResponse](t, a.do(t, http.MethodPut, "/api/hotels/"+h1.ID+"/mark-delivered?date=2024-01-01", nil))
	if again.ModifiedCount != 0 {
		t.Fatalf("second mark changed %d rows", again.ModifiedCount)
	}

	if w := a.do(t, http.MethodPut, "/api/hotels/"+h1.ID+"/mark-delivered", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing date -> %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/api/hotels/missing/status?date=2024-01-01", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown hotel -> %d", w.Code)
	}
}

func TestPluralRequirements(t *testing.T) {
	for n, want := range map[int64]string{0: "0 requirements", 1: "1 requirement", 12: "12 requirements"} {
		if got := pluralRequirements(n); got != want {
			t.Fatalf("pluralRequirements(%d) = %q", n, got)
		}
	}
}

// ---------- internal errors ----------

func TestRequirementHandlers_InternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes(r, New(stubReqSvc{}, nil, stubDashSvc{today: "2024-01-01"}), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	cases := []struct {
		method, target, body, key, code string
	}{
		{http.MethodGet, "/api/requirements", "", "", ErrCodeListFailed},
		{http.MethodPost, "/api/requirements", `{}`, "", ErrCodeCreateFailed},
		{http.MethodPost, "/api/requirements", `{}`, "k1", ErrCodeCreateFailed},
		{http.MethodPost, "/api/requirements/bulk", `[]`, "", ErrCodeCreateFailed},
		{http.MethodPut, "/api/requirements/x", `{}`, "", ErrCodeUpdateFailed},
		{http.MethodDelete, "/api/requirements/x", "", "", ErrCodeDeleteFailed},
		{http.MethodPut, "/api/hotels/x/mark-delivered?date=2024-01-01", "", "", ErrCodeDeliveryFailed},
		{http.MethodGet, "/api/hotels/x/status", "", "", ErrCodeReportFailed},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, bytes.NewBufferString(tc.body))
		if tc.key != "" {
			req.Header.Set(middleware.HeaderIdempotencyKey, tc.key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s -> %d", tc.method, tc.target, w.Code)
		}
		if e := decode[ErrorResponse](t, w); e.Code != tc.code || e.Message != errStore.Error() {
			t.Fatalf("%s %s body: %+v", tc.method, tc.target, e)
		}
	}
}
