package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-veg-procurement/internal/config"
	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/services"
)

var (
	_ services.MatrixCache = (*Redis)(nil)
	_ services.MatrixCache = Nop{}
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func report(date string) *domain.MatrixReport {
	return &domain.MatrixReport{
		Date:        date,
		Hotels:      []domain.Hotel{{ID: "h1", Name: "Hotel 1"}},
		HotelStatus: map[string]domain.HotelStatus{"h1": domain.HotelStatusPending},
		Rows: []domain.MatrixRow{{
			VegetableID: "v1", VegetableName: "Kale", Unit: "kg",
			HotelQuantities: map[string]float64{"h1": 2}, Total: 2,
		}},
		TotalRequirements: 1,
	}
}

func TestNewRedis_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedis(context.Background(), config.RedisConfig{Addr: addr}); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestRedis_SetGetAndTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if _, ok := c.Get(ctx, "2024-01-01"); ok {
		t.Fatalf("empty cache should miss")
	}
	c.Set(ctx, "2024-01-01", c.Generation(ctx, "2024-01-01"), report("2024-01-01"))
	c.Set(ctx, "2024-01-02", c.Generation(ctx, "2024-01-02"), nil) // ignored

	got, ok := c.Get(ctx, "2024-01-01")
	if !ok || got.Rows[0].HotelQuantities["h1"] != 2 || got.HotelStatus["h1"] != domain.HotelStatusPending {
		t.Fatalf("Get = %+v, %v", got, ok)
	}
	if ttl := mr.TTL(KeyPrefix + "2024-01-01"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	if mr.Exists(KeyPrefix + "2024-01-02") {
		t.Fatalf("nil report should not be stored")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := c.Get(ctx, "2024-01-01"); ok {
		t.Fatalf("entry should expire")
	}
}

func TestRedis_CorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	if err := mr.Set(KeyPrefix+"2024-01-01", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := c.Get(ctx, "2024-01-01"); ok {
		t.Fatalf("corrupt entry should miss")
	}
	if mr.Exists(KeyPrefix + "2024-01-01") {
		t.Fatalf("corrupt entry should be deleted")
	}
}

func TestRedis_InvalidateAndInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		c.Set(ctx, d, c.Generation(ctx, d), report(d))
	}
	if err := mr.Set("unrelated", "keep"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c.Invalidate(ctx)                             // no-op
	c.Invalidate(ctx, "2024-01-01", "2024-01-01") // duplicates are fine
	if _, ok := c.Get(ctx, "2024-01-01"); ok {
		t.Fatalf("invalidated date still cached")
	}
	if _, ok := c.Get(ctx, "2024-01-02"); !ok {
		t.Fatalf("other dates should stay")
	}

	c.InvalidateAll(ctx)
	for _, d := range []string{"2024-01-02", "2024-01-03"} {
		if _, ok := c.Get(ctx, d); ok {
			t.Fatalf("%s survived InvalidateAll", d)
		}
	}
	if !mr.Exists("unrelated") {
		t.Fatalf("InvalidateAll must only touch matrix keys")
	}
}

func TestRedis_InvalidateAllManyKeys(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	for i := 0; i < 250; i++ {
		if err := mr.Set(KeyPrefix+time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02"), "{}"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	c.InvalidateAll(ctx)
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, KeyPrefix) {
			t.Fatalf("report key left: %s", k)
		}
	}
}

func TestRedis_ErrorsDegradeToMiss(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	if c.ttl != 5*time.Minute {
		t.Fatalf("default ttl = %v", c.ttl)
	}
	mr.Close()

	if gen := c.Generation(ctx, "2024-01-01"); gen != "" {
		t.Fatalf("unreachable redis should yield an empty generation, got %q", gen)
	}
	c.Set(ctx, "2024-01-01", "0.0", report("2024-01-01"))
	if _, ok := c.Get(ctx, "2024-01-01"); ok {
		t.Fatalf("unreachable redis should miss")
	}
	c.Invalidate(ctx, "2024-01-01")
	c.InvalidateAll(ctx)
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var n Nop
	n.Set(ctx, "d", n.Generation(ctx, "d"), report("d"))
	if _, ok := n.Get(ctx, "d"); ok {
		t.Fatalf("Nop should never hit")
	}
	n.Invalidate(ctx, "d")
	n.InvalidateAll(ctx)
}

func TestRedis_SetSkippedAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	gen := c.Generation(ctx, "2024-01-01")
	if gen != "0.0" {
		t.Fatalf("fresh generation = %q", gen)
	}

	// a write lands between the generation read and the store
	c.Invalidate(ctx, "2024-01-01")
	c.Set(ctx, "2024-01-01", gen, report("2024-01-01"))
	if mr.Exists(KeyPrefix + "2024-01-01") {
		t.Fatalf("report built before the invalidation was stored")
	}
	if ttl := mr.TTL(genPrefix + "2024-01-01"); ttl != genTTL {
		t.Fatalf("generation ttl = %v", ttl)
	}

	// other dates keep their generation
	other := c.Generation(ctx, "2024-01-02")
	c.Set(ctx, "2024-01-02", other, report("2024-01-02"))
	if !mr.Exists(KeyPrefix + "2024-01-02") {
		t.Fatalf("untouched date should be stored")
	}

	gen = c.Generation(ctx, "2024-01-01")
	if gen != "1.0" {
		t.Fatalf("generation after invalidate = %q", gen)
	}
	c.InvalidateAll(ctx)
	c.Set(ctx, "2024-01-01", gen, report("2024-01-01"))
	if mr.Exists(KeyPrefix + "2024-01-01") {
		t.Fatalf("InvalidateAll must retire earlier generations")
	}

	gen = c.Generation(ctx, "2024-01-01")
	c.Set(ctx, "2024-01-01", gen, report("2024-01-01"))
	if _, ok := c.Get(ctx, "2024-01-01"); !ok {
		t.Fatalf("set under the current generation should be stored")
	}
}
