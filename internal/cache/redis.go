// Package cache provides matrix report caches. Redis backs the shared cache
// used when REDIS_ADDR is set; Nop is used otherwise.
//
// Cache failures never fail a request: reads degrade to a miss and writes
// are logged and dropped.
//
// Every invalidation bumps a generation counter, per date and global. A
// report is only stored when the generation it was built under is still
// current, so a build that raced a write cannot put a stale report back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-veg-procurement/internal/config"
	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// KeyPrefix namespaces the report keys written by Redis.
const KeyPrefix = "vegproc:matrix:"

const (
	genPrefix = "vegproc:matrixgen:"
	genAllKey = "vegproc:matrixgen"

	// genTTL bounds how long a per-date counter outlives its last bump; it
	// must exceed the longest possible report build.
	genTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("matrix generation changed")

// Redis caches matrix reports as JSON strings with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to cfg.Addr and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisWithClient(rdb, cfg.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: rdb, ttl: ttl}
}

// Close closes the underlying client.
func (c *Redis) Close() error { return c.client.Close() }

func key(date string) string    { return KeyPrefix + date }
func genKey(date string) string { return genPrefix + date }

// readGeneration returns "<date counter>.<global counter>", missing
// counters reading as 0.
func readGeneration(ctx context.Context, rc redis.Cmdable, date string) (string, error) {
	vals, err := rc.MGet(ctx, genKey(date), genAllKey).Result()
	if err != nil {
		return "", err
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			parts[i] = s
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, "."), nil
}

// Generation returns the token to pass to Set for a report of date built
// from reads made after this call. It is empty when Redis is unreachable,
// which makes the following Set a no-op.
func (c *Redis) Generation(ctx context.Context, date string) string {
	gen, err := readGeneration(ctx, c.client, date)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("date", date).Msg("matrix cache generation read failed")
		return ""
	}
	return gen
}

// Get returns the cached report for date.
func (c *Redis) Get(ctx context.Context, date string) (*domain.MatrixReport, bool) {
	raw, err := c.client.Get(ctx, key(date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Ctx(ctx).Warn().Err(err).Str("date", date).Msg("matrix cache read failed")
		}
		return nil, false
	}
	var m domain.MatrixReport
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("date", date).Msg("matrix cache entry corrupt")
		_ = c.client.Del(ctx, key(date)).Err()
		return nil, false
	}
	return &m, true
}

// Set stores m under date with the configured TTL, unless date was
// invalidated after gen was read.
func (c *Redis) Set(ctx context.Context, date, gen string, m *domain.MatrixReport) {
	if m == nil || gen == "" {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("matrix cache encode failed")
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGeneration(ctx, tx, date)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key(date), raw, c.ttl)
			return nil
		})
		return err
	}, genKey(date), genAllKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.Ctx(ctx).Debug().Str("date", date).Msg("matrix cache write skipped after invalidation")
	default:
		log.Ctx(ctx).Warn().Err(err).Str("date", date).Msg("matrix cache write failed")
	}
}

// Invalidate drops the reports of the given dates and bumps their
// generations in one transaction.
func (c *Redis) Invalidate(ctx context.Context, dates ...string) {
	if len(dates) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(dates))
	keys := make([]string, 0, len(dates))
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, d := range dates {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			keys = append(keys, key(d))
			p.Incr(ctx, genKey(d))
			p.Expire(ctx, genKey(d), genTTL)
		}
		p.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Strs("dates", dates).Msg("matrix cache invalidate failed")
	}
}

// InvalidateAll bumps the global generation, then drops every cached
// report. It walks the key space with SCAN so large databases are not
// blocked.
func (c *Redis) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, genAllKey).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("matrix cache generation bump failed")
	}
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("matrix cache flush failed")
		}
		batch = batch[:0]
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			flush()
		}
	}
	if err := iter.Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("matrix cache scan failed")
	}
	flush()
}

// Nop is a cache that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (*domain.MatrixReport, bool)  { return nil, false }
func (Nop) Generation(context.Context, string) string                 { return "" }
func (Nop) Set(context.Context, string, string, *domain.MatrixReport) {}
func (Nop) Invalidate(context.Context, ...string)                     {}
func (Nop) InvalidateAll(context.Context)                             {}
