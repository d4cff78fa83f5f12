// Command server runs the vegetable procurement API.
//
// @title       Vegetable Procurement API
// @version     1.0
// @description Daily vegetable requirements from hotels, seller catalogs, delivery status and the admin matrix.
// @BasePath    /api
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/go-veg-procurement/docs"
	"github.com/tbourn/go-veg-procurement/internal/cache"
	"github.com/tbourn/go-veg-procurement/internal/config"
	httpapi "github.com/tbourn/go-veg-procurement/internal/http"
	"github.com/tbourn/go-veg-procurement/internal/observability"
	"github.com/tbourn/go-veg-procurement/internal/repo"
	"github.com/tbourn/go-veg-procurement/internal/seed"
	"github.com/tbourn/go-veg-procurement/internal/services"
	"github.com/tbourn/go-veg-procurement/internal/sysutil"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.MustLoad()
	version := sysutil.Version(os.Getenv("APP_VERSION"))
	sysutil.InitLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName, version)
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, version); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, version string) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB, cfg.OTEL.Enabled)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(db) }()

	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	if n, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("idempotency purge failed")
	} else if n > 0 {
		log.Info().Int64("rows", n).Msg("expired idempotency keys purged")
	}

	if cfg.Seed.Enabled {
		res, err := seed.EnsureSampleData(ctx, db, cfg.Seed.CatalogPath)
		if err != nil {
			return err
		}
		if res.Seeded {
			log.Info().
				Int("hotels", res.Hotels).
				Int("sellers", res.Sellers).
				Int("vegetables", res.Vegetables).
				Msg("sample data seeded")
		}
	}

	var mc services.MatrixCache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			// the matrix is rebuilt from the store on every request without it
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("matrix cache disabled")
		} else {
			defer func() { _ = rc.Close() }()
			mc = rc
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, mc, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db", cfg.DB.Driver).
			Str("base_path", cfg.APIBasePath).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
