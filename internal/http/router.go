// Package httpapi wires the Gin transport to the procurement services,
// middleware and route handlers.
//
// Middleware runs in this order:
//  1. OpenTelemetry span per request
//  2. RequestID
//  3. Access log (redacting or plain, per LOG_REDACT)
//  4. Recovery
//  5. Body size limit
//  6. gzip (not for /metrics)
//  7. Prometheus metrics
//  8. Idempotency-Key validation, before the limiter so replays bypass it
//  9. Rate limiter keyed by X-Client-ID or IP
//  10. CORS and security headers
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-veg-procurement/internal/config"
	"github.com/tbourn/go-veg-procurement/internal/http/handlers"
	"github.com/tbourn/go-veg-procurement/internal/http/middleware"
	"github.com/tbourn/go-veg-procurement/internal/repo"
	"github.com/tbourn/go-veg-procurement/internal/services"
)

const maxBodyBytes = 1 << 20

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "If-None-Match",
		middleware.HeaderClientID, middleware.HeaderIdempotencyKey,
	}
	corsExpose = []string{"X-Request-ID", "ETag", middleware.HeaderIdempotentReplay, "Retry-After", "Content-Length"}
)

// RegisterRoutes attaches middleware and every endpoint to r. mc caches
// matrix reports and may be nil.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, mc services.MatrixCache, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{"X-API-Key"},
		}))
	} else {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// RATE_RPS=0 disables limiting
	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientOrIP())
		r.Use(rl.Handler())
	}

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	reqSvc := services.NewRequirementService(db, mc, cfg.IdempotencyTTL)
	catSvc := services.NewCatalogService(db, mc)
	dashSvc := services.NewDashboardService(db, mc, cfg.Location())
	h := handlers.New(reqSvc, catSvc, dashSvc)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Requirements
		api.GET("/requirements", h.ListRequirements)
		api.POST("/requirements", h.SubmitRequirement)
		api.POST("/requirements/bulk", h.BulkSubmitRequirements)
		api.PUT("/requirements/:id", h.UpdateRequirement)
		api.DELETE("/requirements/:id", h.DeleteRequirement)

		// Hotels
		api.POST("/hotels", h.CreateHotel)
		api.GET("/hotels", h.ListHotels)
		api.GET("/hotels/:id", h.GetHotel)
		api.PUT("/hotels/:id", h.UpdateHotel)
		api.DELETE("/hotels/:id", h.DeleteHotel)
		api.PUT("/hotels/:id/mark-delivered", h.MarkDelivered)
		api.GET("/hotels/:id/status", h.HotelStatus)

		// Sellers
		api.POST("/sellers", h.CreateSeller)
		api.GET("/sellers", h.ListSellers)
		api.GET("/sellers/:id", h.GetSeller)
		api.PUT("/sellers/:id", h.UpdateSeller)
		api.DELETE("/sellers/:id", h.DeleteSeller)

		// Vegetables
		api.POST("/vegetables", h.CreateVegetable)
		api.GET("/vegetables", h.ListVegetables)
		api.GET("/vegetables/search", h.SearchVegetables)
		api.GET("/vegetables/by-seller/:seller_id", h.ListVegetablesBySeller)
		api.DELETE("/vegetables/:id", h.DeleteVegetable)

		// Dashboard
		api.GET("/dashboard/admin", h.AdminDashboard)
		api.GET("/dashboard/admin/matrix", h.Matrix)
	}
}

// corsMiddleware allows every origin when origins is empty. Otherwise only
// listed origins are echoed back in Access-Control-Allow-Origin.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// ACAO even without an Origin header, for health checks and curl
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    corsMethods,
				AllowHeaders:    corsHeaders,
				ExposeHeaders:   corsExpose,
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  corsMethods,
			AllowHeaders:  corsHeaders,
			ExposeHeaders: corsExpose,
			MaxAge:        12 * time.Hour,
		}),
	}
}

// limitBody caps request bodies at maxBytes; reads past the cap fail and
// surface as bad JSON in the handlers.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
