package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvgen-backend/cv/style"
	"cvgen-backend/internal/aggregate"
	"cvgen-backend/internal/export"
	"cvgen-backend/internal/exports"
	"cvgen-backend/internal/shared/config"
	"cvgen-backend/internal/shared/metrics"
	"cvgen-backend/internal/shared/server/middleware"
	"cvgen-backend/internal/shared/server/respond"
	"cvgen-backend/internal/shared/storage/db"
	"cvgen-backend/internal/shared/storage/object"
	localstore "cvgen-backend/internal/shared/storage/object/local"
	s3store "cvgen-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	if err := style.Validate(); err != nil {
		log.Fatalf("style registry invalid: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	// Dependencies
	var store object.ObjectStore
	if cfg.ObjectStoreType == "s3" {
		s3, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			store = s3
		}
	}
	if store == nil {
		store = localstore.New(cfg.LocalStoreDir)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var historyRepo exports.Repo
	if sqlDB != nil {
		historyRepo = &exports.PGRepo{DB: sqlDB}
	} else {
		historyRepo = exports.NewMemoryRepo()
	}

	aggSvc := aggregate.NewService(aggregate.NewClient(cfg.RecordAPIBase))
	aggHandler := aggregate.NewHandler(aggSvc)

	pdfRenderer := export.NewChromeRenderer(cfg.ChromePath)
	exportSvc := export.NewService(aggSvc, store, historyRepo, pdfRenderer, style.Template(cfg.DefaultTemplate))
	exportHandler := export.NewHandler(exportSvc)

	limiter := middleware.NewRateLimiter(time.Now)
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Limiter:      limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/cv/export" {
				return "EXPORT"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			"EXPORT":  {Rate: 0.5, Burst: 3},
		},
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Env), rateLimit)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	aggHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
