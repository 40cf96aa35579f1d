package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lexparse/internal/config"
	"lexparse/internal/database"
	"lexparse/internal/database/migration"
	"lexparse/internal/extract"
	handlers "lexparse/internal/http/handler"
	"lexparse/internal/http/middleware"
	"lexparse/internal/legal"
	"lexparse/internal/otel"
	"lexparse/internal/repository/postgres"
	"lexparse/internal/service"
	"lexparse/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing first so the DB driver and HTTP middleware pick up the provider
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// PostgreSQL connection (pooled via database/sql, traced via otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Extraction pipeline and metadata extractor
	engine := extract.NewEngine(cfg.Extract.MaxUploadSize)
	legalExtractor := legal.NewExtractor()

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(
		objStore,
		docRepo,
		engine,
		legalExtractor,
		time.Duration(cfg.Extract.PresignExpirySec)*time.Second,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom above the upload cap so the validator, not fiber,
		// produces the 413 for oversized documents.
		BodyLimit: int(cfg.Extract.MaxUploadSize) + 1<<20,
	})

	// Metrics registry with standard process/go collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	// Global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// HTTP routes with injected service
	handlers.RegisterRoutes(app, db, docSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
