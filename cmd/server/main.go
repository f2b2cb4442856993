package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/config"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
	"github.com/andrewsame/shaishaile/internal/domain/events"
	"github.com/andrewsame/shaishaile/internal/infrastructure/analytics"
	infraGitHub "github.com/andrewsame/shaishaile/internal/infrastructure/github"
	"github.com/andrewsame/shaishaile/internal/infrastructure/loader"
	"github.com/andrewsame/shaishaile/internal/infrastructure/objectstore"
	"github.com/andrewsame/shaishaile/internal/metrics"
	"github.com/andrewsame/shaishaile/internal/middleware"
	"github.com/andrewsame/shaishaile/internal/presentation/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Shaishaile Catalog API
// @version 1.0
// @description Repository catalog and analytics gateway for open source evaluation dashboards

// @contact.name Shaishaile Team

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Built-in catalog, always available as a fallback
	defaultCatalog, err := catalog.Default()
	if err != nil {
		log.Fatalf("Failed to load built-in catalog: %v", err)
	}

	// Catalog sources selectable per refresh
	sources := []catalog.Source{catalog.DefaultSource()}
	if cfg.Catalog.RemoteURL != "" {
		sources = append(sources, loader.NewRemoteSource(
			cfg.Catalog.RemoteURL,
			time.Duration(cfg.Catalog.RequestTimeout)*time.Second,
		))
	}
	if cfg.Catalog.FilePath != "" {
		sources = append(sources, loader.NewFileSource(cfg.Catalog.FilePath))
	}

	// Initial catalog load. A failing source is logged and the built-in
	// catalog is served instead, the service starts either way.
	initial := defaultCatalog
	initialSource := "default"
	if cfg.Catalog.InitialSource != "default" {
		var src catalog.Source
		for _, s := range sources {
			if s.Name() == cfg.Catalog.InitialSource {
				src = s
			}
		}
		loaded, err := src.Load(context.Background())
		if err != nil {
			log.Printf("Initial catalog load from %s failed, serving the built-in catalog: %v",
				cfg.Catalog.InitialSource, err)
		} else {
			initial = loaded
			initialSource = cfg.Catalog.InitialSource
		}
	}
	store := catalog.NewStore(initial, initialSource)

	// Domain events. Every catalog swap feeds the audit log and the
	// refresh success metric.
	dispatcher := events.NewDispatcher()
	dispatcher.Register(catalog.EventTypeCatalogReplaced, func(ctx context.Context, event events.DomainEvent) error {
		if e, ok := event.(*catalog.CatalogReplacedEvent); ok {
			log.Printf("Catalog replaced: version=%s source=%s owners=%d repos=%d",
				e.Version, e.Source, e.OwnerCount, e.RepoCount)
		}
		return nil
	})
	dispatcher.Register(catalog.EventTypeCatalogReplaced, func(ctx context.Context, event events.DomainEvent) error {
		if e, ok := event.(*catalog.CatalogReplacedEvent); ok {
			metrics.CatalogRefreshTotal.WithLabelValues(e.Source, "success").Inc()
		}
		return nil
	})

	// Initialize infrastructure layer
	// External service clients
	analyticsClient := analytics.NewClient(&cfg.Analytics)
	enricher := infraGitHub.NewEnricher(&cfg.GitHub)

	var uploader service.BundleUploader
	if cfg.ObjectStore.Endpoint != "" {
		bundleStore, err := objectstore.NewBundleStore(&cfg.ObjectStore)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		uploader = bundleStore
	}

	// Initialize application layer
	// Application services (use cases)
	catalogService := service.NewCatalogService(store, sources, cfg.Catalog.InitialSource, enricher, dispatcher)
	analysisService := service.NewAnalysisService(analyticsClient, cfg.Analytics.MaxBatch)
	exportService := service.NewExportService(store, cfg.Analytics.BaseURL, cfg.Export.Dir, uploader)

	// Initialize presentation layer
	// HTTP handlers
	healthHandler := handlers.NewHealthHandler(analysisService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)

	if cfg.Export.OnStart {
		if _, err := exportService.ExportBundle(context.Background(), uploader != nil); err != nil {
			log.Printf("Startup export failed: %v", err)
		} else {
			log.Printf("Dashboard bundle exported to %s", cfg.Export.Dir)
		}
	}

	// The analytics API is an external system, its absence only degrades
	// the analysis endpoints
	if err := analysisService.Health(context.Background()); err != nil {
		log.Printf("Analytics API at %s is not answering: %v", cfg.Analytics.BaseURL, err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health and metrics endpoints (no auth required)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		// Catalog routes
		v1.GET("/catalog", catalogHandler.GetCatalog)
		v1.GET("/catalog/version", catalogHandler.GetVersion)
		v1.GET("/catalog/owners", catalogHandler.GetOwners)
		v1.GET("/catalog/owners/:owner/repos", catalogHandler.GetOwnerRepos)
		v1.GET("/catalog/popular", catalogHandler.GetPopular)
		v1.GET("/catalog/languages", catalogHandler.GetLanguages)
		v1.GET("/catalog/languages/:name/repos", catalogHandler.GetLanguageRepos)
		v1.GET("/catalog/categories", catalogHandler.GetCategories)
		v1.GET("/catalog/categories/:name/repos", catalogHandler.GetCategoryRepos)

		// Analysis routes
		v1.POST("/analysis/start", analysisHandler.Analyze)
		v1.POST("/analysis/batch", analysisHandler.BatchAnalyze)
		v1.POST("/analysis/screening", analysisHandler.Screen)
		v1.GET("/analysis/health", analysisHandler.Health)

		// Export routes
		v1.GET("/export/dataease", exportHandler.GetDataEaseConfig)

		// Mutating routes require a valid token
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.POST("/catalog/refresh", catalogHandler.RefreshCatalog)
			protected.POST("/export", exportHandler.Export)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
