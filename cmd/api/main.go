package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medassist/symptom-assistant/internal/adapters/cache"
	"github.com/medassist/symptom-assistant/internal/adapters/database"
	"github.com/medassist/symptom-assistant/internal/adapters/events"
	"github.com/medassist/symptom-assistant/internal/adapters/search"
	"github.com/medassist/symptom-assistant/internal/api/handlers"
	"github.com/medassist/symptom-assistant/internal/api/middleware"
	"github.com/medassist/symptom-assistant/internal/api/routes"
	"github.com/medassist/symptom-assistant/internal/application/services"
	"github.com/medassist/symptom-assistant/internal/domain/providers"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/redis"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/typesense"
	"github.com/medassist/symptom-assistant/internal/infrastructure/observability"
	"github.com/medassist/symptom-assistant/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - diagnosis works without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for catalog reload notifications
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	symptomAdapter := database.NewSymptomAdapter(pgClient)
	diseaseAdapter := database.NewDiseaseAdapter(pgClient)
	recommendationAdapter := database.NewRecommendationAdapter(pgClient)
	baseCatalogAdapter := database.NewCatalogAdapter(pgClient)

	// Wrap the catalog with caching when Redis is available
	var catalogRepo repositories.CatalogRepository
	var cachedCatalog *database.CachedCatalogAdapter
	if cacheProvider != nil {
		cachedCatalog = database.NewCachedCatalogAdapter(baseCatalogAdapter, cacheProvider, cfg.Catalog.SnapshotTTLSeconds)
		catalogRepo = cachedCatalog
		log.Println("Catalog adapter wrapped with caching layer")
	} else {
		catalogRepo = baseCatalogAdapter
		log.Println("Catalog adapter running without cache (Redis unavailable)")
	}

	var searchRepo repositories.SymptomSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		// Ensure schema exists
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	// Initialize services
	diagnosisService := services.NewDiagnosisService(
		catalogRepo,
		services.NewSymptomResolutionService(),
		services.NewDiagnosisRankingService(),
	)
	symptomService := services.NewSymptomService(symptomAdapter, searchRepo)
	diseaseService := services.NewDiseaseService(diseaseAdapter)

	// Drop cached snapshots when the loader publishes a reload
	var invalidationService *services.CatalogInvalidationService
	if cachedCatalog != nil && eventBus != nil {
		invalidationService = services.NewCatalogInvalidationService(cachedCatalog, eventBus)
		if err := invalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start catalog invalidation service: %v", err)
		}
	}

	// Initialize handlers
	diagnoseHandler := handlers.NewDiagnoseHandler(diagnosisService, metrics)
	symptomHandler := handlers.NewSymptomHandler(symptomService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseService, recommendationAdapter)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		diagnoseHandler,
		symptomHandler,
		diseaseHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if invalidationService != nil {
		invalidationService.Stop()
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
