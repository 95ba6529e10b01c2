package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicsearch/internal/adapters/cache"
	"github.com/zatekoja/clinicsearch/internal/adapters/database"
	"github.com/zatekoja/clinicsearch/internal/adapters/search"
	"github.com/zatekoja/clinicsearch/internal/api/handlers"
	"github.com/zatekoja/clinicsearch/internal/api/middleware"
	"github.com/zatekoja/clinicsearch/internal/api/routes"
	"github.com/zatekoja/clinicsearch/internal/application/services"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/redis"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/observability"
	"github.com/zatekoja/clinicsearch/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			// The API works without caching, just slower
			log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, text search will use the in-memory fallback")
		typesenseClient = nil
	}

	clinicRepo := database.NewClinicAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var index providers.SearchIndex
	if typesenseClient != nil {
		clinics, err := clinicRepo.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load clinics for indexing")
		}
		builder := search.NewTypesenseBuilder(typesenseClient)
		index, err = builder.BuildIndex(ctx, search.BuildIndexRecords(clinics), search.DefaultFieldBoosts())
		if err != nil {
			log.Warn().Err(err).Msg("failed to build search index, text search will use the in-memory fallback")
			index = nil
		} else {
			log.Info().Int("clinics", len(clinics)).Msg("search index built")
		}
	}

	classifier := services.NewQueryClassifierService()
	locations := services.NewLocationFilterService()
	searchService := services.NewSearchService(classifier, locations, cfg.Search.MinResults)
	assembler := services.NewResultAssemblyService(services.NewRankingService())

	clinicHandler := handlers.NewClinicHandler(
		clinicRepo,
		searchService,
		classifier,
		assembler,
		index,
		metrics,
		cfg.Search.PageSize,
	)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, cfg.Search.CacheTTLSecs)
	}

	router := routes.NewRouter(clinicHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
