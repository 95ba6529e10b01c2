package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicsearch/internal/adapters/database"
	"github.com/zatekoja/clinicsearch/internal/adapters/search"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/observability"
	"github.com/zatekoja/clinicsearch/pkg/config"
)

func main() {
	var intervalFlag string
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("clinicsearch-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		log.Info().Dur("interval", interval).Msg("reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	clinicRepo := database.NewClinicAdapter(pgClient)
	clinics, err := clinicRepo.List(ctx)
	if err != nil {
		return err
	}

	builder := search.NewTypesenseBuilder(tsClient)
	if _, err := builder.BuildIndex(ctx, search.BuildIndexRecords(clinics), search.DefaultFieldBoosts()); err != nil {
		return err
	}

	log.Info().Int("clinics", len(clinics)).Msg("reindexed clinics")
	return nil
}
