package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicsearch/internal/adapters/database"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/observability"
	"github.com/zatekoja/clinicsearch/pkg/config"
)

func main() {
	observability.InitLogger("clinicsearch-seed", os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				clinic_procedures,
				clinics
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to truncate tables")
		}
	}

	clinicRepo := database.NewClinicAdapter(pgClient)

	for _, clinic := range seedClinics() {
		if err := clinicRepo.Create(ctx, clinic); err != nil {
			log.Fatal().Err(err).Str("clinic", clinic.Name).Msg("failed to seed clinic")
		}
	}

	log.Info().Int("clinics", len(seedClinics())).Msg("seeding complete")
}

func seedClinics() []*entities.Clinic {
	return []*entities.Clinic{
		{
			Name: "Glow Aesthetics Miami", Address: "120 Biscayne Blvd", City: "Miami", State: "FL",
			ZipCode: "33101", Category: "medspa", Rating: 4.8, ReviewCount: 212,
			Latitude: 25.7743, Longitude: -80.1937,
			Procedures: []entities.Procedure{
				{Name: "Botox", Category: "Injectables", Price: 320, Providers: []string{"Dr. Ana Reyes"}},
				{Name: "Lip Filler", Category: "Injectables", Price: 550},
				{Name: "Chemical Peel", Category: "Skin", Price: 250},
			},
		},
		{
			Name: "Biscayne Plastic Surgery", Address: "455 NE 2nd Ave", City: "Miami", State: "FL",
			ZipCode: "33132", Category: "surgery", Rating: 4.4, ReviewCount: 98,
			Latitude: 25.7789, Longitude: -80.1895,
			Procedures: []entities.Procedure{
				{Name: "Brazilian Butt Lift", Category: "Body", Price: 8900, Providers: []string{"Dr. Marco Silva"}},
				{Name: "Liposuction", Category: "Body", Price: 5200},
				{Name: "Breast Augmentation", Category: "Breast", Price: 7200},
			},
		},
		{
			Name: "Tampa Bay Dermatology", Address: "88 Channelside Dr", City: "Tampa", State: "FL",
			ZipCode: "33602", Category: "derm", Rating: 4.6, ReviewCount: 143,
			Latitude: 27.9425, Longitude: -82.4513,
			Procedures: []entities.Procedure{
				{Name: "Laser Resurfacing", Category: "Skin", Price: 900},
				{Name: "Microneedling", Category: "Skin", Price: 350},
			},
		},
		{
			Name: "Peachtree Cosmetic Center", Address: "600 Peachtree St NE", City: "Atlanta", State: "GA",
			ZipCode: "30308", Category: "surgery", Rating: 4.1, ReviewCount: 67,
			Latitude: 33.7702, Longitude: -84.3857,
			Procedures: []entities.Procedure{
				{Name: "Rhinoplasty", Category: "Face", Price: 6400, Providers: []string{"Dr. Keisha Brown"}},
				{Name: "Blepharoplasty", Category: "Face", Price: 4100},
				{Name: "Tummy Tuck", Category: "Body", Price: 7800},
			},
		},
		{
			Name: "Manhattan Skin & Laser", Address: "220 Madison Ave", City: "New York", State: "NY",
			ZipCode: "10016", Category: "medspa", Rating: 4.7, ReviewCount: 305,
			Latitude: 40.7479, Longitude: -73.9827,
			Procedures: []entities.Procedure{
				{Name: "IPL Photofacial", Category: "Skin", Price: 450},
				{Name: "Botox", Category: "Injectables", Price: 400},
				{Name: "Scalp Micropigmentation", Category: "Hair", Price: 1800},
			},
		},
	}
}
