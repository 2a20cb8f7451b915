package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/api"
	"github.com/vlecomte/phototrip-backend-go/internal/config"
	"github.com/vlecomte/phototrip-backend-go/internal/database"
	"github.com/vlecomte/phototrip-backend-go/internal/enrich"
	"github.com/vlecomte/phototrip-backend-go/internal/geocode"
	"github.com/vlecomte/phototrip-backend-go/internal/handler"
	"github.com/vlecomte/phototrip-backend-go/internal/repository"
	"github.com/vlecomte/phototrip-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if err := database.Init(database.Config{Path: cfg.DBPath}, logger); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	db := database.GetDB()
	photoRepo := repository.NewPhotoRepository(db)
	dayRepo := repository.NewDayEntryRepository(db)
	taskRepo := repository.NewEnrichmentTaskRepository(db)
	cacheRepo := repository.NewGeocodeCacheRepository(db)

	resolver := geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent, cfg.GeocodeTimeout)

	enrichCfg := enrich.Config{
		DefaultCoord:       enrich.Coordinate{Lat: cfg.DefaultLatitude, Lon: cfg.DefaultLongitude},
		ProximityKm:        cfg.ProximityKm,
		MaxResolvesPerDay:  cfg.MaxResolvesPerDay,
		GeocodeConcurrency: cfg.GeocodeConcurrency,
	}

	enrichmentService := service.NewEnrichmentService(
		photoRepo, dayRepo, taskRepo, cacheRepo, resolver, enrichCfg, logger)
	titleService := service.NewTitleService(dayRepo, logger)
	photoService := service.NewPhotoService(photoRepo, cfg.ExtractConcurrency, logger)

	router := api.SetupRouter(cfg, logger, api.Handlers{
		Photos:     handler.NewPhotoHandler(photoService),
		Days:       handler.NewDayHandler(dayRepo),
		Enrichment: handler.NewEnrichmentHandler(enrichmentService),
		Titles:     handler.NewTitleHandler(titleService),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
