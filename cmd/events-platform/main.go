package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SergeyKozhin/events-platform-backend/internal/api"
	occurrences_service "github.com/SergeyKozhin/events-platform-backend/internal/business/occurrences"
	series_service "github.com/SergeyKozhin/events-platform-backend/internal/business/series"
	"github.com/SergeyKozhin/events-platform-backend/internal/config"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/database/events"
	"github.com/SergeyKozhin/events-platform-backend/internal/database/series"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initializae db: %v", err)
	}

	seriesRepository := series.NewRepository()
	eventsRepository := events.NewRepository()

	seriesService := series_service.NewService(db, logger, seriesRepository, eventsRepository)
	occurrencesService := occurrences_service.NewService(db, logger, seriesRepository, eventsRepository)

	api := api.NewApi(
		logger,
		seriesService,
		occurrencesService,
	)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
