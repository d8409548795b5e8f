package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/account-service/api"
	"github.com/carson-networks/account-service/internal/config"
	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/service"
	"github.com/carson-networks/account-service/internal/storage"
	"github.com/carson-networks/account-service/internal/storage/migrations"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("account-service starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	if err := logging.ApplyLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.ApplyLevel")
		return
	}

	if envConfig.AutoMigrate {
		pre, post, err := migrations.Up(envConfig.DatabaseURI)
		if err != nil {
			logger.WithError(err).Fatal("migrations.Up")
			return
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  pre,
			"postMigrationVersion": post,
		}).Info("Migration status")
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	svc := service.NewService(dbStorage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: svc,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Serve")
	}

	logger.Info("account-service stopped")
}
