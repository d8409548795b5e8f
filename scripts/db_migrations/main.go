package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/account-service/internal/config"
	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/storage/migrations"
)

func main() {
	logger := logging.SetupLogging()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	preMigrationVersion, postMigrationVersion, err := migrations.Up(env.DatabaseURI)
	if err != nil {
		logger.WithError(err).Fatal("migrations.Up")
		return
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}
