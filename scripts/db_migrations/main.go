package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

func main() {
	if err := server_config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("LoadDotEnv")
		return
	}

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	result, err := storage.RunMigrations(env.ConnectionString())
	if err != nil {
		logrus.WithError(err).Fatal("RunMigrations")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreVersion,
		"postMigrationVersion": result.PostVersion,
	}).Info("Migration status")
}
