package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/api"
	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("config.LoadDotEnv")
		return
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger, err := logging.SetupLogging(envConfig.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
		return
	}

	if err := run(envConfig, logger); err != nil {
		logger.WithError(err).Fatal("budget-ledger stopped")
	}
	logger.Info("budget-ledger stopped")
}

func run(envConfig *config.Config, logger *logrus.Logger) error {
	logger.WithField("backend", envConfig.DataBackend).Info("budget-ledger starting")

	resolver, err := auth.NewJWTResolver(envConfig.JWTSecret)
	if err != nil {
		return fmt.Errorf("JWT_SECRET: %w", err)
	}

	store, err := openStorage(envConfig, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, err := openPublisher(envConfig, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, publisher, logger)
	delegator.Start()
	defer delegator.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.HTTPPort,
		Storage:  store,
		Service:  service.NewService(store.Reader, delegator),
		Resolver: resolver,
	}
	return httpRest.Serve(ctx)
}

func openStorage(envConfig *config.Config, logger *logrus.Logger) (*storage.Storage, error) {
	if envConfig.DataBackend == config.BackendMemory {
		logger.Warn("using in-memory storage, data is lost on exit")
		return memory.NewStorage(), nil
	}

	if envConfig.MigrateOnStart {
		result, err := storage.RunMigrations(envConfig.ConnectionString())
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  result.PreVersion,
			"postMigrationVersion": result.PostVersion,
		}).Info("Migration status")
	}

	return storage.NewStorage(envConfig)
}

func openPublisher(envConfig *config.Config, logger *logrus.Logger) (events.Publisher, error) {
	if envConfig.AMQPURL == "" {
		return events.Noop{}, nil
	}
	return events.NewAMQPPublisher(envConfig.AMQPURL, envConfig.AMQPExchange, logger)
}
