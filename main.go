package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/api"
	"github.com/carson-networks/wallet-ledger/internal/config"
	"github.com/carson-networks/wallet-ledger/internal/logging"
	"github.com/carson-networks/wallet-ledger/internal/operator"
	"github.com/carson-networks/wallet-ledger/internal/pending"
	"github.com/carson-networks/wallet-ledger/internal/service"
	"github.com/carson-networks/wallet-ledger/internal/store"
	"github.com/carson-networks/wallet-ledger/internal/store/firestore"
	"github.com/carson-networks/wallet-ledger/internal/store/memory"
	"github.com/carson-networks/wallet-ledger/internal/syncer"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLoggingAtLevel(envConfig.LogLevel)
	logger.Info("wallet-ledger starting")

	ctx := context.Background()

	docs, err := newDocumentStore(ctx, envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("store.setup")
		return
	}

	queue, err := pending.NewSQLiteStore(envConfig.QueuePath)
	if err != nil {
		logger.WithError(err).Fatal("pending.NewSQLiteStore")
		return
	}
	defer queue.Close()

	// One worker keeps remote writes serialized in issue order.
	delegator := operator.NewOperatorDelegator(docs, 1)
	delegator.Start()
	defer delegator.Stop()

	monitor := syncer.NewMonitor(!envConfig.StartOffline)
	notifier := &service.LogNotifier{Logger: logger}

	svc := service.NewService(
		envConfig.UserID,
		docs,
		delegator,
		queue,
		monitor.Online,
		notifier,
		logger,
	)

	coordinator := syncer.NewCoordinator(envConfig.UserID, queue, delegator, svc.State, notifier, logger)
	monitor.OnTransition(coordinator.HandleTransition)

	if err := svc.Ledger.Start(ctx); err != nil {
		logger.WithError(err).Fatal("service.Start")
		return
	}

	// Anything queued from a previous offline run replays at startup.
	if monitor.Online() {
		coordinator.HandleTransition(true)
	}

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Queue:   queue,
			Monitor: monitor,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

func newDocumentStore(ctx context.Context, envConfig *config.Config, logger *logrus.Logger) (store.DocumentStore, error) {
	if envConfig.StoreBackend == "firestore" {
		fs, err := firestore.New(ctx, envConfig.FirestoreProject, envConfig.FirestoreCredentials, logger)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
	return memory.New(logger), nil
}
