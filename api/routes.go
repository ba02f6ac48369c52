package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/handlers/v1/budget"
	"github.com/carson-networks/wallet-ledger/internal/handlers/v1/catalog"
	"github.com/carson-networks/wallet-ledger/internal/handlers/v1/connectivity"
	"github.com/carson-networks/wallet-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/wallet-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/wallet-ledger/internal/logging"
	"github.com/carson-networks/wallet-ledger/internal/pending"
	"github.com/carson-networks/wallet-ledger/internal/service"
	"github.com/carson-networks/wallet-ledger/internal/syncer"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Queue   pending.Store
	Monitor *syncer.Monitor
}

func (r *Rest) Serve() {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(logging.RequestLogData(r.Logger))

	humaAPI := humachi.New(router, huma.DefaultConfig("wallet-ledger", "1.0.0"))
	r.registerHandlers(humaAPI)

	statusHandler := status.NewHandler(r.Queue, r.Service.State, r.Monitor)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           router,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) registerHandlers(humaAPI huma.API) {
	transaction.NewCreateTransactionHandler(r.Service.Ledger).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Ledger).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Ledger).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Ledger).Register(humaAPI)
	transaction.NewClearTransactionsHandler(r.Service.Ledger).Register(humaAPI)
	transaction.NewBalanceHandler(r.Service.Ledger).Register(humaAPI)

	budget.NewCreateBudgetHandler(r.Service.Budgets).Register(humaAPI)
	budget.NewUpdateBudgetHandler(r.Service.Budgets).Register(humaAPI)
	budget.NewDeleteBudgetHandler(r.Service.Budgets).Register(humaAPI)
	budget.NewListBudgetsHandler(r.Service.Budgets).Register(humaAPI)
	budget.NewSummaryHandler(r.Service.Budgets).Register(humaAPI)

	catalog.NewCategoriesHandler(r.Service.Categories).Register(humaAPI)
	catalog.NewDomainsHandler(r.Service.Domains).Register(humaAPI)

	connectivity.NewHandler(r.Monitor).Register(humaAPI)
}
