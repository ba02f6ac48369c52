package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/operator"
	"github.com/carson-networks/wallet-ledger/internal/pending"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// Service bundles the domain services behind one constructor so wiring stays
// in one place.
type Service struct {
	State      *Container
	Ledger     *LedgerService
	Budgets    *BudgetService
	Categories *ledger.Catalog
	Domains    *ledger.Catalog
}

func NewService(
	userID string,
	docs store.DocumentStore,
	delegator *operator.OperatorDelegator,
	queue pending.Store,
	online func() bool,
	notifier Notifier,
	log *logrus.Logger,
) *Service {
	state := NewContainer(log)
	return &Service{
		State:      state,
		Ledger:     NewLedgerService(userID, state, delegator, queue, docs, online, notifier, log),
		Budgets:    NewBudgetService(userID, state, delegator, notifier, log),
		Categories: ledger.NewCategoryCatalog(),
		Domains:    ledger.NewDomainCatalog(),
	}
}
