package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/operator"
	"github.com/carson-networks/wallet-ledger/internal/operator/actions"
)

// BudgetService owns budget CRUD and spending summaries. Budget writes are
// not queued offline; a failed write flips the unsynced indicator and the
// next snapshot reconciles.
type BudgetService struct {
	userID    string
	state     *Container
	delegator *operator.OperatorDelegator
	notifier  Notifier
	log       *logrus.Logger
	newID     func() (uuid.UUID, error)
}

func NewBudgetService(
	userID string,
	state *Container,
	delegator *operator.OperatorDelegator,
	notifier Notifier,
	log *logrus.Logger,
) *BudgetService {
	return &BudgetService{
		userID:    userID,
		state:     state,
		delegator: delegator,
		notifier:  notifier,
		log:       log,
		newID:     uuid.NewV4,
	}
}

func (s *BudgetService) AddBudget(ctx context.Context, name string, amount decimal.Decimal) (uuid.UUID, error) {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return uuid.Nil, ledger.ErrNotAuthenticated
	}

	if err := ledger.ValidateBudget(ledger.Budget{Name: name, Amount: amount}); err != nil {
		return uuid.Nil, err
	}

	id, err := s.newID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("assign budget id: %w", err)
	}
	budget := ledger.Budget{ID: id, Name: name, Amount: amount}

	s.state.ApplyBudgetPut(budget)
	s.dispatch(ctx, &actions.PutBudget{UserID: s.userID, Budget: budget}, "add budget")
	notify(s.notifier, NotifyInfo, "budget created")
	return id, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, name string, amount decimal.Decimal) error {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return ledger.ErrNotAuthenticated
	}

	if _, ok := s.state.Budget(id); !ok {
		return ledger.ErrBudgetNotFound
	}
	budget := ledger.Budget{ID: id, Name: name, Amount: amount}
	if err := ledger.ValidateBudget(budget); err != nil {
		return err
	}

	s.state.ApplyBudgetPut(budget)
	s.dispatch(ctx, &actions.PutBudget{UserID: s.userID, Budget: budget}, "update budget")
	notify(s.notifier, NotifyInfo, "budget updated")
	return nil
}

// DeleteBudget removes the budget only. Transactions that referenced it keep
// their reference and count as unbudgeted in summaries from then on.
func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return ledger.ErrNotAuthenticated
	}

	s.state.ApplyBudgetDelete(id)
	s.dispatch(ctx, &actions.DeleteBudget{UserID: s.userID, ID: id}, "delete budget")
	notify(s.notifier, NotifyInfo, "budget deleted")
	return nil
}

func (s *BudgetService) Budgets() []ledger.Budget {
	return s.state.Budgets()
}

func (s *BudgetService) Budget(id uuid.UUID) (ledger.Budget, bool) {
	return s.state.Budget(id)
}

// Summaries recomputes per-budget spending from the current ledger.
func (s *BudgetService) Summaries() ([]ledger.BudgetSummary, ledger.UnbudgetedSummary) {
	entries := s.state.Entries()
	txs := make([]ledger.Transaction, 0, len(entries))
	for _, e := range entries {
		txs = append(txs, e.Transaction)
	}
	return ledger.Aggregate(s.state.Budgets(), txs)
}

func (s *BudgetService) dispatch(ctx context.Context, action actions.IAction, op string) {
	s.delegator.ProcessAsync(ctx, action, func(err error) {
		writeErr := &ledger.RemoteWriteError{Op: op, Err: err}
		s.log.WithError(writeErr).Error("BudgetService.remote write failed")
		s.state.SetUnsynced(true)
		notify(s.notifier, NotifyError, "a change could not be saved remotely; it is marked unsynced")
	})
}
