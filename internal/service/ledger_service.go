package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/operator"
	"github.com/carson-networks/wallet-ledger/internal/operator/actions"
	"github.com/carson-networks/wallet-ledger/internal/pending"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// LedgerService owns the transaction mutation operations. Every mutation
// validates first, applies optimistically to the state container, and issues
// a non-blocking remote write; while offline, the mutation lands in the
// durable queue instead and is replayed on reconnect.
type LedgerService struct {
	userID    string
	keys      *ledger.KeyAssigner
	state     *Container
	delegator *operator.OperatorDelegator
	queue     pending.Store
	docs      store.DocumentStore
	online    func() bool
	notifier  Notifier
	log       *logrus.Logger
	newID     func() (uuid.UUID, error)
}

func NewLedgerService(
	userID string,
	state *Container,
	delegator *operator.OperatorDelegator,
	queue pending.Store,
	docs store.DocumentStore,
	online func() bool,
	notifier Notifier,
	log *logrus.Logger,
) *LedgerService {
	return &LedgerService{
		userID:    userID,
		keys:      ledger.NewKeyAssigner(),
		state:     state,
		delegator: delegator,
		queue:     queue,
		docs:      docs,
		online:    online,
		notifier:  notifier,
		log:       log,
		newID:     uuid.NewV4,
	}
}

// Start opens the live store subscription and reconciles every delivered
// snapshot into the state container. It returns once the subscription is
// established; reconciliation continues until ctx is canceled.
func (s *LedgerService) Start(ctx context.Context) error {
	snapshots, _, err := s.docs.Subscribe(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("open store subscription: %w", err)
	}

	go func() {
		for snap := range snapshots {
			s.state.Reconcile(snap)
		}
		s.log.Info("LedgerService.subscription closed")
	}()
	return nil
}

// AddTransaction validates the draft, assigns identity and ordering key, and
// hands the write off. It returns as soon as the mutation is accepted
// locally; persistence confirmation arrives later through the subscription.
func (s *LedgerService) AddTransaction(ctx context.Context, draft ledger.TransactionDraft) (uuid.UUID, error) {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return uuid.Nil, ledger.ErrNotAuthenticated
	}
	if err := draft.Validate(); err != nil {
		return uuid.Nil, err
	}

	id, err := s.newID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("assign transaction id: %w", err)
	}

	tx := ledger.Transaction{
		ID:          id,
		Amount:      draft.Amount,
		Type:        draft.Type,
		Description: draft.Description,
		Beneficiary: draft.Beneficiary,
		Category:    draft.Category,
		Domain:      draft.Domain,
		Date:        draft.Date,
		BudgetID:    draft.BudgetID,
		OrderingKey: s.keys.Next(),
	}

	if !s.online() {
		if err := s.enqueueAdd(ctx, tx); err != nil {
			return uuid.Nil, err
		}
		s.state.ApplyAdd(tx)
		notify(s.notifier, NotifyWarning, "offline: transaction queued, it will sync when you reconnect")
		return id, nil
	}

	s.state.ApplyAdd(tx)
	s.dispatch(ctx, &actions.PutTransaction{UserID: s.userID, Transaction: tx}, "add transaction")
	notify(s.notifier, NotifyInfo, "transaction added")
	return id, nil
}

// UpdateTransaction replaces every caller-editable field wholesale. The
// ordering key of the stored entry is carried over untouched, so the edit
// cannot move the entry within the balance-computation order.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id uuid.UUID, draft ledger.TransactionDraft) error {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return ledger.ErrNotAuthenticated
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	existing, ok := s.state.Transaction(id)
	if !ok {
		return ledger.ErrTransactionNotFound
	}

	tx := ledger.Transaction{
		ID:          id,
		Amount:      draft.Amount,
		Type:        draft.Type,
		Description: draft.Description,
		Beneficiary: draft.Beneficiary,
		Category:    draft.Category,
		Domain:      draft.Domain,
		Date:        draft.Date,
		BudgetID:    draft.BudgetID,
		OrderingKey: existing.OrderingKey,
	}

	if !s.online() {
		// Remote puts are upserts, so an edit queues as an add record.
		if err := s.enqueueAdd(ctx, tx); err != nil {
			return err
		}
		s.state.ApplyUpdate(tx)
		notify(s.notifier, NotifyWarning, "offline: change queued, it will sync when you reconnect")
		return nil
	}

	s.state.ApplyUpdate(tx)
	s.dispatch(ctx, &actions.PutTransaction{UserID: s.userID, Transaction: tx}, "update transaction")
	notify(s.notifier, NotifyInfo, "transaction updated")
	return nil
}

// DeleteTransaction removes the transaction. Idempotent: unknown
// identifiers are a no-op, not an error.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return ledger.ErrNotAuthenticated
	}

	if !s.online() {
		record := pending.Mutation{ID: id.String(), Kind: pending.KindDelete}
		if err := s.queue.Put(ctx, record); err != nil {
			return fmt.Errorf("queue offline delete: %w", err)
		}
		s.state.ApplyDelete(id)
		notify(s.notifier, NotifyWarning, "offline: deletion queued, it will sync when you reconnect")
		return nil
	}

	s.state.ApplyDelete(id)
	s.dispatch(ctx, &actions.DeleteTransaction{UserID: s.userID, ID: id}, "delete transaction")
	notify(s.notifier, NotifyInfo, "transaction deleted")
	return nil
}

// ClearTransactions deletes every currently-known transaction in one atomic
// batch. Identifiers already gone remotely are no-ops within the batch.
func (s *LedgerService) ClearTransactions(ctx context.Context) error {
	if s.userID == "" {
		notify(s.notifier, NotifyError, "action requires a signed-in user")
		return ledger.ErrNotAuthenticated
	}

	ids := s.state.TransactionIDs()
	if len(ids) == 0 {
		return nil
	}

	if !s.online() {
		for _, id := range ids {
			record := pending.Mutation{ID: id.String(), Kind: pending.KindDelete}
			if err := s.queue.Put(ctx, record); err != nil {
				return fmt.Errorf("queue offline clear: %w", err)
			}
		}
		s.state.ApplyClear()
		notify(s.notifier, NotifyWarning, "offline: reset queued, it will sync when you reconnect")
		return nil
	}

	s.state.ApplyClear()
	s.dispatch(ctx, &actions.ClearTransactions{UserID: s.userID, IDs: ids}, "clear transactions")
	notify(s.notifier, NotifyInfo, "all transactions deleted")
	return nil
}

// Entries returns the recomputed ledger, newest first.
func (s *LedgerService) Entries() []Entry {
	return s.state.Entries()
}

// LatestBalance is the current account balance.
func (s *LedgerService) LatestBalance() decimal.Decimal {
	return s.state.LatestBalance()
}

// Totals sums income and expense over the whole ledger.
func (s *LedgerService) Totals() (income, expense decimal.Decimal) {
	entries := s.state.Entries()
	ledgerEntries := make([]ledger.Entry, len(entries))
	for i, e := range entries {
		ledgerEntries[i] = e.Entry
	}
	return ledger.Totals(ledgerEntries)
}

func (s *LedgerService) enqueueAdd(ctx context.Context, tx ledger.Transaction) error {
	payload, err := json.Marshal(store.EncodeTransaction(tx))
	if err != nil {
		return fmt.Errorf("encode queued transaction: %w", err)
	}
	record := pending.Mutation{ID: tx.ID.String(), Kind: pending.KindAdd, Payload: payload}
	if err := s.queue.Put(ctx, record); err != nil {
		return fmt.Errorf("queue offline add: %w", err)
	}
	return nil
}

// dispatch issues the fire-and-forget write. A late failure flips the
// unsynced indicator and surfaces on the notification channel; the core does
// not retry, the next authoritative snapshot is the source of truth.
func (s *LedgerService) dispatch(ctx context.Context, action actions.IAction, op string) {
	s.delegator.ProcessAsync(ctx, action, func(err error) {
		writeErr := &ledger.RemoteWriteError{Op: op, Err: err}
		s.log.WithError(writeErr).Error("LedgerService.remote write failed")
		s.state.SetUnsynced(true)
		notify(s.notifier, NotifyError, "a change could not be saved remotely; it is marked unsynced")
	})
}
