// Package memory provides an in-memory DocumentStore. It backs tests and
// single-device use without a remote project, and mirrors the remote store's
// observable behavior: idempotent puts, no-op deletes, atomic batch deletes,
// and a full snapshot pushed to every subscriber on each change.
package memory

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

const subscriberBuffer = 16

type userDocs struct {
	transactions map[string]store.TransactionDoc
	budgets      map[string]store.BudgetDoc
}

type subscriber struct {
	userID string
	ch     chan store.Snapshot
}

// Store is an in-memory DocumentStore implementation.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*userDocs
	subscribers map[int]*subscriber
	nextSub     int
	writeErr    error
	log         *logrus.Logger
}

var _ store.DocumentStore = (*Store)(nil)

func New(log *logrus.Logger) *Store {
	return &Store{
		users:       make(map[string]*userDocs),
		subscribers: make(map[int]*subscriber),
		log:         log,
	}
}

// SetWriteError makes every subsequent write fail with err. Tests use it to
// simulate an unreachable or permission-denied remote store; nil restores
// normal operation.
func (s *Store) SetWriteError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *Store) docsLocked(userID string) *userDocs {
	docs, ok := s.users[userID]
	if !ok {
		docs = &userDocs{
			transactions: make(map[string]store.TransactionDoc),
			budgets:      make(map[string]store.BudgetDoc),
		}
		s.users[userID] = docs
	}
	return docs
}

func (s *Store) PutTransaction(_ context.Context, userID string, tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	doc := store.EncodeTransaction(tx)
	s.docsLocked(userID).transactions[doc.ID] = doc
	s.broadcastLocked(userID)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	delete(s.docsLocked(userID).transactions, id.String())
	s.broadcastLocked(userID)
	return nil
}

func (s *Store) DeleteTransactions(_ context.Context, userID string, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	docs := s.docsLocked(userID)
	for _, id := range ids {
		delete(docs.transactions, id.String())
	}
	s.broadcastLocked(userID)
	return nil
}

func (s *Store) PutBudget(_ context.Context, userID string, b ledger.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	doc := store.EncodeBudget(b)
	s.docsLocked(userID).budgets[doc.ID] = doc
	s.broadcastLocked(userID)
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	delete(s.docsLocked(userID).budgets, id.String())
	s.broadcastLocked(userID)
	return nil
}

// PutRawTransaction stores a wire document without encoding. Tests use it to
// plant malformed documents and exercise the quarantine path.
func (s *Store) PutRawTransaction(userID string, doc store.TransactionDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docsLocked(userID).transactions[doc.ID] = doc
	s.broadcastLocked(userID)
}

func (s *Store) Subscribe(ctx context.Context, userID string) (<-chan store.Snapshot, func(), error) {
	s.mu.Lock()
	sub := &subscriber{userID: userID, ch: make(chan store.Snapshot, subscriberBuffer)}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = sub
	sub.ch <- s.snapshotLocked(userID)
	s.mu.Unlock()

	stop := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub.ch)
		}
	}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			stop()
		}()
	}

	return sub.ch, stop, nil
}

func (s *Store) snapshotLocked(userID string) store.Snapshot {
	docs := s.docsLocked(userID)
	txDocs := make([]store.TransactionDoc, 0, len(docs.transactions))
	for _, d := range docs.transactions {
		txDocs = append(txDocs, d)
	}
	budgetDocs := make([]store.BudgetDoc, 0, len(docs.budgets))
	for _, d := range docs.budgets {
		budgetDocs = append(budgetDocs, d)
	}
	return store.DecodeSnapshot(txDocs, budgetDocs, s.log)
}

func (s *Store) broadcastLocked(userID string) {
	snap := s.snapshotLocked(userID)
	for _, sub := range s.subscribers {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- snap:
		default:
			// Slow subscriber; it will catch up on the next change.
			s.log.Warn("MemoryStore.broadcast.subscriber buffer full, snapshot dropped")
		}
	}
}
