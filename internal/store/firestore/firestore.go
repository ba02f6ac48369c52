// Package firestore implements the DocumentStore contract on Cloud
// Firestore. Each user owns two subcollections under users/{id}:
// transactions and budgets. Query snapshot listeners provide the live
// full-set subscription; batched writes provide the atomic clear.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
)

// Store is a Firestore-backed DocumentStore.
type Store struct {
	client *firestore.Client
	log    *logrus.Logger
}

var _ store.DocumentStore = (*Store)(nil)

// New connects to the given Firestore project. credentialsFile may be empty,
// in which case application-default credentials apply.
func New(ctx context.Context, projectID, credentialsFile string, log *logrus.Logger) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: client, log: log}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) transactions(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(transactionsCollection)
}

func (s *Store) budgets(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(budgetsCollection)
}

func (s *Store) PutTransaction(ctx context.Context, userID string, tx ledger.Transaction) error {
	doc := store.EncodeTransaction(tx)
	_, err := s.transactions(userID).Doc(doc.ID).Set(ctx, doc)
	return err
}

func (s *Store) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	// Firestore deletes of absent documents succeed, which gives us the
	// idempotent-delete contract for free.
	_, err := s.transactions(userID).Doc(id.String()).Delete(ctx)
	return err
}

func (s *Store) DeleteTransactions(ctx context.Context, userID string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	batch := s.client.Batch()
	col := s.transactions(userID)
	for _, id := range ids {
		batch.Delete(col.Doc(id.String()))
	}
	_, err := batch.Commit(ctx)
	return err
}

func (s *Store) PutBudget(ctx context.Context, userID string, b ledger.Budget) error {
	doc := store.EncodeBudget(b)
	_, err := s.budgets(userID).Doc(doc.ID).Set(ctx, doc)
	return err
}

func (s *Store) DeleteBudget(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := s.budgets(userID).Doc(id.String()).Delete(ctx)
	return err
}

// Subscribe opens snapshot listeners on both collections and merges them
// into one Snapshot stream. Every change on either collection pushes a fresh
// full snapshot; stale snapshots are replaced when the consumer lags.
func (s *Store) Subscribe(ctx context.Context, userID string) (<-chan store.Snapshot, func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	out := make(chan store.Snapshot, 1)

	type partial struct {
		txDocs     []store.TransactionDoc
		budgetDocs []store.BudgetDoc
		isBudgets  bool
	}
	updates := make(chan partial)

	go func() {
		it := s.transactions(userID).Snapshots(watchCtx)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if watchCtx.Err() == nil {
					s.log.WithError(err).Error("FirestoreStore.Subscribe.transactions listener stopped")
				}
				return
			}
			docs, err := collectTransactionDocs(qs)
			if err != nil {
				s.log.WithError(err).Error("FirestoreStore.Subscribe.read transactions")
				continue
			}
			select {
			case updates <- partial{txDocs: docs}:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	go func() {
		it := s.budgets(userID).Snapshots(watchCtx)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if watchCtx.Err() == nil {
					s.log.WithError(err).Error("FirestoreStore.Subscribe.budgets listener stopped")
				}
				return
			}
			docs, err := collectBudgetDocs(qs)
			if err != nil {
				s.log.WithError(err).Error("FirestoreStore.Subscribe.read budgets")
				continue
			}
			select {
			case updates <- partial{budgetDocs: docs, isBudgets: true}:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(out)
		var txDocs []store.TransactionDoc
		var budgetDocs []store.BudgetDoc
		for {
			select {
			case <-watchCtx.Done():
				return
			case p := <-updates:
				if p.isBudgets {
					budgetDocs = p.budgetDocs
				} else {
					txDocs = p.txDocs
				}
				snap := store.DecodeSnapshot(txDocs, budgetDocs, s.log)
				// Replace a stale undelivered snapshot rather than block.
				select {
				case out <- snap:
				default:
					select {
					case <-out:
					default:
					}
					out <- snap
				}
			}
		}
	}()

	return out, cancel, nil
}

func collectTransactionDocs(qs *firestore.QuerySnapshot) ([]store.TransactionDoc, error) {
	var docs []store.TransactionDoc
	for {
		snap, err := qs.Documents.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		var doc store.TransactionDoc
		if err := snap.DataTo(&doc); err != nil {
			// Shape so broken it cannot even map to the wire struct; give
			// it an undecodable placeholder so DecodeSnapshot quarantines it.
			docs = append(docs, store.TransactionDoc{ID: snap.Ref.ID})
			continue
		}
		docs = append(docs, doc)
	}
}

func collectBudgetDocs(qs *firestore.QuerySnapshot) ([]store.BudgetDoc, error) {
	var docs []store.BudgetDoc
	for {
		snap, err := qs.Documents.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		var doc store.BudgetDoc
		if err := snap.DataTo(&doc); err != nil {
			docs = append(docs, store.BudgetDoc{ID: snap.Ref.ID})
			continue
		}
		docs = append(docs, doc)
	}
}
