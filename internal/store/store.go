// Package store defines the contract with the remote document store that
// holds the per-user transactions and budgets collections, plus the typed
// wire documents exchanged with it.
//
// Writes are fire-and-forget from the caller's perspective; reads arrive as
// a live snapshot stream that always carries the current full document set,
// never incremental deltas. Documents are parsed into domain types at this
// boundary and malformed ones are quarantined instead of trusted.
package store

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// Snapshot is the full per-user document set, delivered on every change.
type Snapshot struct {
	Transactions []ledger.Transaction
	Budgets      []ledger.Budget
	// Quarantined counts documents that failed the boundary parse and were
	// excluded from the snapshot.
	Quarantined int
}

// DocumentStore is the narrow contract this application has with the remote
// document database.
type DocumentStore interface {
	// PutTransaction creates or wholesale-replaces the document keyed by the
	// transaction's ID. Replaying the same put is idempotent.
	PutTransaction(ctx context.Context, userID string, tx ledger.Transaction) error

	// DeleteTransaction removes the document. Deleting an absent document
	// succeeds as a no-op.
	DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error

	// DeleteTransactions removes every listed document in one atomic batch.
	// Identifiers already absent are no-ops within the batch.
	DeleteTransactions(ctx context.Context, userID string, ids []uuid.UUID) error

	PutBudget(ctx context.Context, userID string, b ledger.Budget) error
	DeleteBudget(ctx context.Context, userID string, id uuid.UUID) error

	// Subscribe opens a live snapshot stream for the user. An initial
	// snapshot is delivered promptly, then a new one on every change. The
	// returned stop function releases the subscription.
	Subscribe(ctx context.Context, userID string) (<-chan Snapshot, func(), error)
}
