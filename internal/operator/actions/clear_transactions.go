package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-ledger/internal/store"
)

// ClearTransactions deletes the listed transactions in one atomic batch.
// IDs already absent remotely are no-ops within the batch, so a stale local
// snapshot cannot fail the clear.
type ClearTransactions struct {
	UserID string
	IDs    []uuid.UUID
	IAction
}

func (a *ClearTransactions) Perform(ctx context.Context, docs store.DocumentStore) error {
	return docs.DeleteTransactions(ctx, a.UserID, a.IDs)
}
