package actions

import (
	"context"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// PutTransaction writes (or wholesale-replaces) one transaction document.
// Serves both creates and edits; replaying it is idempotent because the
// document is keyed by the transaction ID.
type PutTransaction struct {
	UserID      string
	Transaction ledger.Transaction
	IAction
}

func (a *PutTransaction) Perform(ctx context.Context, docs store.DocumentStore) error {
	return docs.PutTransaction(ctx, a.UserID, a.Transaction)
}
