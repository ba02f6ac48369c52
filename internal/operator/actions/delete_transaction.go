package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-ledger/internal/store"
)

// DeleteTransaction removes one transaction document. Deleting an absent
// document is a no-op.
type DeleteTransaction struct {
	UserID string
	ID     uuid.UUID
	IAction
}

func (a *DeleteTransaction) Perform(ctx context.Context, docs store.DocumentStore) error {
	return docs.DeleteTransaction(ctx, a.UserID, a.ID)
}
