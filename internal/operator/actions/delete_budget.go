package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-ledger/internal/store"
)

// DeleteBudget removes one budget document. Transactions referencing it are
// left untouched; they surface as unbudgeted afterwards.
type DeleteBudget struct {
	UserID string
	ID     uuid.UUID
	IAction
}

func (a *DeleteBudget) Perform(ctx context.Context, docs store.DocumentStore) error {
	return docs.DeleteBudget(ctx, a.UserID, a.ID)
}
