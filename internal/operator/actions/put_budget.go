package actions

import (
	"context"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// PutBudget writes (or wholesale-replaces) one budget document.
type PutBudget struct {
	UserID string
	Budget ledger.Budget
	IAction
}

func (a *PutBudget) Perform(ctx context.Context, docs store.DocumentStore) error {
	return docs.PutBudget(ctx, a.UserID, a.Budget)
}
