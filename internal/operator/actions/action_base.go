package actions

import (
	"context"

	"github.com/carson-networks/wallet-ledger/internal/store"
)

type IAction interface {
	Perform(ctx context.Context, docs store.DocumentStore) error
}
