package operator

import (
	"context"

	"github.com/carson-networks/wallet-ledger/internal/operator/actions"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	docs  store.DocumentStore
	queue chan ActionItem
}

func NewOperator(docs store.DocumentStore, queue chan ActionItem) *Operator {
	return &Operator{
		docs:  docs,
		queue: queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	err := item.action.Perform(item.ctx, o.docs)

	if item.response != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}
	if err != nil && item.onErr != nil {
		item.onErr(err)
	}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
	onErr    func(error)
}

type ActionItemResponse struct {
	err error
}
