package operator

import (
	"context"
	"sync"

	"github.com/carson-networks/wallet-ledger/internal/operator/actions"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// OperatorDelegator manages the queue, starts/stops Operators (workers), and
// enqueues items. Remote writes for one user must not reorder, so the
// default of a single worker keeps the pipeline serialized; queue replay
// goes through the same pipeline and therefore cannot interleave with live
// writes.
type OperatorDelegator struct {
	docs       store.DocumentStore
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewOperatorDelegator(docs store.DocumentStore, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		docs:       docs,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.docs, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process performs the action and waits for the result. Sync replay uses it
// so a failed replay stops the batch.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProcessAsync enqueues the action and returns immediately; this is the
// non-blocking write path behind every mutation. Once issued the write is
// not cancellable, so the caller's context is detached. onErr, if set, is
// invoked from the worker when the write ultimately fails.
func (d *OperatorDelegator) ProcessAsync(ctx context.Context, action actions.IAction, onErr func(error)) {
	d.queue <- ActionItem{
		ctx:    context.WithoutCancel(ctx),
		action: action,
		onErr:  onErr,
	}
}
