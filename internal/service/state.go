package service

import (
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

const updateBuffer = 4

// Entry is a recomputed ledger entry plus its confirmation state. Optimistic
// entries were applied locally and are still awaiting the authoritative
// snapshot (or a queue replay) that confirms them.
type Entry struct {
	ledger.Entry
	Optimistic bool
}

// Update is pushed to container subscribers after every recompute.
type Update struct {
	Entries []Entry
	Budgets []ledger.Budget
}

// Container owns the in-memory replica of one user's ledger. Mutations apply
// here optimistically before the remote write completes; authoritative
// snapshots from the store subscription replace entries wholesale by
// identifier, never merging fields. Every change triggers a full balance
// recompute and a notification to subscribers.
type Container struct {
	mu           sync.RWMutex
	log          *logrus.Logger
	transactions map[uuid.UUID]ledger.Transaction
	budgets      map[uuid.UUID]ledger.Budget
	optimistic   map[uuid.UUID]bool
	deleted      map[uuid.UUID]bool
	entries      []Entry
	quarantined  int
	unsynced     bool
	subscribers  map[int]chan Update
	nextSub      int
}

func NewContainer(log *logrus.Logger) *Container {
	return &Container{
		log:          log,
		transactions: make(map[uuid.UUID]ledger.Transaction),
		budgets:      make(map[uuid.UUID]ledger.Budget),
		optimistic:   make(map[uuid.UUID]bool),
		deleted:      make(map[uuid.UUID]bool),
		subscribers:  make(map[int]chan Update),
	}
}

// ApplyAdd inserts a transaction optimistically.
func (c *Container) ApplyAdd(tx ledger.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transactions[tx.ID] = tx
	c.optimistic[tx.ID] = true
	delete(c.deleted, tx.ID)
	c.recomputeLocked()
}

// ApplyUpdate replaces the stored transaction wholesale. The caller has
// already carried over the original ordering key.
func (c *Container) ApplyUpdate(tx ledger.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transactions[tx.ID] = tx
	c.optimistic[tx.ID] = true
	delete(c.deleted, tx.ID)
	c.recomputeLocked()
}

// ApplyDelete removes the transaction if present. The identifier is
// tombstoned so a snapshot racing ahead of the remote delete cannot
// resurrect the entry.
func (c *Container) ApplyDelete(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.transactions, id)
	delete(c.optimistic, id)
	c.deleted[id] = true
	c.recomputeLocked()
}

// ApplyClear empties the transaction set, tombstoning every removed entry.
func (c *Container) ApplyClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.transactions {
		c.deleted[id] = true
	}
	c.transactions = make(map[uuid.UUID]ledger.Transaction)
	c.optimistic = make(map[uuid.UUID]bool)
	c.recomputeLocked()
}

// ApplyBudgetPut upserts a budget optimistically.
func (c *Container) ApplyBudgetPut(b ledger.Budget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.budgets[b.ID] = b
	c.recomputeLocked()
}

// ApplyBudgetDelete removes a budget. Referencing transactions are left
// alone; aggregation reports them as unbudgeted from now on.
func (c *Container) ApplyBudgetDelete(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.budgets, id)
	c.recomputeLocked()
}

// Reconcile replaces local state with an authoritative snapshot. Confirmed
// entries are rebuilt from the snapshot alone; an optimistic entry is
// confirmed (snapshot version wins wholesale) when its identifier appears,
// and retained as optimistic while it is still absent, which covers writes
// in flight and records waiting in the offline queue. Locally deleted
// identifiers the snapshot still carries are suppressed until the remote
// delete lands; the tombstone is dropped the first time a snapshot no
// longer contains the identifier.
func (c *Container) Reconcile(snap store.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	confirmed := make(map[uuid.UUID]ledger.Transaction, len(snap.Transactions))
	inSnapshot := make(map[uuid.UUID]bool, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		inSnapshot[tx.ID] = true
		if c.deleted[tx.ID] {
			continue
		}
		confirmed[tx.ID] = tx
	}
	for id := range c.deleted {
		if !inSnapshot[id] {
			delete(c.deleted, id)
		}
	}

	stillOptimistic := make(map[uuid.UUID]bool)
	for id := range c.optimistic {
		if _, ok := confirmed[id]; ok {
			continue // confirmed; authoritative version wins
		}
		if tx, ok := c.transactions[id]; ok {
			confirmed[id] = tx
			stillOptimistic[id] = true
		}
	}

	c.transactions = confirmed
	c.optimistic = stillOptimistic

	c.budgets = make(map[uuid.UUID]ledger.Budget, len(snap.Budgets))
	for _, b := range snap.Budgets {
		c.budgets[b.ID] = b
	}

	c.quarantined = snap.Quarantined
	c.recomputeLocked()
}

func (c *Container) recomputeLocked() {
	txs := make([]ledger.Transaction, 0, len(c.transactions))
	for _, tx := range c.transactions {
		txs = append(txs, tx)
	}

	recomputed := ledger.Recompute(txs)
	c.entries = make([]Entry, len(recomputed))
	for i, e := range recomputed {
		c.entries[i] = Entry{Entry: e, Optimistic: c.optimistic[e.ID]}
	}

	update := Update{Entries: c.entries, Budgets: c.budgetsLocked()}
	for _, ch := range c.subscribers {
		select {
		case ch <- update:
		default:
			c.log.Warn("Container.notify.subscriber buffer full, update dropped")
		}
	}
}

func (c *Container) budgetsLocked() []ledger.Budget {
	budgets := make([]ledger.Budget, 0, len(c.budgets))
	for _, b := range c.budgets {
		budgets = append(budgets, b)
	}
	return budgets
}

// Entries returns the recomputed ledger, newest first.
func (c *Container) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Transaction returns the stored transaction for id.
func (c *Container) Transaction(id uuid.UUID) (ledger.Transaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tx, ok := c.transactions[id]
	return tx, ok
}

// TransactionIDs returns the identifiers of every currently-known
// transaction, for the atomic clear.
func (c *Container) TransactionIDs() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(c.transactions))
	for id := range c.transactions {
		ids = append(ids, id)
	}
	return ids
}

// Budgets returns all known budgets.
func (c *Container) Budgets() []ledger.Budget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.budgetsLocked()
}

// Budget returns the stored budget for id.
func (c *Container) Budget(id uuid.UUID) (ledger.Budget, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.budgets[id]
	return b, ok
}

// LatestBalance is the current account balance.
func (c *Container) LatestBalance() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return decimal.Zero
	}
	return c.entries[0].Balance
}

// SetUnsynced flips the persistent unsynced-changes indicator. Raised on
// remote write failure and on failed queue replay; cleared after a
// successful drain.
func (c *Container) SetUnsynced(unsynced bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsynced = unsynced
}

func (c *Container) Unsynced() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unsynced
}

// Quarantined reports how many documents the last snapshot excluded.
func (c *Container) Quarantined() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quarantined
}

// Subscribe registers for recompute updates. The stop function releases the
// subscription; slow subscribers lose intermediate updates, never the data.
func (c *Container) Subscribe() (<-chan Update, func()) {
	c.mu.Lock()
	ch := make(chan Update, updateBuffer)
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = ch
	c.mu.Unlock()

	stop := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(ch)
		}
	}
	return ch, stop
}
