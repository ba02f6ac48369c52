package service

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

func newTestContainer() *Container {
	return NewContainer(testLogger())
}

func containerTx(amount string, txType ledger.TransactionType, key int64) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		Beneficiary: "Fournisseur",
		Category:    "Autre",
		Domain:      "Autre",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		OrderingKey: key,
	}
}

func TestContainer_OptimisticEntriesAreFlagged(t *testing.T) {
	c := newTestContainer()

	c.ApplyAdd(containerTx("100", ledger.TypeIncome, 1))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Optimistic)
	assert.Equal(t, "100", c.LatestBalance().String())
}

func TestContainer_ReconcileConfirmsMatchingEntries(t *testing.T) {
	c := newTestContainer()
	tx := containerTx("100", ledger.TypeIncome, 1)
	c.ApplyAdd(tx)

	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{tx}})

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Optimistic)
}

func TestContainer_ReconcileRetainsOptimisticAbsentFromSnapshot(t *testing.T) {
	c := newTestContainer()
	confirmed := containerTx("100", ledger.TypeIncome, 1)
	inFlight := containerTx("40", ledger.TypeExpense, 2)
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{confirmed}})
	c.ApplyAdd(inFlight)

	// Snapshot raced ahead of the in-flight write: it knows the confirmed
	// entry only. The optimistic one must survive the merge.
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{confirmed}})

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "60", c.LatestBalance().String())
	assert.True(t, entries[0].Optimistic)
	assert.False(t, entries[1].Optimistic)
}

func TestContainer_ReconcileSnapshotWinsForKnownIdentifiers(t *testing.T) {
	c := newTestContainer()
	tx := containerTx("100", ledger.TypeIncome, 1)
	c.ApplyAdd(tx)

	remote := tx
	remote.Amount = decimal.RequireFromString("250")
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{remote}})

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "250", entries[0].Amount.String())
	assert.False(t, entries[0].Optimistic)
}

func TestContainer_ReconcileDropsLocallyUnknownDeletions(t *testing.T) {
	c := newTestContainer()
	keep := containerTx("100", ledger.TypeIncome, 1)
	gone := containerTx("30", ledger.TypeExpense, 2)
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep, gone}})

	// Another device deleted one entry; the snapshot is authoritative.
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep}})

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)
}

func TestContainer_ReconcileDoesNotResurrectDeletedEntries(t *testing.T) {
	c := newTestContainer()
	keep := containerTx("100", ledger.TypeIncome, 1)
	removed := containerTx("30", ledger.TypeExpense, 2)
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep, removed}})

	c.ApplyDelete(removed.ID)

	// The remote delete has not landed yet, so the snapshot still carries
	// the entry. It must stay gone locally.
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep, removed}})
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)
	assert.Equal(t, "100", c.LatestBalance().String())

	// Once the snapshot converges the tombstone is spent; a later re-add of
	// the same identifier from another device is accepted again.
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep}})
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{keep, removed}})
	assert.Len(t, c.Entries(), 2)
}

func TestContainer_ClearTombstonesSurviveReconcile(t *testing.T) {
	c := newTestContainer()
	first := containerTx("100", ledger.TypeIncome, 1)
	second := containerTx("30", ledger.TypeExpense, 2)
	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{first, second}})

	c.ApplyClear()

	c.Reconcile(store.Snapshot{Transactions: []ledger.Transaction{first, second}})
	assert.Empty(t, c.Entries())
	assert.True(t, c.LatestBalance().IsZero())
}

func TestContainer_ReconcileReplacesBudgetsWholesale(t *testing.T) {
	c := newTestContainer()
	c.ApplyBudgetPut(ledger.Budget{ID: uuid.Must(uuid.NewV4()), Name: "Local", Amount: decimal.RequireFromString("100")})

	remote := ledger.Budget{ID: uuid.Must(uuid.NewV4()), Name: "Remote", Amount: decimal.RequireFromString("500")}
	c.Reconcile(store.Snapshot{Budgets: []ledger.Budget{remote}})

	budgets := c.Budgets()
	require.Len(t, budgets, 1)
	assert.Equal(t, "Remote", budgets[0].Name)
}

func TestContainer_ReconcileRecordsQuarantineCount(t *testing.T) {
	c := newTestContainer()

	c.Reconcile(store.Snapshot{Quarantined: 3})

	assert.Equal(t, 3, c.Quarantined())
}

func TestContainer_SubscribeDeliversOnChange(t *testing.T) {
	c := newTestContainer()
	updates, stop := c.Subscribe()
	defer stop()

	c.ApplyAdd(containerTx("100", ledger.TypeIncome, 1))

	select {
	case update := <-updates:
		require.Len(t, update.Entries, 1)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestContainer_ApplyClearEmptiesLedger(t *testing.T) {
	c := newTestContainer()
	c.ApplyAdd(containerTx("100", ledger.TypeIncome, 1))
	c.ApplyAdd(containerTx("30", ledger.TypeExpense, 2))

	c.ApplyClear()

	assert.Empty(t, c.Entries())
	assert.True(t, c.LatestBalance().IsZero())
}
