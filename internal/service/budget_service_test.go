package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

func TestBudgetService_AddWritesThrough(t *testing.T) {
	f := newServiceFixture(t)

	id, err := f.svc.Budgets.AddBudget(context.Background(), "Courses", decimal.RequireFromString("500"))
	require.NoError(t, err)

	waitForStore(t, f.docs, func(snap store.Snapshot) bool {
		return len(snap.Budgets) == 1 && snap.Budgets[0].ID == id
	})

	budgets := f.svc.Budgets.Budgets()
	require.Len(t, budgets, 1)
	assert.Equal(t, "Courses", budgets[0].Name)
}

func TestBudgetService_AddRejectsInvalidBudget(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Budgets.AddBudget(context.Background(), "x", decimal.RequireFromString("500"))

	var validationErr *ledger.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
	assert.Empty(t, f.svc.Budgets.Budgets())
}

func TestBudgetService_AddValidatesBeforeAssigningID(t *testing.T) {
	f := newServiceFixture(t)
	idCalls := 0
	f.svc.Budgets.newID = func() (uuid.UUID, error) {
		idCalls++
		return uuid.NewV4()
	}

	_, err := f.svc.Budgets.AddBudget(context.Background(), "x", decimal.RequireFromString("500"))

	var validationErr *ledger.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, idCalls)
}

func TestBudgetService_UpdateUnknownBudget(t *testing.T) {
	f := newServiceFixture(t)

	err := f.svc.Budgets.UpdateBudget(context.Background(), uuid.Must(uuid.NewV4()), "Courses", decimal.RequireFromString("500"))

	assert.ErrorIs(t, err, ledger.ErrBudgetNotFound)
}

func TestBudgetService_Update(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	id, err := f.svc.Budgets.AddBudget(ctx, "Courses", decimal.RequireFromString("500"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Budgets.UpdateBudget(ctx, id, "Courses Mars", decimal.RequireFromString("650")))

	budget, ok := f.svc.Budgets.Budget(id)
	require.True(t, ok)
	assert.Equal(t, "Courses Mars", budget.Name)
	assert.Equal(t, "650", budget.Amount.String())
}

func TestBudgetService_DeleteOrphansTransactions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	id, err := f.svc.Budgets.AddBudget(ctx, "Courses", decimal.RequireFromString("500"))
	require.NoError(t, err)

	draft := expenseDraft("80")
	draft.BudgetID = id
	txID, err := f.svc.Ledger.AddTransaction(ctx, draft)
	require.NoError(t, err)

	require.NoError(t, f.svc.Budgets.DeleteBudget(ctx, id))

	// The transaction survives and keeps its reference; it now counts as
	// unbudgeted in summaries.
	tx, ok := f.svc.State.Transaction(txID)
	require.True(t, ok)
	assert.Equal(t, id, tx.BudgetID)

	summaries, unbudgeted := f.svc.Budgets.Summaries()
	assert.Empty(t, summaries)
	assert.Equal(t, "80", unbudgeted.Spent.String())
	assert.Equal(t, 1, unbudgeted.TransactionCount)
}

func TestBudgetService_RequiresUser(t *testing.T) {
	f := newServiceFixture(t)
	anonymous := NewBudgetService("", f.svc.State, f.delegator, nil, testLogger())

	_, err := anonymous.AddBudget(context.Background(), "Courses", decimal.RequireFromString("500"))

	assert.ErrorIs(t, err, ledger.ErrNotAuthenticated)
}

func TestBudgetService_Summaries(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	id, err := f.svc.Budgets.AddBudget(ctx, "Courses", decimal.RequireFromString("500"))
	require.NoError(t, err)

	budgeted := expenseDraft("200")
	budgeted.BudgetID = id
	_, err = f.svc.Ledger.AddTransaction(ctx, budgeted)
	require.NoError(t, err)
	_, err = f.svc.Ledger.AddTransaction(ctx, expenseDraft("50"))
	require.NoError(t, err)
	_, err = f.svc.Ledger.AddTransaction(ctx, incomeDraft("1000"))
	require.NoError(t, err)

	summaries, unbudgeted := f.svc.Budgets.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "200", summaries[0].Spent.String())
	assert.Equal(t, "300", summaries[0].Remaining.String())
	assert.Equal(t, 1, summaries[0].TransactionCount)
	assert.Equal(t, "50", unbudgeted.Spent.String())
	assert.Equal(t, 1, unbudgeted.TransactionCount)
}

func TestBudgetService_FailedRemoteWriteRaisesUnsynced(t *testing.T) {
	f := newServiceFixture(t)
	f.docs.SetWriteError(assert.AnError)

	_, err := f.svc.Budgets.AddBudget(context.Background(), "Courses", decimal.RequireFromString("500"))
	require.NoError(t, err)

	require.Eventually(t, f.svc.State.Unsynced, 2*time.Second, 10*time.Millisecond)
}
