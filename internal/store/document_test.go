package store

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

func sampleTransaction() ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Amount:      decimal.RequireFromString("42.50"),
		Type:        ledger.TypeExpense,
		Description: "Achat de matériel",
		Beneficiary: "John Doe",
		Category:    "Shopping",
		Domain:      "Bureau",
		Date:        time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		BudgetID:    uuid.Must(uuid.NewV4()),
		OrderingKey: 1740000000000,
	}
}

func TestTransactionDoc_RoundTrip(t *testing.T) {
	tx := sampleTransaction()

	decoded, err := EncodeTransaction(tx).Decode()

	assert.NoError(t, err)
	assert.Equal(t, tx.ID, decoded.ID)
	assert.True(t, decoded.Amount.Equal(tx.Amount))
	assert.Equal(t, tx.Type, decoded.Type)
	assert.Equal(t, tx.BudgetID, decoded.BudgetID)
	assert.Equal(t, tx.OrderingKey, decoded.OrderingKey)
	assert.True(t, decoded.Date.Equal(tx.Date))
}

func TestTransactionDoc_UnbudgetedOmitsReference(t *testing.T) {
	tx := sampleTransaction()
	tx.BudgetID = uuid.Nil

	doc := EncodeTransaction(tx)
	assert.Empty(t, doc.BudgetID)

	decoded, err := doc.Decode()
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, decoded.BudgetID)
}

func TestTransactionDoc_DecodeRejectsBadShape(t *testing.T) {
	good := EncodeTransaction(sampleTransaction())

	bad := good
	bad.Amount = "not-a-number"
	_, err := bad.Decode()
	assert.Error(t, err)

	bad = good
	bad.ID = "1234"
	_, err = bad.Decode()
	assert.Error(t, err)

	bad = good
	bad.Type = "transfer"
	_, err = bad.Decode()
	assert.Error(t, err)

	bad = good
	bad.Date = "yesterday"
	_, err = bad.Decode()
	assert.Error(t, err)
}

func TestBudgetDoc_RoundTrip(t *testing.T) {
	budget := ledger.Budget{
		ID:     uuid.Must(uuid.NewV4()),
		Name:   "Courses",
		Amount: decimal.RequireFromString("500"),
	}

	decoded, err := EncodeBudget(budget).Decode()

	assert.NoError(t, err)
	assert.Equal(t, budget.ID, decoded.ID)
	assert.Equal(t, "Courses", decoded.Name)
	assert.True(t, decoded.Amount.Equal(budget.Amount))
}

func TestDecodeSnapshot_QuarantinesMalformed(t *testing.T) {
	logger := logrus.New()
	good := EncodeTransaction(sampleTransaction())
	bad := good
	bad.ID = "broken"

	snap := DecodeSnapshot([]TransactionDoc{good, bad}, []BudgetDoc{{ID: "also-broken"}}, logger)

	assert.Len(t, snap.Transactions, 1)
	assert.Empty(t, snap.Budgets)
	assert.Equal(t, 2, snap.Quarantined)
}
