package store

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// TransactionDoc is the wire shape of a transaction document. Amounts travel
// as strings so the store never sees floats; the index field is the ordering
// key. The same shape is serialized to JSON for offline queue payloads.
type TransactionDoc struct {
	ID          string `firestore:"id" json:"id"`
	Amount      string `firestore:"amount" json:"amount"`
	Type        string `firestore:"type" json:"type"`
	Description string `firestore:"description" json:"description"`
	Beneficiary string `firestore:"beneficiary" json:"beneficiary"`
	Category    string `firestore:"category" json:"category"`
	Domain      string `firestore:"domain" json:"domain"`
	Date        string `firestore:"date" json:"date"`
	BudgetID    string `firestore:"budgetId,omitempty" json:"budgetId,omitempty"`
	Index       int64  `firestore:"index" json:"index"`
}

// BudgetDoc is the wire shape of a budget document.
type BudgetDoc struct {
	ID     string `firestore:"id" json:"id"`
	Name   string `firestore:"name" json:"name"`
	Amount string `firestore:"amount" json:"amount"`
}

// EncodeTransaction converts a domain transaction to its wire shape.
func EncodeTransaction(tx ledger.Transaction) TransactionDoc {
	doc := TransactionDoc{
		ID:          tx.ID.String(),
		Amount:      tx.Amount.String(),
		Type:        string(tx.Type),
		Description: tx.Description,
		Beneficiary: tx.Beneficiary,
		Category:    tx.Category,
		Domain:      tx.Domain,
		Date:        tx.Date.UTC().Format(time.RFC3339Nano),
		Index:       tx.OrderingKey,
	}
	if tx.BudgetID != uuid.Nil {
		doc.BudgetID = tx.BudgetID.String()
	}
	return doc
}

// Decode parses the wire document into a domain transaction. Any shape
// violation fails the whole document; callers quarantine it.
func (d TransactionDoc) Decode() (ledger.Transaction, error) {
	id, err := uuid.FromString(d.ID)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction doc id %q: %w", d.ID, err)
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction doc %s amount: %w", d.ID, err)
	}
	txType := ledger.TransactionType(d.Type)
	if !txType.Valid() {
		return ledger.Transaction{}, fmt.Errorf("transaction doc %s type %q", d.ID, d.Type)
	}
	date, err := time.Parse(time.RFC3339Nano, d.Date)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction doc %s date: %w", d.ID, err)
	}

	budgetID := uuid.Nil
	if d.BudgetID != "" {
		budgetID, err = uuid.FromString(d.BudgetID)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("transaction doc %s budgetId: %w", d.ID, err)
		}
	}

	return ledger.Transaction{
		ID:          id,
		Amount:      amount,
		Type:        txType,
		Description: d.Description,
		Beneficiary: d.Beneficiary,
		Category:    d.Category,
		Domain:      d.Domain,
		Date:        date,
		BudgetID:    budgetID,
		OrderingKey: d.Index,
	}, nil
}

// EncodeBudget converts a domain budget to its wire shape.
func EncodeBudget(b ledger.Budget) BudgetDoc {
	return BudgetDoc{
		ID:     b.ID.String(),
		Name:   b.Name,
		Amount: b.Amount.String(),
	}
}

// Decode parses the wire document into a domain budget.
func (d BudgetDoc) Decode() (ledger.Budget, error) {
	id, err := uuid.FromString(d.ID)
	if err != nil {
		return ledger.Budget{}, fmt.Errorf("budget doc id %q: %w", d.ID, err)
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return ledger.Budget{}, fmt.Errorf("budget doc %s amount: %w", d.ID, err)
	}
	return ledger.Budget{ID: id, Name: d.Name, Amount: amount}, nil
}
