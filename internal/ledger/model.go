package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one ledger entry. The ordering key is assigned once at
// creation and never changes afterwards; edits replace every other field
// wholesale but keep the key, so the balance-computation order is stable.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Beneficiary string
	Category    string
	Domain      string
	Date        time.Time
	BudgetID    uuid.UUID // uuid.Nil means unbudgeted
	OrderingKey int64
}

// TransactionDraft carries every caller-supplied transaction field.
// Identity, ordering key, and the derived balance are assigned by the
// service, never by the caller.
type TransactionDraft struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Beneficiary string
	Category    string
	Domain      string
	Date        time.Time
	BudgetID    uuid.UUID
}

// Entry is a transaction annotated with its running balance, the cumulative
// signed sum over every entry up to and including this one in ordering-key
// order. Balance is derived, never stored.
type Entry struct {
	Transaction
	Balance decimal.Decimal
}

// Budget is an allocation ceiling. Transactions reference at most one budget;
// deleting a budget orphans its transactions rather than cascading.
type Budget struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
}
