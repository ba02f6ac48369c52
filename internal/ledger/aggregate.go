package ledger

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// BudgetSummary is a per-budget view derived from the current ledger
// snapshot: spent is the sum of expense amounts referencing the budget,
// remaining is the budget ceiling minus spent.
type BudgetSummary struct {
	Budget           Budget
	Spent            decimal.Decimal
	Remaining        decimal.Decimal
	TransactionCount int
}

// UnbudgetedSummary covers the pseudo-group of expenses that reference no
// budget, or a budget that no longer exists. Remaining is meaningless here
// and therefore absent.
type UnbudgetedSummary struct {
	Spent            decimal.Decimal
	TransactionCount int
}

// Aggregate derives spent/remaining figures for every budget plus the
// unbudgeted group. Pure derivation, recomputed from the snapshot on every
// read; income transactions never count against a budget.
func Aggregate(budgets []Budget, txs []Transaction) ([]BudgetSummary, UnbudgetedSummary) {
	known := make(map[uuid.UUID]int, len(budgets))
	summaries := make([]BudgetSummary, len(budgets))
	for i, b := range budgets {
		known[b.ID] = i
		summaries[i] = BudgetSummary{Budget: b, Spent: decimal.Zero}
	}

	unbudgeted := UnbudgetedSummary{Spent: decimal.Zero}
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		// Dangling references count as unbudgeted.
		if i, ok := known[tx.BudgetID]; ok && tx.BudgetID != uuid.Nil {
			summaries[i].Spent = summaries[i].Spent.Add(tx.Amount)
			summaries[i].TransactionCount++
			continue
		}
		unbudgeted.Spent = unbudgeted.Spent.Add(tx.Amount)
		unbudgeted.TransactionCount++
	}

	for i := range summaries {
		summaries[i].Remaining = summaries[i].Budget.Amount.Sub(summaries[i].Spent)
	}
	return summaries, unbudgeted
}
