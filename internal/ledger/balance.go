package ledger

import (
	"bytes"
	"sort"

	"github.com/shopspring/decimal"
)

// Recompute derives the running balance for every transaction in the set.
//
// The input is the complete unordered transaction set for one user, exactly
// as delivered by the store subscription (optimistic local entries included).
// The whole ledger is replayed from scratch on every call: sort ascending by
// ordering key, scan once accumulating the signed amounts, stamp each entry
// with the total after applying it. The result is returned newest first for
// display, so the first entry carries the current account balance.
//
// Balance is a pure function of the (id, amount, type, orderingKey) tuples
// present. Recompute never fails; an empty set yields an empty slice.
// Ordering-key collisions (possible across devices) are broken by ID so the
// result stays deterministic.
func Recompute(txs []Transaction) []Entry {
	ordered := make([]Transaction, len(txs))
	copy(ordered, txs)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].OrderingKey != ordered[j].OrderingKey {
			return ordered[i].OrderingKey < ordered[j].OrderingKey
		}
		return bytes.Compare(ordered[i].ID.Bytes(), ordered[j].ID.Bytes()) < 0
	})

	entries := make([]Entry, len(ordered))
	running := decimal.Zero
	for i, tx := range ordered {
		if tx.Type == TypeIncome {
			running = running.Add(tx.Amount)
		} else {
			running = running.Sub(tx.Amount)
		}
		entries[i] = Entry{Transaction: tx, Balance: running}
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// LatestBalance is the current account balance: the balance of the entry
// with the maximum ordering key. Zero for an empty ledger.
func LatestBalance(entries []Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	// Recompute returns newest first.
	return entries[0].Balance
}

// Totals sums income and expense amounts over the ledger.
func Totals(entries []Entry) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Type == TypeIncome {
			income = income.Add(e.Amount)
		} else {
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense
}
