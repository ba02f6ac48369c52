package store

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// DecodeSnapshot parses a raw document set into a Snapshot. Malformed
// documents are quarantined: logged, counted, and excluded, so one bad
// document never poisons the ledger view.
func DecodeSnapshot(txDocs []TransactionDoc, budgetDocs []BudgetDoc, log *logrus.Logger) Snapshot {
	snap := Snapshot{
		Transactions: make([]ledger.Transaction, 0, len(txDocs)),
		Budgets:      make([]ledger.Budget, 0, len(budgetDocs)),
	}

	for _, doc := range txDocs {
		tx, err := doc.Decode()
		if err != nil {
			snap.Quarantined++
			log.WithError(err).Warn("Store.DecodeSnapshot.quarantined transaction")
			if log.IsLevelEnabled(logrus.DebugLevel) {
				log.Debug(spew.Sdump(doc))
			}
			continue
		}
		snap.Transactions = append(snap.Transactions, tx)
	}

	for _, doc := range budgetDocs {
		budget, err := doc.Decode()
		if err != nil {
			snap.Quarantined++
			log.WithError(err).Warn("Store.DecodeSnapshot.quarantined budget")
			if log.IsLevelEnabled(logrus.DebugLevel) {
				log.Debug(spew.Sdump(doc))
			}
			continue
		}
		snap.Budgets = append(snap.Budgets, budget)
	}

	return snap
}
