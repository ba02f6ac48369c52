package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
	"github.com/carson-networks/wallet-ledger/internal/service"
)

// Transaction is the API response model for a ledger entry.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Type        string `json:"type" doc:"Transaction type: income or expense"`
	Description string `json:"description,omitempty" doc:"Free-form note"`
	Beneficiary string `json:"beneficiary,omitempty" doc:"Payee, expenses only"`
	Category    string `json:"category,omitempty" doc:"Expense category"`
	Domain      string `json:"domain,omitempty" doc:"Expense domain"`
	Date        string `json:"date" doc:"RFC3339 transaction date"`
	BudgetID    string `json:"budgetID,omitempty" doc:"Budget UUID the transaction counts against"`
	Balance     string `json:"balance" doc:"Running account balance after this transaction"`
	Optimistic  bool   `json:"optimistic" doc:"True while the write is not yet confirmed remotely"`
}

// TransactionBody is the caller-editable field set, shared by create and
// update requests.
type TransactionBody struct {
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Type        string `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Description string `json:"description,omitempty" doc:"Free-form note"`
	Beneficiary string `json:"beneficiary,omitempty" doc:"Payee, required for expenses"`
	Category    string `json:"category,omitempty" doc:"Expense category, required for expenses"`
	Domain      string `json:"domain,omitempty" doc:"Expense domain, required for expenses"`
	Date        string `json:"date" required:"true" doc:"RFC3339 transaction date"`
	BudgetID    string `json:"budgetID,omitempty" doc:"Optional budget UUID"`
}

// parseTransactionBody converts the wire body into a domain draft. Domain
// validation (positivity, expense rules) happens in the service; only
// syntactic parsing fails here.
func parseTransactionBody(body TransactionBody) (ledger.TransactionDraft, error) {
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return ledger.TransactionDraft{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	date, err := time.Parse(time.RFC3339, body.Date)
	if err != nil {
		return ledger.TransactionDraft{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	budgetID := uuid.Nil
	if body.BudgetID != "" {
		budgetID, err = uuid.FromString(body.BudgetID)
		if err != nil {
			return ledger.TransactionDraft{}, huma.NewError(http.StatusBadRequest, "invalid budgetID", err)
		}
	}

	return ledger.TransactionDraft{
		Amount:      amount,
		Type:        ledger.TransactionType(body.Type),
		Description: body.Description,
		Beneficiary: body.Beneficiary,
		Category:    body.Category,
		Domain:      body.Domain,
		Date:        date,
		BudgetID:    budgetID,
	}, nil
}

func toAPITransaction(e service.Entry) Transaction {
	tx := Transaction{
		ID:          e.ID.String(),
		Amount:      e.Amount.String(),
		Type:        string(e.Type),
		Description: e.Description,
		Beneficiary: e.Beneficiary,
		Category:    e.Category,
		Domain:      e.Domain,
		Date:        e.Date.Format(time.RFC3339),
		Balance:     e.Balance.String(),
		Optimistic:  e.Optimistic,
	}
	if e.BudgetID != uuid.Nil {
		tx.BudgetID = e.BudgetID.String()
	}
	return tx
}

// mapServiceError translates domain errors into HTTP responses.
func mapServiceError(err error, fallback string) error {
	var validationErr *ledger.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return huma.NewError(http.StatusUnprocessableEntity, validationErr.Error())
	case errors.Is(err, ledger.ErrNotAuthenticated):
		return huma.NewError(http.StatusUnauthorized, "not signed in")
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return huma.NewError(http.StatusNotFound, "transaction not found")
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}
