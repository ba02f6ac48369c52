package budget

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID     string `json:"id" doc:"Budget UUID"`
	Name   string `json:"name" doc:"Budget name"`
	Amount string `json:"amount" doc:"Allocated decimal amount"`
}

// BudgetBody is the caller-editable field set, shared by create and update
// requests.
type BudgetBody struct {
	Name   string `json:"name" required:"true" doc:"Budget name, at least 2 characters"`
	Amount string `json:"amount" required:"true" doc:"Allocated decimal amount, must be positive"`
}

func toAPIBudget(b ledger.Budget) Budget {
	return Budget{
		ID:     b.ID.String(),
		Name:   b.Name,
		Amount: b.Amount.String(),
	}
}

// mapServiceError translates domain errors into HTTP responses.
func mapServiceError(err error, fallback string) error {
	var validationErr *ledger.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return huma.NewError(http.StatusUnprocessableEntity, validationErr.Error())
	case errors.Is(err, ledger.ErrNotAuthenticated):
		return huma.NewError(http.StatusUnauthorized, "not signed in")
	case errors.Is(err, ledger.ErrBudgetNotFound):
		return huma.NewError(http.StatusNotFound, "budget not found")
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}
