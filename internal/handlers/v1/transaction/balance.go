package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// BalanceResponseBody is the response body for the balance endpoint.
type BalanceResponseBody struct {
	Balance string `json:"balance" doc:"Current account balance"`
	Income  string `json:"income" doc:"Sum of all income"`
	Expense string `json:"expense" doc:"Sum of all expenses"`
}

// BalanceOutput is the Huma output for the balance endpoint.
type BalanceOutput struct {
	Body BalanceResponseBody
}

// balanceReader is the interface for reading ledger aggregates.
type balanceReader interface {
	transactionLister
	Totals() (income, expense decimal.Decimal)
}

// BalanceHandler handles GET /v1/balance.
type BalanceHandler struct {
	LedgerService balanceReader
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(svc balanceReader) *BalanceHandler {
	return &BalanceHandler{LedgerService: svc}
}

// Register registers the balance endpoint with the Huma API.
func (h *BalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/v1/balance",
		Summary:     "Get balance",
		Description: "Returns the current account balance with income and expense totals.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *BalanceHandler) handle(_ context.Context, _ *struct{}) (*BalanceOutput, error) {
	income, expense := h.LedgerService.Totals()
	return &BalanceOutput{
		Body: BalanceResponseBody{
			Balance: h.LedgerService.LatestBalance().String(),
			Income:  income.String(),
			Expense: expense.String(),
		},
	}, nil
}
