package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ClearTransactionsInput is the Huma input for clearing the ledger.
type ClearTransactionsInput struct{}

// ClearTransactionsOutput is the Huma output for clearing the ledger.
type ClearTransactionsOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// transactionClearer is the interface for clearing the ledger.
type transactionClearer interface {
	ClearTransactions(ctx context.Context) error
}

// ClearTransactionsHandler handles POST /v1/transaction/clear.
type ClearTransactionsHandler struct {
	LedgerService transactionClearer
}

// NewClearTransactionsHandler creates a new ClearTransactionsHandler.
func NewClearTransactionsHandler(svc transactionClearer) *ClearTransactionsHandler {
	return &ClearTransactionsHandler{LedgerService: svc}
}

// Register registers the clear transactions endpoint with the Huma API.
func (h *ClearTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/clear",
		Summary:     "Clear transactions",
		Description: "Deletes every transaction in one atomic batch and resets the balance to zero.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ClearTransactionsHandler) handle(ctx context.Context, _ *ClearTransactionsInput) (*ClearTransactionsOutput, error) {
	if err := h.LedgerService.ClearTransactions(ctx); err != nil {
		return nil, mapServiceError(err, "failed to clear transactions")
	}

	return &ClearTransactionsOutput{Status: http.StatusOK}, nil
}
