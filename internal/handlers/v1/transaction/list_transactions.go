package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/wallet-ledger/internal/logging"
	"github.com/carson-networks/wallet-ledger/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct{}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Every ledger entry, newest first, with running balances"`
	Balance      string        `json:"balance" doc:"Current account balance"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for reading the recomputed ledger.
type transactionLister interface {
	Entries() []service.Entry
	LatestBalance() decimal.Decimal
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	LedgerService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{LedgerService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns the full ledger, newest first, each entry carrying the running balance after it was applied.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, _ *ListTransactionsInput) (*ListTransactionsOutput, error) {
	entries := h.LedgerService.Entries()

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionCount", len(entries))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(entries)),
		Balance:      h.LedgerService.LatestBalance().String(),
	}
	for i, e := range entries {
		resp.Transactions[i] = toAPITransaction(e)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
