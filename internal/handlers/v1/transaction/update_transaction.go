package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// UpdateTransactionInput is the Huma input for editing a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body TransactionBody
}

// UpdateTransactionOutput is the Huma output for editing a transaction.
type UpdateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// transactionUpdater is the interface for editing transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, draft ledger.TransactionDraft) error
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	LedgerService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{LedgerService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces every editable field of the transaction. Its position in the ledger is preserved.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	draft, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	if err := h.LedgerService.UpdateTransaction(ctx, id, draft); err != nil {
		return nil, mapServiceError(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Status: http.StatusOK}, nil
}
