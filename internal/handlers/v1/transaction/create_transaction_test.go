package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

type mockTransactionAdder struct {
	mock.Mock
}

func (m *mockTransactionAdder) AddTransaction(ctx context.Context, draft ledger.TransactionDraft) (uuid.UUID, error) {
	args := m.Called(ctx, draft)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc transactionAdder) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

func validCreateBody() map[string]any {
	return map[string]any{
		"amount":      "42.50",
		"type":        "expense",
		"beneficiary": "Boulangerie",
		"category":    "Nourriture",
		"domain":      "Bureau",
		"date":        "2026-03-01T10:00:00Z",
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	svc := &mockTransactionAdder{}
	id := uuid.Must(uuid.NewV4())
	svc.On("AddTransaction", mock.Anything, mock.MatchedBy(func(draft ledger.TransactionDraft) bool {
		return draft.Amount.String() == "42.5" &&
			draft.Type == ledger.TypeExpense &&
			draft.Beneficiary == "Boulangerie"
	})).Return(id, nil)
	api := newCreateTestAPI(t, svc)

	resp := api.Post("/v1/transaction", validCreateBody())

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponseBody
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	svc := &mockTransactionAdder{}
	api := newCreateTestAPI(t, svc)

	body := validCreateBody()
	body["amount"] = "not-a-number"
	resp := api.Post("/v1/transaction", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "AddTransaction", mock.Anything, mock.Anything)
}

func TestCreateTransaction_InvalidDate(t *testing.T) {
	svc := &mockTransactionAdder{}
	api := newCreateTestAPI(t, svc)

	body := validCreateBody()
	body["date"] = "yesterday"
	resp := api.Post("/v1/transaction", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateTransaction_ValidationFailure(t *testing.T) {
	svc := &mockTransactionAdder{}
	svc.On("AddTransaction", mock.Anything, mock.Anything).
		Return(uuid.Nil, &ledger.ValidationError{Field: "beneficiary", Reason: "must be at least 2 characters"})
	api := newCreateTestAPI(t, svc)

	body := validCreateBody()
	body["beneficiary"] = "x"
	resp := api.Post("/v1/transaction", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCreateTransaction_NotAuthenticated(t *testing.T) {
	svc := &mockTransactionAdder{}
	svc.On("AddTransaction", mock.Anything, mock.Anything).
		Return(uuid.Nil, ledger.ErrNotAuthenticated)
	api := newCreateTestAPI(t, svc)

	resp := api.Post("/v1/transaction", validCreateBody())

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
