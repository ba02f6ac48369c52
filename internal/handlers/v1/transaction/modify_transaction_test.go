package transaction

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

type mockTransactionModifier struct {
	mock.Mock
}

func (m *mockTransactionModifier) UpdateTransaction(ctx context.Context, id uuid.UUID, draft ledger.TransactionDraft) error {
	args := m.Called(ctx, id, draft)
	return args.Error(0)
}

func (m *mockTransactionModifier) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTransactionModifier) ClearTransactions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newModifyTestAPI(t *testing.T, svc *mockTransactionModifier) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewUpdateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	NewClearTransactionsHandler(svc).Register(api)
	return api
}

func TestUpdateTransaction_Success(t *testing.T) {
	svc := &mockTransactionModifier{}
	id := uuid.Must(uuid.NewV4())
	svc.On("UpdateTransaction", mock.Anything, id, mock.Anything).Return(nil)
	api := newModifyTestAPI(t, svc)

	resp := api.Put("/v1/transaction/"+id.String(), validCreateBody())

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	svc := &mockTransactionModifier{}
	svc.On("UpdateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(ledger.ErrTransactionNotFound)
	api := newModifyTestAPI(t, svc)

	resp := api.Put("/v1/transaction/"+uuid.Must(uuid.NewV4()).String(), validCreateBody())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateTransaction_MalformedID(t *testing.T) {
	svc := &mockTransactionModifier{}
	api := newModifyTestAPI(t, svc)

	resp := api.Put("/v1/transaction/not-a-uuid", validCreateBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTransaction_Success(t *testing.T) {
	svc := &mockTransactionModifier{}
	id := uuid.Must(uuid.NewV4())
	svc.On("DeleteTransaction", mock.Anything, id).Return(nil)
	api := newModifyTestAPI(t, svc)

	resp := api.Delete("/v1/transaction/" + id.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestDeleteTransaction_MalformedID(t *testing.T) {
	svc := &mockTransactionModifier{}
	api := newModifyTestAPI(t, svc)

	resp := api.Delete("/v1/transaction/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestClearTransactions_Success(t *testing.T) {
	svc := &mockTransactionModifier{}
	svc.On("ClearTransactions", mock.Anything).Return(nil)
	api := newModifyTestAPI(t, svc)

	resp := api.Post("/v1/transaction/clear", map[string]any{})

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestClearTransactions_NotAuthenticated(t *testing.T) {
	svc := &mockTransactionModifier{}
	svc.On("ClearTransactions", mock.Anything).Return(ledger.ErrNotAuthenticated)
	api := newModifyTestAPI(t, svc)

	resp := api.Post("/v1/transaction/clear", map[string]any{})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
