package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// UpdateBudgetInput is the Huma input for editing a budget.
type UpdateBudgetInput struct {
	ID   string `path:"id" doc:"Budget UUID"`
	Body BudgetBody
}

// UpdateBudgetOutput is the Huma output for editing a budget.
type UpdateBudgetOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// budgetUpdater is the interface for editing budgets.
type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id uuid.UUID, name string, amount decimal.Decimal) error
}

// UpdateBudgetHandler handles PUT /v1/budget/{id}.
type UpdateBudgetHandler struct {
	BudgetService budgetUpdater
}

// NewUpdateBudgetHandler creates a new UpdateBudgetHandler.
func NewUpdateBudgetHandler(svc budgetUpdater) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

// Register registers the update budget endpoint with the Huma API.
func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{id}",
		Summary:     "Update budget",
		Description: "Replaces the budget's name and allocated amount.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budget id", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	if err := h.BudgetService.UpdateBudget(ctx, id, input.Body.Name, amount); err != nil {
		return nil, mapServiceError(err, "failed to update budget")
	}

	return &UpdateBudgetOutput{Status: http.StatusOK}, nil
}
