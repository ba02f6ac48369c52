package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// BudgetSummary is the API model for one budget's spending summary.
type BudgetSummary struct {
	Budget           Budget `json:"budget" doc:"The budget"`
	Spent            string `json:"spent" doc:"Sum of expenses counted against this budget"`
	Remaining        string `json:"remaining" doc:"Allocated amount minus spent, negative when overspent"`
	TransactionCount int    `json:"transactionCount" doc:"Number of expenses counted against this budget"`
}

// UnbudgetedSummary is the API model for spending outside any budget.
type UnbudgetedSummary struct {
	Spent            string `json:"spent" doc:"Sum of expenses outside any budget"`
	TransactionCount int    `json:"transactionCount" doc:"Number of expenses outside any budget"`
}

// SummaryResponseBody is the response body for the budget summary endpoint.
type SummaryResponseBody struct {
	Budgets    []BudgetSummary   `json:"budgets" doc:"Per-budget spending summaries"`
	Unbudgeted UnbudgetedSummary `json:"unbudgeted" doc:"Spending outside any budget"`
}

// SummaryOutput is the Huma output for the budget summary endpoint.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// budgetSummarizer is the interface for computing spending summaries.
type budgetSummarizer interface {
	Summaries() ([]ledger.BudgetSummary, ledger.UnbudgetedSummary)
}

// SummaryHandler handles GET /v1/budget/summary.
type SummaryHandler struct {
	BudgetService budgetSummarizer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc budgetSummarizer) *SummaryHandler {
	return &SummaryHandler{BudgetService: svc}
}

// Register registers the budget summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-summary",
		Method:      http.MethodGet,
		Path:        "/v1/budget/summary",
		Summary:     "Budget summaries",
		Description: "Returns per-budget spending computed from the current ledger, plus spending outside any budget. Only expenses count.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *SummaryHandler) handle(_ context.Context, _ *struct{}) (*SummaryOutput, error) {
	summaries, unbudgeted := h.BudgetService.Summaries()

	resp := SummaryResponseBody{
		Budgets: make([]BudgetSummary, len(summaries)),
		Unbudgeted: UnbudgetedSummary{
			Spent:            unbudgeted.Spent.String(),
			TransactionCount: unbudgeted.TransactionCount,
		},
	}
	for i, s := range summaries {
		resp.Budgets[i] = BudgetSummary{
			Budget:           toAPIBudget(s.Budget),
			Spent:            s.Spent.String(),
			Remaining:        s.Remaining.String(),
			TransactionCount: s.TransactionCount,
		}
	}

	return &SummaryOutput{Body: resp}, nil
}
