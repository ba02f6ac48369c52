// Package catalog exposes the category and domain label catalogs used to
// classify expenses.
package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

// ListOutput is the Huma output for listing catalog labels.
type ListOutput struct {
	Body ListResponseBody
}

// ListResponseBody is the response body for listing catalog labels.
type ListResponseBody struct {
	Labels []string `json:"labels" doc:"Default labels first, then custom labels sorted alphabetically"`
}

// AddInput is the Huma input for adding a custom label.
type AddInput struct {
	Body AddBody
}

// AddBody is the request body for adding a custom label.
type AddBody struct {
	Label string `json:"label" required:"true" doc:"Label to add"`
}

// AddOutput is the Huma output for adding a custom label.
type AddOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// RemoveInput is the Huma input for removing a custom label.
type RemoveInput struct {
	Label string `path:"label" doc:"Label to remove"`
}

// RemoveOutput is the Huma output for removing a custom label.
type RemoveOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// Handler exposes one catalog under /v1/catalog/{kind}. The same handler
// serves categories and domains.
type Handler struct {
	Kind    string
	Catalog *ledger.Catalog
}

// NewCategoriesHandler creates a Handler for the category catalog.
func NewCategoriesHandler(catalog *ledger.Catalog) *Handler {
	return &Handler{Kind: "categories", Catalog: catalog}
}

// NewDomainsHandler creates a Handler for the domain catalog.
func NewDomainsHandler(catalog *ledger.Catalog) *Handler {
	return &Handler{Kind: "domains", Catalog: catalog}
}

// Register registers the catalog endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-" + h.Kind,
		Method:      http.MethodGet,
		Path:        "/v1/catalog/" + h.Kind,
		Summary:     "List " + h.Kind,
		Description: fmt.Sprintf("Returns every %s label, defaults first.", h.Kind),
		Tags:        []string{"Catalog"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "add-" + h.Kind + "-label",
		Method:        http.MethodPost,
		Path:          "/v1/catalog/" + h.Kind,
		Summary:       "Add " + h.Kind + " label",
		Description:   fmt.Sprintf("Adds a custom %s label. Duplicates are rejected case-insensitively.", h.Kind),
		Tags:          []string{"Catalog"},
		DefaultStatus: http.StatusCreated,
	}, h.add)

	huma.Register(api, huma.Operation{
		OperationID: "remove-" + h.Kind + "-label",
		Method:      http.MethodDelete,
		Path:        "/v1/catalog/" + h.Kind + "/{label}",
		Summary:     "Remove " + h.Kind + " label",
		Description: fmt.Sprintf("Removes a custom %s label. Default labels cannot be removed; unknown labels are a no-op.", h.Kind),
		Tags:        []string{"Catalog"},
	}, h.remove)
}

func (h *Handler) list(_ context.Context, _ *struct{}) (*ListOutput, error) {
	return &ListOutput{Body: ListResponseBody{Labels: h.Catalog.All()}}, nil
}

func (h *Handler) add(_ context.Context, input *AddInput) (*AddOutput, error) {
	if err := h.Catalog.Add(input.Body.Label); err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	return &AddOutput{Status: http.StatusCreated}, nil
}

func (h *Handler) remove(_ context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if err := h.Catalog.Remove(input.Label); err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	return &RemoveOutput{Status: http.StatusOK}, nil
}
