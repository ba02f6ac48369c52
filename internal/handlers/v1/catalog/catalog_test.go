package catalog

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/wallet-ledger/internal/ledger"
)

func newCatalogTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCategoriesHandler(ledger.NewCategoryCatalog()).Register(api)
	NewDomainsHandler(ledger.NewDomainCatalog()).Register(api)
	return api
}

func listLabels(t *testing.T, api humatest.TestAPI, path string) []string {
	t.Helper()
	resp := api.Get(path)
	require.Equal(t, http.StatusOK, resp.Code)
	var body ListResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Labels
}

func TestListCategories_DefaultsPresent(t *testing.T) {
	api := newCatalogTestAPI(t)

	labels := listLabels(t, api, "/v1/catalog/categories")

	assert.Contains(t, labels, "Nourriture")
	assert.Contains(t, labels, "Salaire")
}

func TestListDomains_DefaultsPresent(t *testing.T) {
	api := newCatalogTestAPI(t)

	labels := listLabels(t, api, "/v1/catalog/domains")

	assert.Contains(t, labels, "Bureau")
	assert.Contains(t, labels, "Showroom")
}

func TestAddLabel(t *testing.T) {
	api := newCatalogTestAPI(t)

	resp := api.Post("/v1/catalog/categories", map[string]any{"label": "Abonnements"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, listLabels(t, api, "/v1/catalog/categories"), "Abonnements")
}

func TestAddLabel_DuplicateRejected(t *testing.T) {
	api := newCatalogTestAPI(t)

	resp := api.Post("/v1/catalog/categories", map[string]any{"label": "nourriture"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestRemoveLabel_CustomOnly(t *testing.T) {
	api := newCatalogTestAPI(t)
	require.Equal(t, http.StatusCreated, api.Post("/v1/catalog/domains", map[string]any{"label": "Entrepôt"}).Code)

	resp := api.Delete("/v1/catalog/domains/Entrepôt")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, listLabels(t, api, "/v1/catalog/domains"), "Entrepôt")
}

func TestRemoveLabel_DefaultRejected(t *testing.T) {
	api := newCatalogTestAPI(t)

	resp := api.Delete("/v1/catalog/categories/Nourriture")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
