package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalog"
	"storefront/models"
)

func TestCatalogHandler_ListProducts(t *testing.T) {
	h := NewCatalogHandler(catalog.Default())

	w := call(t, h.ListProducts, http.MethodGet, "/products", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[models.ProductListResponse](t, w)
	assert.Equal(t, 12, all.Count)

	w = call(t, h.ListProducts, http.MethodGet, "/products?category=dairy", nil, "", nil)
	dairy := decode[models.ProductListResponse](t, w)
	require.Equal(t, 2, dairy.Count)
	for _, p := range dairy.Products {
		assert.Equal(t, "dairy", p.Category)
	}

	w = call(t, h.ListProducts, http.MethodGet, "/products?q=marie&category=biscuits", nil, "", nil)
	marie := decode[models.ProductListResponse](t, w)
	require.Equal(t, 1, marie.Count)
	assert.Equal(t, 2, marie.Products[0].ID)
}

func TestCatalogHandler_ListProductsWhere(t *testing.T) {
	h := NewCatalogHandler(catalog.Default())

	w := call(t, h.ListProducts, http.MethodGet, "/products?where=Price+%3E+100", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[models.ProductListResponse](t, w)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "Cheese Slices", res.Products[0].Name)

	w = call(t, h.ListProducts, http.MethodGet, "/products?where=Price+%3E", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	long := url.QueryEscape("Price > 1 || " + strings.Repeat("IsNew || ", catalog.MaxExpressionLength/9+1) + "IsNew")
	w = call(t, h.ListProducts, http.MethodGet, "/products?where="+long, nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	h := NewCatalogHandler(catalog.Default())

	w := call(t, h.GetProduct, http.MethodGet, "/products/1", nil, "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[models.Product](t, w)
	assert.Equal(t, "Good Day Cashew Cookies", p.Name)

	w = call(t, h.GetProduct, http.MethodGet, "/products/99", nil, "", map[string]string{"id": "99"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, h.GetProduct, http.MethodGet, "/products/abc", nil, "", map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_Recipes(t *testing.T) {
	h := NewCatalogHandler(catalog.Default())

	w := call(t, h.ListRecipes, http.MethodGet, "/recipes?category=all", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, decode[models.RecipeListResponse](t, w).Count)

	w = call(t, h.GetRecipe, http.MethodGet, "/recipes/3", nil, "", map[string]string{"id": "3"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[models.Recipe](t, w).ID)

	w = call(t, h.GetRecipe, http.MethodGet, "/recipes/42", nil, "", map[string]string{"id": "42"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_Search(t *testing.T) {
	h := NewCatalogHandler(catalog.Default())

	type searchBody struct {
		Query   string                `json:"query"`
		Results []models.SearchResult `json:"results"`
	}

	w := call(t, h.Search, http.MethodGet, "/search?q=c", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[searchBody](t, w).Results)

	w = call(t, h.Search, http.MethodGet, "/search?q=cookies&tab=products", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, res := range decode[searchBody](t, w).Results {
		assert.Equal(t, "product", res.Type)
	}

	w = call(t, h.Search, http.MethodGet, "/search?q=cookies&tab=everything", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
