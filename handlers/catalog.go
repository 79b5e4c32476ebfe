package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/models"
)

// CatalogHandler serves the read-only product and recipe catalogs
type CatalogHandler struct {
	catalog *catalog.Catalog
	exprs   *catalog.ExprFilter
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		exprs:   catalog.NewExprFilter(catalog.DefaultProgramCacheSize),
	}
}

// ListProducts handles GET /products?q=&category=&where=
func (h *CatalogHandler) ListProducts(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, category, where := query.Get("q"), query.Get("category"), query.Get("where")

	products := catalog.FilterProducts(h.catalog.Products(), q, category)
	products, err := h.exprs.Filter(products, where)
	if err != nil {
		logRequest(ctx, r, "error", "Invalid where expression", zap.String("where", where), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError(err.Error()))
		return
	}

	logRequest(ctx, r, "info", "Products listed",
		zap.String("q", q), zap.String("category", category), zap.Int("count", len(products)))

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products, Count: len(products)})
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		logRequest(ctx, r, "error", "Invalid product ID")
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid product ID"))
		return
	}

	product, err := h.catalog.Product(id)
	if errors.Is(err, catalog.ErrNotFound) {
		logRequest(ctx, r, "info", "Product not found", zap.Int("product_id", id))
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Product not found"))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListRecipes handles GET /recipes?q=&category=
func (h *CatalogHandler) ListRecipes(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, category := query.Get("q"), query.Get("category")

	recipes := catalog.FilterRecipes(h.catalog.Recipes(), q, category)

	logRequest(ctx, r, "info", "Recipes listed",
		zap.String("q", q), zap.String("category", category), zap.Int("count", len(recipes)))

	writeJSON(w, http.StatusOK, models.RecipeListResponse{Recipes: recipes, Count: len(recipes)})
}

// GetRecipe handles GET /recipes/{id}
func (h *CatalogHandler) GetRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		logRequest(ctx, r, "error", "Invalid recipe ID")
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid recipe ID"))
		return
	}

	recipe, err := h.catalog.Recipe(id)
	if errors.Is(err, catalog.ErrNotFound) {
		logRequest(ctx, r, "info", "Recipe not found", zap.Int("recipe_id", id))
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Recipe not found"))
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// Search handles GET /search?q=&tab=all|products|recipes
func (h *CatalogHandler) Search(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	q, tab := r.URL.Query().Get("q"), r.URL.Query().Get("tab")
	switch tab {
	case "", catalog.TabAll, catalog.TabProducts, catalog.TabRecipes:
	default:
		logRequest(ctx, r, "error", "Invalid search tab", zap.String("tab", tab))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("tab must be all, products or recipes"))
		return
	}

	results := h.catalog.QuickSearch(q, tab)
	logRequest(ctx, r, "debug", "Search", zap.String("q", q), zap.Int("count", len(results)))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"results": results,
	})
}
