package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/models"
	"storefront/store"
)

// CartHandler handles the visitor's shopping cart
type CartHandler struct {
	catalog  *catalog.Catalog
	registry *store.Registry
	cookie   VisitorCookie
}

// NewCartHandler creates a new cart handler
func NewCartHandler(c *catalog.Catalog, registry *store.Registry, cookie VisitorCookie) *CartHandler {
	return &CartHandler{
		catalog:  c,
		registry: registry,
		cookie:   cookie,
	}
}

func cartResponse(v *store.Visitor) models.CartResponse {
	return models.CartResponse{
		Items:         v.Cart.Items(),
		TotalItems:    v.Cart.TotalItems(),
		TotalPrice:    v.Cart.TotalPrice(),
		IsOpen:        v.Cart.IsOpen(),
		Notifications: v.Inbox.Drain(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	logRequest(ctx, r, "debug", "Cart fetched", zap.Int("total_items", v.Cart.TotalItems()))
	writeJSON(w, http.StatusOK, cartResponse(v))
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, r, "error", "Invalid JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON"))
		return
	}

	product, err := h.catalog.Product(req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		logRequest(ctx, r, "info", "Product not found", zap.Int("product_id", req.ProductID))
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Product not found"))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	if v.Cart.Add(ctx, product) {
		v.Inbox.Notify(models.Notification{
			Title:       "Added to cart",
			Description: fmt.Sprintf("%s has been added to your cart.", product.Name),
		})
	}

	logRequest(ctx, r, "info", "Item added to cart", zap.Int("product_id", product.ID))
	writeJSON(w, http.StatusOK, cartResponse(v))
}

// UpdateItem handles PUT /cart/items/{id}
// A quantity below 1 removes the line; one above store.MaxQuantity is rejected
func (h *CartHandler) UpdateItem(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		logRequest(ctx, r, "error", "Invalid product ID")
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid product ID"))
		return
	}

	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, r, "error", "Invalid JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON"))
		return
	}
	if req.Quantity > store.MaxQuantity {
		logRequest(ctx, r, "info", "Quantity above limit", zap.Int("quantity", req.Quantity))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError(fmt.Sprintf("Quantity cannot exceed %d", store.MaxQuantity)))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	v.Cart.UpdateQuantity(ctx, id, req.Quantity)

	logRequest(ctx, r, "info", "Cart quantity updated", zap.Int("product_id", id), zap.Int("quantity", req.Quantity))
	writeJSON(w, http.StatusOK, cartResponse(v))
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		logRequest(ctx, r, "error", "Invalid product ID")
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid product ID"))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	v.Cart.Remove(ctx, id)

	logRequest(ctx, r, "info", "Item removed from cart", zap.Int("product_id", id))
	writeJSON(w, http.StatusOK, cartResponse(v))
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	v.Cart.Clear(ctx)

	logRequest(ctx, r, "info", "Cart cleared")
	writeJSON(w, http.StatusOK, cartResponse(v))
}

// SetDrawer handles PUT /cart/drawer
func (h *CartHandler) SetDrawer(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.CartDrawerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, r, "error", "Invalid JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON"))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	v.Cart.SetOpen(req.Open)

	logRequest(ctx, r, "debug", "Cart drawer toggled", zap.Bool("open", req.Open))
	writeJSON(w, http.StatusOK, cartResponse(v))
}
