package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront/models"
)

// DefaultCartKey is the storage key the cart snapshot lives under
const DefaultCartKey = "britannia_cart"

// MaxQuantity caps a single line item
const MaxQuantity = 99

// Cart is the single source of truth for one visitor's cart.
// Line items keep insertion order and hold at most one row per product id.
// Every mutation writes a full snapshot to storage; write failures are logged
// and otherwise ignored.
type Cart struct {
	mu    sync.Mutex
	items []models.CartLineItem
	open  bool

	storage  Storage
	key      string
	notifier Notifier
	log      *zap.Logger
}

// LoadCart restores the cart snapshot stored under key.
// A missing, unreadable or corrupt snapshot yields an empty cart.
func LoadCart(ctx context.Context, storage Storage, key string, notifier Notifier, log *zap.Logger) *Cart {
	if key == "" {
		key = DefaultCartKey
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cart{
		storage:  storage,
		key:      key,
		notifier: notifier,
		log:      log,
	}

	raw, err := storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("cart snapshot unreadable, starting empty", zap.String("key", key), zap.Error(err))
		}
		return c
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn("cart snapshot corrupt, starting empty", zap.String("key", key), zap.Error(err))
		return c
	}
	c.items = normalize(items)
	return c
}

// normalize drops rows with quantity below 1, merges duplicate product ids and
// caps quantities at MaxQuantity, so a hand-edited snapshot cannot break the
// one-row-per-product rule.
func normalize(items []models.CartLineItem) []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(items))
	index := make(map[int]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := index[it.ID]; ok {
			out[i].Quantity = min(out[i].Quantity+min(it.Quantity, MaxQuantity), MaxQuantity)
			continue
		}
		it.Quantity = min(it.Quantity, MaxQuantity)
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

// Add puts one unit of product in the cart and reports whether it did.
// An existing row is incremented up to MaxQuantity; otherwise a new row copies
// the product's current display fields.
func (c *Cart) Add(ctx context.Context, product models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		if c.items[i].Quantity >= MaxQuantity {
			return false
		}
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, models.CartLineItem{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Image:       product.Image,
			Category:    product.Category,
			Quantity:    1,
		})
	}
	c.persist(ctx)
	return true
}

// Remove deletes the row for productID; absent ids are a no-op
func (c *Cart) Remove(ctx context.Context, productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(ctx, productID)
}

func (c *Cart) remove(ctx context.Context, productID int) {
	if i := c.indexOf(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.persist(ctx)
	c.notifier.Notify(models.Notification{
		Title:       "Item removed",
		Description: "The item has been removed from your cart.",
	})
}

// UpdateQuantity sets the quantity of productID's row.
// A quantity below 1 removes the row and one above MaxQuantity is capped.
// Absent ids are a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.remove(ctx, productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.items[i].Quantity = min(quantity, MaxQuantity)
	}
	c.persist(ctx)
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist(ctx)
	c.notifier.Notify(models.Notification{
		Title:       "Cart cleared",
		Description: "All items have been removed from your cart.",
	})
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLineItem{}, c.items...)
}

// TotalItems is the sum of all quantities
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// SetOpen sets the drawer flag; it is never persisted
func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
}

// IsOpen reports the drawer flag
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Cart) indexOf(productID int) int {
	for i, it := range c.items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

// persist must be called with c.mu held
func (c *Cart) persist(ctx context.Context) {
	snapshot := c.items
	if snapshot == nil {
		snapshot = []models.CartLineItem{}
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Error("cart snapshot encode failed", zap.Error(err))
		return
	}
	if err := c.storage.Set(ctx, c.key, raw); err != nil {
		c.log.Error("cart snapshot write failed", zap.String("key", c.key), zap.Error(err))
	}
}
