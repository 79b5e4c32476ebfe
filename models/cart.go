package models

// CartLineItem is one row in the cart
// Display fields are copied from the product when it is first added (snapshot pricing)
type CartLineItem struct {
	ID          int     `json:"id"` // product id
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

// Notification is a user-visible message produced by a store mutation
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CartResponse is returned by every cart endpoint
type CartResponse struct {
	Items         []CartLineItem `json:"items"`
	TotalItems    int            `json:"totalItems"`
	TotalPrice    float64        `json:"totalPrice"`
	IsOpen        bool           `json:"isOpen"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// AddCartItemRequest for POST /cart/items
type AddCartItemRequest struct {
	ProductID int `json:"productId"`
}

// UpdateCartItemRequest for PUT /cart/items/{id}
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartDrawerRequest for PUT /cart/drawer
type CartDrawerRequest struct {
	Open bool `json:"open"`
}
