package models

// Product represents a catalog product
// Immutable for the life of the process; price is in rupees
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	IsNew        bool    `json:"isNew,omitempty"`
	IsBestSeller bool    `json:"isBestSeller,omitempty"`
}

// Product categories
const (
	CategoryBiscuits = "biscuits"
	CategoryCookies  = "cookies"
	CategoryCakes    = "cakes"
	CategoryBread    = "bread"
	CategoryDairy    = "dairy"
)

// ProductListResponse is returned by GET /products
type ProductListResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}
