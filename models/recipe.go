package models

// Recipe represents a catalog recipe
type Recipe struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Time        string `json:"time"` // display string, e.g. "30 min"
	Servings    int    `json:"servings"`
	Difficulty  string `json:"difficulty"`
	Image       string `json:"image"`
}

// Recipe categories
const (
	CategoryDesserts  = "desserts"
	CategorySnacks    = "snacks"
	CategoryBreakfast = "breakfast"
	CategoryKids      = "kids"
)

// RecipeListResponse is returned by GET /recipes
type RecipeListResponse struct {
	Recipes []Recipe `json:"recipes"`
	Count   int      `json:"count"`
}

// SearchResult is one row of the quick search; Type is "product" or "recipe"
type SearchResult struct {
	Type        string  `json:"type"`
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Price       float64 `json:"price,omitempty"`
	Link        string  `json:"link"`
}
