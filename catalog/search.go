package catalog

import (
	"strconv"
	"strings"

	"storefront/models"
)

// AllCategories disables the category filter
const AllCategories = "all"

// Quick search tabs
const (
	TabAll      = "all"
	TabProducts = "products"
	TabRecipes  = "recipes"
)

const (
	quickSearchMinLength = 2
	quickSearchTabLimit  = 3
)

// MatchesText reports whether name or description contains query, ignoring case.
// An empty query matches everything.
func MatchesText(name, description, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(name), q) ||
		strings.Contains(strings.ToLower(description), q)
}

// MatchesCategory compares case-insensitively; "all" or "" matches any category
func MatchesCategory(category, filter string) bool {
	if filter == "" || strings.EqualFold(filter, AllCategories) {
		return true
	}
	return strings.EqualFold(category, filter)
}

// FilterProducts keeps products matching both query and category, in catalog order
func FilterProducts(products []models.Product, query, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if MatchesText(p.Name, p.Description, query) && MatchesCategory(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterRecipes keeps recipes matching both query and category, in catalog order
func FilterRecipes(recipes []models.Recipe, query, category string) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if MatchesText(r.Title, r.Description, query) && MatchesCategory(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// QuickSearch backs the header search box.
// Queries under two characters return nothing. Matching also looks at the
// category text. The "all" tab caps each kind at three results, products first.
func (c *Catalog) QuickSearch(query, tab string) []models.SearchResult {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < quickSearchMinLength {
		return []models.SearchResult{}
	}
	if tab == "" {
		tab = TabAll
	}
	q := strings.ToLower(query)

	results := []models.SearchResult{}

	if tab == TabAll || tab == TabProducts {
		var matches []models.SearchResult
		for _, p := range c.products {
			if !MatchesText(p.Name, p.Description, q) && !strings.Contains(strings.ToLower(p.Category), q) {
				continue
			}
			matches = append(matches, models.SearchResult{
				Type:        "product",
				ID:          p.ID,
				Title:       p.Name,
				Description: p.Description,
				Category:    p.Category,
				Image:       p.Image,
				Price:       p.Price,
				Link:        ProductLink(p.ID),
			})
		}
		results = append(results, limit(matches, tab)...)
	}

	if tab == TabAll || tab == TabRecipes {
		var matches []models.SearchResult
		for _, r := range c.recipes {
			if !MatchesText(r.Title, r.Description, q) && !strings.Contains(strings.ToLower(r.Category), q) {
				continue
			}
			matches = append(matches, models.SearchResult{
				Type:        "recipe",
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				Category:    r.Category,
				Image:       r.Image,
				Link:        RecipeLink(r.ID),
			})
		}
		results = append(results, limit(matches, tab)...)
	}

	return results
}

func limit(results []models.SearchResult, tab string) []models.SearchResult {
	if tab == TabAll && len(results) > quickSearchTabLimit {
		return results[:quickSearchTabLimit]
	}
	return results
}

// ProductLink is the detail route for a product
func ProductLink(id int) string {
	return "/products/" + strconv.Itoa(id)
}

// RecipeLink is the detail route for a recipe
func RecipeLink(id int) string {
	return "/recipes/" + strconv.Itoa(id)
}
