// Package catalog holds the static product and recipe collections and the
// search/filter predicates that run over them.
package catalog

import (
	"errors"

	"storefront/models"
)

// ErrNotFound is returned when an id is not in the catalog
var ErrNotFound = errors.New("catalog: not found")

// Catalog is a read-only view over products and recipes
// Records keep their insertion order; lookups are by id
type Catalog struct {
	products []models.Product
	recipes  []models.Recipe

	productIndex map[int]int
	recipeIndex  map[int]int
}

// New builds a catalog from the given records
func New(products []models.Product, recipes []models.Recipe) *Catalog {
	c := &Catalog{
		products:     append([]models.Product(nil), products...),
		recipes:      append([]models.Recipe(nil), recipes...),
		productIndex: make(map[int]int, len(products)),
		recipeIndex:  make(map[int]int, len(recipes)),
	}
	for i, p := range c.products {
		c.productIndex[p.ID] = i
	}
	for i, r := range c.recipes {
		c.recipeIndex[r.ID] = i
	}
	return c
}

// Default returns the built-in brand catalog
func Default() *Catalog {
	return New(defaultProducts, defaultRecipes)
}

// Products returns a copy of all products in catalog order
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Recipes returns a copy of all recipes in catalog order
func (c *Catalog) Recipes() []models.Recipe {
	return append([]models.Recipe(nil), c.recipes...)
}

// Product looks up a product by id
func (c *Catalog) Product(id int) (models.Product, error) {
	i, ok := c.productIndex[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// Recipe looks up a recipe by id
func (c *Catalog) Recipe(id int) (models.Recipe, error) {
	i, ok := c.recipeIndex[id]
	if !ok {
		return models.Recipe{}, ErrNotFound
	}
	return c.recipes[i], nil
}
