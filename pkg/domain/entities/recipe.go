package entities

import (
	"fmt"
	"strings"
)

// Ingredient pairs a product with a per-scale rate on one side of a recipe
type Ingredient struct {
	Product Product
	Rate    Rate
}

// Recipe describes one production step: the products it consumes and
// produces per minute at scale 1, and the building it runs in. Inputs
// and outputs keep the order the catalog presented them in; that order
// drives allocation order during graph construction.
type Recipe struct {
	Name      string
	Building  Building
	Inputs    []Ingredient
	Outputs   []Ingredient
	Alternate bool
}

// NewRecipe creates a validated Recipe
func NewRecipe(name string, building Building, inputs, outputs []Ingredient, alternate bool) (*Recipe, error) {
	if name == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("recipe %s must produce at least one output", name)
	}
	if err := validateIngredients(name, "input", inputs); err != nil {
		return nil, err
	}
	if err := validateIngredients(name, "output", outputs); err != nil {
		return nil, err
	}

	return &Recipe{
		Name:      name,
		Building:  building,
		Inputs:    inputs,
		Outputs:   outputs,
		Alternate: alternate,
	}, nil
}

func validateIngredients(recipeName, side string, ingredients []Ingredient) error {
	seen := make(map[Product]bool, len(ingredients))
	for _, ing := range ingredients {
		if ing.Product == "" {
			return fmt.Errorf("recipe %s: %s product name cannot be empty", recipeName, side)
		}
		if !ing.Rate.IsPositive() {
			return fmt.Errorf("recipe %s: %s rate for %s must be positive, got %s", recipeName, side, ing.Product, ing.Rate)
		}
		if seen[ing.Product] {
			return fmt.Errorf("recipe %s: duplicate %s product %s", recipeName, side, ing.Product)
		}
		seen[ing.Product] = true
	}
	return nil
}

// InputRate returns the per-scale input rate for a product and whether
// the recipe consumes it at all.
func (r *Recipe) InputRate(product Product) (Rate, bool) {
	for _, ing := range r.Inputs {
		if ing.Product == product {
			return ing.Rate, true
		}
	}
	return ZeroRate, false
}

// OutputRate returns the per-scale output rate for a product and
// whether the recipe produces it at all.
func (r *Recipe) OutputRate(product Product) (Rate, bool) {
	for _, ing := range r.Outputs {
		if ing.Product == product {
			return ing.Rate, true
		}
	}
	return ZeroRate, false
}

// RequiresInput reports whether the recipe consumes the product.
func (r *Recipe) RequiresInput(product Product) bool {
	_, ok := r.InputRate(product)
	return ok
}

// ProducesOutput reports whether the recipe produces the product.
func (r *Recipe) ProducesOutput(product Product) bool {
	_, ok := r.OutputRate(product)
	return ok
}

// NetRate is the recipe's net production of a product per scale:
// output rate minus input rate, zero if the product is unused.
func (r *Recipe) NetRate(product Product) Rate {
	out, _ := r.OutputRate(product)
	in, _ := r.InputRate(product)
	return out.Sub(in)
}

// Products returns every product the recipe touches, inputs first,
// each product once, in recipe order.
func (r *Recipe) Products() []Product {
	seen := make(map[Product]bool, len(r.Inputs)+len(r.Outputs))
	var products []Product
	for _, ing := range r.Inputs {
		if !seen[ing.Product] {
			seen[ing.Product] = true
			products = append(products, ing.Product)
		}
	}
	for _, ing := range r.Outputs {
		if !seen[ing.Product] {
			seen[ing.Product] = true
			products = append(products, ing.Product)
		}
	}
	return products
}

// Description renders a multi-line human-readable summary of the recipe
func (r *Recipe) Description() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nProduced in: %s\nInputs:\n", r.Name, r.Building)
	for _, ing := range r.Inputs {
		fmt.Fprintf(&sb, "\t%s %s\n", ing.Rate, ing.Product)
	}
	sb.WriteString("Outputs:\n")
	for _, ing := range r.Outputs {
		fmt.Fprintf(&sb, "\t%s %s\n", ing.Rate, ing.Product)
	}
	return sb.String()
}

func (r *Recipe) String() string {
	return r.Name
}
