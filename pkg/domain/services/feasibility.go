package services

import "github.com/prodflow/prodflow/pkg/domain/entities"

// FeasibilityChecker answers whether products can be synthesized from a set
// of available base products using recipes drawn from a catalog. A recipe is
// usable only if every one of its inputs is itself producible, transitively.
//
// The checker owns its memo table and recursion guard, so each validation
// session gets a fresh checker; results memoized in one session never leak
// into another.
type FeasibilityChecker struct {
	catalog    []*entities.Recipe
	available  map[entities.Product]bool
	memo       map[entities.Product]bool
	inProgress map[entities.Product]bool
}

// NewFeasibilityChecker creates a checker for one validation session.
// The catalog's order is the order alternates are tried in.
func NewFeasibilityChecker(catalog []*entities.Recipe, available []entities.Product) *FeasibilityChecker {
	availableSet := make(map[entities.Product]bool, len(available))
	for _, product := range available {
		availableSet[product] = true
	}

	return &FeasibilityChecker{
		catalog:    catalog,
		available:  availableSet,
		memo:       make(map[entities.Product]bool),
		inProgress: make(map[entities.Product]bool),
	}
}

// Producible reports whether target can be synthesized from the available
// products. The first catalog recipe whose inputs all test producible settles
// the verdict; later alternates are not revisited once a verdict is memoized.
func (c *FeasibilityChecker) Producible(target entities.Product) bool {
	if verdict, seen := c.memo[target]; seen {
		return verdict
	}
	if c.available[target] {
		c.memo[target] = true
		return true
	}
	if c.inProgress[target] {
		// target is already being explored further up the recursion path.
		// Returning false here breaks the cycle without memoizing: the
		// verdict holds only for this path, and an independent path may
		// still prove target producible.
		return false
	}

	c.inProgress[target] = true
	for _, recipe := range c.catalog {
		if !recipe.ProducesOutput(target) {
			continue
		}
		if c.inputsProducible(recipe) {
			delete(c.inProgress, target)
			c.memo[target] = true
			return true
		}
	}
	delete(c.inProgress, target)
	c.memo[target] = false
	return false
}

// FirstUnproducible tests targets in order and returns the first one that
// cannot be produced. The boolean is true when such a target exists.
func (c *FeasibilityChecker) FirstUnproducible(targets []entities.Product) (entities.Product, bool) {
	for _, target := range targets {
		if !c.Producible(target) {
			return target, true
		}
	}
	return "", false
}

func (c *FeasibilityChecker) inputsProducible(recipe *entities.Recipe) bool {
	for _, input := range recipe.Inputs {
		if !c.Producible(input.Product) {
			return false
		}
	}
	return true
}
