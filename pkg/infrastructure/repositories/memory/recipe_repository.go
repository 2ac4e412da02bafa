package memory

import (
	"fmt"
	"runtime"

	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/domain/repositories"
)

// RecipeRepository provides a memory-efficient recipe catalog implementation.
// Recipes keep their load order: every query that returns multiple recipes
// returns them in that order.
type RecipeRepository struct {
	recipes       []*entities.Recipe
	nameIndex     map[string]int
	producerIndex map[entities.Product][]int
}

// NewRecipeRepository creates a memory-efficient recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:       make([]*entities.Recipe, 0, expectedRecipes),
		nameIndex:     make(map[string]int, expectedRecipes),
		producerIndex: make(map[entities.Product][]int, expectedRecipes),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository in the given order
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		if err := r.AddRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

// AddRecipe appends one recipe to the catalog
func (r *RecipeRepository) AddRecipe(recipe *entities.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("cannot add nil recipe")
	}
	if _, exists := r.nameIndex[recipe.Name]; exists {
		return fmt.Errorf("duplicate recipe name: %s", recipe.Name)
	}

	index := len(r.recipes)
	r.recipes = append(r.recipes, recipe)
	r.nameIndex[recipe.Name] = index
	for _, output := range recipe.Outputs {
		r.producerIndex[output.Product] = append(r.producerIndex[output.Product], index)
	}
	return nil
}

// GetRecipe returns the recipe with the given name
func (r *RecipeRepository) GetRecipe(name string) (*entities.Recipe, error) {
	index, exists := r.nameIndex[name]
	if !exists {
		return nil, fmt.Errorf("recipe not found: %s", name)
	}
	return r.recipes[index], nil
}

// GetAllRecipes returns every recipe in load order
func (r *RecipeRepository) GetAllRecipes() ([]*entities.Recipe, error) {
	recipes := make([]*entities.Recipe, len(r.recipes))
	copy(recipes, r.recipes)
	return recipes, nil
}

// RecipesProducing returns every recipe producing the product, in load order
func (r *RecipeRepository) RecipesProducing(product entities.Product) ([]*entities.Recipe, error) {
	indexes, exists := r.producerIndex[product]
	if !exists {
		return []*entities.Recipe{}, nil
	}

	recipes := make([]*entities.Recipe, 0, len(indexes))
	for _, index := range indexes {
		recipes = append(recipes, r.recipes[index])
	}
	return recipes, nil
}

// RecipeCount returns the number of loaded recipes
func (r *RecipeRepository) RecipeCount() int {
	return len(r.recipes)
}

// MemoryStats provides memory usage statistics
type MemoryStats struct {
	AllocBytes      uint64
	TotalAllocBytes uint64
	Mallocs         uint64
	Frees           uint64
	HeapObjects     uint64
}

// GetMemoryStats returns current memory usage statistics
func GetMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryStats{
		AllocBytes:      m.Alloc,
		TotalAllocBytes: m.TotalAlloc,
		Mallocs:         m.Mallocs,
		Frees:           m.Frees,
		HeapObjects:     m.HeapObjects,
	}
}

// FormatBytes formats bytes in human readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
