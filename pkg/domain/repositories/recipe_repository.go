package repositories

import "github.com/prodflow/prodflow/pkg/domain/entities"

// RecipeRepository provides access to the recipe catalog.
// Implementations must preserve load order: RecipesProducing and
// GetAllRecipes return recipes in the order they were loaded, which
// callers rely on as the only tie-break between alternates.
type RecipeRepository interface {
	GetRecipe(name string) (*entities.Recipe, error)
	GetAllRecipes() ([]*entities.Recipe, error)

	// RecipesProducing returns every recipe whose outputs include product,
	// in catalog order.
	RecipesProducing(product entities.Product) ([]*entities.Recipe, error)

	LoadRecipes(recipes []*entities.Recipe) error
}
