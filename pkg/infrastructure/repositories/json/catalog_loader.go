package json

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// Loader handles loading recipe catalogs and problem definitions from
// JSON files
type Loader struct{}

// NewLoader creates a new JSON loader
func NewLoader() *Loader {
	return &Loader{}
}

// catalogFile mirrors the on-disk catalog layout: recipes keyed by an
// arbitrary identifier.
type catalogFile struct {
	Recipes map[string]catalogRecipe `json:"recipes"`
}

type catalogRecipe struct {
	Name        string             `json:"name"`
	Alternate   bool               `json:"alternate"`
	ProducedIn  []string           `json:"producedIn"`
	Ingredients []catalogComponent `json:"ingredients"`
	Products    []catalogComponent `json:"products"`
}

type catalogComponent struct {
	Item   string        `json:"item"`
	Amount entities.Rate `json:"amount"`
}

// LoadCatalog loads recipes from a JSON catalog file. Recipe identifiers
// are sorted before conversion, so the same file always yields the same
// catalog order, which in turn fixes the order alternates are tried in.
func (l *Loader) LoadCatalog(filename string) ([]*entities.Recipe, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filename, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if len(file.Recipes) == 0 {
		return nil, fmt.Errorf("catalog must define at least one recipe")
	}

	ids := make([]string, 0, len(file.Recipes))
	for id := range file.Recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recipes := make([]*entities.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := convertRecipe(file.Recipes[id])
		if err != nil {
			return nil, fmt.Errorf("catalog recipe %s: %w", id, err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func convertRecipe(raw catalogRecipe) (*entities.Recipe, error) {
	building := entities.Building("Unknown")
	if len(raw.ProducedIn) > 0 {
		building = entities.Building(raw.ProducedIn[0])
	}

	inputs, err := convertComponents(raw.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("ingredients: %w", err)
	}
	outputs, err := convertComponents(raw.Products)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}

	return entities.NewRecipe(raw.Name, building, inputs, outputs, raw.Alternate)
}

func convertComponents(raw []catalogComponent) ([]entities.Ingredient, error) {
	components := make([]entities.Ingredient, 0, len(raw))
	for i, component := range raw {
		if component.Item == "" {
			return nil, fmt.Errorf("component %d has no item name", i)
		}
		components = append(components, entities.Ingredient{
			Product: entities.Product(component.Item),
			Rate:    component.Amount,
		})
	}
	return components, nil
}
