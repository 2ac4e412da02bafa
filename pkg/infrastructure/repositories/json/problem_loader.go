package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/domain/repositories"
)

type problemFile struct {
	Inputs  []problemSupply `json:"inputs"`
	Outputs []problemTarget `json:"outputs"`
	Plan    []problemStep   `json:"plan"`
}

type problemSupply struct {
	Product string        `json:"product"`
	Rate    entities.Rate `json:"rate"`
}

type problemTarget struct {
	Product string  `json:"product"`
	Score   float64 `json:"score"`
}

type problemStep struct {
	Recipe string `json:"recipe"`
	Scale  int    `json:"scale"`
}

// LoadProblem loads a problem definition from a JSON file, resolving its
// plan entries against the catalog. Slice order in the file is preserved
// end to end.
func (l *Loader) LoadProblem(filename string, catalog repositories.RecipeRepository) (*dto.ProblemSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open problem file %s: %w", filename, err)
	}

	var file problemFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse problem JSON: %w", err)
	}

	problem := &dto.ProblemSpec{}

	for _, supply := range file.Inputs {
		problem.Inputs = append(problem.Inputs, dto.Supply{
			Product: entities.Product(supply.Product),
			Rate:    supply.Rate,
		})
	}

	for _, target := range file.Outputs {
		problem.Outputs = append(problem.Outputs, dto.Target{
			Product: entities.Product(target.Product),
			Score:   target.Score,
		})
	}

	for i, step := range file.Plan {
		recipe, err := catalog.GetRecipe(step.Recipe)
		if err != nil {
			return nil, fmt.Errorf("problem plan entry %d: %w", i+1, err)
		}
		entry, err := entities.NewPlanEntry(recipe, step.Scale)
		if err != nil {
			return nil, fmt.Errorf("problem plan entry %d: %w", i+1, err)
		}
		problem.Plan = append(problem.Plan, entry)
	}

	return problem, nil
}
