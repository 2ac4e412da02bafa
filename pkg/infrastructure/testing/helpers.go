package testing

import (
	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/infrastructure/repositories/memory"
)

// PlanStep names a recipe and its scale for fixture plans
type PlanStep struct {
	Recipe string
	Scale  int
}

// PlanOf resolves plan steps against a catalog in the given order
func PlanOf(repo *memory.RecipeRepository, steps ...PlanStep) entities.Plan {
	plan := make(entities.Plan, 0, len(steps))
	for _, step := range steps {
		recipe, err := repo.GetRecipe(step.Recipe)
		if err != nil {
			panic(err)
		}
		entry, err := entities.NewPlanEntry(recipe, step.Scale)
		if err != nil {
			panic(err)
		}
		plan = append(plan, entry)
	}
	return plan
}

func mustRecipe(name string, building entities.Building, inputs, outputs []entities.Ingredient, alternate bool) *entities.Recipe {
	recipe, err := entities.NewRecipe(name, building, inputs, outputs, alternate)
	if err != nil {
		panic(err)
	}
	return recipe
}

func rate(n int64) entities.Rate {
	return entities.NewRateFromInt(n)
}

// BuildSimpleChainTestData builds a three-recipe chain: two intermediate
// parts made from Iron Ore feed a final Special Component. The returned
// problem supplies 60 Iron Ore, requests Special Component, and carries a
// plan that consumes every intermediate exactly (55 of the 60 ore used).
func BuildSimpleChainTestData() (*memory.RecipeRepository, *dto.ProblemSpec) {
	repo := memory.NewRecipeRepository(5)

	recipes := []*entities.Recipe{
		mustRecipe("Iron Part A", "Constructor",
			[]entities.Ingredient{{Product: "Iron Ore", Rate: rate(4)}},
			[]entities.Ingredient{{Product: "Iron Part A", Rate: rate(1)}},
			false),
		mustRecipe("Iron Part B", "Constructor",
			[]entities.Ingredient{{Product: "Iron Ore", Rate: rate(3)}},
			[]entities.Ingredient{{Product: "Iron Part B", Rate: rate(2)}},
			false),
		mustRecipe("Special Component", "Assembler",
			[]entities.Ingredient{
				{Product: "Iron Part A", Rate: rate(2)},
				{Product: "Iron Part B", Rate: rate(2)},
			},
			[]entities.Ingredient{{Product: "Special Component", Rate: rate(1)}},
			false),
	}
	if err := repo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	problem := &dto.ProblemSpec{
		Inputs:  []dto.Supply{{Product: "Iron Ore", Rate: rate(60)}},
		Outputs: []dto.Target{{Product: "Special Component", Score: 100}},
		Plan: PlanOf(repo,
			PlanStep{Recipe: "Iron Part A", Scale: 10},
			PlanStep{Recipe: "Iron Part B", Scale: 5},
			PlanStep{Recipe: "Special Component", Scale: 5},
		),
	}
	return repo, problem
}

// WastefulSimpleChainPlan overbuilds Iron Part B so 8 of its 16 units have
// no consumer: 4 ore stay unused and the surplus parts go to waste.
func WastefulSimpleChainPlan(repo *memory.RecipeRepository) entities.Plan {
	return PlanOf(repo,
		PlanStep{Recipe: "Iron Part A", Scale: 8},
		PlanStep{Recipe: "Iron Part B", Scale: 8},
		PlanStep{Recipe: "Special Component", Scale: 4},
	)
}

// BuildAlternateScrewTestData builds a catalog where Screw has two
// alternate recipes, one drawing on iron and one on copper. The returned
// problem supplies 120 Iron Ingot and 60 Copper Ingot, requests Reinforced
// Iron Plate and Copper Wire, and carries the copper-screw plan that
// consumes both metals with only 3 Iron Ingot left over.
func BuildAlternateScrewTestData() (*memory.RecipeRepository, *dto.ProblemSpec) {
	repo := memory.NewRecipeRepository(8)

	recipes := []*entities.Recipe{
		mustRecipe("Iron Screw", "Constructor",
			[]entities.Ingredient{{Product: "Iron Ingot", Rate: rate(1)}},
			[]entities.Ingredient{{Product: "Screw", Rate: rate(4)}},
			true),
		mustRecipe("Copper Screw", "Constructor",
			[]entities.Ingredient{{Product: "Copper Ingot", Rate: rate(1)}},
			[]entities.Ingredient{{Product: "Screw", Rate: rate(4)}},
			true),
		mustRecipe("Iron Plate", "Constructor",
			[]entities.Ingredient{{Product: "Iron Ingot", Rate: rate(3)}},
			[]entities.Ingredient{{Product: "Iron Plate", Rate: rate(2)}},
			false),
		mustRecipe("Reinforced Iron Plate", "Assembler",
			[]entities.Ingredient{
				{Product: "Iron Plate", Rate: rate(3)},
				{Product: "Screw", Rate: rate(8)},
			},
			[]entities.Ingredient{{Product: "Reinforced Iron Plate", Rate: rate(1)}},
			false),
		mustRecipe("Copper Wire", "Constructor",
			[]entities.Ingredient{{Product: "Copper Ingot", Rate: rate(2)}},
			[]entities.Ingredient{{Product: "Copper Wire", Rate: rate(10)}},
			false),
	}
	if err := repo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	problem := &dto.ProblemSpec{
		Inputs: []dto.Supply{
			{Product: "Iron Ingot", Rate: rate(120)},
			{Product: "Copper Ingot", Rate: rate(60)},
		},
		Outputs: []dto.Target{
			{Product: "Reinforced Iron Plate", Score: 1000},
			{Product: "Copper Wire", Score: 20},
		},
		Plan: PlanOf(repo,
			PlanStep{Recipe: "Copper Screw", Scale: 52},
			PlanStep{Recipe: "Iron Plate", Scale: 39},
			PlanStep{Recipe: "Reinforced Iron Plate", Scale: 26},
			PlanStep{Recipe: "Copper Wire", Scale: 4},
		),
	}
	return repo, problem
}

// WastefulAlternateScrewPlan spends iron on screws instead of the copper
// alternate, capping Reinforced Iron Plate at 18 while copper goes to wire.
func WastefulAlternateScrewPlan(repo *memory.RecipeRepository) entities.Plan {
	return PlanOf(repo,
		PlanStep{Recipe: "Iron Screw", Scale: 36},
		PlanStep{Recipe: "Copper Screw", Scale: 0},
		PlanStep{Recipe: "Iron Plate", Scale: 27},
		PlanStep{Recipe: "Reinforced Iron Plate", Scale: 18},
		PlanStep{Recipe: "Copper Wire", Scale: 30},
	)
}

// BuildMiniPlateTestData builds the smallest useful scenario: one machine
// assembling Combined Iron Plate from supplied plates and screws at scale 3,
// consuming both supplies exactly.
func BuildMiniPlateTestData() (*memory.RecipeRepository, *dto.ProblemSpec) {
	repo := memory.NewRecipeRepository(1)

	combined := mustRecipe("Combined Iron Plate", "Assembler",
		[]entities.Ingredient{
			{Product: "Iron Plate", Rate: rate(2)},
			{Product: "Screw", Rate: rate(4)},
		},
		[]entities.Ingredient{{Product: "Combined Iron Plate", Rate: rate(1)}},
		false)
	if err := repo.LoadRecipes([]*entities.Recipe{combined}); err != nil {
		panic(err)
	}

	problem := &dto.ProblemSpec{
		Inputs: []dto.Supply{
			{Product: "Iron Plate", Rate: rate(6)},
			{Product: "Screw", Rate: rate(12)},
		},
		Outputs: []dto.Target{{Product: "Combined Iron Plate", Score: 10}},
		Plan:    PlanOf(repo, PlanStep{Recipe: "Combined Iron Plate", Scale: 3}),
	}
	return repo, problem
}
