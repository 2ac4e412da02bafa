package flow

import (
	"context"
	"fmt"
	"testing"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/prodflow/prodflow/pkg/infrastructure/testing"
)

func BenchmarkGraphBuilder_SingleMachine(b *testing.B) {
	ctx := context.Background()
	repo, problem := testhelpers.BuildMiniPlateTestData()
	builder := NewGraphBuilder(repo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := builder.Build(ctx, problem)
		if err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

func BenchmarkGraphBuilder_AlternateRecipes(b *testing.B) {
	ctx := context.Background()
	repo, problem := testhelpers.BuildAlternateScrewTestData()
	builder := NewGraphBuilder(repo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := builder.Build(ctx, problem)
		if err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

func BenchmarkGraphBuilder_DeepChain(b *testing.B) {
	ctx := context.Background()
	repo, problem := setupDeepChain(50)
	builder := NewGraphBuilder(repo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := builder.Build(ctx, problem)
		if err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

func BenchmarkGraphBuilder_WideFanOut(b *testing.B) {
	ctx := context.Background()
	repo, problem := setupWideFanOut(40)
	builder := NewGraphBuilder(repo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := builder.Build(ctx, problem)
		if err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

// Helper functions for benchmark setup

// setupDeepChain builds a linear chain of stages, each refining the
// previous stage's product one to one at rate 10.
func setupDeepChain(stages int) (*memory.RecipeRepository, *dto.ProblemSpec) {
	repo := memory.NewRecipeRepository(stages)

	plan := make(entities.Plan, 0, stages)
	for i := 1; i <= stages; i++ {
		recipe, err := entities.NewRecipe(
			fmt.Sprintf("Stage %d", i),
			"Refinery",
			[]entities.Ingredient{{
				Product: entities.Product(fmt.Sprintf("Grade %d", i-1)),
				Rate:    entities.NewRateFromInt(10),
			}},
			[]entities.Ingredient{{
				Product: entities.Product(fmt.Sprintf("Grade %d", i)),
				Rate:    entities.NewRateFromInt(10),
			}},
			false)
		if err != nil {
			panic(err)
		}
		if err := repo.AddRecipe(recipe); err != nil {
			panic(err)
		}
		entry, err := entities.NewPlanEntry(recipe, 1)
		if err != nil {
			panic(err)
		}
		plan = append(plan, entry)
	}

	problem := &dto.ProblemSpec{
		Inputs: []dto.Supply{{Product: "Grade 0", Rate: entities.NewRateFromInt(10)}},
		Outputs: []dto.Target{{
			Product: entities.Product(fmt.Sprintf("Grade %d", stages)),
			Score:   1,
		}},
		Plan: plan,
	}
	return repo, problem
}

// setupWideFanOut builds one producer whose output feeds many consumers,
// each demanding one unit per scale.
func setupWideFanOut(consumers int) (*memory.RecipeRepository, *dto.ProblemSpec) {
	repo := memory.NewRecipeRepository(consumers + 1)

	producer, err := entities.NewRecipe("Central Forge", "Foundry",
		[]entities.Ingredient{{Product: "Raw Stock", Rate: entities.NewRateFromInt(1)}},
		[]entities.Ingredient{{Product: "Shared Part", Rate: entities.NewRateFromInt(int64(consumers))}},
		false)
	if err != nil {
		panic(err)
	}
	if err := repo.AddRecipe(producer); err != nil {
		panic(err)
	}

	plan := entities.Plan{}
	entry, err := entities.NewPlanEntry(producer, 1)
	if err != nil {
		panic(err)
	}
	plan = append(plan, entry)

	outputs := make([]dto.Target, 0, consumers)
	for i := 0; i < consumers; i++ {
		product := entities.Product(fmt.Sprintf("Gadget %d", i))
		recipe, err := entities.NewRecipe(
			fmt.Sprintf("Gadget %d Assembly", i),
			"Assembler",
			[]entities.Ingredient{{Product: "Shared Part", Rate: entities.NewRateFromInt(1)}},
			[]entities.Ingredient{{Product: product, Rate: entities.NewRateFromInt(1)}},
			false)
		if err != nil {
			panic(err)
		}
		if err := repo.AddRecipe(recipe); err != nil {
			panic(err)
		}
		consumerEntry, err := entities.NewPlanEntry(recipe, 1)
		if err != nil {
			panic(err)
		}
		plan = append(plan, consumerEntry)
		outputs = append(outputs, dto.Target{Product: product, Score: 1})
	}

	problem := &dto.ProblemSpec{
		Inputs:  []dto.Supply{{Product: "Raw Stock", Rate: entities.NewRateFromInt(1)}},
		Outputs: outputs,
		Plan:    plan,
	}
	return repo, problem
}
