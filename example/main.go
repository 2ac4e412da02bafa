package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/application/services/analysis"
	"github.com/prodflow/prodflow/pkg/application/services/orchestration"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/infrastructure/repositories/memory"
	"github.com/prodflow/prodflow/pkg/interfaces/cli/output"
)

const dotDir = "output_dot"

func main() {
	ctx := context.Background()

	if err := runMiniExample(ctx); err != nil {
		fmt.Printf("❌ Mini example failed: %v\n", err)
		return
	}
	if err := runSimpleChain(ctx); err != nil {
		fmt.Printf("❌ Simple chain example failed: %v\n", err)
		return
	}
	if err := runAlternateScrews(ctx); err != nil {
		fmt.Printf("❌ Alternate recipe example failed: %v\n", err)
		return
	}

	fmt.Println("✅ Planning demo complete!")
}

// runMiniExample plans a single-machine factory twice: once with a scale
// that consumes the supplies exactly, once underscaled so leftovers flow
// to waste.
func runMiniExample(ctx context.Context) error {
	fmt.Println("🚀 Planning a mini Combined Iron Plate factory...")

	repo, problem := setupMiniPlate()
	session := orchestration.NewPlanningSession(repo, problem)

	exact, err := session.BuildGraph(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("📦 Exact plan: %s Combined Iron Plate delivered, %d waste streams\n",
		exact.DeliveredRate("Combined Iron Plate"), len(exact.Wasted))

	session.OverridePlan(planFor(repo, planStep{"Combined Iron Plate", 2}))
	underscaled, err := session.BuildGraph(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("⚠️  Underscaled plan: %s delivered, %s Iron Plate and %s Screw wasted\n",
		underscaled.DeliveredRate("Combined Iron Plate"),
		underscaled.WastedRate("Iron Plate"),
		underscaled.WastedRate("Screw"))
	fmt.Println()
	return nil
}

// runSimpleChain plans the three-recipe chain with a balanced plan, dumps
// the graph, then rebuilds with an unbalanced plan to show starvation.
func runSimpleChain(ctx context.Context) error {
	fmt.Println("🚀 Planning a Special Component factory...")

	repo, problem := setupSimpleChain()
	session := orchestration.NewPlanningSession(repo, problem)

	if err := session.Validate(ctx); err != nil {
		return err
	}
	fmt.Println("✅ All requested outputs are producible")
	fmt.Println()

	start := time.Now()
	balanced, err := session.BuildGraph(ctx)
	if err != nil {
		return err
	}
	fmt.Print(output.RenderSummary(balanced, time.Since(start)))

	fmt.Println("🔍 Full flow graph:")
	if err := output.DumpGraph(os.Stdout, balanced.Graph); err != nil {
		return err
	}
	fmt.Println()

	if err := writeDOTFile("simple_chain.dot", balanced.Graph, "Special Component Factory"); err != nil {
		return err
	}

	// The same problem with scales that overbuild Iron Part B and
	// underbuild everything downstream of it.
	fmt.Println("🔄 Rebuilding with an unbalanced plan...")
	session.OverridePlan(unbalancedSimplePlan(repo))
	unbalanced, err := session.BuildGraph(ctx)
	if err != nil {
		return err
	}
	compareReports(balanced, unbalanced)
	fmt.Println()
	return nil
}

// runAlternateScrews plans a factory where two alternate recipes compete
// for the shared Screw product, ranks its production chains, and renders
// the graph as a DOT file.
func runAlternateScrews(ctx context.Context) error {
	fmt.Println("🚀 Planning a Reinforced Iron Plate factory with alternate recipes...")

	repo, problem := setupAlternateScrews()
	session := orchestration.NewPlanningSession(repo, problem)

	if err := session.Validate(ctx); err != nil {
		return err
	}
	report, err := session.BuildGraph(ctx)
	if err != nil {
		return err
	}

	result, err := analysis.NewChainAnalyzer().AnalyzeChains(ctx, report.Graph, 3)
	if err != nil {
		return err
	}
	fmt.Printf("📊 %s (%d chains total)\n", result.GetChainSummary(), result.TotalChains)
	for _, chain := range result.TopChains {
		fmt.Printf("   ◦ %s: %s\n", chain.Output, chain.GetPathSummary())
	}

	if err := writeDOTFile("reinforced_iron_plate.dot", report.Graph, "Reinforced Iron Plate Factory"); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

// compareReports prints what the unbalanced plan costs relative to the
// balanced one: lower deliveries and new waste streams.
func compareReports(balanced, unbalanced *dto.BuildReport) {
	fmt.Println("📦 Delivered rates, balanced vs unbalanced:")
	for _, want := range balanced.Delivered {
		got := entities.ZeroRate
		for _, delivery := range unbalanced.Delivered {
			if delivery.Product == want.Product {
				got = delivery.Rate
				break
			}
		}
		fmt.Printf("   %s: %s -> %s\n", want.Product, want.Rate, got)
	}

	if len(unbalanced.Wasted) > 0 {
		fmt.Println("⚠️  Wasted by the unbalanced plan:")
		for _, waste := range unbalanced.Wasted {
			fmt.Printf("   %s: %s\n", waste.Product, waste.Rate)
		}
	}
}

func writeDOTFile(name string, graph *entities.ProductionGraph, title string) error {
	if err := os.MkdirAll(dotDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dotDir, name)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := output.WriteDOT(file, graph, title); err != nil {
		return err
	}
	fmt.Printf("💾 Flow graph written to %s\n", path)
	return nil
}

// setupMiniPlate builds the smallest interesting problem: one recipe
// combining two supplied products into one output.
func setupMiniPlate() (*memory.RecipeRepository, *dto.ProblemSpec) {
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
		Plan:    planFor(repo, planStep{"Combined Iron Plate", 3}),
	}
	return repo, problem
}

// setupSimpleChain builds a three-recipe catalog where two intermediate
// parts made from Iron Ore feed a final Special Component, plus a plan
// whose scales consume every intermediate exactly.
func setupSimpleChain() (*memory.RecipeRepository, *dto.ProblemSpec) {
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
		Plan: planFor(repo,
			planStep{"Iron Part A", 10},
			planStep{"Iron Part B", 5},
			planStep{"Special Component", 5},
		),
	}
	return repo, problem
}

func unbalancedSimplePlan(repo *memory.RecipeRepository) entities.Plan {
	return planFor(repo,
		planStep{"Iron Part A", 8},
		planStep{"Iron Part B", 8},
		planStep{"Special Component", 4},
	)
}

// setupAlternateScrews builds a catalog where Iron Screw and Copper Screw
// both produce the shared Screw product, and a plan that spends the iron
// supply on plates while covering screws from copper.
func setupAlternateScrews() (*memory.RecipeRepository, *dto.ProblemSpec) {
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
		Plan: planFor(repo,
			planStep{"Copper Screw", 52},
			planStep{"Iron Plate", 39},
			planStep{"Reinforced Iron Plate", 26},
			planStep{"Copper Wire", 4},
		),
	}
	return repo, problem
}

type planStep struct {
	recipe string
	scale  int
}

func planFor(repo *memory.RecipeRepository, steps ...planStep) entities.Plan {
	plan := make(entities.Plan, 0, len(steps))
	for _, step := range steps {
		recipe, err := repo.GetRecipe(step.recipe)
		if err != nil {
			panic(err)
		}
		entry, err := entities.NewPlanEntry(recipe, step.scale)
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
