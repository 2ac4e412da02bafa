package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prodflow/prodflow/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing JSON files",
		)
		recipesFile = flag.String("recipes", "", "Path to recipe catalog JSON file")
		problemFile = flag.String("problem", "", "Path to problem JSON file")
		outputDir   = flag.String("output", "", "Output directory for results (optional)")
		format      = flag.String("format", "text", "Output format: text, json, dot")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		dump        = flag.Bool("dump", false, "Print the full vertex and edge listing")
		chains      = flag.Bool("chains", false, "Enumerate production chains")
		topChains   = flag.Int("top-chains", 3, "Number of deepest chains to report")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir: *scenarioDir,
		RecipesFile: *recipesFile,
		ProblemFile: *problemFile,
		OutputDir:   *outputDir,
		Format:      *format,
		Verbose:     *verbose,
		Dump:        *dump,
		Chains:      *chains,
		TopChains:   *topChains,
		Help:        *help,
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
