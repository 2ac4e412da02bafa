package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prodflow/prodflow/pkg/application/services/analysis"
	"github.com/prodflow/prodflow/pkg/application/services/orchestration"
	"github.com/prodflow/prodflow/pkg/infrastructure/events"
	"github.com/prodflow/prodflow/pkg/infrastructure/repositories/json"
	"github.com/prodflow/prodflow/pkg/infrastructure/repositories/memory"
	"github.com/prodflow/prodflow/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir string
	RecipesFile string
	ProblemFile string
	OutputDir   string
	Format      string
	Verbose     bool
	Dump        bool
	Chains      bool
	TopChains   int
	Help        bool
}

// PlanCommand handles the main planning execution logic
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	// Load data from JSON files
	if c.config.Verbose {
		fmt.Println("📂 Loading data from JSON files...")
	}

	loader := json.NewLoader()

	recipes, err := loader.LoadCatalog(files["Catalog"])
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}

	recipeRepo := memory.NewRecipeRepository(len(recipes))
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		return fmt.Errorf("failed to load recipes into repository: %w", err)
	}

	problem, err := loader.LoadProblem(files["Problem"], recipeRepo)
	if err != nil {
		return fmt.Errorf("error loading problem: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Recipes: %d\n", len(recipes))
		fmt.Printf("  Supplies: %d\n", len(problem.Inputs))
		fmt.Printf("  Outputs: %d\n", len(problem.Outputs))
		fmt.Printf("  Plan entries: %d\n", len(problem.Plan))
		fmt.Println()
	}

	// Create the session with its build trail
	store := events.NewInMemoryEventStore()
	if c.config.Verbose {
		if err := store.Subscribe(allEventTypes(), &consoleListener{}); err != nil {
			return fmt.Errorf("failed to subscribe trail listener: %w", err)
		}
	}
	session := orchestration.NewPlanningSession(recipeRepo, problem).WithEventStore(store)

	// Screen the requested outputs before building anything
	if c.config.Verbose {
		fmt.Println("🔍 Checking output producibility...")
	}
	if err := session.Validate(ctx); err != nil {
		return fmt.Errorf("problem validation failed: %w", err)
	}
	if c.config.Verbose {
		fmt.Println("✅ All requested outputs are producible")
		fmt.Println()
	}

	// Build the flow graph
	if c.config.Verbose {
		fmt.Println("🔄 Building flow graph...")
	}

	startTime := time.Now()
	report, err := session.BuildGraph(ctx)
	buildTime := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error building flow graph: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Flow graph built in %v (%d vertices, %d edges)\n\n",
			buildTime, report.VertexCount, report.EdgeCount)
	}

	if c.config.Dump {
		if err := output.DumpGraph(os.Stdout, report.Graph); err != nil {
			return fmt.Errorf("error dumping graph: %w", err)
		}
		fmt.Println()
	}

	// Enumerate production chains if requested
	if c.config.Chains {
		if c.config.Verbose {
			fmt.Println("🔍 Enumerating production chains...")
		}

		chainAnalysis, err := analysis.NewChainAnalyzer().AnalyzeChains(ctx, report.Graph, c.config.TopChains)
		if err != nil {
			return fmt.Errorf("error analyzing chains: %w", err)
		}

		fmt.Printf("📊 %s (%d chains total)\n", chainAnalysis.GetChainSummary(), chainAnalysis.TotalChains)
		if c.config.Verbose {
			for _, chain := range chainAnalysis.TopChains {
				fmt.Printf("  %s\n", chain.GetPathSummary())
			}
		}
		fmt.Println()
	}

	// Generate output
	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		BuildTime: buildTime,
	}

	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Planning complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.RecipesFile == "" || c.config.ProblemFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual JSON files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	var catalogPath, problemPath string

	if c.config.ScenarioDir != "" {
		catalogPath = filepath.Join(c.config.ScenarioDir, "catalog.json")
		problemPath = filepath.Join(c.config.ScenarioDir, "problem.json")
	} else {
		catalogPath = c.config.RecipesFile
		problemPath = c.config.ProblemFile
	}

	files := map[string]string{
		"Catalog": catalogPath,
		"Problem": problemPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader(files map[string]string) {
	fmt.Printf("🚀 Production Flow Planner\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Catalog: %s\n", files["Catalog"])
	fmt.Printf("  Problem: %s\n", files["Problem"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

func allEventTypes() []string {
	return []string{
		events.ProblemValidatedEvent,
		events.ProductUnproducibleEvent,
		events.GraphBuildStartedEvent,
		events.FlowRoutedEvent,
		events.WasteRoutedEvent,
		events.SinkAccumulatedEvent,
		events.GraphBuildCompletedEvent,
	}
}

// consoleListener prints build trail events as they are recorded
type consoleListener struct{}

func (l *consoleListener) CanHandle(eventType string) bool { return true }

func (l *consoleListener) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.ProblemValidated:
		fmt.Printf("  ◦ %s: %d inputs, %d outputs, %d plan entries\n",
			event.Type(), data.Inputs, data.Outputs, data.PlanEntries)
	case events.ProductUnproducible:
		fmt.Printf("  ◦ %s: %s\n", event.Type(), data.Product)
	case events.GraphBuildStarted:
		fmt.Printf("  ◦ %s: %d inputs, %d outputs, %d machines\n",
			event.Type(), data.Inputs, data.Outputs, data.Machines)
	case events.FlowRouted:
		fmt.Printf("  ◦ %s: %s -> %s, %s (%s)\n",
			event.Type(), data.From, data.To, data.Product, data.Rate)
	case events.WasteRouted:
		fmt.Printf("  ◦ %s: %s, %s (%s)\n", event.Type(), data.From, data.Product, data.Rate)
	case events.SinkAccumulated:
		fmt.Printf("  ◦ %s: %s (%s)\n", event.Type(), data.Product, data.Rate)
	case events.GraphBuildCompleted:
		fmt.Printf("  ◦ %s: %d vertices, %d edges\n", event.Type(), data.Vertices, data.Edges)
	default:
		fmt.Printf("  ◦ %s\n", event.Type())
	}
	return nil
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Printf(`Production Flow Planner - Flow Graph Construction for Factory Plans

USAGE:
    prodflow -scenario <directory>             # Use scenario directory with JSON files
    prodflow -recipes <file> -problem <file>   # Use individual JSON files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing JSON files
    -recipes <file>     Path to recipe catalog JSON file
    -problem <file>     Path to problem JSON file
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, dot (default: text)
    -verbose            Enable verbose output with the full build trail
    -dump               Print the full vertex and edge listing
    -chains             Enumerate production chains through the graph
    -top-chains <n>     Number of deepest chains to report (default: 3)
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── catalog.json    # Recipe catalog
    └── problem.json    # Supplies, requested outputs and the plan

JSON FILE FORMATS:

catalog.json:
    {
      "recipes": {
        "iron-plate": {
          "name": "Iron Plate",
          "alternate": false,
          "producedIn": ["Constructor"],
          "ingredients": [{"item": "Iron Ingot", "amount": 30}],
          "products": [{"item": "Iron Plate", "amount": 20}]
        }
      }
    }

problem.json:
    {
      "inputs":  [{"product": "Iron Ingot", "rate": 60}],
      "outputs": [{"product": "Iron Plate", "score": 100}],
      "plan":    [{"recipe": "Iron Plate", "scale": 2}]
    }

EXAMPLES:
    # Run a scenario directory
    prodflow -scenario examples/simple_chain -verbose

    # Enumerate the deepest production chains
    prodflow -scenario examples/simple_chain -chains -top-chains 5

    # Generate a Graphviz rendering
    prodflow -scenario examples/simple_chain -format dot -output results/

    # Run with individual files and dump the graph
    prodflow -recipes data/catalog.json -problem data/problem.json -dump
`)
}
