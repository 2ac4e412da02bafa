package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	BuildTime time.Duration
}

// Generate renders a build report in the configured format
func Generate(report *dto.BuildReport, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "dot":
		return generateDOTOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints the human-readable summary, optionally
// saving a copy alongside the other artifacts
func generateTextOutput(report *dto.BuildReport, config Config) error {
	summary := RenderSummary(report, config.BuildTime)
	fmt.Print(summary)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "flow_graph.txt")
		if err := os.WriteFile(filename, []byte(summary), 0644); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}

		if config.Verbose {
			fmt.Printf("💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// jsonDocument is the JSON export: the report summary plus the graph's
// full vertex and edge listing for visualization consumers
type jsonDocument struct {
	Summary  *dto.BuildReport `json:"summary"`
	Vertices []jsonVertex     `json:"vertices"`
	Edges    []jsonEdge       `json:"edges"`
}

// jsonVertex carries a vertex id, its kind tag, and the defining fields
// of that kind. Fields belonging to other kinds are omitted.
type jsonVertex struct {
	ID          int               `json:"id"`
	Kind        string            `json:"kind"`
	Product     entities.Product  `json:"product,omitempty"`
	Supply      *entities.Rate    `json:"supply,omitempty"`
	Recipe      string            `json:"recipe,omitempty"`
	Building    entities.Building `json:"building,omitempty"`
	Scale       int               `json:"scale,omitempty"`
	Satisfied   *bool             `json:"satisfied,omitempty"`
	Accumulated *entities.Rate    `json:"accumulated,omitempty"`
	Discarded   *entities.Rate    `json:"discarded,omitempty"`
}

type jsonEdge struct {
	Product entities.Product `json:"product"`
	Rate    entities.Rate    `json:"rate"`
	Src     int              `json:"src"`
	Dst     int              `json:"dst"`
}

func buildJSONDocument(report *dto.BuildReport) jsonDocument {
	doc := jsonDocument{Summary: report}
	if report.Graph == nil {
		return doc
	}

	for _, vertex := range report.Graph.Vertices() {
		record := jsonVertex{ID: vertex.ID(), Kind: vertex.Kind().String()}
		switch vertex.Kind() {
		case entities.SourceVertex:
			record.Product = vertex.Product()
			supply := vertex.Supply()
			record.Supply = &supply
		case entities.MachineVertex:
			record.Recipe = vertex.Recipe().Name
			record.Building = vertex.Recipe().Building
			record.Scale = vertex.Scale()
			satisfied := vertex.Satisfied()
			record.Satisfied = &satisfied
		case entities.SinkVertex:
			record.Product = vertex.Product()
			accumulated := vertex.Accumulated()
			record.Accumulated = &accumulated
		case entities.WasteVertex:
			record.Product = vertex.Product()
			discarded := vertex.Discarded()
			record.Discarded = &discarded
		}
		doc.Vertices = append(doc.Vertices, record)
	}

	for _, edge := range report.Graph.Edges() {
		doc.Edges = append(doc.Edges, jsonEdge{
			Product: edge.Product,
			Rate:    edge.Rate,
			Src:     edge.Src.ID(),
			Dst:     edge.Dst.ID(),
		})
	}
	return doc
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.BuildReport, config Config) error {
	jsonData, err := json.MarshalIndent(buildJSONDocument(report), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
	} else {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "flow_graph.json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write JSON file: %w", err)
		}

		if config.Verbose {
			fmt.Printf("💾 JSON results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateDOTOutput renders the graph for Graphviz
func generateDOTOutput(report *dto.BuildReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for dot format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "flow_graph.dot")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create DOT file: %w", err)
	}
	defer file.Close()

	if err := WriteDOT(file, report.Graph, "Production Flow"); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 DOT graph saved to: %s\n", filename)
	}

	return nil
}

// RenderSummary renders the report as a human-readable text block
func RenderSummary(report *dto.BuildReport, buildTime time.Duration) string {
	var sb strings.Builder

	sb.WriteString("📊 Flow Graph Summary\n")
	sb.WriteString("=====================\n\n")
	fmt.Fprintf(&sb, "Vertices: %d\n", report.VertexCount)
	fmt.Fprintf(&sb, "Edges: %d\n", report.EdgeCount)
	fmt.Fprintf(&sb, "Machines Satisfied: %d/%d\n", report.SatisfiedMachines(), len(report.Machines))
	fmt.Fprintf(&sb, "Build Time: %v\n\n", buildTime)

	if len(report.Machines) > 0 {
		sb.WriteString("🏭 Machines:\n")
		fmt.Fprintf(&sb, "%-25s %-15s %-8s %-10s\n",
			"Recipe", "Building", "Scale", "Satisfied")
		fmt.Fprintf(&sb, "%-25s %-15s %-8s %-10s\n",
			"-------------------------", "---------------", "--------", "----------")

		for _, machine := range report.Machines {
			fmt.Fprintf(&sb, "%-25s %-15s %-8d %-10t\n",
				machine.Recipe, machine.Building, machine.Scale, machine.Satisfied)
		}
		sb.WriteString("\n")
	}

	if len(report.Delivered) > 0 {
		sb.WriteString("📦 Delivered:\n")
		fmt.Fprintf(&sb, "%-25s %-12s\n", "Product", "Rate")
		fmt.Fprintf(&sb, "%-25s %-12s\n", "-------------------------", "------------")

		for _, delivery := range report.Delivered {
			fmt.Fprintf(&sb, "%-25s %-12s\n", delivery.Product, delivery.Rate)
		}
		sb.WriteString("\n")
	}

	if len(report.Wasted) > 0 {
		sb.WriteString("⚠️  Wasted:\n")
		fmt.Fprintf(&sb, "%-25s %-12s\n", "Product", "Rate")
		fmt.Fprintf(&sb, "%-25s %-12s\n", "-------------------------", "------------")

		for _, waste := range report.Wasted {
			fmt.Fprintf(&sb, "%-25s %-12s\n", waste.Product, waste.Rate)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// DumpGraph writes the graph's full vertex and edge listing, one element
// per line, in graph order
func DumpGraph(w io.Writer, graph *entities.ProductionGraph) error {
	if graph == nil {
		return fmt.Errorf("cannot dump nil graph")
	}

	for _, vertex := range graph.Vertices() {
		var err error
		switch vertex.Kind() {
		case entities.SourceVertex:
			_, err = fmt.Fprintf(w, "[%d] %s supply=%s\n", vertex.ID(), vertex, vertex.Supply())
		case entities.MachineVertex:
			_, err = fmt.Fprintf(w, "[%d] %s building=%s satisfied=%t\n",
				vertex.ID(), vertex, vertex.Recipe().Building, vertex.Satisfied())
		case entities.SinkVertex:
			_, err = fmt.Fprintf(w, "[%d] %s accumulated=%s\n", vertex.ID(), vertex, vertex.Accumulated())
		case entities.WasteVertex:
			_, err = fmt.Fprintf(w, "[%d] %s discarded=%s\n", vertex.ID(), vertex, vertex.Discarded())
		}
		if err != nil {
			return err
		}
	}

	for _, edge := range graph.Edges() {
		if _, err := fmt.Fprintf(w, "%d -> %d: %s (%s)\n",
			edge.Src.ID(), edge.Dst.ID(), edge.Product, edge.Rate); err != nil {
			return err
		}
	}

	return nil
}
