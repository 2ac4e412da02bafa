package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// ChainAnalyzer enumerates production chains through a built flow graph:
// every acyclic path from a source vertex to a sink vertex. Deep chains
// show where a plan's longest refinement sequences are; a chain's
// bottleneck names the machine that limits it.
type ChainAnalyzer struct{}

// NewChainAnalyzer creates a new chain analyzer
func NewChainAnalyzer() *ChainAnalyzer {
	return &ChainAnalyzer{}
}

// pathStep is one vertex on the active path and the edge it was left by
type pathStep struct {
	vertex  *entities.Vertex
	product entities.Product
	rate    entities.Rate
}

// AnalyzeChains walks every source-to-sink path in the graph and returns
// the deepest chains, at most topN of them. Cycles (including machines
// feeding themselves) are skipped, never followed.
func (ca *ChainAnalyzer) AnalyzeChains(
	ctx context.Context,
	graph *entities.ProductionGraph,
	topN int,
) (*entities.ChainAnalysis, error) {
	if graph == nil {
		return nil, fmt.Errorf("cannot analyze nil graph")
	}
	if topN <= 0 {
		return nil, fmt.Errorf("top chain count must be positive, got %d", topN)
	}

	var chains []entities.ProductionChain
	for _, source := range graph.VerticesOfKind(entities.SourceVertex) {
		onPath := make(map[int]bool)
		ca.followChains(source, nil, onPath, &chains)
	}

	if len(chains) == 0 {
		return &entities.ChainAnalysis{
			AnalyzedAt:  time.Now(),
			TotalChains: 0,
		}, nil
	}

	// Sort chains by depth (descending)
	sort.SliceStable(chains, func(i, j int) bool {
		// Primary sort: machine stages
		if chains[i].Stages != chains[j].Stages {
			return chains[i].Stages > chains[j].Stages
		}
		// Secondary sort: total hops (longer paths first)
		if len(chains[i].Hops) != len(chains[j].Hops) {
			return len(chains[i].Hops) > len(chains[j].Hops)
		}
		// Tertiary sort: output product name
		return chains[i].Output < chains[j].Output
	})

	topChains := chains
	if len(chains) > topN {
		topChains = chains[:topN]
	}

	return &entities.ChainAnalysis{
		AnalyzedAt:   time.Now(),
		DeepestChain: chains[0],
		TopChains:    topChains,
		TotalChains:  len(chains),
	}, nil
}

// followChains extends the current path along every outgoing edge,
// emitting a chain whenever it reaches a sink. The onPath set guards
// against revisiting a vertex already on the active path.
func (ca *ChainAnalyzer) followChains(
	vertex *entities.Vertex,
	path []pathStep,
	onPath map[int]bool,
	chains *[]entities.ProductionChain,
) {
	if vertex.Kind() == entities.SinkVertex {
		*chains = append(*chains, ca.buildChain(vertex, path))
		return
	}

	onPath[vertex.ID()] = true
	for _, edge := range vertex.Out() {
		if onPath[edge.Dst.ID()] {
			continue
		}
		step := pathStep{vertex: vertex, product: edge.Product, rate: edge.Rate}
		ca.followChains(edge.Dst, append(path, step), onPath, chains)
	}
	delete(onPath, vertex.ID())
}

// buildChain finalizes one path ending at a sink
func (ca *ChainAnalyzer) buildChain(sink *entities.Vertex, path []pathStep) entities.ProductionChain {
	hops := make([]entities.ChainHop, 0, len(path)+1)
	stages := 0
	bottleneck := ""
	worstRatio := 1.0

	for _, step := range path {
		hops = append(hops, entities.ChainHop{
			VertexID: step.vertex.ID(),
			Vertex:   step.vertex.String(),
			Product:  step.product,
			Rate:     step.rate,
		})
		if step.vertex.Kind() != entities.MachineVertex {
			continue
		}
		stages++
		if ratio := satisfactionRatio(step.vertex); ratio < worstRatio {
			worstRatio = ratio
			bottleneck = step.vertex.Recipe().Name
		}
	}

	hops = append(hops, entities.ChainHop{
		VertexID: sink.ID(),
		Vertex:   sink.String(),
	})

	return entities.ProductionChain{
		Output:     sink.Product(),
		Stages:     stages,
		Hops:       hops,
		Bottleneck: bottleneck,
	}
}

// satisfactionRatio is the machine's worst input coverage: the smallest
// ratio of incoming flow to scaled demand across its inputs. A fully fed
// machine scores at least 1.0.
func satisfactionRatio(machine *entities.Vertex) float64 {
	worst := 1.0
	for _, demand := range machine.InputDemands() {
		incoming := machine.IncomingRate(demand.Product)
		ratio, _ := incoming.Decimal().Div(demand.Rate.Decimal()).Float64()
		if ratio < worst {
			worst = ratio
		}
	}
	return worst
}
