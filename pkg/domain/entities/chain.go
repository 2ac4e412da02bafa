package entities

import (
	"fmt"
	"strings"
	"time"
)

// ChainHop represents one vertex on a production chain together with
// the product it forwards to the next hop
type ChainHop struct {
	VertexID int
	Vertex   string
	Product  Product // product carried to the next hop, empty on the last hop
	Rate     Rate
}

// ProductionChain represents one acyclic source-to-sink path through a
// built production graph
type ProductionChain struct {
	Output     Product
	Stages     int // machine vertices on the chain
	Hops       []ChainHop
	Bottleneck string // recipe of the least-satisfied machine, empty if all fully fed
}

// ChainAnalysis contains the results of production chain analysis
type ChainAnalysis struct {
	AnalyzedAt   time.Time
	DeepestChain ProductionChain
	TopChains    []ProductionChain // top N deepest chains
	TotalChains  int               // total number of chains enumerated
}

// GetChainSummary returns a formatted summary of the deepest chain
func (analysis *ChainAnalysis) GetChainSummary() string {
	if len(analysis.TopChains) == 0 {
		return "No production chain found"
	}

	chain := analysis.DeepestChain
	summary := fmt.Sprintf("Deepest chain: %d stages to %s", chain.Stages, chain.Output)
	if chain.Bottleneck != "" {
		summary += fmt.Sprintf(" | Bottleneck: %s", chain.Bottleneck)
	}
	return summary
}

// GetPathSummary returns a formatted single-line trace of the chain
func (chain *ProductionChain) GetPathSummary() string {
	labels := make([]string, len(chain.Hops))
	for i, hop := range chain.Hops {
		labels[i] = hop.Vertex
	}
	return fmt.Sprintf("%d stages: %s", chain.Stages, strings.Join(labels, " -> "))
}

// SatisfiedShare returns the percentage of top chains whose machines
// are all fully fed
func (analysis *ChainAnalysis) SatisfiedShare() float64 {
	if len(analysis.TopChains) == 0 {
		return 0.0
	}

	satisfied := 0
	for _, chain := range analysis.TopChains {
		if chain.Bottleneck == "" {
			satisfied++
		}
	}

	return float64(satisfied) / float64(len(analysis.TopChains)) * 100.0
}
