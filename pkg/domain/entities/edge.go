package entities

import "fmt"

// FlowEdge moves one product at a fixed rate from a producer vertex to
// a consumer vertex. Edges exist only inside a graph: they are created
// by ProductionGraph.Connect and referenced from both endpoints'
// adjacency lists. An edge never carries a zero or negative rate.
type FlowEdge struct {
	Product Product
	Rate    Rate
	Src     *Vertex
	Dst     *Vertex
}

func (e *FlowEdge) String() string {
	return fmt.Sprintf("%s -> %s: %s (%s)", e.Src, e.Dst, e.Product, e.Rate)
}
