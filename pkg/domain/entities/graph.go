package entities

import "fmt"

// ProductionGraph owns the vertices and edges of one built production
// line. Vertex and edge lists keep insertion order; every traversal of
// the graph is deterministic because of it. After a build completes
// the graph is read-only by convention.
type ProductionGraph struct {
	vertices []*Vertex
	edges    []*FlowEdge
}

// NewProductionGraph creates an empty graph
func NewProductionGraph() *ProductionGraph {
	return &ProductionGraph{}
}

// AddVertex appends the vertex and assigns its graph index.
func (g *ProductionGraph) AddVertex(v *Vertex) (*Vertex, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot add nil vertex")
	}
	if v.id != -1 {
		return nil, fmt.Errorf("vertex %s already belongs to a graph", v)
	}
	v.id = len(g.vertices)
	g.vertices = append(g.vertices, v)
	return v, nil
}

// Connect creates a flow edge from src to dst and wires it into both
// endpoints. The variant capabilities are checked here: flow may only
// leave sources and machines and may only enter machines, sinks and
// waste vertices. The rate is rounded to two decimal places and must
// be positive; zero-rate edges are never represented.
func (g *ProductionGraph) Connect(src, dst *Vertex, product Product, rate Rate) (*FlowEdge, error) {
	if src == nil || dst == nil {
		return nil, fmt.Errorf("connect requires both endpoints")
	}
	if src.id < 0 || dst.id < 0 {
		return nil, fmt.Errorf("connect requires vertices added to the graph")
	}
	if !src.acceptsOutgoing() {
		return nil, fmt.Errorf("%s cannot emit flow", src)
	}
	if !dst.acceptsIncoming() {
		return nil, fmt.Errorf("%s cannot accept flow", dst)
	}
	rate = rate.Round2()
	if !rate.IsPositive() {
		return nil, fmt.Errorf("flow rate from %s to %s must be positive, got %s", src, dst, rate)
	}

	edge := &FlowEdge{Product: product, Rate: rate, Src: src, Dst: dst}
	g.edges = append(g.edges, edge)
	src.out = append(src.out, edge)
	dst.in = append(dst.in, edge)

	switch dst.kind {
	case SinkVertex, WasteVertex:
		dst.total = dst.total.Add(rate)
	}

	return edge, nil
}

// Vertices returns all vertices in insertion order.
func (g *ProductionGraph) Vertices() []*Vertex {
	return g.vertices
}

// Edges returns all edges in creation order.
func (g *ProductionGraph) Edges() []*FlowEdge {
	return g.edges
}

func (g *ProductionGraph) VertexCount() int {
	return len(g.vertices)
}

func (g *ProductionGraph) EdgeCount() int {
	return len(g.edges)
}

// VerticesOfKind returns the vertices of one variant in insertion order.
func (g *ProductionGraph) VerticesOfKind(kind VertexKind) []*Vertex {
	var matched []*Vertex
	for _, v := range g.vertices {
		if v.kind == kind {
			matched = append(matched, v)
		}
	}
	return matched
}

// SinkFor returns the sink vertex for a requested output product.
func (g *ProductionGraph) SinkFor(product Product) (*Vertex, bool) {
	for _, v := range g.vertices {
		if v.kind == SinkVertex && v.anchor == product {
			return v, true
		}
	}
	return nil, false
}
