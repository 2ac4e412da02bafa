package flow

import (
	"fmt"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// GraphVisitor receives every vertex and edge of a production graph
// during a walk. Returning an error stops the walk immediately.
type GraphVisitor interface {
	VisitVertex(vertex *entities.Vertex) error
	VisitEdge(edge *entities.FlowEdge) error
}

// Walk visits all vertices in insertion order, then all edges in creation
// order. Both orders are stable across builds of identical problems, so a
// visitor can render reproducible output.
func Walk(graph *entities.ProductionGraph, visitor GraphVisitor) error {
	if graph == nil {
		return fmt.Errorf("cannot walk nil graph")
	}
	if visitor == nil {
		return fmt.Errorf("cannot walk with nil visitor")
	}

	for _, vertex := range graph.Vertices() {
		if err := visitor.VisitVertex(vertex); err != nil {
			return fmt.Errorf("visit vertex %s: %w", vertex, err)
		}
	}
	for _, edge := range graph.Edges() {
		if err := visitor.VisitEdge(edge); err != nil {
			return fmt.Errorf("visit edge %s: %w", edge, err)
		}
	}
	return nil
}

// VisitorFuncs adapts plain functions to the GraphVisitor interface.
// A nil function skips that element kind.
type VisitorFuncs struct {
	Vertex func(vertex *entities.Vertex) error
	Edge   func(edge *entities.FlowEdge) error
}

// VisitVertex calls the vertex function when set
func (f VisitorFuncs) VisitVertex(vertex *entities.Vertex) error {
	if f.Vertex == nil {
		return nil
	}
	return f.Vertex(vertex)
}

// VisitEdge calls the edge function when set
func (f VisitorFuncs) VisitEdge(edge *entities.FlowEdge) error {
	if f.Edge == nil {
		return nil
	}
	return f.Edge(edge)
}
