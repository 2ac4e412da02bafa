package events

import (
	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// GraphStream collects the lifecycle events of a build. Per-product
// events stream under the product's own name.
const GraphStream = "graph"

const (
	ProblemValidatedEvent    = "problem.validated"
	ProductUnproducibleEvent = "product.unproducible"

	GraphBuildStartedEvent   = "graph.build.started"
	FlowRoutedEvent          = "flow.routed"
	WasteRoutedEvent         = "waste.routed"
	SinkAccumulatedEvent     = "sink.accumulated"
	GraphBuildCompletedEvent = "graph.build.completed"
)

type ProblemValidated struct {
	Inputs      int `json:"inputs"`
	Outputs     int `json:"outputs"`
	PlanEntries int `json:"plan_entries"`
}

type ProductUnproducible struct {
	Product entities.Product `json:"product"`
}

type GraphBuildStarted struct {
	Inputs   int `json:"inputs"`
	Outputs  int `json:"outputs"`
	Machines int `json:"machines"`
}

type FlowRouted struct {
	From    string           `json:"from"`
	To      string           `json:"to"`
	Product entities.Product `json:"product"`
	Rate    entities.Rate    `json:"rate"`
}

type WasteRouted struct {
	From    string           `json:"from"`
	Product entities.Product `json:"product"`
	Rate    entities.Rate    `json:"rate"`
}

type SinkAccumulated struct {
	Product entities.Product `json:"product"`
	Rate    entities.Rate    `json:"rate"`
}

type GraphBuildCompleted struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

func NewProblemValidatedEvent(inputs, outputs, planEntries int) Event {
	return NewEvent(ProblemValidatedEvent, GraphStream, ProblemValidated{
		Inputs:      inputs,
		Outputs:     outputs,
		PlanEntries: planEntries,
	})
}

func NewProductUnproducibleEvent(product entities.Product) Event {
	return NewEvent(ProductUnproducibleEvent, string(product), ProductUnproducible{Product: product})
}

func NewGraphBuildStartedEvent(inputs, outputs, machines int) Event {
	return NewEvent(GraphBuildStartedEvent, GraphStream, GraphBuildStarted{
		Inputs:   inputs,
		Outputs:  outputs,
		Machines: machines,
	})
}

func NewFlowRoutedEvent(from, to string, product entities.Product, rate entities.Rate) Event {
	return NewEvent(FlowRoutedEvent, string(product), FlowRouted{
		From:    from,
		To:      to,
		Product: product,
		Rate:    rate,
	})
}

func NewWasteRoutedEvent(from string, product entities.Product, rate entities.Rate) Event {
	return NewEvent(WasteRoutedEvent, string(product), WasteRouted{
		From:    from,
		Product: product,
		Rate:    rate,
	})
}

func NewSinkAccumulatedEvent(product entities.Product, rate entities.Rate) Event {
	return NewEvent(SinkAccumulatedEvent, string(product), SinkAccumulated{
		Product: product,
		Rate:    rate,
	})
}

func NewGraphBuildCompletedEvent(vertices, edges int) Event {
	return NewEvent(GraphBuildCompletedEvent, GraphStream, GraphBuildCompleted{
		Vertices: vertices,
		Edges:    edges,
	})
}
