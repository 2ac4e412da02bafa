package entities

import "fmt"

// VertexKind tags the four vertex variants of a production graph
type VertexKind int

const (
	SourceVertex VertexKind = iota
	MachineVertex
	SinkVertex
	WasteVertex
)

// String method for VertexKind enum
func (k VertexKind) String() string {
	switch k {
	case SourceVertex:
		return "source"
	case MachineVertex:
		return "machine"
	case SinkVertex:
		return "sink"
	case WasteVertex:
		return "waste"
	default:
		return "unknown"
	}
}

// Vertex is a node in a production graph. Exactly one variant applies:
//   - source: injects a fixed external supply of one product, outgoing only
//   - machine: runs a recipe at an integer scale, incoming and outgoing
//   - sink: accumulates a requested output product, incoming only
//   - waste: absorbs unconsumed leftover of one product, incoming only
//
// Vertices are created by the variant constructors and wired together
// exclusively through ProductionGraph.Connect, which enforces the
// incoming/outgoing capabilities above.
type Vertex struct {
	id     int
	kind   VertexKind
	anchor Product // source/sink/waste product
	supply Rate    // source only
	total  Rate    // sink: accumulated, waste: discarded
	recipe *Recipe // machine only
	scale  int     // machine only
	in     []*FlowEdge
	out    []*FlowEdge
}

// NewSourceVertex creates a source injecting the product at the supply rate
func NewSourceVertex(product Product, supply Rate) (*Vertex, error) {
	if product == "" {
		return nil, fmt.Errorf("source product name cannot be empty")
	}
	if supply.IsNegative() {
		return nil, fmt.Errorf("source supply for %s cannot be negative, got %s", product, supply)
	}
	return &Vertex{id: -1, kind: SourceVertex, anchor: product, supply: supply.Round2()}, nil
}

// NewMachineVertex creates a machine running the recipe at the given scale
func NewMachineVertex(recipe *Recipe, scale int) (*Vertex, error) {
	if recipe == nil {
		return nil, fmt.Errorf("machine recipe cannot be nil")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("machine scale for %s must be positive, got %d", recipe.Name, scale)
	}
	return &Vertex{id: -1, kind: MachineVertex, recipe: recipe, scale: scale}, nil
}

// NewSinkVertex creates a sink collecting one requested output product
func NewSinkVertex(product Product) (*Vertex, error) {
	if product == "" {
		return nil, fmt.Errorf("sink product name cannot be empty")
	}
	return &Vertex{id: -1, kind: SinkVertex, anchor: product}, nil
}

// NewWasteVertex creates a waste vertex absorbing one product's leftover
func NewWasteVertex(product Product) (*Vertex, error) {
	if product == "" {
		return nil, fmt.Errorf("waste product name cannot be empty")
	}
	return &Vertex{id: -1, kind: WasteVertex, anchor: product}, nil
}

// ID is the vertex's position in its graph's vertex list, -1 before AddVertex.
func (v *Vertex) ID() int          { return v.id }
func (v *Vertex) Kind() VertexKind { return v.kind }

// Product is the anchored product of a source, sink or waste vertex.
// Machines touch many products and return the empty Product.
func (v *Vertex) Product() Product { return v.anchor }

// Supply is the external injection rate of a source vertex.
func (v *Vertex) Supply() Rate { return v.supply }

// Recipe returns the machine's recipe, nil for other variants.
func (v *Vertex) Recipe() *Recipe { return v.recipe }

// Scale returns the machine's repetition count, 0 for other variants.
func (v *Vertex) Scale() int { return v.scale }

// Accumulated is the total rate routed into a sink vertex.
func (v *Vertex) Accumulated() Rate { return v.total }

// Discarded is the total rate routed into a waste vertex.
func (v *Vertex) Discarded() Rate { return v.total }

// In returns the incoming edges in creation order.
func (v *Vertex) In() []*FlowEdge { return v.in }

// Out returns the outgoing edges in creation order.
func (v *Vertex) Out() []*FlowEdge { return v.out }

// acceptsIncoming reports whether the variant may take incoming flow.
func (v *Vertex) acceptsIncoming() bool {
	return v.kind == MachineVertex || v.kind == SinkVertex || v.kind == WasteVertex
}

// acceptsOutgoing reports whether the variant may emit flow.
func (v *Vertex) acceptsOutgoing() bool {
	return v.kind == SourceVertex || v.kind == MachineVertex
}

// InputDemand is the machine's required rate for a product: recipe
// input rate times scale. Zero for products the recipe does not consume
// and for non-machine vertices.
func (v *Vertex) InputDemand(product Product) Rate {
	if v.kind != MachineVertex {
		return ZeroRate
	}
	rate, ok := v.recipe.InputRate(product)
	if !ok {
		return ZeroRate
	}
	return rate.MulInt(v.scale)
}

// InputDemands returns the machine's scaled input requirements in recipe order.
func (v *Vertex) InputDemands() []Ingredient {
	if v.kind != MachineVertex {
		return nil
	}
	demands := make([]Ingredient, len(v.recipe.Inputs))
	for i, ing := range v.recipe.Inputs {
		demands[i] = Ingredient{Product: ing.Product, Rate: ing.Rate.MulInt(v.scale)}
	}
	return demands
}

// OutputAvailability is the machine's produced rate for a product:
// recipe output rate times scale.
func (v *Vertex) OutputAvailability(product Product) Rate {
	if v.kind != MachineVertex {
		return ZeroRate
	}
	rate, ok := v.recipe.OutputRate(product)
	if !ok {
		return ZeroRate
	}
	return rate.MulInt(v.scale)
}

// OutputAvailabilities returns the machine's scaled outputs in recipe order.
func (v *Vertex) OutputAvailabilities() []Ingredient {
	if v.kind != MachineVertex {
		return nil
	}
	outputs := make([]Ingredient, len(v.recipe.Outputs))
	for i, ing := range v.recipe.Outputs {
		outputs[i] = Ingredient{Product: ing.Product, Rate: ing.Rate.MulInt(v.scale)}
	}
	return outputs
}

// IncomingRate sums the incoming edge rates carrying the product.
func (v *Vertex) IncomingRate(product Product) Rate {
	total := ZeroRate
	for _, edge := range v.in {
		if edge.Product == product {
			total = total.Add(edge.Rate)
		}
	}
	return total
}

// OutgoingRate sums the outgoing edge rates carrying the product.
func (v *Vertex) OutgoingRate(product Product) Rate {
	total := ZeroRate
	for _, edge := range v.out {
		if edge.Product == product {
			total = total.Add(edge.Rate)
		}
	}
	return total
}

// Satisfied reports whether every input product of a machine receives
// at least its scaled demand. It is recomputed from the current edges
// on every call, so it stays correct across plan overrides and
// rebuilds. Non-machine vertices are trivially satisfied.
func (v *Vertex) Satisfied() bool {
	if v.kind != MachineVertex {
		return true
	}
	for _, demand := range v.InputDemands() {
		if v.IncomingRate(demand.Product).Less(demand.Rate) {
			return false
		}
	}
	return true
}

func (v *Vertex) String() string {
	switch v.kind {
	case SourceVertex:
		return fmt.Sprintf("source %s", v.anchor)
	case MachineVertex:
		return fmt.Sprintf("machine %s x%d", v.recipe.Name, v.scale)
	case SinkVertex:
		return fmt.Sprintf("sink %s", v.anchor)
	case WasteVertex:
		return fmt.Sprintf("waste %s", v.anchor)
	default:
		return "unknown vertex"
	}
}
