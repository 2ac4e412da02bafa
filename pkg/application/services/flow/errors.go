package flow

import (
	"fmt"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// PreconditionError reports a malformed problem rejected before the first
// construction pass: no vertex exists and no partial graph escapes.
// Subject names the offending product or recipe when one is known.
type PreconditionError struct {
	Subject string
	Reason  string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// ConsistencyError reports a conservation violation detected while routing
// flow: a vertex was asked to supply more of a product than it has. It
// indicates a defect in the plan or the builder, never bad user input, so
// construction aborts instead of clamping the allocation.
type ConsistencyError struct {
	Vertex    string
	Product   entities.Product
	Overshoot entities.Rate
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("flow conservation violated at %s: product %s over-allocated by %s",
		e.Vertex, e.Product, e.Overshoot)
}
