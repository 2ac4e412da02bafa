package entities

import "fmt"

// PlanEntry is one line of a resolved production plan: run this recipe
// at this integer repetition count. The external optimizer chooses the
// counts; the graph builder only consumes them.
type PlanEntry struct {
	Recipe *Recipe
	Scale  int
}

// NewPlanEntry creates a validated PlanEntry
func NewPlanEntry(recipe *Recipe, scale int) (PlanEntry, error) {
	if recipe == nil {
		return PlanEntry{}, fmt.Errorf("plan entry recipe cannot be nil")
	}
	if scale < 0 {
		return PlanEntry{}, fmt.Errorf("plan entry scale for %s cannot be negative, got %d", recipe.Name, scale)
	}
	return PlanEntry{Recipe: recipe, Scale: scale}, nil
}

// Plan is an ordered sequence of plan entries. Order is preserved end
// to end: it is the sole tie-break for allocation between machines.
type Plan []PlanEntry

// Active returns the entries with a non-zero scale, in plan order.
// Zero-scale entries are legal input but produce no machine.
func (p Plan) Active() Plan {
	var active Plan
	for _, entry := range p {
		if entry.Scale > 0 {
			active = append(active, entry)
		}
	}
	return active
}
