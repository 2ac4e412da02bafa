package flow

import (
	"fmt"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// DemandEntry holds the demand state for one machine input
type DemandEntry struct {
	Demanded  entities.Rate
	Remaining entities.Rate
}

// DemandLedger tracks the unmet input demand of every machine in a build,
// keyed by vertex and product. It starts at each machine's full scaled
// demand and is decremented as producers are routed to consumers.
type DemandLedger map[string]*DemandEntry

// NewDemandLedger initializes a ledger with the full input demand of every
// machine in the slice.
func NewDemandLedger(machines []*entities.Vertex) DemandLedger {
	ledger := make(DemandLedger)
	for _, machine := range machines {
		for _, demand := range machine.InputDemands() {
			ledger[ledger.makeKey(machine, demand.Product)] = &DemandEntry{
				Demanded:  demand.Rate,
				Remaining: demand.Rate,
			}
		}
	}
	return ledger
}

// Remaining returns the unmet demand of a machine for a product, zero if
// the machine never demanded it.
func (dl DemandLedger) Remaining(machine *entities.Vertex, product entities.Product) entities.Rate {
	if entry, exists := dl[dl.makeKey(machine, product)]; exists {
		return entry.Remaining
	}
	return entities.ZeroRate
}

// Reduce decrements a machine's remaining demand and returns the new
// remainder. The caller treats a negative remainder as a conservation
// violation; the ledger does not clamp.
func (dl DemandLedger) Reduce(machine *entities.Vertex, product entities.Product, rate entities.Rate) entities.Rate {
	entry, exists := dl[dl.makeKey(machine, product)]
	if !exists {
		return entities.ZeroRate.Sub(rate)
	}
	entry.Remaining = entry.Remaining.Sub(rate)
	return entry.Remaining
}

// Has checks whether the ledger tracks a machine/product pair
func (dl DemandLedger) Has(machine *entities.Vertex, product entities.Product) bool {
	_, exists := dl[dl.makeKey(machine, product)]
	return exists
}

// Size returns the number of tracked machine/product pairs
func (dl DemandLedger) Size() int {
	return len(dl)
}

// TotalDemanded returns the sum of all initial demands
func (dl DemandLedger) TotalDemanded() entities.Rate {
	total := entities.ZeroRate
	for _, entry := range dl {
		total = total.Add(entry.Demanded)
	}
	return total
}

// TotalRemaining returns the sum of all unmet demands
func (dl DemandLedger) TotalRemaining() entities.Rate {
	total := entities.ZeroRate
	for _, entry := range dl {
		total = total.Add(entry.Remaining)
	}
	return total
}

// CoverageRatio returns the met share of total demand (0.0 to 1.0)
func (dl DemandLedger) CoverageRatio() float64 {
	demanded := dl.TotalDemanded()
	if demanded.IsZero() {
		return 0.0
	}
	met := demanded.Sub(dl.TotalRemaining())
	ratio, _ := met.Decimal().Div(demanded.Decimal()).Float64()
	return ratio
}

// makeKey creates a consistent key for a vertex and product
func (dl DemandLedger) makeKey(machine *entities.Vertex, product entities.Product) string {
	return fmt.Sprintf("%d|%s", machine.ID(), product)
}

// String returns a string representation of the ledger for debugging
func (dl DemandLedger) String() string {
	if len(dl) == 0 {
		return "DemandLedger{empty}"
	}

	result := fmt.Sprintf("DemandLedger{%d entries:\n", len(dl))
	for key, entry := range dl {
		result += fmt.Sprintf("  %s: demanded=%s, remaining=%s\n", key, entry.Demanded, entry.Remaining)
	}
	result += "}"
	return result
}
