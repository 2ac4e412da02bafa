package dto

import (
	"time"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// BuildReport contains the complete output of a graph construction run.
// The graph itself is excluded from JSON renderings; the summaries carry
// everything a report consumer needs.
type BuildReport struct {
	Graph       *entities.ProductionGraph `json:"-"`
	Delivered   []Delivery                `json:"delivered"`
	Wasted      []Delivery                `json:"wasted"`
	Machines    []MachineStatus           `json:"machines"`
	VertexCount int                       `json:"vertex_count"`
	EdgeCount   int                       `json:"edge_count"`
	PlannedAt   time.Time                 `json:"planned_at"`
}

// Delivery is an accumulated rate of one product at a sink or waste vertex
type Delivery struct {
	Product entities.Product `json:"product"`
	Rate    entities.Rate    `json:"rate"`
}

// MachineStatus summarizes one machine vertex after allocation
type MachineStatus struct {
	Recipe    string            `json:"recipe"`
	Building  entities.Building `json:"building"`
	Scale     int               `json:"scale"`
	Satisfied bool              `json:"satisfied"`
}

// DeliveredRate returns the accumulated sink rate for a product, zero if
// the product was never delivered.
func (r *BuildReport) DeliveredRate(product entities.Product) entities.Rate {
	for _, d := range r.Delivered {
		if d.Product == product {
			return d.Rate
		}
	}
	return entities.ZeroRate
}

// WastedRate returns the total discarded rate for a product across all
// waste vertices.
func (r *BuildReport) WastedRate(product entities.Product) entities.Rate {
	total := entities.ZeroRate
	for _, w := range r.Wasted {
		if w.Product == product {
			total = total.Add(w.Rate)
		}
	}
	return total
}

// SatisfiedMachines counts machines whose every input demand is met
func (r *BuildReport) SatisfiedMachines() int {
	count := 0
	for _, m := range r.Machines {
		if m.Satisfied {
			count++
		}
	}
	return count
}
