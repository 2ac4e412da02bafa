package dto

import "github.com/prodflow/prodflow/pkg/domain/entities"

// ProblemSpec is one planning problem: the raw supplies available, the
// products the caller wants delivered, and the resolved plan of recipe
// scales. Slice order is meaningful everywhere: it is the only tie-break
// the graph builder applies.
type ProblemSpec struct {
	Inputs  []Supply
	Outputs []Target
	Plan    entities.Plan
}

// Supply is one raw input product and the rate it is available at
type Supply struct {
	Product entities.Product
	Rate    entities.Rate
}

// Target is one requested output product. Score is the optimizer's weight
// for the product; graph construction only cares which products are
// requested, not how heavily.
type Target struct {
	Product entities.Product
	Score   float64
}

// InputProducts returns the supplied products in problem order
func (p *ProblemSpec) InputProducts() []entities.Product {
	products := make([]entities.Product, 0, len(p.Inputs))
	for _, supply := range p.Inputs {
		products = append(products, supply.Product)
	}
	return products
}

// OutputProducts returns the requested products in problem order
func (p *ProblemSpec) OutputProducts() []entities.Product {
	products := make([]entities.Product, 0, len(p.Outputs))
	for _, target := range p.Outputs {
		products = append(products, target.Product)
	}
	return products
}

// RequestsOutput reports whether the problem asks for the product
func (p *ProblemSpec) RequestsOutput(product entities.Product) bool {
	for _, target := range p.Outputs {
		if target.Product == product {
			return true
		}
	}
	return false
}
