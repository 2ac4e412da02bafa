package flow

import (
	"context"
	"fmt"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/domain/repositories"
)

// GraphBuilder turns a resolved plan into a populated production graph.
// Every allocation decision follows the order supplies, targets, and plan
// entries were given in; the builder never sorts, randomizes, or splits
// flow proportionally, so identical ordered inputs always produce
// identical graphs.
type GraphBuilder struct {
	catalog repositories.RecipeRepository
}

// NewGraphBuilder creates a graph builder over a recipe catalog
func NewGraphBuilder(catalog repositories.RecipeRepository) *GraphBuilder {
	return &GraphBuilder{catalog: catalog}
}

// Build constructs the flow graph for a problem in four ordered passes:
// vertex instantiation, source allocation, production routing, and
// completion. A precondition failure rejects the problem before any
// vertex exists; a conservation failure aborts with a ConsistencyError
// and no graph is returned.
func (b *GraphBuilder) Build(ctx context.Context, problem *dto.ProblemSpec) (*entities.ProductionGraph, error) {
	if err := b.validateProblem(problem); err != nil {
		return nil, err
	}

	graph := entities.NewProductionGraph()

	// Pass 1: one source per supply, one sink per target, one machine per
	// active plan entry, in problem order
	sources, machines, err := b.instantiateVertices(graph, problem)
	if err != nil {
		return nil, err
	}

	// Pass 2: feed machines from sources at full demand, waste the rest
	if err := b.allocateSources(graph, sources, machines); err != nil {
		return nil, err
	}

	// Pass 3: route machine outputs to consumers, then sinks, then waste
	if err := b.routeProduction(graph, problem, machines); err != nil {
		return nil, err
	}

	// Pass 4: the graph is complete
	return graph, nil
}

// validateProblem rejects malformed problems before construction begins.
// Every rejection is a *PreconditionError.
func (b *GraphBuilder) validateProblem(problem *dto.ProblemSpec) error {
	if problem == nil {
		return &PreconditionError{Reason: "problem cannot be nil"}
	}

	seenSupplies := make(map[entities.Product]bool, len(problem.Inputs))
	for _, supply := range problem.Inputs {
		if supply.Product == "" {
			return &PreconditionError{Reason: "supply product name cannot be empty"}
		}
		if supply.Rate.IsNegative() {
			return &PreconditionError{
				Subject: string(supply.Product),
				Reason:  fmt.Sprintf("supply rate for %s cannot be negative, got %s", supply.Product, supply.Rate),
			}
		}
		if seenSupplies[supply.Product] {
			return &PreconditionError{
				Subject: string(supply.Product),
				Reason:  fmt.Sprintf("duplicate supply product %s", supply.Product),
			}
		}
		seenSupplies[supply.Product] = true
	}

	seenTargets := make(map[entities.Product]bool, len(problem.Outputs))
	for _, target := range problem.Outputs {
		if target.Product == "" {
			return &PreconditionError{Reason: "output product name cannot be empty"}
		}
		if seenTargets[target.Product] {
			return &PreconditionError{
				Subject: string(target.Product),
				Reason:  fmt.Sprintf("duplicate output product %s", target.Product),
			}
		}
		seenTargets[target.Product] = true
	}

	for _, entry := range problem.Plan {
		if entry.Recipe == nil {
			return &PreconditionError{Reason: "plan entry recipe cannot be nil"}
		}
		if entry.Scale < 0 {
			return &PreconditionError{
				Subject: entry.Recipe.Name,
				Reason:  fmt.Sprintf("plan entry scale for %s cannot be negative, got %d", entry.Recipe.Name, entry.Scale),
			}
		}
		if _, err := b.catalog.GetRecipe(entry.Recipe.Name); err != nil {
			return &PreconditionError{
				Subject: entry.Recipe.Name,
				Reason:  fmt.Sprintf("plan references unknown recipe %s", entry.Recipe.Name),
			}
		}
	}

	return nil
}

func (b *GraphBuilder) instantiateVertices(
	graph *entities.ProductionGraph,
	problem *dto.ProblemSpec,
) ([]*entities.Vertex, []*entities.Vertex, error) {
	sources := make([]*entities.Vertex, 0, len(problem.Inputs))
	for _, supply := range problem.Inputs {
		source, err := entities.NewSourceVertex(supply.Product, supply.Rate)
		if err != nil {
			return nil, nil, err
		}
		if _, err := graph.AddVertex(source); err != nil {
			return nil, nil, err
		}
		sources = append(sources, source)
	}

	for _, target := range problem.Outputs {
		sink, err := entities.NewSinkVertex(target.Product)
		if err != nil {
			return nil, nil, err
		}
		if _, err := graph.AddVertex(sink); err != nil {
			return nil, nil, err
		}
	}

	active := problem.Plan.Active()
	machines := make([]*entities.Vertex, 0, len(active))
	for _, entry := range active {
		machine, err := entities.NewMachineVertex(entry.Recipe, entry.Scale)
		if err != nil {
			return nil, nil, err
		}
		if _, err := graph.AddVertex(machine); err != nil {
			return nil, nil, err
		}
		machines = append(machines, machine)
	}

	return sources, machines, nil
}

// allocateSources feeds every machine that consumes a source's product at
// the machine's full scaled demand. A source handing out more than its
// supply is a fatal consistency violation; a positive remainder flows to
// one waste vertex per source.
func (b *GraphBuilder) allocateSources(
	graph *entities.ProductionGraph,
	sources []*entities.Vertex,
	machines []*entities.Vertex,
) error {
	for _, source := range sources {
		product := source.Product()
		assigned := entities.ZeroRate

		for _, machine := range machines {
			demand := machine.InputDemand(product)
			if !demand.IsPositive() {
				continue
			}
			if _, err := graph.Connect(source, machine, product, demand); err != nil {
				return err
			}
			assigned = assigned.Add(demand)
		}

		remainder := source.Supply().Sub(assigned)
		if remainder.IsNegative() {
			return &ConsistencyError{
				Vertex:    source.String(),
				Product:   product,
				Overshoot: assigned.Sub(source.Supply()),
			}
		}
		if remainder.IsPositive() {
			if err := b.routeToWaste(graph, source, product, remainder); err != nil {
				return err
			}
		}
	}
	return nil
}

// routeProduction walks producers in plan order and their outputs in
// recipe order, granting each consumer min(remaining output, remaining
// demand) in plan order. Leftover output goes in full to the product's
// sink when the product was requested, otherwise to a waste vertex
// dedicated to this producer and product.
func (b *GraphBuilder) routeProduction(
	graph *entities.ProductionGraph,
	problem *dto.ProblemSpec,
	machines []*entities.Vertex,
) error {
	ledger := NewDemandLedger(machines)

	for _, producer := range machines {
		for _, output := range producer.Recipe().Outputs {
			remaining := output.Rate.MulInt(producer.Scale())

			for _, consumer := range machines {
				if !remaining.IsPositive() {
					break
				}
				demand := ledger.Remaining(consumer, output.Product)
				if !demand.IsPositive() {
					continue
				}

				grant := remaining.Min(demand)
				if _, err := graph.Connect(producer, consumer, output.Product, grant); err != nil {
					return err
				}
				if ledger.Reduce(consumer, output.Product, grant).IsNegative() {
					return &ConsistencyError{
						Vertex:    consumer.String(),
						Product:   output.Product,
						Overshoot: grant.Sub(demand),
					}
				}
				remaining = remaining.Sub(grant)
				if remaining.IsNegative() {
					return &ConsistencyError{
						Vertex:    producer.String(),
						Product:   output.Product,
						Overshoot: entities.ZeroRate.Sub(remaining),
					}
				}
			}

			if !remaining.IsPositive() {
				continue
			}
			if problem.RequestsOutput(output.Product) {
				sink, ok := graph.SinkFor(output.Product)
				if !ok {
					return fmt.Errorf("no sink vertex for requested product %s", output.Product)
				}
				if _, err := graph.Connect(producer, sink, output.Product, remaining); err != nil {
					return err
				}
			} else if err := b.routeToWaste(graph, producer, output.Product, remaining); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *GraphBuilder) routeToWaste(
	graph *entities.ProductionGraph,
	from *entities.Vertex,
	product entities.Product,
	rate entities.Rate,
) error {
	waste, err := entities.NewWasteVertex(product)
	if err != nil {
		return err
	}
	if _, err := graph.AddVertex(waste); err != nil {
		return err
	}
	_, err = graph.Connect(from, waste, product, rate)
	return err
}
