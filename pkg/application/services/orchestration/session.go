package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/prodflow/prodflow/pkg/application/dto"
	"github.com/prodflow/prodflow/pkg/application/services/flow"
	"github.com/prodflow/prodflow/pkg/domain/entities"
	"github.com/prodflow/prodflow/pkg/domain/repositories"
	"github.com/prodflow/prodflow/pkg/domain/services"
	"github.com/prodflow/prodflow/pkg/infrastructure/events"
)

// UnproducibleError reports the first requested output that feasibility
// screening rejected.
type UnproducibleError struct {
	Product entities.Product
}

func (e *UnproducibleError) Error() string {
	return fmt.Sprintf("output %s cannot be produced from the given inputs with the loaded catalog",
		e.Product)
}

// PlanningSession runs one problem through feasibility screening and
// graph construction. A session is scoped to its problem: feasibility
// verdicts memoized during Validate never outlive the call, and a new
// problem gets a new session.
type PlanningSession struct {
	catalog    repositories.RecipeRepository
	problem    *dto.ProblemSpec
	eventStore events.EventStore
}

// NewPlanningSession creates a session for one problem
func NewPlanningSession(catalog repositories.RecipeRepository, problem *dto.ProblemSpec) *PlanningSession {
	return &PlanningSession{catalog: catalog, problem: problem}
}

// WithEventStore records the session's build trail to the given store
func (s *PlanningSession) WithEventStore(store events.EventStore) *PlanningSession {
	s.eventStore = store
	return s
}

// OverridePlan swaps the problem's plan, keeping supplies and outputs.
// The next BuildGraph call routes flow for the new plan.
func (s *PlanningSession) OverridePlan(plan entities.Plan) {
	s.problem.Plan = plan
}

// Validate screens every requested output for producibility before any
// graph work happens. Each call builds a fresh checker over the loaded
// catalog, so verdicts cannot leak between validations.
func (s *PlanningSession) Validate(ctx context.Context) error {
	if s.problem == nil {
		return fmt.Errorf("planning session has no problem")
	}

	recipes, err := s.catalog.GetAllRecipes()
	if err != nil {
		return fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	checker := services.NewFeasibilityChecker(recipes, s.problem.InputProducts())
	if product, found := checker.FirstUnproducible(s.problem.OutputProducts()); found {
		if err := s.publish(events.NewProductUnproducibleEvent(product)); err != nil {
			return err
		}
		return &UnproducibleError{Product: product}
	}

	return s.publish(events.NewProblemValidatedEvent(
		len(s.problem.Inputs), len(s.problem.Outputs), len(s.problem.Plan)))
}

// BuildGraph constructs the flow graph for the session's problem and
// summarizes it. With an event store attached, the build trail is
// recorded: every routed flow in creation order, then sink totals, then
// the completion marker.
func (s *PlanningSession) BuildGraph(ctx context.Context) (*dto.BuildReport, error) {
	if s.problem == nil {
		return nil, fmt.Errorf("planning session has no problem")
	}

	if err := s.publish(events.NewGraphBuildStartedEvent(
		len(s.problem.Inputs), len(s.problem.Outputs), len(s.problem.Plan.Active()))); err != nil {
		return nil, err
	}

	graph, err := flow.NewGraphBuilder(s.catalog).Build(ctx, s.problem)
	if err != nil {
		return nil, fmt.Errorf("failed to build flow graph: %w", err)
	}

	if err := s.publishTrail(graph); err != nil {
		return nil, err
	}

	return s.summarize(graph), nil
}

// publishTrail replays the finished graph onto the event store. Edges
// are announced in creation order, which is the order the builder
// routed them in.
func (s *PlanningSession) publishTrail(graph *entities.ProductionGraph) error {
	if s.eventStore == nil {
		return nil
	}

	err := flow.Walk(graph, flow.VisitorFuncs{
		Edge: func(edge *entities.FlowEdge) error {
			if edge.Dst.Kind() == entities.WasteVertex {
				return s.publish(events.NewWasteRoutedEvent(edge.Src.String(), edge.Product, edge.Rate))
			}
			return s.publish(events.NewFlowRoutedEvent(edge.Src.String(), edge.Dst.String(), edge.Product, edge.Rate))
		},
	})
	if err != nil {
		return err
	}

	for _, sink := range graph.VerticesOfKind(entities.SinkVertex) {
		if err := s.publish(events.NewSinkAccumulatedEvent(sink.Product(), sink.Accumulated())); err != nil {
			return err
		}
	}

	return s.publish(events.NewGraphBuildCompletedEvent(graph.VertexCount(), graph.EdgeCount()))
}

func (s *PlanningSession) summarize(graph *entities.ProductionGraph) *dto.BuildReport {
	report := &dto.BuildReport{
		Graph:       graph,
		VertexCount: graph.VertexCount(),
		EdgeCount:   graph.EdgeCount(),
		PlannedAt:   time.Now(),
	}

	for _, sink := range graph.VerticesOfKind(entities.SinkVertex) {
		report.Delivered = append(report.Delivered, dto.Delivery{
			Product: sink.Product(),
			Rate:    sink.Accumulated(),
		})
	}
	for _, waste := range graph.VerticesOfKind(entities.WasteVertex) {
		report.Wasted = append(report.Wasted, dto.Delivery{
			Product: waste.Product(),
			Rate:    waste.Discarded(),
		})
	}
	for _, machine := range graph.VerticesOfKind(entities.MachineVertex) {
		report.Machines = append(report.Machines, dto.MachineStatus{
			Recipe:    machine.Recipe().Name,
			Building:  machine.Recipe().Building,
			Scale:     machine.Scale(),
			Satisfied: machine.Satisfied(),
		})
	}

	return report
}

func (s *PlanningSession) publish(event events.Event) error {
	if s.eventStore == nil {
		return nil
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		return fmt.Errorf("failed to record build trail: %w", err)
	}
	return nil
}
