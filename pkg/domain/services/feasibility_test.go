package services

import (
	"testing"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

func mustRecipe(t *testing.T, name string, inputs, outputs []entities.Ingredient) *entities.Recipe {
	t.Helper()
	recipe, err := entities.NewRecipe(name, "Constructor", inputs, outputs, false)
	if err != nil {
		t.Fatalf("Expected valid recipe creation to succeed: %v", err)
	}
	return recipe
}

func ingredient(product entities.Product, rate int64) entities.Ingredient {
	return entities.Ingredient{Product: product, Rate: entities.NewRateFromInt(rate)}
}

func TestFeasibilityChecker_LinearChain(t *testing.T) {
	catalog := []*entities.Recipe{
		mustRecipe(t, "Smelt",
			[]entities.Ingredient{ingredient("Ore", 30)},
			[]entities.Ingredient{ingredient("Ingot", 30)}),
		mustRecipe(t, "Forge",
			[]entities.Ingredient{ingredient("Ingot", 30)},
			[]entities.Ingredient{ingredient("Plate", 20)}),
	}

	checker := NewFeasibilityChecker(catalog, []entities.Product{"Ore"})

	if !checker.Producible("Plate") {
		t.Error("Expected Plate to be producible from Ore via Smelt and Forge")
	}
	if !checker.Producible("Ingot") {
		t.Error("Expected Ingot to be producible from Ore")
	}
	if !checker.Producible("Ore") {
		t.Error("Expected available Ore to be producible")
	}
	if checker.Producible("Copper Wire") {
		t.Error("Expected unknown product to be unproducible")
	}
}

func TestFeasibilityChecker_CycleWithoutGroundInput(t *testing.T) {
	catalog := []*entities.Recipe{
		mustRecipe(t, "Loopback",
			[]entities.Ingredient{ingredient("X", 1)},
			[]entities.Ingredient{ingredient("Y", 1)}),
		mustRecipe(t, "Reverse",
			[]entities.Ingredient{ingredient("Y", 1)},
			[]entities.Ingredient{ingredient("X", 1)}),
	}

	checker := NewFeasibilityChecker(catalog, nil)

	if checker.Producible("X") {
		t.Error("Expected X to be unproducible: its only recipe depends on itself through Y")
	}
	if checker.Producible("Y") {
		t.Error("Expected Y to be unproducible: its only recipe depends on itself through X")
	}
}

func TestFeasibilityChecker_SelfReferentialRecipe(t *testing.T) {
	catalog := []*entities.Recipe{
		mustRecipe(t, "Regenerate Catalyst",
			[]entities.Ingredient{ingredient("Catalyst", 1)},
			[]entities.Ingredient{ingredient("Catalyst", 2)}),
	}

	checker := NewFeasibilityChecker(catalog, nil)
	if checker.Producible("Catalyst") {
		t.Error("Expected self-feeding recipe with no ground input to be unproducible")
	}

	// With a starting stock the same recipe grounds out
	seeded := NewFeasibilityChecker(catalog, []entities.Product{"Catalyst"})
	if !seeded.Producible("Catalyst") {
		t.Error("Expected available Catalyst to be producible")
	}
}

func TestFeasibilityChecker_FallsBackToLaterAlternate(t *testing.T) {
	// Two recipes produce Screw; the first needs an input nothing provides.
	catalog := []*entities.Recipe{
		mustRecipe(t, "Caterium Screw",
			[]entities.Ingredient{ingredient("Caterium Ingot", 1)},
			[]entities.Ingredient{ingredient("Screw", 12)}),
		mustRecipe(t, "Iron Screw",
			[]entities.Ingredient{ingredient("Iron Ingot", 1)},
			[]entities.Ingredient{ingredient("Screw", 4)}),
	}

	checker := NewFeasibilityChecker(catalog, []entities.Product{"Iron Ingot"})

	if !checker.Producible("Screw") {
		t.Error("Expected Screw to be producible via the second catalog recipe")
	}
	if checker.Producible("Caterium Ingot") {
		t.Error("Expected Caterium Ingot to stay unproducible")
	}
}

func TestFeasibilityChecker_CycleEscapesThroughAlternate(t *testing.T) {
	// The first recipe for Y loops back through X; the second grounds out.
	catalog := []*entities.Recipe{
		mustRecipe(t, "X from Y",
			[]entities.Ingredient{ingredient("Y", 1)},
			[]entities.Ingredient{ingredient("X", 1)}),
		mustRecipe(t, "Y from X",
			[]entities.Ingredient{ingredient("X", 1)},
			[]entities.Ingredient{ingredient("Y", 1)}),
		mustRecipe(t, "Y from Z",
			[]entities.Ingredient{ingredient("Z", 1)},
			[]entities.Ingredient{ingredient("Y", 1)}),
	}

	checker := NewFeasibilityChecker(catalog, []entities.Product{"Z"})

	if !checker.Producible("X") {
		t.Error("Expected X to be producible: Y falls back to the Z recipe")
	}
	if !checker.Producible("Y") {
		t.Error("Expected Y to be producible from Z")
	}
}

func TestFeasibilityChecker_VerdictsAreSessionScoped(t *testing.T) {
	// While A is being explored, B's only recipe sees A in progress and B is
	// memoized unproducible for the rest of the session. A fresh session that
	// asks about B first settles A through C and judges B producible.
	catalog := []*entities.Recipe{
		mustRecipe(t, "A from B",
			[]entities.Ingredient{ingredient("B", 1)},
			[]entities.Ingredient{ingredient("A", 1)}),
		mustRecipe(t, "B from A",
			[]entities.Ingredient{ingredient("A", 1)},
			[]entities.Ingredient{ingredient("B", 1)}),
		mustRecipe(t, "A from C",
			[]entities.Ingredient{ingredient("C", 1)},
			[]entities.Ingredient{ingredient("A", 1)}),
	}
	available := []entities.Product{"C"}

	session := NewFeasibilityChecker(catalog, available)
	if !session.Producible("A") {
		t.Fatal("Expected A to be producible from C")
	}
	if session.Producible("B") {
		t.Error("Expected B verdict memoized during A's exploration to persist")
	}

	fresh := NewFeasibilityChecker(catalog, available)
	if !fresh.Producible("B") {
		t.Error("Expected a fresh session to judge B producible through A")
	}
}

func TestFeasibilityChecker_FirstUnproducible(t *testing.T) {
	catalog := []*entities.Recipe{
		mustRecipe(t, "Smelt",
			[]entities.Ingredient{ingredient("Ore", 30)},
			[]entities.Ingredient{ingredient("Ingot", 30)}),
	}

	checker := NewFeasibilityChecker(catalog, []entities.Product{"Ore"})

	product, bad := checker.FirstUnproducible([]entities.Product{"Ingot", "Plate", "Rotor"})
	if !bad {
		t.Fatal("Expected an unproducible target to be reported")
	}
	if product != "Plate" {
		t.Errorf("Expected first unproducible target Plate, got %s", product)
	}

	if _, bad := checker.FirstUnproducible([]entities.Product{"Ingot", "Ore"}); bad {
		t.Error("Expected all targets to be producible")
	}

	if _, bad := checker.FirstUnproducible(nil); bad {
		t.Error("Expected no unproducible target for empty target list")
	}
}
