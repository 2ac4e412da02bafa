package entities

import "testing"

func combinedPlateRecipe(t *testing.T) *Recipe {
	t.Helper()
	recipe, err := NewRecipe(
		"Combined Iron Plate",
		"Assembler",
		[]Ingredient{
			{Product: "Iron Plate", Rate: NewRateFromInt(2)},
			{Product: "Screw", Rate: NewRateFromInt(4)},
		},
		[]Ingredient{
			{Product: "Combined Iron Plate", Rate: NewRateFromInt(1)},
		},
		false,
	)
	if err != nil {
		t.Fatalf("Expected valid recipe creation to succeed: %v", err)
	}
	return recipe
}

func TestVertex_Constructors(t *testing.T) {
	recipe := combinedPlateRecipe(t)

	testCases := []struct {
		name        string
		create      func() (*Vertex, error)
		expectError string
	}{
		{
			"empty source product",
			func() (*Vertex, error) { return NewSourceVertex("", NewRateFromInt(1)) },
			"source product name cannot be empty",
		},
		{
			"negative source supply",
			func() (*Vertex, error) { return NewSourceVertex("Iron Ore", NewRate(-3)) },
			"source supply for Iron Ore cannot be negative, got -3",
		},
		{
			"nil machine recipe",
			func() (*Vertex, error) { return NewMachineVertex(nil, 1) },
			"machine recipe cannot be nil",
		},
		{
			"zero machine scale",
			func() (*Vertex, error) { return NewMachineVertex(recipe, 0) },
			"machine scale for Combined Iron Plate must be positive, got 0",
		},
		{
			"empty sink product",
			func() (*Vertex, error) { return NewSinkVertex("") },
			"sink product name cannot be empty",
		},
		{
			"empty waste product",
			func() (*Vertex, error) { return NewWasteVertex("") },
			"waste product name cannot be empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.create()
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}

	source, err := NewSourceVertex("Iron Ore", ZeroRate)
	if err != nil {
		t.Fatalf("Expected zero supply source to be valid: %v", err)
	}
	if source.ID() != -1 {
		t.Errorf("Expected unattached vertex id -1, got %d", source.ID())
	}
}

func TestVertex_MachineDemandsScaleWithPlan(t *testing.T) {
	recipe := combinedPlateRecipe(t)

	machine, err := NewMachineVertex(recipe, 3)
	if err != nil {
		t.Fatalf("Expected valid machine creation to succeed: %v", err)
	}

	if demand := machine.InputDemand("Iron Plate"); demand.String() != "6" {
		t.Errorf("Expected Iron Plate demand 6, got %s", demand)
	}
	if demand := machine.InputDemand("Screw"); demand.String() != "12" {
		t.Errorf("Expected Screw demand 12, got %s", demand)
	}
	if demand := machine.InputDemand("Combined Iron Plate"); !demand.IsZero() {
		t.Errorf("Expected zero demand for non-input, got %s", demand)
	}
	if avail := machine.OutputAvailability("Combined Iron Plate"); avail.String() != "3" {
		t.Errorf("Expected availability 3, got %s", avail)
	}

	demands := machine.InputDemands()
	if len(demands) != 2 {
		t.Fatalf("Expected 2 demand entries, got %d", len(demands))
	}
	if demands[0].Product != "Iron Plate" || demands[1].Product != "Screw" {
		t.Errorf("Expected demand order to follow recipe order, got %v", demands)
	}

	outputs := machine.OutputAvailabilities()
	if len(outputs) != 1 || outputs[0].Rate.String() != "3" {
		t.Errorf("Expected single scaled output of 3, got %v", outputs)
	}
}

func TestVertex_String(t *testing.T) {
	recipe := combinedPlateRecipe(t)

	source, _ := NewSourceVertex("Iron Ore", NewRateFromInt(60))
	machine, _ := NewMachineVertex(recipe, 4)
	sink, _ := NewSinkVertex("Combined Iron Plate")
	waste, _ := NewWasteVertex("Screw")

	testCases := []struct {
		vertex   *Vertex
		expected string
	}{
		{source, "source Iron Ore"},
		{machine, "machine Combined Iron Plate x4"},
		{sink, "sink Combined Iron Plate"},
		{waste, "waste Screw"},
	}

	for _, tc := range testCases {
		if got := tc.vertex.String(); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}

	if SourceVertex.String() != "source" || WasteVertex.String() != "waste" {
		t.Error("Expected kind names source/waste")
	}
}
