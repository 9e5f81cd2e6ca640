package landmark

import (
	"testing"

	"github.com/nathoo/emberwood/content"
	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

func testRegistry(landmarks ...types.LandmarkDef) *content.Registry {
	reg := &content.Registry{Landmarks: map[string]types.LandmarkDef{}}
	for _, lm := range landmarks {
		reg.Landmarks[lm.ID] = lm
		reg.LandmarkOrder = append(reg.LandmarkOrder, lm.ID)
	}
	return reg
}

func testState() *state.GameState {
	c := character.BuildFromRace(types.RaceDef{ID: "vulpen"}, "Tamsin")
	return state.New(c, calendar.New(nil), 11)
}

func TestPathStability_BumpCapsAtThree(t *testing.T) {
	s := testState()

	for i := 0; i < 5; i++ {
		BumpPathStability(s, "mossy_hollow")
	}
	if got := PathStability(s, "mossy_hollow"); got != 3 {
		t.Errorf("expected cap at 3, got %d", got)
	}
}

func TestEnsureMinimumStability_NeverLowers(t *testing.T) {
	s := testState()
	s.LandmarkStability["mossy_hollow"] = 2

	EnsureMinimumStability(s, "mossy_hollow", 1)
	if got := PathStability(s, "mossy_hollow"); got != 2 {
		t.Errorf("expected 2 untouched, got %d", got)
	}
	EnsureMinimumStability(s, "mossy_hollow", 3)
	if got := PathStability(s, "mossy_hollow"); got != 3 {
		t.Errorf("expected raised to 3, got %d", got)
	}
}

func TestStabilityLabel(t *testing.T) {
	cases := map[int]string{0: "unknown", 1: "faint path", 2: "familiar path", 3: "well-worn path"}
	for v, want := range cases {
		if got := StabilityLabel(v); got != want {
			t.Errorf("stability=%d: expected %q, got %q", v, want, got)
		}
	}
}

func TestMemoryWeights_HungerBiasesFood(t *testing.T) {
	s := testState()
	s.DaysWithoutMeal = 1
	candidates := []types.LandmarkDef{
		{ID: "berry_thicket", Features: map[string]bool{"has_food": true}},
		{ID: "bare_rocks", Features: map[string]bool{}},
	}

	weights := MemoryWeights(s, candidates, Context{Hungry: true})
	if weights[0] != 2.5 || weights[1] != 1.0 {
		t.Errorf("expected food landmark boosted x2.5, got %v", weights)
	}
}

func TestMemoryWeights_MortarBiasesRunestones(t *testing.T) {
	s := testState()
	candidates := []types.LandmarkDef{
		{ID: "old_shrine", Features: map[string]bool{"has_runestone": true}},
	}

	weights := MemoryWeights(s, candidates, Context{HasMortar: true})
	if weights[0] != 2.0 {
		t.Errorf("expected runestone landmark boosted x2.0, got %v", weights)
	}
}

func TestMemoryWeights_StabilityMultipliers(t *testing.T) {
	s := testState()
	s.LandmarkStability["well_worn"] = 3
	candidates := []types.LandmarkDef{
		{ID: "well_worn", Features: map[string]bool{}},
		{ID: "fresh", Features: map[string]bool{}},
	}

	weights := MemoryWeights(s, candidates, Context{})
	if weights[0] != 2.0 || weights[1] != 1.0 {
		t.Errorf("expected stability-3 landmark at x2.0, got %v", weights)
	}
}

func TestSelectForDiscovery_RespectsDepthRange(t *testing.T) {
	reg := testRegistry(
		types.LandmarkDef{ID: "shallow", DepthMin: 0, DepthMax: 5},
		types.LandmarkDef{ID: "deep", DepthMin: 20, DepthMax: 30},
	)
	cat := NewCatalog(reg)
	s := testState()
	r := rng.New(3)

	for i := 0; i < 200; i++ {
		if lm := cat.SelectForDiscovery(s, r, 3); lm != nil && lm.ID != "shallow" {
			t.Fatalf("expected only shallow at depth 3, got %s", lm.ID)
		}
	}
}

func TestSelectForDiscovery_MostStepsFindNothing(t *testing.T) {
	reg := testRegistry(types.LandmarkDef{ID: "shallow", DepthMin: 0, DepthMax: 5})
	cat := NewCatalog(reg)
	s := testState()
	r := rng.New(9)

	found := 0
	for i := 0; i < 1000; i++ {
		if cat.SelectForDiscovery(s, r, 3) != nil {
			found++
		}
	}
	// Base chance is 0.15; allow generous slack around it.
	if found < 80 || found > 250 {
		t.Errorf("expected roughly 15%% discovery rate, got %d/1000", found)
	}
}

func TestSelectForDiscovery_NoCandidatesAtDepth(t *testing.T) {
	reg := testRegistry(types.LandmarkDef{ID: "deep", DepthMin: 20, DepthMax: 30})
	cat := NewCatalog(reg)
	s := testState()
	r := rng.New(1)

	for i := 0; i < 100; i++ {
		if lm := cat.SelectForDiscovery(s, r, 3); lm != nil {
			t.Fatalf("expected nil with nothing in range, got %s", lm.ID)
		}
	}
}
