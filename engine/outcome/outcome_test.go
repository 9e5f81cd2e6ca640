package outcome

import (
	"testing"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/survival"
	"github.com/nathoo/emberwood/types"
)

func testState(baseStaminaMax float64) *state.GameState {
	c := character.BuildFromRace(types.RaceDef{ID: "vulpen"}, "Tamsin")
	c.BaseStats["stamina_max"] = baseStaminaMax
	s := state.New(c, calendar.New(nil), 5)
	s.Stamina = baseStaminaMax
	return s
}

func TestNormal_ClearsSheltered(t *testing.T) {
	s := testState(10)
	s.IsSheltered = true

	Resolve(s, rng.New(1), Normal, Context{})
	if s.IsSheltered {
		t.Error("expected sheltered cleared")
	}
}

func TestCollapse_Scenario(t *testing.T) {
	s := testState(10)
	s.ActiveZone = "forest"
	s.ZoneDepths["forest"] = 8
	s.Condition = 0

	Resolve(s, rng.New(1), Collapse, Context{Severity: 1.0})

	if s.Stamina != 5.0 {
		t.Errorf("expected stamina 5.0, got %v", s.Stamina)
	}
	if s.RestType != "collapse" {
		t.Errorf("expected rest_type collapse, got %q", s.RestType)
	}
	if s.Condition != 1 {
		t.Errorf("expected condition 1, got %d", s.Condition)
	}
	if s.ActiveZone != "glade" {
		t.Errorf("expected relocation to glade, got %q", s.ActiveZone)
	}
	if _, ok := s.ZoneDepths["forest"]; ok {
		t.Error("expected prior zone depth entry dropped")
	}
	if s.IsSheltered {
		t.Error("expected sheltered cleared")
	}
}

func TestCollapse_LowSeveritySkipsCondition(t *testing.T) {
	s := testState(10)

	Resolve(s, rng.New(1), Collapse, Context{Severity: 0.5})

	if s.Condition != 0 {
		t.Errorf("expected no condition hit below severity 1.0, got %d", s.Condition)
	}
	// floor(10 * 0.5 * 0.5) = 2
	if s.Stamina != 2.0 {
		t.Errorf("expected stamina 2.0, got %v", s.Stamina)
	}
}

func TestRetreat_ReducesDepth(t *testing.T) {
	s := testState(10)
	s.ActiveZone = "forest"
	s.ZoneDepths["forest"] = 5

	Resolve(s, rng.New(1), Retreat, Context{})

	depth := s.ZoneDepths["forest"]
	if depth != 3 && depth != 4 {
		t.Errorf("expected depth reduced by 1-2, got %d", depth)
	}
	if s.ActiveZone != "forest" {
		t.Errorf("expected to stay in zone, got %q", s.ActiveZone)
	}
	if s.Stamina >= 10.0 {
		t.Errorf("expected stamina loss, got %v", s.Stamina)
	}
}

func TestRetreat_AtZeroDepthFallsBackToGlade(t *testing.T) {
	s := testState(10)
	s.ActiveZone = "forest"
	s.ZoneDepths["forest"] = 0

	Resolve(s, rng.New(1), Retreat, Context{})

	if s.ActiveZone != "glade" {
		t.Errorf("expected glade, got %q", s.ActiveZone)
	}
	if _, ok := s.ZoneDepths["forest"]; ok {
		t.Error("expected depth entry dropped")
	}
}

func TestRetreat_LossIsAtLeastOne(t *testing.T) {
	s := testState(4) // 15% of 4 is 0.6, below the floor
	s.ActiveZone = "forest"
	s.ZoneDepths["forest"] = 5

	Resolve(s, rng.New(1), Retreat, Context{})
	if s.Stamina > 3.0 {
		t.Errorf("expected at least 1 stamina lost, got %v", s.Stamina)
	}
}

func TestSheltered_RestoresAndRecovers(t *testing.T) {
	s := testState(10)
	s.Stamina = 1
	s.Condition = 2
	s.RestType = "collapse"

	Resolve(s, rng.New(1), Sheltered, Context{SafeShelter: true})

	if !s.IsSheltered {
		t.Error("expected sheltered set")
	}
	if s.RestType != "camp" {
		t.Errorf("expected camp rest, got %q", s.RestType)
	}
	if s.Condition != 1 {
		t.Errorf("expected one step of recovery, got %d", s.Condition)
	}
	// floor(10 * 0.75) = 7, within the effective max for condition 1.
	if s.Stamina != 7.0 {
		t.Errorf("expected stamina 7.0, got %v", s.Stamina)
	}
}

func TestTransported_TargetsZoneFreshDepth(t *testing.T) {
	s := testState(10)
	s.ActiveZone = "forest"
	s.ZoneDepths["deep_forest"] = 9

	Resolve(s, rng.New(1), Transported, Context{TargetZone: "deep_forest", TargetLandmarkID: "old_shrine"})

	if s.ActiveZone != "deep_forest" {
		t.Errorf("expected deep_forest, got %q", s.ActiveZone)
	}
	if _, ok := s.ZoneDepths["deep_forest"]; ok {
		t.Error("expected fresh arrival to clear destination depth")
	}
	if s.CurrentLandmark != "old_shrine" {
		t.Errorf("expected landmark set, got %q", s.CurrentLandmark)
	}
	if s.Stamina != 9.0 {
		t.Errorf("expected 10%% cost (min 1), got %v", s.Stamina)
	}
}

func TestTransported_NoTargetFallsBackToGlade(t *testing.T) {
	s := testState(10)
	s.ActiveZone = "forest"

	Resolve(s, rng.New(1), Transported, Context{})
	if s.ActiveZone != "glade" {
		t.Errorf("expected glade fallback, got %q", s.ActiveZone)
	}
}

func TestOutcomes_NeverLeaveBoundsViolated(t *testing.T) {
	r := rng.New(99)
	for _, kind := range []Kind{Normal, Retreat, Collapse, Sheltered, Transported} {
		for i := 0; i < 50; i++ {
			s := testState(10)
			s.ActiveZone = "forest"
			s.ZoneDepths["forest"] = i % 12
			s.Condition = i % 4
			survival.SetStamina(s, float64(i%11))

			Resolve(s, r, kind, Context{TargetZone: "forest"})

			max := survival.EffectiveStaminaMax(s)
			if s.Stamina < 0 || s.Stamina > max {
				t.Fatalf("%v: stamina %v outside [0,%v]", kind, s.Stamina, max)
			}
			if s.Condition < 0 || s.Condition > 3 {
				t.Fatalf("%v: condition %d out of range", kind, s.Condition)
			}
		}
	}
}
