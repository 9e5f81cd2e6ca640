package quest

import (
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
)

// ThreatEncounterModifier scales encounter frequency by repair progress.
// A stabilized forest is a calmer forest.
func ThreatEncounterModifier(s *state.GameState) float64 {
	switch repaired := s.Act1.RunestonesRepaired; {
	case repaired >= RequiredRunestones:
		return 0.85
	case repaired >= 2:
		return 0.90
	case repaired >= 1:
		return 0.95
	default:
		return 1.0
	}
}

// MemoryModifier scales wayfinding friendliness by repair progress.
func MemoryModifier(s *state.GameState) float64 {
	switch repaired := s.Act1.RunestonesRepaired; {
	case repaired >= RequiredRunestones:
		return 1.20
	case repaired >= 2:
		return 1.15
	case repaired >= 1:
		return 1.10
	default:
		return 1.0
	}
}

// StaminaCostModifier discounts exploration stamina costs by repair progress,
// with deeper depths benefiting first.
func StaminaCostModifier(s *state.GameState, depth int) float64 {
	repaired := s.Act1.RunestonesRepaired
	switch {
	case repaired <= 0:
		return 1.0
	case repaired == 1:
		if depth >= 10 {
			return 0.95
		}
		return 1.0
	case repaired == 2:
		switch {
		case depth >= 10:
			return 0.90
		case depth >= 5:
			return 0.95
		default:
			return 1.0
		}
	default:
		switch {
		case depth >= 15:
			return 0.85
		case depth >= 10:
			return 0.90
		case depth >= 5:
			return 0.95
		default:
			return 1.0
		}
	}
}

// EventCategoryModifiers returns multiplicative event-weight shifts by repair
// progress: more repairs tilt the pool toward safer categories. Effects are
// amplified in the deep band and halved toward neutral at the edge.
func EventCategoryModifiers(s *state.GameState, depthBand string) map[string]float64 {
	repaired := s.Act1.RunestonesRepaired
	if repaired <= 0 {
		return nil
	}

	var modifiers map[string]float64
	switch {
	case repaired == 1:
		modifiers = map[string]float64{
			"forage":    1.05,
			"flavor":    1.05,
			"hazard":    0.95,
			"encounter": 0.98,
		}
	case repaired == 2:
		modifiers = map[string]float64{
			"forage":    1.10,
			"flavor":    1.10,
			"hazard":    0.90,
			"encounter": 0.95,
			"boon":      1.05,
		}
	default:
		modifiers = map[string]float64{
			"forage":    1.15,
			"flavor":    1.15,
			"hazard":    0.85,
			"encounter": 0.92,
			"boon":      1.10,
		}
	}

	switch depthBand {
	case "deep":
		for key, v := range modifiers {
			switch key {
			case "forage", "flavor", "boon":
				if v *= 1.1; v > 1.3 {
					v = 1.3
				}
				modifiers[key] = v
			case "hazard", "encounter":
				if v *= 0.95; v < 0.75 {
					v = 0.75
				}
				modifiers[key] = v
			}
		}
	case "mid":
		// Full strength.
	default:
		for key, v := range modifiers {
			modifiers[key] = 1.0 + (v-1.0)*0.5
		}
	}
	return modifiers
}

// MaxReliableDepth is the soft depth gate earned by repair progress. Deeper
// rolls are still possible, just rare.
func MaxReliableDepth(s *state.GameState) int {
	switch repaired := s.Act1.RunestonesRepaired; {
	case repaired <= 0:
		return 15
	case repaired == 1:
		return 20
	case repaired == 2:
		return 25
	default:
		return 35
	}
}

// AllowDeepDepthRoll decides whether a roll past the reliable gate goes
// through. Within the gate it always does; beyond it the chance falls off in
// three bands.
func AllowDeepDepthRoll(s *state.GameState, r *rng.RNG, depth int) bool {
	maxReliable := MaxReliableDepth(s)
	if depth <= maxReliable {
		return true
	}
	excess := depth - maxReliable
	switch {
	case excess <= 5:
		return r.Chance(0.2)
	case excess <= 10:
		return r.Chance(0.05)
	default:
		return r.Chance(0.01)
	}
}
