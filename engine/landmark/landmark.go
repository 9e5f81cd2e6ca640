// Package landmark implements landmark discovery and the forest memory
// system. Discovery is a weighted draw layered with revisit-vs-new blending;
// memory tracks per-landmark path stability that biases future selection.
package landmark

import (
	"github.com/nathoo/emberwood/content"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

// DiscoveryChance is the base per-step probability of any landmark showing
// up at all.
const DiscoveryChance = 0.15

// Path stability bounds.
const (
	StabilityMin = 0
	StabilityMax = 3
)

var stabilityLabels = map[int]string{
	0: "unknown",
	1: "faint path",
	2: "familiar path",
	3: "well-worn path",
}

// StabilityLabel returns a human-readable label for a stability value.
func StabilityLabel(stability int) string {
	if l, ok := stabilityLabels[stability]; ok {
		return l
	}
	return "unknown"
}

// PathStability returns the remembered path strength for a landmark, 0 if
// unknown.
func PathStability(s *state.GameState, landmarkID string) int {
	return s.LandmarkStability[landmarkID]
}

// BumpPathStability strengthens the path memory on a revisit, capped at 3.
func BumpPathStability(s *state.GameState, landmarkID string) {
	if cur := s.LandmarkStability[landmarkID]; cur < StabilityMax {
		s.LandmarkStability[landmarkID] = cur + 1
	}
}

// EnsureMinimumStability raises a landmark's stability to at least the given
// value without ever lowering it.
func EnsureMinimumStability(s *state.GameState, landmarkID string, minimum int) {
	if s.LandmarkStability[landmarkID] < minimum {
		s.LandmarkStability[landmarkID] = minimum
	}
}

// Context carries the situational signals that bias landmark selection.
type Context struct {
	Hungry               bool
	HasMortar            bool
	Day                  int
	HasRunestoneLandmark bool
}

// ContextFromState derives the selection context from the current state.
func ContextFromState(s *state.GameState, reg *content.Registry) Context {
	hasMortar := s.HasItem("primitive_mortar") ||
		s.HasItem("clay_lump") || s.HasItem("sand_handful") || s.HasItem("ash_scoop")

	hasRunestoneLandmark := false
	for _, id := range s.DiscoveredLandmarks {
		if lm, ok := reg.Landmark(id); ok && lm.Features["has_runestone"] {
			hasRunestoneLandmark = true
			break
		}
	}

	return Context{
		Hungry:               s.DaysWithoutMeal >= 1,
		HasMortar:            hasMortar,
		Day:                  s.Day,
		HasRunestoneLandmark: hasRunestoneLandmark,
	}
}

// MemoryWeights computes a selection weight per candidate from path
// stability and the situational context.
func MemoryWeights(s *state.GameState, candidates []types.LandmarkDef, ctx Context) []float64 {
	stabilityMultipliers := map[int]float64{0: 1.0, 1: 1.2, 2: 1.5, 3: 2.0}

	weights := make([]float64, len(candidates))
	for i, lm := range candidates {
		w := 1.0
		stability := PathStability(s, lm.ID)
		w *= stabilityMultipliers[stability]

		if ctx.Hungry && lm.Features["has_food"] {
			w *= 2.5
		}
		if ctx.HasMortar && lm.Features["has_runestone"] {
			w *= 2.0
		}
		// Nudge the main quest forward if the player still hasn't found a
		// runestone by day 8.
		if !ctx.HasRunestoneLandmark && ctx.Day >= 8 && lm.Features["has_runestone"] {
			excess := ctx.Day - 8
			if excess > 2 {
				excess = 2
			}
			w *= 1.0 + float64(excess)*0.25
		}
		if s.Act1.RunestonesRepaired > 0 && stability > 0 {
			w *= quest.MemoryModifier(s)
		}
		weights[i] = w
	}
	return weights
}

// Catalog selects landmarks for discovery and revisit.
type Catalog struct {
	Registry *content.Registry
}

// NewCatalog wraps the registry's landmark set.
func NewCatalog(reg *content.Registry) *Catalog {
	return &Catalog{Registry: reg}
}

func (c *Catalog) availableAtDepth(depth int) []types.LandmarkDef {
	var out []types.LandmarkDef
	for _, id := range c.Registry.LandmarkOrder {
		lm := c.Registry.Landmarks[id]
		if lm.DepthMin <= depth && depth <= lm.DepthMax {
			out = append(out, lm)
		}
	}
	return out
}

// SelectForDiscovery rolls for a landmark at the current depth. Returns nil
// when nothing surfaces. Known landmarks with stronger path memory pull the
// draw toward revisits; a fixed slice of draws still goes to new ground.
func (c *Catalog) SelectForDiscovery(s *state.GameState, r *rng.RNG, depth int) *types.LandmarkDef {
	if !r.Chance(DiscoveryChance) {
		return nil
	}

	available := c.availableAtDepth(depth)
	if len(available) == 0 {
		return nil
	}

	var known, undiscovered []types.LandmarkDef
	for _, lm := range available {
		if s.HasDiscoveredLandmark(lm.ID) {
			known = append(known, lm)
		} else {
			undiscovered = append(undiscovered, lm)
		}
	}

	var candidates []types.LandmarkDef
	if len(known) > 0 {
		baseRevisit := 0.3 + float64(len(known))*0.05
		if baseRevisit > 0.6 {
			baseRevisit = 0.6
		}
		total := 0
		for _, lm := range known {
			total += PathStability(s, lm.ID)
		}
		avgStability := float64(total) / float64(len(known))
		revisitChance := baseRevisit + avgStability*0.1
		if revisitChance > 0.7 {
			revisitChance = 0.7
		}

		switch {
		case r.Chance(revisitChance):
			candidates = known
		case len(undiscovered) > 0 && r.Chance(0.3):
			candidates = undiscovered
		default:
			candidates = known
		}
	} else {
		candidates = undiscovered
	}
	if len(candidates) == 0 {
		return nil
	}

	weights := MemoryWeights(s, candidates, ContextFromState(s, c.Registry))
	idx := r.WeightedIndex(weights)
	if idx < 0 {
		idx = r.Pick(len(candidates))
	}
	picked := candidates[idx]
	return &picked
}
