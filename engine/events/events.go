// Package events implements weighted random event selection and application.
// Selection layers depth ranges, depth bands, per-category weights, quest
// progression shifts, seasonal multipliers, and repeat avoidance.
package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/content"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/rapport"
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

// ForceForageSteps is the forage drought at which the pool restricts itself
// to forage events, as a safety net against starvation spirals.
const ForceForageSteps = 7

// Depth band boundaries.
const (
	edgeMaxDepth = 9
	midMaxDepth  = 24
)

// defaultCategoryWeights are the per-band category multipliers: the edge is
// safe and chatty, the deep is lean and dangerous.
var defaultCategoryWeights = map[string]map[string]float64{
	"edge": {
		"forage":    0.8,
		"flavor":    1.3,
		"encounter": 0.5,
		"hazard":    0.5,
		"boon":      1.2,
	},
	"mid": {
		"forage":    0.7,
		"flavor":    1.0,
		"encounter": 1.15,
		"hazard":    1.1,
		"boon":      1.0,
	},
	"deep": {
		"forage":    0.5,
		"flavor":    0.75,
		"encounter": 1.4,
		"hazard":    1.3,
		"boon":      1.15,
	},
}

// Pool selects and applies exploration events.
type Pool struct {
	Events          []types.EventDef
	Registry        *content.Registry
	CategoryWeights map[string]map[string]float64
}

// NewPool builds a pool over the registry's event list.
func NewPool(reg *content.Registry) *Pool {
	return &Pool{
		Events:          reg.Events,
		Registry:        reg,
		CategoryWeights: defaultCategoryWeights,
	}
}

// BandForDepth maps a depth to its band name.
func BandForDepth(depth int) string {
	if depth <= edgeMaxDepth {
		return "edge"
	}
	if depth <= midMaxDepth {
		return "mid"
	}
	return "deep"
}

func availableAtDepth(evt *types.EventDef, depth int) bool {
	if depth < evt.MinDepth {
		return false
	}
	if evt.MaxDepth >= 0 && depth > evt.MaxDepth {
		return false
	}
	return true
}

// WeightAtDepth computes an event's selection weight at a depth. Weight grows
// (or shrinks) linearly past min depth, is scaled by the band multiplier, and
// is cut to a quarter past max depth rather than excluded. Never below 0.1.
func WeightAtDepth(evt *types.EventDef, depth int, bandMultiplier float64) float64 {
	delta := 0
	if depth > evt.MinDepth {
		delta = depth - evt.MinDepth
	}
	w := (evt.BaseWeight + evt.DepthWeight*float64(delta)) * bandMultiplier
	if evt.MaxDepth >= 0 && depth > evt.MaxDepth {
		w *= 0.25
	}
	if w < 0.1 {
		return 0.1
	}
	return w
}

// Draw selects one event for the given depth, or nil if the pool is empty.
func (p *Pool) Draw(s *state.GameState, r *rng.RNG, depth int) *types.EventDef {
	forceForage := s.StepsSinceForage >= ForceForageSteps

	var available []*types.EventDef
	for i := range p.Events {
		evt := &p.Events[i]
		if availableAtDepth(evt, depth) && !s.SeenRecently(evt.ID) {
			available = append(available, evt)
		}
	}
	if len(available) == 0 {
		for i := range p.Events {
			if availableAtDepth(&p.Events[i], depth) {
				available = append(available, &p.Events[i])
			}
		}
	}
	if len(available) == 0 {
		for i := range p.Events {
			available = append(available, &p.Events[i])
		}
	}
	if len(available) == 0 {
		return nil
	}

	// Progression gating is advisory: drop the filter rather than starve
	// the pool.
	repaired := quest.RepairedCount(s)
	var gated []*types.EventDef
	for _, evt := range available {
		if evt.Checks.RequiresRunestoneRepairs > 0 && repaired < evt.Checks.RequiresRunestoneRepairs {
			continue
		}
		gated = append(gated, evt)
	}
	if len(gated) > 0 {
		available = gated
	}

	if forceForage {
		var forage []*types.EventDef
		for _, evt := range available {
			if evt.Category == "forage" {
				forage = append(forage, evt)
			}
		}
		if len(forage) > 0 {
			available = forage
		}
	}

	band := BandForDepth(depth)
	bandWeights := map[string]float64{}
	for cat, w := range p.CategoryWeights[band] {
		bandWeights[cat] = w
	}
	for cat, mod := range quest.EventCategoryModifiers(s, band) {
		if base, ok := bandWeights[cat]; ok {
			bandWeights[cat] = base * mod
		} else {
			bandWeights[cat] = mod
		}
	}

	weights := make([]float64, len(available))
	for i, evt := range available {
		mult, ok := bandWeights[evt.Category]
		if !ok {
			mult = 1.0
		}
		seasonal := content.SeasonalWeight(evt.SeasonWeights, evt.PreferredSeasons, s.CurrentSeason)
		weights[i] = WeightAtDepth(evt, depth, mult) * seasonal
	}

	idx := r.WeightedIndex(weights)
	if idx < 0 {
		idx = 0
	}
	return available[idx]
}

// Apply executes a drawn event against the state and returns its narration.
func (p *Pool) Apply(s *state.GameState, r *rng.RNG, evt *types.EventDef) string {
	s.PushRecentEvent(evt.ID)

	var text []string
	text = append(text, evt.Text)

	if evt.Category == "forage" {
		s.StepsSinceForage = 0
	} else {
		s.StepsSinceForage++
	}

	switch evt.Type {
	case "forage", "encounter":
		text = append(text, p.addInventory(s, r, evt)...)
		if evt.Type == "encounter" {
			text = append(text, applyRapport(s, evt)...)
		}
		if evt.Type == "forage" {
			if race, ok := p.Registry.Race(s.Character.RaceID); ok && race.ForageFlavor != "" {
				text = append(text, race.ForageFlavor)
			}
		}
	case "tame":
		text = append(text, applyRapport(s, evt)...)
	case "tea":
		if len(evt.Effects.Modifiers) > 0 {
			duration := evt.Effects.DurationDays
			if duration <= 0 {
				duration = 1
			}
			s.TimedModifiers = append(s.TimedModifiers, character.TimedModifier{
				Source:       evt.ID,
				Modifiers:    evt.Effects.Modifiers,
				ExpiresOnDay: s.Day + duration,
			})
			text = append(text, "You feel a lingering effect settle in.")
		}
	}

	if evt.Effects.StaminaDelta != 0 {
		// Clamping happens in the engine loop, which owns stamina.
		s.Stamina += evt.Effects.StaminaDelta
	}

	return strings.Join(text, "\n") + "\n"
}

func (p *Pool) addInventory(s *state.GameState, r *rng.RNG, evt *types.EventDef) []string {
	var text []string
	for i, item := range evt.Effects.InventoryAdd {
		count := 1
		if i < len(evt.Effects.InventoryAddCount) {
			span := evt.Effects.InventoryAddCount[i]
			if span[1] >= span[0] && span[0] > 0 {
				count = r.Between(span[0], span[1])
			}
		}
		for n := 0; n < count; n++ {
			s.AddItem(item)
		}
		if count > 1 {
			text = append(text, fmt.Sprintf("You secure %d %s.", count, item))
		} else {
			text = append(text, fmt.Sprintf("You secure %s.", item))
		}
	}
	return text
}

func applyRapport(s *state.GameState, evt *types.EventDef) []string {
	creatures := make([]string, 0, len(evt.Effects.RapportDelta))
	for creature := range evt.Effects.RapportDelta {
		creatures = append(creatures, creature)
	}
	sort.Strings(creatures)

	var text []string
	for _, creature := range creatures {
		delta := evt.Effects.RapportDelta[creature]
		rapport.Change(s, creature, delta)
		text = append(text, fmt.Sprintf("Rapport with %s shifts by %d.", creature, delta))
	}
	return text
}
