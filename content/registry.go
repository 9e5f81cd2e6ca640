// Package content holds the immutable content registry compiled by the
// loader. It is constructed once at process start and injected into the
// components that need it — there are no module-level caches.
package content

import "github.com/nathoo/emberwood/types"

// Registry aggregates all loaded game content. Read-only after construction.
type Registry struct {
	Game       types.GameDef
	Seasons    []types.SeasonDef
	Races      map[string]types.RaceDef
	Creatures  map[string]types.CreatureDef
	Events     []types.EventDef
	Landmarks  map[string]types.LandmarkDef
	Runestones map[string]types.RunestoneDef
	Teas       map[string]types.TeaDef

	// Deterministic iteration orders (Lua source order).
	RaceOrder     []string
	CreatureOrder []string
	LandmarkOrder []string
	TeaOrder      []string
}

// Race looks up a race definition by id.
func (r *Registry) Race(id string) (types.RaceDef, bool) {
	def, ok := r.Races[id]
	return def, ok
}

// Landmark looks up a landmark definition by id.
func (r *Registry) Landmark(id string) (types.LandmarkDef, bool) {
	def, ok := r.Landmarks[id]
	return def, ok
}

// RunestoneAt returns the runestone bound to a landmark, if any.
func (r *Registry) RunestoneAt(landmarkID string) (types.RunestoneDef, bool) {
	for _, def := range r.Runestones {
		if def.LandmarkID == landmarkID {
			return def, true
		}
	}
	return types.RunestoneDef{}, false
}

// Tea looks up a tea recipe by id.
func (r *Registry) Tea(id string) (types.TeaDef, bool) {
	def, ok := r.Teas[id]
	return def, ok
}

// Creature looks up a creature definition by id.
func (r *Registry) Creature(id string) (types.CreatureDef, bool) {
	def, ok := r.Creatures[id]
	return def, ok
}

// FallbackRace is used when content supplies no races at all.
func FallbackRace() types.RaceDef {
	return types.RaceDef{
		ID:               "human",
		Name:             "Human",
		BodyTypeDefault:  "humanoid",
		SizeDefault:      "medium",
		ArchetypeDefault: "wanderer",
	}
}

// SeasonalWeight returns the selection multiplier an event or item carries in
// the given season. An explicit season-weight map wins; otherwise a
// preferred-seasons list boosts to 1.2; otherwise neutral 1.0.
func SeasonalWeight(seasonWeights map[string]float64, preferred []string, season string) float64 {
	if seasonWeights != nil {
		if w, ok := seasonWeights[season]; ok {
			return w
		}
		return 1.0
	}
	if len(preferred) > 0 {
		for _, s := range preferred {
			if s == season {
				return 1.2
			}
		}
		return 1.0
	}
	return 1.0
}
