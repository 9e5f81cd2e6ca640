// Package character implements the stat/modifier pipeline: a base stat map
// layered with race, permanent, and time-limited modifier specs.
package character

import "github.com/nathoo/emberwood/types"

// DefaultBaseStats are the starting values before any racial modifiers.
var DefaultBaseStats = map[string]float64{
	"stamina_max":          4.0,
	"stamina_wake_restore": 1.0,
	"stamina_camp_restore": 3.0,
	"explore_slots":        1.0,
	"camp_meal_cost":       1.0,
	"inventory_slots":      20.0,
}

// TimedModifier is a named bundle of modifier specs with an expiration day
// (inclusive). ExpiresOnDay 0 means no expiration.
type TimedModifier struct {
	Source       string               `json:"source"`
	Modifiers    []types.ModifierSpec `json:"modifiers"`
	ExpiresOnDay int                  `json:"expires_on_day"`
}

// ActiveOn reports whether the modifier still applies on the given day.
func (m TimedModifier) ActiveOn(day int) bool {
	if m.ExpiresOnDay == 0 {
		return true
	}
	return day <= m.ExpiresOnDay
}

// Character holds the player's identity and stat basis. Identity fields are
// fixed at creation; race modifiers are refreshed whenever race sync runs.
type Character struct {
	Name      string `json:"name"`
	RaceID    string `json:"race_id"`
	BodyType  string `json:"body_type"`
	Size      string `json:"size"`
	Archetype string `json:"archetype"`

	FlavorTags []string `json:"flavor_tags"`
	Tags       []string `json:"tags"`

	BaseStats          map[string]float64   `json:"base_stats"`
	RaceModifiers      []types.ModifierSpec `json:"race_modifiers"`
	PermanentModifiers []types.ModifierSpec `json:"permanent_modifiers"`
}

// Stat computes the effective value of a stat: base value, then each modifier
// spec in order race → permanent → timed (insertion order, active only).
// Within a spec, add applies before mul. Missing keys default to 0 (base/add)
// and 1 (mul).
func (c *Character) Stat(key string, timed []TimedModifier, day int) float64 {
	value := c.BaseStats[key]
	apply := func(spec types.ModifierSpec) {
		if spec.Add != nil {
			value += spec.Add[key]
		}
		if spec.Mul != nil {
			if m, ok := spec.Mul[key]; ok {
				value *= m
			}
		}
	}
	for _, spec := range c.RaceModifiers {
		apply(spec)
	}
	for _, spec := range c.PermanentModifiers {
		apply(spec)
	}
	for _, mod := range timed {
		if !mod.ActiveOn(day) {
			continue
		}
		for _, spec := range mod.Modifiers {
			apply(spec)
		}
	}
	return value
}

// HasTag reports whether the character carries a gameplay tag.
func (c *Character) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// BuildFromRace creates a new character from a race template. Empty override
// values fall back to the race defaults.
func BuildFromRace(race types.RaceDef, name string) *Character {
	c := &Character{
		Name:          name,
		RaceID:        race.ID,
		BodyType:      orDefault(race.BodyTypeDefault, "humanoid"),
		Size:          orDefault(race.SizeDefault, "medium"),
		Archetype:     orDefault(race.ArchetypeDefault, "forest_creature"),
		FlavorTags:    append([]string(nil), race.FlavorTags...),
		Tags:          append([]string(nil), race.Tags...),
		BaseStats:     map[string]float64{},
		RaceModifiers: append([]types.ModifierSpec(nil), race.Modifiers...),
	}
	for k, v := range DefaultBaseStats {
		c.BaseStats[k] = v
	}
	return c
}

// SyncWithRace refreshes race-derived fields from the current race
// definition. Run after load to heal saves made against older content.
func (c *Character) SyncWithRace(race types.RaceDef) {
	c.Tags = append([]string(nil), race.Tags...)
	c.RaceModifiers = append([]types.ModifierSpec(nil), race.Modifiers...)
	if c.BaseStats == nil {
		c.BaseStats = map[string]float64{}
	}
	for k, v := range DefaultBaseStats {
		if _, ok := c.BaseStats[k]; !ok {
			c.BaseStats[k] = v
		}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
