// Package state defines the single mutable aggregate root for a running game.
// All nested collections are owned by GameState; other engine packages mutate
// them only through their own accessor functions so invariants stay in one
// place per concern.
package state

import (
	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
)

// CurrentSchemaVersion is written into every save. Loads of older versions
// pass through migration first.
const CurrentSchemaVersion = 3

// HistoryLimit bounds the recent-event FIFO used for repeat avoidance.
const HistoryLimit = 3

// RunestoneState is the per-landmark repair sub-state. Stages are strictly
// ordered and one-way: physical repair, then resonance, then full repair.
type RunestoneState struct {
	IsDiscovered         bool `json:"is_discovered"`
	IsFractured          bool `json:"is_fractured"`
	IsPhysicallyRepaired bool `json:"is_physically_repaired"`
	IsResonanceStable    bool `json:"is_resonance_stable"`
	IsFullyRepaired      bool `json:"is_fully_repaired"`
}

// Act1 is the canonical main-quest progress record. Counters are a cache of
// what runestone_states implies and are recomputed by the quest tracker; only
// the completion and acknowledgement flags carry independent meaning.
type Act1 struct {
	Started                bool `json:"started"`
	RunestonesTotal        int  `json:"runestones_total"`
	RunestonesRepaired     int  `json:"runestones_repaired"`
	FirstRunestoneFound    bool `json:"first_runestone_found"`
	FirstRepairDone        bool `json:"first_repair_done"`
	Completed              bool `json:"completed"`
	CompletionAcknowledged bool `json:"completion_acknowledged"`
}

// BellyState records an exclusive "contained" mode, whether a predator
// swallow or a voluntary shelter. While present, IsSheltered is implied and
// most movement commands are unavailable.
type BellyState struct {
	Active         bool   `json:"active"`
	CreatureID     string `json:"creature_id"`
	Mode           string `json:"mode"` // "predator" or "shelter"
	DepthBefore    int    `json:"depth_before"`
	LandmarkBefore string `json:"landmark_before"`
	TurnsInside    int    `json:"turns_inside"`
}

// GameState is everything that persists across a save/load cycle.
type GameState struct {
	SchemaVersion int `json:"schema_version"`

	Day           int    `json:"day"`
	CurrentSeason string `json:"current_season"`
	DayInSeason   int    `json:"day_in_season"`
	TimeOfDay     string `json:"time_of_day"`

	Stage      string `json:"stage"`
	ActiveZone string `json:"active_zone"`

	ZoneSteps  map[string]int `json:"zone_steps"`
	ZoneDepths map[string]int `json:"zone_depths"`

	CurrentLandmark     string         `json:"current_landmark"`
	DiscoveredLandmarks []string       `json:"discovered_landmarks"`
	LandmarkStability   map[string]int `json:"landmark_stability"`

	StepsSinceForage int `json:"steps_since_forage"`

	Character       *character.Character `json:"character"`
	Stamina         float64              `json:"stamina"`
	Condition       int                  `json:"condition"`
	DaysWithoutMeal int                  `json:"days_without_meal"`
	AteSnackToday   bool                 `json:"ate_snack_today"`
	AteMealToday    bool                 `json:"ate_meal_today"`
	RestType        string               `json:"rest_type"` // "camp" or "collapse"

	Inventory           []string `json:"inventory"`
	PendingBrews        []string `json:"pending_brews"`
	PendingStaminaFloor float64  `json:"pending_stamina_floor"`

	Rapport  map[string]int    `json:"rapport"`
	NPCState map[string]string `json:"npc_state"`

	RadioVersion        int  `json:"radio_version"`
	PendingRadioUpgrade bool `json:"pending_radio_upgrade"`

	Act1            Act1                       `json:"forest_act1"`
	RunestoneStates map[string]*RunestoneState `json:"runestone_states"`

	BellyState  *BellyState `json:"belly_state,omitempty"`
	IsSheltered bool        `json:"is_sheltered"`

	TimedModifiers []character.TimedModifier `json:"timed_modifiers"`
	RecentEvents   []string                  `json:"recent_events"`
	Flags          map[string]bool           `json:"flags"`

	RNGSeed     int64 `json:"rng_seed"`
	RNGPosition int64 `json:"rng_position"`
}

// New creates a fresh day-1 state for the given character.
func New(c *character.Character, cal *calendar.Config, seed int64) *GameState {
	s := &GameState{
		SchemaVersion: CurrentSchemaVersion,
		Day:           1,
		TimeOfDay:     calendar.Dawn,
		Stage:         "intro",
		ActiveZone:    "glade",
		Character:     c,
		RestType:      "camp",
		RNGSeed:       seed,
	}
	s.Normalize()
	s.RecalculateCalendar(cal)
	s.Stamina = c.Stat("stamina_max", nil, 1)
	return s
}

// Normalize fills nil collections so loaded or hand-built states are safe to
// mutate without nil checks at every site.
func (s *GameState) Normalize() {
	if s.ZoneSteps == nil {
		s.ZoneSteps = map[string]int{}
	}
	if s.ZoneDepths == nil {
		s.ZoneDepths = map[string]int{}
	}
	if s.LandmarkStability == nil {
		s.LandmarkStability = map[string]int{}
	}
	if s.Rapport == nil {
		s.Rapport = map[string]int{}
	}
	if s.NPCState == nil {
		s.NPCState = map[string]string{}
	}
	if s.RunestoneStates == nil {
		s.RunestoneStates = map[string]*RunestoneState{}
	}
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	if s.DiscoveredLandmarks == nil {
		s.DiscoveredLandmarks = []string{}
	}
	if s.RecentEvents == nil {
		s.RecentEvents = []string{}
	}
	if s.RestType == "" {
		s.RestType = "camp"
	}
}

// RecalculateCalendar rederives season fields from the day counter. Season
// fields are never hand-edited; this is the only writer.
func (s *GameState) RecalculateCalendar(cal *calendar.Config) {
	s.CurrentSeason, s.DayInSeason = cal.SeasonForDay(s.Day)
}

// NewDay advances the day counter by exactly one, recalculates the calendar,
// and resets the time of day to dawn.
func (s *GameState) NewDay(cal *calendar.Config) {
	s.Day++
	s.RecalculateCalendar(cal)
	s.TimeOfDay = calendar.Dawn
}

// PruneExpiredEffects drops timed modifiers that are no longer active on the
// current day. Runs once per day-processing cycle.
func (s *GameState) PruneExpiredEffects() {
	kept := s.TimedModifiers[:0]
	for _, m := range s.TimedModifiers {
		if m.ActiveOn(s.Day) {
			kept = append(kept, m)
		}
	}
	s.TimedModifiers = kept
}

// HasItem reports whether at least one of the item is in the inventory.
func (s *GameState) HasItem(id string) bool {
	return s.CountItem(id) > 0
}

// CountItem returns how many of the item the inventory holds.
func (s *GameState) CountItem(id string) int {
	n := 0
	for _, it := range s.Inventory {
		if it == id {
			n++
		}
	}
	return n
}

// AddItem appends an item to the inventory. Order is display-only.
func (s *GameState) AddItem(id string) {
	s.Inventory = append(s.Inventory, id)
}

// RemoveItem removes one instance of an item. Returns false if absent.
func (s *GameState) RemoveItem(id string) bool {
	for i, it := range s.Inventory {
		if it == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// PushRecentEvent appends an event id to the repeat-avoidance FIFO and trims
// it to the history limit.
func (s *GameState) PushRecentEvent(id string) {
	s.RecentEvents = append(s.RecentEvents, id)
	if len(s.RecentEvents) > HistoryLimit {
		s.RecentEvents = s.RecentEvents[len(s.RecentEvents)-HistoryLimit:]
	}
}

// SeenRecently reports whether an event id is in the recent FIFO.
func (s *GameState) SeenRecently(id string) bool {
	for _, e := range s.RecentEvents {
		if e == id {
			return true
		}
	}
	return false
}

// Flag reports a named boolean flag, false when unset.
func (s *GameState) Flag(name string) bool {
	return s.Flags[name]
}

// SetFlag sets a named boolean flag.
func (s *GameState) SetFlag(name string, v bool) {
	s.Flags[name] = v
}

// Runestone returns the sub-state record for a landmark, creating a fresh
// fractured record on first access.
func (s *GameState) Runestone(landmarkID string) *RunestoneState {
	rs, ok := s.RunestoneStates[landmarkID]
	if !ok {
		rs = &RunestoneState{IsFractured: true}
		s.RunestoneStates[landmarkID] = rs
	}
	return rs
}

// HasDiscoveredLandmark reports whether a landmark id is in the discovered
// list.
func (s *GameState) HasDiscoveredLandmark(id string) bool {
	for _, l := range s.DiscoveredLandmarks {
		if l == id {
			return true
		}
	}
	return false
}

// MarkLandmarkDiscovered records a landmark discovery once.
func (s *GameState) MarkLandmarkDiscovered(id string) {
	if !s.HasDiscoveredLandmark(id) {
		s.DiscoveredLandmarks = append(s.DiscoveredLandmarks, id)
	}
}

// Depth returns the current depth reached in a zone this visit.
func (s *GameState) Depth(zone string) int {
	return s.ZoneDepths[zone]
}

// ResetZoneDepth drops the visit-scoped depth entry for a zone. Zone step
// counts persist across visits.
func (s *GameState) ResetZoneDepth(zone string) {
	delete(s.ZoneDepths, zone)
}
