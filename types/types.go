// Package types defines the shared data structures for the Emberwood engine.
// This package contains only type definitions — no logic, no methods.
package types

// ModifierSpec is a single stat modification bundle. Add entries are applied
// before Mul entries within the same spec.
type ModifierSpec struct {
	Add map[string]float64 `json:"add,omitempty"`
	Mul map[string]float64 `json:"mul,omitempty"`
}

// Command is the parsed representation of a player command.
type Command struct {
	Verb string
	Args []string
}

// SeasonDef is one entry in the ordered season calendar.
type SeasonDef struct {
	Name   string
	Length int // days
}

// RaceDef is the base definition of a playable race.
type RaceDef struct {
	ID               string
	Name             string
	BodyTypeDefault  string
	SizeDefault      string
	ArchetypeDefault string
	Tags             []string // gameplay tags ("keen-smell", "forestborn")
	FlavorTags       []string // sensory/aesthetic tags for reactions
	Modifiers        []ModifierSpec
	ForageFlavor     string // optional line shown on forage events
}

// CreatureDef defines a forest creature the player can encounter.
type CreatureDef struct {
	ID          string
	Name        string
	Tags        []string
	FoodItems   []string // offerings that help calm attempts
	Severity    float64  // collapse severity when an encounter goes badly
	MinDepth    int
	Description string
}

// EventEffects is the typed effect payload of an event.
type EventEffects struct {
	InventoryAdd      []string
	InventoryAddCount [][2]int // per-item [min,max] randomized count, 1 if absent
	RapportDelta      map[string]int
	StaminaDelta      float64
	DurationDays      int // for tea-type events
	Modifiers         []ModifierSpec
}

// EventChecks gates an event behind progression state. Advisory only: the
// selection engine drops check filtering entirely rather than starve the pool.
type EventChecks struct {
	RequiresRunestoneRepairs int
}

// EventDef is a single random exploration event.
type EventDef struct {
	ID               string
	Text             string
	Type             string // "forage", "encounter", "tame", "tea", "flavor", "hazard"
	Category         string // "forage", "flavor", "hazard", "encounter", "boon"
	Effects          EventEffects
	Checks           EventChecks
	BaseWeight       float64
	DepthWeight      float64 // weight change per depth level past MinDepth
	MinDepth         int
	MaxDepth         int // -1 = unlimited
	SeasonWeights    map[string]float64
	PreferredSeasons []string
}

// LandmarkDef is a discoverable landmark within a zone.
type LandmarkDef struct {
	ID               string
	Name             string
	DepthMin         int
	DepthMax         int
	Tags             []string
	ShortDescription string
	LongDescription  string
	Features         map[string]bool // "has_runestone", "has_food", "has_water"
	EncounterBiases  map[string]float64
}

// RunestoneDef binds a runestone to its landmark.
type RunestoneDef struct {
	ID           string
	LandmarkID   string
	Name         string
	InitialState string // "fractured" (default) or "stable"
}

// TeaDef is a brewable tea recipe.
type TeaDef struct {
	ID           string
	Name         string
	Ingredients  []string
	DurationDays int
	Modifiers    []ModifierSpec
	Text         string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}
