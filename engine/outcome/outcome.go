// Package outcome is the unified resolution framework: every encounter, ordeal,
// and rescue funnels into one of five outcome kinds, each a deterministic
// state transform that leaves stamina and condition inside their bounds.
package outcome

import (
	"math"

	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/survival"
)

// Kind enumerates the outcome dispatch.
type Kind int

const (
	Normal Kind = iota
	Retreat
	Collapse
	Sheltered
	Transported
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Retreat:
		return "retreat"
	case Collapse:
		return "collapse"
	case Sheltered:
		return "sheltered"
	case Transported:
		return "transported"
	default:
		return "unknown"
	}
}

// Context carries the parameters of a resolution.
type Context struct {
	SourceID         string
	TargetLandmarkID string
	TargetZone       string
	SafeShelter      bool
	Severity         float64 // collapse scaling, 0 means default 1.0
	Meta             map[string]string
}

// Resolve dispatches an outcome kind against the state and returns the
// narration. Every branch explicitly settles the sheltered flag.
func Resolve(s *state.GameState, r *rng.RNG, kind Kind, ctx Context) string {
	switch kind {
	case Retreat:
		return doRetreat(s, r)
	case Collapse:
		return doCollapse(s, r, ctx)
	case Sheltered:
		return doSheltered(s)
	case Transported:
		return doTransported(s, ctx)
	default:
		s.IsSheltered = false
		return ""
	}
}

func baseStaminaMax(s *state.GameState) float64 {
	return s.Character.Stat("stamina_max", s.TimedModifiers, s.Day)
}

func doRetreat(s *state.GameState, r *rng.RNG) string {
	s.IsSheltered = false

	text := "You pull back, heart hammering, until the forest loosens its grip.\n"
	zone := s.ActiveZone
	if zone != "glade" && s.Depth(zone) > 0 {
		depth := s.Depth(zone) - r.Between(1, 2)
		if depth < 0 {
			depth = 0
		}
		s.ZoneDepths[zone] = depth
	} else {
		s.ResetZoneDepth(zone)
		s.ActiveZone = "glade"
		text += "You stumble back into the glade.\n"
	}

	loss := math.Max(1, survival.EffectiveStaminaMax(s)*0.15)
	survival.SetStamina(s, s.Stamina-loss)

	if r.Chance(0.30) {
		survival.ChangeCondition(s, 1)
		text += "You took a knock on the way out.\n"
	}
	return text
}

func doCollapse(s *state.GameState, r *rng.RNG, ctx Context) string {
	s.IsSheltered = false

	severity := ctx.Severity
	if severity <= 0 {
		severity = 1.0
	}

	s.ResetZoneDepth(s.ActiveZone)
	s.ActiveZone = "glade"
	s.RestType = "collapse"

	if severity >= 1.0 {
		survival.ChangeCondition(s, 1)
	}
	survival.SetStamina(s, math.Floor(baseStaminaMax(s)*0.5*severity))

	// Narration bands: 25% glade-rescue, 10% echo-watch, 65% generic.
	// Flavor only, no state effect.
	roll := r.Float64()
	switch {
	case roll < 0.25:
		return "The world tilts and goes dark. You wake in the glade, dragged there by " +
			"something gentle you never saw.\n"
	case roll < 0.35:
		return "You black out to the crackle of your radio. When you wake in the glade, " +
			"a voice whispers that it kept watch.\n"
	default:
		return "Your legs give out. Much later you come to in the glade, bruised and " +
			"unsure how you got back.\n"
	}
}

func doSheltered(s *state.GameState) string {
	s.IsSheltered = true
	s.RestType = "camp"
	survival.SetStamina(s, math.Floor(baseStaminaMax(s)*0.75))
	survival.RecoverConditionAtCamp(s)

	return "You are held somewhere warm and dark, strangely safe. Rest comes whether " +
		"you want it or not.\n"
}

func doTransported(s *state.GameState, ctx Context) string {
	s.IsSheltered = false

	zone := ctx.TargetZone
	if zone == "" {
		zone = "glade"
	}
	s.ActiveZone = zone
	s.ResetZoneDepth(zone)
	if ctx.TargetLandmarkID != "" {
		s.CurrentLandmark = ctx.TargetLandmarkID
	} else {
		s.CurrentLandmark = ""
	}

	cost := math.Max(1, survival.EffectiveStaminaMax(s)*0.10)
	survival.SetStamina(s, s.Stamina-cost)

	return "The world smears sideways. When it settles, you are somewhere else entirely.\n"
}
