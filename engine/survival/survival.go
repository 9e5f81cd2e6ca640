// Package survival owns the resource mechanics: hunger accumulation, the
// condition (injury) track, rest quality, and the combined stamina cap that
// bounds every stamina mutation.
package survival

import (
	"math"

	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/state"
)

// Condition track bounds.
const (
	ConditionMin = 0
	ConditionMax = 3
)

// StarvationDays is the hunger count at which the game ends.
const StarvationDays = 4

var conditionLabels = map[int]string{
	0: "fine",
	1: "bruised",
	2: "battered",
	3: "near collapse",
}

// ConditionLabel returns a short human-readable label for a condition level.
func ConditionLabel(condition int) string {
	if l, ok := conditionLabels[condition]; ok {
		return l
	}
	return "fine"
}

// ChangeCondition shifts the condition track by delta, clamped to [0,3], and
// returns the new value.
func ChangeCondition(s *state.GameState, delta int) int {
	v := s.Condition + delta
	if v < ConditionMin {
		v = ConditionMin
	}
	if v > ConditionMax {
		v = ConditionMax
	}
	s.Condition = v
	return v
}

// ConditionEffects reports the stamina-cap reduction and the collapse risk
// multiplier for the current condition level. The risk multiplier is consumed
// by encounter logic, not by this package.
func ConditionEffects(condition int) (capReduction, riskMultiplier float64) {
	switch {
	case condition >= 3:
		return 0.15, 2.0
	case condition >= 2:
		return 0.10, 1.5
	case condition >= 1:
		return 0.05, 1.2
	default:
		return 0.0, 1.0
	}
}

// RecoverConditionAtCamp applies one step of recovery when resting at the
// glade. Returns the new condition value.
func RecoverConditionAtCamp(s *state.GameState) int {
	if s.Condition > 0 {
		return ChangeCondition(s, -1)
	}
	return s.Condition
}

// ShouldForceRetreat reports whether the player is too battered to continue
// exploring and must be pulled out.
func ShouldForceRetreat(s *state.GameState) bool {
	return s.Condition >= 3 && s.Stamina <= 0.5
}

// UpdateHungerAtDayStart advances the hunger counter at the start of a new
// day. A proper meal yesterday resets it; otherwise a snack holds the line
// for one day. The snack flag is consumed either way.
func UpdateHungerAtDayStart(s *state.GameState, ateProperMeal bool) {
	if ateProperMeal {
		s.DaysWithoutMeal = 0
	} else if !s.AteSnackToday {
		s.DaysWithoutMeal++
	}
	s.AteSnackToday = false
}

// HungerCapMultiplier maps days without a proper meal to a stamina-cap
// multiplier. Zero means starvation, checked separately.
func HungerCapMultiplier(daysWithoutMeal int) float64 {
	switch daysWithoutMeal {
	case 0:
		return 1.0
	case 1:
		return 0.80
	case 2:
		return 0.55
	case 3:
		return 0.30
	default:
		return 0.0
	}
}

// RestCapMultiplier maps the last rest quality to a stamina-cap multiplier.
// Anything other than a collapse counts as camp rest.
func RestCapMultiplier(restType string) float64 {
	if restType == "collapse" {
		return 0.5
	}
	return 1.0
}

// CombinedStaminaCap applies rest, hunger, and condition caps to a base max.
// The strictest multiplier wins. Returns the capped value plus the rest and
// hunger multipliers for status messaging.
func CombinedStaminaCap(s *state.GameState, baseStaminaMax float64) (capped, restCap, hungerCap float64) {
	restCap = RestCapMultiplier(s.RestType)
	hungerCap = HungerCapMultiplier(s.DaysWithoutMeal)
	capReduction, _ := ConditionEffects(s.Condition)
	conditionCap := 1.0 - capReduction

	final := math.Min(restCap, math.Min(hungerCap, conditionCap))
	return baseStaminaMax * final, restCap, hungerCap
}

// EffectiveStaminaMax is the authoritative stamina ceiling: the character's
// stat-engine max with all caps applied. Raw stat values are never shown or
// used for clamping without this.
func EffectiveStaminaMax(s *state.GameState) float64 {
	base := s.Character.Stat("stamina_max", s.TimedModifiers, s.Day)
	capped, _, _ := CombinedStaminaCap(s, base)
	return capped
}

// SetStamina assigns stamina clamped to [0, effective max] and returns the
// stored value.
func SetStamina(s *state.GameState, value float64) float64 {
	max := EffectiveStaminaMax(s)
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	s.Stamina = value
	return value
}

// CheckStarvation reports whether the player has starved, independent of the
// current stamina value.
func CheckStarvation(s *state.GameState) bool {
	return s.DaysWithoutMeal >= StarvationDays
}

// HungerStatusMessage describes the player's hunger on waking.
func HungerStatusMessage(daysWithoutMeal int) string {
	switch daysWithoutMeal {
	case 0:
		return "You wake steady, stomach full enough to face the day."
	case 1:
		return "You wake light-headed. The forest feels heavier."
	case 2:
		return "Your limbs ache and colors smear at the edges."
	default:
		return "You can barely stand. Each breath feels misaligned."
	}
}

// FleeSucceeds rolls a flee attempt. High stamina helps, depth hurts, and
// rapport with the creature cuts both ways.
func FleeSucceeds(r *rng.RNG, rapport int, depth int, staminaRatio float64) bool {
	chance := 0.6 + staminaRatio*0.3 - math.Min(0.2, float64(depth)*0.01) + float64(rapport)*0.05
	return r.Chance(clamp(chance, 0.2, 0.9))
}

// CalmSucceeds rolls a calm attempt. A food offering helps a lot.
func CalmSucceeds(r *rng.RNG, rapport int, hasFood bool) bool {
	chance := 0.4 + float64(rapport)*0.08
	if hasFood {
		chance += 0.3
	}
	return r.Chance(clamp(chance, 0.15, 0.85))
}

// StandGroundSucceeds rolls the riskier stand-ground option.
func StandGroundSucceeds(r *rng.RNG, rapport int, staminaRatio float64) bool {
	chance := 0.35 + staminaRatio*0.25 + float64(rapport)*0.1
	return r.Chance(clamp(chance, 0.2, 0.8))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
