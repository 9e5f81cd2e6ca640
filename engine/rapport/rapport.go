// Package rapport is the relationship ledger. Scores are clamped integers in
// [-5,5]; callers apply any narrative or gameplay consequence separately.
package rapport

import "github.com/nathoo/emberwood/engine/state"

// Score bounds.
const (
	Min = -5
	Max = 5
)

// Relationship tiers by score threshold.
const (
	TierHostile  = "hostile"
	TierWary     = "wary"
	TierNeutral  = "neutral"
	TierFriendly = "friendly"
	TierBonded   = "bonded"
)

// Get returns the rapport score with an NPC or creature, 0 if unknown.
func Get(s *state.GameState, id string) int {
	return s.Rapport[id]
}

// Change shifts rapport by delta, clamps to [-5,5], and returns the new
// value. A zero-delta call still materializes the ledger entry.
func Change(s *state.GameState, id string, delta int) int {
	v := s.Rapport[id] + delta
	if v < Min {
		v = Min
	}
	if v > Max {
		v = Max
	}
	s.Rapport[id] = v
	return v
}

// Tier maps a score to its relationship tier.
func Tier(score int) string {
	switch {
	case score <= -3:
		return TierHostile
	case score <= -1:
		return TierWary
	case score <= 1:
		return TierNeutral
	case score <= 3:
		return TierFriendly
	default:
		return TierBonded
	}
}
