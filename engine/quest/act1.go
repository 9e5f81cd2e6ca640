package quest

import (
	"fmt"

	"github.com/nathoo/emberwood/engine/state"
)

// RequiredRunestones is the repair count that completes Act I.
const RequiredRunestones = 3

// TownPathFlag is set exactly once when Act I completes.
const TownPathFlag = "town_path_known"

// RepairedCount recomputes the number of fully repaired runestones by
// scanning the per-landmark sub-states. The Act1 counter is a cache of this.
func RepairedCount(s *state.GameState) int {
	n := 0
	for _, rs := range s.RunestoneStates {
		if rs.IsFullyRepaired {
			n++
		}
	}
	return n
}

// DiscoveredCount returns how many runestones the player has found.
func DiscoveredCount(s *state.GameState) int {
	n := 0
	for _, rs := range s.RunestoneStates {
		if rs.IsDiscovered {
			n++
		}
	}
	return n
}

// UpdateOnRunestoneFound records a runestone discovery in the Act1 tracker.
func UpdateOnRunestoneFound(s *state.GameState, landmarkID string, totalRunestones int) {
	s.Runestone(landmarkID).IsDiscovered = true
	s.Act1.Started = true
	s.Act1.RunestonesTotal = totalRunestones
	s.Act1.FirstRunestoneFound = true
}

// UpdateOnRunestoneRepair refreshes the Act1 tracker after a repair stage
// lands. Completion fires its side effects exactly once.
func UpdateOnRunestoneRepair(s *state.GameState, totalRunestones int) {
	s.Act1.Started = true
	s.Act1.RunestonesTotal = totalRunestones

	repaired := RepairedCount(s)
	s.Act1.RunestonesRepaired = repaired
	s.Act1.FirstRepairDone = repaired > 0

	wasCompleted := s.Act1.Completed
	if repaired >= RequiredRunestones && !wasCompleted {
		s.Act1.Completed = true
		s.SetFlag(TownPathFlag, true)
	}
}

// IsComplete reports whether Act I is done.
func IsComplete(s *state.GameState) bool {
	return s.Act1.Completed
}

// Stage derives the quest stage: 0 untouched, 1 after a discovery, 2 after a
// repair, 3 on completion. Read-only accessor; nothing stores this.
func Stage(s *state.GameState) int {
	switch {
	case s.Act1.Completed:
		return 3
	case s.Act1.FirstRepairDone:
		return 2
	case s.Act1.Started:
		return 1
	default:
		return 0
	}
}

// ProgressSummary renders Act I progress for status displays.
func ProgressSummary(s *state.GameState) (status, progress string) {
	repaired := s.Act1.RunestonesRepaired
	total := s.Act1.RunestonesTotal

	switch {
	case s.Act1.Completed || (total > 0 && repaired >= total):
		status = "Stabilized"
	case total > 0:
		status = fmt.Sprintf("%d / %d stabilized", repaired, total)
	case repaired > 0:
		status = fmt.Sprintf("%d stabilized", repaired)
	default:
		status = "0 stabilized"
	}

	switch {
	case total > 0:
		progress = fmt.Sprintf("%d/%d runestones repaired", repaired, total)
	case repaired == 1:
		progress = "1 runestone repaired"
	case repaired > 1:
		progress = fmt.Sprintf("%d runestones repaired", repaired)
	default:
		progress = "No runestones repaired yet"
	}
	return status, progress
}

// ShouldShowCompletionNarrative reports whether the one-time completion
// narrative is still pending acknowledgement.
func ShouldShowCompletionNarrative(s *state.GameState) bool {
	return s.Act1.Completed && !s.Act1.CompletionAcknowledged
}

// MarkCompletionAcknowledged records that the completion narrative has been
// shown.
func MarkCompletionAcknowledged(s *state.GameState) {
	s.Act1.CompletionAcknowledged = true
}
