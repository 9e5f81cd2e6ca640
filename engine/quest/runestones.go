// Package quest implements the main-quest progression: the per-landmark
// runestone repair state machine, the aggregate Act I tracker, and the
// derived forest modifiers other subsystems consume.
package quest

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

// MortarItem is the consumable required for the physical repair stage.
const MortarItem = "primitive_mortar"

// UI is the interaction surface the resonance tuning stage needs.
type UI interface {
	Display(text string)
	Menu(prompt string, options []string) string
}

// CanRepair reports whether the landmark hosts a runestone that still needs
// work.
func CanRepair(s *state.GameState, landmark types.LandmarkDef) bool {
	if !landmark.Features["has_runestone"] {
		return false
	}
	rs := s.Runestone(landmark.ID)
	return rs.IsFractured && !rs.IsFullyRepaired
}

// ApplyPhysicalRepair performs stage one: sealing the cracks with mortar.
// Consumes exactly one mortar on success.
func ApplyPhysicalRepair(s *state.GameState, landmarkID string) (bool, string) {
	if !s.HasItem(MortarItem) {
		return false, "You need primitive mortar to repair the runestone. Gather clay and sand " +
			"from the creek, ash from your campfire, and work them together at camp.\n"
	}
	s.RemoveItem(MortarItem)
	s.Runestone(landmarkID).IsPhysicallyRepaired = true

	return true, "You work the primitive mortar into the cracks and fractures of the runestone, " +
		"carefully aligning the broken pieces. The glyph tracks begin to align, though the " +
		"stone still pulses with unstable magic.\n"
}

// TuneResonance performs stage two: matching the stone's harmonic frequency
// with the radio. Requires physical repair first. Choosing to give up aborts
// with no state change.
func TuneResonance(s *state.GameState, landmarkID string, ui UI) (bool, string) {
	rs := s.Runestone(landmarkID)
	if !rs.IsPhysicallyRepaired {
		return false, "The runestone must be physically repaired before you can tune its resonance.\n"
	}

	ui.Display("You activate your radio and hold it near the runestone. Static crackles, " +
		"then resolves into a low, distorted hum. The frequency feels wrong, like a song " +
		"played out of tune.\n")
	if s.RadioVersion >= 2 {
		ui.Display("[RADIO] \"Steady... adjust slowly. The frequency needs to align with the " +
			"stone's natural pulse.\"\n")
	} else {
		ui.Display("[RADIO] Warm pulse... steady... hold...\n")
	}

	choice := ui.Menu(
		"The radio hums. What do you do?",
		[]string{"Hold steady and adjust slowly", "Try a different frequency", "Give up"},
	)
	if strings.Contains(strings.ToLower(choice), "give up") {
		return false, "You step back, the resonance still unstable.\n"
	}
	if strings.Contains(strings.ToLower(choice), "different") {
		ui.Display("You twist the dial, searching for the right frequency. The static shifts, " +
			"then suddenly clicks into place.\n")
	} else {
		ui.Display("You hold the radio steady, making tiny adjustments. The static gradually " +
			"resolves into a clear, steady hum.\n")
	}

	rs.IsResonanceStable = true

	msg := "The mortar glows faintly as the resonance locks into place. The runestone's " +
		"magical pulse steadies, though it still feels incomplete.\n"
	if s.RadioVersion >= 2 {
		msg += "[RADIO] \"Perfect. The stone's resonance is stable now. One more step remains.\"\n"
	} else {
		msg += "[RADIO] Resonance... stable... one step remains...\n"
	}
	return true, msg
}

// ApplyPulseAlignment performs the final stage. Requires resonance stability
// first. Grants a one-day stamina buff on success.
func ApplyPulseAlignment(s *state.GameState, landmarkID string) (bool, string) {
	rs := s.Runestone(landmarkID)
	if !rs.IsResonanceStable {
		return false, "The runestone's resonance must be stable before you can align its pulse.\n"
	}

	rs.IsFullyRepaired = true
	rs.IsFractured = false

	s.TimedModifiers = append(s.TimedModifiers, character.TimedModifier{
		Source:       fmt.Sprintf("runestone_repair:%s", landmarkID),
		Modifiers:    []types.ModifierSpec{{Add: map[string]float64{"stamina_max": 0.5}}},
		ExpiresOnDay: s.Day + 1,
	})

	return true, "You place your hand on the runestone, feeling its pulse synchronize with " +
		"your own heartbeat. The forest's magical grid steadies around you, distortions " +
		"fading. The stone is fully repaired, its power restored.\n"
}
