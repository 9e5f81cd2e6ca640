package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberwood/engine/landmark"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/survival"
)

// currentRunestoneLandmark returns the landmark id if the player stands at a
// runestone landmark, or an explanatory message if not.
func (e *Engine) currentRunestoneLandmark() (string, string) {
	s := e.State
	if s.CurrentLandmark == "" {
		return "", "There is no runestone here. You would need to find one first.\n"
	}
	lm, ok := e.Registry.Landmark(s.CurrentLandmark)
	if !ok || !lm.Features["has_runestone"] {
		return "", "Nothing here answers to that. The runestones are elsewhere.\n"
	}
	return s.CurrentLandmark, ""
}

func (e *Engine) repairRunestone() string {
	id, msg := e.currentRunestoneLandmark()
	if id == "" {
		return msg
	}
	rs := e.State.Runestone(id)
	if rs.IsFullyRepaired {
		return "This runestone is whole. Its pulse is steady.\n"
	}
	if rs.IsPhysicallyRepaired {
		return "The stone is already sealed. Its resonance needs tuning next.\n"
	}
	ok, text := quest.ApplyPhysicalRepair(e.State, id)
	if ok {
		quest.UpdateOnRunestoneRepair(e.State, len(e.Registry.Runestones))
	}
	return text
}

func (e *Engine) tuneRunestone() string {
	id, msg := e.currentRunestoneLandmark()
	if id == "" {
		return msg
	}
	rs := e.State.Runestone(id)
	if rs.IsResonanceStable {
		return "The stone already hums in tune.\n"
	}
	ok, text := quest.TuneResonance(e.State, id, e.UI)
	if ok {
		quest.UpdateOnRunestoneRepair(e.State, len(e.Registry.Runestones))
	}
	return text
}

func (e *Engine) alignRunestone() string {
	id, msg := e.currentRunestoneLandmark()
	if id == "" {
		return msg
	}
	rs := e.State.Runestone(id)
	if rs.IsFullyRepaired {
		return "The runestone needs nothing more from you.\n"
	}
	ok, text := quest.ApplyPulseAlignment(e.State, id)
	if ok {
		quest.UpdateOnRunestoneRepair(e.State, len(e.Registry.Runestones))
	}
	return text
}

// mortarIngredients are the components of one batch of primitive mortar.
var mortarIngredients = []string{"clay_lump", "sand_handful", "ash_scoop"}

// mixMortar crafts one primitive mortar from clay, sand, and ash.
func (e *Engine) mixMortar() string {
	s := e.State
	for _, ing := range mortarIngredients {
		if !s.HasItem(ing) {
			return fmt.Sprintf("Mortar needs clay, sand, and ash. You are missing %s.\n",
				strings.ReplaceAll(ing, "_", " "))
		}
	}
	for _, ing := range mortarIngredients {
		s.RemoveItem(ing)
	}
	s.AddItem(quest.MortarItem)
	return "You work clay, sand, and ash together in your pan until it binds into a rough mortar.\n"
}

// describeSurroundings renders the current zone, landmark, and trail memory.
func (e *Engine) describeSurroundings(zone string, depth int) string {
	s := e.State
	var b strings.Builder

	switch {
	case depth <= 9:
		b.WriteString("Thin woodland, birdsong, the glade still close behind you.\n")
	case depth <= 24:
		b.WriteString("Older trees here. The light falls in narrow shafts and the quiet has weight.\n")
	default:
		b.WriteString("Deep forest. The canopy seals overhead and every sound feels watched.\n")
	}

	if s.CurrentLandmark != "" {
		if lm, ok := e.Registry.Landmark(s.CurrentLandmark); ok {
			fmt.Fprintf(&b, "You stand at %s (%s).\n", lm.Name,
				landmark.StabilityLabel(landmark.PathStability(s, lm.ID)))
			if lm.Features["has_runestone"] {
				b.WriteString(e.runestoneStateText(lm.ID))
			}
		}
	}

	if steps := s.ZoneSteps[zone]; steps > 20 {
		b.WriteString("Parts of this ground feel familiar underfoot.\n")
	}
	return b.String()
}

func (e *Engine) runestoneStateText(landmarkID string) string {
	rs := e.State.Runestone(landmarkID)
	switch {
	case rs.IsFullyRepaired:
		return "The runestone pulses slow and even, fully restored.\n"
	case rs.IsResonanceStable:
		return "The runestone hums in tune. It waits for its pulse to be aligned.\n"
	case rs.IsPhysicallyRepaired:
		return "The runestone is sealed with mortar, but its hum is off-key.\n"
	default:
		return "The runestone is fractured, its glyph tracks dark and misaligned.\n"
	}
}

// radioPing calls out on the radio. What answers depends on the radio and on
// the forest's mood.
func (e *Engine) radioPing() string {
	s := e.State
	if s.RadioVersion >= 2 {
		status, _ := quest.ProgressSummary(s)
		threat := quest.ThreatEncounterModifier(s)
		calm := "uneasy"
		if threat <= 0.90 {
			calm = "settling"
		}
		if threat <= 0.85 {
			calm = "calm"
		}
		return fmt.Sprintf("[RADIO] \"Still with you. The forest reads %s. %s.\"\n", calm, status)
	}
	if survival.CheckStarvation(s) {
		return "[RADIO] ...static...\n"
	}
	return "[RADIO] ...warm static... a presence, listening...\n"
}
