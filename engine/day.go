package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/landmark"
	"github.com/nathoo/emberwood/engine/outcome"
	"github.com/nathoo/emberwood/engine/parser"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/rapport"
	"github.com/nathoo/emberwood/engine/survival"
	"github.com/nathoo/emberwood/types"
)

// Run drives the game from the current state until the player quits or the
// run ends. Synchronous and single-threaded; the only suspension points are
// the blocking UI calls.
func (e *Engine) Run() {
	if e.State.Stage == "intro" {
		if e.Registry.Game.Intro != "" {
			e.UI.Display(e.Registry.Game.Intro + "\n")
		}
		e.State.Stage = "wake"
	}

	for !e.quitRequested {
		if !e.runDay() {
			return
		}
		if e.quitRequested {
			return
		}
		choice := e.UI.Menu("Night falls. What now?", []string{"Continue to the next day", "Save and quit"})
		if strings.Contains(strings.ToLower(choice), "quit") {
			e.persist()
			return
		}
		e.State.NewDay(e.Calendar)
	}
}

// runDay processes one full day. Returns false when the run is over.
func (e *Engine) runDay() bool {
	s := e.State

	s.PruneExpiredEffects()

	dayStartInventory := countItems(s.Inventory)
	dayStartRapport := copyRapport(s.Rapport)

	survival.UpdateHungerAtDayStart(s, s.AteMealToday)
	s.AteMealToday = false
	if survival.CheckStarvation(s) {
		e.UI.Display("You collapse, your connection to the forest fraying beyond repair. " +
			"Without proper sustenance, the world fades around you.\n")
		e.UI.Display("Your journey ends here.\n")
		e.persist()
		return false
	}

	e.wake()

	// Route by location until the day is spent. Containment preempts the
	// zone handlers: a held player has no movement commands.
	for s.TimeOfDay != calendar.Night && !e.quitRequested {
		var ended bool
		switch {
		case s.BellyState != nil && s.BellyState.Active:
			ended = e.containedPhase()
		case s.ActiveZone == "glade" || s.ActiveZone == "":
			ended = e.gladePhase()
		default:
			ended = e.explorePhase(s.ActiveZone)
		}
		if ended {
			break
		}
	}

	// A mid-day quit already persisted; skip the nightly summary.
	if e.quitRequested {
		return true
	}

	e.UI.Display(e.daySummary(dayStartInventory, dayStartRapport))
	e.persist()
	return true
}

// wake applies the morning recovery: wake-restore stat, any stamina floor
// owed from a partial rest, deferred radio upgrades, and overnight brews.
func (e *Engine) wake() {
	s := e.State
	s.Stage = "wake"
	s.TimeOfDay = calendar.Dawn

	e.UI.Display(fmt.Sprintf("— Day %d, %s —\n", s.Day, s.CurrentSeason))
	e.UI.Display(survival.HungerStatusMessage(s.DaysWithoutMeal) + "\n")

	restore := s.Character.Stat("stamina_wake_restore", s.TimedModifiers, s.Day)
	if s.RestType == "camp" {
		restore = s.Character.Stat("stamina_camp_restore", s.TimedModifiers, s.Day)
	}
	survival.SetStamina(s, s.Stamina+restore)

	if s.PendingStaminaFloor > 0 {
		if s.Stamina < s.PendingStaminaFloor {
			survival.SetStamina(s, s.PendingStaminaFloor)
		}
		s.PendingStaminaFloor = 0
	}

	if s.PendingRadioUpgrade {
		s.RadioVersion++
		s.PendingRadioUpgrade = false
		e.UI.Display("Overnight the radio's static thinned. The voice on the other end comes through clearer now.\n")
	}

	e.applyPendingBrews()

	// RestType stays as last night's rest; the next rest overwrites it.
	if s.RestType == "collapse" {
		e.UI.Display("You slept where you fell. The rest was poor.\n")
	}
	s.TimeOfDay = calendar.Day
	s.Stage = "glade"
}

// gladePhase handles one command at the glade. Returns true when the day
// ends.
func (e *Engine) gladePhase() bool {
	s := e.State
	s.Stage = "glade"
	s.ActiveZone = "glade"

	cmd := parser.Parse(e.UI.Prompt("[glade] >"))
	switch cmd.Verb {
	case "look":
		e.UI.Display("The glade holds its small circle of calm: your firepit, your bedroll, " +
			"and the wall of trees beyond.\n")
	case "status":
		e.UI.Display(e.statusText())
	case "inventory":
		e.UI.Display(e.inventoryText())
	case "journal":
		status, progress := quest.ProgressSummary(s)
		e.UI.Display(fmt.Sprintf("Forest: %s. %s.\n", status, progress))
		e.UI.Display(e.rapportText())
	case "eat":
		e.UI.Display(e.eat(strings.Join(cmd.Args, "_")))
	case "brew":
		e.UI.Display(e.brew(strings.Join(cmd.Args, "_")))
	case "mix":
		e.UI.Display(e.mixMortar())
	case "ping":
		e.UI.Display(e.radioPing())
	case "help":
		e.UI.Display("Here you can: look, status, inventory, journal, eat <food>, brew <tea>, " +
			"mix (craft mortar), ping, move (enter the forest), camp (end the day), quit.\n")
	default:
		switch Dispatch(s.Stage, cmd) {
		case ActQuit:
			e.quitRequested = true
			e.persist()
			return true
		case ActEnterForest:
			s.ActiveZone = "forest"
			s.Stage = "explore:forest"
			e.UI.Display("You step past the treeline. The light changes almost at once.\n")
			return false
		case ActCamp, ActStay:
			if cmd.Verb == "camp" || cmd.Verb == "wait" {
				return e.campForNight()
			}
			e.UI.Display(noResponseText("glade"))
		default:
			e.UI.Display(noResponseText("glade"))
		}
	}
	return false
}

// campForNight ends the day at the glade: a cooked meal if the larder allows,
// camp rest, one step of condition recovery.
func (e *Engine) campForNight() bool {
	s := e.State
	s.Stage = "camp"

	choice := e.UI.Menu("Settle in for the night?", []string{"Cook a meal and sleep", "Sleep hungry"})
	if strings.Contains(strings.ToLower(choice), "cook") {
		e.UI.Display(e.campMeal())
	}
	s.RestType = "camp"
	survival.RecoverConditionAtCamp(s)
	e.UI.Display("You bank the fire and let the dark close over the glade.\n")
	s.TimeOfDay = calendar.Night
	return true
}

// explorePhase handles one command inside a zone. Returns true when the day
// ends.
func (e *Engine) explorePhase(zone string) bool {
	s := e.State
	s.Stage = "explore:" + zone

	if survival.ShouldForceRetreat(s) {
		e.UI.Display("Your body overrules you. You cannot go on like this.\n")
		e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Retreat, outcome.Context{}))
		return false
	}

	depth := s.Depth(zone)
	cmd := parser.Parse(e.UI.Prompt(fmt.Sprintf("[%s, depth %d] >", zone, depth)))
	switch cmd.Verb {
	case "look":
		e.UI.Display(e.describeSurroundings(zone, depth))
	case "status":
		e.UI.Display(e.statusText())
	case "inventory":
		e.UI.Display(e.inventoryText())
	case "eat":
		e.UI.Display(e.eat(strings.Join(cmd.Args, "_")))
	case "repair":
		e.UI.Display(e.repairRunestone())
	case "tune":
		e.UI.Display(e.tuneRunestone())
	case "align":
		e.UI.Display(e.alignRunestone())
	case "mix":
		e.UI.Display(e.mixMortar())
	case "ping":
		e.UI.Display(e.radioPing())
	case "help":
		e.UI.Display("Out here you can: look, status, inventory, eat <food>, move (go deeper), " +
			"leave (head back), camp, mix, repair / tune / align (at a runestone), ping, quit.\n")
	default:
		switch Dispatch(s.Stage, cmd) {
		case ActQuit:
			e.quitRequested = true
			e.persist()
			return true
		case ActExplore:
			return e.exploreStep(zone)
		case ActLeave:
			e.UI.Display("You turn back, following your own trail out.\n")
			s.ResetZoneDepth(zone)
			s.ActiveZone = "glade"
			s.CurrentLandmark = ""
			return false
		case ActCamp:
			e.UI.Display("You make a rough camp where you stand. The forest watches you sleep.\n")
			s.ActiveZone = "glade"
			s.ResetZoneDepth(zone)
			s.CurrentLandmark = ""
			return e.campForNight()
		default:
			e.UI.Display(noResponseText(s.Stage))
		}
	}
	return false
}

// exploreStep performs one exploration action: advance depth (the soft depth
// gate may hold the player back without blocking the step), roll landmark
// discovery, draw and apply one event, pay the stamina cost. Returns true
// when the day ends.
func (e *Engine) exploreStep(zone string) bool {
	s := e.State

	newDepth := s.Depth(zone) + 1
	if quest.AllowDeepDepthRoll(s, e.RNG, newDepth) {
		s.ZoneDepths[zone] = newDepth
	} else {
		e.UI.Display("The paths twist back on themselves. However far you walk, you gain no ground.\n")
		newDepth = s.Depth(zone)
	}
	s.ZoneSteps[zone]++

	if lm := e.Landmarks.SelectForDiscovery(s, e.RNG, newDepth); lm != nil {
		e.arriveAtLandmark(lm.ID)
	}

	if evt := e.Pool.Draw(s, e.RNG, newDepth); evt != nil {
		e.UI.Display(e.Pool.Apply(s, e.RNG, evt))
		// Event stamina deltas land raw; settle them inside the cap.
		survival.SetStamina(s, s.Stamina)

		// An encounter can turn from a sighting into a confrontation. The
		// confrontation consumes the step; its outcome settles all costs.
		if evt.Category == "encounter" {
			if ended, confronted := e.maybeCreatureThreat(evt, zone, newDepth); confronted {
				return ended
			}
		}
	}

	cost := 1.0 * quest.StaminaCostModifier(s, newDepth)
	survival.SetStamina(s, s.Stamina-cost)

	if s.Stamina <= 0 {
		e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Collapse, outcome.Context{Severity: 1.0}))
		s.CurrentLandmark = ""
		s.TimeOfDay = calendar.Night
		s.Stage = "collapse"
		return true
	}
	return false
}

// arriveAtLandmark records a discovery or revisit and narrates it.
func (e *Engine) arriveAtLandmark(id string) {
	s := e.State
	lm, ok := e.Registry.Landmark(id)
	if !ok {
		return
	}
	s.CurrentLandmark = id

	if s.HasDiscoveredLandmark(id) {
		landmark.BumpPathStability(s, id)
		e.UI.Display(fmt.Sprintf("You recognize %s. The way here felt surer this time.\n", lm.Name))
		if lm.ShortDescription != "" {
			e.UI.Display(lm.ShortDescription + "\n")
		}
		return
	}

	s.MarkLandmarkDiscovered(id)
	landmark.EnsureMinimumStability(s, id, 1)
	e.UI.Display(fmt.Sprintf("You come upon %s.\n", lm.Name))
	if lm.LongDescription != "" {
		e.UI.Display(lm.LongDescription + "\n")
	}
	if lm.Features["has_runestone"] {
		e.discoverRunestone(id)
	}
}

// discoverRunestone records finding the runestone at a landmark. A stone
// whose content definition starts out stable needs no repair work and counts
// as restored from the moment it is found.
func (e *Engine) discoverRunestone(landmarkID string) {
	s := e.State

	def, bound := e.Registry.RunestoneAt(landmarkID)
	if bound && def.InitialState == "stable" {
		rs := s.Runestone(landmarkID)
		rs.IsFractured = false
		rs.IsPhysicallyRepaired = true
		rs.IsResonanceStable = true
		rs.IsFullyRepaired = true
		quest.UpdateOnRunestoneFound(s, landmarkID, len(e.Registry.Runestones))
		quest.UpdateOnRunestoneRepair(s, len(e.Registry.Runestones))
		e.UI.Display(fmt.Sprintf("%s stands whole here, its glyph tracks bright and its pulse steady.\n",
			runestoneDisplayName(def)))
		return
	}

	quest.UpdateOnRunestoneFound(s, landmarkID, len(e.Registry.Runestones))
	if bound && def.Name != "" {
		e.UI.Display(fmt.Sprintf("%s stands here, fractured, its glyphs misaligned and dark.\n", def.Name))
		return
	}
	e.UI.Display("A fractured runestone stands here, its glyphs misaligned and dark.\n")
}

func runestoneDisplayName(def types.RunestoneDef) string {
	if def.Name != "" {
		return def.Name
	}
	return "A runestone"
}

// daySummary diffs day-start snapshots against the current state.
func (e *Engine) daySummary(startInventory map[string]int, startRapport map[string]int) string {
	s := e.State
	var b strings.Builder
	b.WriteString("\n— The day closes —\n")

	endInventory := countItems(s.Inventory)
	var gains, losses []string
	for _, name := range sortedKeys(startInventory, endInventory) {
		delta := endInventory[name] - startInventory[name]
		switch {
		case delta > 0:
			gains = append(gains, fmt.Sprintf("%s x%d", name, delta))
		case delta < 0:
			losses = append(losses, fmt.Sprintf("%s x%d", name, -delta))
		}
	}
	if len(gains) > 0 {
		fmt.Fprintf(&b, "Gathered: %s\n", strings.Join(gains, ", "))
	}
	if len(losses) > 0 {
		fmt.Fprintf(&b, "Used: %s\n", strings.Join(losses, ", "))
	}

	for _, id := range sortedKeys(startRapport, s.Rapport) {
		delta := s.Rapport[id] - startRapport[id]
		if delta != 0 {
			fmt.Fprintf(&b, "Rapport with %s: %+d (%s)\n", id, delta, rapport.Tier(s.Rapport[id]))
		}
	}

	if quest.ShouldShowCompletionNarrative(s) {
		b.WriteString("\nThe forest breathes differently tonight. Somewhere beyond the trees, " +
			"you now know, a road leads to town.\n")
		quest.MarkCompletionAcknowledged(s)
	}
	return b.String()
}

func countItems(inventory []string) map[string]int {
	counts := map[string]int{}
	for _, item := range inventory {
		counts[item]++
	}
	return counts
}

func copyRapport(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(a, b map[string]int) []string {
	seen := map[string]bool{}
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
