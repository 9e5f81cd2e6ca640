package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/events"
	"github.com/nathoo/emberwood/engine/outcome"
	"github.com/nathoo/emberwood/engine/parser"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/rapport"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/survival"
	"github.com/nathoo/emberwood/types"
)

// containedTurns is how long a creature carries the player before setting
// them down on its own.
const containedTurns = 3

// threatChance is the probability that an encounter event escalates into a
// direct confrontation. Deeper bands are more dangerous, injuries make the
// player easier prey, and repaired runestones calm the forest.
func (e *Engine) threatChance(depth int) float64 {
	base := 0.15
	switch events.BandForDepth(depth) {
	case "mid":
		base = 0.25
	case "deep":
		base = 0.35
	}
	_, risk := survival.ConditionEffects(e.State.Condition)
	chance := base * risk * quest.ThreatEncounterModifier(e.State)
	if chance > 0.9 {
		chance = 0.9
	}
	return chance
}

// maybeCreatureThreat rolls whether an encounter event escalates and, if so,
// runs the confrontation. Returns (dayEnded, confronted).
func (e *Engine) maybeCreatureThreat(evt *types.EventDef, zone string, depth int) (bool, bool) {
	if len(e.Registry.Creatures) == 0 {
		return false, false
	}
	if !e.RNG.Chance(e.threatChance(depth)) {
		return false, false
	}
	creature, ok := e.threatCreatureFor(evt, depth)
	if !ok {
		return false, false
	}
	return e.creatureThreat(zone, depth, creature), true
}

// threatCreatureFor picks the creature behind an escalating encounter. An
// event that names a creature in its rapport payload brings that creature;
// otherwise the draw is weighted by the current landmark's encounter biases.
func (e *Engine) threatCreatureFor(evt *types.EventDef, depth int) (types.CreatureDef, bool) {
	s := e.State

	if evt != nil {
		for _, id := range sortedRapportCreatures(evt.Effects.RapportDelta) {
			if c, ok := e.Registry.Creature(id); ok && depth >= c.MinDepth {
				return c, true
			}
		}
	}

	var biases map[string]float64
	if s.CurrentLandmark != "" {
		if lm, ok := e.Registry.Landmark(s.CurrentLandmark); ok {
			biases = lm.EncounterBiases
		}
	}

	var candidates []types.CreatureDef
	var weights []float64
	for _, id := range e.Registry.CreatureOrder {
		c := e.Registry.Creatures[id]
		if depth < c.MinDepth {
			continue
		}
		// A landmark bias scales the draw; an explicit zero bars the
		// creature from this ground entirely.
		w := 1.0
		if b, ok := biases[id]; ok {
			w = b
		}
		candidates = append(candidates, c)
		weights = append(weights, w)
	}
	idx := e.RNG.WeightedIndex(weights)
	if idx < 0 {
		return types.CreatureDef{}, false
	}
	return candidates[idx], true
}

// creatureThreat runs a direct confrontation with a creature: flee, calm, or
// stand ground, each resolved through the outcome framework. Returns true
// when the day ends.
func (e *Engine) creatureThreat(zone string, depth int, creature types.CreatureDef) bool {
	s := e.State
	score := rapport.Get(s, creature.ID)

	e.UI.Display(fmt.Sprintf("%s is suddenly there, too close, watching you.\n", creature.Name))
	if creature.Description != "" {
		e.UI.Display(creature.Description + "\n")
	}

	offering := e.calmOffering(creature)
	options := []string{"Flee", "Try to calm it", "Stand your ground"}
	if offering != "" {
		options[1] = fmt.Sprintf("Offer %s and try to calm it", spacedItemName(offering))
	}
	if rapport.Tier(score) == rapport.TierBonded {
		options = append(options, "Accept its shelter")
	}

	choice := strings.ToLower(e.UI.Menu(
		fmt.Sprintf("%s blocks the way. What do you do?", creature.Name), options))

	max := survival.EffectiveStaminaMax(s)
	ratio := 0.0
	if max > 0 {
		ratio = s.Stamina / max
	}

	switch {
	case strings.Contains(choice, "flee"):
		if survival.FleeSucceeds(e.RNG, score, depth, ratio) {
			e.UI.Display("You break away, crashing back through the undergrowth until the presence fades.\n")
			e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Retreat, outcome.Context{SourceID: creature.ID}))
			return false
		}
		e.UI.Display(fmt.Sprintf("You run, and %s is faster.\n", creature.Name))
		return e.threatCollapse(creature)

	case strings.Contains(choice, "calm"):
		if survival.CalmSucceeds(e.RNG, score, offering != "") {
			if offering != "" {
				s.RemoveItem(offering)
				e.UI.Display(fmt.Sprintf("It takes the %s from the ground between you, slow and deliberate.\n",
					spacedItemName(offering)))
			}
			rapport.Change(s, creature.ID, 1)
			e.UI.Display(fmt.Sprintf("%s settles, loses interest, and moves off through the trees.\n", creature.Name))
			e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Normal, outcome.Context{SourceID: creature.ID}))
			return false
		}
		rapport.Change(s, creature.ID, -1)
		e.UI.Display("Your voice only sharpens its attention. You give ground.\n")
		e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Retreat, outcome.Context{SourceID: creature.ID}))
		return false

	case strings.Contains(choice, "shelter"):
		e.UI.Display(fmt.Sprintf("%s lowers itself and waits. You climb in, and the dark closes warm around you.\n",
			creature.Name))
		e.enterContainment(creature, "shelter", depth)
		return false

	default: // stand ground
		if survival.StandGroundSucceeds(e.RNG, score, ratio) {
			rapport.Change(s, creature.ID, 2)
			e.UI.Display(fmt.Sprintf("You hold still and hold its gaze. Something in %s decides you are not prey.\n",
				creature.Name))
			e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Normal, outcome.Context{SourceID: creature.ID}))
			return false
		}
		if creature.Severity >= 1.2 {
			e.UI.Display(fmt.Sprintf("%s closes the distance in two strides and takes you off your feet. "+
				"Then the world is warm, dark, and moving.\n", creature.Name))
			e.enterContainment(creature, "predator", depth)
			return false
		}
		e.UI.Display(fmt.Sprintf("%s knocks you aside like a branch in its path.\n", creature.Name))
		return e.threatCollapse(creature)
	}
}

// threatCollapse ends the day through a collapse scaled by the creature's
// severity.
func (e *Engine) threatCollapse(creature types.CreatureDef) bool {
	s := e.State
	e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Collapse,
		outcome.Context{SourceID: creature.ID, Severity: creature.Severity}))
	s.CurrentLandmark = ""
	s.TimeOfDay = calendar.Night
	s.Stage = "collapse"
	return true
}

// calmOffering returns an inventory item the creature would accept, or ""
// when none is carried.
func (e *Engine) calmOffering(creature types.CreatureDef) string {
	for _, item := range creature.FoodItems {
		if e.State.HasItem(item) {
			return item
		}
	}
	return ""
}

// enterContainment moves the player into the contained state, whether the
// creature took them or they accepted the ride. Containment is sheltered rest
// by contract; getting out again goes through emergeFromContainment.
func (e *Engine) enterContainment(creature types.CreatureDef, mode string, depth int) {
	s := e.State
	s.BellyState = &state.BellyState{
		Active:         true,
		CreatureID:     creature.ID,
		Mode:           mode,
		DepthBefore:    depth,
		LandmarkBefore: s.CurrentLandmark,
	}
	s.CurrentLandmark = ""
	e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Sheltered,
		outcome.Context{SourceID: creature.ID, SafeShelter: mode == "shelter"}))
}

// containedPhase handles one command while the player is held inside a
// creature. Movement is unavailable; the only exits are asking to leave or
// riding it out. Returns true when the day ends.
func (e *Engine) containedPhase() bool {
	s := e.State
	bs := s.BellyState
	s.Stage = "contained"

	cmd := parser.Parse(e.UI.Prompt("[held] >"))
	switch cmd.Verb {
	case "look":
		if bs.Mode == "predator" {
			e.UI.Display("Muscle walls press close on every side, working in slow waves. " +
				"Nothing here means you harm, but nothing here asks your opinion either.\n")
		} else {
			e.UI.Display("You are curled in a warm, breathing dark that sways with every stride.\n")
		}
	case "status":
		e.UI.Display(e.statusText())
	case "inventory":
		e.UI.Display(e.inventoryText())
	case "wait":
		bs.TurnsInside++
		if bs.TurnsInside >= containedTurns {
			e.UI.Display("The swaying stops.\n")
			e.emergeFromContainment()
			return false
		}
		e.UI.Display("Time passes strangely in here, marked only by a heartbeat that is not yours.\n")
	case "move":
		e.UI.Display("Every direction is the same soft dark. You can only ask to be let out.\n")
	case "leave":
		e.emergeFromContainment()
	case "help":
		e.UI.Display("In here you can: look, status, inventory, wait, leave (ask to be let out), quit.\n")
	default:
		switch Dispatch(s.Stage, cmd) {
		case ActQuit:
			e.quitRequested = true
			e.persist()
			return true
		default:
			e.UI.Display("There is no answer but the slow pulse around you.\n")
		}
	}
	return false
}

// emergeFromContainment resolves the ride through the transported outcome. A
// shelter ride sets the player down where it picked them up; a predator
// deposits them back at the glade.
func (e *Engine) emergeFromContainment() {
	s := e.State
	bs := s.BellyState
	s.BellyState = nil
	priorZone := s.ActiveZone

	ctx := outcome.Context{SourceID: bs.CreatureID, TargetZone: "glade"}
	if bs.Mode == "shelter" {
		ctx.TargetZone = priorZone
		ctx.TargetLandmarkID = bs.LandmarkBefore
	}

	if bs.Mode == "predator" {
		e.UI.Display("A long contraction, a rush of cold air, and you are set down, damp and blinking, on open ground.\n")
	} else {
		e.UI.Display("The creature opens and lets you slide gently out into the light.\n")
	}
	e.UI.Display(outcome.Resolve(s, e.RNG, outcome.Transported, ctx))

	if bs.Mode == "shelter" && bs.DepthBefore > 0 {
		s.ZoneDepths[ctx.TargetZone] = bs.DepthBefore
	} else if priorZone != "glade" && priorZone != "" {
		// A predator does not retrace your trail for you.
		s.ResetZoneDepth(priorZone)
	}
}

func spacedItemName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

func sortedRapportCreatures(deltas map[string]int) []string {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
