// Package engine provides the day/turn orchestrator that wires together the
// calendar, survival, event, landmark, quest, and outcome subsystems into a
// playable loop.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/content"
	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/events"
	"github.com/nathoo/emberwood/engine/landmark"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/rapport"
	"github.com/nathoo/emberwood/engine/rng"
	"github.com/nathoo/emberwood/engine/save"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/survival"
)

// UI is the interaction surface the engine needs: show text, offer a menu,
// read a line. All three block until the player (or test harness) responds.
type UI interface {
	Display(text string)
	Menu(prompt string, options []string) string
	Prompt(prompt string) string
}

// Engine holds the loaded content and the single mutable game state.
type Engine struct {
	Registry  *content.Registry
	Calendar  *calendar.Config
	State     *state.GameState
	RNG       *rng.RNG
	UI        UI
	Pool      *events.Pool
	Landmarks *landmark.Catalog
	Repo      *save.Repository
	Log       *slog.Logger

	quitRequested bool
}

// New creates an engine with a fresh state for the given character.
func New(reg *content.Registry, ui UI, repo *save.Repository, c *character.Character, seed int64, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	cal := calendar.New(reg.Seasons)
	return &Engine{
		Registry:  reg,
		Calendar:  cal,
		State:     state.New(c, cal, seed),
		RNG:       rng.New(seed),
		UI:        ui,
		Pool:      events.NewPool(reg),
		Landmarks: landmark.NewCatalog(reg),
		Repo:      repo,
		Log:       log,
	}
}

// Resume creates an engine around a loaded state, replaying the RNG stream to
// its saved position so draws continue exactly where they left off.
func Resume(reg *content.Registry, ui UI, repo *save.Repository, s *state.GameState, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if race, ok := reg.Race(s.Character.RaceID); ok {
		s.Character.SyncWithRace(race)
	}
	cal := calendar.New(reg.Seasons)
	s.RecalculateCalendar(cal)
	return &Engine{
		Registry:  reg,
		Calendar:  cal,
		State:     s,
		RNG:       rng.Restore(s.RNGSeed, s.RNGPosition),
		UI:        ui,
		Pool:      events.NewPool(reg),
		Landmarks: landmark.NewCatalog(reg),
		Repo:      repo,
		Log:       log,
	}
}

// CreateCharacter runs the character creation prompts against the registry's
// race list and returns the built character.
func CreateCharacter(reg *content.Registry, ui UI) *character.Character {
	name := strings.TrimSpace(ui.Prompt("What is your name?"))
	if name == "" {
		name = "Wanderer"
	}

	options := make([]string, 0, len(reg.RaceOrder))
	for _, id := range reg.RaceOrder {
		options = append(options, reg.Races[id].Name)
	}
	if len(options) == 0 {
		return character.BuildFromRace(content.FallbackRace(), name)
	}

	chosen := ui.Menu("Choose your people:", options)
	for _, id := range reg.RaceOrder {
		if reg.Races[id].Name == chosen {
			return character.BuildFromRace(reg.Races[id], name)
		}
	}
	return character.BuildFromRace(reg.Races[reg.RaceOrder[0]], name)
}

// persist writes the state, recording the RNG stream position first.
func (e *Engine) persist() {
	e.State.RNGSeed = e.RNG.Seed()
	e.State.RNGPosition = e.RNG.Position()
	if e.Repo == nil {
		return
	}
	if err := e.Repo.Save(e.State); err != nil {
		e.Log.Warn("save failed", "error", err)
		e.UI.Display("Your journal entry didn't take. The day continues regardless.\n")
	}
}

// statusText renders the player status block.
func (e *Engine) statusText() string {
	s := e.State
	max := survival.EffectiveStaminaMax(s)
	status, progress := quest.ProgressSummary(s)

	var b strings.Builder
	fmt.Fprintf(&b, "%s the %s\n", s.Character.Name, s.Character.RaceID)
	fmt.Fprintf(&b, "Day %d, %s (day %d of the season), %s\n", s.Day, s.CurrentSeason, s.DayInSeason, s.TimeOfDay)
	fmt.Fprintf(&b, "Stamina %.1f / %.1f\n", s.Stamina, max)
	fmt.Fprintf(&b, "Condition: %s\n", survival.ConditionLabel(s.Condition))
	fmt.Fprintf(&b, "%s\n", survival.HungerStatusMessage(s.DaysWithoutMeal))
	fmt.Fprintf(&b, "Forest: %s (%s)\n", status, progress)
	return b.String()
}

// inventoryText renders the inventory grouped by item with counts.
func (e *Engine) inventoryText() string {
	s := e.State
	if len(s.Inventory) == 0 {
		return "Your pack is empty.\n"
	}
	counts := map[string]int{}
	for _, item := range s.Inventory {
		counts[item]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("You carry:\n")
	for _, name := range names {
		if counts[name] > 1 {
			fmt.Fprintf(&b, "  %s x%d\n", name, counts[name])
		} else {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	return b.String()
}

// rapportText renders the relationship ledger.
func (e *Engine) rapportText() string {
	s := e.State
	if len(s.Rapport) == 0 {
		return "You have made no acquaintances yet.\n"
	}
	ids := make([]string, 0, len(s.Rapport))
	for id := range s.Rapport {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		score := rapport.Get(s, id)
		fmt.Fprintf(&b, "  %s: %s (%+d)\n", id, rapport.Tier(score), score)
	}
	return b.String()
}
