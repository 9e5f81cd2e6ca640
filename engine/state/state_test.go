package state

import (
	"testing"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/types"
)

func testState() *GameState {
	c := character.BuildFromRace(types.RaceDef{ID: "vulpen"}, "Tamsin")
	return New(c, calendar.New(nil), 42)
}

func TestNew_DayOneDawn(t *testing.T) {
	s := testState()

	if s.Day != 1 || s.TimeOfDay != calendar.Dawn {
		t.Errorf("expected day 1 at dawn, got day %d %s", s.Day, s.TimeOfDay)
	}
	if s.CurrentSeason != "spring" || s.DayInSeason != 1 {
		t.Errorf("expected spring day 1, got %s day %d", s.CurrentSeason, s.DayInSeason)
	}
	if s.Stamina != 4.0 {
		t.Errorf("expected full starting stamina, got %v", s.Stamina)
	}
}

func TestNewDay_AdvancesCalendar(t *testing.T) {
	s := testState()
	cal := calendar.New(nil)
	s.Day = 5
	s.TimeOfDay = calendar.Night

	s.NewDay(cal)

	if s.Day != 6 {
		t.Errorf("expected day 6, got %d", s.Day)
	}
	if s.CurrentSeason != "spring" || s.DayInSeason != 6 {
		t.Errorf("expected spring day 6, got %s day %d", s.CurrentSeason, s.DayInSeason)
	}
	if s.TimeOfDay != calendar.Dawn {
		t.Errorf("expected dawn after new day, got %s", s.TimeOfDay)
	}
}

func TestPruneExpiredEffects(t *testing.T) {
	s := testState()
	s.Day = 5
	s.TimedModifiers = []character.TimedModifier{
		{Source: "old_tea", ExpiresOnDay: 4},
		{Source: "fresh_tea", ExpiresOnDay: 6},
		{Source: "blessing", ExpiresOnDay: 0},
	}

	s.PruneExpiredEffects()

	if len(s.TimedModifiers) != 2 {
		t.Fatalf("expected 2 surviving modifiers, got %d", len(s.TimedModifiers))
	}
	if s.TimedModifiers[0].Source != "fresh_tea" || s.TimedModifiers[1].Source != "blessing" {
		t.Errorf("wrong survivors: %v", s.TimedModifiers)
	}
}

func TestInventory_Multiset(t *testing.T) {
	s := testState()
	s.AddItem("wild_berries")
	s.AddItem("wild_berries")
	s.AddItem("primitive_mortar")

	if got := s.CountItem("wild_berries"); got != 2 {
		t.Errorf("expected 2 berries, got %d", got)
	}
	if !s.RemoveItem("wild_berries") {
		t.Fatal("expected removal to succeed")
	}
	if got := s.CountItem("wild_berries"); got != 1 {
		t.Errorf("expected 1 berry after removal, got %d", got)
	}
	if s.RemoveItem("no_such_item") {
		t.Error("expected removal of absent item to fail")
	}
}

func TestPushRecentEvent_TrimsToLimit(t *testing.T) {
	s := testState()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.PushRecentEvent(id)
	}

	if len(s.RecentEvents) != HistoryLimit {
		t.Fatalf("expected %d recent events, got %d", HistoryLimit, len(s.RecentEvents))
	}
	if s.SeenRecently("a") {
		t.Error("expected oldest event evicted")
	}
	if !s.SeenRecently("d") {
		t.Error("expected newest event present")
	}
}

func TestRunestone_FreshRecordIsFractured(t *testing.T) {
	s := testState()

	rs := s.Runestone("old_shrine")
	if !rs.IsFractured || rs.IsPhysicallyRepaired {
		t.Errorf("expected fresh fractured record, got %+v", rs)
	}
	if s.Runestone("old_shrine") != rs {
		t.Error("expected same record on second access")
	}
}

func TestResetZoneDepth_KeepsSteps(t *testing.T) {
	s := testState()
	s.ZoneDepths["forest"] = 7
	s.ZoneSteps["forest"] = 12

	s.ResetZoneDepth("forest")

	if _, ok := s.ZoneDepths["forest"]; ok {
		t.Error("expected depth entry dropped")
	}
	if s.ZoneSteps["forest"] != 12 {
		t.Error("expected step count to persist across visits")
	}
}
