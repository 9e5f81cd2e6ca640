package rapport

import (
	"testing"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

func testState() *state.GameState {
	c := character.BuildFromRace(types.RaceDef{ID: "vulpen"}, "x")
	return state.New(c, calendar.New(nil), 1)
}

func TestGet_DefaultZero(t *testing.T) {
	s := testState()
	if got := Get(s, "moss_wolf"); got != 0 {
		t.Errorf("expected 0 for unknown id, got %d", got)
	}
}

func TestChange_ClampsBothEnds(t *testing.T) {
	s := testState()

	if got := Change(s, "moss_wolf", 8); got != 5 {
		t.Errorf("expected clamp to 5, got %d", got)
	}
	if got := Change(s, "moss_wolf", -20); got != -5 {
		t.Errorf("expected clamp to -5, got %d", got)
	}
}

func TestChange_Accumulates(t *testing.T) {
	s := testState()
	Change(s, "hermit", 2)
	if got := Change(s, "hermit", 1); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestTier_Thresholds(t *testing.T) {
	cases := map[int]string{
		-5: TierHostile,
		-3: TierHostile,
		-2: TierWary,
		-1: TierWary,
		0:  TierNeutral,
		1:  TierNeutral,
		2:  TierFriendly,
		3:  TierFriendly,
		4:  TierBonded,
		5:  TierBonded,
	}
	for score, want := range cases {
		if got := Tier(score); got != want {
			t.Errorf("score=%d: expected %s, got %s", score, want, got)
		}
	}
}
