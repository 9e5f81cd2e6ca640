package engine

import (
	"testing"

	"github.com/nathoo/emberwood/types"
)

func shrineEngine(ui *scriptedUI, initialState string) *Engine {
	e := testEngine(ui, 1)
	e.Registry.Landmarks["old_shrine"] = types.LandmarkDef{
		ID: "old_shrine", Name: "the Old Shrine",
		Features: map[string]bool{"has_runestone": true},
	}
	e.Registry.Runestones["rs_shrine"] = types.RunestoneDef{
		ID: "rs_shrine", LandmarkID: "old_shrine",
		Name: "the Hearth Stone", InitialState: initialState,
	}
	return e
}

func TestDiscoverRunestone_StableStoneNeedsNoWork(t *testing.T) {
	ui := &scriptedUI{}
	e := shrineEngine(ui, "stable")

	e.arriveAtLandmark("old_shrine")

	rs := e.State.Runestone("old_shrine")
	if !rs.IsFullyRepaired || rs.IsFractured {
		t.Fatalf("expected a stable stone to count as restored, got %+v", rs)
	}
	if e.State.Act1.RunestonesRepaired != 1 {
		t.Errorf("expected repair tracker at 1, got %d", e.State.Act1.RunestonesRepaired)
	}
	if !ui.shown("whole") {
		t.Error("expected the stone described as whole")
	}
}

func TestDiscoverRunestone_NamedStoneUsesItsName(t *testing.T) {
	ui := &scriptedUI{}
	e := shrineEngine(ui, "fractured")

	e.arriveAtLandmark("old_shrine")

	rs := e.State.Runestone("old_shrine")
	if rs.IsFullyRepaired || !rs.IsFractured {
		t.Fatalf("expected a fractured stone awaiting repair, got %+v", rs)
	}
	if e.State.Act1.RunestonesRepaired != 0 {
		t.Errorf("expected no repairs recorded, got %d", e.State.Act1.RunestonesRepaired)
	}
	if !ui.shown("the Hearth Stone") {
		t.Error("expected the stone's own name in the narration")
	}
}
