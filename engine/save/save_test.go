package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nathoo/emberwood/engine/calendar"
	"github.com/nathoo/emberwood/engine/character"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

func testState() *state.GameState {
	c := character.BuildFromRace(types.RaceDef{ID: "vulpen"}, "Tamsin")
	return state.New(c, calendar.New(nil), 42)
}

func tempRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(filepath.Join(t.TempDir(), "save.json"), nil)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	repo := tempRepo(t)

	s, err := repo.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil state for missing file")
	}
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	repo := tempRepo(t)
	if err := os.WriteFile(repo.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Load(); err == nil {
		t.Fatal("expected error for corrupt save")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := tempRepo(t)
	s := testState()
	s.Day = 12
	s.Stamina = 2.5
	s.Condition = 2
	s.AddItem("wild_berries")
	s.Rapport["moss_wolf"] = 3
	s.ZoneDepths["forest"] = 7
	s.Runestone("old_shrine").IsPhysicallyRepaired = true
	s.Act1.RunestonesRepaired = 1
	s.RNGSeed = 42
	s.RNGPosition = 17

	if err := repo.Save(s); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Day != 12 || loaded.Stamina != 2.5 || loaded.Condition != 2 {
		t.Errorf("scalars lost: day=%d stamina=%v condition=%d", loaded.Day, loaded.Stamina, loaded.Condition)
	}
	if !loaded.HasItem("wild_berries") {
		t.Error("inventory lost")
	}
	if loaded.Rapport["moss_wolf"] != 3 {
		t.Error("rapport lost")
	}
	if loaded.ZoneDepths["forest"] != 7 {
		t.Error("zone depths lost")
	}
	if !loaded.Runestone("old_shrine").IsPhysicallyRepaired {
		t.Error("runestone state lost")
	}
	if loaded.Act1.RunestonesRepaired != 1 {
		t.Error("quest record lost")
	}
	if loaded.RNGSeed != 42 || loaded.RNGPosition != 17 {
		t.Error("rng stream position lost")
	}
	if loaded.SchemaVersion != state.CurrentSchemaVersion {
		t.Errorf("expected current schema, got %d", loaded.SchemaVersion)
	}
}

func TestMigrate_LegacyV1Save(t *testing.T) {
	raw := map[string]any{
		"day":                      float64(9),
		"stamina":                  float64(3),
		"act1_repaired_runestones": float64(2),
		"act1_total_runestones":    float64(3),
		"act1_quest_stage":         float64(2),
		"act1_forest_stabilized":   false,
	}

	Migrate(raw)

	if raw["schema_version"] != float64(state.CurrentSchemaVersion) {
		t.Errorf("expected version rewrite, got %v", raw["schema_version"])
	}
	act1, ok := raw["forest_act1"].(map[string]any)
	if !ok {
		t.Fatal("expected forest_act1 record built from legacy flats")
	}
	if act1["runestones_repaired"] != float64(2) || act1["first_repair_done"] != true {
		t.Errorf("legacy counters not carried over: %v", act1)
	}
	if _, ok := raw["act1_repaired_runestones"]; ok {
		t.Error("expected legacy flat fields dropped")
	}
	if _, ok := raw["runestone_states"]; !ok {
		t.Error("expected runestone_states backfilled")
	}
	if raw["rest_type"] != "camp" {
		t.Errorf("expected rest_type default camp, got %v", raw["rest_type"])
	}
}

func TestMigrate_StabilizedLegacySaveSkipsCompletionReplay(t *testing.T) {
	raw := map[string]any{
		"day":                      float64(40),
		"act1_repaired_runestones": float64(3),
		"act1_total_runestones":    float64(3),
		"act1_forest_stabilized":   true,
	}

	Migrate(raw)

	act1, ok := raw["forest_act1"].(map[string]any)
	if !ok {
		t.Fatal("expected forest_act1 record built from legacy flats")
	}
	if act1["completed"] != true {
		t.Error("expected completion carried over")
	}
	if act1["completion_acknowledged"] != true {
		t.Error("expected completion narrative already acknowledged for a stabilized save")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	raw := map[string]any{"day": float64(4), "act1_repaired_runestones": float64(1)}
	Migrate(raw)

	snapshot, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	Migrate(raw)
	again, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}

	var a, b map[string]any
	if err := json.Unmarshal(snapshot, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(again, &b); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("expected second migration to be a no-op")
	}
}

func TestMigrate_DoesNotOverwriteExistingRecord(t *testing.T) {
	raw := map[string]any{
		"schema_version": float64(3),
		"forest_act1": map[string]any{
			"completed": true,
		},
	}

	Migrate(raw)
	act1 := raw["forest_act1"].(map[string]any)
	if act1["completed"] != true {
		t.Error("expected existing record untouched")
	}
}

func TestLoad_MigratesLegacyFileOnDisk(t *testing.T) {
	repo := tempRepo(t)
	legacy := `{"day": 6, "stamina": 2, "act1_repaired_runestones": 1, "character": {"name": "Tamsin", "race_id": "vulpen"}}`
	if err := os.WriteFile(repo.Path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := repo.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Day != 6 {
		t.Errorf("expected day 6, got %d", s.Day)
	}
	if s.Act1.RunestonesRepaired != 1 || !s.Act1.FirstRepairDone {
		t.Errorf("expected migrated quest record, got %+v", s.Act1)
	}
	if s.RunestoneStates == nil || s.Flags == nil {
		t.Error("expected collections normalized after load")
	}
}
