// Package save implements JSON persistence of game state with additive
// schema migration. Old saves pass through Migrate before decoding so every
// field introduced after version 1 is backfilled.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nathoo/emberwood/engine/state"
)

// Repository persists one save slot as a JSON document.
type Repository struct {
	Path string
	Log  *slog.Logger
}

// NewRepository creates a repository for the given file path.
func NewRepository(path string, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{Path: path, Log: log}
}

// Load reads and migrates the save file. Returns (nil, nil) when no save
// exists; corrupt JSON is an error, not a silent reset.
func (r *Repository) Load() (*state.GameState, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read save: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("corrupt save file %s: %w", r.Path, err)
	}

	from := versionOf(raw)
	Migrate(raw)
	if from < state.CurrentSchemaVersion {
		r.Log.Info("migrated save", "from", from, "to", state.CurrentSchemaVersion)
	}

	migrated, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("remarshal migrated save: %w", err)
	}
	var s state.GameState
	if err := json.Unmarshal(migrated, &s); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// Save writes the state as an indented JSON document. The schema version is
// always rewritten to current, never decremented.
func (r *Repository) Save(s *state.GameState) error {
	s.SchemaVersion = state.CurrentSchemaVersion

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	if err := os.WriteFile(r.Path, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

func versionOf(raw map[string]any) int {
	if v, ok := raw["schema_version"].(float64); ok {
		return int(v)
	}
	return 1
}

func setDefault(raw map[string]any, key string, value any) {
	if _, ok := raw[key]; !ok {
		raw[key] = value
	}
}

func intField(raw map[string]any, key string) int {
	if v, ok := raw[key].(float64); ok {
		return int(v)
	}
	return 0
}

func boolField(raw map[string]any, key string) bool {
	v, _ := raw[key].(bool)
	return v
}

// Migrate backfills a raw save document up to the current schema. Additive,
// monotonic, and idempotent: running it on already-migrated data changes
// nothing.
func Migrate(raw map[string]any) {
	setDefault(raw, "schema_version", float64(1))

	// Version 2 additions: forest memory, runestone sub-states, flags.
	setDefault(raw, "zone_steps", map[string]any{})
	setDefault(raw, "zone_depths", map[string]any{})
	setDefault(raw, "landmark_stability", map[string]any{})
	setDefault(raw, "discovered_landmarks", []any{})
	setDefault(raw, "runestone_states", map[string]any{})
	setDefault(raw, "flags", map[string]any{})
	setDefault(raw, "recent_events", []any{})
	setDefault(raw, "steps_since_forage", float64(0))
	setDefault(raw, "rest_type", "camp")
	setDefault(raw, "pending_brews", []any{})
	setDefault(raw, "pending_stamina_floor", float64(0))
	setDefault(raw, "npc_state", map[string]any{})
	setDefault(raw, "radio_version", float64(1))
	setDefault(raw, "pending_radio_upgrade", false)
	setDefault(raw, "is_sheltered", false)
	setDefault(raw, "timed_modifiers", []any{})
	setDefault(raw, "rapport", map[string]any{})
	setDefault(raw, "inventory", []any{})
	setDefault(raw, "ate_snack_today", false)

	// Version 3 additions: structured quest record replacing the legacy
	// flat act1_* fields, hunger bookkeeping, restorable RNG stream.
	if _, ok := raw["forest_act1"]; !ok {
		repaired := intField(raw, "act1_repaired_runestones")
		total := intField(raw, "act1_total_runestones")
		if total == 0 {
			total = 3
		}
		raw["forest_act1"] = map[string]any{
			"started":                 repaired > 0 || intField(raw, "act1_quest_stage") > 0,
			"runestones_total":        float64(total),
			"runestones_repaired":     float64(repaired),
			"first_runestone_found":   intField(raw, "act1_quest_stage") >= 1,
			"first_repair_done":       repaired > 0,
			// A player who already saw the forest stabilize should not have
			// the completion narrative replayed after migrating.
			"completed":               boolField(raw, "act1_forest_stabilized"),
			"completion_acknowledged": boolField(raw, "act1_forest_stabilized"),
		}
	}
	delete(raw, "act1_quest_stage")
	delete(raw, "act1_total_runestones")
	delete(raw, "act1_repaired_runestones")
	delete(raw, "act1_forest_stabilized")

	setDefault(raw, "ate_meal_today", false)
	setDefault(raw, "days_without_meal", float64(0))
	setDefault(raw, "rng_seed", float64(0))
	setDefault(raw, "rng_position", float64(0))

	raw["schema_version"] = float64(state.CurrentSchemaVersion)
}
