package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/emberwood/content"
	"github.com/nathoo/emberwood/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or the default if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or the default if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	return int(getNumber(tbl, key, float64(def)))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringSlice converts a Lua array of strings.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToFloatMap converts a Lua table to a map[string]float64.
func tableToFloatMap(tbl *lua.LTable) map[string]float64 {
	if tbl == nil {
		return nil
	}
	m := map[string]float64{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if n, ok := v.(lua.LNumber); ok {
				m[string(ks)] = float64(n)
			}
		}
	})
	if len(m) == 0 {
		return nil
	}
	return m
}

// tableToIntMap converts a Lua table to a map[string]int.
func tableToIntMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if n, ok := v.(lua.LNumber); ok {
				m[string(ks)] = int(n)
			}
		}
	})
	if len(m) == 0 {
		return nil
	}
	return m
}

// tableToBoolMap converts a Lua table to a map[string]bool.
func tableToBoolMap(tbl *lua.LTable) map[string]bool {
	if tbl == nil {
		return nil
	}
	m := map[string]bool{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if b, ok := v.(lua.LBool); ok {
				m[string(ks)] = bool(b)
			}
		}
	})
	if len(m) == 0 {
		return nil
	}
	return m
}

// compileModifiers converts a Lua array of { add = {...}, mul = {...} }
// tables into modifier specs.
func compileModifiers(tbl *lua.LTable) []types.ModifierSpec {
	if tbl == nil {
		return nil
	}
	var specs []types.ModifierSpec
	for i := 1; i <= tbl.MaxN(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		specs = append(specs, types.ModifierSpec{
			Add: tableToFloatMap(getTable(entry, "add")),
			Mul: tableToFloatMap(getTable(entry, "mul")),
		})
	}
	return specs
}

// compile converts all collected Lua data into the content registry.
func compile(coll *collector) (*content.Registry, error) {
	reg := &content.Registry{
		Races:      map[string]types.RaceDef{},
		Creatures:  map[string]types.CreatureDef{},
		Landmarks:  map[string]types.LandmarkDef{},
		Runestones: map[string]types.RunestoneDef{},
		Teas:       map[string]types.TeaDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	reg.Game = compileGame(coll.game)

	for _, raw := range coll.seasons {
		reg.Seasons = append(reg.Seasons, types.SeasonDef{
			Name:   raw.id,
			Length: getInt(raw.table, "length", 30),
		})
	}

	for _, raw := range coll.races {
		if _, dup := reg.Races[raw.id]; dup {
			return nil, fmt.Errorf("duplicate race %q", raw.id)
		}
		reg.Races[raw.id] = compileRace(raw)
		reg.RaceOrder = append(reg.RaceOrder, raw.id)
	}

	for _, raw := range coll.creatures {
		if _, dup := reg.Creatures[raw.id]; dup {
			return nil, fmt.Errorf("duplicate creature %q", raw.id)
		}
		reg.Creatures[raw.id] = compileCreature(raw)
		reg.CreatureOrder = append(reg.CreatureOrder, raw.id)
	}

	seenEvents := map[string]bool{}
	for _, raw := range coll.events {
		if seenEvents[raw.id] {
			return nil, fmt.Errorf("duplicate event %q", raw.id)
		}
		seenEvents[raw.id] = true
		reg.Events = append(reg.Events, compileEvent(raw))
	}

	for _, raw := range coll.landmarks {
		if _, dup := reg.Landmarks[raw.id]; dup {
			return nil, fmt.Errorf("duplicate landmark %q", raw.id)
		}
		reg.Landmarks[raw.id] = compileLandmark(raw)
		reg.LandmarkOrder = append(reg.LandmarkOrder, raw.id)
	}

	for _, raw := range coll.runestones {
		if _, dup := reg.Runestones[raw.id]; dup {
			return nil, fmt.Errorf("duplicate runestone %q", raw.id)
		}
		reg.Runestones[raw.id] = types.RunestoneDef{
			ID:           raw.id,
			LandmarkID:   getString(raw.table, "landmark"),
			Name:         getString(raw.table, "name"),
			InitialState: getString(raw.table, "initial_state"),
		}
	}

	for _, raw := range coll.teas {
		if _, dup := reg.Teas[raw.id]; dup {
			return nil, fmt.Errorf("duplicate tea %q", raw.id)
		}
		reg.Teas[raw.id] = compileTea(raw)
		reg.TeaOrder = append(reg.TeaOrder, raw.id)
	}

	return reg, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileRace(raw rawDef) types.RaceDef {
	return types.RaceDef{
		ID:               raw.id,
		Name:             getString(raw.table, "name"),
		BodyTypeDefault:  getString(raw.table, "body_type"),
		SizeDefault:      getString(raw.table, "size"),
		ArchetypeDefault: getString(raw.table, "archetype"),
		Tags:             tableToStringSlice(getTable(raw.table, "tags")),
		FlavorTags:       tableToStringSlice(getTable(raw.table, "flavor_tags")),
		Modifiers:        compileModifiers(getTable(raw.table, "modifiers")),
		ForageFlavor:     getString(raw.table, "forage_flavor"),
	}
}

func compileCreature(raw rawDef) types.CreatureDef {
	return types.CreatureDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Tags:        tableToStringSlice(getTable(raw.table, "tags")),
		FoodItems:   tableToStringSlice(getTable(raw.table, "food_items")),
		Severity:    getNumber(raw.table, "severity", 1.0),
		MinDepth:    getInt(raw.table, "min_depth", 0),
		Description: getString(raw.table, "description"),
	}
}

func compileEvent(raw rawDef) types.EventDef {
	evt := types.EventDef{
		ID:               raw.id,
		Text:             getString(raw.table, "text"),
		Type:             getString(raw.table, "type"),
		Category:         getString(raw.table, "category"),
		BaseWeight:       getNumber(raw.table, "base_weight", 1.0),
		DepthWeight:      getNumber(raw.table, "depth_weight", 0),
		MinDepth:         getInt(raw.table, "min_depth", 0),
		MaxDepth:         getInt(raw.table, "max_depth", -1),
		SeasonWeights:    tableToFloatMap(getTable(raw.table, "season_weights")),
		PreferredSeasons: tableToStringSlice(getTable(raw.table, "preferred_seasons")),
	}
	if evt.Category == "" {
		evt.Category = evt.Type
	}
	if effects := getTable(raw.table, "effects"); effects != nil {
		evt.Effects = types.EventEffects{
			InventoryAdd:      tableToStringSlice(getTable(effects, "inventory_add")),
			InventoryAddCount: compileCountRanges(getTable(effects, "inventory_add_count")),
			RapportDelta:      tableToIntMap(getTable(effects, "rapport")),
			StaminaDelta:      getNumber(effects, "stamina", 0),
			DurationDays:      getInt(effects, "duration_days", 0),
			Modifiers:         compileModifiers(getTable(effects, "modifiers")),
		}
	}
	if checks := getTable(raw.table, "checks"); checks != nil {
		evt.Checks = types.EventChecks{
			RequiresRunestoneRepairs: getInt(checks, "requires_runestone_repairs", 0),
		}
	}
	return evt
}

// compileCountRanges converts { {1, 3}, {2, 2} } into per-item count ranges.
func compileCountRanges(tbl *lua.LTable) [][2]int {
	if tbl == nil {
		return nil
	}
	var out [][2]int
	for i := 1; i <= tbl.MaxN(); i++ {
		pair, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		lo, hi := 1, 1
		if n, ok := pair.RawGetInt(1).(lua.LNumber); ok {
			lo = int(n)
		}
		if n, ok := pair.RawGetInt(2).(lua.LNumber); ok {
			hi = int(n)
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

func compileLandmark(raw rawDef) types.LandmarkDef {
	return types.LandmarkDef{
		ID:               raw.id,
		Name:             getString(raw.table, "name"),
		DepthMin:         getInt(raw.table, "depth_min", 0),
		DepthMax:         getInt(raw.table, "depth_max", 0),
		Tags:             tableToStringSlice(getTable(raw.table, "tags")),
		ShortDescription: getString(raw.table, "short_description"),
		LongDescription:  getString(raw.table, "long_description"),
		Features:         tableToBoolMap(getTable(raw.table, "features")),
		EncounterBiases:  tableToFloatMap(getTable(raw.table, "encounter_biases")),
	}
}

func compileTea(raw rawDef) types.TeaDef {
	return types.TeaDef{
		ID:           raw.id,
		Name:         getString(raw.table, "name"),
		Ingredients:  tableToStringSlice(getTable(raw.table, "ingredients")),
		DurationDays: getInt(raw.table, "duration_days", 1),
		Modifiers:    compileModifiers(getTable(raw.table, "modifiers")),
		Text:         getString(raw.table, "text"),
	}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
