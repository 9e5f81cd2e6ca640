package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a named Lua table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// registerAPI registers all Lua constructors as globals. Every constructor
// except Game is curried: Race("id") returns a function that takes the
// definition table, so content files read as Race "id" { ... }.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	curried := func(dst *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*dst = append(*dst, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	// Season "spring" { length = 30 }
	L.SetGlobal("Season", curried(&coll.seasons))

	// Race "vulpen" { name = "...", modifiers = {...}, ... }
	L.SetGlobal("Race", curried(&coll.races))

	// Creature "moss_stag" { severity = 1.2, ... }
	L.SetGlobal("Creature", curried(&coll.creatures))

	// Event "berry_thicket" { category = "forage", effects = {...}, ... }
	L.SetGlobal("Event", curried(&coll.events))

	// Landmark "mossy_cairn" { depth_min = 3, features = {...}, ... }
	L.SetGlobal("Landmark", curried(&coll.landmarks))

	// Runestone "cairn_stone" { landmark = "mossy_cairn" }
	L.SetGlobal("Runestone", curried(&coll.runestones))

	// Tea "calming_brew" { ingredients = {...}, ... }
	L.SetGlobal("Tea", curried(&coll.teas))
}
