package loader

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestCompile_RequiresGame(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Season "spring" { length = 30 }`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Error("expected error when no Game{} is defined")
	}
}

func TestCompile_CurriedConstructor(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T" }
		Race "vulpen" {
			name = "Vulpen",
			tags = { "keen-smell" },
		}
	`); err != nil {
		t.Fatal(err)
	}
	reg, err := compile(coll)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	r, ok := reg.Race("vulpen")
	if !ok {
		t.Fatal("race not compiled")
	}
	if r.Name != "Vulpen" || len(r.Tags) != 1 || r.Tags[0] != "keen-smell" {
		t.Errorf("race = %+v", r)
	}
}

func TestCompile_DuplicateIDRejected(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T" }
		Landmark "cairn" { name = "A", depth_min = 1, depth_max = 2 }
		Landmark "cairn" { name = "B", depth_min = 1, depth_max = 2 }
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Error("expected duplicate landmark error")
	}
}

func TestCompile_EventDefaults(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T" }
		Event "bare" { text = "x", type = "hazard" }
	`); err != nil {
		t.Fatal(err)
	}
	reg, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	evt := reg.Events[0]
	if evt.BaseWeight != 1.0 {
		t.Errorf("BaseWeight = %g, want 1.0", evt.BaseWeight)
	}
	if evt.MaxDepth != -1 {
		t.Errorf("MaxDepth = %d, want -1 (unlimited)", evt.MaxDepth)
	}
	if evt.Category != "hazard" {
		t.Errorf("Category = %q, want to fall back to type", evt.Category)
	}
}

func TestCompile_TeaDurationDefaultsToOneDay(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T" }
		Tea "plain" { name = "Plain", ingredients = { "leaf" } }
	`); err != nil {
		t.Fatal(err)
	}
	reg, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Teas["plain"].DurationDays != 1 {
		t.Errorf("DurationDays = %d, want 1", reg.Teas["plain"].DurationDays)
	}
}

func TestCompileModifiers_SkipsNonTables(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return { { add = { stamina_max = 2 } }, "junk", { mul = { explore_slots = 2 } } }
	`); err != nil {
		t.Fatal(err)
	}
	specs := compileModifiers(L.CheckTable(-1))
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Add["stamina_max"] != 2 {
		t.Errorf("specs[0] = %+v", specs[0])
	}
	if specs[1].Mul["explore_slots"] != 2 {
		t.Errorf("specs[1] = %+v", specs[1])
	}
}
