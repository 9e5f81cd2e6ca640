package parser

import (
	"testing"
)

func TestParse_Empty(t *testing.T) {
	cmd := Parse("   ")
	if cmd.Verb != "" {
		t.Errorf("expected empty command, got %q", cmd.Verb)
	}
}

func TestParse_Aliases(t *testing.T) {
	cases := map[string]string{
		"l":       "look",
		"examine": "look",
		"go":      "move",
		"explore": "move",
		"return":  "leave",
		"rest":    "camp",
		"fix":     "repair",
		"radio":   "tune",
		"attune":  "align",
		"i":       "inventory",
		"q":       "quit",
	}
	for input, want := range cases {
		if got := Parse(input).Verb; got != want {
			t.Errorf("%q: expected %q, got %q", input, want, got)
		}
	}
}

func TestParse_TwoWordPhrases(t *testing.T) {
	cases := map[string]string{
		"go deeper":   "move",
		"head back":   "leave",
		"make camp":   "camp",
		"give up":     "quit",
		"look around": "look",
		"brew tea":    "brew",
	}
	for input, want := range cases {
		if got := Parse(input).Verb; got != want {
			t.Errorf("%q: expected %q, got %q", input, want, got)
		}
	}
}

func TestParse_ArgsStripArticles(t *testing.T) {
	cmd := Parse("eat the wild berries")
	if cmd.Verb != "eat" {
		t.Fatalf("expected eat, got %q", cmd.Verb)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "wild" || cmd.Args[1] != "berries" {
		t.Errorf("expected [wild berries], got %v", cmd.Args)
	}
}

func TestParse_FuzzyTypos(t *testing.T) {
	cases := map[string]string{
		"lok":    "look",
		"repiar": "repair",
		"sttus":  "status",
		"brw":    "brew",
	}
	for input, want := range cases {
		if got := Parse(input).Verb; got != want {
			t.Errorf("%q: expected fuzzy match %q, got %q", input, want, got)
		}
	}
}

func TestParse_PrefixCompletes(t *testing.T) {
	if got := Parse("inv").Verb; got != "inventory" {
		t.Errorf("expected inventory, got %q", got)
	}
	if got := Parse("jo").Verb; got != "journal" {
		t.Errorf("expected journal via prefix, got %q", got)
	}
}

func TestParse_UnknownVerbPassesThrough(t *testing.T) {
	if got := Parse("xyzzy").Verb; got != "xyzzy" {
		t.Errorf("expected unknown verb untouched, got %q", got)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	if got := Parse("LOOK").Verb; got != "look" {
		t.Errorf("expected look, got %q", got)
	}
}

func TestParse_CraftAliasesToMix(t *testing.T) {
	if got := Parse("craft mortar").Verb; got != "mix" {
		t.Errorf("expected mix, got %q", got)
	}
	// "make camp" is a phrase and wins over the make->mix alias.
	if got := Parse("make camp").Verb; got != "camp" {
		t.Errorf("expected camp, got %q", got)
	}
	if got := Parse("make mortar").Verb; got != "mix" {
		t.Errorf("expected mix, got %q", got)
	}
}
