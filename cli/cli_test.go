package cli

import (
	"bytes"
	"strings"
	"testing"
)

func newTestCLI(input string) (*CLI, *bytes.Buffer) {
	var out bytes.Buffer
	return &CLI{In: strings.NewReader(input), Out: &out, Plain: true}, &out
}

func TestDisplay_WritesLines(t *testing.T) {
	c, out := newTestCLI("")
	c.Display("The glade is quiet.\n")
	if got := out.String(); got != "The glade is quiet.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrompt_ReadsLine(t *testing.T) {
	c, _ := newTestCLI("look around\n")
	if got := c.Prompt("[glade] >"); got != "look around" {
		t.Errorf("Prompt = %q", got)
	}
}

func TestPrompt_EOFReadsAsQuit(t *testing.T) {
	c, _ := newTestCLI("")
	if got := c.Prompt(">"); got != "quit" {
		t.Errorf("Prompt at EOF = %q, want quit", got)
	}
}

func TestPrompt_SkipsBlankAndCommentLines(t *testing.T) {
	c, _ := newTestCLI("\n# a script comment\n  \nstatus\n")
	if got := c.Prompt(">"); got != "status" {
		t.Errorf("Prompt = %q, want status", got)
	}
}

func TestMenu_PicksByNumber(t *testing.T) {
	c, _ := newTestCLI("2\n")
	got := c.Menu("What now?", []string{"Continue", "Save and quit"})
	if got != "Save and quit" {
		t.Errorf("Menu = %q", got)
	}
}

func TestMenu_PicksByPrefix(t *testing.T) {
	c, _ := newTestCLI("save\n")
	got := c.Menu("What now?", []string{"Continue", "Save and quit"})
	if got != "Save and quit" {
		t.Errorf("Menu = %q", got)
	}
}

func TestMenu_RejectsThenAccepts(t *testing.T) {
	c, out := newTestCLI("7\nbananas\n1\n")
	got := c.Menu("What now?", []string{"Continue", "Save and quit"})
	if got != "Continue" {
		t.Errorf("Menu = %q", got)
	}
	if !strings.Contains(out.String(), "Pick 1-2.") {
		t.Error("expected a retry hint for invalid input")
	}
}

func TestMenu_EOFPicksFirst(t *testing.T) {
	c, _ := newTestCLI("")
	got := c.Menu("What now?", []string{"Continue", "Save and quit"})
	if got != "Continue" {
		t.Errorf("Menu at EOF = %q, want first option", got)
	}
}

func TestMatchOption_AmbiguousPrefixRejected(t *testing.T) {
	if _, ok := matchOption("s", []string{"Sleep hungry", "Sit by the fire"}); ok {
		t.Error("ambiguous prefix should not match")
	}
}

func TestRender_PlainPassthrough(t *testing.T) {
	c, _ := newTestCLI("")
	line := "[RADIO] ...warm static...\n"
	if got := c.render(line); got != line {
		t.Errorf("plain render altered the line: %q", got)
	}
}
