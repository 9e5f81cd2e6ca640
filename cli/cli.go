// Package cli is the plain terminal frontend. It implements the engine's
// UI contract over stdin/stdout with light lipgloss coloring.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	In    io.Reader
	Out   io.Writer
	Plain bool // suppress all styling (script playback, dumb terminals)

	scanner *bufio.Scanner
}

// New creates a CLI on stdin/stdout.
func New(plain bool) *CLI {
	return &CLI{In: os.Stdin, Out: os.Stdout, Plain: plain}
}

// Display writes narration to the terminal, styling each line by kind.
func (c *CLI) Display(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(c.Out, c.render(line))
	}
}

// Prompt shows a prompt and reads one line. EOF reads as "quit" so piped
// scripts end the game cleanly.
func (c *CLI) Prompt(prompt string) string {
	fmt.Fprint(c.Out, c.renderPrompt(prompt+" "))
	line, ok := c.readLine()
	if !ok {
		return "quit"
	}
	return line
}

// Menu shows numbered options and reads until the player picks one, by
// number or by typing a unique prefix of the option text. EOF picks the
// first option.
func (c *CLI) Menu(prompt string, options []string) string {
	fmt.Fprintln(c.Out, c.render(prompt))
	for i, opt := range options {
		fmt.Fprintf(c.Out, "  %s %s\n", c.renderPrompt(fmt.Sprintf("%d)", i+1)), opt)
	}
	for {
		fmt.Fprint(c.Out, c.renderPrompt("> "))
		line, ok := c.readLine()
		if !ok {
			return options[0]
		}
		if opt, ok := matchOption(line, options); ok {
			return opt
		}
		fmt.Fprintf(c.Out, "Pick 1-%d.\n", len(options))
	}
}

// matchOption resolves player input against a menu: a 1-based number, an
// exact option, or a unique case-insensitive prefix.
func matchOption(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	lower := strings.ToLower(input)
	match := ""
	for _, opt := range options {
		optLower := strings.ToLower(opt)
		if optLower == lower {
			return opt, true
		}
		if strings.HasPrefix(optLower, lower) {
			if match != "" {
				return "", false // ambiguous prefix
			}
			match = opt
		}
	}
	if match != "" {
		return match, true
	}
	return "", false
}

func (c *CLI) readLine() (string, bool) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}
