package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the plain terminal frontend.
var (
	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	styleRadio = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// render styles a narration line by kind. Plain mode passes text through.
func (c *CLI) render(line string) string {
	if c.Plain {
		return line
	}
	switch {
	case strings.HasPrefix(line, "— Day "):
		return styleBanner.Render(line)
	case strings.HasPrefix(line, "[RADIO]"):
		return styleRadio.Render(line)
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return styleSystem.Render(line)
	case strings.HasPrefix(line, "You collapse"),
		strings.HasPrefix(line, "Your body overrules you"),
		strings.HasPrefix(line, "Your journey ends"):
		return styleWarning.Render(line)
	default:
		return line
	}
}

func (c *CLI) renderPrompt(text string) string {
	if c.Plain {
		return text
	}
	return stylePrompt.Render(text)
}
