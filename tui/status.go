package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/survival"
)

// renderStatusBar produces a full-width inverted status line showing the
// day, season, stamina, condition, current position, and quest progress.
func (m Model) renderStatusBar() string {
	s := m.eng.State

	where := "glade"
	if s.Stage == "explore:forest" || s.ActiveZone == "forest" {
		where = fmt.Sprintf("forest d%d", s.Depth("forest"))
	}

	left := fmt.Sprintf(" Day %d, %s | %s", s.Day, s.CurrentSeason, where)

	stamina := fmt.Sprintf("Sta %.1f/%.1f", s.Stamina, survival.EffectiveStaminaMax(s))
	condition := survival.ConditionLabel(s.Condition)
	right := fmt.Sprintf("%s | %s ", stamina, condition)

	// Show quest progress if it fits.
	if s.Act1.Started {
		_, progress := quest.ProgressSummary(s)
		candidate := fmt.Sprintf("%s | %s | %s ", progress, stamina, condition)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
