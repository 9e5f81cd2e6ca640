// Package calendar converts the absolute day counter into season and
// day-of-season values, and tracks the coarse time-of-day phase.
package calendar

import "github.com/nathoo/emberwood/types"

// Time-of-day phases, in order of advancement within a day.
const (
	Dawn  = "dawn"
	Day   = "day"
	Dusk  = "dusk"
	Night = "night"
)

var phaseOrder = []string{Dawn, Day, Dusk, Night}

// NextPhase returns the phase following the given one. Night wraps to Dawn;
// the wrap is where the day counter advances, handled by the engine.
func NextPhase(phase string) string {
	for i, p := range phaseOrder {
		if p == phase && i < len(phaseOrder)-1 {
			return phaseOrder[i+1]
		}
	}
	return Dawn
}

// Config holds the ordered season cycle.
type Config struct {
	Seasons []types.SeasonDef
}

// DefaultSeasons is the cycle used when content supplies none.
func DefaultSeasons() []types.SeasonDef {
	return []types.SeasonDef{
		{Name: "spring", Length: 30},
		{Name: "summer", Length: 30},
		{Name: "autumn", Length: 30},
		{Name: "winter", Length: 30},
	}
}

// New builds a calendar config. An empty season list falls back to defaults.
func New(seasons []types.SeasonDef) *Config {
	if len(seasons) == 0 {
		seasons = DefaultSeasons()
	}
	return &Config{Seasons: seasons}
}

// YearLength returns the total days in one full season cycle.
func (c *Config) YearLength() int {
	total := 0
	for _, s := range c.Seasons {
		total += s.Length
	}
	return total
}

// SeasonForDay maps an absolute day (1-indexed) to its season name and the
// 1-indexed day within that season. The cycle repeats indefinitely.
func (c *Config) SeasonForDay(day int) (string, int) {
	if day < 1 {
		day = 1
	}
	offset := (day - 1) % c.YearLength()
	for _, s := range c.Seasons {
		if offset < s.Length {
			return s.Name, offset + 1
		}
		offset -= s.Length
	}
	// Unreachable with a positive year length.
	last := c.Seasons[len(c.Seasons)-1]
	return last.Name, last.Length
}

// SeasonLength returns the length in days of the named season, or 0 if the
// season is not in the cycle.
func (c *Config) SeasonLength(name string) int {
	for _, s := range c.Seasons {
		if s.Name == name {
			return s.Length
		}
	}
	return 0
}
