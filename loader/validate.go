package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/content"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known event categories. Selection weights are keyed by these.
var validCategories = map[string]bool{
	"forage":    true,
	"flavor":    true,
	"encounter": true,
	"hazard":    true,
	"boon":      true,
}

// validate checks the compiled registry for referential integrity.
func validate(reg *content.Registry) error {
	ve := &ValidationError{}

	if reg.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	for _, season := range reg.Seasons {
		if season.Length <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"season %q has non-positive length %d", season.Name, season.Length))
		}
	}

	for _, evt := range reg.Events {
		if evt.Category != "" && !validCategories[evt.Category] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q has unknown category %q", evt.ID, evt.Category))
		}
		if evt.MaxDepth >= 0 && evt.MinDepth > evt.MaxDepth {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q depth range [%d, %d] is inverted", evt.ID, evt.MinDepth, evt.MaxDepth))
		}
		if evt.BaseWeight < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q has negative base_weight %g", evt.ID, evt.BaseWeight))
		}
		if evt.Text == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("event %q has no text", evt.ID))
		}
		for _, creature := range sortedRapportKeys(evt.Effects.RapportDelta) {
			if _, ok := reg.Creatures[creature]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q changes rapport with undefined creature %q", evt.ID, creature))
			}
		}
	}

	for _, id := range reg.LandmarkOrder {
		lm := reg.Landmarks[id]
		if lm.DepthMin > lm.DepthMax {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"landmark %q depth range [%d, %d] is inverted", id, lm.DepthMin, lm.DepthMax))
		}
		for _, creature := range sortedBiasKeys(lm.EncounterBiases) {
			if _, ok := reg.Creatures[creature]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"landmark %q biases encounters toward undefined creature %q", id, creature))
			}
		}
	}

	for id, rs := range reg.Runestones {
		if rs.LandmarkID == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("runestone %q names no landmark", id))
			continue
		}
		lm, ok := reg.Landmarks[rs.LandmarkID]
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"runestone %q bound to undefined landmark %q", id, rs.LandmarkID))
			continue
		}
		if !lm.Features["has_runestone"] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"landmark %q hosts runestone %q but lacks the has_runestone feature", rs.LandmarkID, id))
		}
	}

	for _, id := range reg.TeaOrder {
		tea := reg.Teas[id]
		if len(tea.Ingredients) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("tea %q has no ingredients", id))
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func sortedBiasKeys(m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedRapportKeys returns map keys in sorted order for stable error output.
func sortedRapportKeys(m map[string]int) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
