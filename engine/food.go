package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberwood/engine/character"
)

// properMeals are filling enough to reset the hunger counter.
var properMeals = map[string]bool{
	"cooked_fish":      true,
	"roasted_roots":    true,
	"hearty_stew":      true,
	"baked_tuber":      true,
	"cooked_mushrooms": true,
	"trail_ration":     true,
	"smoked_meat":      true,
}

// snacks hold the hunger counter for a day without resetting it.
var snacks = map[string]bool{
	"wild_berries":  true,
	"pine_nuts":     true,
	"sweet_root":    true,
	"honeycomb":     true,
	"dried_berries": true,
	"forest_greens": true,
	"river_snail":   true,
}

// IsProperMeal reports whether eating the item counts as a full meal.
func IsProperMeal(item string) bool {
	return properMeals[item] || strings.HasPrefix(item, "cooked_")
}

// IsSnack reports whether the item is edible at all, short of a meal.
func IsSnack(item string) bool {
	return snacks[item]
}

// eat consumes a named item from the inventory. A proper meal resets hunger;
// a snack holds it for the day. Anything else is refused.
func (e *Engine) eat(item string) string {
	s := e.State
	if item == "" {
		return "Eat what?\n"
	}
	if !s.HasItem(item) {
		return fmt.Sprintf("You have no %s.\n", item)
	}

	switch {
	case IsProperMeal(item):
		s.RemoveItem(item)
		s.AteMealToday = true
		s.DaysWithoutMeal = 0
		return fmt.Sprintf("You eat the %s slowly, letting the warmth settle. A proper meal at last.\n", item)
	case IsSnack(item):
		s.RemoveItem(item)
		s.AteSnackToday = true
		return fmt.Sprintf("You eat the %s. It takes the edge off, nothing more.\n", item)
	default:
		return fmt.Sprintf("The %s is not something you can stomach.\n", item)
	}
}

// campMeal turns raw food into a proper meal at camp, consuming the
// character's camp_meal_cost in snack items.
func (e *Engine) campMeal() string {
	s := e.State
	cost := int(s.Character.Stat("camp_meal_cost", s.TimedModifiers, s.Day))
	if cost < 1 {
		cost = 1
	}

	var held []string
	for _, item := range s.Inventory {
		if IsSnack(item) || IsProperMeal(item) {
			held = append(held, item)
		}
	}
	if len(held) < cost {
		return "You don't have enough food to cook a proper meal.\n"
	}
	for i := 0; i < cost; i++ {
		s.RemoveItem(held[i])
	}
	s.AteMealToday = true
	s.DaysWithoutMeal = 0
	return "You cook what you have over the fire and eat until the gnawing stops.\n"
}

// brew queues a tea for the next wake. The kettle needs the night to work.
func (e *Engine) brew(teaID string) string {
	s := e.State
	if teaID == "" {
		return e.knownTeasText()
	}
	tea, ok := e.Registry.Tea(teaID)
	if !ok {
		return fmt.Sprintf("You know no brew called %s.\n", teaID)
	}
	for _, ing := range tea.Ingredients {
		if !s.HasItem(ing) {
			return fmt.Sprintf("You are missing %s for %s.\n", ing, tea.Name)
		}
	}
	for _, ing := range tea.Ingredients {
		s.RemoveItem(ing)
	}
	s.PendingBrews = append(s.PendingBrews, tea.ID)
	return fmt.Sprintf("You set %s to steep. It will be ready when you wake.\n", tea.Name)
}

func (e *Engine) knownTeasText() string {
	if len(e.Registry.TeaOrder) == 0 {
		return "You know no tea recipes yet.\n"
	}
	var b strings.Builder
	b.WriteString("Brews you know:\n")
	for _, id := range e.Registry.TeaOrder {
		tea := e.Registry.Teas[id]
		b.WriteString(fmt.Sprintf("  %s (%s): needs %s\n", tea.Name, id, strings.Join(tea.Ingredients, ", ")))
	}
	return b.String()
}

// applyPendingBrews installs the timed modifiers for teas steeped overnight.
func (e *Engine) applyPendingBrews() {
	s := e.State
	for _, id := range s.PendingBrews {
		tea, ok := e.Registry.Tea(id)
		if !ok {
			e.Log.Warn("pending brew references unknown tea", "tea", id)
			continue
		}
		duration := tea.DurationDays
		if duration <= 0 {
			duration = 1
		}
		s.TimedModifiers = append(s.TimedModifiers, character.TimedModifier{
			Source:       "tea:" + tea.ID,
			Modifiers:    tea.Modifiers,
			ExpiresOnDay: s.Day + duration - 1,
		})
		if tea.Text != "" {
			e.UI.Display(tea.Text + "\n")
		} else {
			e.UI.Display(fmt.Sprintf("You drink the %s. Its effect settles in for the day.\n", tea.Name))
		}
	}
	s.PendingBrews = s.PendingBrews[:0]
}
