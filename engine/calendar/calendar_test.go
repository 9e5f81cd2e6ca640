package calendar

import "testing"

func TestSeasonForDay_FirstSeason(t *testing.T) {
	c := New(nil)

	season, dayIn := c.SeasonForDay(6)
	if season != "spring" || dayIn != 6 {
		t.Errorf("expected spring day 6, got %s day %d", season, dayIn)
	}
}

func TestSeasonForDay_Boundary(t *testing.T) {
	c := New(nil)

	season, dayIn := c.SeasonForDay(30)
	if season != "spring" || dayIn != 30 {
		t.Errorf("expected spring day 30, got %s day %d", season, dayIn)
	}
	season, dayIn = c.SeasonForDay(31)
	if season != "summer" || dayIn != 1 {
		t.Errorf("expected summer day 1, got %s day %d", season, dayIn)
	}
}

func TestSeasonForDay_WrapsYear(t *testing.T) {
	c := New(nil)

	season, dayIn := c.SeasonForDay(121)
	if season != "spring" || dayIn != 1 {
		t.Errorf("expected new year spring day 1, got %s day %d", season, dayIn)
	}
}

func TestYearLength(t *testing.T) {
	c := New(nil)

	if got := c.YearLength(); got != 120 {
		t.Errorf("expected 120, got %d", got)
	}
}

func TestNextPhase_Order(t *testing.T) {
	if got := NextPhase(Dawn); got != Day {
		t.Errorf("expected day after dawn, got %s", got)
	}
	if got := NextPhase(Dusk); got != Night {
		t.Errorf("expected night after dusk, got %s", got)
	}
	if got := NextPhase(Night); got != Dawn {
		t.Errorf("expected wrap to dawn, got %s", got)
	}
}
