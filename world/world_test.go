package world

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/nadagotchi/config"
)

func worldConfig(t *testing.T) config.WorldConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg.World
}

func TestClockPeriods(t *testing.T) {
	c := NewClock(worldConfig(t))
	tests := []struct {
		time float64
		want string
	}{
		{0.0, "Night"},
		{0.1, "Night"},
		{0.25, "Dawn"},
		{0.5, "Day"},
		{0.85, "Dusk"},
		{0.95, "Night"},
	}
	for _, tt := range tests {
		c.SetTime(tt.time)
		if got := c.Period(); got != tt.want {
			t.Errorf("Period at %v = %q, want %q", tt.time, got, tt.want)
		}
	}
}

func TestClockUpdateWrapsDays(t *testing.T) {
	cfg := worldConfig(t)
	c := NewClock(cfg)
	dayMs := cfg.DayLengthSec * 1000

	if got := c.Update(dayMs * 0.5); got != 0 {
		t.Errorf("half day crossed %d days, want 0", got)
	}
	if got := c.Update(dayMs * 0.5); got != 1 {
		t.Errorf("second half crossed %d days, want 1", got)
	}
	if math.Abs(c.Time()-cfg.StartTime) > 1e-9 {
		t.Errorf("time = %v, want %v", c.Time(), cfg.StartTime)
	}
	if got := c.Update(dayMs * 3); got != 3 {
		t.Errorf("three days crossed %d, want 3", got)
	}
}

func TestCalendarSeasons(t *testing.T) {
	cfg := worldConfig(t)
	cal := NewCalendar(cfg)

	for range cfg.DaysPerSeason - 1 {
		if cal.AdvanceDay() {
			t.Fatal("season changed early")
		}
	}
	if cal.Season() != "Spring" {
		t.Errorf("season = %q, want Spring", cal.Season())
	}
	if !cal.AdvanceDay() {
		t.Error("expected season change")
	}
	if cal.Season() != "Summer" || cal.Day != 1 {
		t.Errorf("got %s day %d, want Summer day 1", cal.Season(), cal.Day)
	}

	for range cfg.DaysPerSeason * 3 {
		cal.AdvanceDay()
	}
	if cal.Season() != "Spring" || cal.Year != 2 {
		t.Errorf("got %s year %d, want Spring year 2", cal.Season(), cal.Year)
	}
	if got, want := cal.TotalDays(), cfg.DaysPerSeason*len(cfg.Seasons)+1; got != want {
		t.Errorf("TotalDays = %d, want %d", got, want)
	}
}

func TestWeatherRollAlwaysChanges(t *testing.T) {
	cfg := worldConfig(t)
	cfg.WeatherChangeChance = 1
	w := NewWeather(cfg)
	rng := rand.New(rand.NewPCG(1, 1))
	for range 20 {
		before := w.Current
		if !w.Roll(rng) {
			t.Fatal("roll with chance 1 did not change weather")
		}
		if w.Current == before {
			t.Fatalf("weather stayed %q", before)
		}
	}
}

func TestEventsFestivalDay(t *testing.T) {
	cfg := worldConfig(t)
	cal := NewCalendar(cfg)
	ev := NewEvents(cfg)
	rng := rand.New(rand.NewPCG(1, 1))

	cal.Day = 14
	ev.Update(cal, rng)
	if ev.Active != "SpringEquinoxFestival" || !ev.Festival {
		t.Errorf("active = %q festival = %v, want SpringEquinoxFestival", ev.Active, ev.Festival)
	}

	cal.Day = 15
	cfg.Spontaneous = nil
	ev = NewEvents(cfg)
	ev.Update(cal, rng)
	if ev.Active != "" || ev.Festival {
		t.Errorf("expected no event, got %q", ev.Active)
	}
}

func TestWorldSnapshotRestore(t *testing.T) {
	cfg := worldConfig(t)
	w := New(cfg)
	rng := rand.New(rand.NewPCG(9, 9))
	w.Advance(cfg.DayLengthSec*1000*40, rng)

	snap := w.Snapshot()
	other := New(cfg)
	other.Restore(snap)

	if other.State() != w.State() {
		t.Errorf("restored state %+v, want %+v", other.State(), w.State())
	}
}
