// Package world drives the environment around the pet: a day clock with
// named periods, a seasonal calendar, weather, and festival/random events.
package world

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/nadagotchi/config"
)

// State is the environment snapshot the pet reacts to each tick.
type State struct {
	Season      string `json:"season"`
	Period      string `json:"period"`
	Weather     string `json:"weather"`
	ActiveEvent string `json:"activeEvent,omitempty"`
	Festival    bool   `json:"festival,omitempty"`
	Day         int    `json:"day"`
}

// Clock tracks the time of day as a fraction in [0, 1).
type Clock struct {
	dayLengthMs float64
	time        float64
	periods     []config.PeriodConfig
}

// NewClock creates a clock at the configured start time.
func NewClock(cfg config.WorldConfig) *Clock {
	return &Clock{
		dayLengthMs: cfg.DayLengthSec * 1000,
		time:        cfg.StartTime,
		periods:     cfg.Periods,
	}
}

// Update advances the clock and returns how many day boundaries were crossed.
func (c *Clock) Update(deltaMs float64) int {
	if deltaMs <= 0 || c.dayLengthMs <= 0 {
		return 0
	}
	c.time += deltaMs / c.dayLengthMs
	days := int(math.Floor(c.time))
	c.time -= float64(days)
	return days
}

// Time returns the fraction of the day elapsed.
func (c *Clock) Time() float64 { return c.time }

// SetTime sets the fraction of the day, wrapping into [0, 1).
func (c *Clock) SetTime(t float64) {
	c.time = t - math.Floor(t)
}

// Period returns the name of the current time period.
func (c *Clock) Period() string {
	for _, p := range c.periods {
		if c.time >= p.Start && c.time < p.End {
			return p.Name
		}
	}
	if len(c.periods) > 0 {
		return c.periods[len(c.periods)-1].Name
	}
	return ""
}

// Calendar tracks day-of-season, season and year.
type Calendar struct {
	Day           int `json:"day"` // 1-based day within the season
	SeasonIndex   int `json:"seasonIndex"`
	Year          int `json:"year"`
	daysPerSeason int
	seasons       []string
}

// NewCalendar starts on day 1 of the first season, year 1.
func NewCalendar(cfg config.WorldConfig) *Calendar {
	return &Calendar{Day: 1, Year: 1, daysPerSeason: cfg.DaysPerSeason, seasons: cfg.Seasons}
}

// AdvanceDay moves to the next day and reports whether the season changed.
func (c *Calendar) AdvanceDay() bool {
	c.Day++
	if c.Day <= c.daysPerSeason {
		return false
	}
	c.Day = 1
	c.SeasonIndex++
	if c.SeasonIndex >= len(c.seasons) {
		c.SeasonIndex = 0
		c.Year++
	}
	return true
}

// Season returns the current season name.
func (c *Calendar) Season() string {
	if len(c.seasons) == 0 {
		return ""
	}
	return c.seasons[c.SeasonIndex%len(c.seasons)]
}

// TotalDays returns days elapsed since the start of year 1, counting from 1.
func (c *Calendar) TotalDays() int {
	perYear := c.daysPerSeason * len(c.seasons)
	return (c.Year-1)*perYear + c.SeasonIndex*c.daysPerSeason + c.Day
}

// Weather holds the current weather and rolls daily changes.
type Weather struct {
	Current      string
	options      []string
	changeChance float64
}

// NewWeather starts with the first configured weather.
func NewWeather(cfg config.WorldConfig) *Weather {
	w := &Weather{options: cfg.Weathers, changeChance: cfg.WeatherChangeChance}
	if len(cfg.Weathers) > 0 {
		w.Current = cfg.Weathers[0]
	}
	return w
}

// Roll may switch to a different weather and reports whether it changed.
func (w *Weather) Roll(rng *rand.Rand) bool {
	if len(w.options) < 2 || rng.Float64() >= w.changeChance {
		return false
	}
	var others []string
	for _, o := range w.options {
		if o != w.Current {
			others = append(others, o)
		}
	}
	w.Current = others[rng.IntN(len(others))]
	return true
}

// Events picks at most one active event per day.
type Events struct {
	Active      string
	Festival    bool
	festivals   []config.FestivalConfig
	spontaneous []config.SpontaneousEventConfig
}

// NewEvents creates an event manager with nothing active.
func NewEvents(cfg config.WorldConfig) *Events {
	return &Events{festivals: cfg.Festivals, spontaneous: cfg.Spontaneous}
}

// Update clears yesterday's event and picks today's: a festival scheduled
// for this day wins, otherwise each spontaneous event is rolled in order.
func (e *Events) Update(cal *Calendar, rng *rand.Rand) {
	e.Active, e.Festival = "", false
	for _, f := range e.festivals {
		if f.Season == cal.Season() && f.Day == cal.Day {
			e.Active, e.Festival = f.Name, true
			return
		}
	}
	for _, s := range e.spontaneous {
		if rng.Float64() < s.Chance {
			e.Active = s.Name
			return
		}
	}
}

// World bundles the environment drivers.
type World struct {
	Clock    *Clock
	Calendar *Calendar
	Weather  *Weather
	Events   *Events
}

// New creates a world at its configured starting point.
func New(cfg config.WorldConfig) *World {
	w := &World{
		Clock:    NewClock(cfg),
		Calendar: NewCalendar(cfg),
		Weather:  NewWeather(cfg),
		Events:   NewEvents(cfg),
	}
	return w
}

// Advance moves the clock forward. For each day boundary crossed the
// calendar, weather and events roll over. Returns the number of new days.
func (w *World) Advance(deltaMs float64, rng *rand.Rand) int {
	days := w.Clock.Update(deltaMs)
	for range days {
		w.Calendar.AdvanceDay()
		w.Weather.Roll(rng)
		w.Events.Update(w.Calendar, rng)
	}
	return days
}

// State returns the current environment snapshot.
func (w *World) State() State {
	return State{
		Season:      w.Calendar.Season(),
		Period:      w.Clock.Period(),
		Weather:     w.Weather.Current,
		ActiveEvent: w.Events.Active,
		Festival:    w.Events.Festival,
		Day:         w.Calendar.TotalDays(),
	}
}

// Snapshot is the persisted form of a world.
type Snapshot struct {
	Time        float64 `json:"time"`
	Day         int     `json:"day"`
	SeasonIndex int     `json:"seasonIndex"`
	Year        int     `json:"year"`
	Weather     string  `json:"weather"`
	ActiveEvent string  `json:"activeEvent,omitempty"`
	Festival    bool    `json:"festival,omitempty"`
}

// Snapshot captures the world state.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Time:        w.Clock.Time(),
		Day:         w.Calendar.Day,
		SeasonIndex: w.Calendar.SeasonIndex,
		Year:        w.Calendar.Year,
		Weather:     w.Weather.Current,
		ActiveEvent: w.Events.Active,
		Festival:    w.Events.Festival,
	}
}

// Restore applies a snapshot. Zero fields keep their defaults.
func (w *World) Restore(s Snapshot) {
	w.Clock.SetTime(s.Time)
	if s.Day > 0 {
		w.Calendar.Day = s.Day
	}
	w.Calendar.SeasonIndex = s.SeasonIndex
	if s.Year > 0 {
		w.Calendar.Year = s.Year
	}
	if s.Weather != "" {
		w.Weather.Current = s.Weather
	}
	w.Events.Active = s.ActiveEvent
	w.Events.Festival = s.Festival
}
