package telemetry

import (
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/world"
)

// Collector accumulates pet events and need samples within one day and
// produces DayStats. It implements pet.EventSink.
type Collector struct {
	counts [32]int

	hunger    []float64
	energy    []float64
	happiness []float64

	// Events seen since the last DrainEvents, when buffering is on
	buffer  bool
	pending []pet.Event
}

// NewCollector creates a new stats collector. When bufferEvents is set the
// raw events are kept until DrainEvents.
func NewCollector(bufferEvents bool) *Collector {
	return &Collector{buffer: bufferEvents}
}

// Emit counts an event.
func (c *Collector) Emit(e pet.Event) {
	if int(e.Kind) < len(c.counts) {
		c.counts[e.Kind]++
	}
	if c.buffer {
		c.pending = append(c.pending, e)
	}
}

// Count returns how many events of a kind were seen today.
func (c *Collector) Count(kind pet.EventKind) int {
	if int(kind) < len(c.counts) {
		return c.counts[kind]
	}
	return 0
}

// Sample records the pet's needs for the daily distribution.
func (c *Collector) Sample(s pet.Stats) {
	c.hunger = append(c.hunger, s.Hunger)
	c.energy = append(c.energy, s.Energy)
	c.happiness = append(c.happiness, s.Happiness)
}

// DrainEvents returns and clears the buffered events.
func (c *Collector) DrainEvents() []pet.Event {
	out := c.pending
	c.pending = nil
	return out
}

// Flush produces a DayStats for the day that just ended and resets counters.
// ws is the environment the day was lived in.
func (c *Collector) Flush(day int, ws world.State, p *pet.Nadagotchi) DayStats {
	hunger := ComputeNeedStats(c.hunger)
	energy := ComputeNeedStats(c.energy)
	happiness := ComputeNeedStats(c.happiness)

	stats := DayStats{
		Day:     day,
		Season:  ws.Season,
		Weather: ws.Weather,
		Event:   ws.ActiveEvent,

		Samples:       len(c.happiness),
		HungerMean:    hunger.Mean,
		HungerP10:     hunger.P10,
		HungerP50:     hunger.P50,
		EnergyMean:    energy.Mean,
		EnergyP10:     energy.P10,
		EnergyP50:     energy.P50,
		HappinessMean: happiness.Mean,
		HappinessStd:  happiness.Std,
		HappinessP10:  happiness.P10,
		HappinessP50:  happiness.P50,
		HappinessP90:  happiness.P90,

		Actions:           c.counts[pet.EventActionPerformed],
		Rejections:        c.counts[pet.EventActionRejected],
		Crafted:           c.counts[pet.EventItemCrafted],
		Foraged:           c.counts[pet.EventItemForaged],
		Cleaned:           c.counts[pet.EventDebrisCleaned],
		WorkShifts:        c.counts[pet.EventWorkShift],
		Promotions:        c.counts[pet.EventPromoted],
		MoodChanges:       c.counts[pet.EventMoodChanged],
		QuestsCompleted:   c.counts[pet.EventQuestCompleted] + c.counts[pet.EventDailyQuestCompleted],
		RecipesDiscovered: c.counts[pet.EventRecipeDiscovered],
	}

	if p != nil {
		h := p.Hygiene()
		stats.Mood = string(p.Mood())
		stats.Dominant = p.Dominant().String()
		stats.Career = p.Career()
		if stats.Career != "" {
			stats.CareerLevel = p.CareerLevel(stats.Career)
		}
		stats.Debris = h.Count()
		stats.Penalty = h.GlobalPenalty() + h.LocationPenalty(p.Location())
		stats.Age = p.Age()
	}

	c.counts = [32]int{}
	c.hunger = c.hunger[:0]
	c.energy = c.energy[:0]
	c.happiness = c.happiness[:0]

	return stats
}
