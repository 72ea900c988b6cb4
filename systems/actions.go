package systems

import (
	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
)

// ActionEffect is an action table row resolved for one dominant archetype.
type ActionEffect struct {
	Hunger    float64
	Energy    float64
	Happiness float64
	Skills    map[string]float64
	Points    map[traits.Archetype]float64
	Mood      Mood
	Discover  *config.Discovery
}

// ResolveAction stacks the dominant archetype's override on a base row.
// Mood and discovery come from the override when it sets them.
func ResolveAction(row config.ActionConfig, dominant traits.Archetype) ActionEffect {
	eff := ActionEffect{
		Hunger:    row.Hunger,
		Energy:    row.Energy,
		Happiness: row.Happiness,
		Skills:    make(map[string]float64, len(row.Skills)),
		Points:    make(map[traits.Archetype]float64, len(row.Points)),
		Discover:  row.Discover,
	}
	for k, v := range row.Skills {
		eff.Skills[k] += v
	}
	addPoints(eff.Points, row.Points)

	o, ok := row.Overrides[dominant.String()]
	if !ok {
		return eff
	}
	eff.Hunger += o.Hunger
	eff.Energy += o.Energy
	eff.Happiness += o.Happiness
	for k, v := range o.Skills {
		eff.Skills[k] += v
	}
	addPoints(eff.Points, o.Points)
	if m, ok := ParseMood(o.Mood); ok {
		eff.Mood = m
	}
	if o.Discover != nil {
		eff.Discover = o.Discover
	}
	return eff
}

func addPoints(dst map[traits.Archetype]float64, src map[string]float64) {
	for name, v := range src {
		if a, ok := traits.ParseArchetype(name); ok {
			dst[a] += v
		}
	}
}
