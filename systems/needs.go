package systems

import (
	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
	"github.com/pthm-cable/nadagotchi/world"
)

// Mood is the pet's current emotional state.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodNeutral Mood = "neutral"
)

// ParseMood returns the mood for a name, or false if unknown.
func ParseMood(s string) (Mood, bool) {
	switch m := Mood(s); m {
	case MoodHappy, MoodSad, MoodAngry, MoodNeutral:
		return m, true
	}
	return "", false
}

// EnvEffect is the combined environment influence for one tick.
type EnvEffect struct {
	HungerMult float64
	EnergyMult float64
	Happiness  float64 // Per frame
}

// EnvironmentEffect folds the weather, period and season tables, their
// archetype layers, the pet's special ability, and any festival bonus into
// a single effect.
func EnvironmentEffect(env config.EnvironmentConfig, ws world.State, dominant traits.Archetype, ability string) EnvEffect {
	eff := EnvEffect{HungerMult: 1, EnergyMult: 1}
	apply := func(m config.Modifier) {
		eff.HungerMult *= m.HungerMult()
		eff.EnergyMult *= m.EnergyMult()
		eff.Happiness += m.Happiness
	}

	name := dominant.String()
	for _, lookup := range []struct {
		table map[string]config.EnvTable
		key   string
	}{
		{env.Weather, ws.Weather},
		{env.Periods, ws.Period},
		{env.Seasons, ws.Season},
	} {
		t, ok := lookup.table[lookup.key]
		if !ok {
			continue
		}
		apply(t.Modifier)
		if m, ok := t.Archetypes[name]; ok {
			apply(m)
		}
	}

	if ability != "" {
		conds := env.Abilities[ability]
		if m, ok := conds[ws.Period]; ok {
			apply(m)
		}
		if m, ok := conds[ws.Weather]; ok {
			apply(m)
		}
	}

	if ws.Festival {
		eff.Happiness += env.FestivalHappiness
	}
	return eff
}

// DeriveMood applies the mood priority: angry from hunger, then sad from
// hunger or energy, then happy above happyThreshold, else neutral.
func DeriveMood(hunger, energy, happiness, happyThreshold float64, th config.ThresholdsConfig) Mood {
	switch {
	case hunger < th.HungerAngry:
		return MoodAngry
	case hunger < th.HungerSad || energy < th.EnergySad:
		return MoodSad
	case happiness > happyThreshold:
		return MoodHappy
	default:
		return MoodNeutral
	}
}
