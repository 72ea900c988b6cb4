package systems

import (
	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
)

// MatchCareer returns the first career whose archetype is dominant and whose
// every skill requirement is strictly exceeded.
func MatchCareer(careers []config.CareerConfig, dominant traits.Archetype, skills map[string]float64) (string, bool) {
	for _, c := range careers {
		if c.Archetype != dominant.String() {
			continue
		}
		met := true
		for skill, threshold := range c.Requirements {
			if skills[skill] <= threshold {
				met = false
				break
			}
		}
		if met {
			return c.Name, true
		}
	}
	return "", false
}

// CareerLevel returns the level reached with xp. Level 1 needs no XP and
// each threshold crossed adds a level.
func CareerLevel(xp float64, thresholds []float64) int {
	level := 1
	for _, t := range thresholds {
		if xp < t {
			break
		}
		level++
	}
	return level
}

// LevelMultiplier returns the payout multiplier for a level, using the last
// entry for levels beyond the table.
func LevelMultiplier(level int, multipliers []float64) float64 {
	if len(multipliers) == 0 {
		return 1
	}
	i := levelIndex(level, len(multipliers))
	return multipliers[i]
}

// Title returns the rank title for a career level.
func Title(c config.CareerConfig, level int) string {
	if len(c.Titles) == 0 {
		return c.Name
	}
	i := levelIndex(level, len(c.Titles))
	return c.Titles[i]
}
