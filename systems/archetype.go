package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/nadagotchi/traits"
)

// ResolveDominant picks the dominant archetype from personality points.
//
// The archetypes with the most points are candidates. A single candidate wins
// outright. On a tie the incumbent keeps its title unless another candidate
// has a strictly higher affinity skill; the best of those take over. Any tie
// that remains, or a tie without the incumbent, is broken with rng.
func ResolveDominant(points map[traits.Archetype]float64, skills map[string]float64, incumbent traits.Archetype, hasIncumbent bool, rng *rand.Rand) traits.Archetype {
	best := -1.0
	var candidates []traits.Archetype
	for _, a := range traits.All {
		v := points[a]
		switch {
		case v > best:
			best = v
			candidates = append(candidates[:0], a)
		case v == best:
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	remaining := candidates
	if hasIncumbent && contains(candidates, incumbent) {
		incAff := incumbent.Affinity(skills)
		top := incAff
		var higher []traits.Archetype
		for _, c := range candidates {
			if c == incumbent {
				continue
			}
			aff := c.Affinity(skills)
			switch {
			case aff > top:
				top = aff
				higher = append(higher[:0], c)
			case aff == top && aff > incAff:
				higher = append(higher, c)
			}
		}
		if len(higher) == 0 {
			return incumbent
		}
		remaining = higher
	}

	if len(remaining) == 1 {
		return remaining[0]
	}
	return remaining[rng.IntN(len(remaining))]
}

// RunnerUp returns the archetype with the most points other than primary.
// Ties go to the earlier archetype in traits.All.
func RunnerUp(points map[traits.Archetype]float64, primary traits.Archetype) traits.Archetype {
	var (
		out   traits.Archetype
		best  float64
		found bool
	)
	for _, a := range traits.All {
		if a == primary {
			continue
		}
		if v := points[a]; !found || v > best {
			out, best, found = a, v, true
		}
	}
	return out
}

func contains(set []traits.Archetype, a traits.Archetype) bool {
	for _, s := range set {
		if s == a {
			return true
		}
	}
	return false
}
