package genetics

import (
	"math/rand/v2"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
)

// Breed produces a child genome. Each gene takes one random allele from the
// parent and one from the environment: the first item in items that targets
// the gene, or a wild allele. Every allele then has a small chance to mutate.
func Breed(parent Genome, items []string, cfg config.GeneticsConfig, rng *rand.Rand) Genome {
	env := environmentAlleles(items, cfg.Influences)

	var child Genome
	for _, a := range traits.All {
		other, ok := env[a.String()]
		if !ok {
			other = wild(cfg.WildPersonalityMin, cfg.WildPersonalityMax, rng)
		}
		pair := [2]float64{pick(parent.personality[a], rng), other}
		child.personality[a] = mutatePair(pair, cfg.PersonalityStep, cfg.PersonalityMax, cfg.MutationRate, rng)
	}

	for _, gene := range []struct {
		name string
		from [2]float64
		to   *[2]float64
	}{
		{GeneMetabolism, parent.metabolism, &child.metabolism},
		{GeneMoodSensitivity, parent.moodSensitivity, &child.moodSensitivity},
	} {
		other, ok := env[gene.name]
		if !ok {
			other = wild(cfg.WildPhysioMin, cfg.WildPhysioMax, rng)
		}
		pair := [2]float64{pick(gene.from, rng), other}
		*gene.to = mutatePair(pair, cfg.PhysioStep, cfg.PhysioMax, cfg.MutationRate, rng)
	}

	child.specialAbility = [2]string{parent.specialAbility[rng.IntN(2)], ""}
	for i := range child.specialAbility {
		if len(cfg.SpecialAbilities) > 0 && rng.Float64() < cfg.MutationRate {
			child.specialAbility[i] = cfg.SpecialAbilities[rng.IntN(len(cfg.SpecialAbilities))]
		}
	}

	child.valid = true
	return child
}

// environmentAlleles maps gene name to allele for the given items.
func environmentAlleles(items []string, influences []config.GeneInfluence) map[string]float64 {
	out := make(map[string]float64)
	for _, item := range items {
		for _, inf := range influences {
			if inf.Item != item {
				continue
			}
			if _, taken := out[inf.Gene]; !taken {
				out[inf.Gene] = inf.Value
			}
		}
	}
	return out
}

func pick(pair [2]float64, rng *rand.Rand) float64 {
	return pair[rng.IntN(2)]
}

// mutatePair nudges each allele up or down by step with probability rate,
// clamped to [0, hi].
func mutatePair(pair [2]float64, step, hi, rate float64, rng *rand.Rand) [2]float64 {
	for i, v := range pair {
		if rng.Float64() >= rate {
			continue
		}
		if rng.IntN(2) == 0 {
			v -= step
		} else {
			v += step
		}
		pair[i] = min(max(v, 0), hi)
	}
	return pair
}
