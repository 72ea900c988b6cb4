package pet

import (
	"github.com/pthm-cable/nadagotchi/genetics"
	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
)

// CalculateOffspring builds the next generation from this pet. Items are the
// breeding environment: they bias the child's genes and may grant bonus
// personality points and hobby levels. The parent is left untouched apart
// from its RNG stream.
func (p *Nadagotchi) CalculateOffspring(items []string) *Snapshot {
	lc := p.cfg.Legacy

	points := map[traits.Archetype]float64{p.dominant: lc.PrimaryPoints}
	points[systems.RunnerUp(p.points, p.dominant)] += lc.SecondaryPoints
	hobbies := make(map[string]float64)
	for _, item := range items {
		inf, ok := lc.Influences[item]
		if !ok {
			continue
		}
		for name, v := range inf.Points {
			if a, ok := traits.ParseArchetype(name); ok {
				points[a] += v
			}
		}
		for h, v := range inf.Hobbies {
			hobbies[h] += v
		}
	}

	genome := genetics.Breed(p.genome, items, p.cfg.Genetics, p.rng)
	gt := genome.Genotype()

	drift := (p.rng.Float64()*2 - 1) * lc.MoodSensitivityDrift
	ms := min(max(p.moodSensitivity+drift, lc.MoodSensitivityMin), lc.MoodSensitivityMax)

	var inherited traits.LegacyTrait
	for _, t := range p.legacyTraits.Each() {
		if p.rng.Float64() < lc.TraitRetentionChance {
			inherited = inherited.Add(t)
		}
	}
	if len(lc.NewTraits) > 0 && p.rng.Float64() < lc.NewTraitChance {
		if t, ok := traits.ParseLegacyTrait(lc.NewTraits[p.rng.IntN(len(lc.NewTraits))]); ok {
			inherited = inherited.Add(t)
		}
	}

	rngState, err := newSource(p.rng.Uint64()).MarshalBinary()
	if err != nil {
		p.log.Warn("offspring rng state", "error", err)
	}

	child := FromSnapshot(&Snapshot{
		Version:           SnapshotVersion,
		Generation:        p.generation + 1,
		Genome:            &gt,
		MoodSensitivity:   &ms,
		LegacyTraits:      inherited.Names(),
		PersonalityPoints: points,
		Hobbies:           hobbies,
		Environment:       p.env,
		RNGState:          rngState,
	}, Options{Config: p.cfg, Logger: p.log})

	p.log.Info("offspring created",
		"parent", p.uuid,
		"child", child.uuid,
		"generation", child.generation,
		"dominant", child.dominant.String(),
		"traits", inherited.Names(),
	)
	return child.Snapshot()
}
