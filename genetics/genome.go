// Package genetics implements the diploid pet genome: phenotype derivation,
// breeding with environmental alleles, and a checksummed DNA string codec.
package genetics

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
)

// Gene names used outside the five archetypes.
const (
	GeneMetabolism      = "metabolism"
	GeneMoodSensitivity = "moodSensitivity"
	GeneSpecialAbility  = "specialAbility"
)

// MaxAllele bounds every numeric allele.
const MaxAllele = 100

// ErrMalformedGenome is returned when a genotype is missing genes or has bad values.
var ErrMalformedGenome = errors.New("malformed genome")

// Genome is an immutable set of allele pairs. The zero value is not usable;
// construct with NewGenome, FromGenotype or Breed.
type Genome struct {
	personality     [5][2]float64
	metabolism      [2]float64
	moodSensitivity [2]float64
	specialAbility  [2]string
	valid           bool
}

// Genotype is the plain serializable form of a genome.
type Genotype struct {
	Adventurer      []float64 `json:"Adventurer"`
	Nurturer        []float64 `json:"Nurturer"`
	Mischievous     []float64 `json:"Mischievous"`
	Intellectual    []float64 `json:"Intellectual"`
	Recluse         []float64 `json:"Recluse"`
	Metabolism      []float64 `json:"metabolism"`
	MoodSensitivity []float64 `json:"moodSensitivity"`
	SpecialAbility  []string  `json:"specialAbility"`
}

// NewGenome builds a fresh-start genome. The starter archetype pairs one
// starter allele with a wild one, so a fresh pet is heterozygous there;
// every other archetype gets two wild alleles.
func NewGenome(starter traits.Archetype, cfg config.GeneticsConfig, rng *rand.Rand) Genome {
	var g Genome
	for _, a := range traits.All {
		if a == starter {
			g.personality[a] = [2]float64{cfg.StarterAllele, wild(cfg.WildPersonalityMin, cfg.WildPersonalityMax, rng)}
			continue
		}
		g.personality[a] = [2]float64{
			wild(cfg.WildPersonalityMin, cfg.WildPersonalityMax, rng),
			wild(cfg.WildPersonalityMin, cfg.WildPersonalityMax, rng),
		}
	}
	g.metabolism = [2]float64{cfg.MetabolismDefault, cfg.MetabolismDefault}
	g.moodSensitivity = [2]float64{cfg.MoodSensitivityDefault, cfg.MoodSensitivityDefault}
	g.valid = true
	return g
}

// FromGenotype validates a serialized genotype and builds a genome from it.
func FromGenotype(gt Genotype) (Genome, error) {
	var g Genome
	pairs := []struct {
		name string
		in   []float64
		out  *[2]float64
	}{
		{"Adventurer", gt.Adventurer, &g.personality[traits.Adventurer]},
		{"Nurturer", gt.Nurturer, &g.personality[traits.Nurturer]},
		{"Mischievous", gt.Mischievous, &g.personality[traits.Mischievous]},
		{"Intellectual", gt.Intellectual, &g.personality[traits.Intellectual]},
		{"Recluse", gt.Recluse, &g.personality[traits.Recluse]},
		{GeneMetabolism, gt.Metabolism, &g.metabolism},
		{GeneMoodSensitivity, gt.MoodSensitivity, &g.moodSensitivity},
	}
	for _, p := range pairs {
		if len(p.in) != 2 {
			return Genome{}, fmt.Errorf("%w: gene %s has %d alleles", ErrMalformedGenome, p.name, len(p.in))
		}
		for _, v := range p.in {
			if math.IsNaN(v) || v < 0 || v > MaxAllele {
				return Genome{}, fmt.Errorf("%w: gene %s allele %v out of range", ErrMalformedGenome, p.name, v)
			}
		}
		*p.out = [2]float64{p.in[0], p.in[1]}
	}

	switch len(gt.SpecialAbility) {
	case 0:
	case 2:
		g.specialAbility = [2]string{gt.SpecialAbility[0], gt.SpecialAbility[1]}
	default:
		return Genome{}, fmt.Errorf("%w: gene %s has %d alleles", ErrMalformedGenome, GeneSpecialAbility, len(gt.SpecialAbility))
	}
	g.valid = true
	return g, nil
}

// Valid reports whether the genome was properly constructed.
func (g Genome) Valid() bool { return g.valid }

// Genotype returns a copy of the allele pairs in serializable form.
func (g Genome) Genotype() Genotype {
	pair := func(p [2]float64) []float64 { return []float64{p[0], p[1]} }
	return Genotype{
		Adventurer:      pair(g.personality[traits.Adventurer]),
		Nurturer:        pair(g.personality[traits.Nurturer]),
		Mischievous:     pair(g.personality[traits.Mischievous]),
		Intellectual:    pair(g.personality[traits.Intellectual]),
		Recluse:         pair(g.personality[traits.Recluse]),
		Metabolism:      pair(g.metabolism),
		MoodSensitivity: pair(g.moodSensitivity),
		SpecialAbility:  []string{g.specialAbility[0], g.specialAbility[1]},
	}
}

// Alleles returns the allele pair for an archetype.
func (g Genome) Alleles(a traits.Archetype) [2]float64 {
	return g.personality[a]
}

// WithMetabolism returns a copy with both metabolism alleles shifted by delta,
// never dropping below floor.
func (g Genome) WithMetabolism(delta, floor float64) Genome {
	out := g
	for i := range out.metabolism {
		out.metabolism[i] = math.Max(floor, out.metabolism[i]+delta)
	}
	return out
}

// TraitValue is a phenotype entry.
type TraitValue struct {
	Value      float64
	Homozygous bool
}

// Phenotype holds trait values derived from a genome.
type Phenotype struct {
	Personality     [5]TraitValue
	Metabolism      TraitValue
	MoodSensitivity TraitValue
	SpecialAbility  string
	// SpecialHomozygous is set when both ability alleles carry the same trait.
	SpecialHomozygous bool
}

// Archetype returns the phenotype entry for an archetype.
func (p Phenotype) Archetype(a traits.Archetype) TraitValue {
	return p.Personality[a]
}

// CalculatePhenotype derives trait values: numeric traits average their two
// alleles and are homozygous when the alleles match.
func (g Genome) CalculatePhenotype() Phenotype {
	var p Phenotype
	for _, a := range traits.All {
		p.Personality[a] = express(g.personality[a])
	}
	p.Metabolism = express(g.metabolism)
	p.MoodSensitivity = express(g.moodSensitivity)

	s := g.specialAbility
	switch {
	case s[0] != "":
		p.SpecialAbility = s[0]
	case s[1] != "":
		p.SpecialAbility = s[1]
	}
	p.SpecialHomozygous = s[0] != "" && s[0] == s[1]
	return p
}

func express(pair [2]float64) TraitValue {
	return TraitValue{
		Value:      (pair[0] + pair[1]) / 2,
		Homozygous: pair[0] == pair[1],
	}
}

// wild draws an integer-valued allele in [lo, hi].
func wild(lo, hi float64, rng *rand.Rand) float64 {
	span := int(hi - lo)
	if span <= 0 {
		return lo
	}
	return lo + float64(rng.IntN(span+1))
}
