package genetics

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
)

func testConfig(t *testing.T) config.GeneticsConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Genetics
}

func validGenotype() Genotype {
	return Genotype{
		Adventurer:      []float64{40, 40},
		Nurturer:        []float64{10, 30},
		Mischievous:     []float64{20, 20},
		Intellectual:    []float64{15, 25},
		Recluse:         []float64{12, 18},
		Metabolism:      []float64{5, 5},
		MoodSensitivity: []float64{4, 6},
		SpecialAbility:  []string{"", "Night Owl"},
	}
}

func TestCalculatePhenotype(t *testing.T) {
	g, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}
	p := g.CalculatePhenotype()

	tests := []struct {
		name      string
		got       TraitValue
		wantValue float64
		wantHomo  bool
	}{
		{"Adventurer", p.Archetype(traits.Adventurer), 40, true},
		{"Nurturer", p.Archetype(traits.Nurturer), 20, false},
		{"Mischievous", p.Archetype(traits.Mischievous), 20, true},
		{"metabolism", p.Metabolism, 5, true},
		{"moodSensitivity", p.MoodSensitivity, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Value != tt.wantValue || tt.got.Homozygous != tt.wantHomo {
				t.Errorf("got %+v, want value %v homozygous %v", tt.got, tt.wantValue, tt.wantHomo)
			}
		})
	}

	if p.SpecialAbility != "Night Owl" {
		t.Errorf("SpecialAbility = %q, want Night Owl", p.SpecialAbility)
	}
	if p.SpecialHomozygous {
		t.Error("single ability allele should not be homozygous")
	}
}

func TestFromGenotypeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Genotype)
	}{
		{"missing gene", func(g *Genotype) { g.Recluse = nil }},
		{"three alleles", func(g *Genotype) { g.Metabolism = []float64{1, 2, 3} }},
		{"negative allele", func(g *Genotype) { g.Nurturer = []float64{-1, 5} }},
		{"too large", func(g *Genotype) { g.Intellectual = []float64{5, 500} }},
		{"one ability", func(g *Genotype) { g.SpecialAbility = []string{"Night Owl"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt := validGenotype()
			tt.mutate(&gt)
			_, err := FromGenotype(gt)
			if !errors.Is(err, ErrMalformedGenome) {
				t.Errorf("err = %v, want ErrMalformedGenome", err)
			}
		})
	}
}

func TestGenotypeReturnsCopy(t *testing.T) {
	g, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}
	gt := g.Genotype()
	gt.Adventurer[0] = 99

	if got := g.Alleles(traits.Adventurer); got[0] != 40 {
		t.Errorf("genome mutated through Genotype copy: %v", got)
	}
}

func TestNewGenome(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewPCG(1, 2))
	g := NewGenome(traits.Intellectual, cfg, rng)

	starter := g.Alleles(traits.Intellectual)
	if starter[0] != cfg.StarterAllele {
		t.Errorf("starter allele = %v, want %v", starter[0], cfg.StarterAllele)
	}
	if g.CalculatePhenotype().Archetype(traits.Intellectual).Homozygous {
		t.Errorf("starter alleles %v should not be homozygous", starter)
	}
	for _, a := range traits.All {
		alleles := g.Alleles(a)
		if a == traits.Intellectual {
			alleles = [2]float64{alleles[1], alleles[1]}
		}
		for _, v := range alleles {
			if v < cfg.WildPersonalityMin || v > cfg.WildPersonalityMax {
				t.Errorf("%v wild allele %v outside [%v,%v]", a, v, cfg.WildPersonalityMin, cfg.WildPersonalityMax)
			}
		}
	}
	p := g.CalculatePhenotype()
	if p.Metabolism.Value != 5 || p.MoodSensitivity.Value != 5 {
		t.Errorf("physio = %v/%v, want 5/5", p.Metabolism.Value, p.MoodSensitivity.Value)
	}
}

func TestWithMetabolism(t *testing.T) {
	g, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}
	slowed := g.WithMetabolism(-1, 1)
	if got := slowed.CalculatePhenotype().Metabolism.Value; got != 4 {
		t.Errorf("metabolism = %v, want 4", got)
	}
	if got := g.CalculatePhenotype().Metabolism.Value; got != 5 {
		t.Errorf("original genome changed: metabolism = %v", got)
	}

	floored := g.WithMetabolism(-10, 1)
	if got := floored.CalculatePhenotype().Metabolism.Value; got != 1 {
		t.Errorf("floored metabolism = %v, want 1", got)
	}
}

func TestBreedEnvironmentAlleles(t *testing.T) {
	cfg := testConfig(t)
	cfg.MutationRate = 0
	parent, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(7, 7))
	child := Breed(parent, []string{"Ancient Tome", "Fancy Bookshelf", "Espresso"}, cfg, rng)

	// Ancient Tome wins Intellectual over Fancy Bookshelf
	intel := child.Alleles(traits.Intellectual)
	if intel[1] != 70 {
		t.Errorf("Intellectual environment allele = %v, want 70", intel[1])
	}
	if intel[0] != 15 && intel[0] != 25 {
		t.Errorf("Intellectual parent allele = %v, want 15 or 25", intel[0])
	}
	if got := child.Genotype().Metabolism[1]; got != 9 {
		t.Errorf("metabolism environment allele = %v, want 9", got)
	}
	if !child.Valid() {
		t.Error("bred genome should be valid")
	}
}

func TestBreedMutationStaysInBounds(t *testing.T) {
	cfg := testConfig(t)
	cfg.MutationRate = 1
	gt := validGenotype()
	gt.Adventurer = []float64{100, 100}
	gt.Metabolism = []float64{0, 0}
	parent, err := FromGenotype(gt)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(3, 4))
	for range 50 {
		child := Breed(parent, nil, cfg, rng)
		if _, err := FromGenotype(child.Genotype()); err != nil {
			t.Fatalf("bred genome failed validation: %v", err)
		}
		for _, v := range child.Genotype().Metabolism {
			if v < 0 || v > cfg.PhysioMax {
				t.Fatalf("metabolism allele %v outside [0,%v]", v, cfg.PhysioMax)
			}
		}
	}
}

func TestDNARoundTrip(t *testing.T) {
	g, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}
	dna, err := Encode(g, "salt")
	if err != nil {
		t.Fatal(err)
	}

	back, err := Decode(dna, "salt")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.CalculatePhenotype() != g.CalculatePhenotype() {
		t.Errorf("phenotype changed across DNA round trip")
	}
}

func TestDNADecodeErrors(t *testing.T) {
	g, err := FromGenotype(validGenotype())
	if err != nil {
		t.Fatal(err)
	}
	dna, err := Encode(g, "salt")
	if err != nil {
		t.Fatal(err)
	}
	payload, _, _ := strings.Cut(dna, ".")

	tests := []struct {
		name string
		dna  string
		salt string
		want error
	}{
		{"no separator", "abcdef", "salt", ErrInvalidFormat},
		{"wrong salt", dna, "pepper", ErrChecksum},
		{"tampered payload", "A" + dna, "salt", ErrChecksum},
		{"bad base64", "!!!." + checksum("!!!", "salt"), "salt", ErrInvalidFormat},
		{"bad json", payload[:8] + "." + checksum(payload[:8], "salt"), "salt", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.dna, tt.salt)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode err = %v, want %v", err, tt.want)
			}
		})
	}
}
