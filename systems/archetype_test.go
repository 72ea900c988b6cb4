package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/nadagotchi/traits"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(11, 22))
}

func TestResolveDominant_SingleMax(t *testing.T) {
	points := map[traits.Archetype]float64{traits.Nurturer: 12, traits.Recluse: 3}
	got := ResolveDominant(points, nil, traits.Recluse, true, newRNG())
	if got != traits.Nurturer {
		t.Errorf("got %v, want Nurturer", got)
	}
}

func TestResolveDominant_TieBreak(t *testing.T) {
	points := map[traits.Archetype]float64{
		traits.Adventurer:  10,
		traits.Nurturer:    10,
		traits.Mischievous: 5,
	}

	tests := []struct {
		name   string
		skills map[string]float64
		want   traits.Archetype
	}{
		{"equal affinity keeps incumbent", map[string]float64{"navigation": 2, "empathy": 2}, traits.Adventurer},
		{"higher affinity takes over", map[string]float64{"navigation": 2, "empathy": 3}, traits.Nurturer},
		{"lower challenger affinity", map[string]float64{"navigation": 5, "empathy": 1}, traits.Adventurer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDominant(points, tt.skills, traits.Adventurer, true, newRNG())
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDominant_StableAcrossCalls(t *testing.T) {
	points := map[traits.Archetype]float64{traits.Intellectual: 7, traits.Recluse: 7}
	rng := newRNG()
	for range 100 {
		if got := ResolveDominant(points, nil, traits.Recluse, true, rng); got != traits.Recluse {
			t.Fatalf("incumbent lost an exact tie: got %v", got)
		}
	}
}

func TestResolveDominant_RandomAmongTiedWithoutIncumbent(t *testing.T) {
	points := map[traits.Archetype]float64{traits.Adventurer: 4, traits.Intellectual: 4}
	rng := newRNG()
	seen := map[traits.Archetype]bool{}
	for range 200 {
		got := ResolveDominant(points, nil, traits.Recluse, true, rng)
		if got != traits.Adventurer && got != traits.Intellectual {
			t.Fatalf("picked non-candidate %v", got)
		}
		seen[got] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected both candidates over 200 draws, saw %v", seen)
	}
}

func TestResolveDominant_RecluseAffinityUsesBestOfResilienceFocus(t *testing.T) {
	points := map[traits.Archetype]float64{traits.Mischievous: 9, traits.Recluse: 9}
	skills := map[string]float64{"communication": 3, "resilience": 1, "focus": 4}
	got := ResolveDominant(points, skills, traits.Mischievous, true, newRNG())
	if got != traits.Recluse {
		t.Errorf("got %v, want Recluse", got)
	}
}

func TestResolveDominant_Deterministic(t *testing.T) {
	points := map[traits.Archetype]float64{}
	a := ResolveDominant(points, nil, 0, false, rand.New(rand.NewPCG(5, 5)))
	b := ResolveDominant(points, nil, 0, false, rand.New(rand.NewPCG(5, 5)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestRunnerUp(t *testing.T) {
	points := map[traits.Archetype]float64{
		traits.Adventurer:   9,
		traits.Nurturer:     4,
		traits.Intellectual: 4,
	}
	if got := RunnerUp(points, traits.Adventurer); got != traits.Nurturer {
		t.Errorf("RunnerUp = %v, want Nurturer", got)
	}
	if got := RunnerUp(points, traits.Nurturer); got != traits.Adventurer {
		t.Errorf("RunnerUp = %v, want Adventurer", got)
	}
}
