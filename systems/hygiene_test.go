package systems

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/nadagotchi/components"
	"github.com/pthm-cable/nadagotchi/config"
)

func hygieneConfig(t *testing.T) config.HygieneConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Hygiene
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("d%d", n)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestHygienePenaltyCaches(t *testing.T) {
	cfg := hygieneConfig(t)
	h := NewHygiene(cfg, seqIDs())

	h.Add(DebrisRecord{ID: "w1", Kind: components.KindWeed, Location: "GARDEN"})
	h.Add(DebrisRecord{ID: "p1", Kind: components.KindPoop, Location: "Kitchen"})

	weed, poop := cfg.Penalties["weed"], cfg.Penalties["poop"]
	if got := h.GlobalPenalty(); !almostEqual(got, weed+poop) {
		t.Errorf("GlobalPenalty = %v, want %v", got, weed+poop)
	}
	if got := h.LocationPenalty("GARDEN"); !almostEqual(got, weed) {
		t.Errorf("LocationPenalty(GARDEN) = %v, want %v", got, weed)
	}
	if got := h.LocationPenalty("Kitchen"); !almostEqual(got, poop) {
		t.Errorf("LocationPenalty(Kitchen) = %v, want %v", got, poop)
	}

	if _, ok := h.Remove("p1"); !ok {
		t.Fatal("Remove(p1) failed")
	}
	if got := h.GlobalPenalty(); !almostEqual(got, weed) {
		t.Errorf("after remove GlobalPenalty = %v, want %v", got, weed)
	}
	if got := h.LocationPenalty("Kitchen"); got != 0 {
		t.Errorf("after remove LocationPenalty(Kitchen) = %v, want 0", got)
	}
}

func TestHygieneAddRejectsDuplicates(t *testing.T) {
	h := NewHygiene(hygieneConfig(t), seqIDs())
	if !h.Add(DebrisRecord{ID: "a", Kind: components.KindWeed, Location: "Garden"}) {
		t.Fatal("first add failed")
	}
	if h.Add(DebrisRecord{ID: "a", Kind: components.KindPoop, Location: "Garden"}) {
		t.Error("duplicate id accepted")
	}
	if h.Add(DebrisRecord{Kind: components.KindPoop}) {
		t.Error("empty id accepted")
	}
	if h.Count() != 1 {
		t.Errorf("Count = %d, want 1", h.Count())
	}
}

func TestHygieneAllKeepsInsertionOrder(t *testing.T) {
	h := NewHygiene(hygieneConfig(t), seqIDs())
	recs := []DebrisRecord{
		{ID: "z", Kind: components.KindWeed, Location: "Garden", X: 0.2, Y: 0.7, CreatedDay: 3},
		{ID: "a", Kind: components.KindPoop, Location: "Home", X: 0.5, Y: 0.8, CreatedDay: 4},
		{ID: "m", Kind: components.KindSticks, Location: "Garden", X: 0.3, Y: 0.6, CreatedDay: 4},
	}
	h.AddAll(recs)

	got := h.All()
	if len(got) != len(recs) {
		t.Fatalf("All() len = %d, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("All()[%d] = %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestHygieneSpawnDailyRespectsMaxCount(t *testing.T) {
	cfg := hygieneConfig(t)
	cfg.SpawnChanceDaily = 10
	cfg.ForageDebrisChance = 1
	h := NewHygiene(cfg, seqIDs())
	rng := rand.New(rand.NewPCG(1, 2))

	for day := range 30 {
		h.SpawnDaily("Spring", "Rainy", day, rng)
		if h.Count() > cfg.MaxCount {
			t.Fatalf("day %d: count %d exceeds max %d", day, h.Count(), cfg.MaxCount)
		}
	}
	if h.Count() != cfg.MaxCount {
		t.Errorf("Count = %d, want %d after saturating", h.Count(), cfg.MaxCount)
	}

	var sum float64
	for _, d := range h.All() {
		sum += cfg.Penalties[d.Kind]
		if d.Location != cfg.GardenLocation {
			t.Errorf("debris %s spawned in %q, want garden", d.ID, d.Location)
		}
	}
	if !almostEqual(h.GlobalPenalty(), sum) {
		t.Errorf("GlobalPenalty = %v, want %v", h.GlobalPenalty(), sum)
	}
}

func TestHygieneSpawnPoop(t *testing.T) {
	cfg := hygieneConfig(t)
	cfg.PoopChance = 1
	h := NewHygiene(cfg, seqIDs())
	rng := rand.New(rand.NewPCG(3, 4))

	rec, ok := h.SpawnPoop("Kitchen", 1, rng)
	if !ok {
		t.Fatal("SpawnPoop with chance 1 failed")
	}
	if rec.Kind != components.KindPoop || rec.Location != "Kitchen" {
		t.Errorf("spawned %+v", rec)
	}
	if rec.X < cfg.XMin || rec.X > cfg.XMax || rec.Y < cfg.YMin || rec.Y > cfg.YMax {
		t.Errorf("position (%v,%v) outside configured bounds", rec.X, rec.Y)
	}
	if got := h.LocationPenalty("Kitchen"); !almostEqual(got, cfg.Penalties["poop"]) {
		t.Errorf("LocationPenalty(Kitchen) = %v", got)
	}

	cfg.PoopChance = 0
	h2 := NewHygiene(cfg, seqIDs())
	if _, ok := h2.SpawnPoop("Kitchen", 1, rng); ok {
		t.Error("SpawnPoop with chance 0 succeeded")
	}
}
