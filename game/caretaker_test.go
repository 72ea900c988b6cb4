package game

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newCaretakerPet(t *testing.T, cfg *config.Config, s *pet.Snapshot) *pet.Nadagotchi {
	t.Helper()
	if s.Stats == nil {
		s.Stats = &pet.Stats{Hunger: 100, Energy: 100, Happiness: 50}
	}
	if s.Mood == "" {
		s.Mood = string(systems.MoodNeutral)
	}
	if s.DominantArchetype == nil {
		a := traits.Nurturer
		s.DominantArchetype = &a
	}
	return pet.FromSnapshot(s, pet.Options{Config: cfg, Seed: 3})
}

func TestCaretakerPriorities(t *testing.T) {
	tests := []struct {
		name string
		snap *pet.Snapshot
		want string
	}{
		{
			name: "hungry without food",
			snap: &pet.Snapshot{Stats: &pet.Stats{Hunger: 20, Energy: 100, Happiness: 50}},
			want: "FEED",
		},
		{
			name: "tired without tonics",
			snap: &pet.Snapshot{Stats: &pet.Stats{Hunger: 100, Energy: 10, Happiness: 50}},
			want: "MEDITATE",
		},
		{
			name: "tired with tea",
			snap: &pet.Snapshot{
				Stats:     &pet.Stats{Hunger: 100, Energy: 10, Happiness: 50},
				Inventory: map[string]int{"Stamina-Up Tea": 1},
			},
			want: "CONSUME_ITEM",
		},
		{
			name: "debris where the pet is",
			snap: &pet.Snapshot{
				Location: "Home",
				Debris:   []systems.DebrisRecord{{ID: "d1", Kind: "weed", Location: "Home"}},
			},
			want: "CLEAN",
		},
		{
			name: "villager with an unheard request",
			snap: &pet.Snapshot{
				DailyQuests: map[string]pet.DailyQuest{
					"Sickly Villager": {ID: "q1", NPC: "Sickly Villager", Item: "Berries", Qty: 3},
				},
			},
			want: "INTERACT_NPC",
		},
		{
			name: "materials for a known recipe",
			snap: &pet.Snapshot{
				DiscoveredRecipes: []string{"Fancy Bookshelf"},
				Inventory:         map[string]int{"Sticks": 5, "Shiny Stone": 1},
			},
			want: "CRAFT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t)
			c := NewCaretaker(cfg, rand.New(rand.NewPCG(1, 2)))
			p := newCaretakerPet(t, cfg, tt.snap)
			if got := c.Act(p); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaretakerEffects(t *testing.T) {
	cfg := loadConfig(t)
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(1, 2)))

	t.Run("feeding raises hunger", func(t *testing.T) {
		p := newCaretakerPet(t, cfg, &pet.Snapshot{Stats: &pet.Stats{Hunger: 20, Energy: 100, Happiness: 50}})
		c.Act(p)
		if got := p.Stats().Hunger; got <= 20 {
			t.Errorf("hunger = %v, want above 20", got)
		}
	})

	t.Run("cleaning removes debris", func(t *testing.T) {
		p := newCaretakerPet(t, cfg, &pet.Snapshot{
			Location: "Home",
			Debris:   []systems.DebrisRecord{{ID: "d1", Kind: "weed", Location: "Home"}},
		})
		c.Act(p)
		if got := p.Hygiene().Count(); got != 0 {
			t.Errorf("debris count = %d, want 0", got)
		}
	})

	t.Run("crafting spends materials", func(t *testing.T) {
		p := newCaretakerPet(t, cfg, &pet.Snapshot{
			DiscoveredRecipes: []string{"Fancy Bookshelf"},
			Inventory:         map[string]int{"Sticks": 5, "Shiny Stone": 1},
		})
		c.Act(p)
		if got := p.CraftedCount("Fancy Bookshelf"); got != 1 {
			t.Errorf("crafted = %d, want 1", got)
		}
		if got := p.ItemCount("Sticks"); got != 0 {
			t.Errorf("sticks left = %d, want 0", got)
		}
	})
}

func TestCaretakerWorks(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Caretaker.WorkChance = 1
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(1, 2)))
	p := newCaretakerPet(t, cfg, &pet.Snapshot{CurrentCareer: "Scout"})

	if got := c.Act(p); got != "WORK" {
		t.Fatalf("got %q, want WORK", got)
	}
	if p.CareerXP("Scout") <= 0 {
		t.Errorf("career xp = %v, want positive", p.CareerXP("Scout"))
	}
}

func TestCaretakerAlwaysActs(t *testing.T) {
	cfg := loadConfig(t)
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(5, 6)))
	p := newCaretakerPet(t, cfg, &pet.Snapshot{})

	for range 20 {
		if c.Act(p) == "" {
			t.Fatal("caretaker did nothing")
		}
	}
}

func TestCaretakerItemOrdering(t *testing.T) {
	cfg := loadConfig(t)
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(1, 2)))

	if len(c.tonics) == 0 || c.tonics[0] != "Stamina-Up Tea" {
		t.Errorf("best tonic = %v, want Stamina-Up Tea first", c.tonics)
	}
	if !reflect.DeepEqual(c.foods, []string{"Berries"}) {
		t.Errorf("foods = %v, want [Berries]", c.foods)
	}
}

func TestBreedingItems(t *testing.T) {
	cfg := loadConfig(t)
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(1, 2)))
	p := newCaretakerPet(t, cfg, &pet.Snapshot{
		Inventory: map[string]int{"Muse Flower": 2, "Ancient Tome": 1, "Sticks": 3},
	})

	want := []string{"Ancient Tome", "Muse Flower"}
	if got := c.BreedingItems(p); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCaretakerPastimeExpeditions(t *testing.T) {
	cfg := loadConfig(t)
	c := NewCaretaker(cfg, rand.New(rand.NewPCG(7, 8)))

	count := func(energy float64) int {
		p := newCaretakerPet(t, cfg, &pet.Snapshot{Stats: &pet.Stats{Hunger: 100, Energy: energy, Happiness: 50}})
		n := 0
		for range 200 {
			if _, ok := c.pastime(p).(pet.Expedition); ok {
				n++
			}
		}
		return n
	}

	if n := count(100); n == 0 {
		t.Error("rested pet never went on an expedition")
	}
	if n := count(cfg.Expeditions.MinEnergy - 1); n != 0 {
		t.Errorf("tired pet picked %d expeditions", n)
	}
}
