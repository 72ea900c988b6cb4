package game

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
)

// Caretaker is the autopilot for headless runs. Each turn it performs one
// thing, in priority order: feed a hungry pet, rest a tired one, clean up
// debris where the pet is, take a work shift, answer villagers, craft, and
// otherwise pick a pastime at random.
type Caretaker struct {
	cfg  *config.Config
	rng  *rand.Rand
	care config.CaretakerConfig

	foods  []string // Consumables that restore hunger, best first
	tonics []string // Consumables that restore energy, best first
	idle   []string // Basic actions to pick from when nothing is pressing
}

// NewCaretaker builds a caretaker from the consumable and action tables.
func NewCaretaker(cfg *config.Config, rng *rand.Rand) *Caretaker {
	c := &Caretaker{cfg: cfg, rng: rng, care: cfg.Caretaker}

	names := make([]string, 0, len(cfg.Consumables))
	for name := range cfg.Consumables {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		item := cfg.Consumables[name]
		if item.Hunger > 0 {
			c.foods = append(c.foods, name)
		}
		if item.Energy > 0 && item.Hunger >= 0 {
			c.tonics = append(c.tonics, name)
		}
	}
	slices.SortStableFunc(c.foods, func(a, b string) int {
		return cmp.Compare(cfg.Consumables[b].Hunger, cfg.Consumables[a].Hunger)
	})
	slices.SortStableFunc(c.tonics, func(a, b string) int {
		return cmp.Compare(cfg.Consumables[b].Energy, cfg.Consumables[a].Energy)
	})

	for _, key := range []string{"play", "study", "explore", "interact_plant", "interact_bookshelf"} {
		if _, ok := cfg.Actions[key]; ok {
			c.idle = append(c.idle, key)
		}
	}
	return c
}

// Act performs one caretaker turn and returns the ID of what it did.
func (c *Caretaker) Act(p *pet.Nadagotchi) string {
	switch m := c.choose(p).(type) {
	case workShift:
		p.CompleteWorkShift(m.result)
		return m.ID()
	case pet.Action:
		p.HandleAction(m)
		return m.ID()
	}
	return ""
}

// move is a player action or a work shift.
type move interface{ ID() string }

// workShift is handled outside the player action set.
type workShift struct{ result pet.WorkResult }

func (workShift) ID() string { return "WORK" }

func (c *Caretaker) choose(p *pet.Nadagotchi) move {
	s := p.Stats()
	if s.Hunger < c.care.FeedBelow {
		if item, ok := c.held(p, c.foods); ok && c.rng.Float64() < 0.5 {
			return pet.ConsumeItem{Item: item}
		}
		return pet.Feed{}
	}
	if s.Energy < c.care.RestBelow {
		if item, ok := c.held(p, c.tonics); ok {
			return pet.ConsumeItem{Item: item}
		}
		return pet.Meditate{}
	}

	for _, d := range p.Hygiene().All() {
		if d.Location == p.Location() {
			return pet.Clean{DebrisID: d.ID}
		}
	}

	if p.Career() != "" && c.rng.Float64() < c.care.WorkChance {
		return workShift{pet.WorkResult{Success: c.rng.Float64() < c.care.WorkSuccessChance}}
	}

	if npc, ok := c.questGiver(p); ok {
		return pet.InteractNPC{NPC: npc, Kind: pet.Talk}
	}

	if recipe, ok := c.craftable(p); ok {
		return pet.CraftItem{Item: recipe}
	}

	return c.pastime(p)
}

// held returns the first listed item the pet has.
func (c *Caretaker) held(p *pet.Nadagotchi, items []string) (string, bool) {
	for _, item := range items {
		if p.ItemCount(item) > 0 {
			return item, true
		}
	}
	return "", false
}

// questGiver finds a villager with an unheard request, or one whose request
// the pet can fill.
func (c *Caretaker) questGiver(p *pet.Nadagotchi) (string, bool) {
	for _, npc := range c.cfg.Relationships.NPCs {
		if p.HasNewQuest(npc.Name) {
			return npc.Name, true
		}
		if q, ok := p.DailyQuest(npc.Name); ok && !q.Completed && p.ItemCount(q.Item) >= q.Qty {
			return npc.Name, true
		}
	}
	return "", false
}

// craftable returns the first known recipe whose materials are all at hand.
func (c *Caretaker) craftable(p *pet.Nadagotchi) (string, bool) {
	for _, r := range c.cfg.Recipes {
		if !p.KnowsRecipe(r.Name) || len(r.Materials) == 0 {
			continue
		}
		enough := true
		for item, qty := range r.Materials {
			if p.ItemCount(item) < qty {
				enough = false
				break
			}
		}
		if enough {
			return r.Name, true
		}
	}
	return "", false
}

func (c *Caretaker) pastime(p *pet.Nadagotchi) pet.Action {
	choices := make([]pet.Action, 0, len(c.idle)+4)
	for _, key := range c.idle {
		if item := c.cfg.Actions[key].RequiresItem; item != "" && p.ItemCount(item) == 0 {
			continue
		}
		if a, ok := pet.ParseAction(key, nil); ok {
			choices = append(choices, a)
		}
	}
	choices = append(choices, pet.Forage{})
	if s := p.Stats(); s.Energy >= c.cfg.Expeditions.MinEnergy && len(c.cfg.Expeditions.Nodes) > 0 {
		choices = append(choices, pet.Expedition{})
	}
	if hobbies := c.cfg.Hobbies.Names; len(hobbies) > 0 {
		choices = append(choices, pet.PracticeHobby{Hobby: hobbies[c.rng.IntN(len(hobbies))]})
	}
	if npcs := c.cfg.Relationships.NPCs; len(npcs) > 0 {
		choices = append(choices, pet.InteractNPC{NPC: npcs[c.rng.IntN(len(npcs))].Name, Kind: pet.Talk})
	}
	return choices[c.rng.IntN(len(choices))]
}

// BreedingItems lists held items that influence offspring, sorted by name.
func (c *Caretaker) BreedingItems(p *pet.Nadagotchi) []string {
	var items []string
	for item := range c.cfg.Legacy.Influences {
		if p.ItemCount(item) > 0 {
			items = append(items, item)
		}
	}
	slices.Sort(items)
	return items
}
