package pet

import (
	"slices"

	"github.com/pthm-cable/nadagotchi/systems"
)

// minMetabolism is the floor for tonic-lowered metabolism alleles.
const minMetabolism = 1

// CraftedCount returns how many of an item the pet has ever crafted.
func (p *Nadagotchi) CraftedCount(item string) int { return p.crafted[item] }

// CraftItem turns materials into one item of a discovered recipe.
// Nothing is consumed unless every material is available.
func (p *Nadagotchi) CraftItem(name string) bool {
	recipe, ok := p.cfg.Recipe(name)
	if !ok || !p.recipes[name] {
		p.reject(name, "I don't know how to make %s.", name)
		return false
	}
	row := p.cfg.Actions["craft"]
	if p.stats.Energy < row.MinEnergy {
		p.reject(name, "Too tired to craft.")
		return false
	}
	for item, n := range recipe.Materials {
		if p.inventory[item] < n {
			p.reject(name, "I need %d %s to make %s.", n, item, name)
			return false
		}
	}

	for item, n := range recipe.Materials {
		p.removeItem(item, n)
	}
	p.addItem(name, 1)
	p.crafted[name]++

	eff := systems.ResolveAction(row, p.dominant)
	p.addHunger(eff.Hunger)
	p.addEnergy(eff.Energy)
	p.addHappiness(eff.Happiness)
	mult := p.skillMultiplier()
	for skill, v := range eff.Skills {
		p.addSkill(skill, v*mult)
	}
	for a, v := range eff.Points {
		p.points[a] += max(v, 0)
	}

	p.addJournal("I made a %s!", name)
	p.emit(EventItemCrafted, name, 1)
	p.afterAction()
	return true
}

// ConsumeItem uses one held consumable.
func (p *Nadagotchi) ConsumeItem(item string) bool {
	cc, ok := p.cfg.Consumables[item]
	if !ok {
		p.reject(item, "I can't use %s.", item)
		return false
	}
	if !p.removeItem(item, 1) {
		p.reject(item, "I don't have any %s.", item)
		return false
	}

	p.addHunger(cc.Hunger)
	p.addEnergy(cc.Energy)
	p.addHappiness(cc.Happiness)
	mult := p.skillMultiplier()
	for skill, v := range cc.Skills {
		p.addSkill(skill, v*mult)
	}
	if cc.MetabolismDelta != 0 {
		p.genome = p.genome.WithMetabolism(cc.MetabolismDelta, minMetabolism)
		p.refreshPhenotype()
	}
	if cc.UnlockRoom != "" {
		p.UnlockRoom(cc.UnlockRoom)
	}
	if cc.Journal != "" {
		p.addJournal("%s", cc.Journal)
	} else {
		p.addJournal("I used a %s.", item)
	}

	p.emit(EventItemConsumed, item, 1)
	p.afterAction()
	return true
}

// Forage searches for one item from the base and seasonal loot tables.
func (p *Nadagotchi) Forage() bool {
	fc := p.cfg.Forage
	if p.stats.Energy < fc.MinEnergy {
		p.reject("forage", "Too tired to forage.")
		return false
	}
	pool := slices.Concat(fc.Loot, fc.Seasonal[p.env.Season])
	if len(pool) == 0 {
		return false
	}

	p.addEnergy(-fc.Energy)
	mult := p.skillMultiplier()
	for skill, v := range fc.Skills {
		p.addSkill(skill, v*mult)
	}
	item := pool[p.rng.IntN(len(pool))]
	p.addItem(item, 1)
	p.addJournal("I went foraging in the %s and found %s.", p.location, item)
	p.emit(EventItemForaged, item, 1)
	if recipe, ok := fc.Discover[item]; ok {
		p.discoverRecipe(recipe)
	}

	p.afterAction()
	return true
}

// PracticeHobby levels up a configured hobby.
func (p *Nadagotchi) PracticeHobby(hobby string) bool {
	hc := p.cfg.Hobbies
	if !slices.Contains(hc.Names, hobby) {
		p.reject(hobby, "I don't know the hobby %s.", hobby)
		return false
	}
	if p.stats.Energy < hc.MinEnergy {
		p.reject(hobby, "Too tired for %s.", hobby)
		return false
	}

	p.hobbies[hobby] += hc.LevelGain
	p.addHappiness(hc.Happiness)
	p.addEnergy(-hc.Energy)
	p.addJournal("I spent some time practicing %s.", hobby)
	p.emit(EventActionPerformed, hobby, p.hobbies[hobby])
	p.afterAction()
	return true
}
