package pet

import (
	"maps"
	"slices"

	"github.com/pthm-cable/nadagotchi/config"
)

// ChoiceResult is how one expedition choice went.
type ChoiceResult struct {
	Node    string
	Choice  string
	Success bool
	Total   float64 // Roll plus skill; zero when the choice has no check
	Outcome config.ExpeditionOutcome
}

// GeneratePath draws n encounters that fit the season and weather, by
// weight and with repeats. It returns nil when no node fits.
func (p *Nadagotchi) GeneratePath(season, weather string, n int) []config.ExpeditionNode {
	var (
		valid []config.ExpeditionNode
		total float64
	)
	for _, node := range p.cfg.Expeditions.Nodes {
		if len(node.Seasons) > 0 && !slices.Contains(node.Seasons, season) {
			continue
		}
		if len(node.Weather) > 0 && !slices.Contains(node.Weather, weather) {
			continue
		}
		valid = append(valid, node)
		total += node.SelectionWeight()
	}
	if len(valid) == 0 || n <= 0 {
		return nil
	}

	path := make([]config.ExpeditionNode, 0, n)
	for range n {
		pick := valid[len(valid)-1]
		r := p.rng.Float64() * total
		for _, node := range valid {
			r -= node.SelectionWeight()
			if r < 0 {
				pick = node
				break
			}
		}
		path = append(path, pick)
	}
	return path
}

// ResolveChoice settles one choice at a node. A skill check succeeds when
// a roll in [0, roll_sides) plus the skill reaches the difficulty. The
// outcome applies at once and its XP trains the expedition skill.
func (p *Nadagotchi) ResolveChoice(node config.ExpeditionNode, choice config.ExpeditionChoice) ChoiceResult {
	res := ChoiceResult{Node: node.ID, Choice: choice.Text, Success: true, Outcome: choice.Success}
	if choice.Skill != "" {
		ec := p.cfg.Expeditions
		res.Total = float64(p.rng.IntN(max(ec.RollSides, 1))) + p.skills[choice.Skill]
		if res.Total < choice.Difficulty {
			res.Success = false
			res.Outcome = choice.Failure
		}
	}

	o := res.Outcome
	p.addHunger(o.Hunger)
	p.addEnergy(o.Energy)
	p.addHappiness(o.Happiness)
	if ec := p.cfg.Expeditions; o.XP > 0 && ec.XPSkill != "" {
		p.addSkill(ec.XPSkill, o.XP*ec.XPSkillRate)
	}
	for _, item := range slices.Sorted(maps.Keys(o.Items)) {
		p.addItem(item, o.Items[item])
		if recipe, ok := p.cfg.Forage.Discover[item]; ok {
			p.discoverRecipe(recipe)
		}
	}
	if o.Text != "" {
		p.addJournal("%s", o.Text)
	}

	value := 0.0
	if res.Success {
		value = 1
	}
	p.emit(EventExpeditionChoice, node.ID, value)
	p.UpdateCareer()
	return res
}

// Expedition sets out from the current season and weather and works through
// a fresh path, taking at each node the choice most likely to succeed.
func (p *Nadagotchi) Expedition() []ChoiceResult {
	ec := p.cfg.Expeditions
	if p.stats.Energy < ec.MinEnergy {
		p.reject("expedition", "Too tired for an expedition.")
		return nil
	}
	path := p.GeneratePath(p.env.Season, p.env.Weather, ec.PathLength)
	if len(path) == 0 {
		p.reject("expedition", "There's nowhere to explore today.")
		return nil
	}

	p.addEnergy(-ec.Energy)
	p.addJournal("I set off on an expedition.")
	results := make([]ChoiceResult, 0, len(path))
	found := 0
	for _, node := range path {
		r := p.ResolveChoice(node, p.bestChoice(node))
		for _, n := range r.Outcome.Items {
			found += n
		}
		results = append(results, r)
	}
	p.addJournal("I came home from my expedition with %d things.", found)
	p.emit(EventActionPerformed, "expedition", float64(found))
	p.afterAction()
	return results
}

// bestChoice picks the option whose check has the widest expected margin.
// A choice without a check counts as an even bet.
func (p *Nadagotchi) bestChoice(node config.ExpeditionNode) config.ExpeditionChoice {
	mean := float64(max(p.cfg.Expeditions.RollSides, 1)-1) / 2
	best, bestMargin := node.Choices[0], 0.0
	for i, c := range node.Choices {
		margin := 0.0
		if c.Skill != "" {
			margin = mean + p.skills[c.Skill] - c.Difficulty
		}
		if i == 0 || margin > bestMargin {
			best, bestMargin = c, margin
		}
	}
	return best
}
