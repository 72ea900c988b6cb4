package pet

import (
	"strings"

	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
)

// Action is a player command. The set of actions is closed.
type Action interface {
	// ID is the upper-case action identifier.
	ID() string
	action()
}

type (
	Feed                   struct{}
	Play                   struct{}
	Study                  struct{}
	Explore                struct{}
	Meditate               struct{}
	InteractBookshelf      struct{}
	InteractFancyBookshelf struct{}
	InteractPlant          struct{}
	Forage                 struct{}
	Expedition             struct{}
	CraftItem              struct{ Item string }
	PracticeHobby          struct{ Hobby string }
	ConsumeItem            struct{ Item string }
	Clean                  struct{ DebrisID string }
	InteractNPC            struct {
		NPC  string
		Kind InteractionKind
	}
)

func (Feed) ID() string                   { return "FEED" }
func (Play) ID() string                   { return "PLAY" }
func (Study) ID() string                  { return "STUDY" }
func (Explore) ID() string                { return "EXPLORE" }
func (Meditate) ID() string               { return "MEDITATE" }
func (InteractBookshelf) ID() string      { return "INTERACT_BOOKSHELF" }
func (InteractFancyBookshelf) ID() string { return "INTERACT_FANCY_BOOKSHELF" }
func (InteractPlant) ID() string          { return "INTERACT_PLANT" }
func (Forage) ID() string                 { return "FORAGE" }
func (Expedition) ID() string             { return "EXPEDITION" }
func (CraftItem) ID() string              { return "CRAFT" }
func (PracticeHobby) ID() string          { return "PRACTICE_HOBBY" }
func (ConsumeItem) ID() string            { return "CONSUME_ITEM" }
func (Clean) ID() string                  { return "CLEAN" }
func (InteractNPC) ID() string            { return "INTERACT_NPC" }

func (Feed) action()                   {}
func (Play) action()                   {}
func (Study) action()                  {}
func (Explore) action()                {}
func (Meditate) action()               {}
func (InteractBookshelf) action()      {}
func (InteractFancyBookshelf) action() {}
func (InteractPlant) action()          {}
func (Forage) action()                 {}
func (Expedition) action()             {}
func (CraftItem) action()              {}
func (PracticeHobby) action()          {}
func (ConsumeItem) action()            {}
func (Clean) action()                  {}
func (InteractNPC) action()            {}

// ParseAction builds an action from its identifier, case-insensitive.
// Payload keys: item (CRAFT, CONSUME_ITEM), hobby, npc and kind
// (INTERACT_NPC), id (CLEAN).
func ParseAction(id string, payload map[string]string) (Action, bool) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "FEED":
		return Feed{}, true
	case "PLAY":
		return Play{}, true
	case "STUDY":
		return Study{}, true
	case "EXPLORE":
		return Explore{}, true
	case "MEDITATE":
		return Meditate{}, true
	case "INTERACT_BOOKSHELF":
		return InteractBookshelf{}, true
	case "INTERACT_FANCY_BOOKSHELF":
		return InteractFancyBookshelf{}, true
	case "INTERACT_PLANT":
		return InteractPlant{}, true
	case "FORAGE":
		return Forage{}, true
	case "EXPEDITION":
		return Expedition{}, true
	case "CRAFT":
		return CraftItem{Item: payload["item"]}, true
	case "PRACTICE_HOBBY":
		return PracticeHobby{Hobby: payload["hobby"]}, true
	case "CONSUME_ITEM":
		return ConsumeItem{Item: payload["item"]}, true
	case "CLEAN":
		return Clean{DebrisID: payload["id"]}, true
	case "INTERACT_NPC":
		kind, ok := ParseInteractionKind(payload["kind"])
		if !ok {
			return nil, false
		}
		return InteractNPC{NPC: payload["npc"], Kind: kind}, true
	}
	return nil, false
}

// HandleActionID parses and performs an action. Unknown identifiers are
// ignored.
func (p *Nadagotchi) HandleActionID(id string, payload map[string]string) {
	a, ok := ParseAction(id, payload)
	if !ok {
		p.log.Debug("unknown action", "pet", p.uuid, "action", id)
		return
	}
	p.HandleAction(a)
}

// HandleAction performs one action.
func (p *Nadagotchi) HandleAction(a Action) {
	switch a := a.(type) {
	case Feed, Play, Study, Explore, Meditate, InteractBookshelf, InteractFancyBookshelf, InteractPlant:
		p.basicAction(strings.ToLower(a.ID()))
	case Forage:
		p.Forage()
	case Expedition:
		p.Expedition()
	case CraftItem:
		p.CraftItem(a.Item)
	case PracticeHobby:
		p.PracticeHobby(a.Hobby)
	case ConsumeItem:
		p.ConsumeItem(a.Item)
	case Clean:
		p.Clean(a.DebrisID)
	case InteractNPC:
		p.Interact(a.NPC, a.Kind)
	}
}

// basicAction applies one row of the action table.
func (p *Nadagotchi) basicAction(key string) {
	row, ok := p.cfg.Actions[key]
	if !ok {
		p.log.Debug("no effect table for action", "action", key)
		return
	}
	if item := row.RequiresItem; item != "" && p.inventory[item] == 0 && !p.hasPlaced(item) {
		p.reject(key, "I need a %s for that.", item)
		return
	}
	if p.stats.Energy < row.MinEnergy {
		p.reject(key, "Too tired to %s.", strings.ReplaceAll(key, "_", " "))
		return
	}

	eff := systems.ResolveAction(row, p.dominant)
	g := p.cfg.Genetics
	energy := eff.Energy
	if energy > 0 && p.phenotype.Metabolism.Homozygous {
		energy += g.HomozygousEnergyBonus
	}
	happiness := eff.Happiness
	skillMult := p.skillMultiplier()
	if sig, ok := traits.ParseArchetype(row.Signature); ok && sig == p.dominant && p.phenotype.Archetype(sig).Homozygous {
		happiness += g.HomozygousHappinessBonus
		skillMult *= g.HomozygousSkillMult
	}

	p.addHunger(eff.Hunger)
	p.addEnergy(energy)
	p.addHappiness(happiness)
	for skill, v := range eff.Skills {
		p.addSkill(skill, v*skillMult)
	}
	for a, v := range eff.Points {
		p.points[a] += max(v, 0)
	}
	if eff.Mood != "" {
		p.setMood(eff.Mood)
	}
	if d := eff.Discover; d != nil && p.rng.Float64() < d.Chance {
		p.discoverRecipe(d.Recipe)
	}

	if row.Journal != "" {
		p.addJournal("%s", row.Journal)
	} else {
		p.addJournal("I did some %s.", strings.ReplaceAll(key, "_", " "))
	}
	p.emit(EventActionPerformed, key, happiness)
	p.afterAction()
}
