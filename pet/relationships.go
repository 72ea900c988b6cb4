package pet

import (
	"strings"

	"github.com/pthm-cable/nadagotchi/traits"
)

// InteractionKind is how the pet engages an NPC.
type InteractionKind string

const (
	Talk InteractionKind = "talk"
	Gift InteractionKind = "gift"
)

// ParseInteractionKind returns the kind for a name, case-insensitive.
func ParseInteractionKind(s string) (InteractionKind, bool) {
	switch k := InteractionKind(strings.ToLower(s)); k {
	case Talk, Gift:
		return k, true
	case "":
		return Talk, true
	}
	return "", false
}

// Relationships returns a copy of every NPC relationship level.
func (p *Nadagotchi) Relationships() map[string]float64 {
	out := make(map[string]float64, len(p.relationships))
	for k, v := range p.relationships {
		out[k] = v
	}
	return out
}

// Interact talks to or gifts an NPC. Gifting spends one gift item and
// doubles every gain. Talking to a villager also hears out their daily
// request, then completes it once the items are in hand, and moves their
// story quest along.
func (p *Nadagotchi) Interact(npc string, kind InteractionKind) bool {
	rc := p.cfg.Relationships
	info, ok := p.cfg.NPC(npc)
	if !ok {
		p.reject(npc, "I don't know anyone called %s.", npc)
		return false
	}
	if p.stats.Energy < rc.MinEnergy {
		p.reject(npc, "Too tired to visit %s.", npc)
		return false
	}

	mult := 1.0
	if kind == Gift {
		if !p.removeItem(rc.GiftItem, 1) {
			p.reject(npc, "I have no %s to give %s.", rc.GiftItem, npc)
			return false
		}
		mult = rc.GiftMultiplier
	}

	gain := rc.ChatLevel * mult
	if p.legacyTraits.Has(traits.Charming) {
		gain += p.cfg.Legacy.CharmingBonus
	}
	p.relationships[npc] += gain
	p.addEnergy(-rc.EnergyCost)
	p.addHappiness(rc.ChatHappiness * mult)

	skillMult := p.skillMultiplier() * mult
	p.addSkill("communication", rc.ChatSkill*skillMult)
	if info.Skill != "" {
		p.addSkill(info.Skill, rc.TiedSkill*skillMult)
	}
	if kind == Gift {
		p.addJournal("I gave %s to %s. They seemed to like it!", rc.GiftItem, npc)
	} else {
		p.addJournal("I had a nice chat with %s.", npc)
	}
	p.emit(EventRelationshipChanged, npc, p.relationships[npc])

	if q, ok := p.dailyQuests[npc]; ok && !q.Completed {
		if !q.Delivered {
			q.Delivered = true
			p.addJournal("%s: %s", npc, q.Text)
		} else if p.inventory[q.Item] >= q.Qty {
			p.CompleteDailyQuest(npc)
		}
	}
	p.advanceStoryQuest(npc)

	p.afterAction()
	return true
}

// DailyUpdate decays every relationship once, down to the floor.
func (p *Nadagotchi) DailyUpdate() {
	rc := p.cfg.Relationships
	for npc, level := range p.relationships {
		p.relationships[npc] = max(level-rc.Decay, rc.Floor)
	}
}
