package pet

import (
	"maps"
	"slices"

	"github.com/pthm-cable/nadagotchi/config"
)

// QuestState tracks progress through a story quest.
type QuestState struct {
	Stage     int  `json:"stage"`
	Completed bool `json:"completed"`
}

// DailyQuest is a one-day fetch request from a villager.
type DailyQuest struct {
	ID        string `json:"id"`
	NPC       string `json:"npc"`
	Item      string `json:"item"`
	Qty       int    `json:"qty"`
	Text      string `json:"text"`
	Day       int    `json:"day"`
	Delivered bool   `json:"delivered"` // The pet has heard the request
	Completed bool   `json:"completed"`
}

// Quest returns the progress of a story quest.
func (p *Nadagotchi) Quest(id string) (QuestState, bool) {
	q, ok := p.quests[id]
	if !ok {
		return QuestState{}, false
	}
	return *q, true
}

// DailyQuest returns the current quest offered by an NPC.
func (p *Nadagotchi) DailyQuest(npc string) (DailyQuest, bool) {
	q, ok := p.dailyQuests[npc]
	if !ok {
		return DailyQuest{}, false
	}
	return *q, true
}

// HasNewQuest reports whether an NPC has a request the pet hasn't heard yet.
func (p *Nadagotchi) HasNewQuest(npc string) bool {
	q, ok := p.dailyQuests[npc]
	return ok && !q.Delivered && !q.Completed
}

// GenerateDailyQuest offers one quest from the season and weather pools to a
// villager who has none today.
func (p *Nadagotchi) GenerateDailyQuest(season, weather string) (DailyQuest, bool) {
	daily := p.cfg.Quests.Daily
	var pool []config.DailyQuestTemplate
	for _, t := range slices.Concat(daily.Seasonal[season], daily.Weather[weather]) {
		if q, ok := p.dailyQuests[t.NPC]; ok && q.Day == p.day {
			continue
		}
		if _, ok := p.cfg.NPC(t.NPC); !ok || t.Qty <= 0 {
			continue
		}
		pool = append(pool, t)
	}
	if len(pool) == 0 {
		return DailyQuest{}, false
	}

	t := pool[p.rng.IntN(len(pool))]
	q := &DailyQuest{ID: p.newID(), NPC: t.NPC, Item: t.Item, Qty: t.Qty, Text: t.Text, Day: p.day}
	p.dailyQuests[t.NPC] = q
	p.emit(EventDailyQuestOffered, t.NPC, float64(t.Qty))
	return *q, true
}

// CompleteDailyQuest hands over the requested items and collects the reward.
func (p *Nadagotchi) CompleteDailyQuest(npc string) bool {
	q, ok := p.dailyQuests[npc]
	if !ok || q.Completed {
		p.reject(npc, "%s has nothing for me to do.", npc)
		return false
	}
	if !p.removeItem(q.Item, q.Qty) {
		p.reject(npc, "%s wants %d %s and I don't have enough.", npc, q.Qty, q.Item)
		return false
	}

	daily := p.cfg.Quests.Daily
	q.Completed = true
	p.relationships[npc] += daily.RelationshipReward
	p.addHappiness(daily.HappinessReward)
	if p.career != "" {
		p.addCareerXP(p.career, daily.XPReward)
	}
	p.addJournal("I helped %s today.", npc)
	p.emit(EventDailyQuestCompleted, npc, daily.XPReward)
	p.afterAction()
	return true
}

// clearStaleQuests drops daily quests from earlier days.
func (p *Nadagotchi) clearStaleQuests() {
	maps.DeleteFunc(p.dailyQuests, func(_ string, q *DailyQuest) bool { return q.Day < p.day })
}

// advanceStoryQuest runs one interaction's worth of story progress with an NPC.
func (p *Nadagotchi) advanceStoryQuest(npc string) {
	sq, ok := p.cfg.StoryQuestFor(npc)
	if !ok || len(sq.Stages) == 0 {
		return
	}
	state, started := p.quests[sq.ID]
	switch {
	case !started:
		if p.relationships[npc] < sq.StartLevel {
			return
		}
		p.quests[sq.ID] = &QuestState{}
		p.addJournal("%s: %s", npc, sq.Stages[0].Text)
		p.emit(EventQuestStarted, sq.ID, 0)
	case state.Completed:
		mult := p.skillMultiplier()
		for skill, v := range sq.RecurringSkills {
			p.addSkill(skill, v*mult)
		}
	case state.Stage < 0 || state.Stage >= len(sq.Stages):
		state.Completed = true
	default:
		stage := sq.Stages[state.Stage]
		if stage.RequiresCrafted != "" && p.crafted[stage.RequiresCrafted] == 0 {
			return
		}
		for item, n := range stage.Items {
			if p.inventory[item] < n {
				return
			}
		}
		for item, n := range stage.Items {
			p.removeItem(item, n)
		}
		if stage.RewardRecipe != "" {
			p.discoverRecipe(stage.RewardRecipe)
		}
		for skill, v := range stage.RewardSkills {
			p.addSkill(skill, v)
		}
		p.addHappiness(stage.RewardHappiness)

		state.Stage++
		if state.Stage >= len(sq.Stages) {
			state.Completed = true
			p.addJournal("I finished %s's quest!", npc)
			p.emit(EventQuestCompleted, sq.ID, float64(state.Stage))
			return
		}
		p.addJournal("%s: %s", npc, sq.Stages[state.Stage].Text)
		p.emit(EventQuestAdvanced, sq.ID, float64(state.Stage))
	}
}
