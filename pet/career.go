package pet

import (
	"fmt"

	"github.com/pthm-cable/nadagotchi/systems"
)

// WorkResult is what a minigame reports after a shift. Origin is the
// caller's concern.
type WorkResult struct {
	Success     bool
	Career      string // Defaults to the current career
	CraftedItem string // Added to the inventory on success
}

// WorkSummary describes the outcome of a shift.
type WorkSummary struct {
	Success         bool
	Promoted        bool
	SkillUp         float64
	HappinessChange float64
	Message         string
}

// Career returns the current career, empty until one unlocks.
func (p *Nadagotchi) Career() string { return p.career }

// CareerXP returns accumulated XP in a career.
func (p *Nadagotchi) CareerXP(career string) float64 { return p.careerXP[career] }

// CareerLevel returns the level reached in a career, starting at 1.
func (p *Nadagotchi) CareerLevel(career string) int {
	return max(p.careerLevels[career], 1)
}

// CareerTitle returns the rank title for the current career.
func (p *Nadagotchi) CareerTitle() string {
	cc, ok := p.cfg.Career(p.career)
	if !ok {
		return ""
	}
	return systems.Title(cc, p.CareerLevel(p.career))
}

// CraftCount returns the number of successful crafting shifts.
func (p *Nadagotchi) CraftCount() int { return p.craftCount }

// NewCareerUnlocked reports whether a career unlocked since the last clear.
func (p *Nadagotchi) NewCareerUnlocked() bool { return p.newCareerUnlocked }

// ClearNewCareerUnlocked acknowledges the unlock notice.
func (p *Nadagotchi) ClearNewCareerUnlocked() { p.newCareerUnlocked = false }

// UpdateCareer assigns the first matching career. Once set it never changes.
func (p *Nadagotchi) UpdateCareer() {
	if p.career != "" {
		return
	}
	name, ok := systems.MatchCareer(p.cfg.Careers, p.dominant, p.skills)
	if !ok {
		return
	}
	p.career = name
	p.newCareerUnlocked = true
	p.addJournal("I became a %s!", name)
	p.emit(EventCareerUnlocked, name, 0)
	p.log.Info("career unlocked", "pet", p.uuid, "career", name)
}

// addCareerXP adds XP and promotes when a threshold is crossed.
func (p *Nadagotchi) addCareerXP(career string, xp float64) bool {
	p.careerXP[career] += xp
	level := systems.CareerLevel(p.careerXP[career], p.cfg.Work.XPThresholds)
	if level <= p.CareerLevel(career) {
		return false
	}
	p.careerLevels[career] = level
	p.addHappiness(p.cfg.Work.PromotionBonus)
	title := career
	if cc, ok := p.cfg.Career(career); ok {
		title = systems.Title(cc, level)
	}
	p.addJournal("Promoted to %s!", title)
	p.emit(EventPromoted, career, float64(level))
	return true
}

// CompleteWorkShift scores a minigame result for a career.
func (p *Nadagotchi) CompleteWorkShift(r WorkResult) WorkSummary {
	career := r.Career
	if career == "" {
		career = p.career
	}
	cc, ok := p.cfg.Career(career)
	if p.career == "" || !ok {
		p.addJournal("I wanted to work, but I have no job to go to.")
		return WorkSummary{Message: "No job to go to."}
	}

	w := p.cfg.Work
	mult := systems.LevelMultiplier(p.CareerLevel(career), w.LevelMultipliers)
	before := p.stats.Happiness
	sum := WorkSummary{Success: r.Success}

	xp := w.XPPerFailure
	if r.Success {
		xp = w.XPPerWork
		p.addHappiness(w.HappinessBase * mult)
		sum.SkillUp = w.SkillGainBase * mult * p.skillMultiplier()
		p.addSkill(cc.Skill, sum.SkillUp)
		if r.CraftedItem != "" {
			p.craftCount++
			p.ReturnItemToInventory(r.CraftedItem)
		}
		sum.Message = fmt.Sprintf("Good work as %s.", systems.Title(cc, p.CareerLevel(career)))
	} else {
		p.addHappiness(-w.FailureHappiness)
		sum.Message = "That shift didn't go well."
	}

	sum.Promoted = p.addCareerXP(career, xp)
	if sum.Promoted {
		sum.Message += fmt.Sprintf(" Promoted to %s!", systems.Title(cc, p.CareerLevel(career)))
	}
	sum.HappinessChange = p.stats.Happiness - before
	if r.Success {
		p.addJournal("I had a successful day at my %s job!", career)
	} else {
		p.addJournal("I struggled at my %s job today. It was frustrating.", career)
	}
	p.emit(EventWorkShift, career, xp)
	p.afterAction()
	return sum
}
