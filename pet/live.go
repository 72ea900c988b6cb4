package pet

import (
	"github.com/pthm-cable/nadagotchi/components"
	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
	"github.com/pthm-cable/nadagotchi/world"
)

// Live advances passive needs by deltaMs of game time under the given
// environment. Deltas above the configured maximum are capped.
func (p *Nadagotchi) Live(deltaMs float64, ws world.State) {
	p.env = ws
	if deltaMs <= 0 {
		return
	}
	if limit := p.cfg.Loop.MaxDeltaMs; limit > 0 {
		deltaMs = min(deltaMs, limit)
	}
	frames := deltaMs / p.cfg.Derived.MsPerFrame
	seconds := deltaMs / 1000

	env := systems.EnvironmentEffect(p.cfg.Environment, ws, p.dominant, p.phenotype.SpecialAbility)
	metabolism := p.phenotype.Metabolism.Value / p.cfg.Genetics.MetabolismNormalizer

	p.addHunger(-p.cfg.Decay.Hunger * frames * metabolism * env.HungerMult)
	p.addEnergy(-p.cfg.Decay.Energy * frames * metabolism * env.EnergyMult)
	p.addHappiness(env.Happiness * frames * p.sensitivity())

	// Cached sums; the hygiene system refreshes them on mutation.
	penalty := (p.hygiene.GlobalPenalty() + p.hygiene.LocationPenalty(p.location)) * seconds
	if p.legacyTraits.Has(traits.ResilientSpirit) {
		penalty *= p.cfg.Legacy.ResilientPenaltyMult
	}
	p.addHappiness(-penalty)

	p.setMood(systems.DeriveMood(p.stats.Hunger, p.stats.Energy, p.stats.Happiness, p.happyThreshold(), p.cfg.Thresholds))

	p.age += p.cfg.Decay.Age * frames
	if !p.legacyReady && p.age >= p.cfg.Thresholds.AgeLegacy {
		p.legacyReady = true
		p.addJournal("I feel ready to pass on what I've learned.")
		p.emit(EventLegacyReady, "", p.age)
		p.log.Info("legacy ready", "pet", p.uuid, "age", p.age)
	}
}

// sensitivity scales passive happiness effects relative to the default.
func (p *Nadagotchi) sensitivity() float64 {
	def := p.cfg.Genetics.MoodSensitivityDefault
	if def <= 0 {
		return 1
	}
	return p.moodSensitivity / def
}

// AdvanceDay rolls the pet into a new day: relationships decay, yesterday's
// requests lapse, debris spawns and a new daily quest may be offered.
func (p *Nadagotchi) AdvanceDay(ws world.State) {
	p.day++
	p.env = ws
	p.clearStaleQuests()
	p.DailyUpdate()

	spawned := p.hygiene.SpawnDaily(ws.Season, ws.Weather, p.day, p.rng)
	if rec, ok := p.hygiene.SpawnPoop(p.location, p.day, p.rng); ok {
		spawned = append(spawned, rec)
	}
	for _, rec := range spawned {
		p.emit(EventDebrisSpawned, rec.Kind, p.hygiene.Penalty(rec.Kind))
	}

	p.GenerateDailyQuest(ws.Season, ws.Weather)
	p.emit(EventDayStarted, ws.Season, float64(p.day))
}

// Clean removes one piece of debris. Forage debris is picked up as an item.
func (p *Nadagotchi) Clean(id string) bool {
	cc := p.cfg.Hygiene.Clean
	if p.stats.Energy < cc.MinEnergy {
		p.reject(id, "Too tired to tidy up.")
		return false
	}
	rec, ok := p.hygiene.Remove(id)
	if !ok {
		p.reject(id, "There's nothing there to clean.")
		return false
	}

	p.addEnergy(-cc.Energy)
	gain := cc.SkillGain
	if rec.Kind == components.KindPoop {
		gain *= cc.PoopMultiplier
		p.addHappiness(cc.PoopHappiness)
	}
	p.addSkill(cc.Skill, gain*p.skillMultiplier())
	if item, ok := cc.Yields[rec.Kind]; ok {
		p.addItem(item, 1)
		p.addJournal("I picked up %s from the %s.", item, rec.Location)
	} else {
		p.addJournal("I cleaned up some %s in the %s.", rec.Kind, rec.Location)
	}
	p.emit(EventDebrisCleaned, rec.Kind, p.hygiene.Penalty(rec.Kind))
	p.afterAction()
	return true
}
