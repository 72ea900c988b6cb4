// Package pet implements the Nadagotchi simulation engine: one creature's
// needs, personality, skills, career, inventory, home, relationships and
// lineage, driven by a frame clock and discrete player actions.
//
// A Nadagotchi is single-writer. Callers serialize access.
package pet

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/genetics"
	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
	"github.com/pthm-cable/nadagotchi/world"
)

// Stats are the three needs, each kept within [0, 100].
type Stats struct {
	Hunger    float64 `json:"hunger"`
	Energy    float64 `json:"energy"`
	Happiness float64 `json:"happiness"`
}

// JournalEntry is a human-readable log line.
type JournalEntry struct {
	Day  int    `json:"day"`
	Text string `json:"text"`
}

// Options configure a new pet.
type Options struct {
	Config *config.Config // Defaults to config.Cfg()
	Seed   uint64         // Used when no RNG state is restored
	Sink   EventSink
	Logger *slog.Logger
}

// Nadagotchi is one pet.
type Nadagotchi struct {
	cfg  *config.Config
	log  *slog.Logger
	sink EventSink
	src  *rand.PCG
	rng  *rand.Rand

	uuid       string
	generation int
	day        int
	env        world.State

	stats           Stats
	mood            systems.Mood
	age             float64
	legacyReady     bool
	legacyTraits    traits.LegacyTrait
	moodSensitivity float64

	genome    genetics.Genome
	phenotype genetics.Phenotype
	points    map[traits.Archetype]float64
	dominant  traits.Archetype
	skills    map[string]float64
	hobbies   map[string]float64

	inventory map[string]int
	recipes   map[string]bool
	crafted   map[string]int

	hygiene  *systems.Hygiene
	location string
	home     map[string]*RoomState
	placed   []PlacedItem

	career            string
	careerXP          map[string]float64
	careerLevels      map[string]int
	craftCount        int
	newCareerUnlocked bool

	relationships map[string]float64
	quests        map[string]*QuestState
	dailyQuests   map[string]*DailyQuest

	journal []JournalEntry
}

// New creates a fresh pet with a random starting archetype.
func New(opts Options) *Nadagotchi {
	return FromSnapshot(nil, opts)
}

func (p *Nadagotchi) init(opts Options) {
	p.cfg = opts.Config
	if p.cfg == nil {
		p.cfg = config.Cfg()
	}
	p.log = opts.Logger
	if p.log == nil {
		p.log = slog.Default()
	}
	p.sink = opts.Sink
	if p.sink == nil {
		p.sink = discardSink{}
	}
	p.hygiene = systems.NewHygiene(p.cfg.Hygiene, p.newID)
}

// UUID returns the pet's identity.
func (p *Nadagotchi) UUID() string { return p.uuid }

// Generation returns how many ancestors preceded this pet, counting from 1.
func (p *Nadagotchi) Generation() int { return p.generation }

// Day returns the pet's in-game day counter.
func (p *Nadagotchi) Day() int { return p.day }

// Stats returns the current needs.
func (p *Nadagotchi) Stats() Stats { return p.stats }

// Mood returns the current mood.
func (p *Nadagotchi) Mood() systems.Mood { return p.mood }

// Age returns the pet's age.
func (p *Nadagotchi) Age() float64 { return p.age }

// IsLegacyReady reports whether the pet is old enough to retire.
func (p *Nadagotchi) IsLegacyReady() bool { return p.legacyReady }

// LegacyTraits returns inherited traits.
func (p *Nadagotchi) LegacyTraits() traits.LegacyTrait { return p.legacyTraits }

// MoodSensitivity returns how strongly passive effects move happiness.
func (p *Nadagotchi) MoodSensitivity() float64 { return p.moodSensitivity }

// Genome returns the pet's genome.
func (p *Nadagotchi) Genome() genetics.Genome { return p.genome }

// Phenotype returns the traits expressed by the genome.
func (p *Nadagotchi) Phenotype() genetics.Phenotype { return p.phenotype }

// Dominant returns the dominant archetype.
func (p *Nadagotchi) Dominant() traits.Archetype { return p.dominant }

// PersonalityPoints returns a copy of the points per archetype.
func (p *Nadagotchi) PersonalityPoints() map[traits.Archetype]float64 { return maps.Clone(p.points) }

// Skill returns one skill value.
func (p *Nadagotchi) Skill(name string) float64 { return p.skills[name] }

// Skills returns a copy of all skills.
func (p *Nadagotchi) Skills() map[string]float64 { return maps.Clone(p.skills) }

// Hobby returns the level of a hobby.
func (p *Nadagotchi) Hobby(name string) float64 { return p.hobbies[name] }

// Inventory returns a copy of held items.
func (p *Nadagotchi) Inventory() map[string]int { return maps.Clone(p.inventory) }

// ItemCount returns how many of an item are held.
func (p *Nadagotchi) ItemCount(item string) int { return p.inventory[item] }

// KnowsRecipe reports whether a recipe has been discovered.
func (p *Nadagotchi) KnowsRecipe(name string) bool { return p.recipes[name] }

// DiscoveredRecipes returns known recipe names, sorted.
func (p *Nadagotchi) DiscoveredRecipes() []string {
	return slices.Sorted(maps.Keys(p.recipes))
}

// Hygiene exposes the debris system for read access and cleaning UIs.
func (p *Nadagotchi) Hygiene() *systems.Hygiene { return p.hygiene }

// Location returns where the pet is.
func (p *Nadagotchi) Location() string { return p.location }

// Relationship returns the level with an NPC.
func (p *Nadagotchi) Relationship(npc string) float64 { return p.relationships[npc] }

// Journal returns a copy of the journal, oldest first.
func (p *Nadagotchi) Journal() []JournalEntry { return slices.Clone(p.journal) }

// Environment returns the last world state the pet saw.
func (p *Nadagotchi) Environment() world.State { return p.env }

func (p *Nadagotchi) addJournal(format string, args ...any) {
	p.journal = append(p.journal, JournalEntry{Day: p.day, Text: fmt.Sprintf(format, args...)})
	if limit := p.cfg.Pet.MaxJournalEntries; limit > 0 && len(p.journal) > limit {
		p.journal = slices.Delete(p.journal, 0, len(p.journal)-limit)
	}
}

// reject notes a validation miss in the journal and tells the sink.
func (p *Nadagotchi) reject(subject, format string, args ...any) {
	p.addJournal(format, args...)
	p.emit(EventActionRejected, subject, 0)
	p.log.Debug("action rejected", "pet", p.uuid, "subject", subject)
}

func (p *Nadagotchi) addHunger(d float64) { p.stats.Hunger = systems.Clamp(p.stats.Hunger + d) }

func (p *Nadagotchi) addEnergy(d float64) { p.stats.Energy = systems.Clamp(p.stats.Energy + d) }

func (p *Nadagotchi) addHappiness(d float64) {
	p.stats.Happiness = systems.Clamp(p.stats.Happiness + d)
}

// addSkill raises a skill. Skills never decrease.
func (p *Nadagotchi) addSkill(name string, d float64) {
	if d > 0 {
		p.skills[name] += d
	}
}

// skillMultiplier scales skill gains by mood and inherited traits.
func (p *Nadagotchi) skillMultiplier() float64 {
	m := p.cfg.MoodMultiplier(string(p.mood))
	if p.legacyTraits.Has(traits.QuickLearner) {
		m *= p.cfg.Legacy.QuickLearnerMult
	}
	return m
}

func (p *Nadagotchi) addItem(item string, n int) {
	if n > 0 {
		p.inventory[item] += n
	}
}

// removeItem takes n of an item, deleting the key at zero.
func (p *Nadagotchi) removeItem(item string, n int) bool {
	have := p.inventory[item]
	if n <= 0 || have < n {
		return false
	}
	if have == n {
		delete(p.inventory, item)
	} else {
		p.inventory[item] = have - n
	}
	return true
}

func (p *Nadagotchi) discoverRecipe(name string) bool {
	if p.recipes[name] {
		return false
	}
	if _, ok := p.cfg.Recipe(name); !ok {
		return false
	}
	p.recipes[name] = true
	p.addJournal("I figured out how to make %s!", name)
	p.emit(EventRecipeDiscovered, name, 0)
	return true
}

// DiscoverRecipe teaches the pet a configured recipe.
func (p *Nadagotchi) DiscoverRecipe(name string) bool {
	return p.discoverRecipe(name)
}

func (p *Nadagotchi) setMood(m systems.Mood) {
	if m == p.mood {
		return
	}
	p.mood = m
	p.emit(EventMoodChanged, string(m), 0)
}

func (p *Nadagotchi) refreshPhenotype() {
	p.phenotype = p.genome.CalculatePhenotype()
}

// UpdateDominantArchetype re-resolves the dominant archetype.
func (p *Nadagotchi) UpdateDominantArchetype() {
	next := systems.ResolveDominant(p.points, p.skills, p.dominant, true, p.rng)
	if next != p.dominant {
		p.dominant = next
		p.emit(EventDominantChanged, next.String(), p.points[next])
	}
}

// afterAction runs the bookkeeping every action ends with.
func (p *Nadagotchi) afterAction() {
	p.UpdateDominantArchetype()
	p.UpdateCareer()
}

// happyThreshold is lowered when the dominant archetype is homozygous.
func (p *Nadagotchi) happyThreshold() float64 {
	if p.phenotype.Archetype(p.dominant).Homozygous {
		return p.cfg.Thresholds.HappyHomozygous
	}
	return p.cfg.Thresholds.Happy
}

// SetLocation moves the pet to the garden, the home, or an unlocked room.
func (p *Nadagotchi) SetLocation(loc string) bool {
	switch {
	case loc == p.cfg.Hygiene.GardenLocation, loc == p.cfg.Pet.Location:
	default:
		room, ok := p.home[loc]
		if !ok || !room.Unlocked {
			p.reject(loc, "I can't go to %s.", loc)
			return false
		}
	}
	p.location = loc
	return true
}
