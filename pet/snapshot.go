package pet

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/nadagotchi/genetics"
	"github.com/pthm-cable/nadagotchi/systems"
	"github.com/pthm-cable/nadagotchi/traits"
	"github.com/pthm-cable/nadagotchi/world"
)

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// Snapshot is the persisted form of a pet. Every field is optional on load;
// missing fields take fresh-start defaults.
type Snapshot struct {
	Version    int    `json:"version"`
	UUID       string `json:"uuid,omitempty"`
	Generation int    `json:"generation,omitempty"`
	Day        int    `json:"day,omitempty"`

	Stats           *Stats             `json:"stats,omitempty"`
	Mood            string             `json:"mood,omitempty"`
	Age             float64            `json:"age,omitempty"`
	IsLegacyReady   bool               `json:"isLegacyReady,omitempty"`
	LegacyTraits    []string           `json:"legacyTraits"`
	MoodSensitivity *float64           `json:"moodSensitivity,omitempty"`
	Genome          *genetics.Genotype `json:"genome,omitempty"`

	PersonalityPoints map[traits.Archetype]float64 `json:"personalityPoints"`
	DominantArchetype *traits.Archetype            `json:"dominantArchetype,omitempty"`
	Skills            map[string]float64           `json:"skills"`
	Hobbies           map[string]float64           `json:"hobbies"`

	Inventory         map[string]int `json:"inventory"`
	DiscoveredRecipes []string       `json:"discoveredRecipes"`
	CraftedItems      map[string]int `json:"craftedItems"`

	Debris      []systems.DebrisRecord `json:"debris"`
	Location    string                 `json:"location,omitempty"`
	HomeConfig  map[string]RoomState   `json:"homeConfig"`
	PlacedItems []PlacedItem           `json:"placedItems"`

	CurrentCareer     string             `json:"currentCareer,omitempty"`
	CareerXP          map[string]float64 `json:"careerXP"`
	CareerLevels      map[string]int     `json:"careerLevels"`
	CraftCount        int                `json:"craftCount,omitempty"`
	NewCareerUnlocked bool               `json:"newCareerUnlocked,omitempty"`

	Relationships map[string]float64    `json:"relationships"`
	Quests        map[string]QuestState `json:"quests"`
	DailyQuests   map[string]DailyQuest `json:"dailyQuests"`

	Journal     []JournalEntry `json:"journal"`
	Environment world.State    `json:"environment"`
	RNGState    []byte         `json:"rngState,omitempty"`
}

// Snapshot captures the full pet state, including the RNG stream position.
func (p *Nadagotchi) Snapshot() *Snapshot {
	stats := p.stats
	ms := p.moodSensitivity
	dominant := p.dominant
	gt := p.genome.Genotype()
	rngState, err := p.src.MarshalBinary()
	if err != nil {
		p.log.Warn("rng state not saved", "pet", p.uuid, "error", err)
	}

	s := &Snapshot{
		Version:           SnapshotVersion,
		UUID:              p.uuid,
		Generation:        p.generation,
		Day:               p.day,
		Stats:             &stats,
		Mood:              string(p.mood),
		Age:               p.age,
		IsLegacyReady:     p.legacyReady,
		LegacyTraits:      p.legacyTraits.Names(),
		MoodSensitivity:   &ms,
		Genome:            &gt,
		PersonalityPoints: maps.Clone(p.points),
		DominantArchetype: &dominant,
		Skills:            maps.Clone(p.skills),
		Hobbies:           maps.Clone(p.hobbies),
		Inventory:         maps.Clone(p.inventory),
		DiscoveredRecipes: p.DiscoveredRecipes(),
		CraftedItems:      maps.Clone(p.crafted),
		Debris:            p.hygiene.All(),
		Location:          p.location,
		HomeConfig:        make(map[string]RoomState, len(p.home)),
		PlacedItems:       slices.Clone(p.placed),
		CurrentCareer:     p.career,
		CareerXP:          maps.Clone(p.careerXP),
		CareerLevels:      maps.Clone(p.careerLevels),
		CraftCount:        p.craftCount,
		NewCareerUnlocked: p.newCareerUnlocked,
		Relationships:     maps.Clone(p.relationships),
		Quests:            make(map[string]QuestState, len(p.quests)),
		DailyQuests:       make(map[string]DailyQuest, len(p.dailyQuests)),
		Journal:           slices.Clone(p.journal),
		Environment:       p.env,
		RNGState:          rngState,
	}
	for name, room := range p.home {
		s.HomeConfig[name] = *room
	}
	for id, q := range p.quests {
		s.Quests[id] = *q
	}
	for npc, q := range p.dailyQuests {
		s.DailyQuests[npc] = *q
	}
	if s.PlacedItems == nil {
		s.PlacedItems = []PlacedItem{}
	}
	if s.Journal == nil {
		s.Journal = []JournalEntry{}
	}
	if s.DiscoveredRecipes == nil {
		s.DiscoveredRecipes = []string{}
	}
	return s
}

// FromSnapshot rebuilds a pet. A nil snapshot yields a fresh pet; any field
// the snapshot leaves out takes its fresh-start default. A malformed genome
// is logged and replaced.
func FromSnapshot(s *Snapshot, opts Options) *Nadagotchi {
	if s == nil {
		s = &Snapshot{}
	}
	p := &Nadagotchi{}
	p.init(opts)
	c := p.cfg

	p.src = newSource(opts.Seed)
	if len(s.RNGState) > 0 {
		src, err := restoreSource(s.RNGState)
		if err != nil {
			p.log.Warn("discarding rng state", "error", err)
		} else {
			p.src = src
		}
	}
	p.rng = rand.New(p.src)

	p.uuid = s.UUID
	if p.uuid == "" {
		p.uuid = p.newID()
	}
	p.generation = max(s.Generation, 1)
	p.day = max(s.Day, 0)
	p.env = s.Environment

	p.stats = Stats{Hunger: c.Pet.Hunger, Energy: c.Pet.Energy, Happiness: c.Pet.Happiness}
	if s.Stats != nil {
		p.stats = *s.Stats
	}
	p.stats.Hunger = systems.Clamp(p.stats.Hunger)
	p.stats.Energy = systems.Clamp(p.stats.Energy)
	p.stats.Happiness = systems.Clamp(p.stats.Happiness)

	p.skills = maps.Clone(c.Pet.Skills)
	if p.skills == nil {
		p.skills = make(map[string]float64)
	}
	for k, v := range s.Skills {
		p.skills[k] = max(v, 0)
	}
	p.hobbies = make(map[string]float64, len(s.Hobbies))
	for k, v := range s.Hobbies {
		p.hobbies[k] = max(v, 0)
	}

	p.points = make(map[traits.Archetype]float64, len(traits.All))
	for a, v := range s.PersonalityPoints {
		if a.Valid() && v > 0 {
			p.points[a] = v
		}
	}
	switch {
	case s.DominantArchetype != nil && s.DominantArchetype.Valid():
		p.dominant = *s.DominantArchetype
	case len(p.points) > 0:
		p.dominant = systems.ResolveDominant(p.points, p.skills, 0, false, p.rng)
	default:
		p.dominant = traits.All[p.rng.IntN(len(traits.All))]
		p.points[p.dominant] = c.Pet.StarterPoints
	}

	if s.Genome != nil {
		g, err := genetics.FromGenotype(*s.Genome)
		if err != nil {
			p.log.Warn("malformed genome, using defaults", "pet", p.uuid, "error", err)
		}
		p.genome = g
	}
	if !p.genome.Valid() {
		p.genome = genetics.NewGenome(p.dominant, c.Genetics, p.rng)
	}
	p.refreshPhenotype()
	p.moodSensitivity = p.phenotype.MoodSensitivity.Value
	if s.MoodSensitivity != nil {
		p.moodSensitivity = *s.MoodSensitivity
	}

	p.age = max(s.Age, 0)
	p.legacyReady = s.IsLegacyReady
	p.legacyTraits = traits.LegacyFromNames(s.LegacyTraits)

	p.inventory = make(map[string]int, len(s.Inventory))
	for item, n := range s.Inventory {
		p.addItem(item, n)
	}
	p.recipes = make(map[string]bool)
	recipes := s.DiscoveredRecipes
	if recipes == nil {
		recipes = c.Pet.StarterRecipes
	}
	for _, r := range recipes {
		p.recipes[r] = true
	}
	p.crafted = make(map[string]int, len(s.CraftedItems))
	for item, n := range s.CraftedItems {
		if n > 0 {
			p.crafted[item] = n
		}
	}

	p.hygiene.AddAll(s.Debris)
	p.location = s.Location
	if p.location == "" {
		p.location = c.Pet.Location
	}
	p.home = defaultHome(c.Rooms)
	for name, room := range s.HomeConfig {
		p.home[name] = &room
	}
	p.placed = slices.Clone(s.PlacedItems)

	p.career = s.CurrentCareer
	p.careerXP = make(map[string]float64, len(s.CareerXP))
	maps.Copy(p.careerXP, s.CareerXP)
	p.careerLevels = make(map[string]int, len(s.CareerLevels))
	maps.Copy(p.careerLevels, s.CareerLevels)
	p.craftCount = s.CraftCount
	p.newCareerUnlocked = s.NewCareerUnlocked

	p.relationships = make(map[string]float64, len(s.Relationships))
	maps.Copy(p.relationships, s.Relationships)
	p.quests = make(map[string]*QuestState, len(s.Quests))
	for id, q := range s.Quests {
		p.quests[id] = &q
	}
	p.dailyQuests = make(map[string]*DailyQuest, len(s.DailyQuests))
	for npc, q := range s.DailyQuests {
		p.dailyQuests[npc] = &q
	}

	p.journal = slices.Clone(s.Journal)

	if m, ok := systems.ParseMood(s.Mood); ok {
		p.mood = m
	} else {
		p.mood = systems.DeriveMood(p.stats.Hunger, p.stats.Energy, p.stats.Happiness, p.happyThreshold(), c.Thresholds)
	}

	p.log.Debug("pet loaded", "pet", p.uuid, "generation", p.generation, "dominant", p.dominant.String())
	return p
}
