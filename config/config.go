// Package config provides configuration loading and access for the pet simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every balance table the engine reads.
type Config struct {
	Loop          LoopConfig                  `yaml:"loop"`
	Pet           PetConfig                   `yaml:"pet"`
	Decay         DecayConfig                 `yaml:"decay"`
	Thresholds    ThresholdsConfig            `yaml:"thresholds"`
	Mood          MoodConfig                  `yaml:"mood"`
	Genetics      GeneticsConfig              `yaml:"genetics"`
	Environment   EnvironmentConfig           `yaml:"environment"`
	Actions       map[string]ActionConfig     `yaml:"actions"`
	Careers       []CareerConfig              `yaml:"careers"`
	Work          WorkConfig                  `yaml:"work"`
	Recipes       []RecipeConfig              `yaml:"recipes"`
	Consumables   map[string]ConsumableConfig `yaml:"consumables"`
	Forage        ForageConfig                `yaml:"forage"`
	Hobbies       HobbyConfig                 `yaml:"hobbies"`
	Hygiene       HygieneConfig               `yaml:"hygiene"`
	Relationships RelationshipConfig          `yaml:"relationships"`
	Quests        QuestConfig                 `yaml:"quests"`
	Expeditions   ExpeditionConfig            `yaml:"expeditions"`
	Legacy        LegacyConfig                `yaml:"legacy"`
	Rooms         []RoomConfig                `yaml:"rooms"`
	World         WorldConfig                 `yaml:"world"`
	Caretaker     CaretakerConfig             `yaml:"caretaker"`
	Telemetry     TelemetryConfig             `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// LoopConfig holds frame timing. Decay rates are expressed per frame.
type LoopConfig struct {
	FramesPerSecond float64 `yaml:"frames_per_second"`
	MaxDeltaMs      float64 `yaml:"max_delta_ms"` // Larger deltas (tab sleep, reload) are capped
}

// PetConfig holds fresh-start values for a new pet.
type PetConfig struct {
	Hunger            float64            `yaml:"hunger"`
	Energy            float64            `yaml:"energy"`
	Happiness         float64            `yaml:"happiness"`
	Skills            map[string]float64 `yaml:"skills"`
	StarterPoints     float64            `yaml:"starter_points"` // Personality points for the starting archetype
	StarterRecipes    []string           `yaml:"starter_recipes"`
	Location          string             `yaml:"location"`
	MaxJournalEntries int                `yaml:"max_journal_entries"`
}

// DecayConfig holds per-frame passive decay.
type DecayConfig struct {
	Hunger float64 `yaml:"hunger"`
	Energy float64 `yaml:"energy"`
	Age    float64 `yaml:"age"`
}

// ThresholdsConfig holds mood and lifecycle thresholds.
type ThresholdsConfig struct {
	Happy           float64 `yaml:"happy"`
	HappyHomozygous float64 `yaml:"happy_homozygous"` // Used when the dominant archetype is homozygous
	HungerAngry     float64 `yaml:"hunger_angry"`
	HungerSad       float64 `yaml:"hunger_sad"`
	EnergySad       float64 `yaml:"energy_sad"`
	AgeLegacy       float64 `yaml:"age_legacy"`
}

// MoodConfig maps mood names to skill gain multipliers.
type MoodConfig struct {
	Multipliers map[string]float64 `yaml:"multipliers"`
}

// GeneticsConfig holds genome defaults, breeding and bonus parameters.
type GeneticsConfig struct {
	StarterAllele            float64         `yaml:"starter_allele"`
	WildPersonalityMin       float64         `yaml:"wild_personality_min"`
	WildPersonalityMax       float64         `yaml:"wild_personality_max"`
	WildPhysioMin            float64         `yaml:"wild_physio_min"`
	WildPhysioMax            float64         `yaml:"wild_physio_max"`
	MetabolismDefault        float64         `yaml:"metabolism_default"`
	MoodSensitivityDefault   float64         `yaml:"mood_sensitivity_default"`
	MetabolismNormalizer     float64         `yaml:"metabolism_normalizer"`
	HomozygousEnergyBonus    float64         `yaml:"homozygous_energy_bonus"`
	HomozygousHappinessBonus float64         `yaml:"homozygous_happiness_bonus"`
	HomozygousSkillMult      float64         `yaml:"homozygous_skill_multiplier"`
	MutationRate             float64         `yaml:"mutation_rate"`
	PersonalityStep          float64         `yaml:"personality_step"`
	PhysioStep               float64         `yaml:"physio_step"`
	PersonalityMax           float64         `yaml:"personality_max"`
	PhysioMax                float64         `yaml:"physio_max"`
	SpecialAbilities         []string        `yaml:"special_abilities"`
	Influences               []GeneInfluence `yaml:"influences"`
}

// GeneInfluence maps a breeding environment item to an allele for one gene.
type GeneInfluence struct {
	Item  string  `yaml:"item"`
	Gene  string  `yaml:"gene"`
	Value float64 `yaml:"value"`
}

// Modifier scales hunger/energy decay and adds a per-frame happiness delta.
// A zero multiplier means "unchanged".
type Modifier struct {
	Hunger    float64 `yaml:"hunger,omitempty"`
	Energy    float64 `yaml:"energy,omitempty"`
	Happiness float64 `yaml:"happiness,omitempty"`
}

// HungerMult returns the hunger decay multiplier.
func (m Modifier) HungerMult() float64 {
	if m.Hunger == 0 {
		return 1
	}
	return m.Hunger
}

// EnergyMult returns the energy decay multiplier.
func (m Modifier) EnergyMult() float64 {
	if m.Energy == 0 {
		return 1
	}
	return m.Energy
}

// EnvTable is an environment condition with an optional per-archetype layer.
type EnvTable struct {
	Modifier   `yaml:",inline"`
	Archetypes map[string]Modifier `yaml:"archetypes,omitempty"`
}

// EnvironmentConfig holds the table-driven needs modifiers.
type EnvironmentConfig struct {
	FestivalHappiness float64                        `yaml:"festival_happiness"`
	Weather           map[string]EnvTable            `yaml:"weather"`
	Periods           map[string]EnvTable            `yaml:"periods"`
	Seasons           map[string]EnvTable            `yaml:"seasons"`
	Abilities         map[string]map[string]Modifier `yaml:"abilities"` // ability -> period/weather -> modifier
}

// Discovery is a chance to learn a recipe.
type Discovery struct {
	Chance float64 `yaml:"chance"`
	Recipe string  `yaml:"recipe"`
}

// ActionConfig is one row of the basic action effect table.
type ActionConfig struct {
	Hunger       float64                   `yaml:"hunger"`
	Energy       float64                   `yaml:"energy"`
	Happiness    float64                   `yaml:"happiness"`
	MinEnergy    float64                   `yaml:"min_energy"`
	Skills       map[string]float64        `yaml:"skills"`
	Points       map[string]float64        `yaml:"points"`
	Signature    string                    `yaml:"signature"`     // Archetype whose homozygous bonus applies
	RequiresItem string                    `yaml:"requires_item"` // Owned or placed item needed to perform
	Discover     *Discovery                `yaml:"discover"`
	Overrides    map[string]ActionOverride `yaml:"overrides"`
	Journal      string                    `yaml:"journal"`
}

// ActionOverride adjusts an action for one dominant archetype. Every delta
// adds to the base row.
type ActionOverride struct {
	Hunger    float64            `yaml:"hunger"`
	Energy    float64            `yaml:"energy"`
	Happiness float64            `yaml:"happiness"`
	Skills    map[string]float64 `yaml:"skills"`
	Points    map[string]float64 `yaml:"points"`
	Mood      string             `yaml:"mood"`
	Discover  *Discovery         `yaml:"discover"`
}

// CareerConfig defines one career path.
type CareerConfig struct {
	Name         string             `yaml:"name"`
	Archetype    string             `yaml:"archetype"`
	Requirements map[string]float64 `yaml:"requirements"` // Each skill must strictly exceed its value
	Skill        string             `yaml:"skill"`        // Skill trained by work shifts
	Titles       []string           `yaml:"titles"`
}

// WorkConfig holds work shift scoring.
type WorkConfig struct {
	HappinessBase    float64   `yaml:"happiness_base"`
	FailureHappiness float64   `yaml:"failure_happiness"`
	SkillGainBase    float64   `yaml:"skill_gain_base"`
	XPPerWork        float64   `yaml:"xp_per_work"`
	XPPerFailure     float64   `yaml:"xp_per_failure"`
	PromotionBonus   float64   `yaml:"promotion_bonus"`
	LevelMultipliers []float64 `yaml:"level_multipliers"` // Index 0 is level 1
	XPThresholds     []float64 `yaml:"xp_thresholds"`     // Index 0 is the XP needed for level 2
}

// RecipeConfig defines a craftable item.
type RecipeConfig struct {
	Name      string         `yaml:"name"`
	Category  string         `yaml:"category"` // furniture, consumable, wallpaper, flooring
	Materials map[string]int `yaml:"materials"`
}

// ConsumableConfig defines what using an item does.
type ConsumableConfig struct {
	Hunger          float64            `yaml:"hunger"`
	Energy          float64            `yaml:"energy"`
	Happiness       float64            `yaml:"happiness"`
	Skills          map[string]float64 `yaml:"skills"`
	MetabolismDelta float64            `yaml:"metabolism_delta"`
	UnlockRoom      string             `yaml:"unlock_room"`
	Journal         string             `yaml:"journal"`
}

// ForageConfig holds forage costs and loot tables.
type ForageConfig struct {
	MinEnergy float64             `yaml:"min_energy"`
	Energy    float64             `yaml:"energy"`
	Skills    map[string]float64  `yaml:"skills"`
	Loot      []string            `yaml:"loot"`
	Seasonal  map[string][]string `yaml:"seasonal"`
	Discover  map[string]string   `yaml:"discover"` // Looted item -> recipe learned
}

// HobbyConfig holds hobby practice effects.
type HobbyConfig struct {
	Names     []string `yaml:"names"`
	MinEnergy float64  `yaml:"min_energy"`
	Energy    float64  `yaml:"energy"`
	Happiness float64  `yaml:"happiness"`
	LevelGain float64  `yaml:"level_gain"`
}

// HygieneConfig holds debris spawning, penalties and cleaning.
type HygieneConfig struct {
	SpawnChanceDaily   float64             `yaml:"spawn_chance_daily"`
	MaxCount           int                 `yaml:"max_count"`
	GardenLocation     string              `yaml:"garden_location"`
	Penalties          map[string]float64  `yaml:"penalties"`
	SeasonMultipliers  map[string]float64  `yaml:"season_multipliers"`
	WeatherMultipliers map[string]float64  `yaml:"weather_multipliers"`
	WeedsMin           int                 `yaml:"weeds_min"`
	WeedsMax           int                 `yaml:"weeds_max"`
	WeatherBonus       map[string]int      `yaml:"weather_bonus"`
	ForageDebrisChance float64             `yaml:"forage_debris_chance"`
	ForageDebris       map[string][]string `yaml:"forage_debris"` // Season -> kinds
	PoopChance         float64             `yaml:"poop_chance"`
	PoopMinDistance    float64             `yaml:"poop_min_distance"`
	PoopAttempts       int                 `yaml:"poop_attempts"`
	XMin               float64             `yaml:"x_min"`
	XMax               float64             `yaml:"x_max"`
	YMin               float64             `yaml:"y_min"`
	YMax               float64             `yaml:"y_max"`
	Clean              CleanConfig         `yaml:"clean"`
}

// CleanConfig holds debris cleanup effects.
type CleanConfig struct {
	MinEnergy      float64           `yaml:"min_energy"`
	Energy         float64           `yaml:"energy"`
	Skill          string            `yaml:"skill"`
	SkillGain      float64           `yaml:"skill_gain"`
	PoopMultiplier float64           `yaml:"poop_multiplier"`
	PoopHappiness  float64           `yaml:"poop_happiness"`
	Yields         map[string]string `yaml:"yields"` // Debris kind -> item
}

// NPCConfig defines a villager.
type NPCConfig struct {
	Name  string `yaml:"name"`
	Skill string `yaml:"skill"` // Skill raised by talking
}

// RelationshipConfig holds NPC interaction effects.
type RelationshipConfig struct {
	NPCs           []NPCConfig `yaml:"npcs"`
	MinEnergy      float64     `yaml:"min_energy"`
	EnergyCost     float64     `yaml:"energy_cost"`
	ChatLevel      float64     `yaml:"chat_level"`
	ChatHappiness  float64     `yaml:"chat_happiness"`
	ChatSkill      float64     `yaml:"chat_skill"` // Communication gain
	TiedSkill      float64     `yaml:"tied_skill"` // NPC skill gain
	GiftItem       string      `yaml:"gift_item"`
	GiftMultiplier float64     `yaml:"gift_multiplier"`
	Decay          float64     `yaml:"decay"`
	Floor          float64     `yaml:"floor"`
}

// StageConfig is one step of a story quest.
type StageConfig struct {
	Text            string             `yaml:"text"`
	Items           map[string]int     `yaml:"items"`            // Consumed on completion
	RequiresCrafted string             `yaml:"requires_crafted"` // Item the pet must have crafted
	RewardRecipe    string             `yaml:"reward_recipe"`
	RewardSkills    map[string]float64 `yaml:"reward_skills"`
	RewardHappiness float64            `yaml:"reward_happiness"`
}

// StoryQuestConfig is a multi-stage quest unlocked by relationship level.
type StoryQuestConfig struct {
	ID              string             `yaml:"id"`
	NPC             string             `yaml:"npc"`
	StartLevel      float64            `yaml:"start_level"`
	Stages          []StageConfig      `yaml:"stages"`
	RecurringSkills map[string]float64 `yaml:"recurring_skills"` // Per interaction once complete, mood scaled
}

// DailyQuestTemplate is a candidate fetch quest.
type DailyQuestTemplate struct {
	NPC  string `yaml:"npc"`
	Item string `yaml:"item"`
	Qty  int    `yaml:"qty"`
	Text string `yaml:"text"`
}

// DailyQuestConfig holds daily quest pools and rewards.
type DailyQuestConfig struct {
	Seasonal           map[string][]DailyQuestTemplate `yaml:"seasonal"`
	Weather            map[string][]DailyQuestTemplate `yaml:"weather"`
	RelationshipReward float64                         `yaml:"relationship_reward"`
	HappinessReward    float64                         `yaml:"happiness_reward"`
	XPReward           float64                         `yaml:"xp_reward"`
}

// QuestConfig holds story and daily quests.
type QuestConfig struct {
	Story []StoryQuestConfig `yaml:"story"`
	Daily DailyQuestConfig   `yaml:"daily"`
}

// LegacyInfluence is the bonus an influence item gives an offspring.
type LegacyInfluence struct {
	Points  map[string]float64 `yaml:"points"`
	Hobbies map[string]float64 `yaml:"hobbies"`
}

// LegacyConfig holds offspring construction parameters.
type LegacyConfig struct {
	PrimaryPoints        float64                    `yaml:"primary_points"`
	SecondaryPoints      float64                    `yaml:"secondary_points"`
	Influences           map[string]LegacyInfluence `yaml:"influences"`
	MoodSensitivityDrift float64                    `yaml:"mood_sensitivity_drift"`
	MoodSensitivityMin   float64                    `yaml:"mood_sensitivity_min"`
	MoodSensitivityMax   float64                    `yaml:"mood_sensitivity_max"`
	TraitRetentionChance float64                    `yaml:"trait_retention_chance"`
	NewTraitChance       float64                    `yaml:"new_trait_chance"`
	NewTraits            []string                   `yaml:"new_traits"`
	QuickLearnerMult     float64                    `yaml:"quick_learner_multiplier"`
	ResilientPenaltyMult float64                    `yaml:"resilient_penalty_multiplier"`
	CharmingBonus        float64                    `yaml:"charming_bonus"`
}

// RoomConfig defines a home room.
type RoomConfig struct {
	Name      string   `yaml:"name"`
	Unlocked  bool     `yaml:"unlocked"`
	Connects  []string `yaml:"connects"`
	Wallpaper string   `yaml:"wallpaper"`
	Flooring  string   `yaml:"flooring"`
}

// PeriodConfig is a slice of the day in [Start, End).
type PeriodConfig struct {
	Name  string  `yaml:"name"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// FestivalConfig is a calendar-fixed event.
type FestivalConfig struct {
	Name   string `yaml:"name"`
	Season string `yaml:"season"`
	Day    int    `yaml:"day"`
}

// SpontaneousEventConfig is a random daily event.
type SpontaneousEventConfig struct {
	Name   string  `yaml:"name"`
	Chance float64 `yaml:"chance"`
}

// WorldConfig holds clock, calendar, weather and event definitions.
type WorldConfig struct {
	DayLengthSec        float64                  `yaml:"day_length_sec"`
	StartTime           float64                  `yaml:"start_time"` // Fraction of the day
	Periods             []PeriodConfig           `yaml:"periods"`
	DaysPerSeason       int                      `yaml:"days_per_season"`
	Seasons             []string                 `yaml:"seasons"`
	Weathers            []string                 `yaml:"weathers"`
	WeatherChangeChance float64                  `yaml:"weather_change_chance"`
	Festivals           []FestivalConfig         `yaml:"festivals"`
	Spontaneous         []SpontaneousEventConfig `yaml:"spontaneous"`
}

// ExpeditionConfig holds the encounter table for wilderness expeditions.
type ExpeditionConfig struct {
	PathLength  int              `yaml:"path_length"`
	MinEnergy   float64          `yaml:"min_energy"`
	Energy      float64          `yaml:"energy"`        // Spent on setting out
	RollSides   int              `yaml:"roll_sides"`    // Skill checks roll in [0, roll_sides)
	XPSkill     string           `yaml:"xp_skill"`      // Skill trained by outcome XP
	XPSkillRate float64          `yaml:"xp_skill_rate"` // Skill gained per XP
	Nodes       []ExpeditionNode `yaml:"nodes"`
}

// ExpeditionNode is one encounter. Empty season or weather lists match any.
type ExpeditionNode struct {
	ID          string             `yaml:"id"`
	Description string             `yaml:"description"`
	Seasons     []string           `yaml:"seasons"`
	Weather     []string           `yaml:"weather"`
	Weight      float64            `yaml:"weight"` // Zero means 1
	Choices     []ExpeditionChoice `yaml:"choices"`
}

// SelectionWeight is the node's relative draw chance.
func (n ExpeditionNode) SelectionWeight() float64 {
	if n.Weight <= 0 {
		return 1
	}
	return n.Weight
}

// ExpeditionChoice is an option at a node. Without a skill it always succeeds.
type ExpeditionChoice struct {
	Text       string            `yaml:"text"`
	Skill      string            `yaml:"skill"`
	Difficulty float64           `yaml:"difficulty"`
	Success    ExpeditionOutcome `yaml:"success"`
	Failure    ExpeditionOutcome `yaml:"failure"`
}

// ExpeditionOutcome is what a resolved choice gives or costs.
type ExpeditionOutcome struct {
	Text      string         `yaml:"text"`
	Items     map[string]int `yaml:"items"`
	Hunger    float64        `yaml:"hunger"`
	Energy    float64        `yaml:"energy"`
	Happiness float64        `yaml:"happiness"`
	XP        float64        `yaml:"xp"`
}

// CaretakerConfig drives the autopilot used by headless runs.
type CaretakerConfig struct {
	ActionIntervalSec float64 `yaml:"action_interval_sec"`
	FeedBelow         float64 `yaml:"feed_below"`
	RestBelow         float64 `yaml:"rest_below"`
	WorkChance        float64 `yaml:"work_chance"`
	WorkSuccessChance float64 `yaml:"work_success_chance"`
	RetireOnLegacy    bool    `yaml:"retire_on_legacy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogStats        bool             `yaml:"log_stats"`
	BookmarkHistory int              `yaml:"bookmark_history"` // Days of history for bookmark detection
	PerfWindow      int              `yaml:"perf_window"`      // Steps averaged per perf sample
	HallOfFame      HallOfFameConfig `yaml:"hall_of_fame"`
}

// HallOfFameConfig controls which retired pets are remembered.
type HallOfFameConfig struct {
	Size            int     `yaml:"size"`
	MinDays         int     `yaml:"min_days"`
	HappinessWeight float64 `yaml:"happiness_weight"`
	CareerWeight    float64 `yaml:"career_weight"`
	QuestWeight     float64 `yaml:"quest_weight"`
	CraftWeight     float64 `yaml:"craft_weight"`
}

// DerivedConfig holds values computed from the loaded tables.
type DerivedConfig struct {
	MsPerFrame  float64
	CareerIndex map[string]int
	RecipeIndex map[string]int
	NPCIndex    map[string]int
	RoomIndex   map[string]int
	StoryIndex  map[string]int // NPC name -> story quest
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Maps merge key by key, lists are replaced
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived builds lookup indices and validates cross references.
func (c *Config) computeDerived() error {
	if c.Loop.FramesPerSecond <= 0 {
		return fmt.Errorf("loop.frames_per_second must be positive, got %v", c.Loop.FramesPerSecond)
	}
	if c.Genetics.MetabolismNormalizer <= 0 {
		return fmt.Errorf("genetics.metabolism_normalizer must be positive, got %v", c.Genetics.MetabolismNormalizer)
	}
	c.Derived.MsPerFrame = 1000 / c.Loop.FramesPerSecond

	c.Derived.CareerIndex = make(map[string]int, len(c.Careers))
	for i, career := range c.Careers {
		c.Derived.CareerIndex[career.Name] = i
	}

	c.Derived.RecipeIndex = make(map[string]int, len(c.Recipes))
	for i, r := range c.Recipes {
		c.Derived.RecipeIndex[r.Name] = i
	}

	c.Derived.NPCIndex = make(map[string]int, len(c.Relationships.NPCs))
	for i, npc := range c.Relationships.NPCs {
		c.Derived.NPCIndex[npc.Name] = i
	}

	c.Derived.RoomIndex = make(map[string]int, len(c.Rooms))
	for i, room := range c.Rooms {
		c.Derived.RoomIndex[room.Name] = i
	}

	c.Derived.StoryIndex = make(map[string]int, len(c.Quests.Story))
	for i, q := range c.Quests.Story {
		if _, ok := c.Derived.NPCIndex[q.NPC]; !ok {
			return fmt.Errorf("story quest %q references unknown npc %q", q.ID, q.NPC)
		}
		c.Derived.StoryIndex[q.NPC] = i
	}

	for i, lvl := range c.Work.XPThresholds {
		if i > 0 && lvl <= c.Work.XPThresholds[i-1] {
			return fmt.Errorf("work.xp_thresholds must be increasing, got %v", c.Work.XPThresholds)
		}
	}

	for _, node := range c.Expeditions.Nodes {
		if len(node.Choices) == 0 {
			return fmt.Errorf("expedition node %q has no choices", node.ID)
		}
	}
	return nil
}

// Recipe returns the recipe with the given name.
func (c *Config) Recipe(name string) (RecipeConfig, bool) {
	i, ok := c.Derived.RecipeIndex[name]
	if !ok {
		return RecipeConfig{}, false
	}
	return c.Recipes[i], true
}

// Career returns the career with the given name.
func (c *Config) Career(name string) (CareerConfig, bool) {
	i, ok := c.Derived.CareerIndex[name]
	if !ok {
		return CareerConfig{}, false
	}
	return c.Careers[i], true
}

// NPC returns the villager with the given name.
func (c *Config) NPC(name string) (NPCConfig, bool) {
	i, ok := c.Derived.NPCIndex[name]
	if !ok {
		return NPCConfig{}, false
	}
	return c.Relationships.NPCs[i], true
}

// StoryQuestFor returns the story quest offered by an NPC.
func (c *Config) StoryQuestFor(npc string) (StoryQuestConfig, bool) {
	i, ok := c.Derived.StoryIndex[npc]
	if !ok {
		return StoryQuestConfig{}, false
	}
	return c.Quests.Story[i], true
}

// MoodMultiplier returns the skill multiplier for a mood, 1 if unknown.
func (c *Config) MoodMultiplier(mood string) float64 {
	if m, ok := c.Mood.Multipliers[mood]; ok {
		return m
	}
	return 1
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
