package pet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/traits"
	"github.com/pthm-cable/nadagotchi/world"
)

func pathCounts(p *Nadagotchi, season, weather string, n int) map[string]int {
	counts := make(map[string]int)
	for _, node := range p.GeneratePath(season, weather, n) {
		counts[node.ID]++
	}
	return counts
}

func TestGeneratePathFilters(t *testing.T) {
	tests := []struct {
		season, weather string
		want, never     []string
	}{
		{"Summer", "Sunny", []string{"berry_bush", "old_oak"}, []string{"frozen_pond", "muddy_slope"}},
		{"Winter", "Sunny", []string{"frozen_pond"}, []string{"muddy_slope"}},
		{"Spring", "Stormy", []string{"muddy_slope"}, []string{"frozen_pond"}},
	}
	for _, tt := range tests {
		t.Run(tt.season+"/"+tt.weather, func(t *testing.T) {
			p := newSocialPet(t, &Snapshot{})
			counts := pathCounts(p, tt.season, tt.weather, 500)
			for _, id := range tt.want {
				assert.Positive(t, counts[id], id)
			}
			for _, id := range tt.never {
				assert.Zero(t, counts[id], id)
			}
		})
	}
}

func TestGeneratePathWeights(t *testing.T) {
	p := newSocialPet(t, &Snapshot{})
	counts := pathCounts(p, "Summer", "Sunny", 2000)

	assert.Greater(t, counts["berry_bush"], 2*counts["ancient_ruins"])
	assert.Positive(t, counts["ancient_ruins"])
}

func TestGeneratePathEmpty(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Expeditions.Nodes = []config.ExpeditionNode{{
		ID:      "frozen_pond",
		Seasons: []string{"Winter"},
		Choices: []config.ExpeditionChoice{{Text: "Look"}},
	}}
	p := FromSnapshot(&Snapshot{Mood: "neutral"}, Options{Config: cfg, Seed: 1})

	assert.Nil(t, p.GeneratePath("Summer", "Sunny", 3))
	assert.Nil(t, p.GeneratePath("Winter", "Sunny", 0))
	assert.Len(t, p.GeneratePath("Winter", "Sunny", 3), 3)
}

func TestResolveChoice(t *testing.T) {
	node := config.ExpeditionNode{ID: "test_node"}
	win := config.ExpeditionOutcome{Text: "Win", Items: map[string]int{"Berries": 2}, XP: 5}
	lose := config.ExpeditionOutcome{Text: "Lose", Happiness: -2, Energy: -5, XP: 1}

	tests := []struct {
		name      string
		skill     float64
		choice    config.ExpeditionChoice
		success   bool
		berries   int
		happiness float64
		energy    float64
		xp        float64
	}{
		{
			name:    "skill clears any roll",
			skill:   10,
			choice:  config.ExpeditionChoice{Skill: "navigation", Difficulty: 5, Success: win, Failure: lose},
			success: true, berries: 2, happiness: 50, energy: 100, xp: 5,
		},
		{
			name:    "no roll reaches the difficulty",
			skill:   0,
			choice:  config.ExpeditionChoice{Skill: "navigation", Difficulty: 20, Success: win, Failure: lose},
			success: false, happiness: 48, energy: 95, xp: 1,
		},
		{
			name:    "unchecked choice always succeeds",
			choice:  config.ExpeditionChoice{Success: win},
			success: true, berries: 2, happiness: 50, energy: 100, xp: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordSink{}
			p := FromSnapshot(&Snapshot{
				Stats:             &Stats{Hunger: 100, Energy: 100, Happiness: 50},
				Mood:              "neutral",
				Skills:            map[string]float64{"navigation": tt.skill},
				DominantArchetype: archetypePtr(traits.Nurturer),
			}, Options{Config: loadConfig(t), Seed: 4, Sink: sink})
			rate := p.cfg.Expeditions.XPSkillRate

			r := p.ResolveChoice(node, tt.choice)

			assert.Equal(t, tt.success, r.Success)
			assert.Equal(t, "test_node", r.Node)
			assert.Equal(t, tt.berries, p.ItemCount("Berries"))
			assert.Equal(t, tt.happiness, p.Stats().Happiness)
			assert.Equal(t, tt.energy, p.Stats().Energy)
			assert.InDelta(t, tt.skill+tt.xp*rate, p.Skill("navigation"), 1e-9)
			assert.Equal(t, r.Outcome.Text, p.Journal()[len(p.Journal())-1].Text)
			assert.Equal(t, 1, sink.count(EventExpeditionChoice))
			if tt.choice.Skill == "" {
				assert.Zero(t, r.Total)
			} else {
				assert.GreaterOrEqual(t, r.Total, tt.skill)
			}
		})
	}
}

func TestResolveChoiceDiscoversRecipes(t *testing.T) {
	p := newSocialPet(t, &Snapshot{Skills: map[string]float64{"resilience": 10}})
	path := p.GeneratePath("Winter", "Sunny", 200)

	var pond config.ExpeditionNode
	for _, node := range path {
		if node.ID == "frozen_pond" {
			pond = node
		}
	}
	require.NotEmpty(t, pond.Choices, "no frozen pond drawn")

	r := p.ResolveChoice(pond, pond.Choices[1])
	require.True(t, r.Success)
	assert.Equal(t, 1, p.ItemCount("Frostbloom"))
	assert.True(t, p.KnowsRecipe("Metabolism-Slowing Tonic"))
}

func TestExpedition(t *testing.T) {
	sink := &recordSink{}
	p := FromSnapshot(&Snapshot{
		Stats:             &Stats{Hunger: 100, Energy: 100, Happiness: 50},
		Mood:              "neutral",
		Environment:       world.State{Season: "Autumn", Weather: "Rainy"},
		DominantArchetype: archetypePtr(traits.Nurturer),
	}, Options{Config: loadConfig(t), Seed: 9, Sink: sink})
	ec := p.cfg.Expeditions
	journal := len(p.Journal())

	p.HandleAction(Expedition{})

	assert.Equal(t, ec.PathLength, sink.count(EventExpeditionChoice))
	assert.Equal(t, 1, sink.count(EventActionPerformed))
	assert.LessOrEqual(t, p.Stats().Energy, 100-ec.Energy)
	assert.Greater(t, p.Skill("navigation"), 0.0)
	// Set off, one line per node, then home.
	assert.Len(t, p.Journal(), journal+ec.PathLength+2)
}

func TestExpeditionEnergyGate(t *testing.T) {
	sink := &recordSink{}
	p := FromSnapshot(&Snapshot{
		Stats:             &Stats{Hunger: 100, Energy: 10, Happiness: 50},
		Mood:              "neutral",
		DominantArchetype: archetypePtr(traits.Nurturer),
	}, Options{Config: loadConfig(t), Seed: 9, Sink: sink})

	assert.Nil(t, p.Expedition())
	assert.Equal(t, 10.0, p.Stats().Energy)
	assert.Equal(t, 1, sink.count(EventActionRejected))
	assert.Zero(t, sink.count(EventExpeditionChoice))
}

func TestBestChoice(t *testing.T) {
	p := newSocialPet(t, &Snapshot{Skills: map[string]float64{"focus": 3}})
	node := config.ExpeditionNode{Choices: []config.ExpeditionChoice{
		{Text: "Search", Skill: "navigation", Difficulty: 5},
		{Text: "Climb", Skill: "focus", Difficulty: 4},
		{Text: "Leave"},
	}}

	assert.Equal(t, "Climb", p.bestChoice(node).Text)
}
