package traits

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseArchetype(t *testing.T) {
	tests := []struct {
		in   string
		want Archetype
		ok   bool
	}{
		{"Adventurer", Adventurer, true},
		{"recluse", Recluse, true},
		{"INTELLECTUAL", Intellectual, true},
		{"Wizard", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseArchetype(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseArchetype(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAffinity(t *testing.T) {
	skills := map[string]float64{
		"navigation":    1,
		"empathy":       2,
		"communication": 3,
		"logic":         4,
		"resilience":    5,
		"focus":         6,
	}
	tests := []struct {
		a    Archetype
		want float64
	}{
		{Adventurer, 1},
		{Nurturer, 2},
		{Mischievous, 3},
		{Intellectual, 4},
		{Recluse, 6},
	}
	for _, tt := range tests {
		if got := tt.a.Affinity(skills); got != tt.want {
			t.Errorf("%v.Affinity() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestArchetypeMapKeysJSON(t *testing.T) {
	points := map[Archetype]float64{Adventurer: 10, Recluse: 3}
	data, err := json.Marshal(points)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"Adventurer":10,"Recluse":3}` {
		t.Errorf("json = %s", data)
	}

	var back map[Archetype]float64
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, points) {
		t.Errorf("round trip = %v, want %v", back, points)
	}
}

func TestLegacyTraitSet(t *testing.T) {
	var set LegacyTrait
	set = set.Add(QuickLearner).Add(Charming)

	if !set.Has(QuickLearner) || !set.Has(Charming) {
		t.Errorf("set %b missing added traits", set)
	}
	if set.Has(ResilientSpirit) {
		t.Error("set should not contain ResilientSpirit")
	}

	set = set.Remove(QuickLearner)
	if set.Has(QuickLearner) {
		t.Error("QuickLearner should be removed")
	}

	got := LegacyFromNames([]string{"Resilient Spirit", "charming", "Bogus"}).Names()
	want := []string{"Resilient Spirit", "Charming"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
