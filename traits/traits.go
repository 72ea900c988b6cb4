// Package traits defines personality archetypes and inheritable legacy traits.
package traits

import (
	"fmt"
	"strings"
)

// Archetype is one of the five personality categories.
type Archetype uint8

const (
	Adventurer Archetype = iota
	Nurturer
	Mischievous
	Intellectual
	Recluse
)

// All lists archetypes in their fixed iteration order.
// Tie resolution depends on this order being stable.
var All = []Archetype{Adventurer, Nurturer, Mischievous, Intellectual, Recluse}

var archetypeNames = [...]string{"Adventurer", "Nurturer", "Mischievous", "Intellectual", "Recluse"}

// String returns the archetype name.
func (a Archetype) String() string {
	if int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return fmt.Sprintf("Archetype(%d)", uint8(a))
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	return int(a) < len(archetypeNames)
}

// ParseArchetype looks up an archetype by name, case-insensitively.
func ParseArchetype(name string) (Archetype, bool) {
	for i, n := range archetypeNames {
		if strings.EqualFold(n, name) {
			return Archetype(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the archetype by name so it can key JSON maps.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid archetype %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an archetype name.
func (a *Archetype) UnmarshalText(b []byte) error {
	v, ok := ParseArchetype(string(b))
	if !ok {
		return fmt.Errorf("unknown archetype %q", string(b))
	}
	*a = v
	return nil
}

// Affinity returns the skill value used to break ties for an archetype.
// Recluse uses the better of resilience and focus.
func (a Archetype) Affinity(skills map[string]float64) float64 {
	switch a {
	case Adventurer:
		return skills["navigation"]
	case Nurturer:
		return skills["empathy"]
	case Mischievous:
		return skills["communication"]
	case Intellectual:
		return skills["logic"]
	case Recluse:
		return max(skills["resilience"], skills["focus"])
	default:
		return 0
	}
}

// LegacyTrait is a set of inherited traits passed between generations.
type LegacyTrait uint32

const (
	QuickLearner    LegacyTrait = 1 << iota // Faster skill gains
	ResilientSpirit                         // Halved hygiene penalty
	Charming                                // Bonus relationship gain
)

var legacyNames = []struct {
	t    LegacyTrait
	name string
}{
	{QuickLearner, "Quick Learner"},
	{ResilientSpirit, "Resilient Spirit"},
	{Charming, "Charming"},
}

// Has checks if the set contains a trait.
func (t LegacyTrait) Has(other LegacyTrait) bool {
	return t&other != 0
}

// Add adds a trait to the set.
func (t LegacyTrait) Add(other LegacyTrait) LegacyTrait {
	return t | other
}

// Remove removes a trait from the set.
func (t LegacyTrait) Remove(other LegacyTrait) LegacyTrait {
	return t &^ other
}

// Each returns the individual traits in the set.
func (t LegacyTrait) Each() []LegacyTrait {
	var out []LegacyTrait
	for _, ln := range legacyNames {
		if t.Has(ln.t) {
			out = append(out, ln.t)
		}
	}
	return out
}

// Names returns human-readable names for the traits in the set.
func (t LegacyTrait) Names() []string {
	var names []string
	for _, ln := range legacyNames {
		if t.Has(ln.t) {
			names = append(names, ln.name)
		}
	}
	return names
}

// ParseLegacyTrait looks up a single trait by display name.
func ParseLegacyTrait(name string) (LegacyTrait, bool) {
	for _, ln := range legacyNames {
		if strings.EqualFold(ln.name, name) {
			return ln.t, true
		}
	}
	return 0, false
}

// LegacyFromNames builds a set from display names, skipping unknown ones.
func LegacyFromNames(names []string) LegacyTrait {
	var t LegacyTrait
	for _, n := range names {
		if lt, ok := ParseLegacyTrait(n); ok {
			t = t.Add(lt)
		}
	}
	return t
}
