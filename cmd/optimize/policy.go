// Command optimize tunes the headless caretaker with CMA-ES. Every candidate
// policy raises pets over several seeds; the tuner keeps the one whose pets
// stay happiest while still being fed, rested and busy.
package main

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/nadagotchi/config"
)

// knob is one caretaker setting the tuner may move. The search runs in
// [0,1] per knob; lo and hi map it back to config units.
type knob struct {
	name   string
	lo, hi float64
	field  func(*config.CaretakerConfig) *float64
}

var knobs = []knob{
	{"action_interval_sec", 1, 30, func(c *config.CaretakerConfig) *float64 { return &c.ActionIntervalSec }},
	{"feed_below", 20, 95, func(c *config.CaretakerConfig) *float64 { return &c.FeedBelow }},
	{"rest_below", 10, 80, func(c *config.CaretakerConfig) *float64 { return &c.RestBelow }},
	{"work_chance", 0, 0.6, func(c *config.CaretakerConfig) *float64 { return &c.WorkChance }},
}

// policy is a caretaker config expressed as a point of the search space.
type policy []float64

// policyOf reads the knobs of c as a point in the unit cube.
func policyOf(c config.CaretakerConfig) policy {
	x := make(policy, len(knobs))
	for i, k := range knobs {
		x[i] = unit((*k.field(&c)-k.lo)/(k.hi-k.lo))
	}
	return x
}

// apply writes the policy into c. Coordinates outside [0,1] are clamped,
// and pets always retire once they are legacy-ready so runs see several
// generations.
func (x policy) apply(c *config.CaretakerConfig) {
	c.RetireOnLegacy = true
	for i, k := range knobs {
		*k.field(c) = k.lo + unit(x[i])*(k.hi-k.lo)
	}
}

// caretaker returns the policy applied to a copy of base.
func (x policy) caretaker(base config.CaretakerConfig) config.CaretakerConfig {
	x.apply(&base)
	return base
}

func (x policy) String() string {
	c := x.caretaker(config.CaretakerConfig{})
	parts := make([]string, len(knobs))
	for i, k := range knobs {
		parts[i] = fmt.Sprintf("%s=%.3g", k.name, *k.field(&c))
	}
	return strings.Join(parts, " ")
}

func unit(v float64) float64 { return min(max(v, 0), 1) }
