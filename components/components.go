// Package components defines ECS components for located world objects.
package components

// Debris kinds.
const (
	KindWeed      = "weed"
	KindPoop      = "poop"
	KindRockSmall = "rock_small"
	KindBerries   = "Berries"
	KindSticks    = "Sticks"
)

// Debris identifies a cleanliness-affecting object.
type Debris struct {
	ID         string
	Kind       string
	CreatedDay int
	Seq        uint64 // Insertion order, keeps listings stable across reloads
}

// Placement is where a debris entity sits. X and Y are fractions of the
// location's width and height.
type Placement struct {
	Location string
	X, Y     float64
}

// DistanceSq returns the squared distance between two placements in the same location.
func (p Placement) DistanceSq(o Placement) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}
