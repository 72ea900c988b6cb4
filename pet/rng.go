package pet

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// newSource returns a PCG source seeded from a single value.
func newSource(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// restoreSource rebuilds a PCG from its marshaled state.
func restoreSource(state []byte) (*rand.PCG, error) {
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(state); err != nil {
		return nil, err
	}
	return src, nil
}

// rngReader adapts the pet's RNG to io.Reader so IDs come from the same
// reproducible stream as everything else.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], r.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

func (p *Nadagotchi) newID() string {
	id, err := uuid.NewRandomFromReader(rngReader{p.rng})
	if err != nil {
		// rngReader never fails
		panic(err)
	}
	return id.String()
}
