package common

import "math/rand/v2"

// Random is the random source consumed by the boss systems.
type Random interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntRange returns a uniform integer in [a, b].
	IntRange(a, b int) int
	// Bool returns a uniform boolean.
	Bool() bool
}

type seededRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random backed by a PCG generator seeded with seed.
func NewRandom(seed uint64) Random {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRandom) Float64() float64 {
	return s.r.Float64()
}

func (s *seededRandom) IntRange(a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + s.r.IntN(b-a+1)
}

func (s *seededRandom) Bool() bool {
	return s.r.IntN(2) == 1
}
