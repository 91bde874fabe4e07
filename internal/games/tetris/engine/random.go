package engine

import "math/rand"

// Source is the random source the engine draws shapes from.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source. Equal seeds give equal spawn sequences.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomShape draws a shape uniformly and independently of previous draws.
func randomShape(src Source) Shape {
	return Shapes[src.Intn(ShapeCount)]
}
