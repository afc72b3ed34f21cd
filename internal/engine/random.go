package engine

import "math/rand"

// RandomSource supplies the historical-accuracy jitter applied to model
// confidence. It is the single intentional non-determinism point in the
// pipeline; everything else is a pure function of the input text. Tests
// substitute a fixed source to pin outputs.
type RandomSource interface {
	// NextUniform returns a value drawn uniformly from [0.8, 0.95)
	NextUniform() float64
}

// defaultRandomSource draws from the shared math/rand generator, which
// is safe for concurrent use.
type defaultRandomSource struct{}

func (defaultRandomSource) NextUniform() float64 {
	return 0.8 + rand.Float64()*0.15
}

// FixedRandomSource always returns the same value. Intended for tests.
type FixedRandomSource struct {
	Value float64
}

func (f FixedRandomSource) NextUniform() float64 {
	return f.Value
}
