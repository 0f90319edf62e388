package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	DefaultOctaves = 4
	DefaultFalloff = 0.5

	// octaveFrequency is the coordinate multiplier between octaves.
	octaveFrequency = 2
	// latticeOffset moves integer coordinates off the gradient lattice, where
	// every octave is zero.
	latticeOffset = 0.6180339887498949
	// peakOctave bounds the magnitude of a single gradient octave.
	peakOctave = 0.5
)

// Perlin is smooth 1-D gradient noise summed over octaves. The gradient table
// is drawn once from the seed, so Noise is a pure function afterwards and safe
// for concurrent reads.
type Perlin struct {
	gen     *perlin.Perlin
	octaves int
	falloff float64
	peak    float64
}

// NewPerlin builds a source with DefaultOctaves and DefaultFalloff.
func NewPerlin(seed int64) *Perlin {
	return NewPerlinDetail(seed, DefaultOctaves, DefaultFalloff)
}

// NewPerlinDetail builds a source with the given octave count and per-octave
// amplitude falloff. A falloff outside (0, 1) falls back to DefaultFalloff.
func NewPerlinDetail(seed int64, octaves int, falloff float64) *Perlin {
	if octaves < 1 {
		octaves = 1
	}
	if !(falloff > 0) || falloff >= 1 {
		falloff = DefaultFalloff
	}

	peak, amp := 0.0, 1.0
	for o := 0; o < octaves; o++ {
		peak += peakOctave * amp
		amp *= falloff
	}

	return &Perlin{
		gen:     perlin.NewPerlin(1/falloff, octaveFrequency, int32(octaves), seed),
		octaves: octaves,
		falloff: falloff,
		peak:    peak,
	}
}

// Noise returns the octave sum at |x| rescaled into [0, 1). Non-finite input
// yields 0.
func (p *Perlin) Noise(x float64) float64 {
	x = math.Abs(x)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	v := 0.5 + 0.5*p.gen.Noise1D(x+latticeOffset)/p.peak
	switch {
	case v < 0:
		return 0
	case v >= 1:
		return math.Nextafter(1, 0)
	}
	return v
}
