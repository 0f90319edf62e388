package noise

import (
	"math"
	"testing"

	"github.com/aquilax/go-perlin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(7)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.037 - 50
		v := p.Noise(x)
		require.GreaterOrEqual(t, v, 0.0, "x=%v", x)
		require.Less(t, v, 1.0, "x=%v", x)
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(42)
	b := NewPerlin(42)
	for _, x := range []float64{0, 0.1, 0.25, 3.7, 1e4} {
		assert.Equal(t, a.Noise(x), b.Noise(x))
		assert.Equal(t, a.Noise(x), a.Noise(x), "repeated query must not drift")
	}
}

func TestPerlinSeedsDiffer(t *testing.T) {
	a := NewPerlin(1)
	b := NewPerlin(2)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Noise(float64(i)) == b.Noise(float64(i)) {
			same++
		}
	}
	assert.Less(t, same, 32)
}

func TestPerlinSmooth(t *testing.T) {
	p := NewPerlin(3)
	const h = 1e-4
	for x := 0.0; x < 20; x += 0.173 {
		assert.InDelta(t, p.Noise(x), p.Noise(x+h), 0.01, "x=%v", x)
	}
}

func TestPerlinSymmetricAndNonFinite(t *testing.T) {
	p := NewPerlin(5)
	assert.Equal(t, p.Noise(2.5), p.Noise(-2.5))
	assert.Equal(t, 0.0, p.Noise(math.NaN()))
	assert.Equal(t, 0.0, p.Noise(math.Inf(1)))
}

func TestPerlinDetailFallbacks(t *testing.T) {
	p := NewPerlinDetail(9, 0, 4)
	assert.Equal(t, 1, p.octaves)
	assert.Equal(t, DefaultFalloff, p.falloff)
	assert.Equal(t, peakOctave, p.peak)
}

func TestPerlinIntegerCoordinatesVary(t *testing.T) {
	p := NewPerlin(11)
	seen := map[float64]bool{}
	for i := 0; i < 16; i++ {
		seen[p.Noise(float64(i))] = true
	}
	assert.Greater(t, len(seen), 8)
}

func TestPerlinRescalesGradientOctaves(t *testing.T) {
	p := NewPerlinDetail(13, 3, 0.5)
	ref := perlin.NewPerlin(2, 2, 3, 13)
	for _, x := range []float64{0, 0.4, 2.25, 17.9} {
		want := 0.5 + 0.5*ref.Noise1D(x+latticeOffset)/p.peak
		assert.InDelta(t, want, p.Noise(x), 1e-12, "x=%v", x)
	}
}

func TestAdapters(t *testing.T) {
	var src Source = Func(func(x float64) float64 { return x / 10 })
	assert.InDelta(t, 0.3, src.Noise(3), 1e-12)

	src = Constant(0.25)
	assert.Equal(t, 0.25, src.Noise(99))
}
