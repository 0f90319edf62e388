// Package noise provides deterministic scalar noise sources used to seed
// oscillator networks and to drive their stochastic forcing.
//
// A [Source] must be a pure function of its coordinate: the same input always
// yields the same value in [0, 1). Stepping a network is reproducible only
// when its source is.
package noise

//go:generate mockgen -destination "../kuramoto/mock_noise_test.go" -package kuramoto -write_package_comment=false github.com/san-kum/kuramoto/internal/noise Source

// Source maps a coordinate to a value in [0, 1).
type Source interface {
	Noise(x float64) float64
}

// Func adapts a plain function to Source.
type Func func(x float64) float64

func (f Func) Noise(x float64) float64 { return f(x) }

// Constant returns v for every coordinate.
type Constant float64

func (c Constant) Noise(float64) float64 { return float64(c) }
