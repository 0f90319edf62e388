package kuramoto

import "github.com/san-kum/kuramoto/internal/noise"

const (
	DefaultStepSize = 0.05
	MinStepSize     = 0.001
	MaxStepSize     = 1.0

	// DefaultSeedIncrement is the noise coordinate spacing between
	// consecutive oscillators when phases and frequencies are generated.
	DefaultSeedIncrement = 0.1
)

type options struct {
	source        noise.Source
	noiseLevel    float64
	stepSize      float64
	normalize     bool
	seedIncrement float64
	meanField     bool
	arrangement   Arrangement
	arranged      bool
	trig          *TrigTable
	onDispose     func()
}

func defaultOptions() options {
	return options{
		stepSize:      DefaultStepSize,
		seedIncrement: DefaultSeedIncrement,
	}
}

// Option configures a Network at construction.
type Option func(*options)

// WithNoiseSource injects the noise source used for seeding and per-step
// forcing. Defaults to a [noise.Perlin] with seed 0.
func WithNoiseSource(src noise.Source) Option {
	return func(o *options) { o.source = src }
}

// WithNoiseLevel scales the per-step noise term. Clamped into [0, 1].
func WithNoiseLevel(level float64) Option {
	return func(o *options) { o.noiseLevel = level }
}

// WithStepSize sets the fixed integration step.
func WithStepSize(dt float64) Option {
	return func(o *options) { o.stepSize = dt }
}

// WithNormalization divides the pairwise coupling sum by the network size.
func WithNormalization(on bool) Option {
	return func(o *options) { o.normalize = on }
}

// WithSeedIncrement sets the noise coordinate spacing used when generating
// initial phases and frequencies (0.1 for continuous coordinates, 1 for
// index coordinates).
func WithSeedIncrement(delta float64) Option {
	return func(o *options) { o.seedIncrement = delta }
}

// WithMeanField selects the mean-field coupling representation for generated
// networks.
func WithMeanField() Option {
	return func(o *options) { o.meanField = true }
}

// WithArrangement applies a topology after the uniform coupling is set up.
func WithArrangement(a Arrangement) Option {
	return func(o *options) {
		o.arrangement = a
		o.arranged = true
	}
}

// WithFastTrig evaluates the coupling sine through a lookup table.
func WithFastTrig(t *TrigTable) Option {
	return func(o *options) { o.trig = t }
}

// WithOnDispose registers a hook invoked once by Close.
func WithOnDispose(fn func()) Option {
	return func(o *options) { o.onDispose = fn }
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
