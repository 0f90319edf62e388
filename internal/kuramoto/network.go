package kuramoto

import (
	"fmt"
	"math"

	"github.com/san-kum/kuramoto/internal/noise"
)

const twoPi = 2 * math.Pi

// Mode tags the coupling representation chosen at construction.
type Mode int

const (
	Pairwise Mode = iota
	MeanField
)

func (m Mode) String() string {
	switch m {
	case Pairwise:
		return "pairwise"
	case MeanField:
		return "mean-field"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Network is a set of coupled phase oscillators advanced by RK4.
type Network struct {
	size       int
	time       float64
	stepSize   float64
	noiseLevel float64

	naturalFrequency []float64
	phase            []float64
	previousPhase    []float64
	velocity         []float64
	acceleration     []float64

	coupling coupling
	source   noise.Source
	sin      func(float64) float64

	onDispose func()
	disposed  bool
}

// Snapshot is a copy of the observable network state between steps.
type Snapshot struct {
	Time         float64
	Phase        []float64
	Velocity     []float64
	Acceleration []float64
	Order        float64
	AveragePhase float64
}

// New creates a network of size oscillators with uniform coupling strength.
// Initial phases and natural frequencies are drawn from the noise source.
// Step size is clamped into [MinStepSize, MaxStepSize].
func New(size int, strength float64, opts ...Option) (*Network, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, size)
	}
	if !finite(strength) {
		return nil, fmt.Errorf("%w: coupling strength must be finite", ErrInvalidArgument)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.stepSize) || math.IsNaN(o.noiseLevel) {
		return nil, fmt.Errorf("%w: step size and noise level must be numbers", ErrInvalidArgument)
	}
	if !finite(o.seedIncrement) {
		return nil, fmt.Errorf("%w: seed increment must be finite", ErrInvalidArgument)
	}
	o.stepSize = clamp(o.stepSize, MinStepSize, MaxStepSize)

	n := newNetwork(size, o)
	n.initializeUniformCoupling(strength, o.meanField, o.normalize)
	n.initializePhaseAndFrequency(o.seedIncrement)

	if o.arranged {
		if err := n.SetCoupling(o.arrangement, strength); err != nil {
			return nil, err
		}
	}
	n.coupling.prepare(n.phase)
	return n, nil
}

// NewFromState creates a pairwise network from caller-supplied arrays.
// The arrays are copied. Step size must be positive and is not clamped.
func NewFromState(phase, naturalFrequency []float64, coupling [][]float64, opts ...Option) (*Network, error) {
	size := len(naturalFrequency)
	if err := validateState(phase, naturalFrequency); err != nil {
		return nil, err
	}
	if len(coupling) != size {
		return nil, fmt.Errorf("%w: coupling has %d rows, want %d", ErrDimensionMismatch, len(coupling), size)
	}
	for i, row := range coupling {
		if len(row) != size {
			return nil, fmt.Errorf("%w: coupling row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), size)
		}
		if !allFinite(row) {
			return nil, fmt.Errorf("%w: coupling row %d is not finite", ErrInvalidArgument, i)
		}
	}

	o, err := explicitOptions(opts)
	if err != nil {
		return nil, err
	}

	n := newNetwork(size, o)
	copy(n.phase, phase)
	copy(n.previousPhase, phase)
	copy(n.naturalFrequency, naturalFrequency)

	m := newMatrix(size)
	for i := range coupling {
		copy(m[i], coupling[i])
	}
	n.coupling = &pairwiseCoupling{matrix: m, normalize: o.normalize}
	return n, nil
}

// NewMeanFieldFromState creates a mean-field network from caller-supplied
// phases and frequencies with a scalar coupling strength.
func NewMeanFieldFromState(phase, naturalFrequency []float64, strength float64, opts ...Option) (*Network, error) {
	if err := validateState(phase, naturalFrequency); err != nil {
		return nil, err
	}
	if !finite(strength) {
		return nil, fmt.Errorf("%w: coupling strength must be finite", ErrInvalidArgument)
	}

	o, err := explicitOptions(opts)
	if err != nil {
		return nil, err
	}

	n := newNetwork(len(naturalFrequency), o)
	copy(n.phase, phase)
	copy(n.previousPhase, phase)
	copy(n.naturalFrequency, naturalFrequency)
	n.coupling = &meanFieldCoupling{strength: strength}
	n.coupling.prepare(n.phase)
	return n, nil
}

func explicitOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.stepSize > 0) || math.IsInf(o.stepSize, 0) {
		return o, fmt.Errorf("%w: step size must be positive, got %v", ErrInvalidArgument, o.stepSize)
	}
	if math.IsNaN(o.noiseLevel) {
		return o, fmt.Errorf("%w: noise level must be a number", ErrInvalidArgument)
	}
	return o, nil
}

func validateState(phase, naturalFrequency []float64) error {
	if len(naturalFrequency) == 0 {
		return fmt.Errorf("%w: network needs at least one oscillator", ErrInvalidArgument)
	}
	if len(phase) != len(naturalFrequency) {
		return fmt.Errorf("%w: %d phases for %d frequencies", ErrDimensionMismatch, len(phase), len(naturalFrequency))
	}
	if !allFinite(phase) || !allFinite(naturalFrequency) {
		return fmt.Errorf("%w: phases and frequencies must be finite", ErrInvalidArgument)
	}
	return nil
}

func newNetwork(size int, o options) *Network {
	src := o.source
	if src == nil {
		src = noise.NewPerlin(0)
	}
	sin := math.Sin
	if o.trig != nil {
		sin = o.trig.Sin
	}
	return &Network{
		size:             size,
		stepSize:         o.stepSize,
		noiseLevel:       clamp(o.noiseLevel, 0, 1),
		naturalFrequency: make([]float64, size),
		phase:            make([]float64, size),
		previousPhase:    make([]float64, size),
		velocity:         make([]float64, size),
		acceleration:     make([]float64, size),
		source:           src,
		sin:              sin,
		onDispose:        o.onDispose,
	}
}

// initializePhaseAndFrequency seeds phases and frequencies from two noise
// coordinate streams, both starting at 0 and advancing by delta.
func (n *Network) initializePhaseAndFrequency(delta float64) {
	x := 0.0
	for i := 0; i < n.size; i++ {
		n.naturalFrequency[i] = twoPi * n.source.Noise(x)
		x += delta
	}
	x = 0.0
	for i := 0; i < n.size; i++ {
		n.phase[i] = twoPi * n.source.Noise(x)
		x += delta
	}
	copy(n.previousPhase, n.phase)
}

func (n *Network) Size() int              { return n.size }
func (n *Network) Time() float64          { return n.time }
func (n *Network) StepSize() float64      { return n.stepSize }
func (n *Network) NoiseLevel() float64    { return n.noiseLevel }
func (n *Network) Mode() Mode             { return n.coupling.mode() }
func (n *Network) Phase(i int) float64    { return n.phase[i] }
func (n *Network) Velocity(i int) float64 { return n.velocity[i] }

func (n *Network) Phases() []float64             { return cloneSlice(n.phase) }
func (n *Network) PreviousPhases() []float64     { return cloneSlice(n.previousPhase) }
func (n *Network) Velocities() []float64         { return cloneSlice(n.velocity) }
func (n *Network) Accelerations() []float64      { return cloneSlice(n.acceleration) }
func (n *Network) NaturalFrequencies() []float64 { return cloneSlice(n.naturalFrequency) }

// Snapshot copies the current state together with its order parameter.
func (n *Network) Snapshot() Snapshot {
	r, psi := order(n.phase)
	return Snapshot{
		Time:         n.time,
		Phase:        n.Phases(),
		Velocity:     n.Velocities(),
		Acceleration: n.Accelerations(),
		Order:        r,
		AveragePhase: psi,
	}
}

// IsValid reports whether every phase is finite.
func (n *Network) IsValid() bool {
	return allFinite(n.phase)
}

// Close releases the network. It holds no external resources; the dispose
// hook, if any, runs on the first call only.
func (n *Network) Close() error {
	if n.disposed {
		return nil
	}
	n.disposed = true
	if n.onDispose != nil {
		n.onDispose()
	}
	return nil
}

func cloneSlice(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if !finite(v) {
			return false
		}
	}
	return true
}
