package kuramoto

import (
	"math"
	"testing"

	"github.com/san-kum/kuramoto/internal/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func allToAll(n int, k float64) [][]float64 {
	m := newMatrix(n)
	for i := range m {
		for j := range m[i] {
			if i != j {
				m[i][j] = k
			}
		}
	}
	return m
}

func TestStepAdvancesTimeByStepSize(t *testing.T) {
	net, err := NewFromState([]float64{0, 1}, []float64{1, 2}, allToAll(2, 1), WithStepSize(0.05))
	require.NoError(t, err)

	net.Step()
	assert.Equal(t, 0.05, net.Time())

	require.NoError(t, net.StepN(3))
	assert.InDelta(t, 0.2, net.Time(), 1e-12)

	require.NoError(t, net.StepN(0))
	assert.InDelta(t, 0.2, net.Time(), 1e-12)

	assert.ErrorIs(t, net.StepN(-1), ErrInvalidArgument)
}

func TestZeroCouplingEvolvesByNaturalFrequency(t *testing.T) {
	phase0 := []float64{0.1, 1.3, 2.9, 5.0}
	freq := []float64{0.5, 1.0, 1.5, 2.0}
	const h = 0.01
	const steps = 250

	net, err := NewFromState(phase0, freq, zeroMatrix(4), WithStepSize(h))
	require.NoError(t, err)
	require.NoError(t, net.StepN(steps))

	elapsed := net.Time()
	assert.InDelta(t, steps*h, elapsed, 1e-9)
	for i := range phase0 {
		want := phase0[i] + freq[i]*elapsed
		assert.Less(t, angularDistance(want, net.Phase(i)), 1e-9, "oscillator %d", i)
		assert.InDelta(t, freq[i], net.Velocity(i), 1e-9)
		assert.InDelta(t, 0, net.Accelerations()[i], 1e-6)
		assert.GreaterOrEqual(t, net.Phase(i), 0.0)
		assert.Less(t, net.Phase(i), twoPi)
	}
}

func TestFirstStepAcceleration(t *testing.T) {
	net, err := NewFromState([]float64{0}, []float64{2}, zeroMatrix(1), WithStepSize(0.1))
	require.NoError(t, err)

	net.Step()
	assert.InDelta(t, 2, net.Velocity(0), 1e-12)
	assert.InDelta(t, 20, net.Accelerations()[0], 1e-9)
	assert.Equal(t, []float64{0}, net.PreviousPhases())
}

func TestThreeOscillatorsPullTogether(t *testing.T) {
	net, err := NewFromState(
		[]float64{0, 1, 2},
		[]float64{1, 1, 1},
		allToAll(3, 0.5),
		WithStepSize(0.05),
	)
	require.NoError(t, err)
	before := net.OrderParameter()

	net.Step()

	assert.Equal(t, 0.05, net.Time())
	p := net.Phases()
	assert.Less(t, p[2]-p[0], 2.0)
	assert.Less(t, p[1]-p[0], 1.0)
	assert.Less(t, p[2]-p[1], 1.0)
	assert.Greater(t, net.OrderParameter(), before)
}

func TestSingleOscillator(t *testing.T) {
	net, err := New(1, 3.0,
		WithNoiseSource(noise.Constant(0.5)),
		WithNoiseLevel(0.4),
		WithStepSize(0.1),
	)
	require.NoError(t, err)
	require.NoError(t, net.SetCoupling(BoxBi, 2))

	omega := net.NaturalFrequencies()[0]
	start := net.Phase(0)
	for i := 0; i < 20; i++ {
		net.Step()
		assert.InDelta(t, 1, net.OrderParameter(), 1e-12)
		assert.InDelta(t, omega+0.2, net.Velocity(0), 1e-9)
	}
	want := start + (omega+0.2)*net.Time()
	assert.Less(t, angularDistance(want, net.Phase(0)), 1e-9)
}

func TestNoiseSampledOncePerStepAtStepTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	gomock.InOrder(
		src.EXPECT().Noise(0.0).Return(0.5),
		src.EXPECT().Noise(0.1).Return(0.25),
		src.EXPECT().Noise(0.2).Return(0.0),
	)

	net, err := NewFromState(
		[]float64{0, 0},
		[]float64{1, 3},
		zeroMatrix(2),
		WithNoiseSource(src),
		WithNoiseLevel(1),
		WithStepSize(0.1),
	)
	require.NoError(t, err)

	net.Step()
	assert.InDelta(t, 1.5, net.Velocity(0), 1e-12)
	assert.InDelta(t, 3.5, net.Velocity(1), 1e-12)

	net.Step()
	assert.InDelta(t, 1.25, net.Velocity(0), 1e-12)

	net.Step()
	assert.InDelta(t, 3.0, net.Velocity(1), 1e-12)
}

func TestDerivativePairwise(t *testing.T) {
	k := [][]float64{
		{0, 0.5, 2},
		{1, 0, 0},
		{0, 0, 0},
	}
	phase := []float64{0.3, 1.1, -0.4}
	net, err := NewFromState(phase, []float64{1, 2, 3}, k)
	require.NoError(t, err)

	want := 1 + 0.1 + 0.5*math.Sin(1.1-0.5) + 2*math.Sin(-0.4-0.5)
	assert.InDelta(t, want, net.Derivative(0, 0.2, 0.1), 1e-12)
	assert.InDelta(t, 3.0, net.Derivative(2, 0, 0), 1e-12)

	normalized, err := NewFromState(phase, []float64{1, 2, 3}, k, WithNormalization(true))
	require.NoError(t, err)
	want = 1 + (0.5*math.Sin(1.1-0.3)+2*math.Sin(-0.4-0.3))/3
	assert.InDelta(t, want, normalized.Derivative(0, 0, 0), 1e-12)
}

func TestRK4StageWeights(t *testing.T) {
	// Two oscillators, one coupling edge: check against a hand-rolled RK4.
	const h, k = 0.2, 1.5
	theta := []float64{0.4, 2.0}
	omega := []float64{1.0, 0.3}

	net, err := NewFromState(theta, omega, [][]float64{{0, k}, {0, 0}}, WithStepSize(h))
	require.NoError(t, err)
	net.Step()

	f := func(inc float64) float64 { return omega[0] + k*math.Sin(theta[1]-(theta[0]+inc)) }
	k1 := h * f(0)
	k2 := h * f(k1/2)
	k3 := h * f(k2/2)
	k4 := h * f(k3)
	want := theta[0] + (k1+2*k2+2*k3+k4)/6

	assert.InDelta(t, want, net.Phase(0), 1e-12)
	assert.InDelta(t, theta[1]+omega[1]*h, net.Phase(1), 1e-12)
}

func TestFrozenContextWithinStep(t *testing.T) {
	// Oscillator 1 reads oscillator 0; updating 0 first must not leak into 1.
	const h = 0.5
	theta := []float64{0, 1}
	forward, err := NewFromState(theta, []float64{4, 0}, [][]float64{{0, 0}, {1, 0}}, WithStepSize(h))
	require.NoError(t, err)
	forward.Step()

	f := func(inc float64) float64 { return math.Sin(theta[0] - (theta[1] + inc)) }
	k1 := h * f(0)
	k2 := h * f(k1/2)
	k3 := h * f(k2/2)
	k4 := h * f(k3)
	assert.InDelta(t, wrapPhase(theta[1]+(k1+2*k2+2*k3+k4)/6), forward.Phase(1), 1e-12)
}

func TestMeanFieldCachesPreStepOrder(t *testing.T) {
	phase := []float64{0.2, 0.9, 2.5, 4.0}
	net, err := NewMeanFieldFromState(phase, []float64{1, 1.1, 0.9, 1}, 1.5, WithStepSize(0.1))
	require.NoError(t, err)

	r0, psi0 := order(phase)
	net.Step()

	r, psi, ok := net.MeanFieldState()
	require.True(t, ok)
	assert.InDelta(t, r0, r, 1e-12)
	assert.InDelta(t, psi0, psi, 1e-12)
	assert.NotEqual(t, r0, net.OrderParameter())
}

func TestMeanFieldDerivative(t *testing.T) {
	phase := []float64{0.0, 1.0}
	net, err := NewMeanFieldFromState(phase, []float64{2, 2}, 3)
	require.NoError(t, err)

	r, psi := order(phase)
	want := 2 + 0.1 + 3*r*math.Sin(psi-0.0)
	assert.InDelta(t, want, net.Derivative(0, 0, 0.1), 1e-12)
}

func TestMeanFieldSynchronizes(t *testing.T) {
	phase := []float64{0, 1, 2, 3, 4, 5}
	freq := []float64{1, 1, 1, 1, 1, 1}
	net, err := NewMeanFieldFromState(phase, freq, 2, WithStepSize(0.05))
	require.NoError(t, err)

	require.NoError(t, net.StepN(400))
	assert.Greater(t, net.OrderParameter(), 0.99)
}

func TestPairwiseSynchronizes(t *testing.T) {
	net, err := New(8, 10, WithNormalization(true), WithStepSize(0.05))
	require.NoError(t, err)

	require.NoError(t, net.StepN(2000))
	assert.Greater(t, net.OrderParameter(), 0.9)
}

func TestPhasesStayFinite(t *testing.T) {
	net, err := New(10, 50, WithStepSize(1), WithNoiseLevel(1))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		net.Step()
		require.True(t, net.IsValid(), "step %d", i)
	}
}

func TestFastTrigTracksExact(t *testing.T) {
	exact, err := New(12, 1.2, WithStepSize(0.02))
	require.NoError(t, err)
	fast, err := New(12, 1.2, WithStepSize(0.02), WithFastTrig(NewTrigTable(4096)))
	require.NoError(t, err)

	require.NoError(t, exact.StepN(100))
	require.NoError(t, fast.StepN(100))

	for i := 0; i < 12; i++ {
		assert.Less(t, angularDistance(exact.Phase(i), fast.Phase(i)), 1e-3)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{twoPi, 0},
		{twoPi + 0.5, 0.5},
		{-0.5, twoPi - 0.5},
		{-twoPi, 0},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := wrapPhase(tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, "wrapPhase(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, twoPi)
	}
}
