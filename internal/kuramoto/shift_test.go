package kuramoto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftDirection(t *testing.T) {
	net, err := NewFromState([]float64{0, 1, 2, 3}, []float64{10, 11, 12, 13}, zeroMatrix(4))
	require.NoError(t, err)

	require.NoError(t, net.ShiftPhases(1))
	assert.Equal(t, []float64{3, 0, 1, 2}, net.Phases())
	assert.Equal(t, []float64{3, 0, 1, 2}, net.PreviousPhases())

	require.NoError(t, net.ShiftFrequencies(-1))
	assert.Equal(t, []float64{11, 12, 13, 10}, net.NaturalFrequencies())
	assert.Equal(t, []float64{3, 0, 1, 2}, net.Phases(), "frequency shift leaves phases alone")
}

func TestShiftRoundTrip(t *testing.T) {
	net, err := New(7, 0.9, WithStepSize(0.1))
	require.NoError(t, err)
	net.Step()
	net.Step()

	phase := net.Phases()
	prev := net.PreviousPhases()
	freq := net.NaturalFrequencies()
	require.NotEqual(t, phase, prev)

	for k := 1; k < net.Size(); k++ {
		require.NoError(t, net.ShiftPhases(k))
		require.NoError(t, net.ShiftPhases(-k))
		assert.Equal(t, phase, net.Phases(), "k=%d", k)
		assert.Equal(t, prev, net.PreviousPhases(), "k=%d", k)

		require.NoError(t, net.ShiftFrequencies(k))
		require.NoError(t, net.ShiftFrequencies(-k))
		assert.Equal(t, freq, net.NaturalFrequencies(), "k=%d", k)
	}
}

func TestShiftBounds(t *testing.T) {
	net, err := NewFromState([]float64{0, 1, 2}, []float64{1, 1, 1}, zeroMatrix(3))
	require.NoError(t, err)

	require.NoError(t, net.ShiftPhases(3))
	require.NoError(t, net.ShiftPhases(-3))
	assert.Equal(t, []float64{0, 1, 2}, net.Phases())

	assert.ErrorIs(t, net.ShiftPhases(4), ErrInvalidArgument)
	assert.ErrorIs(t, net.ShiftFrequencies(-4), ErrInvalidArgument)
	assert.Equal(t, []float64{0, 1, 2}, net.Phases())
}

func TestShiftExtremeOffsets(t *testing.T) {
	net, err := NewFromState([]float64{0, 1, 2}, []float64{4, 5, 6}, zeroMatrix(3))
	require.NoError(t, err)

	for _, k := range []int{math.MinInt, math.MinInt + 1, math.MaxInt} {
		assert.ErrorIs(t, net.ShiftPhases(k), ErrInvalidArgument, "phases by %d", k)
		assert.ErrorIs(t, net.ShiftFrequencies(k), ErrInvalidArgument, "frequencies by %d", k)
	}
	assert.Equal(t, []float64{0, 1, 2}, net.Phases())
	assert.Equal(t, []float64{4, 5, 6}, net.NaturalFrequencies())
}
