package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series needs at least four samples")

// PowerSpectrum returns the one-sided magnitude spectrum of data, with the
// mean removed so the DC bin does not dominate.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin of
// a series sampled every dt.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrShortSeries
	}
	if !(dt > 0) {
		return 0, errors.New("analysis: sample interval must be positive")
	}

	ps := PowerSpectrum(data)
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(len(data)) * dt), nil
}

// PhaseVelocity unwraps a phase series reduced into [0, 2π) and returns its
// finite-difference angular velocity.
func PhaseVelocity(phase []float64, dt float64) []float64 {
	if len(phase) < 2 || !(dt > 0) {
		return nil
	}
	out := make([]float64, len(phase)-1)
	for i := 1; i < len(phase); i++ {
		out[i-1] = math.Remainder(phase[i]-phase[i-1], 2*math.Pi) / dt
	}
	return out
}
