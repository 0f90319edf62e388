package metrics

import (
	"math"

	"github.com/san-kum/kuramoto/internal/kuramoto"
)

// FrequencySpread reports the standard deviation of the instantaneous
// oscillator velocities at the last observed step. It falls to zero once the
// network is frequency locked.
type FrequencySpread struct {
	last float64
}

func NewFrequencySpread() *FrequencySpread {
	return &FrequencySpread{}
}

func (f *FrequencySpread) Name() string { return "frequency_spread" }

func (f *FrequencySpread) Observe(s kuramoto.Snapshot) {
	n := float64(len(s.Velocity))
	if n == 0 {
		return
	}
	mean := 0.0
	for _, v := range s.Velocity {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range s.Velocity {
		d := v - mean
		variance += d * d
	}
	f.last = math.Sqrt(variance / n)
}

func (f *FrequencySpread) Value() float64 { return f.last }

func (f *FrequencySpread) Reset() { f.last = 0 }
