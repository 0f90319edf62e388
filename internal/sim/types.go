package sim

import "github.com/san-kum/kuramoto/internal/kuramoto"

type Metric interface {
	Name() string
	Observe(s kuramoto.Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s kuramoto.Snapshot)
}

type Config struct {
	Duration      float64
	SampleEvery   int
	RecordPhases  bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      10.0,
		SampleEvery:   1,
		RecordPhases:  true,
		ValidateState: true,
	}
}

// Result holds the sampled trace of a run. Index 0 is the state before the
// first step.
type Result struct {
	Times        []float64
	Order        []float64
	AveragePhase []float64
	Phases       [][]float64
	Metrics      map[string]float64
	StepsTaken   int
}

func (r *Result) record(s kuramoto.Snapshot, phases bool) {
	r.Times = append(r.Times, s.Time)
	r.Order = append(r.Order, s.Order)
	r.AveragePhase = append(r.AveragePhase, s.AveragePhase)
	if phases {
		r.Phases = append(r.Phases, s.Phase)
	}
}
