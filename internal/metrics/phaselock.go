package metrics

import "github.com/san-kum/kuramoto/internal/kuramoto"

// PhaseLock is the fraction of observed steps whose order parameter reached
// threshold.
type PhaseLock struct {
	name      string
	threshold float64
	locked    int
	samples   int
}

func NewPhaseLock(threshold float64) *PhaseLock {
	return &PhaseLock{
		name:      "phase_lock",
		threshold: threshold,
	}
}

func (p *PhaseLock) Name() string {
	return p.name
}

func (p *PhaseLock) Observe(s kuramoto.Snapshot) {
	p.samples++
	if s.Order >= p.threshold {
		p.locked++
	}
}

func (p *PhaseLock) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.locked) / float64(p.samples)
}

func (p *PhaseLock) Reset() {
	p.locked = 0
	p.samples = 0
}
