package metrics

import "github.com/san-kum/kuramoto/internal/kuramoto"

// MeanOrder is the time-averaged order parameter.
type MeanOrder struct {
	sum     float64
	samples int
}

func NewMeanOrder() *MeanOrder {
	return &MeanOrder{}
}

func (m *MeanOrder) Name() string { return "mean_order" }

func (m *MeanOrder) Observe(s kuramoto.Snapshot) {
	m.sum += s.Order
	m.samples++
}

func (m *MeanOrder) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOrder) Reset() {
	m.sum = 0
	m.samples = 0
}
