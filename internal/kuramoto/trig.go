package kuramoto

import "math"

// TrigTable provides precomputed sine values with linear interpolation.
// With 4096 entries the absolute error stays below 1e-6.
type TrigTable struct {
	sin []float64
	n   int
}

// NewTrigTable builds a table of n samples over one period.
func NewTrigTable(n int) *TrigTable {
	if n < 2 {
		n = 2
	}
	t := &TrigTable{
		sin: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		t.sin[i] = math.Sin(float64(i) * twoPi / float64(n))
	}
	return t
}

// Sin returns an interpolated sin(x).
func (t *TrigTable) Sin(x float64) float64 {
	idx := wrapPhase(x) * float64(t.n) / twoPi
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n
	return t.sin[i0]*(1-frac) + t.sin[i1]*frac
}
