package kuramoto

import "math"

// OrderVector returns the mean of the unit phase vectors (cos θ_i, sin θ_i).
func (n *Network) OrderVector() (x, y float64) {
	return orderVector(n.phase)
}

// OrderParameter returns |OrderVector|, in [0, 1]. 1 means every oscillator
// shares one phase.
func (n *Network) OrderParameter() float64 {
	r, _ := order(n.phase)
	return r
}

// AveragePhase returns the heading of the order vector.
func (n *Network) AveragePhase() float64 {
	_, psi := order(n.phase)
	return psi
}

// MeanFieldState returns the order parameter and average phase cached at the
// start of the last step of a mean-field network. ok is false for pairwise
// networks.
func (n *Network) MeanFieldState() (order, averagePhase float64, ok bool) {
	c, ok := n.coupling.(*meanFieldCoupling)
	if !ok {
		return 0, 0, false
	}
	return c.order, c.averagePhase, true
}

func orderVector(phase []float64) (x, y float64) {
	for _, theta := range phase {
		s, c := math.Sincos(theta)
		x += c
		y += s
	}
	size := float64(len(phase))
	return x / size, y / size
}

func order(phase []float64) (r, psi float64) {
	x, y := orderVector(phase)
	r = math.Hypot(x, y)
	if r > 1 {
		r = 1
	}
	return r, math.Atan2(y, x)
}
