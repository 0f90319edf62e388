package kuramoto

import "math"

// coupling is the strategy behind the two coupling representations. The
// phase slice handed to prepare and term is the frozen pre-step context.
type coupling interface {
	mode() Mode
	prepare(phase []float64)
	term(n *Network, phase []float64, i int, increment float64) float64
	strengthValue() float64
}

type pairwiseCoupling struct {
	matrix    [][]float64
	normalize bool
}

func (c *pairwiseCoupling) mode() Mode { return Pairwise }

func (c *pairwiseCoupling) prepare([]float64) {}

func (c *pairwiseCoupling) term(n *Network, phase []float64, i int, increment float64) float64 {
	theta := phase[i] + increment
	row := c.matrix[i]
	sum := 0.0
	for j, k := range row {
		if k == 0 || j == i {
			continue
		}
		sum += k * n.sin(phase[j]-theta)
	}
	if c.normalize {
		sum /= float64(len(row))
	}
	return sum
}

func (c *pairwiseCoupling) strengthValue() float64 {
	strongest := 0.0
	for i, row := range c.matrix {
		for j, k := range row {
			if i == j {
				continue
			}
			if math.Abs(k) > math.Abs(strongest) {
				strongest = k
			}
		}
	}
	return strongest
}

type meanFieldCoupling struct {
	strength     float64
	order        float64
	averagePhase float64
}

func (c *meanFieldCoupling) mode() Mode { return MeanField }

func (c *meanFieldCoupling) prepare(phase []float64) {
	c.order, c.averagePhase = order(phase)
}

func (c *meanFieldCoupling) term(n *Network, phase []float64, i int, increment float64) float64 {
	return c.strength * c.order * n.sin(c.averagePhase-(phase[i]+increment))
}

func (c *meanFieldCoupling) strengthValue() float64 { return c.strength }
