package kuramoto

import (
	"fmt"
	"math"
)

// Step advances every oscillator by one step using classical RK4.
//
// All four stages of every oscillator are evaluated against the phase vector
// as it stood at the start of the step, which is kept in previousPhase. The
// noise sample is drawn once per step at the current time and shared by all
// oscillators. Velocity is differenced from the unwrapped new phase before the
// phase is reduced into [0, 2π).
func (n *Network) Step() {
	copy(n.previousPhase, n.phase)
	frozen := n.previousPhase
	n.coupling.prepare(frozen)

	xi := n.noiseLevel * n.source.Noise(n.time)
	h := n.stepSize

	for i := 0; i < n.size; i++ {
		k1 := h * n.derivative(frozen, i, 0, xi)
		k2 := h * n.derivative(frozen, i, k1/2, xi)
		k3 := h * n.derivative(frozen, i, k2/2, xi)
		k4 := h * n.derivative(frozen, i, k3, xi)

		next := frozen[i] + (k1+2*k2+2*k3+k4)/6

		velocity := (next - frozen[i]) / h
		n.acceleration[i] = (velocity - n.velocity[i]) / h
		n.velocity[i] = velocity
		n.phase[i] = wrapPhase(next)
	}

	n.time += h
}

// StepN runs count steps in sequence; each step samples noise at its own time.
func (n *Network) StepN(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: step count must be non-negative, got %d", ErrInvalidArgument, count)
	}
	for i := 0; i < count; i++ {
		n.Step()
	}
	return nil
}

// Derivative evaluates dθ_i/dt against the current phase vector with the
// oscillator's own phase offset by increment and the given noise term.
func (n *Network) Derivative(i int, increment, noise float64) float64 {
	return n.derivative(n.phase, i, increment, noise)
}

func (n *Network) derivative(phase []float64, i int, increment, noise float64) float64 {
	return n.naturalFrequency[i] + noise + n.coupling.term(n, phase, i, increment)
}

// wrapPhase reduces an angle into [0, 2π).
func wrapPhase(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	if theta >= twoPi {
		theta = 0
	}
	return theta
}
