// Package kuramoto simulates networks of coupled phase oscillators.
//
// A [Network] holds per-oscillator phase, natural frequency and the
// finite-difference velocity/acceleration history, together with one of two
// coupling representations:
//
//   - [Pairwise]: a size×size matrix, coupling[i][j] is the strength
//     oscillator j exerts on oscillator i
//   - [MeanField]: a single scalar; each oscillator couples to the order
//     vector of the whole network
//
// Every step advances all oscillators with the classical fourth-order
// Runge-Kutta method applied to the Kuramoto phase equation
//
//	dθ_i/dt = ω_i + ξ(t) + Σ_j K_ij sin(θ_j − θ_i)
//
// where ξ is a shared noise sample drawn from an injected [noise.Source].
//
// # Example
//
//	net, _ := kuramoto.New(16, 0.8, kuramoto.WithNoiseLevel(0.1))
//	_ = net.SetCoupling(kuramoto.BoxBi, 1.2)
//	net.StepN(200)
//	r := net.OrderParameter()
//
// # Thread Safety
//
// Network instances are NOT safe for concurrent mutation. Run independent
// instances when several simulations are needed at once.
package kuramoto
