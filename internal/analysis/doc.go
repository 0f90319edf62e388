// Package analysis extracts frequency content from recorded run traces.
//
//   - [PowerSpectrum]: one-sided magnitude spectrum of a real series
//   - [DominantFrequency]: strongest non-DC component in Hz
//   - [PhaseVelocity]: unwrapped phase series to angular velocity
package analysis
