// Package viz renders a running oscillator network in the terminal.
//
// [Model] is a Bubble Tea program that places every oscillator on a braille
// [Canvas] ring, draws the order parameter as a vector from the centre and
// plots its recent history with asciigraph.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the network from its initial configuration
//	+/-   - Raise or lower the coupling strength
//	[ ]   - Halve or double the steps taken per frame
//	T     - Cycle colour themes
//	?     - Toggle the key help
package viz
