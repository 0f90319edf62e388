package kuramoto

import "fmt"

// ShiftFrequencies rotates the natural frequencies by k positions. Positive k
// moves element i to (i+k) mod size; negative k rotates left.
func (n *Network) ShiftFrequencies(k int) error {
	if err := n.checkShift(k); err != nil {
		return err
	}
	rotate(n.naturalFrequency, k)
	return nil
}

// ShiftPhases rotates the current and previous phase vectors together so the
// velocity history stays aligned with the oscillators.
func (n *Network) ShiftPhases(k int) error {
	if err := n.checkShift(k); err != nil {
		return err
	}
	rotate(n.phase, k)
	rotate(n.previousPhase, k)
	return nil
}

func (n *Network) checkShift(k int) error {
	if k > n.size || k < -n.size {
		return fmt.Errorf("%w: shift %d exceeds network size %d", ErrInvalidArgument, k, n.size)
	}
	return nil
}

func rotate(s []float64, k int) {
	size := len(s)
	k = ((k % size) + size) % size
	if k == 0 {
		return
	}
	out := make([]float64, size)
	for i, v := range s {
		out[(i+k)%size] = v
	}
	copy(s, out)
}
