package kuramoto

import (
	"fmt"
	"strings"
)

// Arrangement names a coupling topology.
type Arrangement int

const (
	AllToAll Arrangement = iota
	LinearUni
	LinearBi
	BoxUni
	BoxBi
)

var arrangementNames = map[Arrangement]string{
	AllToAll:  "all_to_all",
	LinearUni: "linear_uni",
	LinearBi:  "linear_bi",
	BoxUni:    "box_uni",
	BoxBi:     "box_bi",
}

func (a Arrangement) String() string {
	if name, ok := arrangementNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Arrangement(%d)", int(a))
}

func (a Arrangement) valid() bool {
	_, ok := arrangementNames[a]
	return ok
}

// Arrangements lists every supported arrangement.
func Arrangements() []Arrangement {
	return []Arrangement{AllToAll, LinearUni, LinearBi, BoxUni, BoxBi}
}

// ParseArrangement resolves a name such as "box_bi" or "BOX-BI".
func ParseArrangement(name string) (Arrangement, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for a, n := range arrangementNames {
		if n == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArrangement, name)
}

func newMatrix(size int) [][]float64 {
	m := make([][]float64, size)
	for i := range m {
		m[i] = make([]float64, size)
	}
	return m
}

// initializeUniformCoupling fills every cell, diagonal included, with
// strength. Diagonal cells never enter the derivative.
func (n *Network) initializeUniformCoupling(strength float64, meanField, normalize bool) {
	if meanField {
		n.coupling = &meanFieldCoupling{strength: strength}
		return
	}
	m := newMatrix(n.size)
	for i := range m {
		for j := range m[i] {
			m[i][j] = strength
		}
	}
	n.coupling = &pairwiseCoupling{matrix: m, normalize: normalize}
}

// SetCoupling rewrites the coupling for the given arrangement. For pairwise
// networks the whole matrix is overwritten; edges outside the arrangement are
// cleared while the all-to-all diagonal keeps its previous values. Mean-field
// networks only accept AllToAll. On error the coupling is left unchanged.
func (n *Network) SetCoupling(a Arrangement, strength float64) error {
	if !a.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownArrangement, int(a))
	}
	if !finite(strength) {
		return fmt.Errorf("%w: coupling strength must be finite", ErrInvalidArgument)
	}

	switch c := n.coupling.(type) {
	case *meanFieldCoupling:
		if a != AllToAll {
			return fmt.Errorf("%w: mean-field coupling supports %s only, got %s", ErrInvalidArgument, AllToAll, a)
		}
		c.strength = strength
	case *pairwiseCoupling:
		c.matrix = arrange(c.matrix, a, strength)
	}
	return nil
}

// SetUniformCoupling is SetCoupling with the all-to-all arrangement.
func (n *Network) SetUniformCoupling(strength float64) error {
	return n.SetCoupling(AllToAll, strength)
}

// Coupling returns a copy of the coupling matrix, or nil for mean-field
// networks.
func (n *Network) Coupling() [][]float64 {
	c, ok := n.coupling.(*pairwiseCoupling)
	if !ok {
		return nil
	}
	m := newMatrix(n.size)
	for i := range m {
		copy(m[i], c.matrix[i])
	}
	return m
}

// CouplingStrength returns the scalar strength of a mean-field network and
// the off-diagonal cell of largest magnitude of a pairwise one.
func (n *Network) CouplingStrength() float64 {
	return n.coupling.strengthValue()
}

func arrange(prev [][]float64, a Arrangement, strength float64) [][]float64 {
	size := len(prev)
	m := newMatrix(size)

	switch a {
	case AllToAll:
		for i := range m {
			for j := range m[i] {
				if i == j {
					m[i][j] = prev[i][j]
				} else {
					m[i][j] = strength
				}
			}
		}
	case LinearUni, BoxUni:
		for i := 0; i < size-1; i++ {
			m[i][i+1] = strength
		}
		if a == BoxUni {
			m[size-1][0] = strength
		}
	case LinearBi, BoxBi:
		for i := 0; i < size-1; i++ {
			m[i][i+1] = strength
			m[i+1][i] = strength
		}
		if a == BoxBi {
			m[size-1][0] = strength
			m[0][size-1] = strength
		}
	}
	return m
}
