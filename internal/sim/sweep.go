package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/kuramoto/internal/kuramoto"
	"golang.org/x/sync/errgroup"
)

// Builder creates a fresh network for a coupling strength.
type Builder func(strength float64) (*kuramoto.Network, error)

// SweepPoint is the time-averaged order parameter reached at one strength.
type SweepPoint struct {
	Strength float64
	Order    float64
}

// Sweep runs one independent network per coupling strength on at most
// workers goroutines. Networks share no state.
type Sweep struct {
	build     Builder
	cfg       Config
	transient float64
	workers   int
}

// NewSweep averages the order parameter over samples taken after transient.
// It runs runtime.GOMAXPROCS(0) networks at a time until WithWorkers says
// otherwise.
func NewSweep(build Builder, cfg Config, transient float64) *Sweep {
	return &Sweep{build: build, cfg: cfg, transient: transient, workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers bounds how many networks run at once. Values below one mean one.
func (s *Sweep) WithWorkers(n int) *Sweep {
	if n < 1 {
		n = 1
	}
	s.workers = n
	return s
}

func (s *Sweep) Run(ctx context.Context, strengths []float64) ([]SweepPoint, error) {
	if s.transient < 0 || s.transient >= s.cfg.Duration {
		return nil, fmt.Errorf("%w: transient %v must lie in [0, %v)", kuramoto.ErrInvalidArgument, s.transient, s.cfg.Duration)
	}

	points := make([]SweepPoint, len(strengths))

	cfg := s.cfg
	cfg.RecordPhases = false

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, strength := range strengths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			net, err := s.build(strength)
			if err != nil {
				return fmt.Errorf("coupling %v: %w", strength, err)
			}
			defer net.Close()

			res, err := New(nil).Run(gctx, net, cfg)
			if err != nil {
				return fmt.Errorf("coupling %v: %w", strength, err)
			}
			points[i] = SweepPoint{Strength: strength, Order: meanAfter(res, s.transient)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func meanAfter(res *Result, from float64) float64 {
	sum, n := 0.0, 0
	for i, t := range res.Times {
		if t >= from {
			sum += res.Order[i]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
