package sim_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kuramoto/internal/kuramoto"
	"github.com/san-kum/kuramoto/internal/sim"
)

var _ = Describe("Sweep", func() {
	var cfg sim.Config

	build := func(strength float64) (*kuramoto.Network, error) {
		freq := []float64{0.6, 0.8, 1.0, 1.2, 1.4, 0.7, 1.3, 1.0}
		phase := []float64{0, 0.8, 1.6, 2.4, 3.2, 4.0, 4.8, 5.6}
		return kuramoto.NewMeanFieldFromState(phase, freq, strength, kuramoto.WithStepSize(0.05))
	}

	BeforeEach(func() {
		cfg = sim.DefaultConfig()
		cfg.Duration = 40
	})

	It("should return one point per strength in input order", func() {
		strengths := []float64{0, 0.5, 4}
		points, err := sim.NewSweep(build, cfg, 20).Run(context.Background(), strengths)

		Expect(err).ToNot(HaveOccurred())
		Expect(points).To(HaveLen(3))
		for i, p := range points {
			Expect(p.Strength).To(Equal(strengths[i]))
			Expect(p.Order).To(BeNumerically(">=", 0))
			Expect(p.Order).To(BeNumerically("<=", 1))
		}
	})

	It("should show stronger coupling locking the network", func() {
		points, err := sim.NewSweep(build, cfg, 20).Run(context.Background(), []float64{0, 4})

		Expect(err).ToNot(HaveOccurred())
		Expect(points[1].Order).To(BeNumerically(">", 0.9))
		Expect(points[1].Order).To(BeNumerically(">", points[0].Order))
	})

	It("should reject a transient outside the run", func() {
		_, err := sim.NewSweep(build, cfg, 40).Run(context.Background(), []float64{1})
		Expect(errors.Is(err, kuramoto.ErrInvalidArgument)).To(BeTrue())
	})

	It("should surface builder errors", func() {
		failing := func(float64) (*kuramoto.Network, error) {
			return nil, kuramoto.ErrInvalidArgument
		}
		_, err := sim.NewSweep(failing, cfg, 0).Run(context.Background(), []float64{1, 2})
		Expect(err).To(MatchError(kuramoto.ErrInvalidArgument))
	})

	It("should never run more networks at once than its worker limit", func() {
		var active, peak atomic.Int32
		throttled := func(strength float64) (*kuramoto.Network, error) {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			return build(strength)
		}

		cfg.Duration = 2
		strengths := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}
		points, err := sim.NewSweep(throttled, cfg, 0).WithWorkers(2).Run(context.Background(), strengths)

		Expect(err).ToNot(HaveOccurred())
		Expect(points).To(HaveLen(len(strengths)))
		Expect(peak.Load()).To(BeNumerically("<=", 2))
		Expect(peak.Load()).To(BeNumerically(">=", 1))
	})

	It("should stop starting networks after the first failure", func() {
		var calls atomic.Int32
		failFirst := func(strength float64) (*kuramoto.Network, error) {
			if calls.Add(1) == 1 {
				return nil, kuramoto.ErrInvalidArgument
			}
			return build(strength)
		}

		cfg.Duration = 2
		strengths := make([]float64, 32)
		_, err := sim.NewSweep(failFirst, cfg, 0).WithWorkers(1).Run(context.Background(), strengths)

		Expect(err).To(MatchError(kuramoto.ErrInvalidArgument))
		Expect(calls.Load()).To(Equal(int32(1)))
	})

	It("should treat a non-positive worker count as one", func() {
		points, err := sim.NewSweep(build, cfg, 20).WithWorkers(0).Run(context.Background(), []float64{0, 4})
		Expect(err).ToNot(HaveOccurred())
		Expect(points).To(HaveLen(2))
	})
})
