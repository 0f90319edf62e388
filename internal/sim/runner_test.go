package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kuramoto/internal/kuramoto"
	"github.com/san-kum/kuramoto/internal/sim"
)

type countingMetric struct {
	count int
	sum   float64
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(s kuramoto.Snapshot) {
	m.count++
	m.sum += s.Order
}
func (m *countingMetric) Value() float64 { return float64(m.count) }
func (m *countingMetric) Reset() {
	m.count = 0
	m.sum = 0
}

type recordingObserver struct {
	times []float64
}

func (o *recordingObserver) OnStep(s kuramoto.Snapshot) {
	o.times = append(o.times, s.Time)
}

func threeOscillators() *kuramoto.Network {
	k := [][]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	net, err := kuramoto.NewFromState([]float64{0, 1, 2}, []float64{1, 1.1, 0.9}, k,
		kuramoto.WithStepSize(0.1))
	Expect(err).ToNot(HaveOccurred())
	return net
}

var _ = Describe("Runner", func() {
	var (
		runner *sim.Runner
		net    *kuramoto.Network
		cfg    sim.Config
	)

	BeforeEach(func() {
		runner = sim.New(nil)
		net = threeOscillators()
		cfg = sim.DefaultConfig()
		cfg.Duration = 1.0
	})

	It("should record the initial state and every step", func() {
		result, err := runner.Run(context.Background(), net, cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(10))
		Expect(result.Times).To(HaveLen(11))
		Expect(result.Order).To(HaveLen(11))
		Expect(result.Phases).To(HaveLen(11))
		Expect(result.Times[0]).To(Equal(0.0))
		Expect(result.Times[10]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(net.Time()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("should synchronize a coupled triple", func() {
		cfg.Duration = 20
		result, err := runner.Run(context.Background(), net, cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Order[len(result.Order)-1]).To(BeNumerically(">", result.Order[0]))
		Expect(result.Order[len(result.Order)-1]).To(BeNumerically(">", 0.95))
	})

	It("should sample at the configured interval", func() {
		cfg.SampleEvery = 3
		cfg.RecordPhases = false
		result, err := runner.Run(context.Background(), net, cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Phases).To(BeNil())
		// initial, steps 3, 6, 9 and the final step 10
		Expect(result.Times).To(HaveLen(5))
	})

	It("should feed metrics and observers once per step", func() {
		metric := &countingMetric{count: 99}
		obs := &recordingObserver{}
		runner.AddMetric(metric)
		runner.AddObserver(obs)

		result, err := runner.Run(context.Background(), net, cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Metrics).To(HaveKeyWithValue("count", 10.0))
		Expect(obs.times).To(HaveLen(10))
		Expect(obs.times[0]).To(BeNumerically("~", 0.1, 1e-12))
	})

	DescribeTable("should reject invalid configs",
		func(c sim.Config) {
			_, err := runner.Run(context.Background(), net, c)
			Expect(errors.Is(err, kuramoto.ErrInvalidArgument)).To(BeTrue())
			Expect(net.Time()).To(Equal(0.0))
		},
		Entry("zero duration", sim.Config{Duration: 0}),
		Entry("negative duration", sim.Config{Duration: -1}),
		Entry("negative sample interval", sim.Config{Duration: 1, SampleEvery: -2}),
	)

	It("should stop between steps when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := runner.Run(ctx, net, cfg)

		Expect(err).To(MatchError(context.Canceled))
		Expect(result.StepsTaken).To(Equal(0))
		Expect(net.Time()).To(Equal(0.0))
	})

	Context("with a callback", func() {
		It("should stop when the callback declines", func() {
			seen := 0
			err := runner.RunWithCallback(context.Background(), net, cfg, func(s kuramoto.Snapshot) bool {
				seen++
				return seen < 4
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(seen).To(Equal(4))
			Expect(net.Time()).To(BeNumerically("~", 0.3, 1e-12))
		})

		It("should visit every step", func() {
			seen := 0
			err := runner.RunWithCallback(context.Background(), net, cfg, func(kuramoto.Snapshot) bool {
				seen++
				return true
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(seen).To(Equal(11))
		})
	})
})
