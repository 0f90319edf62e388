package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/kuramoto/internal/config"
	"github.com/san-kum/kuramoto/internal/kuramoto"
	"github.com/san-kum/kuramoto/internal/noise"
	"github.com/san-kum/kuramoto/internal/sim"
)

type Experiment struct {
	cfg     *config.Config
	runner  *sim.Runner
	network *kuramoto.Network
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	return &Experiment{
		cfg:    cfg,
		runner: sim.New(logger),
	}
}

// Setup builds the network described by the config and attaches metrics.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	net, err := Build(e.cfg)
	if err != nil {
		return err
	}
	e.network = net
	for _, m := range metrics {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.network == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.network, SimConfig(e.cfg))
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner { return e.runner }

func (e *Experiment) Network() *kuramoto.Network { return e.network }

func (e *Experiment) Close() error {
	if e.network == nil {
		return nil
	}
	return e.network.Close()
}

func SimConfig(cfg *config.Config) sim.Config {
	sc := sim.DefaultConfig()
	sc.Duration = cfg.Duration
	sc.SampleEvery = cfg.SampleEvery
	return sc
}

// Build creates a network from cfg. Explicit initial state takes precedence
// over noise seeding; the noise source is still used for forcing.
func Build(cfg *config.Config) (*kuramoto.Network, error) {
	arrangement := kuramoto.AllToAll
	if cfg.Arrangement != "" {
		a, err := kuramoto.ParseArrangement(cfg.Arrangement)
		if err != nil {
			return nil, err
		}
		arrangement = a
	}

	opts := []kuramoto.Option{
		kuramoto.WithNoiseSource(noise.NewPerlin(cfg.Seed)),
		kuramoto.WithNoiseLevel(cfg.NoiseLevel),
		kuramoto.WithStepSize(cfg.StepSize),
		kuramoto.WithNormalization(cfg.Normalize),
	}

	if cfg.InitState.Explicit() {
		return buildFromState(cfg, arrangement, opts)
	}

	opts = append(opts,
		kuramoto.WithSeedIncrement(cfg.Increment),
		kuramoto.WithArrangement(arrangement),
	)
	if cfg.MeanField {
		opts = append(opts, kuramoto.WithMeanField())
	}
	return kuramoto.New(cfg.Size, cfg.Coupling, opts...)
}

func buildFromState(cfg *config.Config, arrangement kuramoto.Arrangement, opts []kuramoto.Option) (*kuramoto.Network, error) {
	phases, freqs := cfg.InitState.Phases, cfg.InitState.Frequencies

	if cfg.MeanField {
		if arrangement != kuramoto.AllToAll {
			return nil, fmt.Errorf("%w: mean-field coupling supports %s only", kuramoto.ErrInvalidArgument, kuramoto.AllToAll)
		}
		return kuramoto.NewMeanFieldFromState(phases, freqs, cfg.Coupling, opts...)
	}

	matrix := make([][]float64, len(freqs))
	for i := range matrix {
		matrix[i] = make([]float64, len(freqs))
	}
	net, err := kuramoto.NewFromState(phases, freqs, matrix, opts...)
	if err != nil {
		return nil, err
	}
	if err := net.SetCoupling(arrangement, cfg.Coupling); err != nil {
		return nil, err
	}
	return net, nil
}
