package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/kuramoto/internal/kuramoto"
)

// Runner drives a network for a fixed duration, feeding metrics and observers
// after every step. Cancellation is checked between steps; a step itself
// always runs to completion.
type Runner struct {
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Steps returns how many steps cfg.Duration covers at the network's step size.
func Steps(net *kuramoto.Network, cfg Config) int {
	return int(math.Round(cfg.Duration / net.StepSize()))
}

func (r *Runner) Run(ctx context.Context, net *kuramoto.Network, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := Steps(net, cfg)
	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	capacity := steps/every + 2
	result := &Result{
		Times:        make([]float64, 0, capacity),
		Order:        make([]float64, 0, capacity),
		AveragePhase: make([]float64, 0, capacity),
		Metrics:      make(map[string]float64),
	}
	if cfg.RecordPhases {
		result.Phases = make([][]float64, 0, capacity)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Debug("run started",
		"oscillators", net.Size(),
		"mode", net.Mode(),
		"steps", steps,
		"dt", net.StepSize())
	start := time.Now()

	result.record(net.Snapshot(), cfg.RecordPhases)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		net.Step()
		result.StepsTaken++

		if cfg.ValidateState && !net.IsValid() {
			return result, &kuramoto.SimulationError{Step: i, Time: net.Time(), Wrapped: kuramoto.ErrInvalidState}
		}

		snap := net.Snapshot()
		for _, m := range r.metrics {
			m.Observe(snap)
		}
		for _, obs := range r.observers {
			obs.OnStep(snap)
		}

		if (i+1)%every == 0 || i == steps-1 {
			result.record(snap, cfg.RecordPhases)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.logger.Debug("run finished",
		"steps", result.StepsTaken,
		"order", result.Order[len(result.Order)-1],
		"elapsed", time.Since(start))

	return result, nil
}

// RunWithCallback steps the network and hands every snapshot, starting with
// the initial one, to callback. Returning false stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, net *kuramoto.Network, cfg Config, callback func(kuramoto.Snapshot) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	steps := Steps(net, cfg)
	if !callback(net.Snapshot()) {
		return nil
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		net.Step()

		if cfg.ValidateState && !net.IsValid() {
			return &kuramoto.SimulationError{Step: i, Time: net.Time(), Wrapped: kuramoto.ErrInvalidState}
		}
		if !callback(net.Snapshot()) {
			return nil
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %v", kuramoto.ErrInvalidArgument, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must be non-negative, got %d", kuramoto.ErrInvalidArgument, cfg.SampleEvery)
	}
	return nil
}
