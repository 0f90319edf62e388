package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/san-kum/kuramoto/internal/config"
	"github.com/san-kum/kuramoto/internal/experiment"
	"github.com/san-kum/kuramoto/internal/sim"
	"github.com/san-kum/kuramoto/internal/storage"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overlays the
// fields given under config.
type ScenarioStep struct {
	Preset string
	SaveAs string
	Config *config.Config
}

func (s *ScenarioStep) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Preset string    `yaml:"preset"`
		SaveAs string    `yaml:"save_as"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if raw.Preset != "" {
		cfg = config.GetPreset(raw.Preset)
		if cfg == nil {
			return fmt.Errorf("line %d: unknown preset %q", value.Line, raw.Preset)
		}
	}
	if !raw.Config.IsZero() {
		if err := raw.Config.Decode(cfg); err != nil {
			return err
		}
	}

	s.Preset, s.SaveAs, s.Config = raw.Preset, raw.SaveAs, cfg
	return nil
}

// Name labels the step in logs and in the store.
func (s ScenarioStep) Name() string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	default:
		return "custom"
	}
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// RunScenario executes the steps in order. Results are stored when st is not
// nil. On error the results of completed steps are returned with it.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := experiment.NewRegistry()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name()
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "name", name)

		res, mode, err := runOne(ctx, step.Config, registry, logger)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		sr := StepResult{Name: name, Result: res}
		if st != nil {
			id, err := st.Save(name, mode, step.Config, res)
			if err != nil {
				return results, fmt.Errorf("step %d (%s) save: %w", i+1, name, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

func runOne(ctx context.Context, cfg *config.Config, registry *experiment.Registry, logger *slog.Logger) (*sim.Result, string, error) {
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(registry.DefaultMetrics(experiment.Params{LockLevel: cfg.LockLevel})); err != nil {
		return nil, "", err
	}
	defer exp.Close()

	res, err := exp.Run(ctx)
	if err != nil {
		return nil, "", err
	}
	return res, exp.Network().Mode().String(), nil
}

// EnsembleResult is one seed's outcome.
type EnsembleResult struct {
	Seed       int64
	FinalOrder float64
	MeanOrder  float64
}

// RunEnsemble repeats cfg for seeds cfg.Seed, cfg.Seed+1, ... on at most
// workers goroutines. Only the noise seed differs between members.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs, workers int) ([]EnsembleResult, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", runs)
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]EnsembleResult, runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < runs; i++ {
		member := *cfg
		member.Seed = cfg.Seed + int64(i)
		g.Go(func() error {
			registry := experiment.NewRegistry()
			res, _, err := runOne(gctx, &member, registry, nil)
			if err != nil {
				return fmt.Errorf("seed %d: %w", member.Seed, err)
			}
			results[i] = EnsembleResult{
				Seed:       member.Seed,
				FinalOrder: res.Order[len(res.Order)-1],
				MeanOrder:  res.Metrics["mean_order"],
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EnsembleStats summarises final order parameters. A member counts as
// synchronized when its final order reaches threshold.
func EnsembleStats(results []EnsembleResult, threshold float64) (mean, std float64, synced int) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	for _, r := range results {
		mean += r.FinalOrder
		if r.FinalOrder >= threshold {
			synced++
		}
	}
	mean /= float64(len(results))
	for _, r := range results {
		d := r.FinalOrder - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(results)))
	return mean, std, synced
}
