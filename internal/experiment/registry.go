package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/kuramoto/internal/metrics"
	"github.com/san-kum/kuramoto/internal/sim"
)

type Registry struct {
	metrics map[string]func(Params) sim.Metric
}

// Params carries the tunables metric constructors may need.
type Params struct {
	LockLevel float64
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(Params) sim.Metric),
	}

	r.metrics["mean_order"] = func(Params) sim.Metric { return metrics.NewMeanOrder() }
	r.metrics["phase_lock"] = func(p Params) sim.Metric { return metrics.NewPhaseLock(p.LockLevel) }
	r.metrics["frequency_spread"] = func(Params) sim.Metric { return metrics.NewFrequencySpread() }

	return r
}

func (r *Registry) GetMetric(name string, p Params) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(p), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(p Params) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		m, _ := r.GetMetric(name, p)
		out = append(out, m)
	}
	return out
}
