package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/kuramoto/internal/analysis"
	"github.com/san-kum/kuramoto/internal/config"
	"github.com/san-kum/kuramoto/internal/experiment"
	"github.com/san-kum/kuramoto/internal/kuramoto"
	"github.com/san-kum/kuramoto/internal/sim"
	"github.com/san-kum/kuramoto/internal/storage"
	"github.com/san-kum/kuramoto/internal/viz"
	"github.com/spf13/cobra"
)

// lockTolerance is how close, in rad/s, an oscillator's mean velocity must be
// to the collective frequency to count as frequency locked.
const lockTolerance = 0.05

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		logger.Info("config written", "path", saveConfig)
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(registry.DefaultMetrics(experiment.Params{LockLevel: cfg.LockLevel})); err != nil {
		return err
	}
	defer exp.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	net := exp.Network()
	logger.Info("running simulation",
		"name", name,
		"oscillators", net.Size(),
		"mode", net.Mode(),
		"duration", cfg.Duration)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final order: %.4f\n", result.Order[len(result.Order)-1])

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, net.Mode().String(), cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tN\tMODE\tTOPOLOGY\tK\tDURATION\tMEAN R")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%.3f\t%.2fs\t%.3f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Size,
			run.Mode,
			run.Config.Arrangement,
			run.Config.Coupling,
			run.Config.Duration,
			run.Metrics["mean_order"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(tr.Times) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Name)
	fmt.Printf("oscillators: %d  coupling: %.3f  mode: %s\n\n", meta.Config.Size, meta.Config.Coupling, meta.Mode)

	graph := asciigraph.Plot(tr.Order,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("order parameter r(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(tr.AveragePhase,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("average phase psi(t)"),
	)
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, tr)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(tr.Times) < 4 {
		return fmt.Errorf("run %s has too few samples to analyze", meta.ID)
	}

	sampleDt := tr.Times[1] - tr.Times[0]

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("samples: %d every %.4fs\n\n", len(tr.Times), sampleDt)

	ps := analysis.PowerSpectrum(tr.Order)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum of r(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, err := analysis.DominantFrequency(tr.Order, sampleDt)
	if err != nil {
		return err
	}
	fmt.Printf("order oscillation: %.3f hz\n", freq)

	collective := mean(analysis.PhaseVelocity(tr.AveragePhase, sampleDt))
	fmt.Printf("collective frequency: %.3f rad/s\n", collective)

	if len(tr.Phases) == 0 {
		return nil
	}

	n := len(tr.Phases[0])
	locked := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nOSC\tMEAN VELOCITY\tLOCKED")
	for i := 0; i < n; i++ {
		series := make([]float64, len(tr.Phases))
		for s := range tr.Phases {
			series[s] = tr.Phases[s][i]
		}
		v := mean(analysis.PhaseVelocity(series, sampleDt))
		isLocked := math.Abs(v-collective) < lockTolerance
		if isLocked {
			locked++
		}
		fmt.Fprintf(w, "%d\t%.4f\t%v\n", i, v, isLocked)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nfrequency locked: %d/%d\n", locked, n)

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepPoints < 2 {
		return fmt.Errorf("need at least 2 points, got %d", sweepPoints)
	}

	strengths := make([]float64, sweepPoints)
	for i := range strengths {
		strengths[i] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepPoints-1)
	}

	build := func(k float64) (*kuramoto.Network, error) {
		c := *cfg
		c.Coupling = k
		return experiment.Build(&c)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping coupling", "from", sweepFrom, "to", sweepTo, "points", sweepPoints, "workers", sweepWorkers)
	start := time.Now()

	points, err := sim.NewSweep(build, experiment.SimConfig(cfg), sweepTransient).
		WithWorkers(sweepWorkers).
		Run(ctx, strengths)
	if err != nil {
		return err
	}
	logger.Debug("sweep finished", "elapsed", time.Since(start))

	orders := make([]float64, len(points))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tMEAN R")
	for i, p := range points {
		orders[i] = p.Order
		fmt.Fprintf(w, "%.3f\t%.4f\n", p.Strength, p.Order)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	graph := asciigraph.Plot(orders,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(fmt.Sprintf("mean r vs K in [%.2f, %.2f]", sweepFrom, sweepTo)),
	)
	fmt.Println(graph)

	return nil
}

func printTopology(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, a := range kuramoto.Arrangements() {
			fmt.Println(a)
		}
		return nil
	}

	a, err := kuramoto.ParseArrangement(args[0])
	if err != nil {
		return err
	}
	net, err := kuramoto.New(topologySize, topologyStrength, kuramoto.WithArrangement(a))
	if err != nil {
		return err
	}
	defer net.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, row := range net.Coupling() {
		cells := make([]string, len(row))
		for j, k := range row {
			cells[j] = fmt.Sprintf("%.2f", k)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tK\tTOPOLOGY\tNOISE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		topology := p.Arrangement
		if p.MeanField {
			topology = "mean-field"
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%.2f\n", name, p.Size, p.Coupling, topology, p.NoiseLevel)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	a := kuramoto.AllToAll
	if cfg.Arrangement != "" {
		if a, err = kuramoto.ParseArrangement(cfg.Arrangement); err != nil {
			return err
		}
	}

	build := func() (*kuramoto.Network, error) { return experiment.Build(cfg) }
	net, err := build()
	if err != nil {
		return err
	}

	m := viz.NewModel(net, name, a, build)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok {
		return fm.Network().Close()
	}
	return nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
