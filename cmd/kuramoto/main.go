package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/lmittmann/tint"
	"github.com/san-kum/kuramoto/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	verbose  bool
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)

	size        int
	coupling    float64
	arrangement string
	meanField   bool
	normalize   bool
	noiseLevel  float64
	dt          float64
	duration    float64
	seed        int64
	increment   float64
	sampleEvery int

	configFile string
	preset     string
	saveConfig string
	noSave     bool

	sweepFrom      float64
	sweepTo        float64
	sweepPoints    int
	sweepTransient float64
	sweepWorkers   int

	topologySize     int
	topologyStrength float64

	ensembleRuns    int
	ensembleWorkers int

	svgOut    string
	svgSize   int
	svgSample int
)

func main() {
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05",
	}))

	rootCmd := &cobra.Command{
		Use:           "kuramoto",
		Short:         "coupled oscillator synchronization lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return fmt.Errorf("load environment: %w", err)
			}
			logLevel.Set(env.LogLevel)
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
			if !cmd.Flags().Changed("data") {
				dataDir = env.DataDir
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its trace",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addNetworkFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot order parameter of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run trace as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "order parameter across a range of coupling strengths",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addNetworkFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first coupling strength")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 4, "last coupling strength")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 17, "number of strengths")
	sweepCmd.Flags().Float64Var(&sweepTransient, "transient", 5, "seconds discarded before averaging")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "concurrent networks")

	topologyCmd := &cobra.Command{
		Use:   "topology [arrangement]",
		Short: "print the coupling matrix of an arrangement",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printTopology,
	}
	topologyCmd.Flags().IntVarP(&topologySize, "size", "n", 6, "number of oscillators")
	topologyCmd.Flags().Float64VarP(&topologyStrength, "coupling", "k", 1, "coupling strength")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a network synchronize in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addNetworkFlags(liveCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "repeat a simulation over consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addNetworkFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 16, "number of seeds")
	ensembleCmd.Flags().IntVar(&ensembleWorkers, "workers", runtime.NumCPU(), "concurrent runs")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output prefix (default: run id)")
	svgCmd.Flags().IntVar(&svgSize, "size", 400, "image size in pixels")
	svgCmd.Flags().IntVar(&svgSample, "sample", -1, "sample index for the ring, negative counts from the end")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, sweepCmd, topologyCmd, presetsCmd, liveCmd, scenarioCmd, ensembleCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&size, "size", "n", config.DefaultSize, "number of oscillators")
	cmd.Flags().Float64VarP(&coupling, "coupling", "k", config.DefaultCoupling, "coupling strength")
	cmd.Flags().StringVar(&arrangement, "arrangement", config.DefaultArrangement, "coupling topology")
	cmd.Flags().BoolVar(&meanField, "mean-field", false, "use mean-field coupling")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "divide pairwise coupling by N")
	cmd.Flags().Float64Var(&noiseLevel, "noise", 0, "noise level in [0, 1]")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultStepSize, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "noise seed")
	cmd.Flags().Float64Var(&increment, "increment", config.DefaultIncrement, "noise coordinate spacing between oscillators")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "record every n-th step")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "custom"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("arrangement") {
		cfg.Arrangement = arrangement
	}
	if flags.Changed("mean-field") {
		cfg.MeanField = meanField
	}
	if flags.Changed("normalize") {
		cfg.Normalize = normalize
	}
	if flags.Changed("noise") {
		cfg.NoiseLevel = noiseLevel
	}
	if flags.Changed("dt") {
		cfg.StepSize = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("increment") {
		cfg.Increment = increment
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}
