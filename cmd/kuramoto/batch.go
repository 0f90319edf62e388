package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/kuramoto/internal/automation"
	"github.com/san-kum/kuramoto/internal/export"
	"github.com/san-kum/kuramoto/internal/storage"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}

	results, runErr := automation.RunScenario(ctx, sc, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tRUN ID\tFINAL R\tMEAN R")
	for i, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.4f\n",
			i+1, r.Name, id,
			r.Result.Order[len(r.Result.Order)-1],
			r.Result.Metrics["mean_order"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running ensemble", "name", name, "runs", ensembleRuns, "workers", ensembleWorkers)
	results, err := automation.RunEnsemble(ctx, cfg, ensembleRuns, ensembleWorkers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFINAL R\tMEAN R")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n", r.Seed, r.FinalOrder, r.MeanOrder)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std, synced := automation.EnsembleStats(results, cfg.LockLevel)
	fmt.Printf("\nfinal r: %.4f ± %.4f\n", mean, std)
	fmt.Printf("synchronized (r >= %.2f): %d/%d\n", cfg.LockLevel, synced, len(results))
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(tr.Phases) == 0 {
		return fmt.Errorf("run %s has no recorded phases", runID)
	}

	idx := svgSample
	if idx < 0 {
		idx += len(tr.Phases)
	}
	if idx < 0 || idx >= len(tr.Phases) {
		return fmt.Errorf("sample %d out of range [0, %d)", svgSample, len(tr.Phases))
	}

	prefix := svgOut
	if prefix == "" {
		prefix = runID
	}

	ringPath := prefix + "_ring.svg"
	if err := writeFile(ringPath, func(f *os.File) error {
		return export.RingSVG(f, tr.Phases[idx], svgSize)
	}); err != nil {
		return err
	}

	orderPath := prefix + "_order.svg"
	if err := writeFile(orderPath, func(f *os.File) error {
		return export.OrderSVG(f, tr.Times, tr.Order, svgSize*2, svgSize/2)
	}); err != nil {
		return err
	}

	logger.Info("svg written", "ring", ringPath, "order", orderPath, "time", tr.Times[idx])
	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
