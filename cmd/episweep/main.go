package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mohar-s/episweep/internal/config"
	"github.com/mohar-s/episweep/internal/export"
	"github.com/mohar-s/episweep/internal/metrics"
	"github.com/mohar-s/episweep/internal/ode"
	"github.com/mohar-s/episweep/internal/store"
	"github.com/mohar-s/episweep/internal/sweep"
	"github.com/mohar-s/episweep/internal/tui"
)

var (
	dataDir    string
	gamma      float64
	population float64
	infected   float64
	horizon    float64
	points     int
	r0Min      float64
	r0Max      float64
	r0Step     float64
	r0Single   float64
	solver     string
	tolerance  float64
	workers    int
	configFile string
	preset     string
	csvOut     string
	jsonOut    string
	svgOut     string
	verbose    bool
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "episweep",
		Short: "SIR epidemic R0 sweep lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episweep", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the R0 sweep and save the dataset",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&r0Min, "r0-min", config.DefaultR0Min, "lowest R0")
	sweepCmd.Flags().Float64Var(&r0Max, "r0-max", config.DefaultR0Max, "highest R0")
	sweepCmd.Flags().Float64Var(&r0Step, "r0-step", config.DefaultR0Step, "R0 increment")
	sweepCmd.Flags().IntVar(&workers, "workers", 1, "parallel integrations")
	sweepCmd.Flags().StringVar(&csvOut, "csv", "", "also write dataset CSV to file")
	sweepCmd.Flags().StringVar(&jsonOut, "json", "", "also write dataset JSON to file")
	sweepCmd.Flags().StringVar(&svgOut, "svg", "", "also write SVG chart of the max-R0 series")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a single R0 and plot it in the terminal",
		RunE:  runSingle,
	}
	addModelFlags(runCmd)
	runCmd.Flags().Float64Var(&r0Single, "r0", 3.0, "basic reproduction number")

	scrubCmd := &cobra.Command{
		Use:   "scrub [run_id]",
		Short: "interactively scrub through R0 values of a saved sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScrub,
	}
	addModelFlags(scrubCmd)
	scrubCmd.Flags().Float64Var(&r0Min, "r0-min", config.DefaultR0Min, "lowest R0")
	scrubCmd.Flags().Float64Var(&r0Max, "r0-max", config.DefaultR0Max, "highest R0")
	scrubCmd.Flags().Float64Var(&r0Step, "r0-step", config.DefaultR0Step, "R0 increment")
	scrubCmd.Flags().IntVar(&workers, "workers", 1, "parallel integrations")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&csvOut, "csv", "", "write dataset CSV to file")
	exportCmd.Flags().StringVar(&jsonOut, "json", "", "write dataset JSON to file")
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "write SVG chart of the max-R0 series")

	rootCmd.AddCommand(sweepCmd, runCmd, scrubCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate (1/infectious period)")
	cmd.Flags().Float64Var(&population, "population", config.DefaultPopulation, "population size")
	cmd.Flags().Float64Var(&infected, "infected", config.DefaultInfected, "initial infected")
	cmd.Flags().Float64Var(&horizon, "days", config.DefaultHorizon, "time horizon in days")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "sample grid points")
	cmd.Flags().StringVar(&solver, "solver", "dopri", "integrator (dopri, rk4)")
	cmd.Flags().Float64Var(&tolerance, "tol", 0, "integration tolerance (0 = solver default)")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&preset, "preset", "", "disease preset (influenza, measles, covid)")
}

// buildConfig merges preset, config file, and CLI flags into a sweep config.
// Precedence: flags > config file > preset > defaults, following the flag
// merge pattern used throughout cobra CLIs (Changed checks).
func buildConfig(cmd *cobra.Command, r0s []float64) (sweep.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return sweep.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return sweep.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("population") {
		cfg.Population = population
	}
	if cmd.Flags().Changed("infected") {
		cfg.Infected = infected
	}
	if cmd.Flags().Changed("days") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver = solver
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("r0-min") {
		cfg.R0.Min = r0Min
	}
	if cmd.Flags().Changed("r0-max") {
		cfg.R0.Max = r0Max
	}
	if cmd.Flags().Changed("r0-step") {
		cfg.R0.Step = r0Step
	}

	if r0s == nil {
		r0s = sweep.R0Range(cfg.R0.Min, cfg.R0.Max, cfg.R0.Step)
	}

	return sweep.Config{
		R0:              r0s,
		Gamma:           cfg.Gamma,
		Population:      cfg.Population,
		InitialInfected: cfg.Infected,
		Horizon:         cfg.Horizon,
		Points:          cfg.Points,
		Solver:          cfg.Solver,
		Solve:           solveConfig(cfg.Tolerance),
		Workers:         cfg.Workers,
	}, nil
}

func solveConfig(tol float64) ode.Config {
	// zero tolerance keeps the solver defaults
	return ode.Config{AbsTol: tol, RelTol: tol}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}

	ds, err := computeSweep(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, ds)
	if err != nil {
		return err
	}
	log.WithField("run_id", runID).Info("sweep saved")
	fmt.Println(runID)

	return writeOutputs(ds)
}

func computeSweep(ctx context.Context, cfg sweep.Config) (sweep.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log.WithFields(logrus.Fields{
		"r0_values": len(cfg.R0),
		"points":    cfg.Points,
		"horizon":   cfg.Horizon,
		"solver":    cfg.Solver,
		"workers":   cfg.Workers,
	}).Info("starting sweep")

	start := time.Now()
	ds, err := sweep.New(cfg).Run(ctx)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"samples": len(ds),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("sweep complete")
	return ds, nil
}

func writeOutputs(ds sweep.Dataset) error {
	if csvOut != "" {
		if err := writeFile(csvOut, func(f *os.File) error { return export.WriteCSV(f, ds) }); err != nil {
			return err
		}
	}
	if jsonOut != "" {
		if err := writeFile(jsonOut, func(f *os.File) error { return export.WriteJSON(f, ds) }); err != nil {
			return err
		}
	}
	if svgOut != "" {
		r0s := ds.R0Values()
		if len(r0s) == 0 {
			return fmt.Errorf("empty dataset")
		}
		series := ds.Series(r0s[len(r0s)-1])
		if err := writeFile(svgOut, func(f *os.File) error { return export.WriteSVG(f, series, 900, 500) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	log.WithField("path", path).Info("wrote export")
	return nil
}

func runSingle(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, []float64{r0Single})
	if err != nil {
		return err
	}

	ds, err := computeSweep(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	series := ds.Series(r0Single)
	infectedCurve := make([]float64, len(series))
	for i, s := range series {
		infectedCurve[i] = s.I
	}

	graph := asciigraph.Plot(infectedCurve,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("infected, R0=%.2f, gamma=%.3f", r0Single, cfg.Gamma)),
	)
	fmt.Println(graph)

	sum := metrics.Summarize(series)
	fmt.Printf("\npeak infected %.0f on day %.0f, attack rate %.1f%%\n",
		sum.PeakI, sum.PeakDay, sum.AttackRate*100)
	return nil
}

func runScrub(cmd *cobra.Command, args []string) error {
	var ds sweep.Dataset

	if len(args) == 1 {
		st := store.New(dataDir)
		loaded, err := st.LoadDataset(args[0])
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", args[0], err)
		}
		ds = loaded
	} else {
		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			return err
		}
		ds, err = computeSweep(cmd.Context(), cfg)
		if err != nil {
			return err
		}
	}

	return tui.Run(ds)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tGAMMA\tPOP\tR0 VALUES\tPOINTS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.0f\t%d\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04"), r.Gamma, r.Population, len(r.R0Values), r.Points)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ds, err := st.LoadDataset(args[0])
	if err != nil {
		return err
	}

	if csvOut == "" && jsonOut == "" && svgOut == "" {
		return export.WriteCSV(os.Stdout, ds)
	}
	return writeOutputs(ds)
}
