package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cylsim/internal/analysis"
	"github.com/san-kum/cylsim/internal/automation"
	"github.com/san-kum/cylsim/internal/config"
	"github.com/san-kum/cylsim/internal/experiment"
	"github.com/san-kum/cylsim/internal/optim"
	"github.com/san-kum/cylsim/internal/sim"
	"github.com/san-kum/cylsim/internal/storage"
	"github.com/san-kum/cylsim/internal/thermo"
	"github.com/san-kum/cylsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	presetName string
	configFile string
	rpm        float64
	steps      int
	rate       float64
	// live view
	frameRate int
	// per-run views
	cylinder int
	outFile  string
	pvLoop   bool
	// sweep
	rpmList string
	// scan and tune
	paramName  string
	paramMin   float64
	paramMax   float64
	paramSteps int
	gridSpecs  []string
	metricName string
	target     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cylsim",
		Short: "crank-driven cylinder gas simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cylsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the trace",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addEngineFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot pressure and temperature of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&cylinder, "cylinder", 0, "cylinder index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of chamber pressure",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&cylinder, "cylinder", 0, "cylinder index")

	pvCmd := &cobra.Command{
		Use:   "pv [run_id]",
		Short: "pressure-volume diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  pvPlot,
	}
	pvCmd.Flags().IntVar(&cylinder, "cylinder", 0, "cylinder index")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a pressure trace or PV loop as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&cylinder, "cylinder", 0, "cylinder index")
	exportSVGCmd.Flags().BoolVar(&pvLoop, "pv", false, "plot pressure against volume")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the engine with a live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", viz.DefaultFPS, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list engine presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the engine at several speeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&rpmList, "rpms", "300,600,1200,2400", "comma separated speeds in rpm")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generator steps",
		Args:  cobra.NoArgs,
		RunE:  benchEngine,
	}
	benchCmd.Flags().StringVar(&presetName, "preset", "single", "preset to benchmark")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "sweep one engine parameter",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	addEngineFlags(scanCmd)
	scanCmd.Flags().StringVar(&paramName, "param", "compression_ratio", "parameter name")
	scanCmd.Flags().Float64Var(&paramMin, "min", 6, "first value")
	scanCmd.Flags().Float64Var(&paramMax, "max", 20, "last value")
	scanCmd.Flags().IntVar(&paramSteps, "n", 8, "number of values")
	scanCmd.Flags().IntVar(&cylinder, "cylinder", 0, "cylinder index")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search engine parameters for a target metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addEngineFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", []string{"compression_ratio=6:20:15"}, "name=min:max:n, repeatable")
	tuneCmd.Flags().StringVar(&metricName, "metric", "peak_pressure_0", "metric to match")
	tuneCmd.Flags().Float64Var(&target, "target", 40*thermo.Bar, "target metric value")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, pvCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd, sweepCmd, benchCmd, scenarioCmd, scanCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&presetName, "preset", "single", "preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml), overrides the preset")
	cmd.Flags().Float64Var(&rpm, "rpm", config.DefaultRPM, "engine speed")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "generator steps")
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "simulation rate (Hz)")
}

// resolveConfig layers the preset, the config file and any flags the user
// set explicitly, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("loaded config", "path", configFile, "name", cfg.Name)
	}

	if cmd.Flags().Changed("rpm") {
		cfg.Engine.RPM = rpm
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("rate") {
		cfg.Rate = rate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("running simulation", "name", cfg.Name, "rpm", cfg.Engine.RPM, "cylinders", len(cfg.Engine.Cylinders), "steps", cfg.Steps, "rate", cfg.Rate)
	start := time.Now()

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		slog.Warn("simulation stopped early, saving partial trace", "steps", result.StepsTaken, "err", runErr)
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Name:       cfg.Name,
		Rate:       cfg.Rate,
		SampleRate: cfg.SampleRate,
		Steps:      result.StepsTaken,
		Decimate:   cfg.Decimate,
		RPM:        cfg.Engine.RPM,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	slog.Debug("saved run", "id", runID, "dir", dataDir)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)

	return runErr
}

func printMetrics(w io.Writer, metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, metrics[name])
	}
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tRPM\tCYL\tSTEPS\tRATE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%d\t%.0fHz\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RPM,
			run.Cylinders,
			run.Steps,
			run.Rate,
		)
	}

	return w.Flush()
}

// loadRun reads a run and picks out one cylinder's trace.
func loadRun(runID string, cyl int) (*storage.RunMetadata, *sim.Result, *sim.Trace, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	result, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	if cyl < 0 || cyl >= len(result.Cylinders) {
		return nil, nil, nil, fmt.Errorf("run %s has %d cylinders, no cylinder %d", runID, len(result.Cylinders), cyl)
	}
	if result.Samples() < 2 {
		return nil, nil, nil, fmt.Errorf("no data in run %s", runID)
	}

	return meta, result, &result.Cylinders[cyl], nil
}

func inBar(pressure []float64) []float64 {
	out := make([]float64, len(pressure))
	for i, p := range pressure {
		out[i] = p / thermo.Bar
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, trace, err := loadRun(args[0], cylinder)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s at %.0f rpm\n", meta.Name, meta.RPM)
	fmt.Printf("samples: %d\n\n", result.Samples())

	graph := asciigraph.Plot(inBar(trace.Pressure),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cylinder %d pressure (bar)", cylinder)),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(trace.Temperature,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cylinder %d temperature (K)", cylinder)),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, trace, err := loadRun(args[0], cylinder)
	if err != nil {
		return err
	}

	dt := meta.Dt()
	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("engine: %s, cylinder %d\n\n", meta.Name, cylinder)

	ps := analysis.PowerSpectrum(trace.Pressure)
	if plotData := ps[1 : len(ps)/4+1]; len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (pressure)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(trace.Pressure, 1/dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n", 1/freq)
	}
	if period := analysis.PeakPeriod(trace.Pressure, dt); period > 0 {
		fmt.Printf("peak spacing: %.4f s\n", period)
	}
	if meta.RPM != 0 {
		fmt.Printf("crank period: %.4f s\n", 60/meta.RPM)
	}
	fmt.Printf("resolution: %.3f hz over %.3f s\n", 1/(dt*float64(result.Samples())), dt*float64(result.Samples()))

	return nil
}

func pvPlot(cmd *cobra.Command, args []string) error {
	meta, _, trace, err := loadRun(args[0], cylinder)
	if err != nil {
		return err
	}

	d := analysis.NewPVDiagram(trace.Volume, trace.Pressure)
	minV, maxV, minP, maxP := d.Bounds()

	fmt.Printf("pv diagram: %s, cylinder %d\n", meta.ID, cylinder)
	fmt.Printf("volume %.3f..%.3f cc, pressure %.3f..%.3f bar\n\n",
		minV/thermo.CCM, maxV/thermo.CCM, minP/thermo.Bar, maxP/thermo.Bar)
	fmt.Println(d.ASCII(80, 24))

	if work, ok := meta.Metrics[fmt.Sprintf("indicated_work_%d", cylinder)]; ok {
		fmt.Printf("\nindicated work: %.6g J\n", work)
	}
	return nil
}

// output returns stdout or the --out file; close must be called.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	result.Metrics = meta.Metrics
	result.StepsTaken = meta.Steps

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, trace, err := loadRun(args[0], cylinder)
	if err != nil {
		return err
	}

	var svg string
	if pvLoop {
		volume := make([]float64, len(trace.Volume))
		for i, v := range trace.Volume {
			volume[i] = v / thermo.CCM
		}
		svg = storage.TraceToSVG(volume, inBar(trace.Pressure), 800, 600, "#00ccff")
	} else {
		svg = storage.TraceToSVG(result.Times, inBar(trace.Pressure), 1200, 400, "#ff8800")
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeFn()
		return err
	}
	if outFile != "" {
		slog.Info("wrote svg", "path", outFile)
	}
	return closeFn()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := cfg.Build()
	if err != nil {
		return err
	}

	return viz.Run(viz.NewModel(g, cfg.Name, frameRate))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRPM\tCYL\tCR\tDISP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		c := p.Engine.Cylinders[0]
		fmt.Fprintf(w, "%s\t%.0f\t%d\t%.0f\t%.0fcc\n", name, p.Engine.RPM, len(p.Engine.Cylinders), c.CompressionRatio, c.DisplacementCC)
	}
	return w.Flush()
}

func parseRPMs(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	rpms := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rpm %q: %w", f, err)
		}
		rpms = append(rpms, v)
	}
	if len(rpms) == 0 {
		return nil, fmt.Errorf("no speeds given")
	}
	return rpms, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rpms, err := parseRPMs(rpmList)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("sweeping", "name", cfg.Name, "speeds", len(rpms), "steps", cfg.Steps)
	start := time.Now()
	results, err := exp.Sweep(ctx, rpms)
	if err != nil {
		return err
	}
	slog.Debug("sweep done", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RPM\tCYL\tPEAK P\tMIN P\tPEAK T\tWORK\tDRIFT")
	for i, r := range results {
		for c := range r.Cylinders {
			m := func(name string) float64 { return r.Metrics[fmt.Sprintf("%s_%d", name, c)] }
			fmt.Fprintf(w, "%.0f\t%d\t%.3f bar\t%.3f bar\t%.1f K\t%.4g J\t%.2g\n",
				rpms[i], c,
				m("peak_pressure")/thermo.Bar,
				m("min_pressure")/thermo.Bar,
				m("peak_temperature"),
				m("indicated_work"),
				m("ideal_gas_drift"),
			)
		}
	}
	return w.Flush()
}

func benchEngine(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	fmt.Printf("benchmarking %s (%d cylinders)\n\n", cfg.Name, len(cfg.Engine.Cylinders))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDECIMATE\tTIME\tSTEPS/SEC\tREALTIME")

	for _, n := range []int{10000, 100000, 1000000} {
		for _, decimate := range []int{1, 100} {
			g, err := cfg.Build()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sim.New().Run(context.Background(), g, sim.Config{Steps: n, Decimate: decimate})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1fx\n",
				n, decimate, elapsed, stepsPerSec, stepsPerSec/cfg.Rate)
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}

	results, runErr := automation.RunScenario(ctx, sc, st)
	for i, r := range results {
		fmt.Printf("step %d: %s", i+1, r.Name)
		if r.RunID != "" {
			fmt.Printf(" (run id: %s)", r.RunID)
		}
		fmt.Println()
		printMetrics(os.Stdout, r.Result.Metrics)
	}
	return runErr
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  paramSteps,
		Cylinder:  cylinder,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK P\tMIN P\tPEAK T\tDRIFT\n", strings.ToUpper(paramName))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.3f bar\t%.3f bar\t%.1f K\t%.2g\n",
			r.ParamValue, r.PeakPressure/thermo.Bar, r.MinPressure/thermo.Bar, r.PeakTemperature, r.Drift)
	}
	return w.Flush()
}

// parseGrid reads name=min:max:n.
func parseGrid(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid grid %q: want name=min:max:n", arg)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid grid %q: want name=min:max:n", arg)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid grid %q: %w", arg, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid grid %q: %w", arg, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("invalid grid %q: bad count", arg)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridSpecs))
	ranges := make([][]float64, 0, len(gridSpecs))
	for _, arg := range gridSpecs {
		name, values, err := parseGrid(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("grid search", "params", names, "metric", metricName, "target", target)
	best, score, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, optim.TargetMetric(metricName, target))
	if err != nil {
		return err
	}

	fmt.Println("best parameters:")
	printMetrics(os.Stdout, best)
	fmt.Printf("\n%s off target by %.6g\n", metricName, score)
	return nil
}
