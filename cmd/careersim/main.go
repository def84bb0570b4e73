package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/config"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/experiment"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/scenario"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/storage"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sweep"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	years      float64
	evalPoints int
	dt         float64
	seed       int64
	integrator string

	initPay      float64
	initStatus   float64
	initResearch float64

	inflation      float64
	recognition    float64
	alphaResearch  float64
	alphaTeaching  float64
	beta           float64
	payCeiling     float64
	stochastic     bool
	statusLinked   bool
	activationYear float64

	// ensemble
	numRuns int
	// sweep
	sweepCoeff   string
	factorMin    float64
	factorMax    float64
	factorSteps  int
	// compare
	recognitionA float64
	recognitionB float64
	labelA       string
	labelB       string
	salaryCSV    string
	// live
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careersim",
		Short: "academic career trajectory simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".careersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one career",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "simulate many careers from random starting points",
		RunE:  runEnsemble,
	}
	addModelFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 10, "number of careers")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sensitivity sweep: perturb coefficients, track final pay",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepCoeff, "coeff", "all", "coefficient to sweep (recognition|alpha_research|alpha_teaching|beta|all)")
	sweepCmd.Flags().Float64Var(&factorMin, "factor-min", 0.1, "smallest multiplicative factor")
	sweepCmd.Flags().Float64Var(&factorMax, "factor-max", 2.0, "largest multiplicative factor")
	sweepCmd.Flags().IntVar(&factorSteps, "factor-steps", 20, "number of factors")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run two careers differing only in recognition",
		RunE:  runCompare,
	}
	addModelFlags(compareCmd)
	compareCmd.Flags().Float64Var(&recognitionA, "recognition-a", 0.03, "recognition coefficient for scenario A")
	compareCmd.Flags().Float64Var(&recognitionB, "recognition-b", 0.02, "recognition coefficient for scenario B")
	compareCmd.Flags().StringVar(&labelA, "label-a", "A", "name for scenario A")
	compareCmd.Flags().StringVar(&labelB, "label-b", "B", "name for scenario B")
	compareCmd.Flags().StringVar(&salaryCSV, "csv", "", "observed salary CSV to overlay (year,salary)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a career evolve in the terminal",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, sweepCmd, compareCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&years, "years", config.DefaultYears, "career length in years")
	cmd.Flags().IntVar(&evalPoints, "points", config.DefaultEvalPoints, "trajectory sample count")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "initial timestep")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler|rk4|rk45)")
	cmd.Flags().Float64Var(&initPay, "pay", config.DefaultPay, "initial pay")
	cmd.Flags().Float64Var(&initStatus, "status", config.DefaultStatus, "initial status [0,1]")
	cmd.Flags().Float64Var(&initResearch, "research", config.DefaultResearch, "initial research level [0,1]")
	cmd.Flags().Float64Var(&inflation, "inflation", 0.03, "inflation rate")
	cmd.Flags().Float64Var(&recognition, "recognition", 0.03, "recognition coefficient")
	cmd.Flags().Float64Var(&alphaResearch, "alpha-research", 0.1, "research contribution to status growth")
	cmd.Flags().Float64Var(&alphaTeaching, "alpha-teaching", 0.05, "teaching contribution to status growth")
	cmd.Flags().Float64Var(&beta, "beta", 0.5, "research growth rate")
	cmd.Flags().Float64Var(&payCeiling, "ceiling", 0, "pay ceiling (0 disables)")
	cmd.Flags().BoolVar(&stochastic, "stochastic", false, "draw coefficients per call")
	cmd.Flags().BoolVar(&statusLinked, "status-linked-beta", false, "scale research growth by status")
	cmd.Flags().Float64Var(&activationYear, "activation-year", 0, "year the coefficients switch on (0 = always)")
}

// resolveConfig applies preset, then config file, then changed flags, in
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("years") {
		cfg.Years = years
	}
	if flags.Changed("points") {
		cfg.EvalPoints = evalPoints
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pay") {
		cfg.InitState.Pay = initPay
	}
	if flags.Changed("status") {
		cfg.InitState.Status = initStatus
	}
	if flags.Changed("research") {
		cfg.InitState.Research = initResearch
	}
	if flags.Changed("inflation") {
		cfg.Params.Inflation = inflation
	}
	if flags.Changed("recognition") {
		cfg.Params.Recognition = recognition
	}
	if flags.Changed("alpha-research") {
		cfg.Params.AlphaResearch = alphaResearch
	}
	if flags.Changed("alpha-teaching") {
		cfg.Params.AlphaTeaching = alphaTeaching
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("ceiling") {
		cfg.Params.PayCeiling = payCeiling
	}
	if flags.Changed("stochastic") {
		cfg.Params.Stochastic = stochastic
	}
	if flags.Changed("status-linked-beta") {
		cfg.Params.StatusLinkedBeta = statusLinked
	}
	if flags.Changed("activation-year") {
		cfg.Params.ActivationYear = activationYear
	}

	if cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return cfg, nil
}

func scenarioName() string {
	if preset != "" {
		return preset
	}
	return "career"
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

	exp := experiment.New(cfg, cfg.Seed)

	fmt.Println("simulating career...")
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenarioName(), cfg.CareerParams(), cfg.Years, cfg.EvalPoints, cfg.Seed, cfg.Integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, samples: %d\n", result.StepsTaken, len(result.States))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.2f\n", name, val)
	}

	fmt.Println()
	fmt.Print(viz.TrajectoryPlots(result))

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, cfg.Seed)

	fmt.Printf("simulating %d careers...\n", numRuns)
	results, err := exp.RunEnsemble(context.Background(), numRuns)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTART_STATUS\tSTART_RESEARCH\tFINAL_PAY\tLIFETIME_PAY\tPEAK_STATUS")

	var totalLifetime float64
	for i, r := range results {
		first := r.States[0]
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.0f\t%.0f\t%.3f\n",
			i,
			first[career.IStatus],
			first[career.IResearch],
			r.Metrics["final_pay"],
			r.Metrics["lifetime_pay"],
			r.Metrics["peak_status"],
		)
		totalLifetime += r.Metrics["lifetime_pay"]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean lifetime pay: %.0f\n", totalLifetime/float64(len(results)))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := sweep.Sweep{
		Coefficients: career.Coefficients(),
		Factors:      sweep.Factors(factorMin, factorMax, factorSteps),
	}
	if sweepCoeff != "all" {
		s.Coefficients = []string{sweepCoeff}
	}

	registry := experiment.NewRegistry()
	factory, err := registry.IntegratorFactory(cfg.Integrator)
	if err != nil {
		return err
	}

	runner := sweep.NewRunner(cfg.CareerParams(), cfg.InitialState(), cfg.SimConfig(), factory, cfg.Seed)

	fmt.Printf("sweeping %v over factors [%.2f, %.2f]...\n", s.Coefficients, factorMin, factorMax)
	grid, err := runner.Run(context.Background(), s)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "FACTOR")
	for _, coeff := range grid.Coefficients {
		fmt.Fprintf(w, "\t%s", coeff)
	}
	fmt.Fprintln(w)

	for j, factor := range grid.Factors {
		fmt.Fprintf(w, "%.2f", factor)
		for i := range grid.Coefficients {
			fmt.Fprintf(w, "\t%.0f", grid.FinalPay[i][j])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(viz.SweepPlot(grid))
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	base := cfg.CareerParams()

	paramsA := base
	paramsA.Recognition = recognitionA
	paramsB := base
	paramsB.Recognition = recognitionB

	scenarios := []scenario.Scenario{
		{Name: labelA, Params: paramsA, Seed: cfg.Seed},
		{Name: labelB, Params: paramsB, Seed: cfg.Seed + 1},
	}

	registry := experiment.NewRegistry()
	factory, err := registry.IntegratorFactory(cfg.Integrator)
	if err != nil {
		return err
	}

	cmpResult, err := scenario.Compare(context.Background(), scenarios, cfg.InitialState(), cfg.SimConfig(), factory)
	if err != nil {
		return err
	}

	var observed []scenario.SalaryPoint
	if salaryCSV != "" {
		observed, err = scenario.LoadSalaryCSV(salaryCSV)
		if err != nil {
			return err
		}
	}

	fmt.Print(viz.ComparisonPlot(cmpResult, observed))

	gap := cmpResult.PayGap(labelA, labelB)
	if len(gap) > 0 {
		fmt.Printf("\nfinal pay gap (%s - %s): %.0f\n", labelA, labelB, gap[len(gap)-1])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, cfg.Seed)
	dyn, integ, err := exp.Build()
	if err != nil {
		return err
	}

	m := viz.NewModel(dyn, integ, cfg.InitialState(), cfg.Dt, cfg.Years, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tYEARS\tSAMPLES\tINTEG\tFINAL_PAY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%s\t%.0f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Years,
			run.EvalPoints,
			run.Integrator,
			run.Metrics["final_pay"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(result.States))

	fmt.Print(viz.TrajectoryPlots(result))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "pay", "status", "research"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}
