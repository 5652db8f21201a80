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
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatlab/internal/analysis"
	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/experiment"
	"github.com/san-kum/heatlab/internal/export"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/profile"
	"github.com/san-kum/heatlab/internal/solver"
	"github.com/san-kum/heatlab/internal/storage"
	"github.com/san-kum/heatlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	domainA float64
	domainB float64
	dt      float64
	nx      int
	nt      int

	profileName string
	solverName  string
	k0          float64
	alpha       float64
	center      float64
	width       float64
	amp         float64
	mode        int

	tol     float64
	maxIter int
	damping float64

	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heatlab",
		Short: "nonlinear heat equation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive launcher when no command given
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [material]",
		Short: "run a diffusion simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [material]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "fit an exponential decay to the peak history",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "profile.svg", "output file")

	compareCmd := &cobra.Command{
		Use:   "compare [material1] [material2] ...",
		Short: "compare materials on the same initial profile",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMaterials,
	}
	addRunFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [material]",
		Short: "benchmark linear solvers across grid sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSolvers,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [material]",
		Short: "list available presets for a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for material: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, compareCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&domainA, "a", config.DefaultA, "left domain boundary")
	cmd.Flags().Float64Var(&domainB, "b", config.DefaultB, "right domain boundary")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "interior grid points")
	cmd.Flags().IntVar(&nt, "nt", config.DefaultNt, "number of time steps")
	cmd.Flags().StringVar(&profileName, "profile", "gaussian", "initial profile")
	cmd.Flags().StringVar(&solverName, "solver", "dense", "linear solver")
	cmd.Flags().Float64Var(&k0, "k0", config.DefaultK0, "base diffusivity")
	cmd.Flags().Float64Var(&alpha, "alpha", 1.0, "exponential material steepness")
	cmd.Flags().Float64Var(&center, "center", 0, "profile center")
	cmd.Flags().Float64Var(&width, "width", 0.25, "profile width")
	cmd.Flags().Float64Var(&amp, "amp", 1.0, "profile amplitude")
	cmd.Flags().IntVar(&mode, "mode", 1, "sine mode number")
	cmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "newton convergence tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxNewton, "newton iteration cap")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "newton damping factor")
}

// buildConfig resolves precedence: preset, then config file, then
// explicitly set flags.
func buildConfig(cmd *cobra.Command, materialName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Material = materialName

	if preset != "" {
		p := config.GetPreset(materialName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(materialName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Material = materialName
		cfg = loaded
	}

	if cmd.Flags().Changed("a") {
		cfg.A = domainA
	}
	if cmd.Flags().Changed("b") {
		cfg.B = domainB
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("nx") {
		cfg.Nx = nx
	}
	if cmd.Flags().Changed("nt") {
		cfg.Nt = nt
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = profileName
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("k0") {
		cfg.MaterialParams.K0 = k0
	}
	if cmd.Flags().Changed("alpha") {
		cfg.MaterialParams.Alpha = alpha
	}
	if cmd.Flags().Changed("center") {
		cfg.ProfileParams.Center = center
	}
	if cmd.Flags().Changed("width") {
		cfg.ProfileParams.Width = width
	}
	if cmd.Flags().Changed("amp") {
		cfg.ProfileParams.Amp = amp
	}
	if cmd.Flags().Changed("mode") {
		cfg.ProfileParams.Mode = mode
	}
	if cmd.Flags().Changed("tol") {
		cfg.Newton.Tol = tol
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.Newton.MaxIter = maxIter
	}
	if cmd.Flags().Changed("damping") {
		cfg.Newton.Damping = damping
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("running %s diffusion (%s profile, %s solver)...\n", cfg.Material, cfg.Profile, cfg.Solver)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d/%d\n", result.StepsTaken, cfg.Nt)
	if len(result.Errors) > 0 {
		fmt.Printf("aborted: %v\n", result.Errors[0])
	}
	fmt.Printf("avg newton iters: %.2f\n", avgIters(result.NewtonIters))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func avgIters(iters []int) float64 {
	if len(iters) == 0 {
		return 0
	}
	sum := 0
	for _, n := range iters {
		sum += n
	}
	return float64(sum) / float64(len(iters))
}

func makeMaterial(name string, params config.MaterialConfig) func(float64) material.Model {
	switch name {
	case "constant":
		return material.Constant
	case "quadratic":
		return material.Quadratic
	case "exponential":
		a := params.Alpha
		return func(k float64) material.Model { return material.Exponential(k, a) }
	default:
		return material.Rational
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetMaterial(cfg.Material, cfg.MaterialParams); err != nil {
		return err
	}
	p, err := registry.GetProfile(cfg)
	if err != nil {
		return err
	}
	lin, err := registry.GetSolver(cfg.Solver)
	if err != nil {
		return err
	}

	grid, err := diffusion.NewGrid(cfg.A, cfg.B, cfg.Nx)
	if err != nil {
		return err
	}

	newton := solver.NewNewton(lin)
	newton.Tol = cfg.Newton.Tol
	newton.MaxIter = cfg.Newton.MaxIter
	newton.Damping = cfg.Newton.Damping

	m := viz.NewModel(grid, cfg.Material, cfg.MaterialParams.K0,
		makeMaterial(cfg.Material, cfg.MaterialParams),
		newton, profile.Sample(p, grid), cfg.Dt)

	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
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
	fmt.Fprintln(w, "ID\tMATERIAL\tPROFILE\tTIME\tNX\tDT\tSTEPS\tSOLVER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2e\t%d\t%s\n",
			run.ID,
			run.Material,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx,
			run.Dt,
			run.Steps,
			run.Solver,
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

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("material: %s\n", meta.Material)
	fmt.Printf("samples: %d\n\n", len(frames))

	final := frames[len(frames)-1]
	graph := asciigraph.Plot(final,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("u(x) at t=%.4f", times[len(times)-1])),
	)
	fmt.Println(graph)
	fmt.Println()

	peaks := analysis.PeakHistory(frames)
	graph = asciigraph.Plot(peaks,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("peak |u| vs time"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("decay analysis: %s\n", meta.ID)
	fmt.Printf("material: %s\n\n", meta.Material)

	peaks := analysis.PeakHistory(frames)
	graph := asciigraph.Plot(peaks,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("peak |u| vs time"),
	)
	fmt.Println(graph)
	fmt.Println()

	fit, err := analysis.FitDecay(times, peaks)
	if err != nil {
		return err
	}

	fmt.Printf("decay rate:  %.6f\n", fit.Lambda)
	fmt.Printf("amplitude:   %.6f\n", fit.Amplitude)
	fmt.Printf("fit residual: %.2e\n", fit.Residual)
	fmt.Printf("half-life:   %.6f\n", fit.HalfLife())

	return nil
}

// metaResult rebuilds a Result from stored padded frames.
func metaResult(meta *storage.RunMetadata, frames [][]float64, times []float64) *diffusion.Result {
	result := &diffusion.Result{
		Frames:  make([]diffusion.Frame, len(frames)),
		Times:   times,
		Metrics: meta.Metrics,
	}
	result.StepsTaken = meta.Steps
	for i, u := range frames {
		result.Frames[i] = diffusion.Frame{
			Step: i,
			Time: times[i],
			U:    diffusion.Solution(u),
		}
	}
	return result
}

func metaConfig(meta *storage.RunMetadata) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Material = meta.Material
	cfg.Profile = meta.Profile
	cfg.Solver = meta.Solver
	cfg.A = meta.A
	cfg.B = meta.B
	cfg.Dt = meta.Dt
	cfg.Nx = meta.Nx
	cfg.Nt = meta.Nt
	return cfg
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(metaConfig(meta), metaResult(meta, frames, times))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range frames[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	grid, err := diffusion.NewGrid(meta.A, meta.B, meta.Nx)
	if err != nil {
		return err
	}

	final := frames[len(frames)-1]
	interior := final
	if len(final) >= 2 {
		interior = final[1 : len(final)-1]
	}

	svg := export.ProfileToSVG(grid, diffusion.Solution(interior), 800, 400, "#00ff00")
	if svg == "" {
		return fmt.Errorf("profile does not match the stored grid")
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func compareMaterials(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	fmt.Printf("comparing materials (nx=%d, dt=%.2e, nt=%d)\n\n", nx, dt, nt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tFINAL PEAK\tHEAT CONTENT\tAVG ITERS\tTIME MS")

	for _, name := range args {
		cfg, err := buildConfig(cmd, name)
		if err != nil {
			return err
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2f\t%.2f\n",
			name,
			result.Metrics["peak"],
			result.Metrics["heat_content"],
			avgIters(result.NewtonIters),
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	materialName := args[0]
	registry := experiment.NewRegistry()

	sizes := []int{31, 63, 127}
	dts := []float64{1e-4, 5e-4}

	fmt.Printf("benchmarking %s\n\n", materialName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tNX\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, solverName := range []string{"dense", "tridiag"} {
		for _, size := range sizes {
			for _, step := range dts {
				cfg := config.DefaultConfig()
				cfg.Material = materialName
				cfg.Solver = solverName
				cfg.Nx = size
				cfg.Dt = step
				cfg.Nt = 100

				exp, err := experiment.New(cfg, registry)
				if err != nil {
					return err
				}

				start := time.Now()
				result, err := exp.Run(context.Background())
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
				fmt.Fprintf(w, "%s\t%d\t%.1e\t%d\t%v\t%.0f\n",
					solverName, size, step, result.StepsTaken, elapsed, stepsPerSec)
			}
		}
	}

	return w.Flush()
}
