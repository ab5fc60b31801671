// main.go
// Copyright (c) 2026 Ichijo Hodaka
// Redox Exergy（酸化還元半反応の熱力学評価）
// - 環境（pH, T）ごとに Nernst 補正した E, ΔG, エクセルギー効率を計算
// - (T, pH) の格子を総当たりして ΔH 基準の効率が最大の条件を探す
// - pH / T を 1 次元で掃引して安定性（Stable / Moderate / Sensitive）を分類
// - 結果は CSV（TSV）、xlsx、SQLite の実行履歴に保存
// - Ctrl-C で反応の区切りで中断

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/report"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/simulate"
	"github.com/ichijohodaka/redox-exergy/internal/store"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// app は 1 回のコマンド実行に必要なものをまとめる
type app struct {
	cfg   *Config
	log   *zap.Logger
	eng   thermo.Engine
	pairs []redox.Pair
	envs  []redox.Environment
	out   *outputs
}

func newApp(cfg *Config, log *zap.Logger, w io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pairs, envs, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:   cfg,
		log:   log,
		eng:   thermo.New(cfg.Constants),
		pairs: pairs,
		envs:  envs,
		out:   &outputs{cfg: cfg.Output, log: log, w: w},
	}, nil
}

func (a *app) catalog() error {
	if err := a.out.emit("=== Redox pairs ===", report.CatalogTable(a.pairs), "catalog.csv"); err != nil {
		return err
	}
	return a.out.emit("=== Redox ladder ===", report.LadderTable(a.eng.Ladder(a.pairs)), "ladder.csv")
}

func (a *app) simulate() error {
	rows := simulate.Run(a.eng, a.pairs, a.envs)
	a.out.rows = rows
	for _, r := range rows {
		a.log.Debug("evaluated",
			zap.String("pair", r.Pair.Name),
			zap.String("environment", r.Environment.Name),
			zap.Float64("delta_g", r.DeltaG),
		)
	}
	// 表示は (環境, 反応) 順、ファイルは計算順のまま
	a.out.show("=== Simulation results ===", report.ResultTable(report.ResultRecords(simulate.SortByEnvironment(rows))))
	return a.out.save(report.ResultTable(report.ResultRecords(rows)), "results.csv")
}

func (a *app) optimize(ctx context.Context) error {
	opts, err := optimize.RunAll(ctx, a.eng, a.pairs, a.cfg.Grid, a.cfg.Workers, a.log)
	if err != nil {
		return err
	}
	a.out.optima = opts
	return a.out.emit("=== Optimal conditions ===", report.OptimalTable(report.OptimalRecords(opts)), "optimal_conditions.csv")
}

func (a *app) sensitivity(ctx context.Context) error {
	results, err := sensitivity.RunAll(ctx, a.eng, a.pairs, a.cfg.Sweep, a.cfg.Workers, a.log)
	if err != nil {
		return err
	}

	// 掃引データは反応ごとのファイルへ（コンソールには出さない）
	for _, r := range results {
		safe := redox.SafeName(r.Pair.Name)
		if err := report.WriteCSV(a.out.path(filepath.Join("sensitivity", safe+"_pH_sweep.csv")), report.SweepTable(safe+"_pH", "pH", r.PH)); err != nil {
			return err
		}
		if err := report.WriteCSV(a.out.path(filepath.Join("sensitivity", safe+"_T_sweep.csv")), report.SweepTable(safe+"_T", "T (K)", r.Temperature)); err != nil {
			return err
		}
	}

	sums := sensitivity.Summaries(results)
	a.out.summaries = sums
	if err := a.out.emit("=== Sensitivity summary ===", report.SummaryTable(report.SummaryRecords(sums)), "sensitivity_summary.csv"); err != nil {
		return err
	}
	a.out.show("=== Stability ===", report.StabilityTable(sums))
	a.out.sheets = append(a.out.sheets, report.SweepsTable(results))
	return nil
}

// finish は xlsx と実行履歴を書く
func (a *app) finish(ctx context.Context, command string) error {
	if err := a.out.saveWorkbook(); err != nil {
		return err
	}
	return a.out.record(ctx, a.cfg.DBFile, command, len(a.pairs))
}

// listRuns は実行履歴を表示する。id を渡すとその実行の結果を表示する。
func listRuns(ctx context.Context, dbFile string, id string, w io.Writer, maxPrint int) error {
	if dbFile == "" {
		return fmt.Errorf("no run store configured (use --db or REDOX_DB)")
	}
	s, err := store.Open(dbFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if id == "" {
		runs, err := s.Runs(ctx, maxPrint)
		if err != nil {
			return err
		}
		t := report.Table{Name: "Runs", Header: []string{"ID", "Command", "Started", "Pairs"}}
		for _, r := range runs {
			t.Rows = append(t.Rows, []any{r.ID, r.Command, r.StartedAt.Format("2006-01-02 15:04:05"), r.Pairs})
		}
		report.Print(w, "=== Runs ===", t, 0)
		return nil
	}

	run, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "run=%s  command=%s  pairs=%d\n\n", run.ID, run.Command, run.Pairs)
	opts, err := s.Optima(ctx, run.ID)
	if err != nil {
		return err
	}
	report.Print(w, "=== Optimal conditions ===", report.OptimalTable(report.OptimalRecords(opts)), maxPrint)
	sums, err := s.Summaries(ctx, run.ID)
	if err != nil {
		return err
	}
	report.Print(w, "=== Sensitivity summary ===", report.SummaryTable(report.SummaryRecords(sums)), maxPrint)
	return nil
}

// flags はコマンドラインから上書きする値
type flags struct {
	configFile string
	verbose    bool
	outDir     string
	xlsxFile   string
	dbFile     string
	workers    int
	tsv        bool
	dump       string
}

func newRootCmd(w io.Writer) *cobra.Command {
	var (
		f      flags
		cfg    *Config
		logger *zap.Logger
	)

	root := &cobra.Command{
		Use:   "redox-exergy",
		Short: "Thermodynamic evaluation of redox half-reactions",
		Long: `redox-exergy computes Nernst-adjusted potentials, Gibbs free energy and
exergy efficiency for a catalog of redox half-reactions, searches the
(temperature, pH) grid for the most efficient conditions and classifies
each reaction's stability from one-dimensional pH and temperature sweeps.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if f.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cfg, err = Load(f.configFile)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("out") {
				cfg.Output.Dir = f.outDir
			}
			if fl.Changed("xlsx") {
				cfg.Output.XLSXFile = f.xlsxFile
			}
			if fl.Changed("db") {
				cfg.DBFile = f.dbFile
			}
			if fl.Changed("workers") {
				cfg.Workers = f.workers
			}
			if fl.Changed("tsv") {
				cfg.Output.TSV = f.tsv
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.SetOut(w)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "YAML config file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&f.outDir, "out", "", "output directory")
	pf.StringVar(&f.xlsxFile, "xlsx", "", "xlsx workbook file (relative to --out)")
	pf.StringVar(&f.dbFile, "db", "", "SQLite run history file")
	pf.IntVar(&f.workers, "workers", 0, "reactions evaluated in parallel")
	pf.BoolVar(&f.tsv, "tsv", false, "also write TSV next to each CSV")

	// コマンド本体: app を作って fn を実行し、最後に xlsx と履歴を書く
	run := func(name string, fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, logger, w)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := fn(ctx, a); err != nil {
				return err
			}
			return a.finish(ctx, name)
		}
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the redox pair reference table and the redox ladder",
		Args:  cobra.NoArgs,
		RunE: run("catalog", func(ctx context.Context, a *app) error {
			if f.dump != "" {
				if err := (redox.File{Pairs: a.pairs, Environments: a.envs}).Save(f.dump); err != nil {
					return err
				}
				a.log.Info("catalog written", zap.String("path", f.dump))
			}
			return a.catalog()
		}),
	}
	catalogCmd.Flags().StringVar(&f.dump, "dump", "", "write the active catalog as YAML")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Evaluate every redox pair in every environment",
		Args:  cobra.NoArgs,
		RunE: run("simulate", func(ctx context.Context, a *app) error {
			return a.simulate()
		}),
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Grid-search (T, pH) for the highest enthalpy-based exergy efficiency",
		Args:  cobra.NoArgs,
		RunE: run("optimize", func(ctx context.Context, a *app) error {
			return a.optimize(ctx)
		}),
	}

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep pH and temperature and classify stability",
		Args:  cobra.NoArgs,
		RunE: run("sensitivity", func(ctx context.Context, a *app) error {
			return a.sensitivity(ctx)
		}),
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run catalog, simulate, optimize and sensitivity",
		Args:  cobra.NoArgs,
		RunE: run("all", func(ctx context.Context, a *app) error {
			if err := a.catalog(); err != nil {
				return err
			}
			if err := a.simulate(); err != nil {
				return err
			}
			if err := a.optimize(ctx); err != nil {
				return err
			}
			return a.sensitivity(ctx)
		}),
	}

	runsCmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded runs, or show the results of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return listRuns(cmd.Context(), cfg.DBFile, id, w, cfg.Output.MaxPrint)
		},
	}

	root.AddCommand(catalogCmd, simulateCmd, optimizeCmd, sensitivityCmd, allCmd, runsCmd)
	return root
}

func main() {
	// Ctrl-C 対応
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
