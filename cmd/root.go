package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/layout"
	"github.com/warehouse-sim/warehouse-sim/sim/report"
	"github.com/warehouse-sim/warehouse-sim/sim/script"
	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

var (
	// CLI flags for the run command
	dataDir    string // Directory holding traversal_table.csv, initial.csv and translation.csv
	configPath string // Optional YAML file overriding stock and truck settings
	logLevel   string // Log verbosity level
	outDir     string // Directory receiving final.csv and orders.csv (defaults to dataDir)
	reportDB   string // Optional SQLite file archiving every run
	traceLevel string // Decision trace level (none, decisions)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "warehouse-sim",
	Short: "Discrete-event simulator for a fascia fulfillment warehouse",
}

// runOptions carries everything a single run needs.
type runOptions struct {
	Script     string
	DataDir    string
	ConfigPath string
	OutDir     string
	ReportDB   string
	TraceLevel string
}

// runCmd executes an instruction script against a freshly stocked warehouse
var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run an instruction script and write the end-of-day reports",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		opts := runOptions{
			Script:     args[0],
			DataDir:    dataDir,
			ConfigPath: configPath,
			OutDir:     outDir,
			ReportDB:   reportDB,
			TraceLevel: traceLevel,
		}
		if _, err := runWarehouse(ctx, opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runWarehouse loads the layout and script, runs the script and writes the reports.
func runWarehouse(ctx context.Context, opts runOptions, stdout io.Writer) (*sim.Warehouse, error) {
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, fmt.Errorf("%w: unknown trace level %q", sim.ErrConfig, opts.TraceLevel)
	}
	cfg := sim.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := sim.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	l, err := layout.LoadDir(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	sc, err := script.ParseFile(opts.Script)
	if err != nil {
		return nil, err
	}

	var tr *trace.SimulationTrace
	if opts.TraceLevel != "" && trace.TraceLevel(opts.TraceLevel) != trace.TraceLevelNone {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)})
	}
	wh, err := sim.NewWarehouse(cfg, l.Catalog, logrus.StandardLogger(), sim.NewMetrics(""), tr)
	if err != nil {
		return nil, err
	}
	if err := l.Populate(wh.Inventory); err != nil {
		return nil, fmt.Errorf("stock warehouse: %w", err)
	}

	logrus.Infof("Starting simulation %q: %d pick faces, %d instructions",
		sc.Description, wh.Inventory.Len(), len(sc.Instructions))
	started := time.Now()
	if err := wh.Run(ctx, sc.Instructions); err != nil {
		return wh, err
	}
	finished := time.Now()
	logrus.Infof("Workers on shift: %s", strings.Join(wh.Roster.Names(), ", "))
	if n := wh.Inventory.PendingReplenishments(); n > 0 {
		logrus.Warnf("%d pick faces are still waiting for replenishment", n)
	}

	rep := report.Build(wh)
	dir := opts.OutDir
	if dir == "" {
		dir = opts.DataDir
	}
	if err := rep.WriteCSV(dir); err != nil {
		return wh, err
	}

	if opts.ReportDB != "" {
		store, err := report.Open(opts.ReportDB)
		if err != nil {
			return wh, err
		}
		defer store.Close()
		id, err := store.SaveRun(report.Run{
			Description: sc.Description,
			StartedAt:   started,
			FinishedAt:  finished,
			Orders:      len(wh.Batcher.Archive()) + wh.Batcher.Pending(),
			Trucks:      len(wh.Trucks.Trucks()),
			Report:      rep,
		})
		if err != nil {
			return wh, fmt.Errorf("archive run: %w", err)
		}
		logrus.Infof("Archived run %s in %s", id, filepath.Base(opts.ReportDB))
	}

	if err := wh.Metrics().Print(stdout); err != nil {
		return wh, err
	}
	if tr != nil {
		printTraceSummary(stdout, trace.Summarize(tr))
	}
	return wh, nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Rejections   : %d\n", s.TotalRejections)
	for _, class := range []string{"unavailable", "mismatch", "integrity", "config", "unsupported"} {
		if n := s.ByClass[class]; n > 0 {
			fmt.Fprintf(w, "  %-11s: %d\n", class, n)
		}
	}
	fmt.Fprintf(w, "Reworks      : %d %v\n", s.Reworks, s.ReworkedIDs)
	fmt.Fprintf(w, "Loads        : %d on %d truck(s)\n", s.Loads, s.TrucksUsed)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&dataDir, "dir", ".", "Directory holding traversal_table.csv, initial.csv and translation.csv")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding stock and truck settings")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outDir, "out", "", "Directory for final.csv and orders.csv (defaults to --dir)")
	runCmd.Flags().StringVar(&reportDB, "report-db", "", "SQLite file to archive the run in")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	rootCmd.AddCommand(runCmd)
}
