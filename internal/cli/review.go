package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sedreview/internal/config"
	"sedreview/internal/flags"
	"sedreview/internal/ingest"
	"sedreview/internal/output"
	"sedreview/internal/review"
)

var (
	cfg        = config.New()
	configPath string
)

// Exit code contract:
// 0 = clean review, no flags
// 1 = flags present
// 3 = fatal error (review did not complete)
func exitCodeForRun(fatal, flagged bool) int {
	if fatal {
		return 3
	}
	if flagged {
		return 1
	}
	return 0
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a sediment-sample dataset",
	Long: `Review a tabular dataset of sediment-sample records and report which
data-quality checks flagged each sample.

sedreview is review-only: it reads the dataset CSV, evaluates the check
roster, and never mutates data.

Configuration:
	Settings come from defaults, then an optional YAML config file (--config),
	then SEDREVIEW_* environment variables, then flags; later sources win.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write the summary as json, ndjson, or csv to a file
	- --report: write a Markdown review report
	- --excel: write the full bundle as an xlsx workbook (requires --all-tables)
	- --no-console: suppress the console sink (use with --out/--report/--excel)

Exit codes:
	0 = clean review, no flags
	1 = flags present
	3 = fatal error (review did not complete)

Examples:
  # Review a dataset export
  sedreview review --input samples.csv

  # QA database 03, unit-value flow rule on
  sedreview review --input samples.csv --qa-db 03 --include-uv

  # Full bundle as a workbook
  sedreview review --input samples.csv --all-tables --excel review.xlsx

  # Machine-readable stream
  sedreview review --input samples.csv --no-console --out summary.ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		if err := applyConfigSources(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		os.Exit(runReview(cfg))
	},
}

// applyConfigSources merges the config file and environment into cfg for
// every flag the user did not set explicitly. Flags are bound straight into
// cfg, so explicitly set flags already hold the winning value.
func applyConfigSources(cmd *cobra.Command) error {
	if configPath == "" && os.Getenv("SEDREVIEW_CONFIG") != "" {
		configPath = os.Getenv("SEDREVIEW_CONFIG")
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	overrides := map[string]func(){
		flags.FlagInput:         func() { loaded.Input.Path = cfg.Input.Path },
		flags.FlagTimeLayout:    func() { loaded.Input.TimeLayout = cfg.Input.TimeLayout },
		flags.FlagQADB:          func() { loaded.Review.QADatabase = cfg.Review.QADatabase },
		flags.FlagIncludeUV:     func() { loaded.Review.IncludeUV = cfg.Review.IncludeUV },
		flags.FlagAllTables:     func() { loaded.Review.ReturnAll = cfg.Review.ReturnAll },
		flags.FlagChecks:        func() { loaded.Checks.Selector = cfg.Checks.Selector },
		flags.FlagSet:           func() { loaded.Checks.Set = cfg.Checks.Set },
		flags.FlagConsoleFormat: func() { loaded.Output.ConsoleFormat = cfg.Output.ConsoleFormat },
		flags.FlagReport:        func() { loaded.Output.Report = cfg.Output.Report },
		flags.FlagOut:           func() { loaded.Output.Out = cfg.Output.Out },
		flags.FlagOutFormat:     func() { loaded.Output.OutFormat = cfg.Output.OutFormat },
		flags.FlagExcel:         func() { loaded.Output.Excel = cfg.Output.Excel },
		flags.FlagNoConsole:     func() { loaded.Output.NoConsole = cfg.Output.NoConsole },
		flags.FlagConcurrency:   func() { loaded.Runtime.Concurrency = cfg.Runtime.Concurrency },
		flags.FlagTimeout:       func() { loaded.Runtime.Timeout = cfg.Runtime.Timeout },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	loaded.Runtime.Verbose = cfg.Runtime.Verbose

	*cfg = *loaded
	return nil
}

func setupOutputManager(c *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	if !c.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, c.Output.ConsoleFormat)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if c.Output.Out != "" {
		fs, err := output.NewFileSink(c.Output.Out, c.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if c.Output.Report != "" {
		rs, err := output.NewReportSink(c.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if c.Output.Excel != "" {
		es, err := output.NewExcelSink(c.Output.Excel)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func runReview(c *config.Config) int {
	ctx, cancel := context.WithTimeout(context.Background(), c.Runtime.Timeout)
	defer cancel()

	if c.Runtime.Verbose {
		fmt.Fprintf(os.Stderr, "Loading dataset from %s...\n", c.Input.Path)
	}
	reader := &ingest.Reader{TimeLayout: c.Input.TimeLayout}
	ds, err := reader.ReadFile(c.Input.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return exitCodeForRun(true, false)
	}

	outMgr, err := setupOutputManager(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true, false)
	}
	defer outMgr.Close()

	eng := review.NewEngine(c)
	if c.Runtime.Verbose {
		fmt.Fprintf(os.Stderr, "Reviewing %d rows across %d sites...\n", ds.Len(), len(ds.Sites()))
	}
	outcome, err := eng.Review(ctx, ds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: review failed: %v\n", err)
		return exitCodeForRun(true, false)
	}

	_ = outMgr.Write(output.Event{
		Type:   "run.started",
		RunID:  outcome.RunID,
		Rows:   ds.Len(),
		Sites:  len(ds.Sites()),
		Checks: len(outcome.Summary.Columns),
	})
	_ = outMgr.Write(outcome)

	code := exitCodeForRun(false, outcome.Flagged())
	_ = outMgr.Write(output.Event{
		Type:     "run.finished",
		RunID:    outcome.RunID,
		Flagged:  len(outcome.Summary.Rows),
		ExitCode: code,
	})
	return code
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	// Input
	reviewCmd.Flags().StringVar(&cfg.Input.Path, flags.FlagInput, "", "Dataset CSV to review (required)")
	reviewCmd.Flags().StringVar(&cfg.Input.TimeLayout, flags.FlagTimeLayout, cfg.Input.TimeLayout, "Go time layout for the SAMPLE_START_DT column")
	reviewCmd.Flags().StringVar(&configPath, flags.FlagConfig, "", "YAML config file (env SEDREVIEW_CONFIG)")

	// Review
	reviewCmd.Flags().StringVar(&cfg.Review.QADatabase, flags.FlagQADB, cfg.Review.QADatabase, "Two-digit database number treated as the QA/QC source")
	reviewCmd.Flags().BoolVar(&cfg.Review.IncludeUV, flags.FlagIncludeUV, false, "Apply the unit-value-flow rule of the missing-discharge check")
	reviewCmd.Flags().BoolVar(&cfg.Review.ReturnAll, flags.FlagAllTables, false, "Carry every intermediate table in the outcome, not just the flag summary")

	// Checks
	reviewCmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "Check selector: comma-separated check IDs (empty = full roster)")
	reviewCmd.Flags().StringSliceVar(&cfg.Checks.Set, flags.FlagSet, nil, "Per-check options as checkID.option=value (repeatable; comma-separated accepted)")

	// Output
	reviewCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson (default: text)")
	reviewCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown review report to this path")
	reviewCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write the summary to this path")
	reviewCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Format for --out: json|ndjson|csv (default: inferred from extension)")
	reviewCmd.Flags().StringVar(&cfg.Output.Excel, flags.FlagExcel, "", "Write the full bundle as an xlsx workbook (requires --all-tables)")
	reviewCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report/--excel)")

	// Runtime
	reviewCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent checks/site calculations (default: 4)")
	reviewCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 10m)")
}
