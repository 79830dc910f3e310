package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sedreview",
	Short: "Review sediment-sample records against a roster of data-quality checks",
	Long: `sedreview runs a fixed roster of independent data-quality checks over a
tabular dataset of sediment-sample records and reports, per sample, which
checks flagged it.

sedreview is review-only: it reads the dataset, flags records, and never
mutates data.

Examples:
	# Show available commands and global flags
	sedreview --help

	# Review a dataset export
	sedreview review --input samples.csv

	# List checks
	sedreview checks list

	# Print build info
	sedreview version

Output:
	By default, commands write human-readable output to stdout.
	The review command supports structured output via --out, --report, and
	--excel (see "sedreview review --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose progress diagnostics on stderr")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
