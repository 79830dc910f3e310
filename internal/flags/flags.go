package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that need to reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Input
	FlagInput      = "input"
	FlagTimeLayout = "time-layout"
	FlagConfig     = "config"

	// Review
	FlagQADB      = "qa-db"
	FlagIncludeUV = "include-uv"
	FlagAllTables = "all-tables"

	// Checks
	FlagChecks = "checks"
	FlagSet    = "set"

	// Output
	FlagConsoleFormat = "console-format"
	FlagReport        = "report"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagExcel         = "excel"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
)
