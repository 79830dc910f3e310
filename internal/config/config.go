package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// review behavior, keep the CLI flags in internal/cli/review.go in sync.
	Review  Review  `yaml:"review"`
	Checks  Checks  `yaml:"checks"`
	Input   Input   `yaml:"input"`
	Output  Output  `yaml:"output"`
	Runtime Runtime `yaml:"runtime"`
}

type Review struct {
	// QADatabase is the two-digit database number treated as the QA/QC
	// source for the qaqc-database check (see --qa-db).
	QADatabase string `yaml:"qa_db"`

	// IncludeUV applies the unit-value-flow rule of the missing-discharge
	// check (see --include-uv). Only meaningful for datasets enriched with
	// unit-value discharge.
	IncludeUV bool `yaml:"include_uv"`

	// ReturnAll carries every intermediate table in the outcome, not just
	// the flag summary (see --all-tables). Required for the Excel export.
	ReturnAll bool `yaml:"return_all"`
}

type Checks struct {
	// Selector selects which checks to run.
	// Empty means the full roster; otherwise a comma-separated ID list (see --checks).
	Selector string `yaml:"selector"`

	// Set provides per-check option overrides from the CLI.
	// Entries are of the form checkID.option=value (repeatable; comma-separated accepted; see --set).
	Set []string `yaml:"set"`
}

type Input struct {
	// Path is the dataset CSV to review (see --input).
	Path string `yaml:"path"`

	// TimeLayout parses the sample start timestamp column (see --time-layout).
	TimeLayout string `yaml:"time_layout"`
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string `yaml:"console_format"`

	// Report writes a Markdown review report to this path (see --report).
	Report string `yaml:"report"`

	// Out writes structured output to this path (see --out).
	Out string `yaml:"out"`

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson, csv. If empty, inferred from the --out file extension.
	OutFormat string `yaml:"out_format"`

	// Excel writes the full result bundle as an xlsx workbook to this path
	// (see --excel). Requires Review.ReturnAll.
	Excel string `yaml:"excel"`

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool `yaml:"no_console"`
}

type Runtime struct {
	// Concurrency bounds how many checks or site calculations run in
	// flight at once (see --concurrency). Must be >= 1. Parallelism is a
	// performance knob only; results do not depend on it.
	Concurrency int `yaml:"concurrency"`

	// Timeout is the global timeout for the review run (see --timeout).
	// Must be > 0.
	Timeout time.Duration `yaml:"timeout"`

	// Verbose enables progress diagnostics on stderr.
	Verbose bool `yaml:"verbose"`
}

func New() *Config {
	return &Config{
		Review: Review{
			QADatabase: "02",
		},
		Input: Input{
			TimeLayout: "2006-01-02 15:04",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 4,
			Timeout:     10 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Checks.Set = splitCommaList(c.Checks.Set)

	if c.Input.Path == "" {
		return errors.New("--input is required")
	}
	if c.Input.TimeLayout == "" {
		return errors.New("--time-layout must not be empty")
	}

	if len(c.Review.QADatabase) != 2 {
		return fmt.Errorf("--qa-db must be a two-digit database number, got %q", c.Review.QADatabase)
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			case ".csv":
				c.Output.OutFormat = "csv"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" && c.Output.OutFormat != "csv" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	if c.Output.Excel != "" && !c.Review.ReturnAll {
		return errors.New("--excel requires --all-tables (the workbook exports the full bundle)")
	}

	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	if len(c.Checks.Set) > 0 {
		if _, err := ParseCheckOptionAssignments(c.Checks.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseCheckOptionAssignments parses values of the form "checkID.option=value".
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - This validates syntax only (no validation of check IDs or option names).
// - Empty values are allowed ("check.option=").
func ParseCheckOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		left = strings.TrimSpace(left)
		value = strings.TrimSpace(value)
		checkID, opt, ok := strings.Cut(left, ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		checkID = strings.TrimSpace(checkID)
		opt = strings.TrimSpace(opt)
		if checkID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty check and option", raw)
		}
		if _, ok := out[checkID]; !ok {
			out[checkID] = make(map[string]string)
		}
		out[checkID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
