package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"sedreview/internal/review"
)

// ReportSink writes a Markdown review report on Close: run header, per-check
// flag totals, and the flagged-sample table.
type ReportSink struct {
	path    string
	file    *os.File
	mu      sync.Mutex
	outcome *review.Outcome
	events  []Event
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case *review.Outcome:
		s.outcome = t
	case Event:
		s.events = append(s.events, t)
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder

	b.WriteString("# Sediment Record Review\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	for _, e := range s.events {
		if e.Type == "run.started" {
			b.WriteString(fmt.Sprintf("- Run ID: `%s`\n", e.RunID))
			b.WriteString(fmt.Sprintf("- Dataset rows: %d\n", e.Rows))
			b.WriteString(fmt.Sprintf("- Sites: %d\n", e.Sites))
			b.WriteString(fmt.Sprintf("- Checks run: %d\n", e.Checks))
			break
		}
	}

	if s.outcome == nil || s.outcome.Summary == nil || len(s.outcome.Summary.Rows) == 0 {
		b.WriteString("\nNo samples flagged.\n")
		return s.flush(b.String())
	}
	summary := s.outcome.Summary
	b.WriteString(fmt.Sprintf("- Samples flagged: %d\n", len(summary.Rows)))

	b.WriteString("\n## Flags by check\n\n")
	totals := make(map[string]int)
	for _, row := range summary.Rows {
		for col, v := range row.Flags {
			if v {
				totals[col]++
			}
		}
	}
	cols := make([]string, 0, len(totals))
	for col := range totals {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	b.WriteString("| Check | Flagged samples |\n|---|---|\n")
	for _, col := range cols {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", col, totals[col]))
	}

	b.WriteString("\n## Flagged samples\n\n")
	b.WriteString("| UID | Site | Station | Start | " + strings.Join(summary.Columns, " | ") + " |\n")
	b.WriteString("|---|---|---|---|" + strings.Repeat("---|", len(summary.Columns)) + "\n")
	for _, row := range summary.Rows {
		cells := make([]string, 0, len(summary.Columns))
		for _, col := range summary.Columns {
			cells = append(cells, RenderFlag(row.Flags[col]))
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			row.UID, row.SiteID, row.StationName,
			row.SampleStart.Format("2006-01-02 15:04"),
			strings.Join(cells, " | ")))
	}

	return s.flush(b.String())
}

func (s *ReportSink) flush(content string) error {
	_, err := s.file.WriteString(content)
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
