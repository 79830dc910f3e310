package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"sedreview/internal/review"
)

// ConsoleSink writes the flag summary for humans (text) or machines
// (json/ndjson) on stdout.
type ConsoleSink struct {
	writer  io.Writer
	format  string // "text", "json", "ndjson"
	mu      sync.Mutex
	summary *review.Summary // for JSON aggregate output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	switch s.format {
	case "json":
		if o, ok := v.(*review.Outcome); ok {
			s.summary = o.Summary
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case *review.Outcome:
			for _, row := range t.Summary.Rows {
				if err := encoder.Encode(eventFromRow(row)); err != nil {
					return err
				}
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		o, ok := v.(*review.Outcome)
		if !ok {
			// Ignore lifecycle events in text mode.
			return nil
		}
		return s.writeText(o)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(o *review.Outcome) error {
	if len(o.Summary.Rows) == 0 {
		_, err := fmt.Fprintln(s.writer, "No samples flagged.")
		return err
	}

	marker := color.New(color.FgRed, color.Bold)
	for _, row := range o.Summary.Rows {
		if _, err := fmt.Fprintf(s.writer, "["); err != nil {
			return err
		}
		if _, err := marker.Fprint(s.writer, "FLAGGED"); err != nil {
			return err
		}
		flaggedBy := strings.Join(row.FlaggedChecks(o.Summary.Columns), ", ")
		if _, err := fmt.Fprintf(s.writer, "] %s %s %s - %s\n",
			row.SiteID, row.UID, row.SampleStart.Format("2006-01-02 15:04"), flaggedBy); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.writer, "%d of %d check columns raised flags; %d samples flagged\n",
		countFlaggedColumns(o.Summary), len(o.Summary.Columns), len(o.Summary.Rows)); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func countFlaggedColumns(s *review.Summary) int {
	hit := make(map[string]bool)
	for _, row := range s.Rows {
		for col, v := range row.Flags {
			if v {
				hit[col] = true
			}
		}
	}
	return len(hit)
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		summary := s.summary
		if summary == nil {
			summary = &review.Summary{}
		}
		if err := encoder.Encode(summary); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
