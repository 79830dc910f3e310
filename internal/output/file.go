package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sedreview/internal/review"
)

// FileSink writes the flag summary to a file as json, ndjson, or csv. The
// csv form renders booleans with the display marker; json forms keep them
// as booleans.
type FileSink struct {
	path    string
	format  string
	file    *os.File
	mu      sync.Mutex
	outcome *review.Outcome
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}

	if format == "" {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".json":
			format = "json"
		case ".ndjson", ".jsonl":
			format = "ndjson"
		case ".csv":
			format = "csv"
		default:
			return nil, fmt.Errorf("cannot infer output format from file extension %q", ext)
		}
	}

	if format != "json" && format != "ndjson" && format != "csv" {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &FileSink{
		path:   path,
		format: format,
		file:   f,
	}, nil
}

func (s *FileSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json", "csv":
		if o, ok := v.(*review.Outcome); ok {
			s.outcome = o
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.file)
		switch t := v.(type) {
		case Event:
			return encoder.Encode(t)
		case *review.Outcome:
			for _, row := range t.Summary.Rows {
				if err := encoder.Encode(eventFromRow(row)); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil
		}
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch s.format {
	case "json":
		encoder := json.NewEncoder(s.file)
		encoder.SetIndent("", "  ")
		summary := &review.Summary{}
		if s.outcome != nil {
			summary = s.outcome.Summary
		}
		err = encoder.Encode(summary)
	case "csv":
		err = s.writeCSV()
	}

	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (s *FileSink) writeCSV() error {
	w := csv.NewWriter(s.file)

	var columns []string
	var rows []review.SummaryRow
	if s.outcome != nil {
		columns = s.outcome.Summary.Columns
		rows = s.outcome.Summary.Rows
	}

	header := append([]string{"UID", "RECORD_NO", "SITE_NO", "STATION_NM", "SAMPLE_START_DT", "MEDIUM_CD"}, columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.UID,
			row.RecordNumber,
			row.SiteID,
			row.StationName,
			row.SampleStart.Format("2006-01-02 15:04"),
			row.MediumCode,
		}
		for _, col := range columns {
			rec = append(rec, RenderFlag(row.Flags[col]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
