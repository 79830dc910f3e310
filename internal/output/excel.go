package output

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xuri/excelize/v2"

	"sedreview/internal/derive"
	"sedreview/internal/review"
)

// ExcelSink writes the full result bundle as an xlsx workbook on Close: the
// flag summary plus one sheet per intermediate table. It expects an outcome
// produced with ReturnAll; for a summary-only outcome the bundle sheets are
// still created but hold only their header rows.
type ExcelSink struct {
	path    string
	mu      sync.Mutex
	outcome *review.Outcome
}

func NewExcelSink(path string) (*ExcelSink, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook path required")
	}
	return &ExcelSink{path: path}, nil
}

func (s *ExcelSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := v.(*review.Outcome); ok {
		s.outcome = o
	}
	return nil
}

func (s *ExcelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeSummarySheet(f); err != nil {
		return err
	}
	if s.outcome != nil {
		if err := s.writeBundleSheets(f); err != nil {
			return err
		}
	}

	// The default sheet excelize creates is replaced by Summary.
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (s *ExcelSink) writeSummarySheet(f *excelize.File) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	var columns []string
	var rows []review.SummaryRow
	if s.outcome != nil && s.outcome.Summary != nil {
		columns = s.outcome.Summary.Columns
		rows = s.outcome.Summary.Rows
	}

	header := append([]string{"UID", "RECORD_NO", "SITE_NO", "STATION_NM", "SAMPLE_START_DT", "MEDIUM_CD"}, columns...)
	if err := writeRow(f, sheet, 1, toAny(header)); err != nil {
		return err
	}
	for i, row := range rows {
		cells := []any{
			row.UID,
			row.RecordNumber,
			row.SiteID,
			row.StationName,
			row.SampleStart.Format("2006-01-02 15:04"),
			row.MediumCode,
		}
		for _, col := range columns {
			cells = append(cells, RenderFlag(row.Flags[col]))
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExcelSink) writeBundleSheets(f *excelize.File) error {
	o := s.outcome

	checkIDs := make([]string, 0, len(o.Flags))
	for id := range o.Flags {
		checkIDs = append(checkIDs, id)
	}
	sort.Strings(checkIDs)
	for _, id := range checkIDs {
		t := o.Flags[id]
		sheet := sheetName("flags " + id)
		if err := newSheet(f, sheet, []any{"UID", "PARM_CD", "DETAIL"}); err != nil {
			return err
		}
		for i, r := range t.Rows {
			if err := writeRow(f, sheet, i+2, []any{r.UID, r.ParameterCode, r.Detail}); err != nil {
				return err
			}
		}
	}

	if err := newSheet(f, "Comments", []any{"UID", "PARM_CD", "COMMENT_TX"}); err != nil {
		return err
	}
	for i, r := range o.Comments {
		if err := writeRow(f, "Comments", i+2, []any{r.UID, r.ParameterCode, r.Comment}); err != nil {
			return err
		}
	}

	if o.MethodCounts != nil {
		if err := writeCountSheet(f, "Method Counts", o.MethodCounts.Rows); err != nil {
			return err
		}
	}
	if o.StatusCounts != nil {
		if err := writeCountSheet(f, "Status Counts", o.StatusCounts.Rows); err != nil {
			return err
		}
	}

	if err := newSheet(f, "Box Coefficients", []any{"SITE_NO", "UID", "POINT_UID", "SAMPLE_DT", "XSECTION_SSC", "POINT_SSC", "COEFFICIENT"}); err != nil {
		return err
	}
	rowIdx := 2
	for _, site := range sortedKeys(o.BoxCoef) {
		t := o.BoxCoef[site]
		for _, r := range t.Rows {
			cells := []any{t.SiteID, r.UID, r.PointUID, r.SampleDate.Format("2006-01-02"), r.CrossSection, r.Point, r.Coefficient}
			if err := writeRow(f, "Box Coefficients", rowIdx, cells); err != nil {
				return err
			}
			rowIdx++
		}
	}

	if err := newSheet(f, "Outliers", []any{"SITE_NO", "UID", "RESULT_VA", "LOG10_VA"}); err != nil {
		return err
	}
	rowIdx = 2
	for _, site := range sortedKeys(o.Outliers) {
		t := o.Outliers[site]
		for _, r := range t.Rows {
			if err := writeRow(f, "Outliers", rowIdx, []any{t.SiteID, r.UID, r.Value, r.LogValue}); err != nil {
				return err
			}
			rowIdx++
		}
	}

	if err := newSheet(f, "Provisional", []any{"UID", "SITE_NO", "PARM_CD", "RESULT_VA"}); err != nil {
		return err
	}
	for i, r := range o.Provisional {
		cells := []any{r.UID, r.SiteID, r.ParameterCode, optFloat(r.ResultValue)}
		if err := writeRow(f, "Provisional", i+2, cells); err != nil {
			return err
		}
	}

	if err := newSheet(f, "Sand Fine", []any{"UID", "SITE_NO", "SSC", "PCT_FINER", "FINE_CONC", "SAND_CONC"}); err != nil {
		return err
	}
	for i, r := range o.SandFine {
		cells := []any{r.UID, r.SiteID, r.SSC, r.PercentFiner, r.FineConc, r.SandConc}
		if err := writeRow(f, "Sand Fine", i+2, cells); err != nil {
			return err
		}
	}

	if err := newSheet(f, "Summary Stats", []any{"SITE_NO", "PARM_CD", "COUNT", "MIN", "MAX", "MEAN", "MEDIAN"}); err != nil {
		return err
	}
	for i, r := range o.Stats {
		cells := []any{r.SiteID, r.ParameterCode, r.Count, r.Min, r.Max, r.Mean, r.Median}
		if err := writeRow(f, "Summary Stats", i+2, cells); err != nil {
			return err
		}
	}

	return nil
}

func writeCountSheet(f *excelize.File, sheet string, rows []derive.CountRow) error {
	if err := newSheet(f, sheet, []any{"SITE_NO", "KEY", "COUNT"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := writeRow(f, sheet, i+2, []any{r.SiteID, r.Key, r.Count}); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, name string, header []any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRow(f, name, 1, header)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func optFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// Excel sheet names are capped at 31 characters.
func sheetName(s string) string {
	if len(s) > 31 {
		return s[:31]
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
