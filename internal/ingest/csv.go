// Package ingest loads a review dataset from a CSV export. Column positions
// are discovered from the header by name, so exports with extra or reordered
// columns load fine as long as the required columns exist.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"sedreview/internal/data"
)

// Required header columns. Everything else is optional: missing optional
// columns leave the corresponding record fields zero, and the checks that
// need them simply see nothing to flag.
var requiredColumns = []string{"UID", "SITE_NO", "PARM_CD"}

// Reader parses dataset CSV exports.
type Reader struct {
	// TimeLayout parses SAMPLE_START_DT values.
	TimeLayout string
}

// ReadFile loads the dataset from a CSV file on disk.
func (rd *Reader) ReadFile(path string) (*data.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return rd.Read(f)
}

// Read loads the dataset from r. The header row is mandatory; a file with a
// header and zero data rows yields an empty dataset, not an error.
func (rd *Reader) Read(r io.Reader) (*data.Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	// Strip a UTF-8 BOM; NWIS exports from Windows tooling often carry one.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	cr := csv.NewReader(strings.NewReader(string(content)))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset CSV has no header row")
	}

	cols, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]data.SampleRecord, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := rd.parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	slog.Info("dataset loaded",
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(records[0])))

	return data.NewDataset(rows), nil
}

// columnIndices maps header names to positions; -1 means absent.
type columnIndices struct {
	uid, recordNo, siteNo, stationNm, sampleStart    int
	mediumCd, parmCd, parmNm, parmGrpCd, qualifierCd int
	resultVa, remarkCd, dqiCd, methodCd, samplerType int
	sampleStatus, commentTx                          int
	dischargeVa, uvDischargeVa, qaDBNo               int
}

func findColumnIndices(header []string) (columnIndices, error) {
	cols := columnIndices{
		uid: -1, recordNo: -1, siteNo: -1, stationNm: -1, sampleStart: -1,
		mediumCd: -1, parmCd: -1, parmNm: -1, parmGrpCd: -1, qualifierCd: -1,
		resultVa: -1, remarkCd: -1, dqiCd: -1, methodCd: -1, samplerType: -1,
		sampleStatus: -1, commentTx: -1, dischargeVa: -1, uvDischargeVa: -1,
		qaDBNo: -1,
	}

	for i, raw := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		switch name {
		case "UID":
			cols.uid = i
		case "RECORD_NO":
			cols.recordNo = i
		case "SITE_NO":
			cols.siteNo = i
		case "STATION_NM":
			cols.stationNm = i
		case "SAMPLE_START_DT":
			cols.sampleStart = i
		case "MEDIUM_CD":
			cols.mediumCd = i
		case "PARM_CD":
			cols.parmCd = i
		case "PARM_NM":
			cols.parmNm = i
		case "PARM_SEQ_GRP_CD":
			cols.parmGrpCd = i
		case "QUALIFIER_CD":
			cols.qualifierCd = i
		case "RESULT_VA":
			cols.resultVa = i
		case "REMARK_CD":
			cols.remarkCd = i
		case "DQI_CD":
			cols.dqiCd = i
		case "METHOD_CD":
			cols.methodCd = i
		case "SAMPLER_TYPE":
			cols.samplerType = i
		case "SAMPLE_STATUS":
			cols.sampleStatus = i
		case "COMMENT_TX":
			cols.commentTx = i
		case "Q_VA":
			cols.dischargeVa = i
		case "UV_Q_VA":
			cols.uvDischargeVa = i
		case "QA_DB_NO":
			cols.qaDBNo = i
		}
	}

	var missing []string
	for _, req := range requiredColumns {
		if colIndexByName(cols, req) == -1 {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("required columns not found: %v", missing)
	}
	return cols, nil
}

func colIndexByName(cols columnIndices, name string) int {
	switch name {
	case "UID":
		return cols.uid
	case "SITE_NO":
		return cols.siteNo
	case "PARM_CD":
		return cols.parmCd
	}
	return -1
}

func (rd *Reader) parseRow(rec []string, cols columnIndices) (data.SampleRecord, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	row := data.SampleRecord{
		UID:            field(cols.uid),
		RecordNumber:   field(cols.recordNo),
		SiteID:         field(cols.siteNo),
		StationName:    field(cols.stationNm),
		MediumCode:     field(cols.mediumCd),
		ParameterCode:  field(cols.parmCd),
		ParameterName:  field(cols.parmNm),
		ParameterGroup: field(cols.parmGrpCd),
		QualifierCode:  field(cols.qualifierCd),
		RemarkCode:     field(cols.remarkCd),
		DQICode:        field(cols.dqiCd),
		MethodCode:     field(cols.methodCd),
		SamplerType:    field(cols.samplerType),
		SampleStatus:   field(cols.sampleStatus),
		Comment:        field(cols.commentTx),
		QADatabase:     field(cols.qaDBNo),
	}
	if row.UID == "" {
		return row, fmt.Errorf("empty UID")
	}

	if raw := field(cols.sampleStart); raw != "" {
		t, err := parseTime(rd.TimeLayout, raw)
		if err != nil {
			return row, fmt.Errorf("parse SAMPLE_START_DT %q: %w", raw, err)
		}
		row.SampleStart = t
	}

	var err error
	if row.ResultValue, err = parseOptionalFloat(field(cols.resultVa)); err != nil {
		return row, fmt.Errorf("parse RESULT_VA: %w", err)
	}
	if row.Discharge, err = parseOptionalFloat(field(cols.dischargeVa)); err != nil {
		return row, fmt.Errorf("parse Q_VA: %w", err)
	}
	if row.UVDischarge, err = parseOptionalFloat(field(cols.uvDischargeVa)); err != nil {
		return row, fmt.Errorf("parse UV_Q_VA: %w", err)
	}

	return row, nil
}

// parseTime tries the configured layout first, then a date-only fallback for
// samples entered without a start time.
func parseTime(layout, raw string) (time.Time, error) {
	t, err := time.Parse(layout, raw)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse("2006-01-02", raw); err2 == nil {
		return t2, nil
	}
	return time.Time{}, err
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
