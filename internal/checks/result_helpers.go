package checks

import "sedreview/internal/data"

// NewFlagTable builds a FlagTable for one check from the flagged rows.
func NewFlagTable(checkID string, rows []data.FlagRow) data.FlagTable {
	return data.FlagTable{CheckID: checkID, Rows: rows}
}

// FlagRecord converts a dataset row into a FlagRow with an optional detail
// message describing why the record failed.
func FlagRecord(r *data.SampleRecord, detail string) data.FlagRow {
	return data.FlagRow{
		UID:           r.UID,
		ParameterCode: r.ParameterCode,
		Detail:        detail,
	}
}
