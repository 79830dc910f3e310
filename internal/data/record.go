package data

import "time"

// Well-known NWIS parameter codes used by the builtin checks.
const (
	ParamSSC          = "80154" // suspended sediment concentration, mg/L
	ParamTSS          = "00530" // total suspended solids, mg/L
	ParamSedMass      = "91157" // dry mass of suspended sediment, g
	ParamPercentFiner = "70331" // suspended sediment, percent finer than 0.0625 mm
)

// SampleRecord is one row of the review dataset.
//
// The first ten fields are the identity columns: UID plus ParameterCode is the
// join key for flag aggregation, UID alone for the per-site calculations. The
// remaining fields are consumed only by individual checks.
type SampleRecord struct {
	UID            string
	RecordNumber   string
	SiteID         string
	StationName    string
	SampleStart    time.Time
	MediumCode     string
	ParameterCode  string
	ParameterName  string
	ParameterGroup string
	QualifierCode  string

	ResultValue  *float64
	RemarkCode   string
	DQICode      string
	MethodCode   string
	SamplerType  string
	SampleStatus string
	Comment      string
	Discharge    *float64
	UVDischarge  *float64
	QADatabase   string
}

// HasResult reports whether the row carries a reported result value.
func (r *SampleRecord) HasResult() bool {
	return r.ResultValue != nil
}

// IdentityRow is one row of the deduplicated identity projection.
type IdentityRow struct {
	UID            string
	RecordNumber   string
	SiteID         string
	StationName    string
	SampleStart    time.Time
	MediumCode     string
	ParameterCode  string
	ParameterName  string
	ParameterGroup string
	QualifierCode  string
}

func identityOf(r *SampleRecord) IdentityRow {
	return IdentityRow{
		UID:            r.UID,
		RecordNumber:   r.RecordNumber,
		SiteID:         r.SiteID,
		StationName:    r.StationName,
		SampleStart:    r.SampleStart,
		MediumCode:     r.MediumCode,
		ParameterCode:  r.ParameterCode,
		ParameterName:  r.ParameterName,
		ParameterGroup: r.ParameterGroup,
		QualifierCode:  r.QualifierCode,
	}
}
