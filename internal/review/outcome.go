package review

import (
	"time"

	"sedreview/internal/data"
	"sedreview/internal/derive"
	"sedreview/internal/sitestats"
)

// OutlierColumn is the summary column for per-site outlier membership. It is
// not a roster check: outliers are detected per UID during the site fan-out
// and joined onto the summary by UID alone.
const OutlierColumn = "outlier"

// SummaryRow is one flagged sample in the review summary. Flags holds one
// boolean per summary column; every row retained in a summary has at least
// one true flag.
type SummaryRow struct {
	UID          string    `json:"uid"`
	RecordNumber string    `json:"record_number"`
	SiteID       string    `json:"site_id"`
	StationName  string    `json:"station_name"`
	SampleStart  time.Time `json:"sample_start"`
	MediumCode   string    `json:"medium_code"`

	Flags map[string]bool `json:"flags"`
}

// FlaggedChecks returns the columns flagged true, in column order.
func (r SummaryRow) FlaggedChecks(columns []string) []string {
	var out []string
	for _, col := range columns {
		if r.Flags[col] {
			out = append(out, col)
		}
	}
	return out
}

// Summary is the flag-summary table: one row per flagged UID, boolean columns
// per check. Booleans stay booleans here; rendering them as display strings is
// the output layer's concern.
type Summary struct {
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// Outcome carries the results of one review. Summary is always present; the
// remaining fields form the full bundle and are populated only when the
// review ran with ReturnAll. Bundle fields reuse the artifacts computed during
// the review, nothing is recomputed.
type Outcome struct {
	RunID   string
	Summary *Summary

	Flags        map[string]data.FlagTable
	Comments     []data.CommentRow
	MethodCounts *derive.CountTable
	StatusCounts *derive.CountTable
	BoxCoef      map[string]sitestats.BoxCoefTable
	Outliers     map[string]sitestats.OutlierTable
	Provisional  []derive.ProvisionalRow
	SandFine     []derive.SandFineRow
	Stats        []derive.StatsRow
}

// Flagged reports whether the review flagged any sample.
func (o *Outcome) Flagged() bool {
	return o != nil && o.Summary != nil && len(o.Summary.Rows) > 0
}
