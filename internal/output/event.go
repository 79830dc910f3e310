package output

import "sedreview/internal/review"

// FlagMarker is the display string for a true flag cell. Booleans stay
// booleans in the summary itself; only outward-facing renderings (text
// console, csv, report, workbook) stringify them.
const FlagMarker = "flags present"

// RenderFlag renders one summary boolean for display.
func RenderFlag(v bool) string {
	if v {
		return FlagMarker
	}
	return ""
}

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - sample.flagged (one per summary row)
// - run.finished
type Event struct {
	Type     string             `json:"type"`
	RunID    string             `json:"run_id,omitempty"`
	Rows     int                `json:"rows,omitempty"`
	Sites    int                `json:"sites,omitempty"`
	Checks   int                `json:"checks,omitempty"`
	Flagged  int                `json:"flagged,omitempty"`
	Row      *review.SummaryRow `json:"row,omitempty"`
	ExitCode int                `json:"exit_code,omitempty"`
}

func eventFromRow(r review.SummaryRow) Event {
	return Event{Type: "sample.flagged", Row: &r}
}
