package builtin

import (
	"context"
	"fmt"
	"strings"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// Sample statuses that cannot be reviewed.
var notReviewableStatuses = map[string]struct{}{
	"proposed":  {},
	"cancelled": {},
	"on hold":   {},
}

type SampleStatusCheck struct{}

func (c *SampleStatusCheck) ID() string {
	return "sample-status"
}

func (c *SampleStatusCheck) Title() string {
	return "Sample Status Reviewable"
}

func (c *SampleStatusCheck) Description() string {
	return "Flags records whose sample status is proposed, cancelled, or on hold."
}

func (c *SampleStatusCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		status := strings.ToLower(strings.TrimSpace(r.SampleStatus))
		if _, ok := notReviewableStatuses[status]; ok {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("sample status %q", r.SampleStatus)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&SampleStatusCheck{})
}
