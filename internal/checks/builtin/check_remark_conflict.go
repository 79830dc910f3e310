package builtin

import (
	"context"
	"fmt"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// RemarkConflictCheck flags records whose remark code promises a value the
// result field does not carry. A censored (<, >) or estimated (E) remark is
// meaningless without the value it qualifies.
type RemarkConflictCheck struct{}

func (c *RemarkConflictCheck) ID() string {
	return "remark-conflict"
}

func (c *RemarkConflictCheck) Title() string {
	return "Remark Code Consistent With Result"
}

func (c *RemarkConflictCheck) Description() string {
	return "Flags records with a censored or estimated remark code but no result value."
}

func (c *RemarkConflictCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.RemarkCode == "" {
			continue
		}
		if !r.HasResult() {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("remark %q with no result value", r.RemarkCode)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&RemarkConflictCheck{})
}
