package builtin

import (
	"context"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

type CommentsNoResultCheck struct{}

func (c *CommentsNoResultCheck) ID() string {
	return "comments-no-result"
}

func (c *CommentsNoResultCheck) Title() string {
	return "Field Comment Without Result"
}

func (c *CommentsNoResultCheck) Description() string {
	return "Flags records carrying a field comment but no reported result value."
}

func (c *CommentsNoResultCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.Comment != "" && !r.HasResult() {
			flagged = append(flagged, checks.FlagRecord(r, r.Comment))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&CommentsNoResultCheck{})
}
