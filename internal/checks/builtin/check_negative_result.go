package builtin

import (
	"context"
	"fmt"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

type NegativeResultCheck struct{}

func (c *NegativeResultCheck) ID() string {
	return "negative-result"
}

func (c *NegativeResultCheck) Title() string {
	return "Concentration Result Positive"
}

func (c *NegativeResultCheck) Description() string {
	return "Flags concentration records with a zero or negative result value."
}

func (c *NegativeResultCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode != data.ParamSSC && r.ParameterCode != data.ParamTSS {
			continue
		}
		if r.HasResult() && *r.ResultValue <= 0 {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("result value %v", *r.ResultValue)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&NegativeResultCheck{})
}
