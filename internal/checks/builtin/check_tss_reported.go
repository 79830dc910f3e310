package builtin

import (
	"context"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

type TSSReportedCheck struct{}

func (c *TSSReportedCheck) ID() string {
	return "tss-reported"
}

func (c *TSSReportedCheck) Title() string {
	return "TSS Reported Instead Of SSC"
}

func (c *TSSReportedCheck) Description() string {
	return "Flags total-suspended-solids records; the sediment program expects suspended-sediment concentration (80154)."
}

func (c *TSSReportedCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode == data.ParamTSS {
			flagged = append(flagged, checks.FlagRecord(r, "TSS (00530) reported; expected SSC (80154)"))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&TSSReportedCheck{})
}
