package builtin

import (
	"context"
	"fmt"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// Media accepted in a sediment review dataset: surface water, surface-water QA
// replicate, bottom material, and suspended sediment.
var sedimentMedia = map[string]struct{}{
	"WS":  {},
	"WSQ": {},
	"SB":  {},
	"SS":  {},
}

type MediumCodeCheck struct{}

func (c *MediumCodeCheck) ID() string {
	return "medium-code"
}

func (c *MediumCodeCheck) Title() string {
	return "Medium Code In Sediment Media Set"
}

func (c *MediumCodeCheck) Description() string {
	return "Flags records whose medium code is outside the set of sediment sampling media."
}

func (c *MediumCodeCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if _, ok := sedimentMedia[r.MediumCode]; !ok {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("unexpected medium code %q", r.MediumCode)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&MediumCodeCheck{})
}
