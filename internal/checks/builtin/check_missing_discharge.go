package builtin

import (
	"context"
	"fmt"
	"strconv"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// MissingDischargeCheck flags concentration records with no cross-section
// discharge. With the uv option enabled it additionally flags records whose
// unit-value discharge is absent; that rule only makes sense for datasets
// enriched with unit-value flow, and it can only add flags, never remove any.
type MissingDischargeCheck struct {
	includeUV bool
}

func (c *MissingDischargeCheck) ID() string {
	return "missing-discharge"
}

func (c *MissingDischargeCheck) Title() string {
	return "Discharge Present For Concentration Records"
}

func (c *MissingDischargeCheck) Description() string {
	return "Flags suspended-sediment concentration records without an associated discharge; with uv=true, also checks unit-value discharge."
}

func (c *MissingDischargeCheck) Options() []checks.Option {
	return []checks.Option{
		{
			Name:        "uv",
			Description: "Apply the unit-value-flow rule (dataset must be enriched with unit-value discharge)",
			Default:     "false",
		},
	}
}

func (c *MissingDischargeCheck) Configure(opts map[string]string) error {
	if raw, ok := opts["uv"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid uv value %q: %w", raw, err)
		}
		c.includeUV = v
	}
	return nil
}

func (c *MissingDischargeCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode != data.ParamSSC {
			continue
		}
		if r.Discharge == nil {
			flagged = append(flagged, checks.FlagRecord(r, "no cross-section discharge"))
			continue
		}
		if c.includeUV && r.UVDischarge == nil {
			flagged = append(flagged, checks.FlagRecord(r, "no unit-value discharge"))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&MissingDischargeCheck{})
}
