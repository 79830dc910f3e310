package builtin

import (
	"context"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// MissingMassCheck flags SSC records whose sample reported no companion
// sediment dry-mass parameter. A concentration without the mass it was derived
// from cannot be re-verified by the lab.
type MissingMassCheck struct{}

func (c *MissingMassCheck) ID() string {
	return "missing-mass"
}

func (c *MissingMassCheck) Title() string {
	return "Sediment Mass Reported With Concentration"
}

func (c *MissingMassCheck) Description() string {
	return "Flags suspended-sediment concentration records whose sample has no sediment dry-mass result."
}

func (c *MissingMassCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	hasMass := make(map[string]struct{})
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode == data.ParamSedMass && r.HasResult() {
			hasMass[r.UID] = struct{}{}
		}
	}

	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode != data.ParamSSC {
			continue
		}
		if _, ok := hasMass[r.UID]; !ok {
			flagged = append(flagged, checks.FlagRecord(r, "no sediment dry-mass result for sample"))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&MissingMassCheck{})
}
