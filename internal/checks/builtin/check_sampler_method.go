package builtin

import (
	"context"
	"fmt"
	"strings"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// Cross-section sampling methods (EWI, multiple verticals, EDI) require a
// depth-integrating sampler. Grab sampling must not report one.
var crossSectionMethods = map[string]struct{}{
	"10": {},
	"15": {},
	"20": {},
}

const grabMethod = "70"

type SamplerMethodCheck struct{}

func (c *SamplerMethodCheck) ID() string {
	return "sampler-method"
}

func (c *SamplerMethodCheck) Title() string {
	return "Sampler Type Matches Sampling Method"
}

func (c *SamplerMethodCheck) Description() string {
	return "Flags records whose sampler type is inconsistent with the reported sampling-method code."
}

func (c *SamplerMethodCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.SamplerType == "" || r.MethodCode == "" {
			continue
		}
		integrating := isDepthIntegrating(r.SamplerType)
		if _, crossSection := crossSectionMethods[r.MethodCode]; crossSection && !integrating {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("method %s requires a depth-integrating sampler, got %s", r.MethodCode, r.SamplerType)))
			continue
		}
		if r.MethodCode == grabMethod && integrating {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("grab method with depth-integrating sampler %s", r.SamplerType)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func isDepthIntegrating(samplerType string) bool {
	// US D-xx and US DH-xx series samplers are depth-integrating.
	s := strings.ToUpper(strings.TrimSpace(samplerType))
	return strings.HasPrefix(s, "US D")
}

func init() {
	checks.Register(&SamplerMethodCheck{})
}
