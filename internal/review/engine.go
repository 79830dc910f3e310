package review

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"sedreview/internal/checks"
	"sedreview/internal/config"
	"sedreview/internal/data"
	"sedreview/internal/derive"
)

// Engine runs one review: the check roster, the per-site fan-out, the
// bundle-only collaborators, and the flag aggregation. Engines hold no state
// between reviews; everything is computed fresh from the dataset.
type Engine struct {
	cfg *config.Config
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Review aggregates every check's flags over the dataset into the flag
// summary, and assembles the full bundle when the config asks for it.
//
// A failing check aborts the whole review; a check returning zero flagged
// rows is a valid outcome and simply contributes false for every sample.
func (e *Engine) Review(ctx context.Context, ds *data.Dataset) (*Outcome, error) {
	roster, err := checks.Resolve(e.cfg.Checks.Selector)
	if err != nil {
		return nil, err
	}
	if err := e.applyCheckOptions(); err != nil {
		return nil, err
	}

	limit := e.cfg.Runtime.Concurrency

	flagTables, err := runChecks(ctx, roster, ds, limit)
	if err != nil {
		return nil, err
	}

	boxBySite, outBySite, err := runSiteCalcs(ctx, ds, limit)
	if err != nil {
		return nil, err
	}
	outlierSet, err := flattenOutliers(ds.Sites(), outBySite)
	if err != nil {
		return nil, err
	}

	methodCounts := derive.CountMethodsBySite(ds)
	statusCounts := derive.CountStatusBySite(ds)
	comments := derive.Comments(ds)
	provisional := derive.FindProvisional(ds)
	sandFine := derive.CalcSandFine(ds)
	stats := derive.CalcSummaryStats(ds)

	columns := make([]string, 0, len(roster)+1)
	for _, c := range roster {
		columns = append(columns, c.ID())
	}
	columns = append(columns, OutlierColumn)

	flaggedUIDs := make(map[string]map[string]struct{}, len(columns))
	for id, t := range flagTables {
		flaggedUIDs[id] = t.UIDSet()
	}
	flaggedUIDs[OutlierColumn] = outlierSet

	out := &Outcome{
		RunID:   uuid.NewString(),
		Summary: buildSummary(ds, columns, flaggedUIDs),
	}
	if e.cfg.Review.ReturnAll {
		out.Flags = flagTables
		out.Comments = comments
		out.MethodCounts = &methodCounts
		out.StatusCounts = &statusCounts
		out.BoxCoef = boxBySite
		out.Outliers = outBySite
		out.Provisional = provisional
		out.SandFine = sandFine
		out.Stats = stats
	}
	return out, nil
}

// applyCheckOptions routes the review-level settings and any --set overrides
// to the checks that accept options. The review section seeds qa_db and uv;
// explicit checkID.option=value entries win over the seeds.
func (e *Engine) applyCheckOptions() error {
	assignments := map[string]map[string]string{
		"qaqc-database":     {"qa_db": e.cfg.Review.QADatabase},
		"missing-discharge": {"uv": strconv.FormatBool(e.cfg.Review.IncludeUV)},
	}

	user, err := config.ParseCheckOptionAssignments(e.cfg.Checks.Set)
	if err != nil {
		return err
	}
	for checkID, opts := range user {
		if _, ok := assignments[checkID]; !ok {
			assignments[checkID] = make(map[string]string)
		}
		for name, value := range opts {
			assignments[checkID][name] = value
		}
	}

	all := checks.List()
	byID := make(map[string]checks.Check, len(all))
	for _, c := range all {
		byID[c.ID()] = c
	}

	for checkID, opts := range assignments {
		c, ok := byID[checkID]
		if !ok {
			return fmt.Errorf("unknown check ID %q", checkID)
		}
		cc, ok := c.(checks.ConfigurableCheck)
		if !ok {
			return fmt.Errorf("check %q does not support options", checkID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cc.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for check %q", name, checkID)
			}
		}
	}

	// Configure every option-bearing check, with an empty set where this run
	// assigns nothing. Checks are registry singletons, so a check left
	// unconfigured would carry options (exemptions in particular) over from
	// an earlier review.
	for _, c := range all {
		cc, ok := c.(checks.ConfigurableCheck)
		if !ok {
			continue
		}
		opts := assignments[c.ID()]
		if opts == nil {
			opts = map[string]string{}
		}
		if err := cc.Configure(opts); err != nil {
			return fmt.Errorf("configure check %q: %w", c.ID(), err)
		}
	}

	return nil
}
