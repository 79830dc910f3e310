package review

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sedreview/internal/checks"
	"sedreview/internal/data"
	"sedreview/internal/sitestats"
)

// runChecks evaluates the roster against the full dataset with at most limit
// checks in flight. Checks are independent and read-only, so order does not
// matter; the first failing check cancels the rest and aborts the review
// (fail-fast, no partial results).
func runChecks(ctx context.Context, roster []checks.Check, ds *data.Dataset, limit int) (map[string]data.FlagTable, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", limit)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	tables := make([]data.FlagTable, len(roster))
	for i, c := range roster {
		i, c := i, c
		g.Go(func() error {
			t, err := c.Evaluate(gctx, ds)
			if err != nil {
				return fmt.Errorf("check %s: %w", c.ID(), err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]data.FlagTable, len(tables))
	for i, t := range tables {
		if t.CheckID == "" {
			t.CheckID = roster[i].ID()
		}
		out[t.CheckID] = t
	}
	return out, nil
}

// runSiteCalcs fans the box-coefficient and outlier calculations out over the
// distinct sites, at most limit sites in flight, and collects both results
// keyed by site identifier.
func runSiteCalcs(ctx context.Context, ds *data.Dataset, limit int) (map[string]sitestats.BoxCoefTable, map[string]sitestats.OutlierTable, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("concurrency must be >= 1, got %d", limit)
	}

	sites := ds.Sites()
	boxTables := make([]sitestats.BoxCoefTable, len(sites))
	outTables := make([]sitestats.OutlierTable, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sub := ds.Site(site)
			boxTables[i] = sitestats.BoxCoef(sub)
			outTables[i] = sitestats.Outliers(sub)
			// Site views can have an empty SiteID when the site contributed
			// no rows to the calculation; stamp it from the fan-out key.
			boxTables[i].SiteID = site
			outTables[i].SiteID = site
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	boxBySite := make(map[string]sitestats.BoxCoefTable, len(sites))
	outBySite := make(map[string]sitestats.OutlierTable, len(sites))
	for i, site := range sites {
		boxBySite[site] = boxTables[i]
		outBySite[site] = outTables[i]
	}
	return boxBySite, outBySite, nil
}

// flattenOutliers unions per-site outlier UIDs into one set. With exactly one
// site the site's list is taken directly; otherwise the per-site lists are
// concatenated in fan-out order.
func flattenOutliers(sites []string, outBySite map[string]sitestats.OutlierTable) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(sites) == 1 {
		t, ok := outBySite[sites[0]]
		if !ok {
			return nil, errors.New("outlier table missing for single site")
		}
		for _, uid := range t.UIDs() {
			set[uid] = struct{}{}
		}
		return set, nil
	}
	for _, site := range sites {
		for _, uid := range outBySite[site].UIDs() {
			set[uid] = struct{}{}
		}
	}
	return set, nil
}
