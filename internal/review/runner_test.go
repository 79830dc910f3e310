package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sedreview/internal/checks"
	"sedreview/internal/data"
	"sedreview/internal/sitestats"
)

type stubCheck struct {
	id   string
	rows []data.FlagRow
	err  error
}

func (c *stubCheck) ID() string          { return c.id }
func (c *stubCheck) Title() string       { return "Stub " + c.id }
func (c *stubCheck) Description() string { return "stub check" }
func (c *stubCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	if c.err != nil {
		return data.FlagTable{}, c.err
	}
	return checks.NewFlagTable(c.id, c.rows), nil
}

func TestRunChecks_CollectsAllTables(t *testing.T) {
	roster := []checks.Check{
		&stubCheck{id: "alpha", rows: []data.FlagRow{{UID: "u1"}}},
		&stubCheck{id: "beta"},
	}
	tables, err := runChecks(context.Background(), roster, data.NewDataset(nil), 2)
	if err != nil {
		t.Fatalf("runChecks() error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if len(tables["alpha"].Rows) != 1 {
		t.Errorf("alpha table = %+v", tables["alpha"])
	}
	if !tables["beta"].Empty() {
		t.Errorf("beta table should be empty")
	}
}

func TestRunChecks_FailFast(t *testing.T) {
	boom := errors.New("bad query")
	roster := []checks.Check{
		&stubCheck{id: "ok"},
		&stubCheck{id: "broken", err: boom},
	}
	_, err := runChecks(context.Background(), roster, data.NewDataset(nil), 2)
	if err == nil {
		t.Fatal("expected error from failing check")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap the check failure", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %v does not name the failing check", err)
	}
}

func TestRunChecks_RejectsBadLimit(t *testing.T) {
	if _, err := runChecks(context.Background(), nil, data.NewDataset(nil), 0); err == nil {
		t.Error("expected error for limit 0")
	}
}

func fptr(v float64) *float64 { return &v }

func TestRunSiteCalcs_StampsSiteIDs(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "u1", SiteID: "0750", ParameterCode: data.ParamSSC, ResultValue: fptr(10)},
		{UID: "u2", SiteID: "0313", ParameterCode: data.ParamSedMass, ResultValue: fptr(1)},
	})
	box, out, err := runSiteCalcs(context.Background(), ds, 2)
	if err != nil {
		t.Fatalf("runSiteCalcs() error: %v", err)
	}
	for _, site := range []string{"0750", "0313"} {
		bt, ok := box[site]
		if !ok || bt.SiteID != site {
			t.Errorf("box table for %s = %+v", site, bt)
		}
		ot, ok := out[site]
		if !ok || ot.SiteID != site {
			t.Errorf("outlier table for %s = %+v", site, ot)
		}
	}
}

func TestFlattenOutliers_SingleSite(t *testing.T) {
	outBySite := map[string]sitestats.OutlierTable{
		"0750": {SiteID: "0750", Rows: []sitestats.OutlierRow{{UID: "u1"}, {UID: "u2"}}},
	}
	set, err := flattenOutliers([]string{"0750"}, outBySite)
	if err != nil {
		t.Fatalf("flattenOutliers() error: %v", err)
	}
	if len(set) != 2 {
		t.Errorf("got %d UIDs, want 2", len(set))
	}

	if _, err := flattenOutliers([]string{"0750"}, map[string]sitestats.OutlierTable{}); err == nil {
		t.Error("expected error when the single site's table is missing")
	}
}

func TestFlattenOutliers_UnionAcrossSites(t *testing.T) {
	outBySite := map[string]sitestats.OutlierTable{
		"0750": {SiteID: "0750", Rows: []sitestats.OutlierRow{{UID: "u1"}}},
		"0313": {SiteID: "0313", Rows: []sitestats.OutlierRow{{UID: "u9"}}},
		"0001": {SiteID: "0001"},
	}
	set, err := flattenOutliers([]string{"0750", "0313", "0001"}, outBySite)
	if err != nil {
		t.Fatalf("flattenOutliers() error: %v", err)
	}
	for _, uid := range []string{"u1", "u9"} {
		if _, ok := set[uid]; !ok {
			t.Errorf("union missing %q", uid)
		}
	}
	if len(set) != 2 {
		t.Errorf("got %d UIDs, want 2", len(set))
	}
}
