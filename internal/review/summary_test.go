package review

import (
	"testing"
	"time"

	"sedreview/internal/data"
)

func identityDataset() *data.Dataset {
	t0 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	return data.NewDataset([]data.SampleRecord{
		{UID: "u1", SiteID: "0750", ParameterCode: data.ParamSSC, SampleStart: t0},
		{UID: "u1", SiteID: "0750", ParameterCode: data.ParamSedMass, SampleStart: t0},
		{UID: "u2", SiteID: "0750", ParameterCode: data.ParamSSC, SampleStart: t0.Add(time.Hour)},
	})
}

func TestBuildSummary_OneRowPerFlaggedUID(t *testing.T) {
	ds := identityDataset()
	columns := []string{"check-a", "check-b", OutlierColumn}
	flagged := map[string]map[string]struct{}{
		"check-a":     {"u1": {}},
		"check-b":     {},
		OutlierColumn: {},
	}

	s := buildSummary(ds, columns, flagged)
	if len(s.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (u1 collapses to one row)", len(s.Rows))
	}
	row := s.Rows[0]
	if row.UID != "u1" {
		t.Errorf("UID = %q, want u1", row.UID)
	}
	if !row.Flags["check-a"] || row.Flags["check-b"] || row.Flags[OutlierColumn] {
		t.Errorf("Flags = %v", row.Flags)
	}
}

func TestBuildSummary_DropsCleanSamples(t *testing.T) {
	ds := identityDataset()
	columns := []string{"check-a"}
	s := buildSummary(ds, columns, map[string]map[string]struct{}{"check-a": {}})
	if len(s.Rows) != 0 {
		t.Errorf("got %d rows with no flags anywhere, want 0", len(s.Rows))
	}
}

func TestBuildSummary_EveryRowHasSomeFlag(t *testing.T) {
	ds := identityDataset()
	columns := []string{"check-a", "check-b"}
	flagged := map[string]map[string]struct{}{
		"check-a": {"u1": {}},
		"check-b": {"u2": {}},
	}
	s := buildSummary(ds, columns, flagged)
	for _, row := range s.Rows {
		if len(row.FlaggedChecks(columns)) == 0 {
			t.Errorf("row %s retained with no true flag", row.UID)
		}
	}
	if len(s.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(s.Rows))
	}
}

func TestBuildSummary_FlagMembershipIsByUID(t *testing.T) {
	// check-a flagged only u1's sediment-mass record, but membership is by
	// UID, so the collapsed u1 row carries the flag.
	ds := identityDataset()
	columns := []string{"check-a"}
	flagged := map[string]map[string]struct{}{"check-a": {"u1": {}}}

	s := buildSummary(ds, columns, flagged)
	if len(s.Rows) != 1 || !s.Rows[0].Flags["check-a"] {
		t.Errorf("summary = %+v, want u1 flagged by check-a", s.Rows)
	}
}

func TestBuildSummary_SortBySiteThenStart(t *testing.T) {
	t0 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "late-a", SiteID: "0750", SampleStart: t0.Add(2 * time.Hour)},
		{UID: "early-b", SiteID: "0313", SampleStart: t0.Add(time.Hour)},
		{UID: "early-a", SiteID: "0750", SampleStart: t0},
	})
	columns := []string{"check-a"}
	flagged := map[string]map[string]struct{}{
		"check-a": {"late-a": {}, "early-b": {}, "early-a": {}},
	}

	s := buildSummary(ds, columns, flagged)
	if len(s.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(s.Rows))
	}
	for i := 1; i < len(s.Rows); i++ {
		a, b := s.Rows[i-1], s.Rows[i]
		if a.SiteID > b.SiteID {
			t.Errorf("rows out of site order: %q before %q", a.SiteID, b.SiteID)
		}
		if a.SiteID == b.SiteID && a.SampleStart.After(b.SampleStart) {
			t.Errorf("rows out of time order within site %q", a.SiteID)
		}
	}
	if s.Rows[0].UID != "early-b" {
		t.Errorf("first row = %q, want early-b (site 0313)", s.Rows[0].UID)
	}
}

func TestBuildSummary_StableForEqualKeys(t *testing.T) {
	// Two samples share site and start; dataset order must survive the sort.
	t0 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "first", SiteID: "0750", SampleStart: t0},
		{UID: "second", SiteID: "0750", SampleStart: t0},
	})
	columns := []string{"check-a"}
	flagged := map[string]map[string]struct{}{
		"check-a": {"first": {}, "second": {}},
	}
	s := buildSummary(ds, columns, flagged)
	if len(s.Rows) != 2 || s.Rows[0].UID != "first" || s.Rows[1].UID != "second" {
		t.Errorf("rows = %v, want dataset order preserved", []string{s.Rows[0].UID, s.Rows[1].UID})
	}
}

func TestBuildSummary_NoFlaggedUIDDropped(t *testing.T) {
	ds := identityDataset()
	columns := []string{"check-a", "check-b", OutlierColumn}
	flagged := map[string]map[string]struct{}{
		"check-a":     {"u1": {}},
		"check-b":     {"u2": {}},
		OutlierColumn: {"u2": {}},
	}
	s := buildSummary(ds, columns, flagged)

	present := make(map[string]bool)
	for _, row := range s.Rows {
		present[row.UID] = true
	}
	for col, uids := range flagged {
		for uid := range uids {
			if !present[uid] {
				t.Errorf("UID %q flagged by %q missing from summary", uid, col)
			}
		}
	}
}

func TestBuildSummary_EmptyDataset(t *testing.T) {
	s := buildSummary(data.NewDataset(nil), []string{"check-a"}, map[string]map[string]struct{}{"check-a": {}})
	if len(s.Rows) != 0 {
		t.Errorf("got %d rows on empty dataset, want 0", len(s.Rows))
	}
	if len(s.Columns) != 1 {
		t.Errorf("columns = %v, want the check column kept", s.Columns)
	}
}
