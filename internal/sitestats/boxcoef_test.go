package sitestats

import (
	"math"
	"testing"
	"time"

	"sedreview/internal/data"
)

func fptr(v float64) *float64 { return &v }

func day(d int, hour int) time.Time {
	return time.Date(2024, 6, d, hour, 0, 0, 0, time.UTC)
}

func TestBoxCoef_PairsSameDay(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "pump-1", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "70", SampleStart: day(1, 8), ResultValue: fptr(100)},
		{UID: "ewi-1", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "10", SampleStart: day(1, 10), ResultValue: fptr(125)},
		// Next day has a cross-section sample but no point sample.
		{UID: "ewi-2", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "10", SampleStart: day(2, 10), ResultValue: fptr(80)},
	})

	table := BoxCoef(ds)
	if table.SiteID != "0750" {
		t.Errorf("SiteID = %q, want 0750", table.SiteID)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d pairs, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row.UID != "ewi-1" || row.PointUID != "pump-1" {
		t.Errorf("pair = (%s, %s), want (ewi-1, pump-1)", row.UID, row.PointUID)
	}
	if math.Abs(row.Coefficient-1.25) > 1e-9 {
		t.Errorf("Coefficient = %v, want 1.25", row.Coefficient)
	}
}

func TestBoxCoef_IgnoresUnusableValues(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "pump-zero", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "70", SampleStart: day(1, 8), ResultValue: fptr(0)},
		{UID: "pump-none", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "70", SampleStart: day(1, 9)},
		{UID: "ewi-1", SiteID: "0750", ParameterCode: data.ParamSSC, MethodCode: "10", SampleStart: day(1, 10), ResultValue: fptr(125)},
	})
	table := BoxCoef(ds)
	if len(table.Rows) != 0 {
		t.Errorf("got %d pairs, want 0 (no usable point sample)", len(table.Rows))
	}
}

func TestBoxCoef_EmptyDataset(t *testing.T) {
	table := BoxCoef(data.NewDataset(nil))
	if len(table.Rows) != 0 {
		t.Errorf("got %d pairs on empty dataset, want 0", len(table.Rows))
	}
}
