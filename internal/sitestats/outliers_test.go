package sitestats

import (
	"testing"

	"sedreview/internal/data"
)

func sscRows(site string, values map[string]float64, order []string) []data.SampleRecord {
	rows := make([]data.SampleRecord, 0, len(order))
	for _, uid := range order {
		v := values[uid]
		rows = append(rows, data.SampleRecord{
			UID: uid, SiteID: site, ParameterCode: data.ParamSSC, ResultValue: fptr(v),
		})
	}
	return rows
}

func TestOutliers_DetectsExtremeValue(t *testing.T) {
	values := map[string]float64{
		"a": 10, "b": 10, "c": 10, "d": 10, "e": 10, "f": 10, "g": 10,
		"huge": 1e5,
	}
	order := []string{"a", "b", "c", "d", "e", "f", "g", "huge"}
	ds := data.NewDataset(sscRows("0750", values, order))

	table := Outliers(ds)
	if table.SiteID != "0750" {
		t.Errorf("SiteID = %q, want 0750", table.SiteID)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d outliers, want 1", len(table.Rows))
	}
	if table.Rows[0].UID != "huge" {
		t.Errorf("outlier UID = %q, want huge", table.Rows[0].UID)
	}
	if table.Rows[0].LogValue != 5 {
		t.Errorf("LogValue = %v, want 5", table.Rows[0].LogValue)
	}
}

func TestOutliers_TooFewObservations(t *testing.T) {
	values := map[string]float64{"a": 10, "b": 12, "c": 1e6}
	ds := data.NewDataset(sscRows("0750", values, []string{"a", "b", "c"}))
	table := Outliers(ds)
	if len(table.Rows) != 0 {
		t.Errorf("got %d outliers with 3 observations, want 0", len(table.Rows))
	}
}

func TestOutliers_SkipsNonPositiveAndMissing(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "a", SiteID: "0750", ParameterCode: data.ParamSSC, ResultValue: fptr(10)},
		{UID: "b", SiteID: "0750", ParameterCode: data.ParamSSC, ResultValue: fptr(0)},
		{UID: "c", SiteID: "0750", ParameterCode: data.ParamSSC, ResultValue: fptr(-5)},
		{UID: "d", SiteID: "0750", ParameterCode: data.ParamSSC},
		{UID: "e", SiteID: "0750", ParameterCode: data.ParamTSS, ResultValue: fptr(1e6)},
	})
	table := Outliers(ds)
	// Only one usable SSC value survives the filters.
	if len(table.Rows) != 0 {
		t.Errorf("got %d outliers, want 0", len(table.Rows))
	}
}

func TestOutliers_UniformValuesProduceNone(t *testing.T) {
	values := map[string]float64{"a": 50, "b": 50, "c": 50, "d": 50, "e": 50}
	ds := data.NewDataset(sscRows("0750", values, []string{"a", "b", "c", "d", "e"}))
	table := Outliers(ds)
	if len(table.Rows) != 0 {
		t.Errorf("got %d outliers for uniform values, want 0", len(table.Rows))
	}
}

func TestQuantile(t *testing.T) {
	vs := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		if got := quantile(vs, tt.q); got != tt.want {
			t.Errorf("quantile(%v, %v) = %v, want %v", vs, tt.q, got, tt.want)
		}
	}
	if got := quantile([]float64{7}, 0.5); got != 7 {
		t.Errorf("quantile single value = %v, want 7", got)
	}
}
