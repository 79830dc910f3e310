package sitestats

import (
	"math"
	"sort"

	"sedreview/internal/data"
)

// OutlierRow is one statistically anomalous SSC measurement at a site.
type OutlierRow struct {
	UID      string  `json:"uid"`
	Value    float64 `json:"value"`
	LogValue float64 `json:"log_value"`
}

// OutlierTable holds the outliers detected for one site.
type OutlierTable struct {
	SiteID string       `json:"site_id"`
	Rows   []OutlierRow `json:"rows"`
}

// UIDs returns the flagged sample identifiers in row order.
func (t OutlierTable) UIDs() []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.UID)
	}
	return out
}

// Outliers detects anomalous SSC values for one site's sub-dataset using
// 1.5 IQR fences on log10-transformed concentrations. Concentrations span
// orders of magnitude within a site, so the fences are computed in log space.
// Sites with fewer than four usable values produce no outliers.
func Outliers(ds *data.Dataset) OutlierTable {
	table := OutlierTable{}

	type obs struct {
		uid string
		val float64
		log float64
	}
	var observations []obs
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if table.SiteID == "" {
			table.SiteID = r.SiteID
		}
		if r.ParameterCode != data.ParamSSC || !r.HasResult() || *r.ResultValue <= 0 {
			continue
		}
		observations = append(observations, obs{uid: r.UID, val: *r.ResultValue, log: math.Log10(*r.ResultValue)})
	}
	if len(observations) < 4 {
		return table
	}

	logs := make([]float64, len(observations))
	for i, o := range observations {
		logs[i] = o.log
	}
	sort.Float64s(logs)
	q1 := quantile(logs, 0.25)
	q3 := quantile(logs, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	for _, o := range observations {
		if o.log < lower || o.log > upper {
			table.Rows = append(table.Rows, OutlierRow{UID: o.uid, Value: o.val, LogValue: o.log})
		}
	}
	return table
}

// quantile expects vs sorted ascending and non-empty; linear interpolation
// between closest ranks.
func quantile(vs []float64, q float64) float64 {
	if len(vs) == 1 {
		return vs[0]
	}
	pos := q * float64(len(vs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return vs[lo]
	}
	frac := pos - float64(lo)
	return vs[lo]*(1-frac) + vs[hi]*frac
}
