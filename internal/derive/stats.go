package derive

import (
	"sort"

	"sedreview/internal/data"
)

// StatsRow summarizes reported result values for one site and parameter.
type StatsRow struct {
	SiteID        string  `json:"site_id"`
	ParameterCode string  `json:"parameter_code"`
	Count         int     `json:"count"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
}

// CalcSummaryStats computes per site × parameter summary statistics over all
// reported result values. Rows are sorted by site then parameter code.
func CalcSummaryStats(ds *data.Dataset) []StatsRow {
	type group struct {
		site, param string
	}
	values := make(map[group][]float64)
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if !r.HasResult() {
			continue
		}
		g := group{site: r.SiteID, param: r.ParameterCode}
		values[g] = append(values[g], *r.ResultValue)
	}

	rows := make([]StatsRow, 0, len(values))
	for g, vs := range values {
		sort.Float64s(vs)
		sum := 0.0
		for _, v := range vs {
			sum += v
		}
		rows = append(rows, StatsRow{
			SiteID:        g.site,
			ParameterCode: g.param,
			Count:         len(vs),
			Min:           vs[0],
			Max:           vs[len(vs)-1],
			Mean:          sum / float64(len(vs)),
			Median:        median(vs),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SiteID != rows[j].SiteID {
			return rows[i].SiteID < rows[j].SiteID
		}
		return rows[i].ParameterCode < rows[j].ParameterCode
	})
	return rows
}

// median expects vs sorted ascending and non-empty.
func median(vs []float64) float64 {
	n := len(vs)
	if n%2 == 1 {
		return vs[n/2]
	}
	return (vs[n/2-1] + vs[n/2]) / 2
}
