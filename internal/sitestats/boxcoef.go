// Package sitestats holds the per-site calculations the review engine fans
// out over distinct sites: box coefficients and outlier detection. Both key
// their results by UID alone, not by (UID, parameter).
package sitestats

import (
	"time"

	"sedreview/internal/data"
)

// Point and pump sampling methods whose SSC a box coefficient relates to a
// cross-section measurement from the same day.
var pointMethods = map[string]struct{}{
	"30": {},
	"40": {},
	"70": {},
}

var crossSectionMethods = map[string]struct{}{
	"10": {},
	"15": {},
	"20": {},
}

// BoxCoefRow pairs a cross-section SSC with a point-sample SSC collected at
// the same site on the same day.
type BoxCoefRow struct {
	UID          string    `json:"uid"`
	PointUID     string    `json:"point_uid"`
	SampleDate   time.Time `json:"sample_date"`
	CrossSection float64   `json:"cross_section_ssc"`
	Point        float64   `json:"point_ssc"`
	Coefficient  float64   `json:"coefficient"`
}

// BoxCoefTable holds the box-coefficient results for one site.
type BoxCoefTable struct {
	SiteID string       `json:"site_id"`
	Rows   []BoxCoefRow `json:"rows"`
}

// BoxCoef computes box coefficients for one site's sub-dataset: for every
// cross-section SSC result it finds a point or pump SSC from the same calendar
// day and reports their ratio. Days with no such pair contribute nothing.
func BoxCoef(ds *data.Dataset) BoxCoefTable {
	table := BoxCoefTable{}

	type pointSample struct {
		uid   string
		value float64
	}
	pointsByDay := make(map[string]pointSample)
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if table.SiteID == "" {
			table.SiteID = r.SiteID
		}
		if r.ParameterCode != data.ParamSSC || !r.HasResult() || *r.ResultValue <= 0 {
			continue
		}
		if _, ok := pointMethods[r.MethodCode]; !ok {
			continue
		}
		day := r.SampleStart.Format("2006-01-02")
		if _, taken := pointsByDay[day]; !taken {
			pointsByDay[day] = pointSample{uid: r.UID, value: *r.ResultValue}
		}
	}

	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.ParameterCode != data.ParamSSC || !r.HasResult() || *r.ResultValue <= 0 {
			continue
		}
		if _, ok := crossSectionMethods[r.MethodCode]; !ok {
			continue
		}
		day := r.SampleStart.Format("2006-01-02")
		p, ok := pointsByDay[day]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, BoxCoefRow{
			UID:          r.UID,
			PointUID:     p.uid,
			SampleDate:   r.SampleStart,
			CrossSection: *r.ResultValue,
			Point:        p.value,
			Coefficient:  *r.ResultValue / p.value,
		})
	}
	return table
}
