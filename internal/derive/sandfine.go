package derive

import "sedreview/internal/data"

// SandFineRow is a derived split of one sample's suspended-sediment
// concentration into its fine (finer than 0.0625 mm) and sand fractions.
type SandFineRow struct {
	UID          string  `json:"uid"`
	SiteID       string  `json:"site_id"`
	SSC          float64 `json:"ssc"`
	PercentFiner float64 `json:"percent_finer"`
	FineConc     float64 `json:"fine_conc"`
	SandConc     float64 `json:"sand_conc"`
}

// CalcSandFine derives fine and sand concentrations for every sample that
// reports both SSC and a percent-finer-than-sand result.
func CalcSandFine(ds *data.Dataset) []SandFineRow {
	type parts struct {
		uid, site string
		ssc       *float64
		pct       *float64
	}
	order := make([]string, 0)
	byUID := make(map[string]*parts)
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if !r.HasResult() {
			continue
		}
		if r.ParameterCode != data.ParamSSC && r.ParameterCode != data.ParamPercentFiner {
			continue
		}
		p, ok := byUID[r.UID]
		if !ok {
			p = &parts{uid: r.UID, site: r.SiteID}
			byUID[r.UID] = p
			order = append(order, r.UID)
		}
		switch r.ParameterCode {
		case data.ParamSSC:
			p.ssc = r.ResultValue
		case data.ParamPercentFiner:
			p.pct = r.ResultValue
		}
	}

	var rows []SandFineRow
	for _, uid := range order {
		p := byUID[uid]
		if p.ssc == nil || p.pct == nil {
			continue
		}
		fine := *p.ssc * *p.pct / 100
		rows = append(rows, SandFineRow{
			UID:          p.uid,
			SiteID:       p.site,
			SSC:          *p.ssc,
			PercentFiner: *p.pct,
			FineConc:     fine,
			SandConc:     *p.ssc - fine,
		})
	}
	return rows
}
