package review

import (
	"sort"

	"sedreview/internal/data"
)

// buildSummary produces the flag-summary table from the identity projection
// and the flagged-UID sets.
//
// Flag membership is by UID: a check that flagged any parameter of a sample
// marks that sample, and the outlier column joins on UID by construction.
// Rows with no true flag are dropped, then the surviving parameter-level rows
// are collapsed to one row per UID with flags OR-reduced across parameters.
// The reduction is explicit: dropping the parameter columns and deduplicating
// would leave one row per distinct flag pattern instead of one per sample,
// which is not the intended semantic.
func buildSummary(ds *data.Dataset, columns []string, flaggedUIDs map[string]map[string]struct{}) *Summary {
	identity := ds.Identity()

	type uidGroup struct {
		row   SummaryRow
		order int
	}
	groups := make(map[string]*uidGroup)
	var uidOrder []string

	for i, id := range identity {
		flags := make(map[string]bool, len(columns))
		any := false
		for _, col := range columns {
			_, ok := flaggedUIDs[col][id.UID]
			flags[col] = ok
			any = any || ok
		}
		if !any {
			continue
		}

		g, ok := groups[id.UID]
		if !ok {
			groups[id.UID] = &uidGroup{
				row: SummaryRow{
					UID:          id.UID,
					RecordNumber: id.RecordNumber,
					SiteID:       id.SiteID,
					StationName:  id.StationName,
					SampleStart:  id.SampleStart,
					MediumCode:   id.MediumCode,
					Flags:        flags,
				},
				order: i,
			}
			uidOrder = append(uidOrder, id.UID)
			continue
		}
		for _, col := range columns {
			g.row.Flags[col] = g.row.Flags[col] || flags[col]
		}
	}

	rows := make([]SummaryRow, 0, len(uidOrder))
	for _, uid := range uidOrder {
		rows = append(rows, groups[uid].row)
	}

	// Sort by site then sample start, stable so equal keys keep their
	// original dataset order.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SiteID != rows[j].SiteID {
			return rows[i].SiteID < rows[j].SiteID
		}
		return rows[i].SampleStart.Before(rows[j].SampleStart)
	})

	return &Summary{Columns: columns, Rows: rows}
}
