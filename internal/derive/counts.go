// Package derive holds the count, find, and calc collaborators. Their outputs
// ride along in the full result bundle; none of them contribute to the flag
// summary.
package derive

import (
	"sort"

	"sedreview/internal/data"
)

// CountRow is one grouped tally.
type CountRow struct {
	SiteID string `json:"site_id"`
	Key    string `json:"key"`
	Count  int    `json:"count"`
}

// CountTable is a grouped count of samples, e.g. sampling methods per site.
type CountTable struct {
	Name string     `json:"name"`
	Rows []CountRow `json:"rows"`
}

// CountMethodsBySite tallies distinct samples per site and sampling-method
// code. Rows are counted once per UID so multi-parameter samples do not
// inflate the tally.
func CountMethodsBySite(ds *data.Dataset) CountTable {
	return countBySite(ds, "method_by_site", func(r *data.SampleRecord) string {
		return r.MethodCode
	})
}

// CountStatusBySite tallies distinct samples per site and sample status.
func CountStatusBySite(ds *data.Dataset) CountTable {
	return countBySite(ds, "status_by_site", func(r *data.SampleRecord) string {
		return r.SampleStatus
	})
}

func countBySite(ds *data.Dataset, name string, key func(*data.SampleRecord) string) CountTable {
	type group struct {
		site, key string
	}
	seen := make(map[group]map[string]struct{})
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		g := group{site: r.SiteID, key: key(r)}
		if seen[g] == nil {
			seen[g] = make(map[string]struct{})
		}
		seen[g][r.UID] = struct{}{}
	}

	rows := make([]CountRow, 0, len(seen))
	for g, uids := range seen {
		rows = append(rows, CountRow{SiteID: g.site, Key: g.key, Count: len(uids)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SiteID != rows[j].SiteID {
			return rows[i].SiteID < rows[j].SiteID
		}
		return rows[i].Key < rows[j].Key
	})
	return CountTable{Name: name, Rows: rows}
}
