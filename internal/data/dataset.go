package data

// Dataset is the in-memory review table. It is treated as immutable: checks
// and the review engine read rows but never modify them, so a Dataset and all
// sub-views of it can be shared freely across goroutines.
type Dataset struct {
	rows []SampleRecord
}

func NewDataset(rows []SampleRecord) *Dataset {
	return &Dataset{rows: rows}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns the backing rows. Callers must not mutate them.
func (d *Dataset) Rows() []SampleRecord {
	if d == nil {
		return nil
	}
	return d.rows
}

// Sites returns the distinct site identifiers in order of first appearance.
// The order is deterministic for a given input, which keeps the per-site
// fan-out reproducible across runs.
func (d *Dataset) Sites() []string {
	seen := make(map[string]struct{})
	var sites []string
	for i := range d.Rows() {
		s := d.rows[i].SiteID
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sites = append(sites, s)
	}
	return sites
}

// Site returns the sub-dataset for one site identifier, preserving row order.
func (d *Dataset) Site(siteID string) *Dataset {
	var rows []SampleRecord
	for i := range d.Rows() {
		if d.rows[i].SiteID == siteID {
			rows = append(rows, d.rows[i])
		}
	}
	return NewDataset(rows)
}

// Identity returns the deduplicated identity-column projection in order of
// first appearance.
func (d *Dataset) Identity() []IdentityRow {
	seen := make(map[IdentityRow]struct{})
	var out []IdentityRow
	for i := range d.Rows() {
		row := identityOf(&d.rows[i])
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, row)
	}
	return out
}

// UIDs returns the distinct sample identifiers in order of first appearance.
func (d *Dataset) UIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range d.Rows() {
		uid := d.rows[i].UID
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out
}
