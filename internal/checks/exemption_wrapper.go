package checks

import (
	"context"

	"sedreview/internal/data"
)

// ExemptionWrapper wraps a Check to provide automatic exemption functionality.
// Accepted findings are suppressed entirely: an exempt flagged row is dropped
// from the check's flag table before it reaches the summary.
type ExemptionWrapper struct {
	Check
	exemptions Exemptions
}

// ID returns the inner check's ID.
func (w *ExemptionWrapper) ID() string {
	return w.Check.ID()
}

// Title returns the inner check's Title.
func (w *ExemptionWrapper) Title() string {
	return w.Check.Title()
}

// Description returns the inner check's Description.
func (w *ExemptionWrapper) Description() string {
	return w.Check.Description()
}

// Evaluate calls the inner check's Evaluate and then applies the exemption
// logic. Site membership is looked up from the dataset, since flag rows carry
// only the UID and parameter code.
func (w *ExemptionWrapper) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	table, err := w.Check.Evaluate(ctx, ds)
	if err != nil {
		return table, err
	}
	if w.exemptions.Empty() || table.Empty() {
		return table, nil
	}

	siteOf := make(map[string]string)
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if _, ok := siteOf[r.UID]; !ok {
			siteOf[r.UID] = r.SiteID
		}
	}

	var kept []data.FlagRow
	for _, row := range table.Rows {
		if exempt, _ := w.exemptions.IsExempt(row.UID, siteOf[row.UID]); exempt {
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept
	return table, nil
}

// Options returns the combined options of the exemptions and the inner check
// (if configurable).
func (w *ExemptionWrapper) Options() []Option {
	opts := w.exemptions.Options()
	if cc, ok := w.Check.(ConfigurableCheck); ok {
		opts = append(opts, cc.Options()...)
	}
	return opts
}

// Configure configures the exemptions and the inner check (if configurable).
func (w *ExemptionWrapper) Configure(opts map[string]string) error {
	w.exemptions.Configure(opts)
	if cc, ok := w.Check.(ConfigurableCheck); ok {
		return cc.Configure(opts)
	}
	return nil
}
