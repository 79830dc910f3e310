package builtin

import (
	"context"
	"fmt"

	"sedreview/internal/checks"
	"sedreview/internal/data"
)

// QA replicate media whose records are expected to live in the QA/QC database.
var qaReplicateMedia = map[string]struct{}{
	"WSQ": {},
	"OAQ": {},
}

// QAQCDatabaseCheck cross-checks QA replicate records against the configured
// QA/QC database number.
type QAQCDatabaseCheck struct {
	qaDB string
}

func (c *QAQCDatabaseCheck) ID() string {
	return "qaqc-database"
}

func (c *QAQCDatabaseCheck) Title() string {
	return "QA Replicates Stored In QA/QC Database"
}

func (c *QAQCDatabaseCheck) Description() string {
	return "Flags QA replicate records whose database number does not match the QA/QC source database."
}

func (c *QAQCDatabaseCheck) Options() []checks.Option {
	return []checks.Option{
		{
			Name:        "qa_db",
			Description: "Two-digit database number treated as the QA/QC source",
			Default:     "02",
		},
	}
}

func (c *QAQCDatabaseCheck) Configure(opts map[string]string) error {
	if v, ok := opts["qa_db"]; ok {
		if len(v) != 2 {
			return fmt.Errorf("qa_db must be a two-digit database number, got %q", v)
		}
		c.qaDB = v
	}
	return nil
}

func (c *QAQCDatabaseCheck) Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error) {
	qaDB := c.qaDB
	if qaDB == "" {
		qaDB = "02"
	}
	var flagged []data.FlagRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if _, ok := qaReplicateMedia[r.MediumCode]; !ok {
			continue
		}
		if r.QADatabase != qaDB {
			flagged = append(flagged, checks.FlagRecord(r, fmt.Sprintf("QA replicate in database %q, expected %q", r.QADatabase, qaDB)))
		}
	}
	return checks.NewFlagTable(c.ID(), flagged), nil
}

func init() {
	checks.Register(&QAQCDatabaseCheck{})
}
