package derive

import "sedreview/internal/data"

// Provisional DQI code in NWIS: result entered but not yet reviewed.
const dqiProvisional = "S"

// ProvisionalRow is one provisional result listed for reviewer attention.
type ProvisionalRow struct {
	UID           string   `json:"uid"`
	SiteID        string   `json:"site_id"`
	ParameterCode string   `json:"parameter_code"`
	ResultValue   *float64 `json:"result_value,omitempty"`
}

// FindProvisional lists every record still carrying the provisional DQI code.
func FindProvisional(ds *data.Dataset) []ProvisionalRow {
	var rows []ProvisionalRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.DQICode != dqiProvisional {
			continue
		}
		rows = append(rows, ProvisionalRow{
			UID:           r.UID,
			SiteID:        r.SiteID,
			ParameterCode: r.ParameterCode,
			ResultValue:   r.ResultValue,
		})
	}
	return rows
}

// Comments projects every non-empty field comment in the dataset. The full
// bundle carries this alongside the comments-no-result flag table so reviewers
// see all comments, not only the flagged ones.
func Comments(ds *data.Dataset) []data.CommentRow {
	var rows []data.CommentRow
	for i := range ds.Rows() {
		r := &ds.Rows()[i]
		if r.Comment == "" {
			continue
		}
		rows = append(rows, data.CommentRow{
			UID:           r.UID,
			ParameterCode: r.ParameterCode,
			Comment:       r.Comment,
		})
	}
	return rows
}
