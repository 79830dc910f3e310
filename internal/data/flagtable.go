package data

// FlagRow identifies one record flagged by a check. ParameterCode may be empty
// for checks that flag at the whole-sample level.
type FlagRow struct {
	UID           string `json:"uid"`
	ParameterCode string `json:"parameter_code,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

// FlagTable is the output of one check collaborator: the subset of records
// that failed its criterion. An empty table is a valid outcome, not an error.
type FlagTable struct {
	CheckID string    `json:"check_id"`
	Rows    []FlagRow `json:"rows"`
}

func (t FlagTable) Empty() bool {
	return len(t.Rows) == 0
}

// UIDSet returns the set of flagged sample identifiers. Flag membership in the
// summary is decided by UID, so this is the lookup the aggregator uses.
func (t FlagTable) UIDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		set[r.UID] = struct{}{}
	}
	return set
}

// CommentRow is one entry of the raw comments projection carried in the full
// result bundle alongside the flag tables.
type CommentRow struct {
	UID           string `json:"uid"`
	ParameterCode string `json:"parameter_code,omitempty"`
	Comment       string `json:"comment"`
}
