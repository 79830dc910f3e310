package checks

import (
	"path"
	"strings"
)

// Exemptions handles common exemption logic for checks.
// It supports exempting flagged records by sample UID (exact match), UID
// wildcard pattern, and site identifier.
type Exemptions struct {
	UIDs     map[string]bool
	Patterns []string
	Sites    map[string]bool
}

// Options returns the standard configuration options for exemptions.
func (e *Exemptions) Options() []Option {
	return []Option{
		{
			Name:        "exempt.uids",
			Description: "Comma-separated list of sample UIDs whose accepted flags are suppressed.",
		},
		{
			Name:        "exempt.patterns",
			Description: "Comma-separated list of wildcard patterns for exempted UIDs (e.g. 2024-*).",
		},
		{
			Name:        "exempt.sites",
			Description: "Comma-separated list of site identifiers. Flags at any of these sites are suppressed.",
		},
	}
}

// Configure parses the configuration options to populate the Exemptions.
func (e *Exemptions) Configure(opts map[string]string) {
	e.UIDs = make(map[string]bool)
	e.Patterns = nil
	e.Sites = make(map[string]bool)

	if val, ok := opts["exempt.uids"]; ok && val != "" {
		for _, s := range strings.Split(val, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				e.UIDs[s] = true
			}
		}
	}

	if val, ok := opts["exempt.patterns"]; ok && val != "" {
		for _, s := range strings.Split(val, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				e.Patterns = append(e.Patterns, s)
			}
		}
	}

	if val, ok := opts["exempt.sites"]; ok && val != "" {
		for _, s := range strings.Split(val, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				e.Sites[s] = true
			}
		}
	}
}

// Empty reports whether no exemption criteria are configured.
func (e *Exemptions) Empty() bool {
	return len(e.UIDs) == 0 && len(e.Patterns) == 0 && len(e.Sites) == 0
}

// IsExempt checks if the flagged record is covered by any of the configured
// criteria. It returns true and a reason string if exempt, otherwise false
// and empty string.
func (e *Exemptions) IsExempt(uid, siteID string) (bool, string) {
	if e.UIDs[uid] {
		return true, "exempt.uids"
	}

	for _, pattern := range e.Patterns {
		if matched, _ := path.Match(pattern, uid); matched {
			return true, "exempt.patterns"
		}
	}

	if siteID != "" && e.Sites[siteID] {
		return true, "exempt.sites"
	}

	return false, ""
}
