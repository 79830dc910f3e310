package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Check)
	mu       sync.RWMutex
)

func Register(c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[c.ID()]; exists {
		panic(fmt.Sprintf("check %s already registered", c.ID()))
	}
	// Wrap the check with ExemptionWrapper to provide automatic exemption support
	registry[c.ID()] = &ExemptionWrapper{Check: c}
}

// List returns all registered checks sorted by ID. The sort order doubles as
// the summary column order, so it must be stable across runs.
func List() []Check {
	mu.RLock()
	defer mu.RUnlock()
	var cs []Check
	for _, c := range registry {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].ID() < cs[j].ID()
	})
	return cs
}

// Resolve selects checks by a comma-separated ID list. An empty selector
// selects the full roster.
func Resolve(selector string) ([]Check, error) {
	if selector == "" {
		return List(), nil
	}

	mu.RLock()
	defer mu.RUnlock()

	ids := strings.Split(selector, ",")
	var selected []Check
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if c, ok := registry[id]; ok {
			selected = append(selected, c)
		} else {
			return nil, fmt.Errorf("check not found: %s", id)
		}
	}
	return selected, nil
}
