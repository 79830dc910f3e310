package checks

import (
	"context"

	"sedreview/internal/data"
)

// Check is one independent data-quality check. Checks are pure functions of
// the dataset: they read rows and return the subset they flag, and MUST NOT
// mutate the dataset or keep state across evaluations, so the engine is free
// to run them in any order or in parallel.
type Check interface {
	ID() string
	Title() string
	Description() string

	Evaluate(ctx context.Context, ds *data.Dataset) (data.FlagTable, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableCheck interface {
	Check
	Options() []Option
	Configure(opts map[string]string) error
}
