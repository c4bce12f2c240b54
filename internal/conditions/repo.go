package conditions

import "context"

// Repo defines persistence operations for the condition catalog.
type Repo interface {
	List(ctx context.Context) ([]Condition, error)
	Get(ctx context.Context, name string) (Condition, error)
	Upsert(ctx context.Context, condition Condition) error
}
