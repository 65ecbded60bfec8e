package contract

import "context"

// StatsCache holds JSON-encoded dashboard aggregates keyed by name.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}
