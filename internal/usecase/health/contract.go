package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that a search index is provisioned.
type IndexChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
