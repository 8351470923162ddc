package search

import (
	"context"

	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// Repository executes the native part of a search.
type Repository interface {
	Execute(
		ctx context.Context,
		collection, tenantID string,
		native []domsearch.Classified,
		page domsearch.Page,
		pageSize int,
	) (domsearch.NativePage, error)
	Count(
		ctx context.Context,
		collection, tenantID string,
		native []domsearch.Classified,
	) (int, error)
}
