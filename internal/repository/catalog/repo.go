// Package catalog provisions the FT indexes backing the schema registry's
// collections.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	"github.com/troismondes/gigdex/internal/domain/schema"
)

// store is the consumer interface for index provisioning (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo provisions indexes.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexName returns the FT index name of a collection.
func IndexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
}

// KeyPrefix returns the document key prefix of a collection.
func KeyPrefix(collection string) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, collection)
}

// EnsureAll creates any missing index for every registered collection.
func (r *Repo) EnsureAll(ctx context.Context) error {
	names := schema.Collections()
	sort.Strings(names)

	for _, collection := range names {
		exists, err := r.store.IndexExists(ctx, IndexName(collection))
		if err != nil {
			return fmt.Errorf("probe index %s: %w", collection, err)
		}
		if exists {
			continue
		}

		def, err := Definition(collection)
		if err != nil {
			return fmt.Errorf("define index %s: %w", collection, err)
		}
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", collection, err)
		}
	}
	return nil
}

// Definition builds the FT index definition of a collection from its field
// mappings. Virtual fields have no storage path and are not indexed; the
// tenant tag is always present.
func Definition(collection string) (*db.IndexDefinition, error) {
	if !schema.KnownCollection(collection) {
		return nil, domain.ErrUnknownCollection
	}

	b := db.NewIndex(IndexName(collection)).Prefix(KeyPrefix(collection))
	b.Tag("$.entrepriseId", "entrepriseId")

	fields := schema.SearchableFields(collection)
	sort.Strings(fields)

	seen := map[string]bool{"entrepriseId": true}
	for _, name := range fields {
		m, _ := schema.Lookup(collection, name)
		if m.Virtual {
			continue
		}
		alias := db.AttrName(m.Path)
		if seen[alias] {
			continue
		}
		seen[alias] = true

		switch m.Type {
		case schema.TypeNumber, schema.TypeDate:
			b.Numeric("$."+m.Path, alias).Sortable().Missing()
		case schema.TypeArray:
			b.Tag("$."+m.Path+"[*]", alias).Missing()
		default:
			b.Tag("$."+m.Path, alias).Missing()
		}
	}

	return b.Build()
}
