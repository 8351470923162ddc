// Package search implements the hybrid criteria engine: each criterion is
// classified for native pushdown or local in-memory evaluation, the native
// part runs on the index, and the local part filters the fetched page.
package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/schema"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// NativeBudget is the number of criteria the native query can carry; the
// mandatory tenant filter occupies the remaining constraint slot.
const NativeBudget = db.MaxConstraints - 1

// DefaultPageSize bounds one native fetch when the caller does not choose.
const DefaultPageSize = 50

// DefaultCrossCollections is searched when a cross-collection request names
// no collections.
var DefaultCrossCollections = []string{"contacts", "lieux", "dates", "structures"}

// Request is one search execution input.
type Request struct {
	Collection string
	TenantID   string
	Criteria   []criterion.Criterion
	Page       domsearch.Page
	PageSize   int
}

// Service executes searches against one repository.
type Service struct {
	repo Repository

	crossCollections []string
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, crossCollections: DefaultCrossCollections}
}

// WithCrossCollections overrides the collections searched when a
// cross-collection request names none.
func (s *Service) WithCrossCollections(collections []string) *Service {
	if len(collections) > 0 {
		s.crossCollections = collections
	}
	return s
}

// Execute runs one search: classify, push the native criteria down, filter
// the returned page with the local criteria, and report warnings for
// anything ignored, demoted, or truncated.
func (s *Service) Execute(ctx context.Context, req Request) (domsearch.Result, error) {
	if req.TenantID == "" {
		return domsearch.Result{}, domain.ErrMissingTenant
	}
	if !schema.KnownCollection(req.Collection) {
		return domsearch.Result{}, fmt.Errorf("collection %q: %w", req.Collection, domain.ErrUnknownCollection)
	}
	if req.PageSize <= 0 {
		req.PageSize = DefaultPageSize
	}

	classified := Classify(req.Collection, req.Criteria)
	plan := planExecution(classified)

	page, err := s.repo.Execute(ctx, req.Collection, req.TenantID, plan.native, req.Page, req.PageSize)
	if err != nil {
		return domsearch.Result{}, err
	}

	docs := Filter(page.Docs, plan.local)

	result := domsearch.Result{
		Data: docs,
		Pagination: domsearch.Pagination{
			// HasMore reflects the native page before local filtering: a
			// full native page means the scan can continue even when the
			// local filter emptied it.
			HasMore: page.NextCursor != "",
			Cursor:  page.NextCursor,
			Total:   len(docs),
		},
		AppliedCriteria: plan.applied,
		Warnings:        plan.warnings(page.TruncatedFields),
	}
	return result, nil
}

// CrossCollectionResult pairs one collection with its result or error.
type CrossCollectionResult struct {
	Collection string
	Result     domsearch.Result
	Err        error
}

// ExecuteAcross fans the same criteria out over several collections in
// parallel. Criteria invalid for a given collection are ignored there and
// surface in that collection's warnings. Results come back ordered by
// collection name.
func (s *Service) ExecuteAcross(
	ctx context.Context, tenantID string, criteria []criterion.Criterion,
	collections []string, pageSize int,
) ([]CrossCollectionResult, error) {
	if tenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if len(collections) == 0 {
		collections = s.crossCollections
	}
	for _, c := range collections {
		if !schema.KnownCollection(c) {
			return nil, fmt.Errorf("collection %q: %w", c, domain.ErrUnknownCollection)
		}
	}

	results := make([]CrossCollectionResult, len(collections))
	var wg sync.WaitGroup
	for i, collection := range collections {
		wg.Add(1)
		go func(i int, collection string) {
			defer wg.Done()
			res, err := s.Execute(ctx, Request{
				Collection: collection,
				TenantID:   tenantID,
				Criteria:   criteria,
				PageSize:   pageSize,
			})
			results[i] = CrossCollectionResult{Collection: collection, Result: res, Err: err}
		}(i, collection)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Collection < results[j].Collection
	})
	return results, nil
}

// executionPlan splits classified criteria into the native and local sets
// after applying the constraint budget.
type executionPlan struct {
	native  []domsearch.Classified
	local   []domsearch.Classified
	applied []criterion.Criterion

	invalidFields []string
	demotedFields []string
}

func planExecution(classified []domsearch.Classified) executionPlan {
	var plan executionPlan
	for _, c := range classified {
		switch c.Class {
		case domsearch.ClassInvalid:
			plan.invalidFields = append(plan.invalidFields, c.Field)
			continue
		case domsearch.ClassNative:
			if len(plan.native) < NativeBudget {
				plan.native = append(plan.native, c)
			} else {
				// Budget exhausted: the criterion still applies, just in
				// memory on the fetched page.
				c.Class = domsearch.ClassLocal
				plan.local = append(plan.local, c)
				plan.demotedFields = append(plan.demotedFields, c.Field)
			}
		case domsearch.ClassLocal:
			plan.local = append(plan.local, c)
		}
		plan.applied = append(plan.applied, c.Criterion)
	}
	return plan
}

func (p executionPlan) warnings(truncatedFields []string) []domsearch.Warning {
	var warnings []domsearch.Warning
	if len(p.invalidFields) > 0 {
		warnings = append(warnings, domsearch.Warning{
			Kind:    domsearch.WarnInvalidCriteria,
			Message: "criteria on unknown fields were ignored",
			Fields:  p.invalidFields,
			Count:   len(p.invalidFields),
		})
	}
	if len(p.demotedFields) > 0 {
		warnings = append(warnings, domsearch.Warning{
			Kind:    domsearch.WarnConstraintLimit,
			Message: "native constraint budget exceeded; extra criteria evaluated in memory",
			Fields:  p.demotedFields,
			Count:   len(p.demotedFields),
		})
	}
	if len(truncatedFields) > 0 {
		warnings = append(warnings, domsearch.Warning{
			Kind:    domsearch.WarnInListTruncated,
			Message: "in_list values truncated to the native maximum",
			Fields:  truncatedFields,
			Count:   len(truncatedFields),
		})
	}
	return warnings
}
