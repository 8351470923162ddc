// Package gigdex is the embeddable SDK: the same criteria engine the HTTP
// server exposes, wired directly against the database for Go callers.
package gigdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/troismondes/gigdex/internal/db/redis"
	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/document"
	domss "github.com/troismondes/gigdex/internal/domain/savedsearch"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
	domsel "github.com/troismondes/gigdex/internal/domain/selection"
	catalogrepo "github.com/troismondes/gigdex/internal/repository/catalog"
	documentrepo "github.com/troismondes/gigdex/internal/repository/document"
	savedsearchrepo "github.com/troismondes/gigdex/internal/repository/savedsearch"
	searchrepo "github.com/troismondes/gigdex/internal/repository/search"
	selectionrepo "github.com/troismondes/gigdex/internal/repository/selection"
	documentuc "github.com/troismondes/gigdex/internal/usecase/document"
	savedsearchuc "github.com/troismondes/gigdex/internal/usecase/savedsearch"
	searchuc "github.com/troismondes/gigdex/internal/usecase/search"
	selectionuc "github.com/troismondes/gigdex/internal/usecase/selection"
)

const defaultReadinessTimeout = 10 * time.Second

// Option configures the client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	tenant string
	user   string

	crossCollections []string
	skipProvision    bool
}

// WithRedis sets the database addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithAuth sets database credentials.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) { c.db = db }
}

// WithTenant scopes every call to one organization. Required.
func WithTenant(entrepriseID string) Option {
	return func(c *clientConfig) { c.tenant = entrepriseID }
}

// WithUser sets the acting user for saved searches and selections.
func WithUser(userID string) Option {
	return func(c *clientConfig) { c.user = userID }
}

// WithCrossCollections overrides the default cross-collection search targets.
func WithCrossCollections(collections ...string) Option {
	return func(c *clientConfig) { c.crossCollections = collections }
}

// WithoutProvisioning skips index creation at connect time, for callers that
// provision out of band.
func WithoutProvisioning() Option {
	return func(c *clientConfig) { c.skipProvision = true }
}

// Client is the gigdex SDK entry point, scoped to one organization.
type Client struct {
	store  *dbRedis.Store
	tenant string
	user   string

	docSvc    *documentuc.Service
	searchSvc *searchuc.Service
	savedSvc  *savedsearchuc.Service
	selSvc    *selectionuc.Service
}

// New creates a gigdex Client, connects to the database, and provisions any
// missing collection index.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("gigdex: database address required (use WithRedis)")
	}
	if cfg.tenant == "" {
		return nil, errors.New("gigdex: tenant required (use WithTenant)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("gigdex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("gigdex: database not ready: %w", err)
	}

	if !cfg.skipProvision {
		if err := catalogrepo.New(store).EnsureAll(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("gigdex: provision indexes: %w", err)
		}
	}

	return wireClient(store, cfg), nil
}

func wireClient(store *dbRedis.Store, cfg *clientConfig) *Client {
	return &Client{
		store:     store,
		tenant:    cfg.tenant,
		user:      cfg.user,
		docSvc:    documentuc.New(documentrepo.New(store)),
		searchSvc: searchuc.New(searchrepo.New(store)).WithCrossCollections(cfg.crossCollections),
		savedSvc:  savedsearchuc.New(savedsearchrepo.New(store)),
		selSvc:    selectionuc.New(selectionrepo.New(store)),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a criteria search against one collection.
func (c *Client) Search(ctx context.Context, collection string, criteria []criterion.Criterion, opts ...SearchOption) (domsearch.Result, error) {
	req := searchuc.Request{
		Collection: collection,
		TenantID:   c.tenant,
		Criteria:   criteria,
	}
	for _, o := range opts {
		o(&req)
	}
	return c.searchSvc.Execute(ctx, req)
}

// SearchAcross fans the same criteria over several collections. With no
// collections given, the configured defaults are searched.
func (c *Client) SearchAcross(ctx context.Context, criteria []criterion.Criterion, collections ...string) ([]searchuc.CrossCollectionResult, error) {
	return c.searchSvc.ExecuteAcross(ctx, c.tenant, criteria, collections, 0)
}

// SearchOption tunes one search call.
type SearchOption func(*searchuc.Request)

// OrderBy sets the sort field and direction.
func OrderBy(field string, ascending bool) SearchOption {
	return func(r *searchuc.Request) {
		r.Page.OrderBy = field
		r.Page.Ascending = ascending
	}
}

// Cursor resumes a paged search.
func Cursor(cursor string) SearchOption {
	return func(r *searchuc.Request) { r.Page.Cursor = cursor }
}

// PageSize bounds one page.
func PageSize(n int) SearchOption {
	return func(r *searchuc.Request) { r.PageSize = n }
}

// CreateDocument stores a record. An empty id gets a generated one.
func (c *Client) CreateDocument(ctx context.Context, collection, id string, fields map[string]any) (document.Document, error) {
	return c.docSvc.Create(ctx, collection, c.tenant, id, fields)
}

// GetDocument returns one record.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (document.Document, error) {
	return c.docSvc.Get(ctx, collection, c.tenant, id)
}

// UpdateDocument replaces a record's fields.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) (document.Document, error) {
	return c.docSvc.Update(ctx, collection, c.tenant, id, fields)
}

// DeleteDocument removes a record.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	return c.docSvc.Delete(ctx, collection, c.tenant, id)
}

// ListDocuments pages through one collection, newest first.
func (c *Client) ListDocuments(ctx context.Context, collection, cursor string, limit int) ([]document.Document, string, error) {
	return c.docSvc.List(ctx, collection, c.tenant, cursor, limit)
}

// SaveSearch persists a named criteria set, optionally with a result
// snapshot.
func (c *Client) SaveSearch(ctx context.Context, name, description string, criteria []criterion.Criterion, results domss.Snapshot) (domss.SavedSearch, error) {
	return c.savedSvc.Save(ctx, savedsearchuc.SaveInput{
		TenantID:    c.tenant,
		UserID:      c.user,
		Name:        name,
		Description: description,
		Criteria:    criteria,
		Results:     results,
	})
}

// GetSavedSearch returns one saved search.
func (c *Client) GetSavedSearch(ctx context.Context, id string) (domss.SavedSearch, error) {
	return c.savedSvc.Get(ctx, c.tenant, id)
}

// DeleteSavedSearch removes a saved search.
func (c *Client) DeleteSavedSearch(ctx context.Context, id string) error {
	return c.savedSvc.Delete(ctx, c.tenant, id)
}

// ListSavedSearches returns the configured user's saved searches, newest
// first.
func (c *Client) ListSavedSearches(ctx context.Context, limit int) ([]domss.SavedSearch, error) {
	return c.savedSvc.List(ctx, c.tenant, c.user, limit)
}

// CreateSelection stores a named record list owned by the configured user.
func (c *Client) CreateSelection(ctx context.Context, name string, contactIDs []string, shared bool) (domsel.Selection, error) {
	return c.selSvc.Create(ctx, c.tenant, c.user, name, contactIDs, shared)
}

// GetSelection returns a selection visible to the configured user.
func (c *Client) GetSelection(ctx context.Context, id string) (domsel.Selection, error) {
	return c.selSvc.Get(ctx, c.tenant, c.user, id)
}

// UpdateSelection replaces a selection's name, members, and sharing.
func (c *Client) UpdateSelection(ctx context.Context, id, name string, contactIDs []string, shared bool) (domsel.Selection, error) {
	return c.selSvc.Update(ctx, c.tenant, c.user, id, name, contactIDs, shared)
}

// DeleteSelection removes a selection the configured user owns.
func (c *Client) DeleteSelection(ctx context.Context, id string) error {
	return c.selSvc.Delete(ctx, c.tenant, c.user, id)
}

// ListSelections returns the selections visible to the configured user.
func (c *Client) ListSelections(ctx context.Context, limit int) ([]domsel.Selection, error) {
	return c.selSvc.List(ctx, c.tenant, c.user, limit)
}
