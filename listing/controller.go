package listing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/filter"
	"github.com/camarero/camarero/resource"
)

// Lister is the read side of the remote collaborator.
type Lister interface {
	List(ctx context.Context, collectionPath string, query map[string]string) ([]resource.Value, error)
}

// Deleter removes one resource by identifier. When nil, the controller
// offers no delete affordance.
type Deleter func(ctx context.Context, id string) error

type Config struct {
	Title          string
	CollectionPath string
	// AddPath is the creation route; the edit route derives from it by
	// substituting its "/add" suffix with "/edit" and appending the id.
	AddPath       string
	Columns       []Column
	Filters       *filter.Set
	Lister        Lister
	Deleter       Deleter
	CustomActions []Action
}

// Controller drives one resource-list view: it fetches the collection
// through the applied filters, renders rows through the column contract,
// and gates per-row deletion behind a single pending confirmation.
//
// The in-memory collection is a cache of server state, replaced wholesale
// on every successful fetch and cleared on fetch failure so stale data is
// never shown as current.
type Controller struct {
	title          string
	collectionPath string
	addPath        string
	columns        []Column
	filters        *filter.Set
	lister         Lister
	deleter        Deleter
	customActions  []Action

	fetchSeq atomic.Uint64

	mu            sync.Mutex
	items         []resource.Value
	notice        string
	errorMessage  string
	pendingDelete resource.Value
}

func NewController(cfg Config) (*Controller, error) {
	if strings.TrimSpace(cfg.CollectionPath) == "" {
		return nil, validationError("collection path is required", nil)
	}
	if cfg.Lister == nil {
		return nil, validationError("lister is required", nil)
	}
	for _, column := range cfg.Columns {
		if column.Key == ActionsColumnKey {
			return nil, validationError("column key \"actions\" is reserved", nil)
		}
	}

	filters := cfg.Filters
	if filters == nil {
		empty, err := filter.NewSet(nil)
		if err != nil {
			return nil, err
		}
		filters = empty
	}

	return &Controller{
		title:          cfg.Title,
		collectionPath: strings.TrimSpace(cfg.CollectionPath),
		addPath:        strings.TrimSpace(cfg.AddPath),
		columns:        append([]Column(nil), cfg.Columns...),
		filters:        filters,
		lister:         cfg.Lister,
		deleter:        cfg.Deleter,
		customActions:  append([]Action(nil), cfg.CustomActions...),
	}, nil
}

func (c *Controller) Title() string { return c.title }

// Refresh fetches the collection using the currently applied filters.
// A refresh that was superseded by a newer one before its response landed
// is discarded without touching controller state (last-intent-wins).
func (c *Controller) Refresh(ctx context.Context) error {
	token := c.fetchSeq.Add(1)

	c.mu.Lock()
	query := c.filters.Query()
	c.mu.Unlock()

	items, err := c.lister.List(ctx, c.collectionPath, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.fetchSeq.Load() {
		debugctx.Printf(ctx, "listing refresh superseded path=%q token=%d", c.collectionPath, token)
		return nil
	}

	if err != nil {
		c.items = nil
		c.notice = ""
		c.errorMessage = FetchErrorMessage(err)
		debugctx.Printf(ctx, "listing refresh failed path=%q error=%v", c.collectionPath, err)
		return err
	}

	c.items = items
	c.errorMessage = ""
	if len(items) == 0 {
		c.notice = NoticeNoData
	} else {
		c.notice = ""
	}
	debugctx.Printf(ctx, "listing refresh succeeded path=%q items=%d", c.collectionPath, len(items))
	return nil
}

// SetFilterDraft edits the draft filter layer only; no fetch happens.
func (c *Controller) SetFilterDraft(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.SetDraft(name, value)
}

// ApplyFilters promotes the draft snapshot and refetches when the applied
// snapshot changed.
func (c *Controller) ApplyFilters(ctx context.Context) error {
	c.mu.Lock()
	changed := c.filters.Apply()
	c.mu.Unlock()

	if !changed {
		return nil
	}
	return c.Refresh(ctx)
}

// ClearFilters resets both filter snapshots and refetches the unfiltered
// collection.
func (c *Controller) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filters.Clear()
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Controller) FilterSpecs() []filter.Spec {
	return c.filters.Specs()
}

// Items returns a snapshot of the cached collection.
func (c *Controller) Items() []resource.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]resource.Value(nil), c.items...)
}

// Notice reports the informational "no data" state. It is not an error:
// the table still renders, with zero rows.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// ErrorMessage reports the user-facing message of the last failed fetch
// or delete, empty after a successful fetch.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

// RequestDelete stages the resource with the given id for confirmation.
// At most one confirmation may be pending; a second request while one is
// staged fails so overlapping destructive operations cannot race.
func (c *Controller) RequestDelete(id string) (string, error) {
	if c.deleter == nil {
		return "", preconditionError("no delete collaborator configured", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingDelete != nil {
		return "", preconditionError("another delete confirmation is already pending", nil)
	}

	for _, item := range c.items {
		itemID, ok := resource.ID(item)
		if ok && itemID == id {
			c.pendingDelete = item
			return resource.DisplayLabel(item), nil
		}
	}
	return "", notFoundError(fmt.Sprintf("no resource with id %q in the current list", id), nil)
}

// PendingDelete exposes the staged resource, if any.
func (c *Controller) PendingDelete() (resource.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return nil, false
	}
	return c.pendingDelete, true
}

// ConfirmDelete consumes the pending confirmation and calls the delete
// collaborator. The row leaves the collection only on success; there is
// no optimistic pre-removal.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	staged := c.pendingDelete
	c.pendingDelete = nil
	c.mu.Unlock()

	if staged == nil {
		return preconditionError("no delete confirmation is pending", nil)
	}

	id, ok := resource.ID(staged)
	if !ok {
		return internalError("staged resource has no identifier", nil)
	}

	if err := c.deleter(ctx, id); err != nil {
		c.mu.Lock()
		c.errorMessage = MessageDeleteFailed
		c.mu.Unlock()
		debugctx.Printf(ctx, "listing delete failed id=%q error=%v", id, err)
		return err
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		itemID, ok := resource.ID(item)
		if ok && itemID == id {
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	c.errorMessage = ""
	c.mu.Unlock()

	debugctx.Printf(ctx, "listing delete succeeded id=%q", id)
	return nil
}

// CancelDelete discards the pending confirmation without deleting.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}
