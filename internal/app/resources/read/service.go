package read

import (
	"context"

	"github.com/camarero/camarero/catalog"
	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/filter"
	"github.com/camarero/camarero/listing"
	"github.com/camarero/camarero/server"
)

type Dependencies struct {
	Server server.ResourceServer
}

type Request struct {
	// ResourceType is the catalog name (product, category, order, ...).
	ResourceType string
	// ID selects a single resource; empty means list the collection.
	ID string
	// Filters are name=value pairs matched against the catalog's filter
	// declarations for the type.
	Filters map[string]string
}

type Result struct {
	OutputValue any
	Title       string
	Headers     []string
	Rows        [][]string
	ActionRows  [][]listing.Action
	Notice      string
}

func Execute(ctx context.Context, deps Dependencies, req Request) (Result, error) {
	resourceServer, err := requireServer(deps)
	if err != nil {
		return Result{}, err
	}

	definition, err := catalog.Lookup(req.ResourceType)
	if err != nil {
		return Result{}, err
	}

	if req.ID != "" {
		return executeGet(ctx, resourceServer, definition, req)
	}
	return executeList(ctx, resourceServer, definition, req)
}

func executeGet(
	ctx context.Context,
	resourceServer server.ResourceServer,
	definition catalog.Definition,
	req Request,
) (Result, error) {
	if len(req.Filters) > 0 {
		return Result{}, validationError("filters apply to collection listings, not single resources", nil)
	}

	debugctx.Printf(ctx, "resource get type=%q id=%q", definition.Type, req.ID)
	value, err := resourceServer.Get(ctx, definition.CollectionPath+"/"+req.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{OutputValue: value, Title: definition.Title}, nil
}

func executeList(
	ctx context.Context,
	resourceServer server.ResourceServer,
	definition catalog.Definition,
	req Request,
) (Result, error) {
	filters, err := filter.NewSet(definition.Filters)
	if err != nil {
		return Result{}, err
	}
	for name, value := range req.Filters {
		if err := filters.SetDraft(name, value); err != nil {
			return Result{}, err
		}
	}
	filters.Apply()

	controller, err := newListController(resourceServer, definition, filters)
	if err != nil {
		return Result{}, err
	}

	debugctx.Printf(ctx, "resource list type=%q filters=%v", definition.Type, filters.Query())
	if err := controller.Refresh(ctx); err != nil {
		return Result{}, err
	}

	items := controller.Items()
	actionRows := make([][]listing.Action, 0, len(items))
	for _, item := range items {
		actionRows = append(actionRows, controller.ActionsFor(item))
	}

	return Result{
		OutputValue: items,
		Title:       controller.Title(),
		Headers:     controller.Headers(),
		Rows:        controller.Rows(),
		ActionRows:  actionRows,
		Notice:      controller.Notice(),
	}, nil
}

// NewController builds the list controller for a catalog definition,
// shared with the delete workflow so both operate on the same view.
func NewController(resourceServer server.ResourceServer, definition catalog.Definition) (*listing.Controller, error) {
	filters, err := filter.NewSet(definition.Filters)
	if err != nil {
		return nil, err
	}
	return newListController(resourceServer, definition, filters)
}

func newListController(
	resourceServer server.ResourceServer,
	definition catalog.Definition,
	filters *filter.Set,
) (*listing.Controller, error) {
	var deleter listing.Deleter
	if definition.Deletable {
		collectionPath := definition.CollectionPath
		deleter = func(ctx context.Context, id string) error {
			return resourceServer.Delete(ctx, collectionPath+"/"+id)
		}
	}

	return listing.NewController(listing.Config{
		Title:          definition.Title,
		CollectionPath: definition.CollectionPath,
		AddPath:        definition.AddPath,
		Columns:        definition.Columns,
		Filters:        filters,
		Lister:         resourceServer,
		Deleter:        deleter,
	})
}

func requireServer(deps Dependencies) (server.ResourceServer, error) {
	if deps.Server == nil {
		return nil, validationError("resource server is not configured", nil)
	}
	return deps.Server, nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
