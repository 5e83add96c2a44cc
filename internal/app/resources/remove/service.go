package remove

import (
	"context"
	"fmt"

	"github.com/camarero/camarero/catalog"
	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/internal/app/resources/read"
	"github.com/camarero/camarero/server"
)

type Dependencies struct {
	Server server.ResourceServer
}

// ConfirmFunc asks the user to approve deleting the labeled resource.
// Returning false cancels the staged deletion.
type ConfirmFunc func(label string) (bool, error)

type Request struct {
	ResourceType string
	ID           string
	// PreConfirmed skips the interactive confirmation, for --confirm-delete.
	PreConfirmed bool
	Confirm      ConfirmFunc
}

type Result struct {
	// Label is the display name of the resource that was (or would have
	// been) deleted.
	Label    string
	Canceled bool
}

// Execute deletes one resource behind the confirmation gate: the target
// is staged against the current collection, confirmed, and only then
// removed on the server.
func Execute(ctx context.Context, deps Dependencies, req Request) (Result, error) {
	if deps.Server == nil {
		return Result{}, validationError("resource server is not configured", nil)
	}
	if req.ID == "" {
		return Result{}, validationError("resource id is required", nil)
	}

	definition, err := catalog.Lookup(req.ResourceType)
	if err != nil {
		return Result{}, err
	}
	if !definition.Deletable {
		return Result{}, preconditionError(
			fmt.Sprintf("resource type %q does not support deletion", definition.Type), nil)
	}

	controller, err := read.NewController(deps.Server, definition)
	if err != nil {
		return Result{}, err
	}
	if err := controller.Refresh(ctx); err != nil {
		return Result{}, err
	}

	label, err := controller.RequestDelete(req.ID)
	if err != nil {
		return Result{}, err
	}

	if !req.PreConfirmed {
		if req.Confirm == nil {
			controller.CancelDelete()
			return Result{}, validationError("flag --confirm-delete is required: confirm deletion", nil)
		}
		approved, err := req.Confirm(label)
		if err != nil {
			controller.CancelDelete()
			return Result{}, err
		}
		if !approved {
			controller.CancelDelete()
			debugctx.Printf(ctx, "resource delete canceled type=%q id=%q", definition.Type, req.ID)
			return Result{Label: label, Canceled: true}, nil
		}
	}

	if err := controller.ConfirmDelete(ctx); err != nil {
		return Result{}, err
	}
	debugctx.Printf(ctx, "resource delete succeeded type=%q id=%q", definition.Type, req.ID)
	return Result{Label: label}, nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func preconditionError(message string, cause error) error {
	return faults.NewTypedError(faults.PreconditionError, message, cause)
}
