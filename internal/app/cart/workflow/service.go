// Package workflow wires the cart state machine to the CLI operations:
// each invocation resolves the user's pending order fresh and acts on it.
package workflow

import (
	"context"

	cartdomain "github.com/camarero/camarero/cart"
	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/server"
	"github.com/camarero/camarero/session"
)

type Dependencies struct {
	Server   server.ResourceServer
	Sessions session.Reader
}

type Summary struct {
	State   cartdomain.State  `json:"state" yaml:"state"`
	OrderID string            `json:"order_id,omitempty" yaml:"order_id,omitempty"`
	Items   []cartdomain.Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Show resolves the pending order without creating one. An empty cart is
// a regular outcome, reported through the summary state.
func Show(ctx context.Context, deps Dependencies) (Summary, error) {
	controller, err := newController(deps)
	if err != nil {
		return Summary{}, err
	}

	state, err := controller.Lookup(ctx)
	if err != nil {
		return Summary{}, err
	}
	if state != cartdomain.StateCart {
		return Summary{State: state}, nil
	}

	items, err := controller.RefreshItems(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{State: state, OrderID: controller.OrderID(), Items: items}, nil
}

// Add puts a product line into the cart, creating the pending order first
// when the user has none.
func Add(ctx context.Context, deps Dependencies, productID string, quantity int) (Summary, error) {
	controller, err := newController(deps)
	if err != nil {
		return Summary{}, err
	}

	orderID, err := controller.EnsureOrder(ctx)
	if err != nil {
		return Summary{}, err
	}
	debugctx.Printf(ctx, "cart add order=%q product=%q quantity=%d", orderID, productID, quantity)

	if _, err := controller.AddItem(ctx, productID, quantity); err != nil {
		return Summary{}, err
	}

	items, err := controller.RefreshItems(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{State: controller.State(), OrderID: orderID, Items: items}, nil
}

// Remove deletes one line from the pending order.
func Remove(ctx context.Context, deps Dependencies, itemID string) (Summary, error) {
	controller, err := requireActiveCart(ctx, deps)
	if err != nil {
		return Summary{}, err
	}

	if _, err := controller.RefreshItems(ctx); err != nil {
		return Summary{}, err
	}
	if err := controller.RemoveItem(ctx, itemID); err != nil {
		return Summary{}, err
	}
	return Summary{State: controller.State(), OrderID: controller.OrderID(), Items: controller.Items()}, nil
}

// Checkout completes the pending order. The cart is settled afterwards:
// the next Show reports an empty cart.
func Checkout(ctx context.Context, deps Dependencies) (Summary, error) {
	return settle(ctx, deps, func(controller *cartdomain.Controller) error {
		return controller.Confirm(ctx)
	})
}

// Cancel cancels the pending order, settling the cart like Checkout.
func Cancel(ctx context.Context, deps Dependencies) (Summary, error) {
	return settle(ctx, deps, func(controller *cartdomain.Controller) error {
		return controller.Cancel(ctx)
	})
}

func settle(ctx context.Context, deps Dependencies, transition func(*cartdomain.Controller) error) (Summary, error) {
	controller, err := requireActiveCart(ctx, deps)
	if err != nil {
		return Summary{}, err
	}
	if err := transition(controller); err != nil {
		return Summary{}, err
	}
	return Summary{State: controller.State()}, nil
}

func requireActiveCart(ctx context.Context, deps Dependencies) (*cartdomain.Controller, error) {
	controller, err := newController(deps)
	if err != nil {
		return nil, err
	}

	state, err := controller.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	if state != cartdomain.StateCart {
		return nil, faults.NewTypedError(faults.PreconditionError, "no active pending order", nil)
	}
	return controller, nil
}

func newController(deps Dependencies) (*cartdomain.Controller, error) {
	if deps.Server == nil {
		return nil, faults.NewTypedError(faults.ValidationError, "resource server is not configured", nil)
	}
	if deps.Sessions == nil {
		return nil, faults.NewTypedError(faults.ValidationError, "session reader is not configured", nil)
	}
	return cartdomain.NewController(deps.Server, deps.Sessions)
}
