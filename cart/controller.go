package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/resource"
	"github.com/camarero/camarero/server"
	"github.com/camarero/camarero/session"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

const (
	ordersPath     = "/orders"
	orderItemsPath = "/order-items"
)

type State string

const (
	// StateNoCart means no pending order is known for the user.
	StateNoCart State = "no-cart"
	// StateCart means a pending order exists and is being built.
	StateCart State = "cart"
	// StateSettled is terminal for this cart session: the order was
	// confirmed or canceled and a fresh lookup is required before any
	// further cart activity.
	StateSettled State = "settled"
)

// Item is one order line. Lines for the same product are never merged;
// repeated adds accumulate as separate rows.
type Item struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	Price       string
}

// Controller drives the shopping cart: the single pending order per user
// plus its line items, with transitions to completed or canceled. It is a
// specialized consumer of the same fetch/mutate primitives the resource
// lists use.
type Controller struct {
	server  server.ResourceServer
	session session.Reader

	mu      sync.Mutex
	state   State
	orderID string
	items   []Item
}

func NewController(srv server.ResourceServer, sessions session.Reader) (*Controller, error) {
	if srv == nil {
		return nil, validationError("resource server is required", nil)
	}
	if sessions == nil {
		return nil, validationError("session reader is required", nil)
	}
	return &Controller{
		server:  srv,
		session: sessions,
		state:   StateNoCart,
	}, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OrderID reports the active pending order, empty outside StateCart.
func (c *Controller) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateCart {
		return ""
	}
	return c.orderID
}

// Items returns the cached line list.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// Lookup resolves the user's pending order without ever creating one.
// Zero pending orders leaves the controller in StateNoCart so the view
// renders the empty-cart affordance instead of an empty table.
func (c *Controller) Lookup(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateCart {
		return StateCart, nil
	}

	userID, err := c.userID(ctx)
	if err != nil {
		return c.state, err
	}

	orderID, found, err := c.findPendingOrder(ctx, userID)
	if err != nil {
		return c.state, err
	}
	if !found {
		c.state = StateNoCart
		c.orderID = ""
		c.items = nil
		return StateNoCart, nil
	}

	c.state = StateCart
	c.orderID = orderID
	return StateCart, nil
}

// EnsureOrder resolves the user's pending order, creating one when none
// exists. Idempotent per session: while in StateCart it returns the held
// order id without querying or creating again, so two rapid calls never
// produce a duplicate pending order.
func (c *Controller) EnsureOrder(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateCart {
		return c.orderID, nil
	}

	userID, err := c.userID(ctx)
	if err != nil {
		return "", err
	}

	orderID, found, err := c.findPendingOrder(ctx, userID)
	if err != nil {
		return "", err
	}
	if !found {
		created, err := c.server.Create(ctx, ordersPath, map[string]any{
			"user_id": userID,
			"status":  StatusPending,
		})
		if err != nil {
			return "", err
		}
		createdID, ok := resource.ID(created)
		if !ok {
			return "", internalError("created order carries no id", nil)
		}
		orderID = createdID
		debugctx.Printf(ctx, "cart created pending order id=%q user=%q", orderID, userID)
	}

	c.state = StateCart
	c.orderID = orderID
	return orderID, nil
}

// AddItem appends a line to the active order. Duplicate product lines are
// permitted and accumulate as separate rows.
func (c *Controller) AddItem(ctx context.Context, productID string, quantity int) (Item, error) {
	if quantity < 1 {
		return Item{}, validationError("quantity must be at least 1", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireCart("add item"); err != nil {
		return Item{}, err
	}

	created, err := c.server.Create(ctx, orderItemsPath, map[string]any{
		"order_id":   c.orderID,
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return Item{}, err
	}

	item := decodeItem(created)
	if item.ID == "" {
		return Item{}, internalError("created order item carries no id", nil)
	}
	c.items = append(c.items, item)
	debugctx.Printf(ctx, "cart added item id=%q product=%q quantity=%d", item.ID, productID, quantity)
	return item, nil
}

// RemoveItem deletes a line. The cached list changes only on success;
// failure leaves it untouched and surfaces the error.
func (c *Controller) RemoveItem(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireCart("remove item"); err != nil {
		return err
	}

	if err := c.server.Delete(ctx, orderItemsPath+"/"+itemID); err != nil {
		return err
	}

	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID == itemID {
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	debugctx.Printf(ctx, "cart removed item id=%q", itemID)
	return nil
}

// RefreshItems reloads the active order's lines.
func (c *Controller) RefreshItems(ctx context.Context) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireCart("list items"); err != nil {
		return nil, err
	}

	values, err := c.server.List(ctx, orderItemsPath, map[string]string{"order_id": c.orderID})
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(values))
	for _, value := range values {
		items = append(items, decodeItem(value))
	}
	c.items = items
	return append([]Item(nil), items...), nil
}

// Confirm completes the active order and settles the cart session. The
// view must then present the empty-cart state, not the completed order.
func (c *Controller) Confirm(ctx context.Context) error {
	return c.settle(ctx, StatusCompleted)
}

// Cancel cancels the active order, with the same post-condition as
// Confirm.
func (c *Controller) Cancel(ctx context.Context) error {
	return c.settle(ctx, StatusCanceled)
}

func (c *Controller) settle(ctx context.Context, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireCart(status); err != nil {
		return err
	}

	_, err := c.server.Update(ctx, ordersPath+"/"+c.orderID, map[string]any{
		"status": status,
	})
	if err != nil {
		return err
	}

	debugctx.Printf(ctx, "cart settled order id=%q status=%q", c.orderID, status)
	c.state = StateSettled
	c.orderID = ""
	c.items = nil
	return nil
}

// requireCart guards mutations: acting outside StateCart would corrupt
// server state through a stale or absent order id, so it fails fast.
func (c *Controller) requireCart(operation string) error {
	if c.state != StateCart || c.orderID == "" {
		return preconditionError(fmt.Sprintf("cannot %s: no active pending order", operation), nil)
	}
	return nil
}

func (c *Controller) userID(ctx context.Context) (string, error) {
	current, err := c.session.Current(ctx)
	if err != nil {
		return "", err
	}
	if !current.LoggedIn() {
		return "", authError("cart requires a logged-in user", nil)
	}
	return current.User.ID, nil
}

func (c *Controller) findPendingOrder(ctx context.Context, userID string) (string, bool, error) {
	orders, err := c.server.List(ctx, ordersPath, map[string]string{
		"user_id": userID,
		"status":  StatusPending,
	})
	if err != nil {
		return "", false, err
	}
	if len(orders) == 0 {
		return "", false, nil
	}

	// At most one pending order per user; trust the first hit.
	orderID, ok := resource.ID(orders[0])
	if !ok {
		return "", false, internalError("pending order carries no id", nil)
	}
	return orderID, true, nil
}

func decodeItem(value resource.Value) Item {
	item := Item{}
	if id, ok := resource.ID(value); ok {
		item.ID = id
	}
	if productID, ok := resource.Field(value, "product_id"); ok {
		item.ProductID, _ = resource.Stringify(productID)
	}
	if quantity, ok := resource.Field(value, "quantity"); ok {
		if text, ok := resource.Stringify(quantity); ok {
			if parsed, err := strconv.Atoi(text); err == nil {
				item.Quantity = parsed
			}
		}
	}
	if price, ok := resource.Field(value, "price"); ok {
		item.Price, _ = resource.Stringify(price)
	}
	// Some deployments embed the referenced product for display.
	if product, ok := resource.Field(value, "product"); ok {
		if name, ok := resource.Name(product); ok {
			item.ProductName = name
		}
	}
	return item
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func authError(message string, cause error) error {
	return faults.NewTypedError(faults.AuthError, message, cause)
}

func preconditionError(message string, cause error) error {
	return faults.NewTypedError(faults.PreconditionError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
