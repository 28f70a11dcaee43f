// Package actions is the cart surface the rest of the application
// calls. It wraps the reconciliation engine with user-facing
// notifications, coalesces duplicate fetches, and guards the one-shot
// post-login merge. It never panics past its boundary; every failure
// comes back as an error already reported to the notifier.
package actions

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// Notifier receives the user-visible outcome of every cart action, the
// toast layer of the storefront.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Engine is the reconciliation engine surface the action layer drives.
type Engine interface {
	Fetch(ctx context.Context) (cart.Cart, error)
	AddItem(ctx context.Context, p cart.Product, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context) error
	MergeAfterLogin(ctx context.Context) (bool, error)
	Snapshot() cart.Cart
}

// Sessions reports the identity used to word mode-dependent messages.
type Sessions interface {
	Current() session.Identity
}

type Cart struct {
	engine   Engine
	sessions Sessions
	notify   Notifier

	// fetches coalesces near-simultaneous cart loads (several views
	// mounting at once) into one request, keyed by logical resource.
	fetches singleflight.Group
	merging atomic.Bool
}

func NewCart(engine Engine, sessions Sessions, notify Notifier) *Cart {
	return &Cart{engine: engine, sessions: sessions, notify: notify}
}

// AddItem puts quantity units of the product in the cart.
func (a *Cart) AddItem(ctx context.Context, p cart.Product, quantity int) (cart.Cart, error) {
	if err := a.engine.AddItem(ctx, p, quantity); err != nil {
		a.notify.Error(fmt.Sprintf("Failed to add %s to cart", p.Title))
		return a.engine.Snapshot(), err
	}
	a.notify.Success(fmt.Sprintf("%s added to cart!", p.Title))
	return a.engine.Snapshot(), nil
}

// RemoveItem takes the product's line out of the cart.
func (a *Cart) RemoveItem(ctx context.Context, p cart.Product) (cart.Cart, error) {
	if err := a.engine.RemoveItem(ctx, p.ID); err != nil {
		a.notify.Error(fmt.Sprintf("Failed to remove %s", p.Title))
		return a.engine.Snapshot(), err
	}
	a.notify.Info(fmt.Sprintf("%s removed from cart", p.Title))
	return a.engine.Snapshot(), nil
}

// UpdateQuantity sets the product's line to an absolute quantity.
func (a *Cart) UpdateQuantity(ctx context.Context, p cart.Product, quantity int) (cart.Cart, error) {
	if err := a.engine.SetQuantity(ctx, p.ID, quantity); err != nil {
		a.notify.Error(fmt.Sprintf("Failed to update %s", p.Title))
		return a.engine.Snapshot(), err
	}
	a.notify.Success(fmt.Sprintf("%s quantity updated to %d", p.Title, quantity))
	return a.engine.Snapshot(), nil
}

// ClearCart empties the cart.
func (a *Cart) ClearCart(ctx context.Context) (cart.Cart, error) {
	if err := a.engine.Clear(ctx); err != nil {
		a.notify.Error("Failed to clear cart")
		return a.engine.Snapshot(), err
	}
	a.notify.Info("Cart cleared")
	return a.engine.Snapshot(), nil
}

// FetchCart loads the authoritative cart. Concurrent calls share one
// underlying fetch.
func (a *Cart) FetchCart(ctx context.Context) (cart.Cart, error) {
	v, err, _ := a.fetches.Do("cart", func() (any, error) {
		return a.engine.Fetch(ctx)
	})
	if err != nil {
		a.notify.Error("Failed to load cart from server")
		return a.engine.Snapshot(), err
	}
	if a.sessions.Current().Authenticated {
		a.notify.Success("Cart loaded from server")
	} else {
		a.notify.Success("Cart loaded from local storage")
	}
	return v.(cart.Cart), nil
}

// MergeAfterLogin folds the guest cart into the server cart. At most
// one merge runs at a time; an overlapping call is a no-op.
func (a *Cart) MergeAfterLogin(ctx context.Context) (cart.Cart, error) {
	if !a.merging.CompareAndSwap(false, true) {
		return a.engine.Snapshot(), nil
	}
	defer a.merging.Store(false)

	merged, err := a.engine.MergeAfterLogin(ctx)
	if err != nil {
		a.notify.Error("Failed to merge local cart with server cart")
		return a.engine.Snapshot(), err
	}
	if merged {
		a.notify.Success("Local cart merged with server cart")
	}
	return a.engine.Snapshot(), nil
}

// ProceedToCheckout hands the cart off to checkout and empties it.
func (a *Cart) ProceedToCheckout(ctx context.Context) (cart.Cart, error) {
	if err := a.engine.Clear(ctx); err != nil {
		a.notify.Error("Failed to clear cart")
		return a.engine.Snapshot(), err
	}
	a.notify.Success("Proceeding to checkout")
	return a.engine.Snapshot(), nil
}
