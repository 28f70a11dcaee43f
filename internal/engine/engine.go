// Package engine keeps one authoritative shopping cart consistent
// across the in-memory state, the durable guest slot, and the
// server-side cart. It is the only writer of all three views.
//
// The engine runs in one of two modes, re-derived from the session on
// every operation: Local (guest, cart lives in the file store) and
// Remote (authenticated, cart lives on the server). Local mutations
// apply synchronously and cannot fail from the caller's view. Remote
// mutations issue the server call first and, on success, replace the
// in-memory cart wholesale with a fresh fetch, so the UI never shows a
// state the server disagrees with.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// ErrQuantityFloor rejects quantity updates below 1. Decrement-to-zero
// routes through remove, never through a zero set.
var ErrQuantityFloor = errors.New("quantity must be at least 1")

// ErrMergeFailed marks a failed post-login merge. The guest slot is
// deliberately left intact so the pre-login items survive for a retry.
var ErrMergeFailed = errors.New("cart merge failed")

// ErrNotAuthenticated is returned when a merge is requested without a
// logged-in session.
var ErrNotAuthenticated = errors.New("merge requires an authenticated session")

// RemoteCart is the server-side cart API. Implemented by
// clients.CartClient.
type RemoteCart interface {
	Fetch(ctx context.Context) (cart.Cart, error)
	AddLine(ctx context.Context, productID string, quantity int) error
	RemoveLine(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	BulkAdd(ctx context.Context, items []cart.ItemRef) error
	Clear(ctx context.Context) error
}

// LocalStore is the durable guest-cart slot.
type LocalStore interface {
	Load() cart.Cart
	Save(c cart.Cart) error
	Clear() error
}

// Sessions supplies the current identity. The engine reads it on every
// operation instead of caching a mode.
type Sessions interface {
	Current() session.Identity
}

type Engine struct {
	local    LocalStore
	remote   RemoteCart
	sessions Sessions
	logger   *log.Logger

	mu   sync.Mutex
	cart cart.Cart
	subs []func(cart.Cart)
}

// New builds the engine and seeds the in-memory cart from the guest
// slot when no session exists. An authenticated start seeds on the
// first Fetch instead, since that requires the network.
func New(local LocalStore, remote RemoteCart, sessions Sessions, logger *log.Logger) *Engine {
	e := &Engine{local: local, remote: remote, sessions: sessions, logger: logger}
	if !sessions.Current().Authenticated {
		e.cart = local.Load()
	}
	return e
}

// Snapshot returns a copy of the current authoritative cart.
func (e *Engine) Snapshot() cart.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Clone()
}

// Subscribe registers fn to run with a fresh snapshot after every cart
// replacement. Used by view code (header badge, cart listing).
func (e *Engine) Subscribe(fn func(cart.Cart)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Fetch loads the authoritative cart for the current identity: the
// guest slot when logged out, the server cart when logged in.
func (e *Engine) Fetch(ctx context.Context) (cart.Cart, error) {
	id := e.sessions.Current()
	if !id.Authenticated {
		c := e.local.Load()
		e.replace(c)
		return c.Clone(), nil
	}

	c, err := e.remote.Fetch(ctx)
	if err != nil {
		return cart.Cart{}, err
	}
	if e.sessions.Current() != id {
		// Session changed while the fetch was in flight; the result no
		// longer describes this identity's cart.
		e.logger.Printf("discarding stale cart fetch")
		return e.Snapshot(), nil
	}
	e.replace(c)
	return c.Clone(), nil
}

// AddItem adds quantity units of the product, folding into an existing
// line for the same product.
func (e *Engine) AddItem(ctx context.Context, p cart.Product, quantity int) error {
	if quantity < 1 {
		return ErrQuantityFloor
	}
	id := e.sessions.Current()
	if !id.Authenticated {
		e.mutateLocal(func(c *cart.Cart) { c.Add(p, quantity) })
		return nil
	}
	if err := e.remote.AddLine(ctx, p.ID, quantity); err != nil {
		return err
	}
	return e.confirm(ctx, id)
}

// RemoveItem drops the product's line entirely.
func (e *Engine) RemoveItem(ctx context.Context, productID string) error {
	id := e.sessions.Current()
	if !id.Authenticated {
		e.mutateLocal(func(c *cart.Cart) { c.Remove(productID) })
		return nil
	}
	if err := e.remote.RemoveLine(ctx, productID); err != nil {
		return err
	}
	return e.confirm(ctx, id)
}

// SetQuantity sets the product's line to an absolute quantity.
func (e *Engine) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityFloor
	}
	id := e.sessions.Current()
	if !id.Authenticated {
		e.mutateLocal(func(c *cart.Cart) { c.SetQuantity(productID, quantity) })
		return nil
	}
	if err := e.remote.SetQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	return e.confirm(ctx, id)
}

// Clear empties the cart. In local mode the guest slot is destroyed;
// in remote mode the server cart is cleared and re-fetched.
func (e *Engine) Clear(ctx context.Context) error {
	id := e.sessions.Current()
	if !id.Authenticated {
		e.mu.Lock()
		e.cart = cart.Cart{}
		e.mu.Unlock()
		if err := e.local.Clear(); err != nil {
			e.logger.Printf("clear guest cart slot: %v", err)
		}
		e.notify()
		return nil
	}
	if err := e.remote.Clear(ctx); err != nil {
		return err
	}
	return e.confirm(ctx, id)
}

// Logout drops to local mode. The server cart is session-scoped and is
// not carried back, so both the in-memory cart and the guest slot end
// up empty. No network call is involved.
func (e *Engine) Logout() {
	e.mu.Lock()
	e.cart = cart.Cart{}
	e.mu.Unlock()
	if err := e.local.Clear(); err != nil {
		e.logger.Printf("clear guest cart slot on logout: %v", err)
	}
	e.notify()
}

// mutateLocal applies fn to the in-memory cart and persists the full
// snapshot. Local-mode mutations are infallible from the caller's
// view; a failing disk write is an environment fault and only logged.
func (e *Engine) mutateLocal(fn func(*cart.Cart)) {
	e.mu.Lock()
	fn(&e.cart)
	if err := e.local.Save(e.cart); err != nil {
		e.logger.Printf("persist guest cart: %v", err)
	}
	e.mu.Unlock()
	e.notify()
}

// confirm resolves the true post-mutation state with a fresh fetch
// rather than patching the local guess; server-side rules (stock
// clamps, price recalculation) can silently alter the outcome. The
// fetched cart is discarded if the session changed in flight.
func (e *Engine) confirm(ctx context.Context, issued session.Identity) error {
	c, err := e.remote.Fetch(ctx)
	if err != nil {
		return err
	}
	if e.sessions.Current() != issued {
		e.logger.Printf("discarding stale cart refresh")
		return nil
	}
	e.replace(c)
	return nil
}

func (e *Engine) replace(c cart.Cart) {
	e.mu.Lock()
	e.cart = c.Clone()
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) notify() {
	e.mu.Lock()
	snap := e.cart.Clone()
	subs := make([]func(cart.Cart), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
