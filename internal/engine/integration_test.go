package engine_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/actions"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/clients"
	"github.com/andreasstove999/storefront-client-go/internal/engine"
	"github.com/andreasstove999/storefront-client-go/internal/session"
	"github.com/andreasstove999/storefront-client-go/internal/stubapi"
)

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Info(string)    {}
func (nopNotifier) Error(string)   {}

// TestGuestToLoginFlow runs the full stack (file store, HTTP clients,
// engine, action layer) against the in-memory backend: shop as a
// guest, log in, merge, clear, log out.
func TestGuestToLoginFlow(t *testing.T) {
	stub := stubapi.New()
	stub.Register("Asha", "asha@example.com", "pw")
	srv := httptest.NewServer(stub.Handler())
	defer srv.Close()

	dir := t.TempDir()
	sessions := session.NewProvider(filepath.Join(dir, "session.json"))
	base, err := clients.New(srv.URL, &http.Client{}, sessions)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store := cart.NewFileStore(filepath.Join(dir, "cart.json"))
	eng := engine.New(store, clients.NewCartClient(base), sessions, discard())
	sessions.Subscribe(func(id session.Identity) {
		if !id.Authenticated {
			eng.Logout()
		}
	})
	acts := actions.NewCart(eng, sessions, nopNotifier{})
	ctx := context.Background()

	// Guest: add two mango boxes, stays on disk only.
	mango := cart.Product{ID: "prod-mango", Title: "Mango Box", Price: 4.5}
	if _, err := acts.AddItem(ctx, mango, 2); err != nil {
		t.Fatalf("guest add: %v", err)
	}
	if l, ok := store.Load().Find("prod-mango"); !ok || l.Quantity != 2 {
		t.Fatalf("expected guest slot {mango:2}, got %+v", store.Load().Lines)
	}

	// Log in and merge.
	auth := clients.NewAuthClient(base)
	user, token, err := auth.Login(ctx, "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := sessions.Login(user, token); err != nil {
		t.Fatalf("persist session: %v", err)
	}
	if _, err := acts.MergeAfterLogin(ctx); err != nil {
		t.Fatalf("merge: %v", err)
	}

	c, err := acts.FetchCart(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if l, ok := c.Find("prod-mango"); !ok || l.Quantity != 2 {
		t.Fatalf("expected server cart {mango:2}, got %+v", c.Lines)
	}
	if !store.Load().Empty() {
		t.Fatalf("expected guest slot cleared after merge, got %+v", store.Load().Lines)
	}

	// Server-backed quantity update and add.
	if _, err := acts.UpdateQuantity(ctx, mango, 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := acts.AddItem(ctx, cart.Product{ID: "prod-tea", Title: "Assam Tea 250g"}, 1); err != nil {
		t.Fatalf("authed add: %v", err)
	}
	c = eng.Snapshot()
	if l, _ := c.Find("prod-mango"); l.Quantity != 5 {
		t.Fatalf("expected mango quantity 5, got %+v", c.Lines)
	}
	if _, ok := c.Find("prod-tea"); !ok {
		t.Fatalf("expected tea in cart, got %+v", c.Lines)
	}
	if !store.Load().Empty() {
		t.Fatalf("authed mutations wrote the guest slot: %+v", store.Load().Lines)
	}

	// Clear on the server, confirm via refetch.
	if _, err := acts.ClearCart(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if c, err := acts.FetchCart(ctx); err != nil || !c.Empty() {
		t.Fatalf("expected empty server cart, err=%v cart=%+v", err, c.Lines)
	}

	// Logout drops to an empty guest cart.
	if err := sessions.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !eng.Snapshot().Empty() {
		t.Fatalf("expected empty cart after logout")
	}
	if _, err := acts.AddItem(ctx, mango, 1); err != nil {
		t.Fatalf("guest add after logout: %v", err)
	}
	if l, ok := store.Load().Find("prod-mango"); !ok || l.Quantity != 1 {
		t.Fatalf("expected fresh guest slot {mango:1}, got %+v", store.Load().Lines)
	}
}
