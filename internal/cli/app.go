package cli

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/andreasstove999/storefront-client-go/internal/actions"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/clients"
	"github.com/andreasstove999/storefront-client-go/internal/config"
	"github.com/andreasstove999/storefront-client-go/internal/engine"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// app wires the full client stack for one command invocation.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	sessions *session.Provider
	engine   *engine.Engine
	cart     *actions.Cart
	auth     *clients.AuthClient
	catalog  *clients.CatalogClient
	profile  *clients.ProfileClient
}

func newApp(opts *RootOptions) (*app, error) {
	cfg := config.Load()
	if opts.APIURL != "" {
		cfg.APIBaseURL = opts.APIURL
	}
	if opts.StateDir != "" {
		cfg.StateDir = opts.StateDir
	}

	logger := log.New(os.Stderr, "[storefront] ", log.LstdFlags)

	sessions := session.NewProvider(cfg.SessionPath())

	base, err := clients.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, sessions)
	if err != nil {
		return nil, err
	}

	store := cart.NewFileStore(cfg.CartPath())
	eng := engine.New(store, clients.NewCartClient(base), sessions, logger)

	// Logging out drops the engine to guest mode; the server cart is
	// session-scoped and is not carried back.
	sessions.Subscribe(func(id session.Identity) {
		if !id.Authenticated {
			eng.Logout()
		}
	})

	var out io.Writer = os.Stderr
	if opts.Quiet {
		out = io.Discard
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		engine:   eng,
		cart:     actions.NewCart(eng, sessions, newNotifier(out)),
		auth:     clients.NewAuthClient(base),
		catalog:  clients.NewCatalogClient(base),
		profile:  clients.NewProfileClient(base),
	}, nil
}

// printCart writes the cart listing the way the cart page shows it.
func printCart(w io.Writer, c cart.Cart) {
	if c.Empty() {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	for _, l := range c.Lines {
		fmt.Fprintf(w, "%-12s  %-30s  x%-3d  %8.2f\n", l.Product.ID, l.Product.Title, l.Quantity, l.Product.Price*float64(l.Quantity))
	}
	fmt.Fprintf(w, "\n%d items, subtotal %.2f\n", c.Count(), c.Subtotal())
}
