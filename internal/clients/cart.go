package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

// CartClient drives the server-side cart. Every method requires a
// credential; a missing one fails with ErrUnauthenticated before any
// network I/O. None of these methods retry.
type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

// Fetch retrieves the authoritative server cart for the current identity.
func (cc *CartClient) Fetch(ctx context.Context) (cart.Cart, error) {
	var resp struct {
		Cart []cart.Line `json:"cart"`
	}
	if err := cc.c.do(ctx, "fetch cart", http.MethodGet, "/api/cart/getcart", nil, &resp, true); err != nil {
		return cart.Cart{}, err
	}
	return cart.Cart{Lines: resp.Cart}, nil
}

// AddLine asks the server to increment or create the line. Not
// idempotent: repeating the call adds the quantity again.
func (cc *CartClient) AddLine(ctx context.Context, productID string, quantity int) error {
	body := cart.ItemRef{ProductID: productID, Quantity: quantity}
	return cc.c.do(ctx, "add to cart", http.MethodPost, "/api/cart/addsingleproduct", body, nil, true)
}

func (cc *CartClient) RemoveLine(ctx context.Context, productID string) error {
	var resp struct {
		Success bool `json:"success"`
	}
	err := cc.c.do(ctx, "remove from cart", http.MethodDelete, "/api/cart/removesingleitem/"+productID, nil, &resp, true)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &ServerError{Op: "remove from cart", Status: http.StatusOK, Reason: "item was not removed"}
	}
	return nil
}

// SetQuantity is an absolute set, not a delta.
func (cc *CartClient) SetQuantity(ctx context.Context, productID string, quantity int) error {
	path := "/api/cart/updatecart/" + productID + "/" + strconv.Itoa(quantity)
	return cc.c.do(ctx, "update cart quantity", http.MethodPatch, path, nil, nil, true)
}

// BulkAdd submits the whole guest cart in one call for the post-login
// merge. Quantities are additive on the server side.
func (cc *CartClient) BulkAdd(ctx context.Context, items []cart.ItemRef) error {
	return cc.c.do(ctx, "merge cart", http.MethodPost, "/api/cart/additemsinarray", items, nil, true)
}

func (cc *CartClient) Clear(ctx context.Context) error {
	return cc.c.do(ctx, "clear cart", http.MethodDelete, "/api/cart/clearcart", nil, nil, true)
}
