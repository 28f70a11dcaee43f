package clients

import (
	"context"
	"net/http"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

// CatalogClient reads the public product catalog. No credential needed.
type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

func (cc *CatalogClient) List(ctx context.Context) ([]cart.Product, error) {
	var resp struct {
		Products []cart.Product `json:"products"`
	}
	if err := cc.c.do(ctx, "list products", http.MethodGet, "/api/products", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (cc *CatalogClient) Get(ctx context.Context, productID string) (cart.Product, error) {
	var resp struct {
		Product cart.Product `json:"product"`
	}
	if err := cc.c.do(ctx, "fetch product", http.MethodGet, "/api/products/"+productID, nil, &resp, false); err != nil {
		return cart.Product{}, err
	}
	return resp.Product, nil
}
