package checkout_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/checkout"
)

func TestMessage(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1", Title: "Mango Box", Price: 4.5}, 2)
	c.Add(cart.Product{ID: "p2", Title: "Assam Tea 250g", Price: 3.25}, 1)

	msg := checkout.Message(checkout.Order{
		BusinessName: "DIGITHELA",
		CustomerName: "Asha",
		Cart:         c,
	})

	for _, want := range []string{
		"New order for DIGITHELA",
		"2 x Mango Box = 9.00",
		"1 x Assam Tea 250g = 3.25",
		"Total: 12.25",
		"Name: Asha",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1", Title: "Mango Box", Price: 4}, 1)

	link := checkout.WhatsAppLink("918952864555", checkout.Order{Cart: c})

	if !strings.HasPrefix(link, "https://wa.me/918952864555?text=") {
		t.Fatalf("unexpected link %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if text := u.Query().Get("text"); !strings.Contains(text, "Mango Box") {
		t.Fatalf("unexpected text %q", text)
	}
}
