// Package checkout renders an order as a WhatsApp message link, the
// storefront's checkout channel.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

// Order is everything the message needs.
type Order struct {
	BusinessName  string
	CustomerName  string
	CustomerPhone string
	Address       string
	Cart          cart.Cart
}

// WhatsAppLink builds a wa.me link that opens a chat with the business
// number, pre-filled with the order summary.
func WhatsAppLink(number string, o Order) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(Message(o))
}

// Message renders the plain-text order summary.
func Message(o Order) string {
	var b strings.Builder
	if o.BusinessName != "" {
		fmt.Fprintf(&b, "New order for %s\n\n", o.BusinessName)
	} else {
		b.WriteString("New order\n\n")
	}
	for _, l := range o.Cart.Lines {
		fmt.Fprintf(&b, "%d x %s = %.2f\n", l.Quantity, l.Product.Title, l.Product.Price*float64(l.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.Cart.Subtotal())
	if o.CustomerName != "" {
		fmt.Fprintf(&b, "\nName: %s\n", o.CustomerName)
	}
	if o.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	}
	if o.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.Address)
	}
	return b.String()
}
