package cart_test

import (
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

func TestAdd(t *testing.T) {
	t.Run("repeated adds keep one line per product", func(t *testing.T) {
		var c cart.Cart
		p := cart.Product{ID: "p1", Title: "Mango Box", Price: 4}
		c.Add(p, 2)
		c.Add(p, 3)
		c.Add(p, 1)

		if len(c.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(c.Lines))
		}
		if c.Lines[0].Quantity != 6 {
			t.Fatalf("expected quantity 6, got %d", c.Lines[0].Quantity)
		}
	})

	t.Run("distinct products get distinct lines", func(t *testing.T) {
		var c cart.Cart
		c.Add(cart.Product{ID: "p1"}, 1)
		c.Add(cart.Product{ID: "p2"}, 2)

		if len(c.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(c.Lines))
		}
	})
}

func TestRemove(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1"}, 1)
	c.Add(cart.Product{ID: "p2"}, 2)

	c.Remove("p1")

	if _, ok := c.Find("p1"); ok {
		t.Fatalf("expected p1 to be removed")
	}
	if l, ok := c.Find("p2"); !ok || l.Quantity != 2 {
		t.Fatalf("expected p2 untouched, got %+v", c.Lines)
	}

	// Removing an absent product is a no-op.
	c.Remove("missing")
	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
}

func TestSetQuantity(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1"}, 1)

	c.SetQuantity("p1", 5)
	if l, _ := c.Find("p1"); l.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", l.Quantity)
	}

	c.SetQuantity("missing", 7)
	if len(c.Lines) != 1 {
		t.Fatalf("unknown product must not create a line, got %+v", c.Lines)
	}
}

func TestTotals(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1", Price: 2.5}, 2)
	c.Add(cart.Product{ID: "p2", Price: 10}, 1)

	if got := c.Subtotal(); got != 15 {
		t.Fatalf("expected subtotal 15, got %f", got)
	}
	if got := c.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestClone(t *testing.T) {
	var c cart.Cart
	c.Add(cart.Product{ID: "p1"}, 1)

	clone := c.Clone()
	clone.SetQuantity("p1", 99)

	if l, _ := c.Find("p1"); l.Quantity != 1 {
		t.Fatalf("clone mutation leaked into original: %+v", c.Lines)
	}
}
