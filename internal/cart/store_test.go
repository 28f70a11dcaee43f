package cart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

func TestFileStore(t *testing.T) {
	t.Run("missing file loads empty", func(t *testing.T) {
		s := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
		if c := s.Load(); !c.Empty() {
			t.Fatalf("expected empty cart, got %+v", c.Lines)
		}
	})

	t.Run("corrupt file loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		s := cart.NewFileStore(path)
		if c := s.Load(); !c.Empty() {
			t.Fatalf("expected empty cart, got %+v", c.Lines)
		}
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		s := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
		var c cart.Cart
		c.Add(cart.Product{ID: "p1", Title: "Mango Box", Price: 4}, 2)

		if err := s.Save(c); err != nil {
			t.Fatalf("save: %v", err)
		}

		got := s.Load()
		if len(got.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(got.Lines))
		}
		l := got.Lines[0]
		if l.Product.ID != "p1" || l.Product.Title != "Mango Box" || l.Quantity != 2 {
			t.Fatalf("unexpected line %+v", l)
		}
	})

	t.Run("save replaces the whole snapshot", func(t *testing.T) {
		s := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
		var c cart.Cart
		c.Add(cart.Product{ID: "p1"}, 1)
		c.Add(cart.Product{ID: "p2"}, 1)
		if err := s.Save(c); err != nil {
			t.Fatal(err)
		}

		c.Remove("p1")
		if err := s.Save(c); err != nil {
			t.Fatal(err)
		}

		got := s.Load()
		if len(got.Lines) != 1 || got.Lines[0].Product.ID != "p2" {
			t.Fatalf("expected only p2 to survive, got %+v", got.Lines)
		}
	})

	t.Run("clear removes the slot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.json")
		s := cart.NewFileStore(path)
		var c cart.Cart
		c.Add(cart.Product{ID: "p1"}, 1)
		if err := s.Save(c); err != nil {
			t.Fatal(err)
		}

		if err := s.Clear(); err != nil {
			t.Fatalf("clear: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected slot file to be gone, stat err = %v", err)
		}

		// Clearing an already-empty slot is fine.
		if err := s.Clear(); err != nil {
			t.Fatalf("second clear: %v", err)
		}
	})
}
