package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/session"
)

func TestProvider(t *testing.T) {
	t.Run("starts logged out", func(t *testing.T) {
		p := session.NewProvider(filepath.Join(t.TempDir(), "session.json"))
		if id := p.Current(); id.Authenticated || id.Credential != "" {
			t.Fatalf("expected logged-out identity, got %+v", id)
		}
	})

	t.Run("login persists and restores", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		p := session.NewProvider(path)
		u := session.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}
		if err := p.Login(u, "tok-123"); err != nil {
			t.Fatalf("login: %v", err)
		}

		restored := session.NewProvider(path)
		if id := restored.Current(); !id.Authenticated || id.Credential != "tok-123" {
			t.Fatalf("expected restored identity, got %+v", id)
		}
		if got, ok := restored.User(); !ok || got.Email != "asha@example.com" {
			t.Fatalf("expected restored user, got %+v ok=%v", got, ok)
		}
	})

	t.Run("corrupt state file starts logged out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
			t.Fatal(err)
		}
		p := session.NewProvider(path)
		if id := p.Current(); id.Authenticated {
			t.Fatalf("expected logged-out identity, got %+v", id)
		}
	})

	t.Run("logout clears identity and state file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		p := session.NewProvider(path)
		if err := p.Login(session.User{ID: "u1"}, "tok"); err != nil {
			t.Fatal(err)
		}
		if err := p.Logout(); err != nil {
			t.Fatalf("logout: %v", err)
		}
		if id := p.Current(); id.Authenticated {
			t.Fatalf("expected logged out, got %+v", id)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected state file removed, stat err = %v", err)
		}
	})

	t.Run("subscribers observe login and logout", func(t *testing.T) {
		p := session.NewProvider(filepath.Join(t.TempDir(), "session.json"))
		var seen []session.Identity
		p.Subscribe(func(id session.Identity) { seen = append(seen, id) })

		if err := p.Login(session.User{ID: "u1"}, "tok"); err != nil {
			t.Fatal(err)
		}
		if err := p.Logout(); err != nil {
			t.Fatal(err)
		}

		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(seen))
		}
		if !seen[0].Authenticated || seen[1].Authenticated {
			t.Fatalf("unexpected notification order %+v", seen)
		}
	})
}
