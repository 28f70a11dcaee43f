package clients_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreasstove999/storefront-client-go/internal/clients"
)

func TestAuthClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not send a bearer token")
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "asha@example.com" || body["password"] != "pw" {
			t.Errorf("unexpected credentials %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]string{"_id": "u1", "name": "Asha", "email": "asha@example.com"},
			"token": "tok-login",
		})
	}))
	defer srv.Close()

	base, err := clients.New(srv.URL, nil, staticTokens(""))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	user, token, err := clients.NewAuthClient(base).Login(context.Background(), "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || user.Email != "asha@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if token != "tok-login" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthClientLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	base, err := clients.New(srv.URL, nil, staticTokens(""))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, _, err = clients.NewAuthClient(base).Login(context.Background(), "asha@example.com", "wrong")
	var serverErr *clients.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected a server error, got %v", err)
	}
	if serverErr.Status != http.StatusUnauthorized || serverErr.Reason != "invalid credentials" {
		t.Fatalf("unexpected server error %+v", serverErr)
	}
}

func TestAuthClientMe(t *testing.T) {
	t.Run("sends the stored credential", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-restore" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]string{"_id": "u1", "name": "Asha", "email": "asha@example.com"},
			})
		}))
		defer srv.Close()

		base, err := clients.New(srv.URL, nil, staticTokens("tok-restore"))
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		user, err := clients.NewAuthClient(base).Me(context.Background())
		if err != nil {
			t.Fatalf("me: %v", err)
		}
		if user.Name != "Asha" {
			t.Fatalf("unexpected user %+v", user)
		}
	})

	t.Run("short-circuits without a credential", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer srv.Close()

		base, err := clients.New(srv.URL, nil, staticTokens(""))
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		if _, err := clients.NewAuthClient(base).Me(context.Background()); !errors.Is(err, clients.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if calls != 0 {
			t.Fatalf("expected no request, got %d", calls)
		}
	})
}
