// Package session owns the client's authentication state: who is
// logged in and with which credential. The cart engine consumes it as
// a read-only input that changes only on login, logout, or restore.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Identity is the auth input the cart subsystem re-derives its mode
// from on every operation.
type Identity struct {
	Authenticated bool
	Credential    string
}

// User is the account snapshot returned by the auth endpoints.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type persisted struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Provider holds the current identity, persists it across runs (the
// storefront keeps token and user in localStorage), and notifies
// subscribers on login and logout.
type Provider struct {
	mu    sync.Mutex
	path  string
	token string
	user  User
	subs  []func(Identity)
}

// NewProvider restores any persisted session from path. A missing or
// corrupt state file starts logged out.
func NewProvider(path string) *Provider {
	p := &Provider{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	var state persisted
	if err := json.Unmarshal(data, &state); err != nil {
		return p
	}
	p.token = state.Token
	p.user = state.User
	return p
}

func (p *Provider) Current() Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Identity{Authenticated: p.token != "", Credential: p.token}
}

// Credential satisfies the API clients' token source.
func (p *Provider) Credential() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *Provider) User() (User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user, p.token != ""
}

// Login stores the credential, persists it, and notifies subscribers.
func (p *Provider) Login(u User, token string) error {
	p.mu.Lock()
	p.token = token
	p.user = u
	err := p.persistLocked()
	p.mu.Unlock()

	p.notify()
	return err
}

// Logout drops the credential synchronously; no network involved.
func (p *Provider) Logout() error {
	p.mu.Lock()
	p.token = ""
	p.user = User{}
	err := os.Remove(p.path)
	p.mu.Unlock()

	p.notify()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Subscribe registers fn to run after every login or logout.
func (p *Provider) Subscribe(fn func(Identity)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *Provider) notify() {
	p.mu.Lock()
	id := Identity{Authenticated: p.token != "", Credential: p.token}
	subs := make([]func(Identity), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

func (p *Provider) persistLocked() error {
	data, err := json.Marshal(persisted{Token: p.token, User: p.user})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o600)
}
