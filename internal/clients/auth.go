package clients

import (
	"context"
	"net/http"

	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// AuthClient covers the account endpoints: OTP-based registration,
// login, and session restore via /me.
type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RequestOTP starts registration by mailing a one-time code.
func (a *AuthClient) RequestOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.c.do(ctx, "request otp", http.MethodPost, "/api/auth/request-otp", body, nil, false)
}

func (a *AuthClient) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return a.c.do(ctx, "verify otp", http.MethodPost, "/api/auth/verify-otp", body, nil, false)
}

func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (session.User, error) {
	var resp struct {
		User session.User `json:"user"`
	}
	if err := a.c.do(ctx, "register", http.MethodPost, "/api/auth/register", req, &resp, false); err != nil {
		return session.User{}, err
	}
	return resp.User, nil
}

// Login exchanges credentials for a bearer token and user snapshot.
func (a *AuthClient) Login(ctx context.Context, email, password string) (session.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User  session.User `json:"user"`
		Token string       `json:"token"`
	}
	if err := a.c.do(ctx, "login", http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return session.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Me validates the stored credential and returns the account it
// belongs to. Used on session restore.
func (a *AuthClient) Me(ctx context.Context) (session.User, error) {
	var resp struct {
		User session.User `json:"user"`
	}
	if err := a.c.do(ctx, "fetch account", http.MethodGet, "/api/auth/me", nil, &resp, true); err != nil {
		return session.User{}, err
	}
	return resp.User, nil
}
