package clients

import (
	"context"
	"net/http"

	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// Profile is the editable account detail set.
type Profile struct {
	User           session.User `json:"user"`
	Phone          string       `json:"phone"`
	SavedAddresses []string     `json:"savedAddresses"`
}

// ProfileClient covers the authenticated account-management endpoints.
type ProfileClient struct{ c *Client }

func NewProfileClient(c *Client) *ProfileClient { return &ProfileClient{c: c} }

func (pc *ProfileClient) Get(ctx context.Context) (Profile, error) {
	var resp Profile
	if err := pc.c.do(ctx, "fetch profile", http.MethodGet, "/api/user/profile", nil, &resp, true); err != nil {
		return Profile{}, err
	}
	return resp, nil
}

func (pc *ProfileClient) Update(ctx context.Context, p Profile) (Profile, error) {
	var resp Profile
	if err := pc.c.do(ctx, "update profile", http.MethodPut, "/api/user/profile", p, &resp, true); err != nil {
		return Profile{}, err
	}
	return resp, nil
}

func (pc *ProfileClient) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return pc.c.do(ctx, "change password", http.MethodPut, "/api/user/change-password", body, nil, true)
}
