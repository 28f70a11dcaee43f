package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

// TokenSource supplies the current bearer credential, or "" when the
// session is not authenticated. Re-read on every request.
type TokenSource interface {
	Credential() string
}

// Client is the shared HTTP plumbing under the typed storefront API
// clients: base URL resolution, JSON bodies, bearer auth, correlation
// IDs, and error normalization.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Tokens  TokenSource
}

func New(baseURL string, httpClient *http.Client, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: u, HTTP: httpClient, Tokens: tokens}, nil
}

// do performs one API call. A non-nil body is sent as JSON; a non-nil
// out receives the decoded 2xx response body. When authed is set, the
// call short-circuits with ErrUnauthenticated if no credential exists.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, authed bool) error {
	var credential string
	if authed {
		credential = c.Tokens.Credential()
		if credential == "" {
			return ErrUnauthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.BaseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	req.Header.Set(HeaderCorrelationID, uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, Status: resp.StatusCode, Reason: readReason(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// readReason pulls a human message out of an error body. The backend
// answers with {"message": ...} on most routes and {"error": ...} on a
// few older ones.
func readReason(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
