// Package invite wraps the external send-invite endpoint.
package invite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no invite endpoint URL is set.
var ErrNotConfigured = errors.New("invite endpoint not configured")

// Client posts invitation requests to the external invite service.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// New creates an invite client for the given endpoint URL.
func New(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type inviteRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type inviteError struct {
	Detail string `json:"detail"`
}

// Send requests an invitation for the given person. A 2xx response
// means success; otherwise the error carries the response body's
// detail field when present.
func (c *Client) Send(ctx context.Context, fullName, phone, email string) error {
	if c.URL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(inviteRequest{FullName: fullName, Phone: phone, Email: email})
	if err != nil {
		return fmt.Errorf("encoding invite request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building invite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending invite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	// Surface the service's detail message when it provides one.
	var ie inviteError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &ie); err == nil && ie.Detail != "" {
		return errors.New(ie.Detail)
	}
	return fmt.Errorf("invite service returned status %d", resp.StatusCode)
}
