// Package sms is the SMS delivery boundary. Login codes go out through
// a hosted gateway in production and to the log in development.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Gateway sends messages through a hosted SMS gateway: a JSON POST to
// the configured service URL, authorized with the public API key.
type Gateway struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewGateway creates a gateway sender for the given service URL and
// API key.
func NewGateway(url, apiKey string) *Gateway {
	return &Gateway{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send posts the message to the gateway. A non-2xx response is an error.
func (g *Gateway) Send(ctx context.Context, phone, message string) error {
	if g.URL == "" || g.APIKey == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	body, err := json.Marshal(gatewayRequest{To: phone, Message: message})
	if err != nil {
		return fmt.Errorf("encoding sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them. Used
// with the -dev flag so login works without a gateway.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, message string) error {
	slog.Info("sms (dev mode, not sent)", "to", phone, "message", message)
	return nil
}
