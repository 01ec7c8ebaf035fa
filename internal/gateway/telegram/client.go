// Package telegram implements the notification gateway over the Telegram
// Bot API: approval requests as messages with inline keyboards, decisions as
// callback-query webhooks.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Client calls the Telegram Bot API. It implements gateway.Notifier and
// gateway.Responder.
type Client struct {
	Token      string
	BaseURL    string
	ChatID     int64
	HTTPClient *http.Client
}

// NewClient returns a client for the given bot token. baseURL is optional;
// chatID is the chat approval requests are delivered to.
func NewClient(token, baseURL string, chatID int64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Token:      token,
		BaseURL:    baseURL,
		ChatID:     chatID,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// apiResponse is the Bot API envelope. Result is ignored; only ok/description
// matter to the relay.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// call POSTs payload as JSON to the given Bot API method and checks the
// response envelope. The bot token never appears in errors.
func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	if c.Token == "" {
		return fmt.Errorf("telegram: bot token not configured")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s request failed: %w", method, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: %s failed status=%d body=%s", method, resp.StatusCode, string(body))
	}
	var ar apiResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return fmt.Errorf("telegram: %s bad response: %w", method, err)
	}
	if !ar.OK {
		return fmt.Errorf("telegram: %s rejected: %s", method, ar.Description)
	}
	return nil
}
