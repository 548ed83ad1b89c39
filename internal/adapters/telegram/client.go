package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxbot/internal/domain"
	"net/http"
	"net/url"
	"strings"
)

// Client sends replies through the Bot API sendMessage method.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) SendMessage(ctx context.Context, msg domain.OutboundMessage) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: msg.Recipient, Text: msg.Text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/bot" + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", redactURLError(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute sendMessage request: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	var body apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && body.Description != "" {
			return fmt.Errorf("unexpected status code %d for sendMessage: %s", resp.StatusCode, body.Description)
		}
		return fmt.Errorf("unexpected status code %d for sendMessage", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode sendMessage response: %w", decodeErr)
	}
	if !body.OK {
		return fmt.Errorf("sendMessage returned not ok: %s", body.Description)
	}
	return nil
}

// redactURLError drops the request URL, which carries the bot token.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{http: httpClient, baseURL: baseURL, token: token}
}
