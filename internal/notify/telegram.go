// Package notify posts run summaries to a Telegram chat. Disabled entirely
// when no token is configured.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mcttz/mediawatch/internal/retry"
)

// Telegram sends plain-text messages through the Bot API.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
	retry  retry.Config
}

// NewTelegram builds a notifier. Returns nil when token or chat are empty,
// which callers treat as "notifications off".
func NewTelegram(token, chatID string) *Telegram {
	if token == "" || chatID == "" {
		return nil
	}
	return &Telegram{
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 30 * time.Second},
		retry:  retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
	}
}

// SendSummary posts the collector run summary with bounded retries.
func (t *Telegram) SendSummary(ctx context.Context, summary string) error {
	if t == nil {
		return nil
	}
	return retry.Do(ctx, t.retry, func() error {
		return t.sendOnce(ctx, summary)
	})
}

func (t *Telegram) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)

	body, err := json.Marshal(map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API status %d", resp.StatusCode)
	}
	return nil
}
