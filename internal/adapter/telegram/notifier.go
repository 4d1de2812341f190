package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultBaseURL    = "https://api.telegram.org"
	defaultTimeout    = 30 * time.Second
	defaultMaxElapsed = 10 * time.Second
)

// Config holds Telegram notifier configuration.
type Config struct {
	BaseURL    string
	BotToken   string
	ChatID     string
	Timeout    time.Duration
	MaxElapsed time.Duration // total retry budget for one delivery
}

// Notifier delivers alert messages through the Telegram Bot API. Transient
// failures are retried with bounded exponential backoff; the caller treats
// a final failure as log-only, so the retry budget stays small.
type Notifier struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
	maxElapsed time.Duration
}

// NewNotifier creates a Telegram notifier.
func NewNotifier(cfg Config) *Notifier {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxElapsed := cfg.MaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = defaultMaxElapsed
	}
	return &Notifier{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		maxElapsed: maxElapsed,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts the message to the configured chat.
func (n *Notifier) Send(ctx context.Context, message string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = n.maxElapsed

	return backoff.Retry(func() error {
		return n.send(ctx, message)
	}, backoff.WithContext(b, ctx))
}

func (n *Notifier) send(ctx context.Context, message string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		return backoff.Permanent(err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("telegram api: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// Network errors may heal within the retry budget.
		return fmt.Errorf("telegram api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	err = fmt.Errorf("telegram api: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return err
	}
	// Other 4xx responses will not heal on retry.
	return backoff.Permanent(err)
}
