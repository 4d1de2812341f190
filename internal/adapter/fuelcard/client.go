package fuelcard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fuelwatch/internal/domain"
)

const (
	actionWalletRemains = "WalletsRemains"
	actionTransactions  = "Transactions"

	// statusOK is the provider's documented non-error status code.
	statusOK = "0"

	defaultTimeout = 30 * time.Second
	defaultVersion = "1.0"
)

// Config holds fuel-card API client configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
	Debug      bool
}

// Client talks to the fuel-card provider: one POST endpoint keyed by an
// Action query parameter, with the API key as the URL path. Requests carry
// a bounded timeout and are never retried; a failed read aborts the whole
// check run.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	version    string
	debug      bool
	logger     zerolog.Logger
}

// NewClient creates a fuel-card API client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	version := cfg.APIVersion
	if version == "" {
		version = defaultVersion
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		version:    version,
		debug:      cfg.Debug,
		logger:     logger,
	}
}

type apiRequest struct {
	Date    string `json:"date"`
	Version string `json:"version"`
}

type walletsResponse struct {
	Status  flexString  `json:"status"`
	Remains []walletDTO `json:"remains"`
}

type transactionsResponse struct {
	Status       flexString       `json:"status"`
	Transactions []transactionDTO `json:"transactions"`
}

// WalletRemains fetches the opening-of-day wallet snapshot. An empty list
// is a hard error: a check without wallets has nothing to compare.
func (c *Client) WalletRemains(ctx context.Context, businessDate string) ([]*domain.Wallet, error) {
	var resp walletsResponse
	if err := c.post(ctx, actionWalletRemains, businessDate, &resp); err != nil {
		return nil, err
	}
	if s := resp.Status.String(); s != statusOK {
		return nil, fmt.Errorf("fuelcard api: wallets request returned status %q", s)
	}
	if len(resp.Remains) == 0 {
		return nil, errors.New("fuelcard api: empty wallet list")
	}
	if c.debug {
		c.logger.Info().Interface("remains", resp.Remains).Msg("raw wallet snapshot")
	}

	wallets := make([]*domain.Wallet, 0, len(resp.Remains))
	for _, dto := range resp.Remains {
		wallets = append(wallets, toWallet(dto))
	}
	return wallets, nil
}

// Transactions fetches the same-day transaction feed. An empty feed is
// legitimate at the start of a business day; the aggregator decides whether
// that is acceptable for the configured mode.
func (c *Client) Transactions(ctx context.Context, businessDate string) ([]*domain.TransactionRecord, error) {
	var resp transactionsResponse
	if err := c.post(ctx, actionTransactions, businessDate, &resp); err != nil {
		return nil, err
	}
	if s := resp.Status.String(); s != statusOK {
		return nil, fmt.Errorf("fuelcard api: transactions request returned status %q", s)
	}
	if c.debug {
		c.logger.Info().Interface("transactions", resp.Transactions).Msg("raw transaction feed")
	}

	records := make([]*domain.TransactionRecord, 0, len(resp.Transactions))
	for _, dto := range resp.Transactions {
		records = append(records, toTransaction(dto))
	}
	return records, nil
}

func (c *Client) post(ctx context.Context, action, businessDate string, out any) error {
	body, err := json.Marshal(apiRequest{Date: businessDate, Version: c.version})
	if err != nil {
		return fmt.Errorf("fuelcard api: encode request: %w", err)
	}

	// The API key is part of the URL, so the URL must never be logged.
	endpoint := fmt.Sprintf("%s/%s?Action=%s", c.baseURL, c.apiKey, url.QueryEscape(action))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fuelcard api: build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fuelcard api: %s request: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("fuelcard api: %s returned HTTP %d", action, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fuelcard api: decode %s response: %w", action, err)
	}
	return nil
}
