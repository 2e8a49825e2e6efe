// Package translate calls the Microsoft Translator v3 text API on behalf of
// authenticated users.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tango/internal/vocab"
)

// Translator translates a short text between two languages.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (vocab.Translation, error)
}

// Ensure Client implements Translator at compile time.
var _ Translator = (*Client)(nil)

const (
	DefaultEndpoint = "https://api.cognitive.microsofttranslator.com"
	DefaultRegion   = "japaneast"
	apiVersion      = "3.0"
	requestTimeout  = 10 * time.Second
	maxErrorBody    = 512
)

// Config holds the translator credentials.
type Config struct {
	Endpoint string
	Key      string
	Region   string
}

// Client talks to the translator HTTP API.
type Client struct {
	endpoint *url.URL
	key      string
	region   string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient builds a Client. Empty endpoint and region fall back to the
// public endpoint and DefaultRegion.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	raw := strings.TrimSpace(cfg.Endpoint)
	if raw == "" {
		raw = DefaultEndpoint
	}
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse translator endpoint %q: %w", cfg.Endpoint, err)
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = DefaultRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		key:      cfg.Key,
		region:   region,
		http:     &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}, nil
}

type requestItem struct {
	Text string `json:"Text"`
}

type responseItem struct {
	Translations []vocab.Translation `json:"translations"`
}

// Translate returns the first translation of text. Missing arguments are
// reported as vocab.ErrInvalidInput; every other failure wraps
// vocab.ErrUpstream.
func (c *Client) Translate(ctx context.Context, text, from, to string) (vocab.Translation, error) {
	text, from, to = strings.TrimSpace(text), strings.TrimSpace(from), strings.TrimSpace(to)
	if text == "" || from == "" || to == "" {
		return vocab.Translation{}, vocab.Invalid("text, from and to are required")
	}

	body, err := json.Marshal([]requestItem{{Text: text}})
	if err != nil {
		return vocab.Translation{}, fmt.Errorf("encode request: %w", err)
	}

	values := url.Values{}
	values.Set("api-version", apiVersion)
	values.Set("from", from)
	values.Set("to", to)
	reqURL := c.endpoint.ResolveReference(&url.URL{Path: "/translate", RawQuery: values.Encode()})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return vocab.Translation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Ocp-Apim-Subscription-Region", c.region)

	resp, err := c.http.Do(req)
	if err != nil {
		return vocab.Translation{}, fmt.Errorf("translator request: %v: %w", err, vocab.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("translator returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)),
		)
		return vocab.Translation{}, fmt.Errorf("translator returned status %d: %w", resp.StatusCode, vocab.ErrUpstream)
	}

	var payload []responseItem
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return vocab.Translation{}, fmt.Errorf("decode translator response: %v: %w", err, vocab.ErrUpstream)
	}
	if len(payload) == 0 || len(payload[0].Translations) == 0 {
		return vocab.Translation{}, fmt.Errorf("translator returned no translations: %w", vocab.ErrUpstream)
	}
	return payload[0].Translations[0], nil
}
