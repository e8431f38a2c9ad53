// Package bankapi is the typed client for the banking REST API. Every
// failure leaves here as an errs.ExternalServiceError so pages can render
// a single message.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

const service = "bankapi"

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
	metrics *Metrics
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and returns the raw body of a 2xx response.
// endpoint is the path template used for metrics and logs.
func (c *Client) do(ctx context.Context, method, path, endpoint string, payload any) ([]byte, error) {
	log := logger.FromContext(ctx).With("method", method, "endpoint", endpoint)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, endpoint, 0, started)
		log.Warn("bank api unreachable", "error", err)
		return nil, errs.NewTransportError(service, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, endpoint, resp.StatusCode, started)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, errs.NewTransportError(service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("bank api error", "status", resp.StatusCode)
		return nil, errs.FromAPIResponse(service, resp.StatusCode, raw)
	}
	log.Debug("bank api call", "status", resp.StatusCode, "bytes", len(raw))
	return raw, nil
}

func decode[T any](raw []byte, endpoint string) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return out, nil
}

// getList fetches a JSON array. A null or empty body is an empty list.
func getList[T any](ctx context.Context, c *Client, path, endpoint string) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, endpoint, nil)
	if err != nil {
		return nil, err
	}
	items, err := decode[[]T](raw, endpoint)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
