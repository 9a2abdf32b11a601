package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrDisabled is returned by Send when no webhook URL is configured.
var ErrDisabled = errors.New("webhook is not configured")

const (
	defaultTimeout = 10 * time.Second
	defaultBackoff = 500 * time.Millisecond
)

// StatusError is a non-2xx webhook response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook responded %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook responded %d: %s", e.StatusCode, e.Body)
}

// Dispatcher posts payloads to a webhook. Network errors and 5xx responses are retried with
// exponential backoff; 4xx responses are not.
type Dispatcher struct {
	url        string
	client     *http.Client
	maxRetries uint64
	backoff    time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithBackoff sets the first retry delay.
func WithBackoff(base time.Duration) Option {
	return func(d *Dispatcher) { d.backoff = base }
}

// NewDispatcher returns a dispatcher for url. An empty url gives a disabled dispatcher.
func NewDispatcher(url string, maxRetries int, opts ...Option) *Dispatcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	d := &Dispatcher{
		url:        url,
		client:     &http.Client{Timeout: defaultTimeout},
		maxRetries: uint64(maxRetries),
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enabled reports whether a webhook URL is configured.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.url != ""
}

// Send posts p as JSON.
func (d *Dispatcher) Send(ctx context.Context, p Payload) error {
	if !d.Enabled() {
		return ErrDisabled
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	backoff := retry.WithMaxRetries(d.maxRetries, retry.NewExponential(d.backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return d.post(ctx, body)
	})
	if err != nil {
		return fmt.Errorf("send webhook %s: %w", p.QuoteNumber, err)
	}
	return nil
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return retry.RetryableError(statusErr)
	}
	return statusErr
}
