// Package reply bridges free-text user messages to a reply source.
//
// HTTPResponder talks to the external chat endpoint: one POST carrying
// {"username","message"}, one JSON body carrying {"reply"} back. Anything
// else — transport error, non-2xx status, missing or empty reply — is an
// error for the conversation engine to recover from; no retry is attempted
// here.
package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ConnectHealth/HealthBot/internal/models"
)

// DefaultTimeout bounds the remote round trip so an unresponsive endpoint
// cannot leave a session busy indefinitely.
const DefaultTimeout = 30 * time.Second

// Request is the wire shape sent to the chat endpoint.
type Request struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Response is the wire shape expected back from the chat endpoint.
type Response struct {
	Reply string `json:"reply"`
}

// Opts holds configuration options for the HTTP responder.
type Opts struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Option defines a configuration option for the HTTP responder.
type Option func(*Opts)

// WithEndpoint sets the chat endpoint URL.
func WithEndpoint(url string) Option {
	return func(o *Opts) { o.Endpoint = url }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithHTTPClient injects a custom HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.Client = c }
}

// HTTPResponder sends free-text messages to the remote chat endpoint.
type HTTPResponder struct {
	endpoint string
	client   *http.Client
}

// NewHTTPResponder creates a responder for the given endpoint options.
func NewHTTPResponder(opts ...Option) (*HTTPResponder, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("chat endpoint URL must be provided")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	slog.Debug("NewHTTPResponder: configured", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout)
	return &HTTPResponder{endpoint: cfg.Endpoint, client: client}, nil
}

// Reply sends one request to the chat endpoint and returns the reply text.
func (r *HTTPResponder) Reply(ctx context.Context, username, message string) (string, error) {
	payload, err := json.Marshal(Request{Username: username, Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("HTTPResponder.Reply: request failed", "error", err, "endpoint", r.endpoint)
		return "", fmt.Errorf("chat endpoint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		slog.Error("HTTPResponder.Reply: unexpected status", "status", resp.StatusCode, "endpoint", r.endpoint)
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("HTTPResponder.Reply: failed to decode response", "error", err)
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if strings.TrimSpace(body.Reply) == "" {
		return "", models.ErrEmptyReply
	}

	slog.Debug("HTTPResponder.Reply: reply received", "length", len(body.Reply))
	return body.Reply, nil
}

// StaticResponder answers every free-text message with a fixed line. It is
// the default when no chat endpoint or OpenAI key is configured, matching the
// canned-acknowledgement behavior of the basic messaging screen.
type StaticResponder struct {
	Text string
}

// DefaultStaticReply is the canned acknowledgement line.
const DefaultStaticReply = "Thank you for your message. We are connecting you to the right department."

// Reply returns the fixed acknowledgement text.
func (r *StaticResponder) Reply(ctx context.Context, username, message string) (string, error) {
	text := r.Text
	if text == "" {
		text = DefaultStaticReply
	}
	return text, nil
}
