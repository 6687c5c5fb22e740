// Package dialer wraps the Twilio voice API for helpline call-out.
//
// The mobile app hands helpline numbers to the device dialer; the service
// rendition offers click-to-call instead: the user supplies a callback number
// and Twilio bridges it to the helpline. Absence of a configured dialer is a
// reported capability failure, never a crash.
package dialer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/ConnectHealth/HealthBot/internal/phone"
)

// Dialer places a call to the user's callback number and connects it to a
// helpline number.
type Dialer interface {
	Dial(ctx context.Context, callback, helpline string) error
}

// Opts holds configuration options for the Twilio dialer.
type Opts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Option defines a configuration option for the Twilio dialer.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromNumber sets the caller ID for outbound calls.
func WithFromNumber(from string) Option {
	return func(o *Opts) { o.FromNumber = from }
}

// TwilioDialer bridges callback numbers to helplines over the Twilio REST API.
type TwilioDialer struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioDialer creates a dialer, falling back to the TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN, and TWILIO_FROM_NUMBER environment variables for options
// not provided. Missing credentials are a capability failure: the caller gets
// an error and should report the dialer as unavailable.
func NewTwilioDialer(opts ...Option) (*TwilioDialer, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.AccountSID == "" {
		cfg.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}
	if cfg.FromNumber == "" {
		cfg.FromNumber = os.Getenv("TWILIO_FROM_NUMBER")
	}
	slog.Debug("NewTwilioDialer: config loaded",
		"AccountSID_set", cfg.AccountSID != "",
		"AuthToken_set", cfg.AuthToken != "",
		"FromNumber_set", cfg.FromNumber != "")

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("from number must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioDialer{client: client, from: cfg.FromNumber}, nil
}

// Dial places a call to the callback number and connects it to the helpline.
// Both numbers are cleaned to dial-safe characters first.
func (d *TwilioDialer) Dial(ctx context.Context, callback, helpline string) error {
	to := phone.CleanNumber(callback)
	target := phone.CleanNumber(helpline)
	if to == "" {
		return fmt.Errorf("callback number %q contains no dialable characters", callback)
	}
	if target == "" {
		return fmt.Errorf("helpline number %q contains no dialable characters", helpline)
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(d.from)
	params.SetTwiml(fmt.Sprintf("<Response><Say>Connecting you to the helpline.</Say><Dial>%s</Dial></Response>", target))

	if _, err := d.client.Api.CreateCall(params); err != nil {
		slog.Error("TwilioDialer.Dial: call creation failed", "to", to, "helpline", target, "error", err)
		return fmt.Errorf("failed to place call to %s: %w", to, err)
	}
	slog.Debug("TwilioDialer.Dial: call placed", "to", to, "helpline", target)
	return nil
}

// MockDialer records dial requests for tests.
type MockDialer struct {
	Calls []MockCall
	Err   error
}

// MockCall is one recorded Dial invocation.
type MockCall struct {
	Callback string
	Helpline string
}

// Dial records the request and returns the configured error.
func (m *MockDialer) Dial(ctx context.Context, callback, helpline string) error {
	m.Calls = append(m.Calls, MockCall{Callback: callback, Helpline: helpline})
	return m.Err
}
