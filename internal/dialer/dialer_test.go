package dialer

import (
	"context"
	"testing"
)

func TestNewTwilioDialer_MissingCredentials(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("TWILIO_FROM_NUMBER", "")

	if _, err := NewTwilioDialer(); err == nil {
		t.Error("expected error without credentials, got nil")
	}
	if _, err := NewTwilioDialer(WithAccountSID("sid"), WithAuthToken("token")); err == nil {
		t.Error("expected error without a from number, got nil")
	}
}

func TestNewTwilioDialer_WithOptions(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("TWILIO_FROM_NUMBER", "")

	d, err := NewTwilioDialer(
		WithAccountSID("sid"),
		WithAuthToken("token"),
		WithFromNumber("+15005550006"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil {
		t.Fatal("expected dialer instance, got nil")
	}
}

func TestTwilioDialer_RejectsUndialableNumbers(t *testing.T) {
	// The number validation runs before any API call is attempted.
	d := &TwilioDialer{from: "+15005550006"}
	if err := d.Dial(context.Background(), "no digits", "988"); err == nil {
		t.Error("expected error for undialable callback number, got nil")
	}
	if err := d.Dial(context.Background(), "+15005550001", "()"); err == nil {
		t.Error("expected error for undialable helpline number, got nil")
	}
}

func TestMockDialer_RecordsCalls(t *testing.T) {
	m := &MockDialer{}
	if err := m.Dial(context.Background(), "+15005550001", "988"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(m.Calls))
	}
	if m.Calls[0].Callback != "+15005550001" || m.Calls[0].Helpline != "988" {
		t.Errorf("recorded call does not match request: %+v", m.Calls[0])
	}
}
