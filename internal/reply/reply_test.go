package reply

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ConnectHealth/HealthBot/internal/models"
)

func TestNewHTTPResponder_RequiresEndpoint(t *testing.T) {
	if _, err := NewHTTPResponder(); err == nil {
		t.Errorf("expected error when endpoint not provided, got nil")
	}
}

func TestReply_Success(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{Reply: "ok"})
	}))
	defer server.Close()

	responder, err := NewHTTPResponder(WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reply, err := responder.Reply(context.Background(), "tester", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "ok" {
		t.Errorf("expected reply 'ok', got %q", reply)
	}
	if got.Username != "tester" || got.Message != "hello" {
		t.Errorf("request carried %+v, expected username/message", got)
	}
}

func TestReply_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	responder, _ := NewHTTPResponder(WithEndpoint(server.URL))
	if _, err := responder.Reply(context.Background(), "tester", "hello"); err == nil {
		t.Errorf("expected error for non-2xx status, got nil")
	}
}

func TestReply_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	responder, _ := NewHTTPResponder(WithEndpoint(server.URL))
	if _, err := responder.Reply(context.Background(), "tester", "hello"); err == nil {
		t.Errorf("expected error for malformed body, got nil")
	}
}

func TestReply_EmptyReplyField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Reply: "   "})
	}))
	defer server.Close()

	responder, _ := NewHTTPResponder(WithEndpoint(server.URL))
	_, err := responder.Reply(context.Background(), "tester", "hello")
	if !errors.Is(err, models.ErrEmptyReply) {
		t.Errorf("expected ErrEmptyReply, got %v", err)
	}
}

func TestReply_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	responder, _ := NewHTTPResponder(WithEndpoint(server.URL))
	if _, err := responder.Reply(context.Background(), "tester", "hello"); err == nil {
		t.Errorf("expected transport error, got nil")
	}
}

func TestStaticResponder(t *testing.T) {
	r := &StaticResponder{}
	reply, err := r.Reply(context.Background(), "tester", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != DefaultStaticReply {
		t.Errorf("expected default canned reply, got %q", reply)
	}

	custom := &StaticResponder{Text: "hi"}
	reply, _ = custom.Reply(context.Background(), "tester", "anything")
	if reply != "hi" {
		t.Errorf("expected custom text, got %q", reply)
	}
}
