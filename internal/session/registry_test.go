package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ConnectHealth/HealthBot/internal/convo"
	"github.com/ConnectHealth/HealthBot/internal/models"
)

type cannedResponder struct{}

func (cannedResponder) Reply(ctx context.Context, username, message string) (string, error) {
	return "ok", nil
}

func TestRegistry_AddGetRemove(t *testing.T) {
	r := NewRegistry()
	sess := convo.NewSession("tester", cannedResponder{})

	id := r.Add(sess)
	if id == "" {
		t.Fatal("expected a generated session id")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", r.Len())
	}

	got, err := r.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Error("Get returned a different session")
	}

	if err := r.Remove(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected 0 live sessions after remove, got %d", r.Len())
	}
	if _, err := r.Get(id); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after remove, got %v", err)
	}
}

func TestRegistry_RemoveClosesSession(t *testing.T) {
	r := NewRegistry()
	sess := convo.NewSession("tester", cannedResponder{})
	id := r.Add(sess)

	if err := r.Remove(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.SelectCategory("mental"); !errors.Is(err, models.ErrSessionClosed) {
		t.Errorf("expected removed session to be closed, got %v", err)
	}
}

func TestRegistry_RemoveUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.Remove("s_missing"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegistry_UniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.Add(convo.NewSession("tester", cannedResponder{}))
		if seen[id] {
			t.Fatalf("duplicate session id generated: %s", id)
		}
		seen[id] = true
	}
}
