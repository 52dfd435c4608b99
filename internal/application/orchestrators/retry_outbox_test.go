package orchestrators

import (
	"context"
	"errors"
	"testing"

	emailAdapter "academy/internal/adapters/email"
	domain "academy/internal/domain/outbox"
)

// mockEntryStore implements the outbox Store interface for testing.
type mockEntryStore struct {
	entries map[string]domain.Entry
}

func newMockEntryStore() *mockEntryStore {
	return &mockEntryStore{entries: make(map[string]domain.Entry)}
}

func (m *mockEntryStore) GetByID(_ context.Context, id string) (domain.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return domain.Entry{}, errors.New("not found")
	}
	return e, nil
}

func (m *mockEntryStore) Save(_ context.Context, e domain.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *mockEntryStore) ListPending(_ context.Context, limit int) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range m.entries {
		if e.Status == domain.StatusPending || e.Status == domain.StatusRetrying {
			out = append(out, e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockEntryStore) ListFailed(_ context.Context, limit int) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range m.entries {
		if e.Status == domain.StatusFailed && e.Attempts >= e.MaxAttempts {
			out = append(out, e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockEntryStore) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// stubExecutor implements ActionExecutor with scripted results.
type stubExecutor struct {
	calls int
	err   error
}

func (s *stubExecutor) Execute(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ext-1", nil
}

func pendingEntry(id string) domain.Entry {
	return domain.Entry{
		ID:          id,
		ActionType:  domain.ActionTypeEmail,
		Payload:     `{"to":"a@b.co","subject":"s","html":"<p>hi</p>"}`,
		Status:      domain.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   fixedTime,
	}
}

// TestProcessPending_Success tests that a pending entry is delivered and
// marked done.
func TestProcessPending_Success(t *testing.T) {
	store := newMockEntryStore()
	store.entries["e-1"] = pendingEntry("e-1")
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domain.ActionTypeEmail: exec})

	if err := p.ProcessPending(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := store.entries["e-1"]
	if e.Status != domain.StatusDone || e.ExternalID != "ext-1" {
		t.Errorf("unexpected entry state: %+v", e)
	}
	if exec.calls != 1 {
		t.Errorf("expected 1 executor call, got %d", exec.calls)
	}
}

// TestProcessPending_FailureKeepsRetrying tests that a failed attempt stays
// retryable until max attempts.
func TestProcessPending_FailureKeepsRetrying(t *testing.T) {
	store := newMockEntryStore()
	store.entries["e-1"] = pendingEntry("e-1")
	exec := &stubExecutor{err: errors.New("provider down")}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domain.ActionTypeEmail: exec})

	if err := p.ProcessPending(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := store.entries["e-1"]
	if e.Status != domain.StatusRetrying || e.Attempts != 1 || e.ErrorMessage == "" {
		t.Errorf("unexpected entry state: %+v", e)
	}
	if !e.CanRetry() {
		t.Error("expected entry to remain retryable")
	}
}

// TestProcessPending_NoExecutor tests entries with unknown action types.
func TestProcessPending_NoExecutor(t *testing.T) {
	store := newMockEntryStore()
	e := pendingEntry("e-1")
	e.ActionType = "carrier-pigeon"
	store.entries["e-1"] = e
	p := NewOutboxProcessor(store, map[string]ActionExecutor{})

	if err := p.ProcessPending(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.entries["e-1"].ErrorMessage == "" {
		t.Error("expected error message for missing executor")
	}
}

// TestProcessSingle_Terminal tests that done entries cannot be retried.
func TestProcessSingle_Terminal(t *testing.T) {
	store := newMockEntryStore()
	e := pendingEntry("e-1")
	e.Status = domain.StatusDone
	store.entries["e-1"] = e
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domain.ActionTypeEmail: &stubExecutor{}})

	if err := p.ProcessSingle(context.Background(), "e-1"); err == nil {
		t.Error("expected error for terminal entry")
	}
}

// TestAbandonEntry tests the admin abandon path.
func TestAbandonEntry(t *testing.T) {
	store := newMockEntryStore()
	store.entries["e-1"] = pendingEntry("e-1")
	p := NewOutboxProcessor(store, nil)

	if err := p.AbandonEntry(context.Background(), "e-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.entries["e-1"].Status != domain.StatusAbandoned {
		t.Errorf("expected abandoned, got %s", store.entries["e-1"].Status)
	}
}

// recordingSender implements the email Sender interface for testing.
type recordingSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

func (r *recordingSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if r.err != nil {
		return emailAdapter.SendResult{}, r.err
	}
	r.sent = append(r.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1"}, nil
}

// TestEmailExecutor tests payload decoding and delivery.
func TestEmailExecutor(t *testing.T) {
	sender := &recordingSender{}
	exec := &EmailExecutor{Sender: sender, From: "Esports Academy <noreply@academy.gg>"}

	id, err := exec.Execute(context.Background(), `{"to":"jesse@example.com","subject":"Application received","html":"<p>hi</p>"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-1" {
		t.Errorf("expected provider message ID, got %s", id)
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "jesse@example.com" {
		t.Errorf("unexpected sends: %+v", sender.sent)
	}

	if _, err := exec.Execute(context.Background(), "{not json"); err == nil {
		t.Error("expected error for malformed payload")
	}
}
