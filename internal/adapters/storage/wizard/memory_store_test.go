package wizard

import (
	"testing"
	"time"

	domain "academy/internal/domain/wizard"
)

// TestPutGetDelete tests the basic lifecycle of a stored wizard session.
func TestPutGetDelete(t *testing.T) {
	ms := NewMemoryStore()
	s := domain.NewSession("wiz-1", time.Now())
	s.SelectGame("valorant")
	ms.Put(s)

	got, ok := ms.Get("wiz-1")
	if !ok {
		t.Fatal("expected session to be found")
	}
	if got.GameID != "valorant" {
		t.Errorf("expected valorant, got %s", got.GameID)
	}

	ms.Delete("wiz-1")
	if _, ok := ms.Get("wiz-1"); ok {
		t.Error("expected session to be gone after delete")
	}
}

// TestGet_Expired tests that stale sessions are evicted on read.
func TestGet_Expired(t *testing.T) {
	ms := NewMemoryStore()
	ms.ttl = time.Millisecond
	ms.Put(domain.NewSession("wiz-1", time.Now()))
	time.Sleep(5 * time.Millisecond)

	if _, ok := ms.Get("wiz-1"); ok {
		t.Error("expected expired session to be evicted")
	}
}

// TestSweep tests bulk eviction of expired sessions.
func TestSweep(t *testing.T) {
	ms := NewMemoryStore()
	ms.ttl = time.Millisecond
	ms.Put(domain.NewSession("wiz-1", time.Now()))
	ms.Put(domain.NewSession("wiz-2", time.Now()))
	time.Sleep(5 * time.Millisecond)

	if removed := ms.Sweep(); removed != 2 {
		t.Errorf("expected 2 evictions, got %d", removed)
	}
}
