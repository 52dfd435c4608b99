package orchestrators

import (
	"context"
	"fmt"
	"testing"
	"time"

	"academy/internal/domain/wizard"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// seqID returns a generator producing id-001, id-002, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

// mockWizards implements WizardSessions for testing.
type mockWizards struct {
	sessions map[string]wizard.Session
}

func newMockWizards() *mockWizards {
	return &mockWizards{sessions: make(map[string]wizard.Session)}
}

func (m *mockWizards) Get(id string) (wizard.Session, bool) {
	s, ok := m.sessions[id]
	return s, ok
}

func (m *mockWizards) Put(s wizard.Session) {
	m.sessions[s.ID] = s
}

func (m *mockWizards) Delete(id string) {
	delete(m.sessions, id)
}

// TestExecuteSelectGame_NewSession tests that selecting a game with no prior
// session creates one at the requirements step.
func TestExecuteSelectGame_NewSession(t *testing.T) {
	wizards := newMockWizards()
	sess, err := ExecuteSelectGame(context.Background(), SelectGameInput{
		GameID: "valorant",
	}, SelectGameDeps{
		Wizards:    wizards,
		GenerateID: fixedID,
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "test-id-001" {
		t.Errorf("expected ID=test-id-001, got %s", sess.ID)
	}
	if sess.GameID != "valorant" || sess.Step != wizard.StepRequirements {
		t.Errorf("unexpected session state: %+v", sess)
	}
	if _, ok := wizards.sessions["test-id-001"]; !ok {
		t.Error("expected session to be stored")
	}
}

// TestExecuteSelectGame_UnknownGame tests rejection of games not in the catalog.
func TestExecuteSelectGame_UnknownGame(t *testing.T) {
	_, err := ExecuteSelectGame(context.Background(), SelectGameInput{
		GameID: "pinball",
	}, SelectGameDeps{
		Wizards:    newMockWizards(),
		GenerateID: fixedID,
		Now:        fixedNow,
	})
	if err == nil {
		t.Error("expected error for unknown game")
	}
}

// TestExecuteSelectGame_ReselectResetsAcceptance tests that changing the game
// clears accepted groups and read documents.
func TestExecuteSelectGame_ReselectResetsAcceptance(t *testing.T) {
	wizards := newMockWizards()
	sess := wizard.NewSession("wiz-1", fixedTime)
	sess.SelectGame("valorant")
	_ = sess.ToggleGroup("game-requirements")
	_ = sess.ToggleDocument("code-of-conduct")
	wizards.Put(sess)

	got, err := ExecuteSelectGame(context.Background(), SelectGameInput{
		WizardID: "wiz-1",
		GameID:   "league-of-legends",
	}, SelectGameDeps{
		Wizards:    wizards,
		GenerateID: fixedID,
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GameID != "league-of-legends" {
		t.Errorf("expected game to change, got %s", got.GameID)
	}
	if len(got.AcceptedGroups) != 0 || len(got.ReadDocuments) != 0 {
		t.Error("expected acceptance state to reset on re-selection")
	}
}
