package wizard

import (
	"errors"
	"time"
)

// Step constants for the application wizard. A session may only enter a step
// when the previous step's output is present; handlers redirect backward
// otherwise.
const (
	StepGameSelect   = "game_select"
	StepRequirements = "requirements"
	StepApplication  = "application"
)

// Readiness state constants for the requirements step.
const (
	StateIncomplete     = "incomplete"
	StateReadyToProceed = "ready_to_proceed"
)

// Domain errors
var (
	ErrNoGameSelected = errors.New("no game selected")
	ErrNotReady       = errors.New("critical requirements or required documents are outstanding")
	ErrWrongStep      = errors.New("operation not valid in the current step")
)

// Session is the transient wizard state for one applicant. It is held
// in memory only and discarded after submission; acceptance is a one-time
// gate, not a persisted consent record.
type Session struct {
	ID             string
	Step           string
	GameID         string
	AcceptedGroups map[string]bool
	ReadDocuments  map[string]bool
	StartedAt      time.Time
}

// NewSession creates a fresh session at the game selection step.
// PRE: id is non-empty
// POST: Step is game_select, acceptance sets are empty
func NewSession(id string, now time.Time) Session {
	return Session{
		ID:             id,
		Step:           StepGameSelect,
		AcceptedGroups: make(map[string]bool),
		ReadDocuments:  make(map[string]bool),
		StartedAt:      now,
	}
}

// SelectGame records the selected game and advances to the requirements step.
// Re-selecting resets all acceptance state.
// PRE: gameID is a catalog game ID (validated by the caller)
// POST: Step is requirements, acceptance sets are empty
func (s *Session) SelectGame(gameID string) {
	s.GameID = gameID
	s.Step = StepRequirements
	s.AcceptedGroups = make(map[string]bool)
	s.ReadDocuments = make(map[string]bool)
}

// ToggleGroup flips acceptance of a requirement group.
// PRE: session is at the requirements step
// POST: Group membership flipped; readiness must be recomputed by the caller
func (s *Session) ToggleGroup(groupID string) error {
	if s.Step != StepRequirements {
		return ErrWrongStep
	}
	if s.AcceptedGroups[groupID] {
		delete(s.AcceptedGroups, groupID)
	} else {
		s.AcceptedGroups[groupID] = true
	}
	return nil
}

// ToggleDocument flips the read state of a legal document.
// PRE: session is at the requirements step
// POST: Document membership flipped
func (s *Session) ToggleDocument(documentID string) error {
	if s.Step != StepRequirements {
		return ErrWrongStep
	}
	if s.ReadDocuments[documentID] {
		delete(s.ReadDocuments, documentID)
	} else {
		s.ReadDocuments[documentID] = true
	}
	return nil
}

// Ready reports whether every critical group is accepted and every required
// document is read. Important and standard groups never gate progression.
// INVARIANT: Session fields are not mutated
func (s *Session) Ready(criticalGroupIDs, requiredDocumentIDs []string) bool {
	for _, id := range criticalGroupIDs {
		if !s.AcceptedGroups[id] {
			return false
		}
	}
	for _, id := range requiredDocumentIDs {
		if !s.ReadDocuments[id] {
			return false
		}
	}
	return true
}

// State returns the readiness state for the requirements step.
// INVARIANT: Session fields are not mutated
func (s *Session) State(criticalGroupIDs, requiredDocumentIDs []string) string {
	if s.Ready(criticalGroupIDs, requiredDocumentIDs) {
		return StateReadyToProceed
	}
	return StateIncomplete
}

// Progress returns the completion percentage shown on the requirements step:
// (accepted groups + read documents) / (total groups + total documents).
// The denominator counts all documents, not just required ones — this matches
// the product's displayed ratio and is kept deliberately.
// PRE: totalGroups + totalDocuments > 0
func (s *Session) Progress(totalGroups, totalDocuments int) int {
	total := totalGroups + totalDocuments
	if total <= 0 {
		return 0
	}
	done := len(s.AcceptedGroups) + len(s.ReadDocuments)
	return done * 100 / total
}

// Proceed advances from the requirements step to the application step.
// PRE: session is at the requirements step and Ready is true
// POST: Step is application; acceptance state is retained for audit of the
// session but no longer consulted
func (s *Session) Proceed(criticalGroupIDs, requiredDocumentIDs []string) error {
	if s.Step != StepRequirements {
		return ErrWrongStep
	}
	if s.GameID == "" {
		return ErrNoGameSelected
	}
	if !s.Ready(criticalGroupIDs, requiredDocumentIDs) {
		return ErrNotReady
	}
	s.Step = StepApplication
	return nil
}

// CanEnterRequirements reports whether the requirements step may render.
// INVARIANT: Session fields are not mutated
func (s *Session) CanEnterRequirements() bool {
	return s.GameID != "" && (s.Step == StepRequirements || s.Step == StepApplication)
}

// CanEnterApplication reports whether the application step may render.
// INVARIANT: Session fields are not mutated
func (s *Session) CanEnterApplication() bool {
	return s.GameID != "" && s.Step == StepApplication
}
