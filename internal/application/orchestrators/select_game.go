package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"academy/internal/domain/game"
	"academy/internal/domain/wizard"
)

// WizardSessions defines the interface for in-memory wizard session state.
type WizardSessions interface {
	Get(id string) (wizard.Session, bool)
	Put(s wizard.Session)
	Delete(id string)
}

// SelectGameInput carries input for the orchestrator.
type SelectGameInput struct {
	WizardID string // empty when no wizard session exists yet
	GameID   string
}

// SelectGameDeps holds dependencies for SelectGame.
type SelectGameDeps struct {
	Wizards    WizardSessions
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSelectGame records the applicant's game choice and moves the wizard
// to the requirements step. Re-selecting a game resets all acceptance state.
// PRE: GameID names a catalog game
// POST: Wizard session exists at the requirements step with the game recorded
func ExecuteSelectGame(ctx context.Context, input SelectGameInput, deps SelectGameDeps) (wizard.Session, error) {
	g, err := game.GetByID(input.GameID)
	if err != nil {
		return wizard.Session{}, err
	}

	sess, ok := deps.Wizards.Get(input.WizardID)
	if !ok {
		sess = wizard.NewSession(deps.GenerateID(), deps.Now())
	}

	sess.SelectGame(g.ID)
	deps.Wizards.Put(sess)

	slog.Info("wizard_event", "event", "game_selected", "wizard_id", sess.ID, "game_id", g.ID)
	return sess, nil
}
