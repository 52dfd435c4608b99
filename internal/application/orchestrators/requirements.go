package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"academy/internal/domain/game"
	"academy/internal/domain/requirement"
	"academy/internal/domain/wizard"
)

// ErrNoWizardSession is returned when an operation references a wizard
// session that does not exist or has expired.
var ErrNoWizardSession = errors.New("no wizard session")

// ToggleRequirementInput carries input for the toggle orchestrators.
type ToggleRequirementInput struct {
	WizardID string
	TargetID string // group ID or document ID depending on the operation
}

// ToggleRequirementDeps holds dependencies for the requirements step.
type ToggleRequirementDeps struct {
	Wizards WizardSessions
}

// ExecuteToggleGroup flips acceptance of one requirement group and returns
// the updated session. Toggling off a previously accepted critical group
// revokes readiness.
// PRE: Wizard session exists at the requirements step; TargetID names a group
// POST: Group acceptance flipped and session stored
func ExecuteToggleGroup(ctx context.Context, input ToggleRequirementInput, deps ToggleRequirementDeps) (wizard.Session, error) {
	sess, ok := deps.Wizards.Get(input.WizardID)
	if !ok {
		return wizard.Session{}, ErrNoWizardSession
	}

	g, err := game.GetByID(sess.GameID)
	if err != nil {
		return wizard.Session{}, err
	}
	groups := requirement.GroupsFor(g)
	if !requirement.ValidGroupID(groups, input.TargetID) {
		return wizard.Session{}, requirement.ErrUnknownGroup
	}

	if err := sess.ToggleGroup(input.TargetID); err != nil {
		return wizard.Session{}, err
	}
	deps.Wizards.Put(sess)

	slog.Info("wizard_event", "event", "group_toggled", "wizard_id", sess.ID, "group_id", input.TargetID, "accepted", sess.AcceptedGroups[input.TargetID])
	return sess, nil
}

// ExecuteToggleDocument flips the read state of one legal document and
// returns the updated session.
// PRE: Wizard session exists at the requirements step; TargetID names a document
// POST: Document read state flipped and session stored
func ExecuteToggleDocument(ctx context.Context, input ToggleRequirementInput, deps ToggleRequirementDeps) (wizard.Session, error) {
	sess, ok := deps.Wizards.Get(input.WizardID)
	if !ok {
		return wizard.Session{}, ErrNoWizardSession
	}

	if _, err := requirement.GetDocument(input.TargetID); err != nil {
		return wizard.Session{}, err
	}

	if err := sess.ToggleDocument(input.TargetID); err != nil {
		return wizard.Session{}, err
	}
	deps.Wizards.Put(sess)

	slog.Info("wizard_event", "event", "document_toggled", "wizard_id", sess.ID, "document_id", input.TargetID, "read", sess.ReadDocuments[input.TargetID])
	return sess, nil
}

// ProceedInput carries input for the proceed orchestrator.
type ProceedInput struct {
	WizardID string
}

// ExecuteProceed advances the wizard from the requirements step to the
// application form once every critical group is accepted and every required
// document has been read.
// PRE: Wizard session exists and is ready to proceed
// POST: Session step is application
func ExecuteProceed(ctx context.Context, input ProceedInput, deps ToggleRequirementDeps) (wizard.Session, error) {
	sess, ok := deps.Wizards.Get(input.WizardID)
	if !ok {
		return wizard.Session{}, ErrNoWizardSession
	}

	g, err := game.GetByID(sess.GameID)
	if err != nil {
		return wizard.Session{}, err
	}
	groups := requirement.GroupsFor(g)
	docs := requirement.Documents()

	if err := sess.Proceed(requirement.CriticalGroupIDs(groups), requirement.RequiredDocumentIDs(docs)); err != nil {
		return wizard.Session{}, err
	}
	deps.Wizards.Put(sess)

	slog.Info("wizard_event", "event", "proceeded_to_application", "wizard_id", sess.ID, "game_id", sess.GameID)
	return sess, nil
}
