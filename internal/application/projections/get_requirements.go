package projections

import (
	"context"

	"academy/internal/domain/game"
	"academy/internal/domain/requirement"
)

// GetRequirementsQuery carries input for the requirements projection.
type GetRequirementsQuery struct {
	WizardID string
}

// GetRequirementsDeps holds dependencies for the requirements projection.
type GetRequirementsDeps struct {
	Wizards WizardSessions
}

// GroupView is one requirement group with the applicant's acceptance state.
type GroupView struct {
	requirement.Group
	Accepted bool
}

// DocumentView is one legal document with the applicant's read state.
type DocumentView struct {
	requirement.LegalDocument
	Read bool
}

// RequirementsResult carries everything the requirements step renders.
type RequirementsResult struct {
	Game      game.Game
	Groups    []GroupView
	Documents []DocumentView
	State     string // incomplete or ready_to_proceed
	Progress  int    // whole percent
	Ready     bool
}

// GetRequirements assembles the requirements step view for a wizard session:
// the selected game's groups (critical first), the legal document list, the
// readiness state and the progress percentage.
// PRE: Wizard session exists and has a game selected
// POST: Result reflects the session's current acceptance state
func GetRequirements(ctx context.Context, query GetRequirementsQuery, deps GetRequirementsDeps) (RequirementsResult, error) {
	sess, ok := deps.Wizards.Get(query.WizardID)
	if !ok || !sess.CanEnterRequirements() {
		return RequirementsResult{}, ErrNotAvailable
	}

	g, err := game.GetByID(sess.GameID)
	if err != nil {
		return RequirementsResult{}, err
	}

	groups := requirement.GroupsFor(g)
	docs := requirement.Documents()
	criticalIDs := requirement.CriticalGroupIDs(groups)
	requiredIDs := requirement.RequiredDocumentIDs(docs)

	result := RequirementsResult{
		Game:     g,
		State:    sess.State(criticalIDs, requiredIDs),
		Progress: sess.Progress(len(groups), len(docs)),
		Ready:    sess.Ready(criticalIDs, requiredIDs),
	}
	for _, grp := range groups {
		result.Groups = append(result.Groups, GroupView{Group: grp, Accepted: sess.AcceptedGroups[grp.ID]})
	}
	for _, doc := range docs {
		result.Documents = append(result.Documents, DocumentView{LegalDocument: doc, Read: sess.ReadDocuments[doc.ID]})
	}
	return result, nil
}
