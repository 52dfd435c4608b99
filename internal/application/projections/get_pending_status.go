package projections

import (
	"context"

	"academy/internal/domain/application"
	"academy/internal/domain/game"
)

// Stage status constants for the pending status view.
const (
	StageComplete = "complete"
	StageCurrent  = "current"
	StageUpcoming = "upcoming"
)

// Stage is one step of the review pipeline shown to the applicant.
type Stage struct {
	ID          string
	Title       string
	Description string
	Timeline    string // fixed expectation text, not a live estimate
	Status      string // complete, current, upcoming
}

// reviewStages is the fixed pipeline every application moves through.
var reviewStages = []Stage{
	{
		ID:          "submitted",
		Title:       "Application Submitted",
		Description: "Your application and documents were received",
		Timeline:    "Done",
	},
	{
		ID:          "technical-assessment",
		Title:       "Technical Assessment",
		Description: "Rank, match history and proof document verification",
		Timeline:    "1-2 business days",
	},
	{
		ID:          "moderator-review",
		Title:       "Moderator Review",
		Description: "A moderator evaluates your competitive profile",
		Timeline:    "3-5 business days",
	},
	{
		ID:          "final-decision",
		Title:       "Final Decision",
		Description: "You will be notified by email either way",
		Timeline:    "Within 7 business days of submission",
	},
}

// GetPendingStatusQuery carries input for the pending status projection.
type GetPendingStatusQuery struct {
	ApplicationID string
}

// GetPendingStatusDeps holds dependencies for the pending status projection.
type GetPendingStatusDeps struct {
	Applications ApplicationStore
	Accounts     AccountStore
}

// PendingStatusResult carries the pending view: the applicant's summary and
// the review pipeline with per-stage states.
type PendingStatusResult struct {
	ApplicationID string
	GamerTag      string
	GameName      string
	Status        string // pending, approved, rejected
	IsApproved    bool
	SubmittedAt   string // RFC 3339 date portion
	DecisionNote  string
	Stages        []Stage
}

// GetPendingStatus assembles the status view shown after submission. While
// the application is pending the first stage is complete and the assessment
// is current; a decision completes every stage.
// PRE: ApplicationID names an existing application
// POST: Result carries all four stages in pipeline order
func GetPendingStatus(ctx context.Context, query GetPendingStatusQuery, deps GetPendingStatusDeps) (PendingStatusResult, error) {
	app, err := deps.Applications.GetByID(ctx, query.ApplicationID)
	if err != nil {
		return PendingStatusResult{}, err
	}

	gameName := app.GameID
	if g, gErr := game.GetByID(app.GameID); gErr == nil {
		gameName = g.Name
	}

	result := PendingStatusResult{
		ApplicationID: app.ID,
		GamerTag:      app.GamerTag,
		GameName:      gameName,
		Status:        app.Status,
		IsApproved:    app.IsApproved,
		SubmittedAt:   app.SubmittedAt.Format("2006-01-02"),
		DecisionNote:  app.DecisionNote,
		Stages:        stagesFor(app),
	}
	return result, nil
}

// stagesFor maps an application's status onto the fixed pipeline.
func stagesFor(app application.Application) []Stage {
	// Index of the stage currently in progress; past the end when decided.
	current := 1
	if !app.IsPending() {
		current = len(reviewStages)
	}

	out := make([]Stage, len(reviewStages))
	for i, s := range reviewStages {
		switch {
		case i < current:
			s.Status = StageComplete
		case i == current:
			s.Status = StageCurrent
		default:
			s.Status = StageUpcoming
		}
		out[i] = s
	}
	return out
}
