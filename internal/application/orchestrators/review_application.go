package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"academy/internal/domain/account"
	"academy/internal/domain/application"
	"academy/internal/domain/game"
	"academy/internal/domain/notification"
	"academy/internal/domain/outbox"
)

// Decision constants accepted by the review orchestrator.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ApplicationStoreForReview defines the store interface needed by ReviewApplication.
type ApplicationStoreForReview interface {
	GetByID(ctx context.Context, id string) (application.Application, error)
	Save(ctx context.Context, a application.Application) error
}

// AccountStoreForReview defines the store interface needed by ReviewApplication.
type AccountStoreForReview interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ReviewApplicationInput carries input for the orchestrator.
type ReviewApplicationInput struct {
	ApplicationID string
	ReviewerID    string
	Decision      string // approve or reject
	Note          string
}

// ReviewApplicationDeps holds dependencies for ReviewApplication.
type ReviewApplicationDeps struct {
	Applications  ApplicationStoreForReview
	Accounts      AccountStoreForReview
	Notifications NotificationStoreForSubmit
	Outbox        OutboxStoreForSubmit
	GenerateID    func() string
	Now           func() time.Time
}

var ErrUnknownDecision = errors.New("decision must be 'approve' or 'reject'")

// ExecuteReviewApplication records a moderator decision on a pending
// application. Approval activates the applicant's account; either outcome
// queues a decision email and writes an in-app notification (best effort).
// PRE: Application is pending; reviewer is a moderator or admin (enforced by handler)
// POST: Application decided; account activated on approval
func ExecuteReviewApplication(ctx context.Context, input ReviewApplicationInput, deps ReviewApplicationDeps) (application.Application, error) {
	if input.ApplicationID == "" {
		return application.Application{}, errors.New("application ID is required")
	}
	if input.ReviewerID == "" {
		return application.Application{}, errors.New("reviewer ID is required")
	}

	app, err := deps.Applications.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return application.Application{}, err
	}

	now := deps.Now()
	switch input.Decision {
	case DecisionApprove:
		err = app.Approve(input.ReviewerID, input.Note, now)
	case DecisionReject:
		err = app.Reject(input.ReviewerID, input.Note, now)
	default:
		return application.Application{}, ErrUnknownDecision
	}
	if err != nil {
		return application.Application{}, err
	}

	if err := deps.Applications.Save(ctx, app); err != nil {
		return application.Application{}, fmt.Errorf("save application: %w", err)
	}

	acct, err := deps.Accounts.GetByID(ctx, app.AccountID)
	if err != nil {
		return application.Application{}, fmt.Errorf("load applicant account: %w", err)
	}

	if app.IsApproved {
		if err := acct.Activate(); err != nil && !errors.Is(err, account.ErrAlreadyActive) {
			return application.Application{}, err
		}
		if err := deps.Accounts.Save(ctx, acct); err != nil {
			return application.Application{}, fmt.Errorf("activate account: %w", err)
		}
	}

	queueDecisionNotice(ctx, deps, app, acct, now)

	slog.Info("review_event", "event", "application_decided",
		"application_id", app.ID, "decision", input.Decision, "reviewer_id", input.ReviewerID)
	return app, nil
}

// queueDecisionNotice queues the decision email and in-app notification.
// Failures are logged and swallowed; the decision itself already stands.
func queueDecisionNotice(ctx context.Context, deps ReviewApplicationDeps, app application.Application, acct account.Account, now time.Time) {
	gameName := app.GameID
	if g, err := game.GetByID(app.GameID); err == nil {
		gameName = g.Name
	}

	kind := notification.KindApplicationApproved
	title := "Application approved"
	body := fmt.Sprintf("Welcome to the %s pro program! You can now sign in and start training.", gameName)
	if !app.IsApproved {
		kind = notification.KindApplicationRejected
		title = "Application not approved"
		body = fmt.Sprintf("Your application for the %s pro program was not approved this time.", gameName)
	}

	payload, err := json.Marshal(confirmationEmailPayload{
		To:      acct.Email,
		Subject: title,
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", acct.FirstName, body),
	})
	if err == nil {
		entry := outbox.Entry{
			ID:          deps.GenerateID(),
			ActionType:  outbox.ActionTypeEmail,
			Payload:     string(payload),
			Status:      outbox.StatusPending,
			MaxAttempts: 5,
			CreatedAt:   now,
		}
		if err := deps.Outbox.Save(ctx, entry); err != nil {
			slog.Warn("review_event", "event", "decision_email_queue_failed", "application_id", app.ID, "error", err.Error())
		}
	}

	n := notification.Notification{
		ID:        deps.GenerateID(),
		AccountID: acct.ID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: now,
	}
	if err := deps.Notifications.Save(ctx, n); err != nil {
		slog.Warn("review_event", "event", "decision_notification_failed", "application_id", app.ID, "error", err.Error())
	}
}
