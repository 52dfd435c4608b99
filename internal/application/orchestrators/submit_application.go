package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"academy/internal/domain/account"
	"academy/internal/domain/application"
	"academy/internal/domain/attachment"
	"academy/internal/domain/game"
	"academy/internal/domain/notification"
	"academy/internal/domain/outbox"
)

// AccountStoreForSubmit defines the store interface needed by SubmitApplication.
type AccountStoreForSubmit interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ApplicationStoreForSubmit defines the store interface needed by SubmitApplication.
type ApplicationStoreForSubmit interface {
	Save(ctx context.Context, a application.Application) error
}

// FileStore persists uploaded documents and returns the serving URL.
type FileStore interface {
	Save(ctx context.Context, relPath string, src io.Reader) (string, error)
}

// OutboxStoreForSubmit defines the store interface for queueing emails.
type OutboxStoreForSubmit interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// NotificationStoreForSubmit defines the store interface for in-app notifications.
type NotificationStoreForSubmit interface {
	Save(ctx context.Context, n notification.Notification) error
}

// SubmitApplicationInput carries the full application form plus uploads.
type SubmitApplicationInput struct {
	WizardID string
	Form     application.Form
	Proof    *attachment.Upload // nil when the applicant attached nothing
	CV       *attachment.Upload // nil when no CV was provided
}

// SubmitApplicationDeps holds dependencies for SubmitApplication.
type SubmitApplicationDeps struct {
	Wizards       WizardSessions
	AccountStore  AccountStoreForSubmit
	Applications  ApplicationStoreForSubmit
	Files         FileStore
	Outbox        OutboxStoreForSubmit
	Notifications NotificationStoreForSubmit
	GenerateID    func() string
	Now           func() time.Time
}

// SubmitApplicationResult carries the identifiers of the created records.
type SubmitApplicationResult struct {
	AccountID     string
	ApplicationID string
}

// Submission errors beyond form validation.
var (
	ErrWizardNotAtApplication = errors.New("wizard has not reached the application step")
	ErrProofUploadFailed      = errors.New("could not store the proof document")
)

// confirmationEmailPayload is the JSON payload queued to the outbox for the
// submission confirmation email.
type confirmationEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// ExecuteSubmitApplication runs the submission sequence:
//
//	validate form and uploads (accumulating every violation)
//	create the applicant account in pending review
//	store the proof document (failure aborts: no record without proof)
//	store the CV if provided (failure is tolerated)
//	create the application record with IsApproved=false
//	queue the confirmation email and in-app notification (best effort)
//	discard the wizard session
//
// PRE: Wizard session is at the application step
// POST: On success an account and a pending application exist; the caller
// must end any authenticated session and route to the pending view
func ExecuteSubmitApplication(ctx context.Context, input SubmitApplicationInput, deps SubmitApplicationDeps) (SubmitApplicationResult, error) {
	sess, ok := deps.Wizards.Get(input.WizardID)
	if !ok {
		return SubmitApplicationResult{}, ErrNoWizardSession
	}
	if !sess.CanEnterApplication() {
		return SubmitApplicationResult{}, ErrWizardNotAtApplication
	}
	g, err := game.GetByID(sess.GameID)
	if err != nil {
		return SubmitApplicationResult{}, err
	}

	// Accumulate every violation — form fields and uploads — so the
	// applicant sees all problems at once.
	errs := input.Form.Validate()
	if input.Proof == nil {
		errs["proof"] = attachment.ErrMissing.Error()
	} else if err := input.Proof.Validate(); err != nil {
		errs["proof"] = err.Error()
	}
	if input.CV != nil {
		if err := input.CV.Validate(); err != nil {
			errs["cv"] = err.Error()
		}
	}
	if len(errs) == 0 {
		if _, err := deps.AccountStore.GetByEmail(ctx, input.Form.Email); err == nil {
			errs["email"] = "an account with this email already exists"
		}
		if _, err := deps.AccountStore.GetByUsername(ctx, input.Form.Username); err == nil {
			errs["username"] = "this username is taken"
		}
	}
	if len(errs) > 0 {
		return SubmitApplicationResult{}, errs
	}

	now := deps.Now()

	// Step 1: create the applicant identity.
	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Form.Email,
		Username:  input.Form.Username,
		FirstName: input.Form.FirstName,
		LastName:  input.Form.LastName,
		Role:      account.RolePro,
		Status:    account.StatusPendingReview,
		CreatedAt: now,
	}
	if err := acct.Validate(); err != nil {
		return SubmitApplicationResult{}, err
	}
	if err := acct.SetPassword(input.Form.Password); err != nil {
		return SubmitApplicationResult{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		// The pre-submit uniqueness check races with concurrent
		// submissions; the schema's UNIQUE constraints catch the loser.
		if verrs := duplicateIdentityErrors(err); verrs != nil {
			return SubmitApplicationResult{}, verrs
		}
		return SubmitApplicationResult{}, fmt.Errorf("save account: %w", err)
	}

	applicationID := deps.GenerateID()

	// Step 2: store the proof document. This failure is fatal — an
	// application record must never exist without its proof.
	proofURL, err := deps.Files.Save(ctx, documentPath(applicationID, attachment.KindProof), input.Proof.Data)
	if err != nil {
		slog.Error("submit_event", "event", "proof_upload_failed", "application_id", applicationID, "error", err.Error())
		return SubmitApplicationResult{}, fmt.Errorf("%w: %v", ErrProofUploadFailed, err)
	}

	// Step 3: store the CV if one was provided. Failure here does not
	// abort the submission; the record simply carries no CV.
	cvURL := ""
	if input.CV != nil {
		cvURL, err = deps.Files.Save(ctx, documentPath(applicationID, attachment.KindCV), input.CV.Data)
		if err != nil {
			slog.Warn("submit_event", "event", "cv_upload_failed", "application_id", applicationID, "error", err.Error())
			cvURL = ""
		}
	}

	// Step 4: create the application record, always unapproved.
	app := application.Application{
		ID:          applicationID,
		AccountID:   acct.ID,
		GameID:      g.ID,
		GamerTag:    input.Form.GamerTag,
		Bio:         input.Form.Bio,
		ProofURL:    proofURL,
		CVURL:       cvURL,
		IsApproved:  false,
		Status:      application.StatusPending,
		SubmittedAt: now,
	}
	if err := app.Validate(); err != nil {
		return SubmitApplicationResult{}, err
	}
	if err := deps.Applications.Save(ctx, app); err != nil {
		return SubmitApplicationResult{}, fmt.Errorf("save application: %w", err)
	}

	// Step 5: best-effort confirmation — outbox email and in-app
	// notification. Neither failure reaches the applicant.
	queueSubmissionConfirmation(ctx, deps, acct, g, applicationID, now)

	// Step 6: the wizard session is done.
	deps.Wizards.Delete(sess.ID)

	slog.Info("submit_event", "event", "application_submitted",
		"application_id", applicationID, "account_id", acct.ID, "game_id", g.ID, "has_cv", cvURL != "")

	return SubmitApplicationResult{AccountID: acct.ID, ApplicationID: applicationID}, nil
}

// queueSubmissionConfirmation enqueues the confirmation email and writes the
// in-app notification. Failures are logged and swallowed.
func queueSubmissionConfirmation(ctx context.Context, deps SubmitApplicationDeps, acct account.Account, g game.Game, applicationID string, now time.Time) {
	payload, err := json.Marshal(confirmationEmailPayload{
		To:      acct.Email,
		Subject: "Your pro player application was received",
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your application for the <strong>%s</strong> pro program has been received and is pending review. We will be in touch once the moderation team has made a decision.</p>",
			acct.FirstName, g.Name),
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
			slog.Warn("submit_event", "event", "confirmation_queue_failed", "application_id", applicationID, "error", err.Error())
		}
	}

	n := notification.Notification{
		ID:        deps.GenerateID(),
		AccountID: acct.ID,
		Kind:      notification.KindApplicationSubmitted,
		Title:     "Application received",
		Body:      fmt.Sprintf("Your pro player application for %s is pending review.", g.Name),
		CreatedAt: now,
	}
	if err := deps.Notifications.Save(ctx, n); err != nil {
		slog.Warn("submit_event", "event", "notification_save_failed", "application_id", applicationID, "error", err.Error())
	}
}

// duplicateIdentityErrors translates a unique-constraint failure on the
// account table into the same field-level messages the pre-submit check
// produces. Returns nil for any other error.
func duplicateIdentityErrors(err error) application.ValidationErrors {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	errs := make(application.ValidationErrors)
	if strings.Contains(msg, "account.email") {
		errs["email"] = "an account with this email already exists"
	}
	if strings.Contains(msg, "account.username") {
		errs["username"] = "this username is taken"
	}
	if len(errs) == 0 {
		errs["email"] = "an account with this email already exists"
	}
	return errs
}

// documentPath builds the storage path for an application document.
func documentPath(applicationID, kind string) string {
	return "applications/" + applicationID + "-" + kind
}
