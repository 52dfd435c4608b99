package application

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
	MaxBioLength  = 2000
)

// MinPasswordLength is the floor for applicant passwords.
const MinPasswordLength = 8

// Status constants for the application lifecycle. Transitions after
// submission happen only through moderator decisions.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ErrAlreadyDecided is returned when a decision is recorded twice.
var ErrAlreadyDecided = errors.New("application has already been decided")

// emailPattern is a deliberately basic local@domain.tld check; deliverability
// is confirmed by the confirmation email, not the regex.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Application is the persisted pro-player application record. Created exactly
// once per successful submission with IsApproved=false; decided by moderators.
type Application struct {
	ID           string
	AccountID    string
	GameID       string
	GamerTag     string
	Bio          string
	ProofURL     string
	CVURL        string // empty when no CV was provided
	IsApproved   bool
	Status       string
	SubmittedAt  time.Time
	ReviewedBy   string
	DecisionNote string
	DecidedAt    time.Time
}

// Validate checks if the Application has valid data.
// PRE: Application struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: A record never exists without a proof URL
func (a *Application) Validate() error {
	if a.AccountID == "" {
		return errors.New("application must reference an account")
	}
	if a.GameID == "" {
		return errors.New("application must reference a game")
	}
	if a.ProofURL == "" {
		return errors.New("application must have a proof document URL")
	}
	if a.Status != StatusPending && a.Status != StatusApproved && a.Status != StatusRejected {
		return errors.New("status must be 'pending', 'approved', or 'rejected'")
	}
	if a.SubmittedAt.IsZero() {
		return errors.New("submitted date must be set")
	}
	return nil
}

// IsPending returns true if the application awaits a decision.
// INVARIANT: Application fields are not mutated
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// Approve records a moderator approval.
// PRE: Application is pending
// POST: Status approved, IsApproved true, reviewer and time recorded
func (a *Application) Approve(reviewerID, note string, now time.Time) error {
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}
	a.Status = StatusApproved
	a.IsApproved = true
	a.ReviewedBy = reviewerID
	a.DecisionNote = note
	a.DecidedAt = now
	return nil
}

// Reject records a moderator rejection.
// PRE: Application is pending
// POST: Status rejected, reviewer and time recorded
func (a *Application) Reject(reviewerID, note string, now time.Time) error {
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}
	a.Status = StatusRejected
	a.IsApproved = false
	a.ReviewedBy = reviewerID
	a.DecisionNote = note
	a.DecidedAt = now
	return nil
}

// Form carries the applicant-entered fields before submission.
type Form struct {
	FirstName       string
	LastName        string
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	GamerTag        string
	Bio             string
}

// ValidationErrors maps field names to human-readable messages. All
// violations are accumulated so the form can show every problem at once.
type ValidationErrors map[string]string

// Error implements the error interface, joining messages in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, "; ")
}

// Validate checks every form field and accumulates all violations rather
// than stopping at the first.
// PRE: Form is populated from user input
// POST: Returns an empty map when the form is valid
func (f *Form) Validate() ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(f.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "email must look like name@example.com"
	}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "username is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	} else if len(f.Password) < MinPasswordLength {
		errs["password"] = "password must be at least 8 characters"
	}
	if f.PasswordConfirm != f.Password {
		errs["password_confirm"] = "passwords do not match"
	}
	if strings.TrimSpace(f.GamerTag) == "" {
		errs["gamer_tag"] = "gamer tag is required"
	}
	if strings.TrimSpace(f.Bio) == "" {
		errs["bio"] = "bio is required"
	} else if len(f.Bio) > MaxBioLength {
		errs["bio"] = "bio cannot exceed 2000 characters"
	}
	if len(f.FirstName) > MaxNameLength {
		errs["first_name"] = "first name cannot exceed 100 characters"
	}
	if len(f.LastName) > MaxNameLength {
		errs["last_name"] = "last name cannot exceed 100 characters"
	}

	return errs
}
