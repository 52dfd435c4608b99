package notification

import (
	"errors"
	"time"
)

// Kind constants for in-app notifications.
const (
	KindApplicationSubmitted = "application_submitted"
	KindApplicationApproved  = "application_approved"
	KindApplicationRejected  = "application_rejected"
)

// Domain errors
var (
	ErrEmptyAccount = errors.New("notification must reference an account")
	ErrEmptyTitle   = errors.New("notification title cannot be empty")
	ErrInvalidKind  = errors.New("unknown notification kind")
)

var validKinds = map[string]bool{
	KindApplicationSubmitted: true,
	KindApplicationApproved:  true,
	KindApplicationRejected:  true,
}

// Notification is an in-app message shown on a user's dashboard.
type Notification struct {
	ID        string
	AccountID string
	Kind      string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// Validate checks if the Notification has valid data.
// PRE: Notification struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (n *Notification) Validate() error {
	if n.AccountID == "" {
		return ErrEmptyAccount
	}
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if !validKinds[n.Kind] {
		return ErrInvalidKind
	}
	if n.CreatedAt.IsZero() {
		return errors.New("created date must be set")
	}
	return nil
}

// MarkRead flags the notification as read.
// PRE: Notification exists
// POST: Read is true
func (n *Notification) MarkRead() {
	n.Read = true
}
