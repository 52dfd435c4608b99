package projections

import (
	"context"
	"errors"

	storageApplication "academy/internal/adapters/storage/application"
	domainAccount "academy/internal/domain/account"
	domainApplication "academy/internal/domain/application"
	domainNotification "academy/internal/domain/notification"
	domainWizard "academy/internal/domain/wizard"
)

// ErrNotAvailable is returned when a projection's backing state is missing,
// typically because the wizard has not reached the step being rendered.
var ErrNotAvailable = errors.New("view not available")

// WizardSessions defines the wizard state interface needed by read projections.
type WizardSessions interface {
	Get(id string) (domainWizard.Session, bool)
}

// ApplicationStore defines the application store interface for queries.
type ApplicationStore interface {
	GetByID(ctx context.Context, id string) (domainApplication.Application, error)
	List(ctx context.Context, filter storageApplication.ListFilter) ([]domainApplication.Application, error)
	Count(ctx context.Context, filter storageApplication.ListFilter) (int, error)
}

// AccountStore defines the account store interface for queries.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
}

// NotificationStore defines the notification store interface for queries.
type NotificationStore interface {
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domainNotification.Notification, error)
	CountUnread(ctx context.Context, accountID string) (int, error)
}
