package notification

import (
	"context"

	domain "academy/internal/domain/notification"
)

// Store persists Notification state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notification, error)
	Save(ctx context.Context, value domain.Notification) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, accountID string) (int, error)
	Delete(ctx context.Context, id string) error
}
