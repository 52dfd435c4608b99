package outbox

import (
	"context"

	domain "academy/internal/domain/outbox"
)

// Store persists outbox entries.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)
	ListFailed(ctx context.Context, limit int) ([]domain.Entry, error)
	Delete(ctx context.Context, id string) error
}
