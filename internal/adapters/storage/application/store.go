package application

import (
	"context"

	domain "academy/internal/domain/application"
)

// Store persists Application state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Application, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Application, error)
	Save(ctx context.Context, value domain.Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Application, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
	GameID string
}
