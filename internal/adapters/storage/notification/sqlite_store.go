package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"academy/internal/adapters/storage"
	domain "academy/internal/domain/notification"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NotificationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Notification by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, account_id, kind, title, body, read, created_at FROM notification WHERE id = ?", id)

	entity, err := scanNotification(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notification{}, fmt.Errorf("notification not found: %w", err)
	}
	return entity, err
}

// Save persists a Notification to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notification) error {
	read := 0
	if entity.Read {
		read = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notification (id, account_id, kind, title, body, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   kind=excluded.kind, title=excluded.title, body=excluded.body, read=excluded.read`,
		entity.ID, entity.AccountID, entity.Kind, entity.Title, entity.Body, read,
		entity.CreatedAt.Format(dateLayout))
	return err
}

// ListByAccount retrieves notifications for an account, newest first.
// PRE: accountID is non-empty
// POST: Returns up to limit notifications
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, account_id, kind, title, body, read, created_at FROM notification WHERE account_id = ? ORDER BY created_at DESC LIMIT ?",
		accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notification
	for rows.Next() {
		entity, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountUnread returns the number of unread notifications for an account.
// PRE: accountID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountUnread(ctx context.Context, accountID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notification WHERE account_id = ? AND read = 0", accountID).Scan(&count)
	return count, err
}

// Delete removes a Notification from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notification WHERE id = ?", id)
	return err
}

// scanNotification extracts a Notification from a row scanner function.
func scanNotification(scan func(dest ...interface{}) error) (domain.Notification, error) {
	var entity domain.Notification
	var createdAt string
	var read int
	err := scan(&entity.ID, &entity.AccountID, &entity.Kind, &entity.Title, &entity.Body, &read, &createdAt)
	if err != nil {
		return domain.Notification{}, err
	}
	entity.Read = read != 0
	entity.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	return entity, nil
}
