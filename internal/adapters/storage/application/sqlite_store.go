package application

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"academy/internal/adapters/storage"
	domain "academy/internal/domain/application"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

const applicationColumns = "id, account_id, game_id, gamer_tag, bio, proof_url, cv_url, is_approved, status, submitted_at, reviewed_by, decision_note, decided_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ApplicationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Application by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+applicationColumns+" FROM application WHERE id = ?", id)

	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("application not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the most recent Application for an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM application WHERE account_id = ? ORDER BY submitted_at DESC LIMIT 1",
		accountID)

	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("application not found: %w", err)
	}
	return entity, err
}

// Save persists an Application to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Application) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "account_id", "game_id", "gamer_tag", "bio", "proof_url", "cv_url", "is_approved", "status", "submitted_at", "reviewed_by", "decision_note", "decided_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"gamer_tag=excluded.gamer_tag",
		"bio=excluded.bio",
		"proof_url=excluded.proof_url",
		"cv_url=excluded.cv_url",
		"is_approved=excluded.is_approved",
		"status=excluded.status",
		"reviewed_by=excluded.reviewed_by",
		"decision_note=excluded.decision_note",
		"decided_at=excluded.decided_at",
	}

	query := fmt.Sprintf(
		"INSERT INTO application (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var cvURL interface{}
	if entity.CVURL != "" {
		cvURL = entity.CVURL
	}
	var reviewedBy interface{}
	if entity.ReviewedBy != "" {
		reviewedBy = entity.ReviewedBy
	}
	var decisionNote interface{}
	if entity.DecisionNote != "" {
		decisionNote = entity.DecisionNote
	}
	var decidedAt interface{}
	if !entity.DecidedAt.IsZero() {
		decidedAt = entity.DecidedAt.Format(dateLayout)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.GameID,
		entity.GamerTag,
		entity.Bio,
		entity.ProofURL,
		cvURL,
		boolToInt(entity.IsApproved),
		entity.Status,
		entity.SubmittedAt.Format(dateLayout),
		reviewedBy,
		decisionNote,
		decidedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Application from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM application WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.GameID != "" {
		where += " AND game_id = ?"
		args = append(args, filter.GameID)
	}
	return where, args
}

// Count returns the total number of applications matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM application"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Applications based on the filter, oldest submissions first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Application, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + applicationColumns + " FROM application" + where + " ORDER BY submitted_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Application
	for rows.Next() {
		entity, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanApplication extracts an Application from a row scanner function.
func scanApplication(scan func(dest ...interface{}) error) (domain.Application, error) {
	var entity domain.Application
	var submittedAt string
	var cvURL, reviewedBy, decisionNote, decidedAt sql.NullString
	var isApproved int
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.GameID,
		&entity.GamerTag,
		&entity.Bio,
		&entity.ProofURL,
		&cvURL,
		&isApproved,
		&entity.Status,
		&submittedAt,
		&reviewedBy,
		&decisionNote,
		&decidedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	entity.IsApproved = isApproved != 0
	entity.CVURL = cvURL.String
	entity.ReviewedBy = reviewedBy.String
	entity.DecisionNote = decisionNote.String
	entity.SubmittedAt, _ = time.Parse(dateLayout, submittedAt)
	if decidedAt.Valid && decidedAt.String != "" {
		entity.DecidedAt, _ = time.Parse(dateLayout, decidedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
