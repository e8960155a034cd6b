// Package store keeps catch-ups in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS catchups (
	id TEXT PRIMARY KEY,
	namespace TEXT NOT NULL,
	count INTEGER NOT NULL,
	start_at INTEGER,
	end_at INTEGER NOT NULL,
	posts TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_catchups_namespace_end_at ON catchups(namespace, end_at);
`

// Open opens (creating if needed) the database at path. WAL mode and a busy
// timeout let the task queue share the file with the store.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, nil
}

// SQLiteStore implements app.SessionRepository. Posts are stored as one
// JSON document per catch-up.
type SQLiteStore struct {
	db *sql.DB
}

// New prepares the schema and returns a store.
func New(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating catch-up schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// handleError hides database details behind domain errors.
func handleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	default:
		log.Error().Err(err).Msg("catch-up store")
		return err
	}
}

func (s *SQLiteStore) Insert(ctx context.Context, namespace string, session domain.Session) error {
	posts, err := json.Marshal(session.Posts)
	if err != nil {
		return fmt.Errorf("encoding posts of %s: %w", session.ID, err)
	}

	var startAt sql.NullInt64
	if session.StartAt != nil {
		startAt = sql.NullInt64{Int64: session.StartAt.UnixNano(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO catchups (id, namespace, count, start_at, end_at, posts)
	VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		namespace,
		session.Count,
		startAt,
		session.EndAt.UnixNano(),
		string(posts),
	)
	if err != nil {
		return fmt.Errorf("inserting catch-up %s: %w", session.ID, handleError(err))
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	var (
		count   int
		startAt sql.NullInt64
		endAt   int64
		posts   string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT count, start_at, end_at, posts FROM catchups WHERE id = ?", id,
	).Scan(&count, &startAt, &endAt, &posts)
	if err != nil {
		return domain.Session{}, fmt.Errorf("catch-up %s: %w", id, handleError(err))
	}

	session := domain.Session{
		ID:      id,
		Count:   count,
		StartAt: fromNull(startAt),
		EndAt:   time.Unix(0, endAt).UTC(),
	}
	if err := json.Unmarshal([]byte(posts), &session.Posts); err != nil {
		return domain.Session{}, fmt.Errorf("decoding posts of %s: %w", id, err)
	}
	return session, nil
}

func (s *SQLiteStore) Summaries(ctx context.Context, namespace string) ([]domain.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, count, start_at, end_at FROM catchups
	WHERE namespace = ?
	ORDER BY end_at DESC`, namespace)
	if err != nil {
		return nil, fmt.Errorf("listing catch-ups: %w", handleError(err))
	}
	defer rows.Close()

	var out []domain.SessionSummary
	for rows.Next() {
		var (
			sum     domain.SessionSummary
			startAt sql.NullInt64
			endAt   int64
		)
		if err := rows.Scan(&sum.ID, &sum.Count, &startAt, &endAt); err != nil {
			return nil, fmt.Errorf("scanning catch-up: %w", err)
		}
		sum.StartAt = fromNull(startAt)
		sum.EndAt = time.Unix(0, endAt).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM catchups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting catch-up %s: %w", id, handleError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting catch-up %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("catch-up %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Trim deletes every catch-up of namespace except the keep most recent ones.
func (s *SQLiteStore) Trim(ctx context.Context, namespace string, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	DELETE FROM catchups
	WHERE namespace = ? AND id NOT IN (
		SELECT id FROM catchups WHERE namespace = ?
		ORDER BY end_at DESC, id DESC
		LIMIT ?
	)`, namespace, namespace, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming catch-ups: %w", handleError(err))
	}
	return res.RowsAffected()
}

func fromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64).UTC()
	return &t
}
