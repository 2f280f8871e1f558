package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/monstermash2008/time-range/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Upsert inserts or replaces the range stored for wh.ChatID.
// created_at is kept from the first insert.
func (r *SQLiteRepo) Upsert(ctx context.Context, wh *domain.WorkHours) error {
	if wh == nil {
		return errors.New("nil work hours")
	}
	for _, t := range []*domain.Time{wh.Range.From, wh.Range.To} {
		if t != nil && !t.Valid() {
			return fmt.Errorf("%w: %d:%d", domain.ErrOutOfRange, t.Hour, t.Minute)
		}
	}

	now := time.Now().UTC()
	if wh.CreatedAt.IsZero() {
		wh.CreatedAt = now
	}
	wh.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO work_hours (chat_id, from_m, to_m, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			from_m     = excluded.from_m,
			to_m       = excluded.to_m,
			updated_at = excluded.updated_at`,
		wh.ChatID,
		toNullMinutes(wh.Range.From), toNullMinutes(wh.Range.To),
		wh.CreatedAt.Unix(), wh.UpdatedAt.Unix(),
	)
	return err
}

// Get returns the hours stored for chatID, or ErrNotFound.
func (r *SQLiteRepo) Get(ctx context.Context, chatID int64) (*domain.WorkHours, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, from_m, to_m, created_at, updated_at
		FROM work_hours
		WHERE chat_id = ?`,
		chatID,
	)

	var (
		id        int64
		fromNS    sql.NullInt64
		toNS      sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&id, &fromNS, &toNS, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from, err := fromNullMinutes(fromNS)
	if err != nil {
		return nil, err
	}
	to, err := fromNullMinutes(toNS)
	if err != nil {
		return nil, err
	}
	return &domain.WorkHours{
		ChatID:    id,
		Range:     domain.Range{From: from, To: to},
		CreatedAt: time.Unix(createdAt, 0).UTC(),
		UpdatedAt: time.Unix(updatedAt, 0).UTC(),
	}, nil
}

// Delete removes the row for chatID. Deleting a missing row is not an error.
func (r *SQLiteRepo) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_hours WHERE chat_id = ?`, chatID)
	return err
}
