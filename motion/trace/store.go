package trace

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lguimbarda/min-motion/motion/pointer"
)

// Store keeps traces in an SQL database, one named session per trace. It
// uses only portable SQL with "?" placeholders; the tests and examples run
// it on SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps db. Call Migrate before first use.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the trace table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS trace_records (
			session    TEXT    NOT NULL,
			seq        INTEGER NOT NULL,
			offset_ns  INTEGER NOT NULL,
			kind       TEXT    NOT NULL,
			pointer_id INTEGER NOT NULL,
			x          REAL    NOT NULL,
			y          REAL    NOT NULL,
			PRIMARY KEY (session, seq)
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate trace store: %w", err)
	}
	return nil
}

// Save replaces session with records.
func (s *Store) Save(ctx context.Context, session string, records []Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save session %q: %w", session, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM trace_records WHERE session = ?`, session); err != nil {
		return fmt.Errorf("save session %q: %w", session, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trace_records (session, seq, offset_ns, kind, pointer_id, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save session %q: %w", session, err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx, session, i, int64(r.Offset), string(r.Kind), r.PointerID, r.X, r.Y); err != nil {
			return fmt.Errorf("save session %q record %d: %w", session, i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save session %q: %w", session, err)
	}
	return nil
}

// Append adds r to the end of session.
func (s *Store) Append(ctx context.Context, session string, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trace_records (session, seq, offset_ns, kind, pointer_id, x, y)
		SELECT ?, COALESCE(MAX(seq) + 1, 0), ?, ?, ?, ?, ?
		FROM trace_records WHERE session = ?
	`, session, int64(r.Offset), string(r.Kind), r.PointerID, r.X, r.Y, session)
	if err != nil {
		return fmt.Errorf("append to session %q: %w", session, err)
	}
	return nil
}

// Load returns the records of session in the order they were stored.
func (s *Store) Load(ctx context.Context, session string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT offset_ns, kind, pointer_id, x, y
		FROM trace_records WHERE session = ? ORDER BY seq
	`, session)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", session, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r      Record
			offset int64
			kind   string
		)
		if err := rows.Scan(&offset, &kind, &r.PointerID, &r.X, &r.Y); err != nil {
			return nil, fmt.Errorf("load session %q: %w", session, err)
		}
		r.Offset = time.Duration(offset)
		r.Kind = pointer.Kind(kind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load session %q: %w", session, err)
	}
	return records, nil
}

// Sessions returns the stored session names in sorted order.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT session FROM trace_records ORDER BY session`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		sessions = append(sessions, name)
	}
	return sessions, rows.Err()
}
