package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned when a session id is unknown.
var ErrNoSession = errors.New("no such session")

// Journal records, per session, the commands the kernel accepted, so that a
// session can be rebuilt by replaying them.
type Journal struct {
	db   *sql.DB
	path string
}

type Session struct {
	ID       string
	Prelude  bool
	Created  time.Time
	Commands int
}

// Open opens or creates the journal database at path. ":memory:" keeps it in
// memory.
func Open(path string) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection, so an in-memory database is shared by every query
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, path: path}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		prelude INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS commands (
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Path() string {
	return j.path
}

// CreateSession registers a new session.
func (j *Journal) CreateSession(ctx context.Context, id string, prelude bool) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sessions (id, prelude, created_at) VALUES (?, ?, ?)`,
		id, prelude, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", id, err)
	}
	return nil
}

// Append records an accepted command at the end of a session.
func (j *Journal) Append(ctx context.Context, id, text string) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq) + 1, 0) FROM commands WHERE session_id = ?`, id).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to read session %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO commands (session_id, seq, text) VALUES (?, ?, ?)`, id, seq, text); err != nil {
		return fmt.Errorf("failed to append to session %s: %w", id, err)
	}
	return tx.Commit()
}

// Session returns a session's metadata.
func (j *Journal) Session(ctx context.Context, id string) (*Session, error) {
	s := &Session{ID: id}
	var created int64
	err := j.db.QueryRowContext(ctx, `
		SELECT s.prelude, s.created_at, COUNT(c.seq)
		FROM sessions s LEFT JOIN commands c ON c.session_id = s.id
		WHERE s.id = ?
		GROUP BY s.id`, id).Scan(&s.Prelude, &created, &s.Commands)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	if err != nil {
		return nil, err
	}
	s.Created = time.Unix(0, created)
	return s, nil
}

// Commands returns a session's commands in the order they were accepted.
func (j *Journal) Commands(ctx context.Context, id string) ([]string, error) {
	if _, err := j.Session(ctx, id); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT text FROM commands WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// Sessions lists every session, most recent first.
func (j *Journal) Sessions(ctx context.Context) ([]*Session, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.id, s.prelude, s.created_at, COUNT(c.seq)
		FROM sessions s LEFT JOIN commands c ON c.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		var created int64
		if err := rows.Scan(&s.ID, &s.Prelude, &created, &s.Commands); err != nil {
			return nil, err
		}
		s.Created = time.Unix(0, created)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
