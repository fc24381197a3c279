// Package storage provides SQLite-based keystroke trace recording.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/typetris/internal/keys"
)

// Store manages the SQLite database connection for trace persistence.
type Store struct {
	db *sql.DB
}

// SessionEntry describes one recorded play session.
type SessionEntry struct {
	ID        string
	Preset    string
	Seed      int64
	Events    int
	StartedAt time.Time
}

// TraceEvent is a single recorded key transition with its offset from the
// session start.
type TraceEvent struct {
	Seq    int
	Key    string
	Press  bool
	Offset time.Duration
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			preset TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS events (
			session TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			key TEXT NOT NULL,
			press INTEGER NOT NULL,
			offset_ms INTEGER NOT NULL,
			PRIMARY KEY (session, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_events_session ON events(session);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginSession registers a new session row and returns its ID.
func (s *Store) BeginSession(preset string, seed int64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, preset, seed) VALUES (?, ?, ?)",
		id, preset, seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create session: %w", err)
	}
	return id, nil
}

// SaveEvents appends a batch of trace events for the session in one
// transaction.
func (s *Store) SaveEvents(session string, events []TraceEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO events (session, seq, key, press, offset_ms) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		press := 0
		if ev.Press {
			press = 1
		}
		if _, err := stmt.Exec(session, ev.Seq, ev.Key, press, ev.Offset.Milliseconds()); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}
	return nil
}

// ListSessions retrieves recorded sessions, newest first.
func (s *Store) ListSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.preset, s.seed, COUNT(e.seq), s.started_at
		 FROM sessions s
		 LEFT JOIN events e ON e.session = s.id
		 GROUP BY s.id
		 ORDER BY s.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var startedAt any
		if err := rows.Scan(&e.ID, &e.Preset, &e.Seed, &e.Events, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := startedAt.(type) {
		case time.Time:
			e.StartedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.StartedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SessionEvents retrieves the full event trace of one session in order.
func (s *Store) SessionEvents(session string) ([]TraceEvent, error) {
	rows, err := s.db.Query(
		`SELECT seq, key, press, offset_ms
		 FROM events
		 WHERE session = ?
		 ORDER BY seq`,
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []TraceEvent
	for rows.Next() {
		var ev TraceEvent
		var press int
		var offsetMS int64
		if err := rows.Scan(&ev.Seq, &ev.Key, &press, &offsetMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ev.Press = press != 0
		ev.Offset = time.Duration(offsetMS) * time.Millisecond
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// TraceEmitter wraps an emitter and records every event it forwards.
// Events are buffered and flushed in batches; call Flush before reading
// the trace back or closing the store.
type TraceEmitter struct {
	next    keys.Emitter
	store   *Store
	session string
	start   time.Time
	seq     int
	buf     []TraceEvent
	err     error
}

const traceFlushBatch = 64

// NewTraceEmitter starts a session and returns the recording emitter.
func NewTraceEmitter(next keys.Emitter, store *Store, preset string, seed int64) (*TraceEmitter, error) {
	session, err := store.BeginSession(preset, seed)
	if err != nil {
		return nil, err
	}
	return &TraceEmitter{
		next:    next,
		store:   store,
		session: session,
		start:   time.Now(),
	}, nil
}

// Session returns the recorded session's ID.
func (t *TraceEmitter) Session() string {
	return t.session
}

// Emit forwards the event and records it. Recording errors are sticky and
// surfaced by Flush; the forwarding path is never blocked.
func (t *TraceEmitter) Emit(ev keys.Event) {
	t.next.Emit(ev)
	t.buf = append(t.buf, TraceEvent{
		Seq:    t.seq,
		Key:    ev.Key.String(),
		Press:  ev.Press,
		Offset: time.Since(t.start),
	})
	t.seq++
	if len(t.buf) >= traceFlushBatch {
		t.flush()
	}
}

// Flush writes any buffered events and returns the first recording error.
func (t *TraceEmitter) Flush() error {
	t.flush()
	return t.err
}

func (t *TraceEmitter) flush() {
	if len(t.buf) == 0 {
		return
	}
	if err := t.store.SaveEvents(t.session, t.buf); err != nil && t.err == nil {
		t.err = err
	}
	t.buf = t.buf[:0]
}
