// Package store persists profiling events in SQLite so that timings can be
// compared across runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    label       TEXT NOT NULL,
    device      TEXT NOT NULL,
    size        INTEGER NOT NULL,
    started_at  DATETIME NOT NULL,
    duration_ns INTEGER NOT NULL,
    error       TEXT
)`

const createLabelIndex = `CREATE INDEX IF NOT EXISTS events_label ON events (label, kind)`

// Compile-time interface satisfaction check.
var _ profiling.Tool = (*KernelTimer)(nil)

// Record is one persisted event.
type Record struct {
	ID        string
	Kind      string
	Label     string
	Device    string
	Size      int
	StartedAt time.Time
	Duration  time.Duration
	Error     string
}

// Summary aggregates the events sharing a label, kind and device.
type Summary struct {
	Label    string
	Kind     string
	Device   string
	Count    int
	Failures int
	Mean     time.Duration
	Max      time.Duration
}

// KernelTimer is a profiling tool that writes every completed event to a
// SQLite database.
type KernelTimer struct {
	db     *sql.DB
	logger logrus.FieldLogger

	mu      sync.Mutex
	lastErr error
}

// Open opens the SQLite database at dbPath and runs migrations.
// Write failures are logged through logger and remembered for Err.
func Open(dbPath string, logger logrus.FieldLogger) (*KernelTimer, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	for _, stmt := range []string{createEventsTable, createLabelIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate events table: %w", err)
		}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &KernelTimer{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (k *KernelTimer) Close() error {
	return k.db.Close()
}

// Err returns the last write failure, if any.
func (k *KernelTimer) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastErr
}

// Begin implements profiling.Tool.
func (k *KernelTimer) Begin(*profiling.Event) {}

// End implements profiling.Tool.
func (k *KernelTimer) End(ev *profiling.Event) {
	var errText sql.NullString
	if ev.Err != nil {
		errText = sql.NullString{String: ev.Err.Error(), Valid: true}
	}

	_, err := k.db.Exec(
		`INSERT INTO events (id, kind, label, device, size, started_at, duration_ns, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID.String(), ev.Kind.String(), ev.Label, ev.Device, ev.Size,
		ev.Start.UTC(), ev.Duration.Nanoseconds(), errText,
	)
	if err != nil {
		err = fmt.Errorf("insert event: %w", err)
		k.logger.WithError(err).WithField("label", ev.Label).Error("store: dropping event")

		k.mu.Lock()
		k.lastErr = err
		k.mu.Unlock()
	}
}

// Events returns the events recorded for label, oldest first.
func (k *KernelTimer) Events(ctx context.Context, label string) ([]Record, error) {
	rows, err := k.db.QueryContext(ctx,
		`SELECT id, kind, label, device, size, started_at, duration_ns, error
		FROM events WHERE label = ? ORDER BY id`, label,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			nanos   int64
			errText sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Kind, &r.Label, &r.Device, &r.Size, &r.StartedAt, &nanos, &errText); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		r.Duration = time.Duration(nanos)
		r.Error = errText.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

// Summarize returns per label, kind and device aggregates ordered by label.
func (k *KernelTimer) Summarize(ctx context.Context) ([]Summary, error) {
	rows, err := k.db.QueryContext(ctx,
		`SELECT label, kind, device, COUNT(*),
			COALESCE(SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ns), 0), COALESCE(MAX(duration_ns), 0)
		FROM events GROUP BY label, kind, device ORDER BY label, kind, device`,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize events: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s        Summary
			meanNano float64
			maxNano  int64
		)
		if err := rows.Scan(&s.Label, &s.Kind, &s.Device, &s.Count, &s.Failures, &meanNano, &maxNano); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Mean = time.Duration(meanNano)
		s.Max = time.Duration(maxNano)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}

// ErrNoEvents is returned by Latest when nothing has been recorded.
var ErrNoEvents = errors.New("store: no events recorded")

// Latest returns the most recently recorded event.
func (k *KernelTimer) Latest(ctx context.Context) (*Record, error) {
	var (
		r       Record
		nanos   int64
		errText sql.NullString
	)
	err := k.db.QueryRowContext(ctx,
		`SELECT id, kind, label, device, size, started_at, duration_ns, error
		FROM events ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &r.Kind, &r.Label, &r.Device, &r.Size, &r.StartedAt, &nanos, &errText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoEvents
	}
	if err != nil {
		return nil, fmt.Errorf("latest event: %w", err)
	}
	r.Duration = time.Duration(nanos)
	r.Error = errText.String
	return &r, nil
}
