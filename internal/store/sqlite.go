package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Timestamps are stored as unix milliseconds so range queries compare integers.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		lang TEXT NOT NULL DEFAULT 'en',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		path TEXT NOT NULL,
		lang TEXT NOT NULL DEFAULT 'en',
		user_agent TEXT NOT NULL DEFAULT '',
		visited_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visits_visited_at_idx ON visits (visited_at)`,
}

// SQLite is the embedded backend, used when no PostgreSQL server is configured.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer at a time avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) SaveMessage(ctx context.Context, m *Message) error {
	prepareMessage(m)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, lang, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID.String(), m.Name, m.Email, m.Subject, m.Message, m.Lang, m.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *SQLite) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, lang, created_at
		 FROM contact_messages ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var (
			m       Message
			id      string
			created int64
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Lang, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid message id %q: %w", id, err)
		}
		m.CreatedAt = time.UnixMilli(created).UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLite) RecordVisit(ctx context.Context, v Visit) error {
	if v.At.IsZero() {
		v.At = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, path, lang, user_agent, visited_at) VALUES (?, ?, ?, ?, ?)`,
		v.HashedIP, v.Path, v.Lang, v.UserAgent, v.At.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (s *SQLite) VisitStats(ctx context.Context, days int) (*VisitStats, error) {
	days, since := statsWindow(days)
	stats := &VisitStats{Days: days}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visits WHERE visited_at >= ?`, since.UnixMilli(),
	).Scan(&stats.TotalVisits, &stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, COUNT(*) AS n FROM visits WHERE visited_at >= ?
		 GROUP BY path ORDER BY n DESC, path LIMIT ?`,
		since.UnixMilli(), topPathsLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top paths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan path count: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	return stats, rows.Err()
}

func (s *SQLite) PurgeVisits(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge visits: %w", err)
	}
	return result.RowsAffected()
}
