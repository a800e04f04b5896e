package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	lang TEXT NOT NULL DEFAULT 'en',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS visits (
	id BIGSERIAL PRIMARY KEY,
	hashed_ip TEXT NOT NULL,
	path TEXT NOT NULL,
	lang TEXT NOT NULL DEFAULT 'en',
	user_agent TEXT NOT NULL DEFAULT '',
	visited_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS visits_visited_at_idx ON visits (visited_at);
`

// Postgres is the PostgreSQL backend.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and creates the tables.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// SaveMessage stores a contact message, assigning its ID and timestamp when unset.
func (p *Postgres) SaveMessage(ctx context.Context, m *Message) error {
	prepareMessage(m)
	_, err := p.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, lang, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Lang, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListMessages returns the most recent messages first.
func (p *Postgres) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, email, subject, message, lang, created_at
		 FROM contact_messages ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Lang, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// RecordVisit stores one anonymised page view.
func (p *Postgres) RecordVisit(ctx context.Context, v Visit) error {
	if v.At.IsZero() {
		v.At = time.Now().UTC()
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO visits (hashed_ip, path, lang, user_agent, visited_at) VALUES ($1, $2, $3, $4, $5)`,
		v.HashedIP, v.Path, v.Lang, v.UserAgent, v.At,
	)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// VisitStats summarises the visits of the last days days (30 when days <= 0).
func (p *Postgres) VisitStats(ctx context.Context, days int) (*VisitStats, error) {
	days, since := statsWindow(days)
	stats := &VisitStats{Days: days}

	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visits WHERE visited_at >= $1`, since,
	).Scan(&stats.TotalVisits, &stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT path, COUNT(*) AS n FROM visits WHERE visited_at >= $1
		 GROUP BY path ORDER BY n DESC, path LIMIT $2`,
		since, topPathsLimit,
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

// PurgeVisits deletes visits older than before and reports how many were removed.
func (p *Postgres) PurgeVisits(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM visits WHERE visited_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge visits: %w", err)
	}
	return tag.RowsAffected(), nil
}
