// Package store persists contact messages and anonymised visit records.
// PostgreSQL and SQLite backends are selected from the database URL scheme.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedURL is returned by Open for a database URL with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// VisitRetention is how long visit records are kept before PurgeVisits drops them.
const VisitRetention = 365 * 24 * time.Hour

// Message is a contact form submission.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"created_at"`
}

// Visit is one anonymised page view. HashedIP never holds a raw address.
type Visit struct {
	HashedIP  string    `json:"hashed_ip"`
	Path      string    `json:"path"`
	Lang      string    `json:"lang"`
	UserAgent string    `json:"user_agent"`
	At        time.Time `json:"at"`
}

// PathCount is the number of visits of one path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// VisitStats summarises visits over the last Days days.
type VisitStats struct {
	Days           int         `json:"days"`
	TotalVisits    int         `json:"total_visits"`
	UniqueVisitors int         `json:"unique_visitors"`
	TopPaths       []PathCount `json:"top_paths"`
}

// Store is implemented by every backend.
type Store interface {
	SaveMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, limit int) ([]Message, error)
	RecordVisit(ctx context.Context, v Visit) error
	VisitStats(ctx context.Context, days int) (*VisitStats, error)
	PurgeVisits(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// Open connects to the database named by url and creates the tables it needs.
// postgres:// and postgresql:// select PostgreSQL; sqlite:// and file: select SQLite.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return OpenPostgres(ctx, url)
	case strings.HasPrefix(url, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "file:"):
		return OpenSQLite(ctx, url)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
	}
}

// prepareMessage fills the generated fields of a new message.
func prepareMessage(m *Message) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
}

func statsWindow(days int) (int, time.Time) {
	if days <= 0 {
		days = 30
	}
	return days, time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

const topPathsLimit = 10
