// Package prefs persists each visitor's preferred site language.
package prefs

import (
	"context"
	"sync"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
)

// DefaultTTL is how long a stored preference survives without being refreshed.
const DefaultTTL = 180 * 24 * time.Hour

// Store maps a visitor id to a language. A missing entry is not an error.
type Store interface {
	Get(ctx context.Context, visitorID string) (content.Lang, bool, error)
	Set(ctx context.Context, visitorID string, lang content.Lang) error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	langs map[string]content.Lang
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{langs: make(map[string]content.Lang)}
}

func (m *Memory) Get(_ context.Context, visitorID string) (content.Lang, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lang, ok := m.langs[visitorID]
	return lang, ok, nil
}

func (m *Memory) Set(_ context.Context, visitorID string, lang content.Lang) error {
	if !lang.Valid() {
		return &content.UnsupportedLangError{Code: string(lang)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.langs[visitorID] = lang
	return nil
}
