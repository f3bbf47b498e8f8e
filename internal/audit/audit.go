// Package audit records which screens users open. Records are append-only and
// are never read back to restore a session.
package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one resolved navigation.
type Event struct {
	ID        uuid.UUID `db:"id"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	Screen    string    `db:"screen"`
	Fallback  bool      `db:"fallback"`
	CreatedAt time.Time `db:"created_at"`
}

// NewEvent stamps an event with a fresh id and the current UTC time.
func NewEvent(chatID, userID int64, token, screen string, fallback bool) Event {
	return Event{
		ID:        uuid.New(),
		ChatID:    chatID,
		UserID:    userID,
		Token:     token,
		Screen:    screen,
		Fallback:  fallback,
		CreatedAt: time.Now().UTC(),
	}
}

// ScreenCount is a row of the usage report.
type ScreenCount struct {
	Screen string `db:"screen"`
	Visits int64  `db:"visits"`
}

// Store persists navigation events.
type Store interface {
	Record(ctx context.Context, e Event) error
	TopScreens(ctx context.Context, limit int) ([]ScreenCount, error)
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(context.Context, Event) error                    { return nil }
func (Nop) TopScreens(context.Context, int) ([]ScreenCount, error) { return nil, nil }
func (Nop) Close() error                                           { return nil }

// Memory keeps events in process. Used when a database is not worth it, and in tests.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends e.
func (m *Memory) Record(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of the recorded events in insertion order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// TopScreens counts non-fallback visits per screen, most visited first.
func (m *Memory) TopScreens(_ context.Context, limit int) ([]ScreenCount, error) {
	m.mu.Lock()
	counts := make(map[string]int64)
	for _, e := range m.events {
		if e.Fallback {
			continue
		}
		counts[e.Screen]++
	}
	m.mu.Unlock()

	out := make([]ScreenCount, 0, len(counts))
	for screen, n := range counts {
		out = append(out, ScreenCount{Screen: screen, Visits: n})
	}
	sortCounts(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func sortCounts(rows []ScreenCount) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Visits != rows[j].Visits {
			return rows[i].Visits > rows[j].Visits
		}
		return rows[i].Screen < rows[j].Screen
	})
}
