package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/specialtybot/core/logger"
)

const insertEvent = `
INSERT INTO navigation_events (id, chat_id, user_id, token, screen, fallback, created_at)
VALUES (:id, :chat_id, :user_id, :token, :screen, :fallback, :created_at)`

const selectTopScreens = `
SELECT screen, COUNT(*) AS visits
FROM navigation_events
WHERE NOT fallback
GROUP BY screen
ORDER BY visits DESC, screen ASC
LIMIT $1`

// PostgresStore writes events to the navigation_events table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection. The schema comes from migrations/.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Record inserts e.
func (s *PostgresStore) Record(ctx context.Context, e Event) error {
	start := time.Now()
	if _, err := s.db.NamedExecContext(ctx, insertEvent, e); err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	logger.Debug(ctx, "audit", "audit.recorded",
		slog.String("screen", e.Screen),
		slog.Bool("fallback", e.Fallback),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// TopScreens returns the most visited screens, fallbacks excluded.
func (s *PostgresStore) TopScreens(ctx context.Context, limit int) ([]ScreenCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []ScreenCount
	if err := s.db.SelectContext(ctx, &rows, selectTopScreens, limit); err != nil {
		return nil, fmt.Errorf("audit: top screens: %w", err)
	}
	return rows, nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
