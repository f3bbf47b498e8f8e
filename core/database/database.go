package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m3rciful/specialtybot/core/logger"
)

const (
	component   = "db"
	readyWait   = 30 * time.Second
	readyPause  = 2 * time.Second
	pingTimeout = 5 * time.Second
)

// Connect opens a pooled connection, retrying until Postgres answers or
// readyWait elapses.
func Connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readyWait)
	defer cancel()

	start := time.Now()
	var (
		db       *sqlx.DB
		err      error
		attempts int
	)
	for {
		attempts++
		db, err = open(ctx, cfg)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			logger.Error(ctx, component, "db.connect",
				slog.String("status", "fail"),
				slog.String("host", cfg.Host),
				slog.String("db", cfg.Name),
				slog.Int("attempts", attempts),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("database: connect %s: %w", cfg.Host, err)
		case <-time.After(readyPause):
		}
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxConnections)
	}
	logger.Info(ctx, component, "db.connect",
		slog.String("status", "ok"),
		slog.String("host", cfg.Host),
		slog.String("db", cfg.Name),
		slog.Int("attempts", attempts),
		slog.Int("pool", cfg.MaxConnections),
		slog.Duration("duration", time.Since(start)),
	)
	return db, nil
}

func open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	db, err := sqlx.ConnectContext(pctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies every pending up migration from cfg.MigrationsDir.
func Migrate(cfg Config) error {
	ctx := context.Background()
	dir, err := filepath.Abs(cfg.migrationsDir())
	if err != nil {
		return fmt.Errorf("database: migrations dir: %w", err)
	}

	m, err := migrate.New("file://"+dir, cfg.URL())
	if err != nil {
		return fmt.Errorf("database: init migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	from, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("database: read schema version: %w", err)
	}

	start := time.Now()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error(ctx, component, "db.migrate",
			slog.String("status", "fail"),
			slog.String("path", dir),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("database: migrate up: %w", err)
	}
	to, _, _ := m.Version()

	logger.Info(ctx, component, "db.migrate",
		slog.String("status", "ok"),
		slog.String("path", dir),
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("applied", len(upFilesBetween(dir, uint64(from), uint64(to)))),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// upFilesBetween lists the *.up.sql files in dir whose version is in (from, to].
func upFilesBetween(dir string, from, to uint64) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err == nil && v > from && v <= to {
			names = append(names, name)
		}
	}
	return names
}
