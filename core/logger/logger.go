// Package logger writes one structured line per event. Lines are JSON for
// collectors or key=value for terminals, and always start with the same
// keys so they line up when read by eye.
//
// Call sites name a component and an event:
//
//	logger.Info(ctx, "nav", "nav.resolved", slog.String("screen", "objectives"))
//
// Logging before Init or after Shutdown is a no-op.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/m3rciful/specialtybot/core/buildinfo"
	coreconfig "github.com/m3rciful/specialtybot/core/config"
)

var (
	mu    sync.Mutex
	queue *lineQueue
	files []*os.File
	level slog.LevelVar

	current atomic.Pointer[slog.Logger]
)

// Init installs the process logger from cfg. It is a no-op while a logger is
// already installed.
func Init(cfg *coreconfig.Config) error {
	if cfg == nil {
		return errors.New("logger: nil config")
	}
	mu.Lock()
	defer mu.Unlock()
	if current.Load() != nil {
		return nil
	}

	sinks := []io.Writer{os.Stdout}
	if path := logPath(cfg.Logging); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("logger: open log file: %w", err)
		}
		files = append(files, f)
		sinks = append(sinks, f)
	}

	level.Set(parseLevel(cfg.Logging.Level))
	queue = newLineQueue(sinks...)
	format := chooseFormat(cfg.Logging, isatty.IsTerminal(os.Stdout.Fd()))
	l := slog.New(newFieldHandler(&level, queue, format, keyRanks(cfg.Logging.KeysOrder)))
	current.Store(l)
	slog.SetDefault(l)

	Info(context.Background(), "app", "startup",
		slog.String("version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("go_version", runtime.Version()),
		slog.String("profile", profile(cfg.Logging)),
		slog.String("format", format.String()),
	)
	return nil
}

// Shutdown drains queued lines and closes log files. Init may be called again
// afterwards.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if current.Swap(nil) == nil {
		return nil
	}
	var errs []error
	if err := queue.close(); err != nil {
		errs = append(errs, err)
	}
	for _, f := range files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	queue, files = nil, nil
	return errors.Join(errs...)
}

func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, component, event, attrs)
}

func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, component, event, attrs)
}

func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, component, event, attrs)
}

func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, component, event, attrs)
}

func emit(ctx context.Context, lvl slog.Level, component, event string, attrs []slog.Attr) {
	l := current.Load()
	if l == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.LogAttrs(ctx, lvl, event, append([]slog.Attr{slog.String("component", component)}, attrs...)...)
}

// RoundMS rounds d to whole milliseconds.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func chooseFormat(cfg coreconfig.LoggingConfig, tty bool) lineFormat {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		return formatJSON
	case "kv", "text":
		return formatKV
	case "auto":
		if tty {
			return formatKV
		}
		return formatJSON
	}
	if p := profile(cfg); p == "dev" || p == "debug" {
		return formatKV
	}
	return formatJSON
}

func profile(cfg coreconfig.LoggingConfig) string {
	if p := strings.ToLower(strings.TrimSpace(cfg.Profile)); p != "" {
		return p
	}
	return "prod"
}

func logPath(cfg coreconfig.LoggingConfig) string {
	dir, file := strings.TrimSpace(cfg.Dir), strings.TrimSpace(cfg.File)
	if dir == "" || file == "" {
		return ""
	}
	return filepath.Join(dir, file)
}
