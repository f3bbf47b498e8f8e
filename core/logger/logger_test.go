package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
)

func capture(t *testing.T, format lineFormat, ranks map[string]int, log func(*slog.Logger)) string {
	t.Helper()
	var buf bytes.Buffer
	q := newLineQueue(&buf)
	log(slog.New(newFieldHandler(slog.LevelDebug, q, format, ranks)))
	if err := q.close(); err != nil {
		t.Fatalf("close queue: %v", err)
	}
	return buf.String()
}

func keysOf(t *testing.T, line string) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(line))
	if _, err := dec.Token(); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			t.Fatalf("decode key: %v", err)
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			t.Fatalf("decode value: %v", err)
		}
	}
	return keys
}

func TestNavigationKeysKeepTheirOrder(t *testing.T) {
	out := capture(t, formatJSON, keyRanks(""), func(l *slog.Logger) {
		l.LogAttrs(context.Background(), slog.LevelWarn, "nav.fallback",
			slog.String("zeta", "last"),
			slog.String("format", "json"),
			slog.String("path", "specialties.json"),
			slog.Bool("fallback", true),
			slog.String("screen", "invalid"),
			slog.String("token", "semester_9"),
			slog.String("component", "nav"),
		)
	})

	want := []string{"ts", "level", "component", "event", "token", "screen", "fallback", "path", "format", "zeta"}
	got := keysOf(t, out)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", got, want)
	}
}

func TestCustomKeyOrder(t *testing.T) {
	out := capture(t, formatKV, keyRanks("event, screen"), func(l *slog.Logger) {
		l.Info("nav.resolved", "screen", "objectives", "component", "nav")
	})
	if !strings.HasPrefix(out, "event=nav.resolved screen=objectives ") {
		t.Fatalf("line = %q", out)
	}
}

func TestKVQuotesAndDurations(t *testing.T) {
	out := capture(t, formatKV, keyRanks(""), func(l *slog.Logger) {
		l.Info("content.loaded", "component", "content", "err", "bad value", "took", 1500*time.Microsecond)
	})
	for _, want := range []string{`err="bad value"`, "took_ms=2", "component=content event=content.loaded"} {
		if !strings.Contains(out, want) {
			t.Fatalf("line %q lacks %q", out, want)
		}
	}
}

func TestContextFields(t *testing.T) {
	ctx := WithRID(context.Background(), BuildRID(100, 36, 1))
	ctx = WithUpdateMeta(ctx, 100, 1, 36)
	ctx = WithHandler(ctx, "nav")

	out := capture(t, formatJSON, keyRanks(""), func(l *slog.Logger) {
		l.InfoContext(ctx, "nav.resolved")
	})
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got["rid"] != "2s.10.1" || got["rid_full"] != "100:36:1" {
		t.Fatalf("rid = %v, rid_full = %v", got["rid"], got["rid_full"])
	}
	if got["update_id"] != float64(100) || got["chat_id"] != float64(36) || got["handler"] != "nav" {
		t.Fatalf("fields = %v", got)
	}
	for _, k := range []string{"trace_id", "span_id"} {
		if _, ok := got[k]; ok {
			t.Fatalf("unexpected %s in %v", k, got)
		}
	}
}

func TestGroupsAndPresetAttrs(t *testing.T) {
	out := capture(t, formatKV, keyRanks(""), func(l *slog.Logger) {
		l.With("component", "db").WithGroup("pool").Info("db.connected", "max", 5)
	})
	if !strings.Contains(out, "component=db") || !strings.Contains(out, "pool.max=5") {
		t.Fatalf("line = %q", out)
	}
}

func TestChooseFormat(t *testing.T) {
	cases := []struct {
		cfg  coreconfig.LoggingConfig
		tty  bool
		want lineFormat
	}{
		{coreconfig.LoggingConfig{Format: "auto"}, true, formatKV},
		{coreconfig.LoggingConfig{Format: "auto"}, false, formatJSON},
		{coreconfig.LoggingConfig{Format: "json", Profile: "dev"}, true, formatJSON},
		{coreconfig.LoggingConfig{Format: "KV"}, false, formatKV},
		{coreconfig.LoggingConfig{Profile: "dev"}, false, formatKV},
		{coreconfig.LoggingConfig{}, true, formatJSON},
	}
	for _, tc := range cases {
		if got := chooseFormat(tc.cfg, tc.tty); got != tc.want {
			t.Fatalf("chooseFormat(%+v, tty=%v) = %s, want %s", tc.cfg, tc.tty, got, tc.want)
		}
	}
}

func TestLoggingWithoutInitIsNoop(t *testing.T) {
	Info(context.Background(), "app", "ignored")
	if err := Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("sem\x00ester_\u200b1", 64); got != "semester_1" {
		t.Fatalf("sanitize = %q", got)
	}
	if got := SanitizeLimit("curriculum_menu", 4); got != "curr" {
		t.Fatalf("limit = %q", got)
	}
	if got := shortRID("not-a-rid"); got != "not-a-rid" {
		t.Fatalf("shortRID = %q", got)
	}
}
