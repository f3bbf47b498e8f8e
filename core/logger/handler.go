package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

type lineFormat int

const (
	formatJSON lineFormat = iota
	formatKV
)

func (f lineFormat) String() string {
	if f == formatKV {
		return "kv"
	}
	return "json"
}

const tsLayout = "2006-01-02T15:04:05.000Z07:00"

// leadingKeys come first in every line, in this order. Other keys follow
// alphabetically.
var leadingKeys = []string{
	"ts", "level", "component", "event", "status",
	"rid", "rid_full", "update_id", "user_id", "chat_id", "handler",
	"token", "screen", "fallback", "path", "format",
	"semesters", "courses", "screens",
	"outcome", "duration_ms", "attempts", "kind",
	"err", "err_code",
}

// keyRanks parses a comma separated key list. Empty or "default" selects
// leadingKeys.
func keyRanks(raw string) map[string]int {
	keys := leadingKeys
	if raw = strings.TrimSpace(raw); raw != "" && raw != "default" {
		keys = nil
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	ranks := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, dup := ranks[k]; !dup {
			ranks[k] = i
		}
	}
	return ranks
}

type fields map[string]any

// fieldHandler flattens attributes into a single map keyed by dotted names
// and renders them as one line. Durations become <key>_ms integers.
type fieldHandler struct {
	level  slog.Leveler
	out    *lineQueue
	format lineFormat
	ranks  map[string]int

	preset fields
	prefix string
}

func newFieldHandler(level slog.Leveler, out *lineQueue, format lineFormat, ranks map[string]int) *fieldHandler {
	return &fieldHandler{level: level, out: out, format: format, ranks: ranks}
}

func (h *fieldHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *fieldHandler) Handle(ctx context.Context, r slog.Record) error {
	f := fields{
		"ts":        r.Time.UTC().Format(tsLayout),
		"level":     r.Level.String(),
		"component": "app",
	}
	for k, v := range h.preset {
		f[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		f.add(h.prefix, a)
		return true
	})
	if _, ok := f["event"]; !ok && r.Message != "" {
		f["event"] = r.Message
	}
	f.fromContext(ctx, h.format == formatJSON)

	line, err := h.render(f)
	if err != nil {
		return err
	}
	return h.out.write(line)
}

func (h *fieldHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = make(fields, len(h.preset)+len(attrs))
	for k, v := range h.preset {
		clone.preset[k] = v
	}
	for _, a := range attrs {
		clone.preset.add(h.prefix, a)
	}
	return &clone
}

func (h *fieldHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (f fields) add(prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := prefix + a.Key
	switch a.Value.Kind() {
	case slog.KindGroup:
		inner := prefix
		if a.Key != "" {
			inner = key + "."
		}
		for _, g := range a.Value.Group() {
			f.add(inner, g)
		}
	case slog.KindString:
		if s := strings.TrimSpace(a.Value.String()); s != "" {
			f[key] = s
		}
	case slog.KindDuration:
		f[msKey(key)] = RoundMS(a.Value.Duration()).Milliseconds()
	case slog.KindTime:
		f[key] = a.Value.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case nil:
		case error:
			f[key] = v.Error()
		case fmt.Stringer:
			f[key] = v.String()
		default:
			f[key] = v
		}
	default:
		f[key] = a.Value.Any()
	}
}

func msKey(key string) string {
	if strings.HasSuffix(key, "_ms") {
		return key
	}
	return key + "_ms"
}

// fromContext fills request identifiers the call site did not set itself.
func (f fields) fromContext(ctx context.Context, full bool) {
	if ctx == nil {
		return
	}
	if rid := RIDFrom(ctx); rid != "" {
		if _, ok := f["rid"]; !ok {
			short := shortRID(rid)
			f["rid"] = short
			if full && short != rid {
				f["rid_full"] = rid
			}
		}
	}
	if m, ok := ctx.Value(updateKey).(updateMeta); ok {
		f.setDefault("update_id", m.updateID)
		f.setDefault("user_id", m.userID)
		f.setDefault("chat_id", m.chatID)
	}
	if name, ok := ctx.Value(handlerKey).(string); ok && name != "" {
		f.setDefault("handler", name)
	}
}

func (f fields) setDefault(key string, v any) {
	if _, ok := f[key]; ok {
		return
	}
	switch n := v.(type) {
	case int:
		if n == 0 {
			return
		}
	case int64:
		if n == 0 {
			return
		}
	}
	f[key] = v
}

func (h *fieldHandler) order(f fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := h.ranks[keys[i]]
		rj, jok := h.ranks[keys[j]]
		if iok && jok {
			return ri < rj
		}
		if iok != jok {
			return iok
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (h *fieldHandler) render(f fields) ([]byte, error) {
	var buf bytes.Buffer
	if h.format == formatJSON {
		buf.WriteByte('{')
	}
	for i, k := range h.order(f) {
		if h.format == formatKV {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(kvValue(f[k]))
			continue
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(k)
		val, err := json.Marshal(f[k])
		if err != nil {
			return nil, fmt.Errorf("logger: encode %s: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	if h.format == formatJSON {
		buf.WriteByte('}')
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func kvValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return fmt.Sprintf("%q", s)
	}
	return s
}
