// Package sender runs outbound Telegram calls on a small worker pool and
// retries the failures that are worth retrying.
package sender

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
)

const component = "tg.sender"

// Kind is the failure class of a send error.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindFlood      Kind = "flood"
	KindForbidden  Kind = "forbidden"
	KindBadRequest Kind = "bad_request"
	KindOther      Kind = "other"
)

// Retryable reports whether a later attempt can succeed without changing the request.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindServer || k == KindFlood
}

// Classify maps err to a Kind. Forbidden usually means the user blocked the bot.
func Classify(err error) Kind {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return KindFlood
	}
	if code := apiCode(err); code != 0 {
		switch {
		case code == 429:
			return KindFlood
		case code == 403:
			return KindForbidden
		case code >= 500:
			return KindServer
		case code >= 400:
			return KindBadRequest
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return KindNetwork
	}
	return KindOther
}

// apiCode reads the Bot API status from a telebot error, or from the
// trailing "(NNN)" telebot appends to errors it has no type for.
func apiCode(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	msg := err.Error()
	open := strings.LastIndexByte(msg, '(')
	if open < 0 || !strings.HasSuffix(msg, ")") {
		return 0
	}
	code, convErr := strconv.Atoi(msg[open+1 : len(msg)-1])
	if convErr != nil {
		return 0
	}
	return code
}

var tokenPattern = regexp.MustCompile(`bot\d+:[\w-]+`)

// redact hides the bot token that net/http includes in URL errors.
func redact(err error) string {
	return tokenPattern.ReplaceAllString(err.Error(), "bot<token>")
}

// Options tunes a Dispatcher. Zero values select the defaults.
type Options struct {
	Workers  int
	Queue    int
	Attempts int
	Backoff  time.Duration
}

type job struct {
	ctx  context.Context
	name string
	fn   func() error
}

// Dispatcher executes queued sends. A full or closed queue runs the send on
// the caller instead of dropping it.
type Dispatcher struct {
	opts     Options
	jobs     chan job
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	failures atomic.Uint64
}

func New(opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Queue <= 0 {
		opts.Queue = 256
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	d := &Dispatcher{opts: opts, jobs: make(chan job, opts.Queue)}
	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer d.wg.Done()
			for j := range d.jobs {
				d.deliver(j)
			}
		}()
	}
	return d
}

// Send queues fn under name. It returns fn's error only when fn ran inline.
func (d *Dispatcher) Send(ctx context.Context, name string, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	if !d.closed {
		select {
		case d.jobs <- job{ctx: ctx, name: name, fn: fn}:
			d.mu.RUnlock()
			return nil
		default:
		}
	}
	d.mu.RUnlock()

	logger.Warn(ctx, component, "send.inline", slog.String("handler", name))
	return fn()
}

// Close waits for queued sends to finish. Later sends run inline.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

// Failures counts sends that gave up.
func (d *Dispatcher) Failures() uint64 {
	return d.failures.Load()
}

func (d *Dispatcher) deliver(j job) {
	start := time.Now()
	for attempt := 1; ; attempt++ {
		err := j.fn()
		if err == nil {
			if attempt > 1 {
				logger.Info(j.ctx, component, "send.recovered", slog.Int("attempts", attempt))
			}
			return
		}
		kind := Classify(err)
		if !kind.Retryable() || attempt >= d.opts.Attempts {
			d.failures.Add(1)
			metrics.ObserveSendFailure(string(kind))
			logger.Error(j.ctx, component, "send.failed",
				slog.String("handler", j.name),
				slog.String("kind", string(kind)),
				slog.Int("attempts", attempt),
				slog.Duration("duration", time.Since(start)),
				slog.String("err", redact(err)),
			)
			return
		}

		wait := d.opts.Backoff * time.Duration(attempt)
		var flood tele.FloodError
		if errors.As(err, &flood) && flood.RetryAfter > 0 {
			wait = time.Duration(flood.RetryAfter) * time.Second
		}
		select {
		case <-j.ctx.Done():
			d.failures.Add(1)
			metrics.ObserveSendFailure(string(KindNetwork))
			return
		case <-time.After(wait):
		}
	}
}
