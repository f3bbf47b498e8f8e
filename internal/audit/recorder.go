package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/specialtybot/core/logger"
)

const (
	recorderQueue   = 256
	recordTimeout   = 2 * time.Second
	recorderLogName = "audit"
)

// Recorder writes events to a Store from one background goroutine. Add never
// waits: when the queue is full the event is dropped and counted.
type Recorder struct {
	store   Store
	events  chan Event
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

// NewRecorder starts a recorder in front of store.
func NewRecorder(store Store) *Recorder {
	r := &Recorder{
		store:  store,
		events: make(chan Event, recorderQueue),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := r.store.Record(ctx, e); err != nil {
			logger.Warn(ctx, recorderLogName, "audit.record_failed",
				slog.String("screen", e.Screen),
				slog.String("err", err.Error()),
			)
		}
		cancel()
	}
}

// Add queues e. It reports false when e was dropped.
func (r *Recorder) Add(e Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.closed {
		select {
		case r.events <- e:
			return true
		default:
		}
	}
	r.dropped.Add(1)
	return false
}

// Dropped counts events that never reached the store.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close writes the queued events and closes the store.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()
	<-r.done
	return r.store.Close()
}
