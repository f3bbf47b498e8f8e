package logger

import (
	"errors"
	"io"
	"sync"
)

var errClosed = errors.New("logger: closed")

// lineQueue writes rendered lines to every sink from a single goroutine.
// write blocks only when the buffer is full.
type lineQueue struct {
	mu     sync.Mutex
	closed bool
	lines  chan []byte
	done   chan struct{}
	sinks  []io.Writer
	err    error
}

func newLineQueue(sinks ...io.Writer) *lineQueue {
	q := &lineQueue{
		lines: make(chan []byte, 512),
		done:  make(chan struct{}),
		sinks: sinks,
	}
	go q.run()
	return q
}

func (q *lineQueue) run() {
	defer close(q.done)
	for line := range q.lines {
		for _, s := range q.sinks {
			if _, err := s.Write(line); err != nil && q.err == nil {
				q.err = err
			}
		}
	}
}

func (q *lineQueue) write(line []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errClosed
	}
	q.lines <- line
	return nil
}

// close waits for queued lines to be written and returns the first sink error.
func (q *lineQueue) close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.lines)
	}
	q.mu.Unlock()
	<-q.done
	return q.err
}
