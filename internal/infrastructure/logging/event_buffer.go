package logging

import (
	"context"
	"sync"

	"github.com/wiredwork/orcheo/internal/ports"
)

const defaultBufferLimit = 1000

type severity int

const (
	sevDebug severity = iota
	sevInfo
	sevWarn
	sevError
)

type pendingLog struct {
	ctx    context.Context
	level  severity
	msg    string
	fields []interface{}
}

// EventBuffer queues log calls made before a command's real logger exists.
// orcheo's CLI logs a "starting orcheo command" line and whatever bootstrap
// emits while loading settings.yaml before it knows --verbose, so those
// calls land here first and are replayed into the real logger once it's
// built (see main.go / bootstrap in cmd/orcheo).
type EventBuffer struct {
	mu     sync.Mutex
	limit  int
	events []pendingLog
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]pendingLog, 0, limit),
	}
}

func (b *EventBuffer) add(entry pendingLog) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		return
	}
	b.events = append(b.events, entry)
}

// Flush replays buffered events into delegate, preserving order, then empties
// the buffer. Safe to call once a command's real logger is ready; a second
// Flush call is a no-op since the buffer is already empty.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]pendingLog, len(b.events))
	copy(events, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	for _, entry := range events {
		switch entry.level {
		case sevDebug:
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case sevWarn:
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case sevError:
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}
