package services

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancellation cause of a search replaced by a newer
// one from the same client.
var ErrSuperseded = errors.New("search superseded by a newer query")

// LatestOnly keeps at most one in-flight search per client key. Starting a
// search cancels the previous one for the same key.
type LatestOnly struct {
	mu       sync.Mutex
	inflight map[string]*searchTicket
}

type searchTicket struct {
	cancel context.CancelCauseFunc
}

func NewLatestOnly() *LatestOnly {
	return &LatestOnly{inflight: make(map[string]*searchTicket)}
}

// Begin derives a context from parent that is cancelled with ErrSuperseded
// when another Begin for key arrives. done must be called when the search
// finishes.
func (l *LatestOnly) Begin(parent context.Context, key string) (ctx context.Context, done func()) {
	ctx, cancel := context.WithCancelCause(parent)
	ticket := &searchTicket{cancel: cancel}

	l.mu.Lock()
	if prev, ok := l.inflight[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	l.inflight[key] = ticket
	l.mu.Unlock()

	return ctx, func() {
		l.mu.Lock()
		if l.inflight[key] == ticket {
			delete(l.inflight, key)
		}
		l.mu.Unlock()
		cancel(context.Canceled)
	}
}

// InFlight returns the number of keys with a running search.
func (l *LatestOnly) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}

// Superseded reports whether ctx was cancelled by a newer search.
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrSuperseded)
}
