package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/platform/timeouts"
)

const loopQueueSize = 32

var errLoopStopped = errors.New("engine loop stopped")

// Loop runs an Engine on a single goroutine: posted events, autosave ticks
// and the final flush never overlap.
type Loop struct {
	engine   *Engine
	interval time.Duration
	events   chan func(context.Context)
	stopping chan struct{}
	done     chan struct{}

	// mu orders Post against shutdown: once stopped is set no event is
	// accepted, and every event accepted before it is drained.
	mu      sync.Mutex
	stopped bool
}

// NewLoop creates a loop that autosaves every interval. A non-positive
// interval uses timeouts.Autosave.
func NewLoop(engine *Engine, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = timeouts.Autosave
	}
	return &Loop{
		engine:   engine,
		interval: interval,
		events:   make(chan func(context.Context), loopQueueSize),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the engine and processes events until ctx is cancelled, then
// writes one last save.
func (l *Loop) Run(ctx context.Context) error {
	if l.engine == nil {
		return errors.New("engine is required")
	}
	defer close(l.done)

	l.engine.Start(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.flush(ctx)
			return nil
		case <-ticker.C:
			l.autosave(ctx)
		case fn := <-l.events:
			fn(ctx)
		}
	}
}

func (l *Loop) autosave(ctx context.Context) {
	err := l.engine.Save(ctx)
	if err == nil {
		return
	}
	if apperrors.CodeOf(err).Transient() {
		l.engine.logf("autosave: %v (will retry)", err)
		return
	}
	l.engine.logf("autosave: %v", err)
}

func (l *Loop) flush(ctx context.Context) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
	defer cancel()

	close(l.stopping)
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	// Drain events that were accepted before shutdown.
	for drained := false; !drained; {
		select {
		case fn := <-l.events:
			fn(flushCtx)
		default:
			drained = true
		}
	}
	if err := l.engine.Save(flushCtx); err != nil {
		l.engine.logf("final save: %v", err)
	}
}

// Post queues fn to run on the loop goroutine. A nil error means fn will
// run, at the latest during the final drain.
func (l *Loop) Post(ctx context.Context, fn func(context.Context)) error {
	if fn == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return errLoopStopped
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopping:
		return errLoopStopped
	case l.events <- fn:
		return nil
	}
}

// Call runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func(context.Context, *Engine)) error {
	finished := make(chan struct{})
	err := l.Post(ctx, func(loopCtx context.Context) {
		defer close(finished)
		fn(loopCtx, l.engine)
	})
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-finished:
		return nil
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }
