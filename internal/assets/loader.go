package assets

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/blockfield/internal/logger"
)

// Result is the outcome of an asynchronous map load.
type Result struct {
	Map *Map
	Err error
}

// LoadMapAsync loads a map on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (m *Manager) LoadMapAsync(ctx context.Context, name string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		mp, err := m.LoadMap(ctx, name)
		out <- Result{Map: mp, Err: err}
	}()
	return out
}

// Loader runs at most one map load at a time for the render loop. Starting
// a new load cancels the one in flight; failed loads are logged and dropped.
type Loader struct {
	manager *Manager
	ctx     context.Context
	cancel  context.CancelFunc
	pending <-chan Result
	name    string
}

// NewLoader creates a loader whose loads stop when ctx is done.
func NewLoader(ctx context.Context, m *Manager) *Loader {
	return &Loader{manager: m, ctx: ctx}
}

// Request starts loading name, superseding any pending load.
func (l *Loader) Request(name string) {
	l.Cancel()

	ctx, cancel := context.WithCancel(l.ctx)
	l.cancel = cancel
	l.name = name
	l.pending = l.manager.LoadMapAsync(ctx, name)
	logger.Debug("map load started", zap.String("map", name))
}

// Pending returns the name of the map being loaded, or "".
func (l *Loader) Pending() string {
	if l.pending == nil {
		return ""
	}
	return l.name
}

// Poll returns a loaded map once it is ready without blocking. Failures
// yield nil and are only logged.
func (l *Loader) Poll() *Map {
	if l.pending == nil {
		return nil
	}

	select {
	case res, ok := <-l.pending:
		l.finish()
		if !ok {
			return nil
		}
		if res.Err != nil {
			if !errors.Is(res.Err, context.Canceled) {
				logger.Warn("map load failed", zap.String("map", l.name), zap.Error(res.Err))
			}
			return nil
		}
		logger.Info("map loaded", zap.String("map", res.Map.Name))
		return res.Map
	default:
		return nil
	}
}

// Wait blocks until the pending load finishes and returns what Poll would.
func (l *Loader) Wait() *Map {
	if l.pending == nil {
		return nil
	}
	res, ok := <-l.pending
	// Hand the result back through Poll so logging stays in one place
	replay := make(chan Result, 1)
	if ok {
		replay <- res
	}
	close(replay)
	l.pending = replay
	return l.Poll()
}

// Cancel abandons the pending load, if any.
func (l *Loader) Cancel() {
	if l.cancel != nil {
		l.cancel()
	}
	l.finish()
}

func (l *Loader) finish() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.pending = nil
}
