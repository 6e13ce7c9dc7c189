// Package fetch runs the reducer's fetch effects against the registry.
//
// Each effect becomes a tea.Cmd whose message is the matching engine
// completion event. Starting a request cancels the in-flight request of the
// same kind, and a request that finishes after a newer one of its kind was
// started reports nothing. The reducer applies the same rule by id. Detail
// lookups wait a short debounce first so holding a scroll key does not
// queue a request per row behind the rate limiter. Errors are passed
// through registry.Explain before they reach the reducer.
package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/logging"
	"github.com/studiowebux/crateview/internal/registry"
	"github.com/studiowebux/crateview/internal/types"
)

// DefaultDebounce is the pause before a detail request is sent
const DefaultDebounce = 150 * time.Millisecond

// Source is the registry as the coordinator uses it
type Source interface {
	Search(ctx context.Context, params types.SearchParams) (types.Page, error)
	GetCrate(ctx context.Context, name string) (types.CrateDetail, error)
	Summary(ctx context.Context) (types.Summary, error)
	InvalidateCrate(name string)
}

type inflight struct {
	id     engine.RequestID
	cancel context.CancelFunc
}

// Coordinator issues fetches and tracks the newest request per kind
type Coordinator struct {
	src      Source
	debounce time.Duration
	logger   *log.Logger

	// latest is the largest id started per kind, written when a request is
	// issued and read when it completes
	latest [engine.NumFetchKinds]atomic.Uint64

	mu      sync.Mutex
	running map[engine.FetchKind]inflight
	closed  bool
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithDebounce sets the detail debounce. Zero disables it.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithLogger replaces the package logger
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// New creates a coordinator over src
func New(src Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		src:      src,
		debounce: DefaultDebounce,
		running:  make(map[engine.FetchKind]inflight),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.WithPrefix("fetch")
	}
	return c
}

// Command turns a fetch effect into a command. Other effects return nil.
func (c *Coordinator) Command(effect engine.Effect) tea.Cmd {
	switch e := effect.(type) {
	case engine.FetchSearch:
		return c.Search(e)
	case engine.FetchDetail:
		return c.Detail(e)
	case engine.FetchSummary:
		return c.Summary(e)
	}
	return nil
}

// Search fetches one page of results
func (c *Coordinator) Search(f engine.FetchSearch) tea.Cmd {
	ctx, done := c.start(engine.KindSearch, f.ID)
	p := f.Params
	return func() tea.Msg {
		defer done()
		started := time.Now()
		page, err := c.src.Search(ctx, p)
		c.logResult(engine.KindSearch, f.ID, started, err,
			"query", p.Query, "sort", p.Sort, "page", p.Page, "results", len(page.Crates))
		if c.superseded(engine.KindSearch, f.ID) {
			return nil
		}
		return engine.SearchCompleted{ID: f.ID, Page: page, Err: registry.Explain(err)}
	}
}

// Detail fetches a crate's full record after the debounce
func (c *Coordinator) Detail(f engine.FetchDetail) tea.Cmd {
	ctx, done := c.start(engine.KindDetail, f.ID)
	return func() tea.Msg {
		defer done()
		if err := c.wait(ctx); err != nil {
			c.logger.Debug("detail skipped", "id", f.ID, "crate", f.Name)
			if c.superseded(engine.KindDetail, f.ID) {
				return nil
			}
			return engine.DetailCompleted{ID: f.ID, Err: err}
		}
		if f.Refresh {
			c.src.InvalidateCrate(f.Name)
		}
		started := time.Now()
		detail, err := c.src.GetCrate(ctx, f.Name)
		c.logResult(engine.KindDetail, f.ID, started, err, "crate", f.Name, "refresh", f.Refresh)
		if c.superseded(engine.KindDetail, f.ID) {
			return nil
		}
		return engine.DetailCompleted{
			ID:       f.ID,
			Detail:   detail,
			Err:      registry.Explain(err),
			NotFound: registry.IsNotFound(err),
		}
	}
}

// Summary fetches the registry front page
func (c *Coordinator) Summary(f engine.FetchSummary) tea.Cmd {
	ctx, done := c.start(engine.KindSummary, f.ID)
	return func() tea.Msg {
		defer done()
		started := time.Now()
		sum, err := c.src.Summary(ctx)
		c.logResult(engine.KindSummary, f.ID, started, err)
		if c.superseded(engine.KindSummary, f.ID) {
			return nil
		}
		return engine.SummaryCompleted{ID: f.ID, Summary: sum, Err: registry.Explain(err)}
	}
}

// Close cancels every in-flight request
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for kind, r := range c.running {
		r.cancel()
		delete(c.running, kind)
	}
}

// start registers id as the newest request of kind, canceling the one it
// supersedes. The returned func releases the request's context.
func (c *Coordinator) start(kind engine.FetchKind, id engine.RequestID) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	mark := &c.latest[kind]
	for {
		cur := mark.Load()
		if uint64(id) <= cur || mark.CompareAndSwap(cur, uint64(id)) {
			break
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return ctx, func() {}
	}
	if prev, ok := c.running[kind]; ok {
		if prev.id > id {
			c.mu.Unlock()
			cancel()
			c.logger.Debug("request superseded", "kind", kind, "id", id, "by", prev.id)
			return ctx, func() {}
		}
		prev.cancel()
		c.logger.Debug("request superseded", "kind", kind, "id", prev.id, "by", id)
	}
	c.running[kind] = inflight{id: id, cancel: cancel}
	c.mu.Unlock()

	return ctx, func() {
		c.mu.Lock()
		if r, ok := c.running[kind]; ok && r.id == id {
			delete(c.running, kind)
		}
		c.mu.Unlock()
		cancel()
	}
}

// superseded reports whether a newer request of kind has been started
func (c *Coordinator) superseded(kind engine.FetchKind, id engine.RequestID) bool {
	return uint64(id) < c.latest[kind].Load()
}

// wait sleeps for the debounce unless ctx is canceled first
func (c *Coordinator) wait(ctx context.Context) error {
	if c.debounce <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Coordinator) logResult(kind engine.FetchKind, id engine.RequestID, started time.Time, err error, keyvals ...interface{}) {
	keyvals = append([]interface{}{"kind", kind, "id", id, "took", time.Since(started).Round(time.Millisecond)}, keyvals...)
	switch {
	case err == nil:
		c.logger.Debug("request done", keyvals...)
	case errors.Is(err, context.Canceled):
		c.logger.Debug("request canceled", keyvals...)
	default:
		c.logger.Warn("request failed", append(keyvals, "err", err)...)
	}
}
