package fetch

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/registry"
	"github.com/studiowebux/crateview/internal/types"
)

// fakeSource blocks a search whose query is "slow" until its context ends
type fakeSource struct {
	searches    atomic.Int32
	details     atomic.Int32
	summary     atomic.Int32
	invalidated atomic.Int32
}

func (f *fakeSource) Search(ctx context.Context, p types.SearchParams) (types.Page, error) {
	f.searches.Add(1)
	if p.Query == "slow" {
		<-ctx.Done()
		return types.Page{}, ctx.Err()
	}
	return types.Page{Crates: []types.Crate{{Name: p.Query}}, Total: 1}, nil
}

func (f *fakeSource) GetCrate(ctx context.Context, name string) (types.CrateDetail, error) {
	f.details.Add(1)
	switch name {
	case "missing":
		return types.CrateDetail{}, errors.New("connection reset")
	case "gone":
		return types.CrateDetail{}, &registry.StatusError{StatusCode: 404, URL: "/crates/gone"}
	}
	return types.CrateDetail{Crate: types.Crate{Name: name}}, nil
}

func (f *fakeSource) Summary(ctx context.Context) (types.Summary, error) {
	f.summary.Add(1)
	return types.Summary{NumCrates: 7}, nil
}

func (f *fakeSource) InvalidateCrate(name string) {
	f.invalidated.Add(1)
}

func newTestCoordinator(src Source, opts ...Option) *Coordinator {
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return New(src, opts...)
}

func TestCommandMapsEffects(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src, WithDebounce(0))

	tests := []struct {
		name   string
		effect engine.Effect
		check  func(*testing.T, any)
	}{
		{
			name:   "search",
			effect: engine.FetchSearch{ID: 1, Params: types.SearchParams{Query: "serde", Page: 1}},
			check: func(t *testing.T, msg any) {
				got, ok := msg.(engine.SearchCompleted)
				if !ok || got.ID != 1 || got.Err != nil || got.Page.Crates[0].Name != "serde" {
					t.Errorf("msg = %+v", msg)
				}
			},
		},
		{
			name:   "detail",
			effect: engine.FetchDetail{ID: 2, Name: "tokio"},
			check: func(t *testing.T, msg any) {
				got, ok := msg.(engine.DetailCompleted)
				if !ok || got.ID != 2 || got.Detail.Crate.Name != "tokio" {
					t.Errorf("msg = %+v", msg)
				}
			},
		},
		{
			name:   "detail error",
			effect: engine.FetchDetail{ID: 3, Name: "missing"},
			check: func(t *testing.T, msg any) {
				got, ok := msg.(engine.DetailCompleted)
				if !ok || got.Err == nil || got.NotFound {
					t.Errorf("msg = %+v, want an error", msg)
				}
			},
		},
		{
			name:   "detail not found",
			effect: engine.FetchDetail{ID: 4, Name: "gone"},
			check: func(t *testing.T, msg any) {
				got, ok := msg.(engine.DetailCompleted)
				if !ok || !got.NotFound {
					t.Errorf("msg = %+v, want NotFound", msg)
				}
			},
		},
		{
			name:   "summary",
			effect: engine.FetchSummary{ID: 5},
			check: func(t *testing.T, msg any) {
				got, ok := msg.(engine.SummaryCompleted)
				if !ok || got.ID != 5 || got.Summary.NumCrates != 7 {
					t.Errorf("msg = %+v", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.Command(tt.effect)
			if cmd == nil {
				t.Fatal("Command() = nil")
			}
			tt.check(t, cmd())
		})
	}

	if cmd := c.Command(engine.CopyText{Text: "x"}); cmd != nil {
		t.Error("Command() for a non-fetch effect should be nil")
	}
}

func TestRefreshInvalidatesCachedDetail(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src, WithDebounce(0))

	c.Detail(engine.FetchDetail{ID: 1, Name: "serde"})()
	if n := src.invalidated.Load(); n != 0 {
		t.Errorf("plain detail invalidated %d times, want 0", n)
	}

	got := c.Detail(engine.FetchDetail{ID: 2, Name: "serde", Refresh: true})().(engine.DetailCompleted)
	if got.Err != nil || got.Detail.Crate.Name != "serde" {
		t.Errorf("refresh = %+v", got)
	}
	if n := src.invalidated.Load(); n != 1 {
		t.Errorf("refresh invalidated %d times, want 1", n)
	}
}

func TestNewerSearchCancelsOlder(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src)

	older := c.Search(engine.FetchSearch{ID: 5, Params: types.SearchParams{Query: "slow"}})
	newer := c.Search(engine.FetchSearch{ID: 6, Params: types.SearchParams{Query: "fast"}})

	done := make(chan any, 1)
	go func() { done <- older() }()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("older = %+v, want no message", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("superseded search was not canceled")
	}

	got := newer().(engine.SearchCompleted)
	if got.Err != nil || got.Page.Crates[0].Name != "fast" {
		t.Errorf("newer = %+v", got)
	}
}

func TestKindsDoNotCancelEachOther(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src, WithDebounce(0))

	search := c.Search(engine.FetchSearch{ID: 1, Params: types.SearchParams{Query: "serde"}})
	detail := c.Detail(engine.FetchDetail{ID: 2, Name: "serde"})

	if got := search().(engine.SearchCompleted); got.Err != nil {
		t.Errorf("search canceled by a detail request: %v", got.Err)
	}
	if got := detail().(engine.DetailCompleted); got.Err != nil {
		t.Errorf("detail error = %v", got.Err)
	}
}

func TestDetailDebounceSkipsSuperseded(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src, WithDebounce(20*time.Millisecond))

	first := c.Detail(engine.FetchDetail{ID: 1, Name: "serde"})
	second := c.Detail(engine.FetchDetail{ID: 2, Name: "tokio"})

	if msg := first(); msg != nil {
		t.Errorf("first = %+v, want no message", msg)
	}
	if got := second().(engine.DetailCompleted); got.Detail.Crate.Name != "tokio" {
		t.Errorf("second = %+v", got)
	}
	if n := src.details.Load(); n != 1 {
		t.Errorf("registry lookups = %d, want 1", n)
	}
}

func TestOlderStartIsCanceledImmediately(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src)

	newer := c.Search(engine.FetchSearch{ID: 9, Params: types.SearchParams{Query: "fast"}})
	older := c.Search(engine.FetchSearch{ID: 8, Params: types.SearchParams{Query: "slow"}})

	if msg := older(); msg != nil {
		t.Errorf("older = %+v, want no message", msg)
	}
	if got := newer().(engine.SearchCompleted); got.Err != nil {
		t.Errorf("newer error = %v", got.Err)
	}
	if !c.superseded(engine.KindSearch, 8) || c.superseded(engine.KindSearch, 9) {
		t.Error("latest search mark is not 9")
	}
	if c.superseded(engine.KindDetail, 1) {
		t.Error("a search superseded a detail request")
	}
}

func TestCloseCancelsInflight(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src)

	cmd := c.Search(engine.FetchSearch{ID: 1, Params: types.SearchParams{Query: "slow"}})
	c.Close()

	if got := cmd().(engine.SearchCompleted); !errors.Is(got.Err, context.Canceled) {
		t.Errorf("after Close = %+v, want canceled", got)
	}

	late := c.Search(engine.FetchSearch{ID: 2, Params: types.SearchParams{Query: "slow"}})
	if got := late().(engine.SearchCompleted); !errors.Is(got.Err, context.Canceled) {
		t.Errorf("started after Close = %+v, want canceled", got)
	}
}

func TestCompletionsFeedReducer(t *testing.T) {
	src := &fakeSource{}
	c := newTestCoordinator(src)

	s, effects := engine.New(engine.Options{PageSize: 10, Query: "serde"})
	var msgs []any
	for _, e := range effects {
		if cmd := c.Command(e); cmd != nil {
			msgs = append(msgs, cmd())
		}
	}

	for _, msg := range msgs {
		s, _ = engine.Receive(s, msg.(engine.Event))
	}
	if rows := s.Page.Rows(); len(rows) != 1 || rows[0].Name != "serde" {
		t.Errorf("rows = %v, want [serde]", rows)
	}
	if s.Summary == nil || s.Summary.NumCrates != 7 {
		t.Errorf("Summary = %+v", s.Summary)
	}
}
