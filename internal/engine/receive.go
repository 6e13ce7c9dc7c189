package engine

import (
	"fmt"

	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/suggest"
	"github.com/studiowebux/crateview/internal/types"
)

// Event is something that happened outside the reducer: a fetch finished,
// the prompt text changed, the terminal resized, the render clock ticked
type Event interface {
	event()
}

// SearchCompleted carries the result of a FetchSearch
type SearchCompleted struct {
	ID   RequestID
	Page types.Page
	Err  error
}

// DetailCompleted carries the result of a FetchDetail. NotFound is set
// when the registry has no crate by that name.
type DetailCompleted struct {
	ID       RequestID
	Detail   types.CrateDetail
	Err      error
	NotFound bool
}

// SummaryCompleted carries the result of a FetchSummary
type SummaryCompleted struct {
	ID      RequestID
	Summary types.Summary
	Err     error
}

// InputChanged reports the text of the active prompt
type InputChanged struct {
	Text string
}

// HistoryLoaded delivers stored queries, newest first
type HistoryLoaded struct {
	Queries []string
}

// Resized reports how many result rows fit on screen
type Resized struct {
	Rows int
}

// Tick is the render clock
type Tick struct{}

func (SearchCompleted) event()  {}
func (DetailCompleted) event()  {}
func (SummaryCompleted) event() {}
func (InputChanged) event()     {}
func (HistoryLoaded) event()    {}
func (Resized) event()          {}
func (Tick) event()             {}

// Receive folds an event into s. Fetch completions older than the latest
// request of their kind are dropped without touching the state.
func Receive(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SearchCompleted:
		if s.stale(KindSearch, ev.ID) {
			return s, nil
		}
		s.loading[KindSearch] = false
		if ev.Err != nil {
			s = s.fail(KindSearch, fmt.Sprintf("Failed to fetch crates: %v", ev.Err))
			return s.openPopup("Error", s.Err, false), nil
		}

		s = s.succeed(KindSearch)
		s.Page.Apply(ev.Page)
		if len(s.Page.Records()) == 0 && s.Page.Query != "" && s.Page.Page == 1 {
			msg := fmt.Sprintf("Could not find any crates with query `%s`.", s.Page.Query)
			return s.openPopup("No results", msg, false), nil
		}
		return s.issueDetail()

	case DetailCompleted:
		if s.stale(KindDetail, ev.ID) {
			return s, nil
		}
		s.loading[KindDetail] = false
		if ev.NotFound {
			return s.fail(KindDetail, fmt.Sprintf("Crate %s was not found on the registry", s.detailName)), nil
		}
		if ev.Err != nil {
			return s.fail(KindDetail, fmt.Sprintf("Failed to fetch %s: %v", s.detailName, ev.Err)), nil
		}
		s = s.succeed(KindDetail)
		detail := ev.Detail
		s.Detail = &detail
		s.InfoScroll = 0
		return s, nil

	case SummaryCompleted:
		if s.stale(KindSummary, ev.ID) {
			return s, nil
		}
		s.loading[KindSummary] = false
		if ev.Err != nil {
			return s.fail(KindSummary, fmt.Sprintf("Failed to fetch summary: %v", ev.Err)), nil
		}
		s = s.succeed(KindSummary)
		summary := ev.Summary
		s.Summary = &summary
		s.SummarySelected = clamp(s.SummarySelected, 0, len(SummaryItems(s.Summary, s.SummarySection))-1)
		return s, nil

	case InputChanged:
		switch s.Mode.Kind() {
		case mode.Search:
			s.Input = ev.Text
			s.historyPos = -1
		case mode.Filter:
			s.Page.SetFilter(ev.Text)
		}
		return s, nil

	case HistoryLoaded:
		s.History = suggest.Dedupe(append(append([]string{}, s.History...), ev.Queries...))
		return s, nil

	case Resized:
		s.Page.SetViewport(ev.Rows)
		return s, nil

	case Tick:
		if s.anyLoading() {
			s.Spinner++
		}
		return s, nil
	}

	return s, nil
}

// stale reports whether id has been superseded by a later request of kind
func (s State) stale(kind FetchKind, id RequestID) bool {
	return id < s.latest[kind] || !s.loading[kind] && id == s.latest[kind]
}

// fail sets the error flag on behalf of kind
func (s State) fail(kind FetchKind, msg string) State {
	s.Err = msg
	s.errKind = kind
	return s
}

// succeed clears the error flag when kind set it
func (s State) succeed(kind FetchKind) State {
	if s.Err != "" && s.errKind == kind {
		s.Err = ""
	}
	return s
}

func (s State) anyLoading() bool {
	for _, l := range s.loading {
		if l {
			return true
		}
	}
	return false
}
