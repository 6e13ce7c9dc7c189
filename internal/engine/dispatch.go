package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/suggest"
	"github.com/studiowebux/crateview/internal/types"
)

// Dispatch applies action to s. It performs no I/O; everything outside the
// state is returned as effects. An action that does not apply in the
// current mode returns s unchanged and no effects.
func Dispatch(s State, action keybinds.Action) (State, []Effect) {
	next, effects, _ := Apply(s, action)
	return next, effects
}

// Apply is Dispatch that also reports whether the action applied, so the
// host can log ignored actions
func Apply(s State, action keybinds.Action) (State, []Effect, bool) {
	next, effects, ok := apply(s, action)
	if !ok {
		return s, nil, false
	}
	return next, effects, true
}

func apply(s State, a keybinds.Action) (State, []Effect, bool) {
	k := s.Mode.Kind()

	switch a.Name {
	case keybinds.ActionIgnore:
		return s, nil, false

	case keybinds.ActionQuit:
		return s, []Effect{Quit{}}, true

	case keybinds.ActionSwitchMode:
		return s.switchMode(a.Target)

	case keybinds.ActionSwitchToLastMode:
		return s.switchMode(s.Mode.Last())

	case keybinds.ActionClosePopup:
		m, ok := s.Mode.ClosePopup()
		if !ok {
			return s, nil, false
		}
		s.Mode = m
		s.Popup = Popup{}
		return s, nil, true

	case keybinds.ActionToggleShowCrateInfo:
		switch k {
		case mode.PickerHideInfo:
			return s.switchMode(mode.PickerShowInfo)
		case mode.PickerShowInfo:
			return s.switchMode(mode.PickerHideInfo)
		}
		return s, nil, false

	case keybinds.ActionNextTab:
		if !k.IsPicker() {
			return s, nil, false
		}
		return s.switchMode(mode.Summary)

	case keybinds.ActionPreviousTab:
		if k != mode.Summary {
			return s, nil, false
		}
		return s.switchMode(s.Mode.LastPicker())

	case keybinds.ActionNextSummaryMode, keybinds.ActionPreviousSummaryMode:
		if k != mode.Summary {
			return s, nil, false
		}
		delta := 1
		if a.Name == keybinds.ActionPreviousSummaryMode {
			delta = -1
		}
		s.SummarySection = s.SummarySection.step(delta)
		s.SummarySelected = 0
		return s, nil, true

	case keybinds.ActionScrollUp:
		return s.scroll(-1)
	case keybinds.ActionScrollDown:
		return s.scroll(1)
	case keybinds.ActionScrollTop:
		return s.scrollEdge(false)
	case keybinds.ActionScrollBottom:
		return s.scrollEdge(true)

	case keybinds.ActionScrollInfoUp, keybinds.ActionScrollInfoDown:
		if k != mode.PickerShowInfo || s.Detail == nil {
			return s, nil, false
		}
		delta := 1
		if a.Name == keybinds.ActionScrollInfoUp {
			delta = -1
		}
		scroll := clamp(s.InfoScroll+delta, 0, len(s.Detail.Versions)-1)
		if scroll == s.InfoScroll {
			return s, nil, false
		}
		s.InfoScroll = scroll
		return s, nil, true

	case keybinds.ActionIncrementPage, keybinds.ActionDecrementPage:
		if !k.IsPicker() {
			return s, nil, false
		}
		if !s.Page.AdvancePage(a.Name == keybinds.ActionIncrementPage) {
			return s, nil, false
		}
		s, fetch := s.issueSearch()
		return s, []Effect{fetch}, true

	case keybinds.ActionToggleSortBy:
		return s.toggleSort(a.Reload, a.Forward)

	case keybinds.ActionReloadData:
		return s.reload()

	case keybinds.ActionSubmitSearch:
		return s.submit()

	case keybinds.ActionHistoryPrevious, keybinds.ActionHistoryNext:
		if k != mode.Search {
			return s, nil, false
		}
		return s.browseHistory(a.Name == keybinds.ActionHistoryPrevious)

	case keybinds.ActionForgetQuery:
		if k != mode.Search {
			return s, nil, false
		}
		return s.forgetQuery()

	case keybinds.ActionCopyCommand:
		c, ok := s.selectedCrate()
		if !ok {
			return s, nil, false
		}
		return s, []Effect{CopyText{Text: Expand(s.templates.CopyCommand, c)}}, true

	case keybinds.ActionOpenDocsURL:
		c, ok := s.selectedCrate()
		if !ok {
			return s, nil, false
		}
		url := c.Documentation
		if url == "" {
			url = Expand(s.templates.DocsURL, c)
		}
		return s, []Effect{OpenURL{URL: url}}, true

	case keybinds.ActionOpenRegistryURL:
		c, ok := s.selectedCrate()
		if !ok {
			return s, nil, false
		}
		return s, []Effect{OpenURL{URL: Expand(s.templates.RegistryURL, c)}}, true

	case keybinds.ActionInspectRecord:
		return s.inspect()
	}

	return s, nil, false
}

func (s State) switchMode(target mode.Kind) (State, []Effect, bool) {
	m, ok := s.Mode.Switch(target)
	if !ok {
		return s, nil, false
	}
	s.Mode = m

	var effects []Effect
	switch target {
	case mode.Search:
		s.historyPos = -1
	case mode.Help:
		s.HelpScroll = 0
	case mode.PickerShowInfo:
		s, effects = s.issueDetail()
	case mode.Summary:
		if s.Summary == nil && !s.loading[KindSummary] {
			var fetch Effect
			s, fetch = s.issueSummary()
			effects = append(effects, fetch)
		}
	}
	return s, effects, true
}

func (s State) scroll(delta int) (State, []Effect, bool) {
	switch k := s.Mode.Kind(); {
	case k.IsPicker() || k == mode.Filter || k == mode.Search:
		if !s.Page.Scroll(delta) {
			return s, nil, false
		}
		s, effects := s.issueDetail()
		return s, effects, true

	case k == mode.Summary:
		n := len(SummaryItems(s.Summary, s.SummarySection))
		sel := clamp(s.SummarySelected+delta, 0, n-1)
		if sel == s.SummarySelected {
			return s, nil, false
		}
		s.SummarySelected = sel
		return s, nil, true

	case k == mode.Help:
		scroll := clamp(s.HelpScroll+delta, 0, s.helpLines[s.Mode.Last()]-1)
		if scroll == s.HelpScroll {
			return s, nil, false
		}
		s.HelpScroll = scroll
		return s, nil, true

	case k == mode.Popup:
		scroll := clamp(s.Popup.Scroll+delta, 0, strings.Count(s.Popup.Message, "\n"))
		if scroll == s.Popup.Scroll {
			return s, nil, false
		}
		s.Popup.Scroll = scroll
		return s, nil, true
	}
	return s, nil, false
}

func (s State) scrollEdge(bottom bool) (State, []Effect, bool) {
	switch k := s.Mode.Kind(); {
	case k.IsPicker() || k == mode.Filter:
		moved := s.Page.ScrollTop()
		if bottom {
			moved = s.Page.ScrollBottom()
		}
		if !moved {
			return s, nil, false
		}
		s, effects := s.issueDetail()
		return s, effects, true
	case k == mode.Summary:
		return s.scroll(edgeDelta(bottom))
	case k == mode.Help:
		return s.scroll(edgeDelta(bottom))
	}
	return s, nil, false
}

// edgeDelta is a scroll large enough to reach either end after clamping
func edgeDelta(bottom bool) int {
	const far = 1 << 30
	if bottom {
		return far
	}
	return -far
}

// toggleSort cycles the draft sort. With reload the draft is applied at
// page 1 and fetched; otherwise it waits for the next submit or reload.
func (s State) toggleSort(reload, forward bool) (State, []Effect, bool) {
	switch k := s.Mode.Kind(); {
	case k.IsPicker() || k == mode.Search || k == mode.Summary:
	default:
		return s, nil, false
	}

	if forward {
		s.DraftSort = s.DraftSort.Next()
	} else {
		s.DraftSort = s.DraftSort.Prev()
	}
	s.DraftForward = forward

	if !reload {
		return s, nil, true
	}
	s.Page.SetSort(s.DraftSort, forward)
	s, fetch := s.issueSearch()
	return s, []Effect{fetch}, true
}

// reload re-issues the current search, applying a pending sort change.
// The info pane is refetched once the results arrive.
func (s State) reload() (State, []Effect, bool) {
	k := s.Mode.Kind()
	if k == mode.Summary {
		s, fetch := s.issueSummary()
		return s, []Effect{fetch}, true
	}
	if !k.IsPicker() {
		return s, nil, false
	}

	if s.DraftSort != s.Page.Sort {
		s.Page.SetSort(s.DraftSort, s.DraftForward)
	}
	s.Detail = nil
	s.detailName = ""
	s.loading[KindDetail] = false
	s.refresh = true
	s, fetch := s.issueSearch()
	return s, []Effect{fetch}, true
}

// submit runs the prompt query, or the selected summary item's query
func (s State) submit() (State, []Effect, bool) {
	var query string
	switch s.Mode.Kind() {
	case mode.Search:
		query = strings.TrimSpace(s.Input)
	case mode.Summary:
		items := SummaryItems(s.Summary, s.SummarySection)
		if s.SummarySelected >= len(items) {
			return s, nil, false
		}
		query = items[s.SummarySelected].Query
		s.Input = query
	default:
		return s, nil, false
	}

	s.Page.SetFilter("")
	s.Page.SetQuery(query)
	s.Page.SetSort(s.DraftSort, s.DraftForward)
	s.Detail = nil
	s.historyPos = -1
	s.Mode, _ = s.Mode.Switch(s.Mode.LastPicker())

	s, fetch := s.issueSearch()
	effects := []Effect{fetch}
	if query != "" {
		s.History = suggest.Dedupe(append([]string{query}, s.History...))
		effects = append(effects, RecordQuery{Query: query, Sort: s.DraftSort})
	}
	return s, effects, true
}

// browseHistory steps through previous queries ranked against what was
// typed before browsing started
func (s State) browseHistory(older bool) (State, []Effect, bool) {
	if s.historyPos == -1 {
		s.historyBase = s.Input
		s.historyHits = suggest.Rank(s.Input, s.History, 0)
	}

	pos := s.historyPos
	if older {
		pos++
	} else {
		pos--
	}
	if pos < -1 || pos >= len(s.historyHits) {
		return s, nil, false
	}

	s.historyPos = pos
	if pos == -1 {
		s.Input = s.historyBase
	} else {
		s.Input = s.historyHits[pos]
	}
	return s, nil, true
}

// forgetQuery drops the recalled query, or the typed one, from the history
func (s State) forgetQuery() (State, []Effect, bool) {
	query := strings.TrimSpace(s.Input)
	if s.historyPos >= 0 {
		query = s.historyHits[s.historyPos]
	}

	kept := make([]string, 0, len(s.History))
	for _, q := range s.History {
		if q != query {
			kept = append(kept, q)
		}
	}
	if query == "" || len(kept) == len(s.History) {
		return s, nil, false
	}

	s.History = kept
	if s.historyPos >= 0 {
		s.Input = s.historyBase
		s.historyPos = -1
	}
	return s, []Effect{ForgetQuery{Query: query}}, true
}

// inspect opens the selected record as JSON in a popup
func (s State) inspect() (State, []Effect, bool) {
	c, ok := s.selectedCrate()
	if !ok {
		return s, nil, false
	}

	var record any = c
	if s.Detail != nil && s.Detail.Crate.Name == c.Name {
		record = s.Detail
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return s.openPopup("Error", fmt.Sprintf("Could not encode %s: %v", c.Name, err), false), nil, true
	}
	return s.openPopup(c.Name, string(data), true), nil, true
}

func (s State) openPopup(title, message string, isJSON bool) State {
	s.Mode = s.Mode.OpenPopup()
	s.Popup = Popup{Title: title, Message: message, JSON: isJSON}
	return s
}

// selectedCrate is the crate the copy/open/inspect actions act on
func (s State) selectedCrate() (types.Crate, bool) {
	switch k := s.Mode.Kind(); {
	case k.IsPicker() || k == mode.Filter:
		return s.Page.Selected()
	case k == mode.Summary:
		items := SummaryItems(s.Summary, s.SummarySection)
		if s.SummarySelected < len(items) && items[s.SummarySelected].Crate != nil {
			return *items[s.SummarySelected].Crate, true
		}
	}
	return types.Crate{}, false
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
