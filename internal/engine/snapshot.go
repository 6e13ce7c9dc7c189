package engine

import (
	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/suggest"
	"github.com/studiowebux/crateview/internal/types"
)

// suggestionLimit bounds the history suggestions shown under the prompt
const suggestionLimit = 5

// Snapshot is the read-only view handed to the renderer each frame.
// Slices and pointers are shared with State, which never writes through them.
type Snapshot struct {
	Mode     mode.Mode
	Base     mode.Kind // mode underneath a popup
	HelpMode mode.Kind // mode whose bindings the help screen lists

	Query        string
	Input        string
	Filter       string
	Sort         types.SortKey
	DraftSort    types.SortKey
	PageLabel    string
	ResultsLabel string

	Rows     []types.Crate
	Selected int // -1 when nothing is selected
	Start    int
	End      int

	Crate      *types.Crate
	Detail     *types.CrateDetail
	InfoScroll int

	Summary         *types.Summary
	SummarySection  SummarySection
	SummaryItems    []SummaryItem
	SummarySelected int

	Popup      Popup
	HelpScroll int

	Suggestions []string

	Loading bool
	Spinner int
	Err     string
}

// Snapshot captures s for rendering
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:         s.Mode.Current(),
		Base:         s.Mode.Base(),
		HelpMode:     s.Mode.Last(),
		Query:        s.Page.Query,
		Input:        s.Input,
		Filter:       s.Page.Filter(),
		Sort:         s.Page.Sort,
		DraftSort:    s.DraftSort,
		PageLabel:    s.Page.PageLabel(),
		ResultsLabel: s.Page.ResultsLabel(),
		Rows:         s.Page.Rows(),
		Selected:     -1,
		InfoScroll:   s.InfoScroll,

		Summary:         s.Summary,
		SummarySection:  s.SummarySection,
		SummaryItems:    SummaryItems(s.Summary, s.SummarySection),
		SummarySelected: s.SummarySelected,

		Popup:      s.Popup,
		HelpScroll: s.HelpScroll,

		Loading: s.anyLoading(),
		Spinner: s.Spinner,
		Err:     s.Err,
	}

	if i, ok := s.Page.SelectedIndex(); ok {
		snap.Selected = i
	}
	snap.Start, snap.End = s.Page.VisibleRange()

	if c, ok := s.Page.Selected(); ok {
		snap.Crate = &c
		if s.Detail != nil && s.Detail.Crate.Name == c.Name {
			snap.Detail = s.Detail
		}
	}

	if snap.Base == mode.Search {
		snap.Suggestions = suggest.Rank(s.Input, s.History, suggestionLimit)
	}

	return snap
}
