// Package pager holds the result list state: the current search parameters,
// the fetched page, the locally filtered rows and the selection window.
//
// State is a value. Row slices are replaced, never written in place, so a
// copy of a State is safe to hand to the renderer while the original keeps
// changing.
package pager

import (
	"fmt"
	"strings"

	"github.com/studiowebux/crateview/internal/types"
)

// State is the pager's view of one result set
type State struct {
	Query       string
	Sort        types.SortKey
	SortForward bool // direction of the last sort toggle
	Page        int
	PageSize    int

	total       int
	totalKnown  bool
	speculative bool

	records  []types.Crate // page as fetched
	rows     []types.Crate // records passing the filter
	filter   string
	selected int // -1 when rows is empty
	offset   int
	viewport int
}

// New returns an empty first page
func New(pageSize int, sort types.SortKey) State {
	if pageSize < 1 {
		pageSize = 1
	}
	return State{
		Sort:        sort,
		SortForward: true,
		Page:        1,
		PageSize:    pageSize,
		selected:    -1,
	}
}

// Params returns the request for the current query, sort and page
func (s State) Params() types.SearchParams {
	return types.SearchParams{
		Query:    s.Query,
		Sort:     s.Sort,
		Page:     s.Page,
		PageSize: s.PageSize,
	}
}

// Total returns the registry-wide result count if a fetch has reported it
func (s State) Total() (int, bool) {
	return s.total, s.totalKnown
}

// LastPage returns ceil(total/pageSize), at least 1, when the total is known
func (s State) LastPage() (int, bool) {
	if !s.totalKnown {
		return 0, false
	}
	last := (s.total + s.PageSize - 1) / s.PageSize
	if last < 1 {
		last = 1
	}
	return last, true
}

// AdvancePage moves one page forward or back and reports whether the page
// changed. With the total known the page stays within [1, LastPage]. With
// the total unknown a single speculative step forward is allowed until a
// fetch reports the total.
func (s *State) AdvancePage(forward bool) bool {
	last, known := s.LastPage()

	if forward {
		switch {
		case known && s.Page >= last:
			return false
		case !known && s.speculative:
			return false
		case !known:
			s.speculative = true
		}
		s.Page++
		return true
	}

	target := s.Page - 1
	if known && target > last {
		target = last
	}
	if target < 1 {
		return false
	}
	s.Page = target
	s.speculative = false
	return true
}

// SetQuery starts a new result set for query at page 1.
// The previous total no longer applies.
func (s *State) SetQuery(query string) {
	s.Query = query
	s.Page = 1
	s.totalKnown = false
	s.speculative = false
}

// SetSort changes the sort key and restarts at page 1
func (s *State) SetSort(sort types.SortKey, forward bool) {
	s.Sort = sort
	s.SortForward = forward
	s.Page = 1
	s.totalKnown = false
	s.speculative = false
}

// ToggleSort cycles the sort key and restarts at page 1
func (s *State) ToggleSort(forward bool) {
	next := s.Sort.Next()
	if !forward {
		next = s.Sort.Prev()
	}
	s.SetSort(next, forward)
}

// Apply replaces the page with a fetch result. An out-of-range page simply
// yields no rows.
func (s *State) Apply(page types.Page) {
	s.records = page.Crates
	s.total = page.Total
	s.totalKnown = true
	s.speculative = false
	s.refilter()
}

// Records returns the page as fetched
func (s State) Records() []types.Crate {
	return s.records
}

// Rows returns the rows visible after filtering
func (s State) Rows() []types.Crate {
	return s.rows
}

// Filter returns the local filter text
func (s State) Filter() string {
	return s.filter
}

// SetFilter narrows rows to those whose name or description contains every
// word of filter, case-insensitively. The selection returns to the first row.
func (s *State) SetFilter(filter string) {
	if filter == s.filter {
		return
	}
	s.filter = filter
	s.refilter()
}

func (s *State) refilter() {
	words := strings.Fields(strings.ToLower(s.filter))
	if len(words) == 0 {
		s.rows = s.records
	} else {
		rows := make([]types.Crate, 0, len(s.records))
		for _, c := range s.records {
			if matchesAll(c, words) {
				rows = append(rows, c)
			}
		}
		s.rows = rows
	}

	s.offset = 0
	if len(s.rows) == 0 {
		s.selected = -1
	} else {
		s.selected = 0
	}
}

func matchesAll(c types.Crate, words []string) bool {
	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)
	for _, w := range words {
		if !strings.Contains(name, w) && !strings.Contains(desc, w) {
			return false
		}
	}
	return true
}

// Selected returns the selected row
func (s State) Selected() (types.Crate, bool) {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return types.Crate{}, false
	}
	return s.rows[s.selected], true
}

// SelectedIndex returns the selected row index within Rows
func (s State) SelectedIndex() (int, bool) {
	if s.selected < 0 {
		return 0, false
	}
	return s.selected, true
}

// Offset returns the first visible row
func (s State) Offset() int {
	return s.offset
}

// Viewport returns the number of visible rows, 0 when unknown
func (s State) Viewport() int {
	return s.viewport
}

// SetViewport records how many rows the renderer can show
func (s *State) SetViewport(height int) {
	if height < 0 {
		height = 0
	}
	s.viewport = height
	s.fitOffset()
}

// Scroll moves the selection by delta, clamped to the rows, and reports
// whether it moved
func (s *State) Scroll(delta int) bool {
	if len(s.rows) == 0 {
		return false
	}
	return s.ScrollTo(s.selected + delta)
}

// ScrollTo selects row i, clamped to the rows
func (s *State) ScrollTo(i int) bool {
	if len(s.rows) == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.rows)-1 {
		i = len(s.rows) - 1
	}
	if i == s.selected {
		return false
	}
	s.selected = i
	s.fitOffset()
	return true
}

// ScrollTop selects the first row
func (s *State) ScrollTop() bool {
	return s.ScrollTo(0)
}

// ScrollBottom selects the last row
func (s *State) ScrollBottom() bool {
	return s.ScrollTo(len(s.rows) - 1)
}

// fitOffset keeps the selection inside [offset, offset+viewport)
func (s *State) fitOffset() {
	if s.selected < 0 {
		s.offset = 0
		return
	}

	height := s.viewport
	if height <= 0 {
		height = len(s.rows)
	}

	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+height {
		s.offset = s.selected - height + 1
	}
	if maxOffset := len(s.rows) - height; s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// VisibleRange returns the half-open row range the renderer should draw
func (s State) VisibleRange() (int, int) {
	height := s.viewport
	if height <= 0 || height > len(s.rows) {
		height = len(s.rows)
	}
	end := s.offset + height
	if end > len(s.rows) {
		end = len(s.rows)
	}
	return s.offset, end
}

// PageLabel renders "Page: p/max"; max is "?" until the total is known
func (s State) PageLabel() string {
	if last, ok := s.LastPage(); ok {
		return fmt.Sprintf("Page: %d/%d", s.Page, last)
	}
	return fmt.Sprintf("Page: %d/?", s.Page)
}

// ResultsLabel renders "n/total Results" where n counts across pages
func (s State) ResultsLabel() string {
	total := "?"
	if s.totalKnown {
		total = fmt.Sprintf("%d", s.total)
	}

	n := 0
	if s.selected >= 0 {
		n = (s.Page-1)*s.PageSize + s.selected + 1
	}
	return fmt.Sprintf("%d/%s Results", n, total)
}
