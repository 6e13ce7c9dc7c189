package engine

import (
	"strings"

	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/pager"
	"github.com/studiowebux/crateview/internal/types"
)

// Templates expand "{name}" and "{version}" for the selected crate
type Templates struct {
	CopyCommand string
	DocsURL     string
	RegistryURL string
}

// DefaultTemplates targets crates.io and docs.rs
var DefaultTemplates = Templates{
	CopyCommand: "cargo add {name}",
	DocsURL:     "https://docs.rs/{name}/latest/{name}/",
	RegistryURL: "https://crates.io/crates/{name}",
}

// Expand fills a template for c
func Expand(template string, c types.Crate) string {
	return strings.NewReplacer("{name}", c.Name, "{version}", c.MaxVersion).Replace(template)
}

// Options are the startup values taken from configuration
type Options struct {
	PageSize  int
	Sort      types.SortKey
	Query     string
	Templates Templates

	// HelpLines is the number of help lines per mode, used to bound scrolling
	HelpLines map[mode.Kind]int
}

// Popup is the content of the modal message
type Popup struct {
	Title   string
	Message string
	JSON    bool // Message is a JSON document
	Scroll  int
}

// State is everything the reducer owns. It is a value; Dispatch and
// Receive return modified copies.
type State struct {
	Mode mode.Machine
	Page pager.State

	// Input is the search prompt text. DraftSort is the sort that the next
	// submit or reload applies.
	Input        string
	DraftSort    types.SortKey
	DraftForward bool

	Err    string // fetch error flag, cleared by the next success of the kind that set it
	Popup  Popup
	Detail *types.CrateDetail

	InfoScroll int
	HelpScroll int

	Summary         *types.Summary
	SummarySection  SummarySection
	SummarySelected int

	History     []string // newest first
	historyPos  int      // -1 when not browsing
	historyBase string
	historyHits []string

	Spinner int

	nextID     RequestID
	latest     [NumFetchKinds]RequestID
	loading    [NumFetchKinds]bool
	detailName string // crate of the outstanding detail request
	refresh    bool   // next detail request bypasses the cache
	errKind    FetchKind
	templates  Templates
	helpLines  map[mode.Kind]int
}

// New returns the startup state and the fetches that populate it
func New(opts Options) (State, []Effect) {
	if opts.Templates == (Templates{}) {
		opts.Templates = DefaultTemplates
	}
	if opts.Sort == "" {
		opts.Sort = types.SortRelevance
	}

	s := State{
		Mode:         mode.NewMachine(),
		Page:         pager.New(opts.PageSize, opts.Sort),
		Input:        opts.Query,
		DraftSort:    opts.Sort,
		DraftForward: true,
		historyPos:   -1,
		templates:    opts.Templates,
		helpLines:    opts.HelpLines,
	}
	s.Page.SetQuery(opts.Query)

	s, search := s.issueSearch()
	s, summary := s.issueSummary()
	return s, []Effect{search, summary}
}

// Loading reports whether a fetch of kind is outstanding
func (s State) Loading(kind FetchKind) bool {
	return s.loading[kind]
}

// Latest returns the most recent RequestID issued for kind
func (s State) Latest(kind FetchKind) RequestID {
	return s.latest[kind]
}

func (s State) allocate(kind FetchKind) (State, RequestID) {
	s.nextID++
	s.latest[kind] = s.nextID
	s.loading[kind] = true
	return s, s.nextID
}

func (s State) issueSearch() (State, Effect) {
	s, id := s.allocate(KindSearch)
	return s, FetchSearch{ID: id, Params: s.Page.Params()}
}

func (s State) issueSummary() (State, Effect) {
	s, id := s.allocate(KindSummary)
	return s, FetchSummary{ID: id}
}

// issueDetail requests the selected crate's detail when the info pane is
// showing and the loaded detail is for another crate
func (s State) issueDetail() (State, []Effect) {
	if s.Mode.Kind() != mode.PickerShowInfo {
		return s, nil
	}
	c, ok := s.Page.Selected()
	if !ok {
		return s, nil
	}
	if s.Detail != nil && s.Detail.Crate.Name == c.Name {
		return s, nil
	}
	if s.loading[KindDetail] && s.detailName == c.Name {
		return s, nil
	}

	s.Detail = nil
	s.InfoScroll = 0
	s, id := s.allocate(KindDetail)
	s.detailName = c.Name
	refresh := s.refresh
	s.refresh = false
	return s, []Effect{FetchDetail{ID: id, Name: c.Name, Refresh: refresh}}
}
