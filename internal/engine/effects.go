package engine

import "github.com/studiowebux/crateview/internal/types"

// RequestID tags a fetch. IDs come from one strictly increasing counter in
// State and are never reused.
type RequestID uint64

// FetchKind separates the latest-request marks so a detail lookup does not
// supersede the search it was made from
type FetchKind int

const (
	KindSearch FetchKind = iota
	KindDetail
	KindSummary

	NumFetchKinds = iota // number of kinds, for arrays indexed by kind
)

func (k FetchKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindDetail:
		return "detail"
	case KindSummary:
		return "summary"
	}
	return "unknown"
}

// Effect is a request for the host to do something outside the reducer
type Effect interface {
	effect()
}

// FetchSearch asks for one page of search results
type FetchSearch struct {
	ID     RequestID
	Params types.SearchParams
}

// FetchDetail asks for the full record of one crate. Refresh bypasses
// any cached copy.
type FetchDetail struct {
	ID      RequestID
	Name    string
	Refresh bool
}

// FetchSummary asks for the registry front page
type FetchSummary struct {
	ID RequestID
}

// CopyText puts text on the clipboard
type CopyText struct {
	Text string
}

// OpenURL opens a browser
type OpenURL struct {
	URL string
}

// RecordQuery stores a submitted query in the history
type RecordQuery struct {
	Query string
	Sort  types.SortKey
}

// ForgetQuery removes a query from the history
type ForgetQuery struct {
	Query string
}

// Quit ends the host loop
type Quit struct{}

func (FetchSearch) effect()  {}
func (FetchDetail) effect()  {}
func (FetchSummary) effect() {}
func (CopyText) effect()     {}
func (OpenURL) effect()      {}
func (RecordQuery) effect()  {}
func (ForgetQuery) effect()  {}
func (Quit) effect()         {}
