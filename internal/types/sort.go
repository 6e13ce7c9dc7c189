package types

import "fmt"

// SortKey is a registry search ordering
type SortKey string

const (
	SortAlphabetical    SortKey = "alpha"
	SortRelevance       SortKey = "relevance"
	SortDownloads       SortKey = "downloads"
	SortRecentDownloads SortKey = "recent-downloads"
	SortRecentUpdates   SortKey = "recent-updates"
	SortNewlyAdded      SortKey = "new"
)

// SortKeys is the fixed cycle order used by ToggleSortBy
var SortKeys = []SortKey{
	SortAlphabetical,
	SortRelevance,
	SortDownloads,
	SortRecentDownloads,
	SortRecentUpdates,
	SortNewlyAdded,
}

// Label returns the human readable name of the sort key
func (s SortKey) Label() string {
	switch s {
	case SortAlphabetical:
		return "Alphabetical"
	case SortRelevance:
		return "Relevance"
	case SortDownloads:
		return "All-Time Downloads"
	case SortRecentDownloads:
		return "Recent Downloads"
	case SortRecentUpdates:
		return "Recent Updates"
	case SortNewlyAdded:
		return "Newly Added"
	default:
		return string(s)
	}
}

// Next returns the following key in the cycle, wrapping around.
// Unknown keys restart the cycle at the first key.
func (s SortKey) Next() SortKey {
	return s.step(1)
}

// Prev returns the preceding key in the cycle, wrapping around
func (s SortKey) Prev() SortKey {
	return s.step(-1)
}

func (s SortKey) step(delta int) SortKey {
	for i, k := range SortKeys {
		if k == s {
			n := len(SortKeys)
			return SortKeys[((i+delta)%n+n)%n]
		}
	}
	return SortKeys[0]
}

// ParseSortKey validates a sort key read from configuration
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}
