// Package history keeps the queries submitted from the search prompt in a
// SQLite database in the data directory. The prompt offers them as
// suggestions and HistoryPrevious/HistoryNext step through them.
package history

import (
	"path/filepath"
	"time"

	"github.com/studiowebux/crateview/internal/types"
)

// DBFileName is the history database inside the data directory
const DBFileName = "history.db"

// Entry is one stored query
type Entry struct {
	ID         int64
	Query      string
	Sort       types.SortKey // sort in effect when the query was last submitted
	SearchedAt time.Time
	Count      int
}

// DefaultPath returns the database path for dataDir
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}

// Queries returns the query strings of entries, keeping their order
func Queries(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Query
	}
	return out
}
