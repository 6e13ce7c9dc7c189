package types

import "testing"

func TestSortKeyCycle(t *testing.T) {
	tests := []struct {
		name string
		from SortKey
		next SortKey
		prev SortKey
	}{
		{"alphabetical", SortAlphabetical, SortRelevance, SortNewlyAdded},
		{"relevance", SortRelevance, SortDownloads, SortAlphabetical},
		{"newly added wraps", SortNewlyAdded, SortAlphabetical, SortRecentUpdates},
		{"unknown restarts", SortKey("bogus"), SortAlphabetical, SortAlphabetical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Next(); got != tt.next {
				t.Errorf("Next() = %q, want %q", got, tt.next)
			}
			if got := tt.from.Prev(); got != tt.prev {
				t.Errorf("Prev() = %q, want %q", got, tt.prev)
			}
		})
	}
}

func TestSortKeyFullCycle(t *testing.T) {
	k := SortAlphabetical
	for range SortKeys {
		k = k.Next()
	}
	if k != SortAlphabetical {
		t.Errorf("after full cycle got %q, want %q", k, SortAlphabetical)
	}
}

func TestParseSortKey(t *testing.T) {
	if _, err := ParseSortKey("downloads"); err != nil {
		t.Errorf("ParseSortKey(downloads) unexpected error: %v", err)
	}
	if _, err := ParseSortKey("size"); err == nil {
		t.Error("ParseSortKey(size) expected error")
	}
}
