package history

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/studiowebux/crateview/internal/types"
)

func newTestManager(t *testing.T, maxEntries int) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", DBFileName), maxEntries)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestManager(t, 0)

	for _, q := range []string{"serde", "tokio", "clap"} {
		if err := m.Record(q, types.SortRelevance); err != nil {
			t.Fatalf("Record(%q) error = %v", q, err)
		}
	}

	entries, err := m.Recent(0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if got, want := Queries(entries), []string{"clap", "tokio", "serde"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}

	limited, _ := m.Recent(2)
	if len(limited) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(limited))
	}
}

func TestRecordRepeatMovesToFront(t *testing.T) {
	m := newTestManager(t, 0)

	m.Record("serde", types.SortRelevance)
	m.Record("tokio", types.SortRelevance)
	m.Record("serde", types.SortDownloads)

	entries, _ := m.Recent(0)
	if got, want := Queries(entries), []string{"serde", "tokio"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Recent() = %v, want %v", got, want)
	}
	if entries[0].Count != 2 {
		t.Errorf("Count = %d, want 2", entries[0].Count)
	}
	if entries[0].Sort != types.SortDownloads {
		t.Errorf("Sort = %q, want the latest sort", entries[0].Sort)
	}
}

func TestRecordIgnoresBlank(t *testing.T) {
	m := newTestManager(t, 0)

	if err := m.Record("   ", types.SortRelevance); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if n, _ := m.GetCount(); n != 0 {
		t.Errorf("GetCount() = %d, want 0", n)
	}
}

func TestRecordTrimsOldest(t *testing.T) {
	m := newTestManager(t, 3)

	for _, q := range []string{"a", "b", "c", "d", "e"} {
		m.Record(q, types.SortRelevance)
	}

	entries, _ := m.Recent(0)
	if got, want := Queries(entries), []string{"e", "d", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}
}

func TestDeleteAndClear(t *testing.T) {
	m := newTestManager(t, 0)
	m.Record("serde", types.SortRelevance)
	m.Record("tokio", types.SortRelevance)

	if err := m.Delete("serde"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n, _ := m.GetCount(); n != 1 {
		t.Errorf("GetCount() after delete = %d, want 1", n)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n, _ := m.GetCount(); n != 0 {
		t.Errorf("GetCount() after clear = %d, want 0", n)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	m, err := NewManager(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	m.Record("serde", types.SortRelevance)
	m.Close()

	m, err = NewManager(path, 0)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer m.Close()

	entries, _ := m.Recent(0)
	if len(entries) != 1 || entries[0].Query != "serde" {
		t.Errorf("entries after reopen = %+v", entries)
	}
}
