package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/studiowebux/crateview/internal/config"
	"github.com/studiowebux/crateview/internal/fetch"
	"github.com/studiowebux/crateview/internal/history"
	"github.com/studiowebux/crateview/internal/types"
)

// stubSource answers every search with one crate named after the query.
// The query "fail" returns an error.
type stubSource struct {
	mu          sync.Mutex
	searches    []types.SearchParams
	invalidated []string
}

func (s *stubSource) Search(ctx context.Context, p types.SearchParams) (types.Page, error) {
	s.mu.Lock()
	s.searches = append(s.searches, p)
	s.mu.Unlock()

	if p.Query == "fail" {
		return types.Page{}, errors.New("registry unavailable")
	}
	name := p.Query
	if name == "" {
		name = "serde"
	}
	return types.Page{Crates: []types.Crate{{Name: name, MaxVersion: "1.0.0"}}, Total: 1}, nil
}

func (s *stubSource) GetCrate(ctx context.Context, name string) (types.CrateDetail, error) {
	return types.CrateDetail{
		Crate:    types.Crate{Name: name, MaxVersion: "1.0.0", Description: name + " detail"},
		Versions: []types.Version{{Num: "1.0.0", Downloads: 10}, {Num: "0.9.0", Downloads: 5, Yanked: true}},
	}, nil
}

func (s *stubSource) InvalidateCrate(name string) {
	s.mu.Lock()
	s.invalidated = append(s.invalidated, name)
	s.mu.Unlock()
}

func (s *stubSource) Summary(ctx context.Context) (types.Summary, error) {
	return types.Summary{NumCrates: 3, NumDownloads: 1000, JustUpdated: []types.Crate{{Name: "axum"}}}, nil
}

// CreateTestModel creates a Model instance for testing with a stub registry
// and a history database in a temporary directory
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	h, err := history.NewManager(filepath.Join(t.TempDir(), history.DBFileName), 0)
	if err != nil {
		t.Fatalf("Failed to create history: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	cfg := config.Default()
	cfg.TickRate = 50
	cfg.ChordTimeout = 50 * time.Millisecond
	cfg.PageSize = 10

	m, err := New(Options{
		Config:       cfg,
		Source:       &stubSource{},
		History:      h,
		Version:      "test-version",
		FetchOptions: []fetch.Option{fetch.WithDebounce(0), fetch.WithLogger(log.New(io.Discard))},
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.logger = log.New(io.Discard)
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return &m
}

// runCmd executes cmd and every command batched inside it, returning the
// messages they produce
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// keyMsg builds the key event for a chord token
func keyMsg(key string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEscape,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"tab":       tea.KeyTab,
		"backspace": tea.KeyBackspace,
		"ctrl+c":    tea.KeyCtrlC,
		"ctrl+d":    tea.KeyCtrlD,
		"ctrl+j":    tea.KeyCtrlJ,
		"ctrl+k":    tea.KeyCtrlK,
	}
	if t, ok := special[key]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys in order and returns the command of the last one
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// deliver feeds messages back into the model, skipping render ticks
func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		if _, ok := msg.(tickMsg); ok {
			continue
		}
		m.Update(msg)
	}
}
