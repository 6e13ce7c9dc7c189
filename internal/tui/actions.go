package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/history"
	"github.com/studiowebux/crateview/internal/version"
)

// swapped in tests
var (
	writeClipboard = clipboard.WriteAll
	openBrowser    = browser.OpenURL
)

func init() {
	// xdg-open output would land on the alt screen
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// runEffects turns reducer effects into commands
func (m *Model) runEffects(effects []engine.Effect) tea.Cmd {
	var cmds []tea.Cmd

	for _, effect := range effects {
		switch e := effect.(type) {
		case engine.FetchSearch, engine.FetchDetail, engine.FetchSummary:
			cmds = append(cmds, m.fetcher.Command(e))

		case engine.CopyText:
			cmds = append(cmds, copyText(e.Text))

		case engine.OpenURL:
			cmds = append(cmds, openURL(e.URL))

		case engine.RecordQuery:
			cmds = append(cmds, m.recordQuery(e))

		case engine.ForgetQuery:
			cmds = append(cmds, m.forgetQuery(e))

		case engine.Quit:
			m.quitting = true
			m.fetcher.Close()
			cmds = append(cmds, tea.Quit)

		default:
			m.logger.Warn("unhandled effect", "effect", fmt.Sprintf("%T", effect))
		}
	}

	return tea.Batch(cmds...)
}

func copyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg{err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return statusMsg{text: fmt.Sprintf("Copied %q to clipboard", text)}
	}
}

func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openBrowser(url); err != nil {
			return statusMsg{err: fmt.Errorf("failed to open %s: %w", url, err)}
		}
		return statusMsg{text: "Opened " + url}
	}
}

// recordQuery stores a submitted search. Failures are logged only.
func (m *Model) recordQuery(e engine.RecordQuery) tea.Cmd {
	if m.history == nil {
		return nil
	}
	h, logger := m.history, m.logger
	return func() tea.Msg {
		if err := h.Record(e.Query, e.Sort); err != nil {
			logger.Warn("failed to record query", "query", e.Query, "error", err)
		}
		return nil
	}
}

// forgetQuery deletes a query from the history
func (m *Model) forgetQuery(e engine.ForgetQuery) tea.Cmd {
	if m.history == nil {
		return nil
	}
	h := m.history
	return func() tea.Msg {
		if err := h.Delete(e.Query); err != nil {
			return statusMsg{err: fmt.Errorf("failed to forget %q: %w", e.Query, err)}
		}
		return statusMsg{text: fmt.Sprintf("Removed %q from history", e.Query)}
	}
}

// loadHistory feeds stored queries to the prompt suggestions
func (m *Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	h, logger := m.history, m.logger
	return func() tea.Msg {
		entries, err := h.Recent(0)
		if err != nil {
			logger.Warn("failed to load history", "error", err)
			return nil
		}
		return engine.HistoryLoaded{Queries: history.Queries(entries)}
	}
}

func (m *Model) checkForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	src, current, logger := m.updates, m.version, m.logger
	return func() tea.Msg {
		update, err := version.CheckForUpdate(context.Background(), src, current)
		if err != nil {
			logger.Debug("update check failed", "error", err)
			return nil
		}
		return updateCheckedMsg{update: update}
	}
}

// setStatus shows a transient message in the status bar
func (m *Model) setStatus(text string, err error) tea.Cmd {
	m.statusSeq++
	m.statusErr = err != nil
	m.statusMsg = text
	if err != nil {
		m.statusMsg = err.Error()
		m.logger.Warn("action failed", "error", err)
	}

	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
