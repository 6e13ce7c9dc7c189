package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/fetch"
	"github.com/studiowebux/crateview/internal/history"
	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/version"
)

// Model represents the TUI state
type Model struct {
	state   engine.State
	startup []engine.Effect // fetches issued by engine.New, run by Init

	keys     *keybinds.Registry
	resolver *keybinds.Resolver
	chords   keybinds.Chords
	fetcher  *fetch.Coordinator
	history  *history.Manager // nil when history is disabled
	updates  version.Source   // nil skips the update check

	version string
	update  *version.Update

	input     textinput.Model
	popupView viewport.Model
	helpView  viewport.Model

	width  int
	height int
	rows   int // list height last handed to the engine

	tickInterval time.Duration
	statusMsg    string
	statusErr    bool
	statusSeq    int
	quitting     bool

	now    func() time.Time
	logger *log.Logger
}

// Messages
type (
	tickMsg         time.Time
	chordTimeoutMsg struct{ seq uint64 }
	statusMsg       struct {
		text string
		err  error
	}
	clearStatusMsg   struct{ seq int }
	updateCheckedMsg struct{ update version.Update }
)

// Init starts the first fetches, the render tick, the history load and
// the update check
func (m *Model) Init() tea.Cmd {
	startup := m.startup
	m.startup = nil
	return tea.Batch(
		m.runEffects(startup),
		m.tick(),
		m.loadHistory(),
		m.checkForUpdate(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chordTimeoutMsg:
		cmd = m.resolve(m.chords.Expire(m.resolver, msg.seq), nil)

	case tickMsg:
		m.state, _ = engine.Receive(m.state, engine.Tick{})
		cmd = m.tick()

	case statusMsg:
		cmd = m.setStatus(msg.text, msg.err)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusErr = false
		}

	case updateCheckedMsg:
		update := msg.update
		m.update = &update
		if update.Available {
			m.logger.Info("update available", "current", update.Current, "latest", update.Latest)
		}

	case engine.Event:
		cmd = m.receive(msg)
	}

	m.updateLayout()
	return m, cmd
}

// receive folds an engine event into the state. A chord typed in a mode
// the event left is dropped along with its pending wake.
func (m *Model) receive(ev engine.Event) tea.Cmd {
	state, effects := engine.Receive(m.state, ev)
	if state.Mode.Kind() != m.state.Mode.Kind() {
		m.chords.Reset()
	}
	m.state = state
	m.syncInput()
	return m.runEffects(effects)
}

// updateLayout sizes the viewports and tells the engine how many rows
// the list can show
func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.input.Width = max(m.width/3, 10)

	// border (2) and horizontal padding (4)
	w, h := m.modalSize()
	m.popupView.Width = w - 6
	m.popupView.Height = max(h-ModalOverheadLines-ModalFooterLines, 1)
	m.helpView.Width = w - 6
	m.helpView.Height = max(h-ModalOverheadLines-ModalFooterLines, 1)

	if rows := m.listRows(); rows != m.rows {
		m.rows = rows
		m.state, _ = engine.Receive(m.state, engine.Resized{Rows: rows})
	}
}

// screen is the main view under prompts and modals
func (m Model) screen() mode.Kind {
	k := m.state.Mode.Base()
	if k.IsInput() || k == mode.Help {
		k = m.state.Mode.Last()
	}
	if k.IsInput() || k == mode.Help {
		k = m.state.Mode.LastPicker()
	}
	return k
}

// bodyHeight is the space between the tab line and the prompt
func (m Model) bodyHeight() int {
	return max(m.height-TabLineHeight-PromptHeight-StatusBarHeight, 1)
}

// infoHeight is the info pane height including its border
func (m Model) infoHeight() int {
	return max(int(float64(m.bodyHeight())*InfoPaneRatio), InfoPaneMin)
}

// listRows is the number of crate rows that fit on screen
func (m Model) listRows() int {
	rows := m.bodyHeight() - HeaderHeight
	if m.screen() == mode.PickerShowInfo {
		rows -= m.infoHeight()
	}
	return max(rows, 1)
}

func (m Model) modalSize() (int, int) {
	w := min(max(m.width-ModalWidthMargin, ModalMinWidth), ModalMaxWidth)
	return min(w, m.width), max(m.height-ModalHeightMargin, ModalOverheadLines+ModalFooterLines+1)
}

// tick drives the spinner
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Cleanup cancels outstanding requests
func (m *Model) Cleanup() {
	if m.fetcher != nil {
		m.fetcher.Close()
	}
}
