package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/mode"
)

// handleKeyPress feeds a key to the chord buffer of the current mode. When
// the key settles a waiting chord whose action changes the mode, the key is
// resolved again against the new mode's bindings.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := keybinds.NormalizeToken(msg.String())
	before := m.state.Mode.Kind()
	res := m.chords.Feed(m.resolver, before, key, m.now())
	if res.Flushed == 0 {
		return m.resolve(res, &msg)
	}

	var cmds []tea.Cmd
	for _, action := range res.Actions[:res.Flushed] {
		cmds = append(cmds, m.apply(action))
	}
	res.Actions = res.Actions[res.Flushed:]
	res.Flushed = 0

	if k := m.state.Mode.Kind(); k != before {
		res = m.chords.Feed(m.resolver, k, key, m.now())
	}
	return tea.Batch(append(cmds, m.resolve(res, &msg))...)
}

// resolve applies the actions of a resolution in order. A key that matched
// nothing is typed into the prompt when one is open. key is nil for
// timeout wakes.
func (m *Model) resolve(res keybinds.Resolution, key *tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd

	for _, action := range res.Actions {
		cmds = append(cmds, m.apply(action))
	}

	if res.Stray && key != nil && m.state.Mode.Kind().IsInput() {
		cmds = append(cmds, m.editInput(*key))
	}

	if res.Outcome == keybinds.Pending {
		cmds = append(cmds, m.chordTimeout())
	}

	return tea.Batch(cmds...)
}

// apply dispatches one action
func (m *Model) apply(action keybinds.Action) tea.Cmd {
	state, effects, ok := engine.Apply(m.state, action)
	if !ok {
		m.logger.Debug("action ignored", "action", action.String(), "mode", m.state.Mode.Kind())
		return nil
	}
	m.state = state
	m.syncInput()
	return m.runEffects(effects)
}

// editInput passes a key to the text input and reports the new text
func (m *Model) editInput(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if text := m.input.Value(); text != before {
		return tea.Batch(cmd, m.receive(engine.InputChanged{Text: text}))
	}
	return cmd
}

// syncInput mirrors the prompt the engine owns into the text input
func (m *Model) syncInput() {
	var text string
	switch m.state.Mode.Kind() {
	case mode.Search:
		text = m.state.Input
	case mode.Filter:
		text = m.state.Page.Filter()
	default:
		m.input.Blur()
		return
	}

	if m.input.Value() != text {
		m.input.SetValue(text)
		m.input.CursorEnd()
	}
	m.input.Focus()
}

// chordTimeout wakes the resolver when a partial chord has waited too long
func (m *Model) chordTimeout() tea.Cmd {
	timeout := m.resolver.Timeout()
	if timeout <= 0 {
		return nil
	}
	seq := m.chords.Seq()
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return chordTimeoutMsg{seq: seq}
	})
}
