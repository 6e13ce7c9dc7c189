/*
Package tui implements the terminal user interface for crateview.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern, but
owns very little state itself:
  - engine.State: modes, pages, selection, popup and fetch bookkeeping
  - keybinds.Chords: the pending chord buffer between key events
  - textinput.Model: cursor and editing for the search and filter prompts

Every key goes through the chord resolver; the resolved actions are folded
into engine.State by engine.Apply, and the effects it returns are turned
into tea.Cmd values here (fetches, clipboard, browser, history).

# Key Components

  - model.go: Model struct and Update loop
  - keys.go: chord resolution and prompt input
  - actions.go: effect runner and background commands
  - render.go: View rendering for the picker, summary and status bar
  - help.go: the key binding reference
  - popup.go: modal messages and record inspection

# Threading Model

Update and View run on Bubble Tea's event loop. Registry requests run in
tea.Cmd goroutines owned by the fetch coordinator, which cancels requests
that a newer one of the same kind supersedes. Their completions come back
as engine events and are dropped by the reducer when stale.
*/
package tui
