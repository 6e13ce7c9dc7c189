package keybinds

import "github.com/studiowebux/crateview/internal/mode"

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerPickerBindings(r)
	registerSearchBindings(r)
	registerFilterBindings(r)
	registerSummaryBindings(r)
	registerHelpBindings(r)
	registerPopupBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", Do(ActionQuit))
}

// registerPickerBindings sets up the result list, shared by both picker variants
func registerPickerBindings(r *Registry) {
	r.Register(ContextPicker, "q", Do(ActionQuit))
	r.Register(ContextPicker, "?", SwitchMode(mode.Help))
	r.Register(ContextPicker, "/", SwitchMode(mode.Search))
	r.Register(ContextPicker, "f", SwitchMode(mode.Filter))
	r.RegisterMultiple(ContextPicker, []string{"tab", "shift+tab"}, Do(ActionNextTab))

	r.RegisterMultiple(ContextPicker, []string{"up", "k"}, Do(ActionScrollUp))
	r.RegisterMultiple(ContextPicker, []string{"down", "j"}, Do(ActionScrollDown))
	r.RegisterMultiple(ContextPicker, []string{"g g", "home"}, Do(ActionScrollTop))
	r.RegisterMultiple(ContextPicker, []string{"G", "end"}, Do(ActionScrollBottom))
	r.Register(ContextPicker, "ctrl+k", Do(ActionScrollInfoUp))
	r.Register(ContextPicker, "ctrl+j", Do(ActionScrollInfoDown))

	r.RegisterMultiple(ContextPicker, []string{"right", "l", "pgdown"}, Do(ActionIncrementPage))
	r.RegisterMultiple(ContextPicker, []string{"left", "h", "pgup"}, Do(ActionDecrementPage))
	r.Register(ContextPicker, "s", ToggleSortBy(true, true))
	r.Register(ContextPicker, "S", ToggleSortBy(true, false))
	r.Register(ContextPicker, "r", Do(ActionReloadData))

	r.Register(ContextPicker, "enter", Do(ActionToggleShowCrateInfo))
	r.Register(ContextPicker, "c", Do(ActionCopyCommand))
	r.Register(ContextPicker, "d", Do(ActionOpenDocsURL))
	r.Register(ContextPicker, "o", Do(ActionOpenRegistryURL))
	r.Register(ContextPicker, "i", Do(ActionInspectRecord))

	r.Register(ContextFor(mode.PickerShowInfo), "esc", SwitchMode(mode.PickerHideInfo))
}

// registerSearchBindings sets up the search prompt. Printable keys stay
// unbound so they reach the text input.
func registerSearchBindings(r *Registry) {
	c := ContextFor(mode.Search)
	r.Register(c, "enter", Do(ActionSubmitSearch))
	r.Register(c, "esc", Do(ActionSwitchToLastMode))
	r.Register(c, "ctrl+s", ToggleSortBy(false, true))
	r.Register(c, "alt+s", ToggleSortBy(false, false))
	r.RegisterMultiple(c, []string{"up", "ctrl+p"}, Do(ActionHistoryPrevious))
	r.RegisterMultiple(c, []string{"down", "ctrl+n"}, Do(ActionHistoryNext))
	r.Register(c, "ctrl+d", Do(ActionForgetQuery))
	r.Register(c, "ctrl+k", Do(ActionScrollUp))
	r.Register(c, "ctrl+j", Do(ActionScrollDown))
}

// registerFilterBindings sets up the local filter prompt
func registerFilterBindings(r *Registry) {
	c := ContextFor(mode.Filter)
	r.RegisterMultiple(c, []string{"enter", "esc"}, Do(ActionSwitchToLastMode))
	r.RegisterMultiple(c, []string{"up", "ctrl+p"}, Do(ActionScrollUp))
	r.RegisterMultiple(c, []string{"down", "ctrl+n"}, Do(ActionScrollDown))
}

// registerSummaryBindings sets up the registry front page
func registerSummaryBindings(r *Registry) {
	c := ContextFor(mode.Summary)
	r.Register(c, "q", Do(ActionQuit))
	r.Register(c, "?", SwitchMode(mode.Help))
	r.Register(c, "/", SwitchMode(mode.Search))
	r.RegisterMultiple(c, []string{"esc", "tab", "shift+tab"}, Do(ActionPreviousTab))
	r.RegisterMultiple(c, []string{"up", "k"}, Do(ActionScrollUp))
	r.RegisterMultiple(c, []string{"down", "j"}, Do(ActionScrollDown))
	r.RegisterMultiple(c, []string{"g g", "home"}, Do(ActionScrollTop))
	r.RegisterMultiple(c, []string{"G", "end"}, Do(ActionScrollBottom))
	r.RegisterMultiple(c, []string{"right", "l"}, Do(ActionNextSummaryMode))
	r.RegisterMultiple(c, []string{"left", "h"}, Do(ActionPreviousSummaryMode))
	r.Register(c, "enter", Do(ActionSubmitSearch))
	r.Register(c, "r", Do(ActionReloadData))
}

// registerHelpBindings sets up the help screen
func registerHelpBindings(r *Registry) {
	c := ContextFor(mode.Help)
	r.RegisterMultiple(c, []string{"esc", "q", "?"}, Do(ActionSwitchToLastMode))
	r.RegisterMultiple(c, []string{"up", "k"}, Do(ActionScrollUp))
	r.RegisterMultiple(c, []string{"down", "j"}, Do(ActionScrollDown))
	r.RegisterMultiple(c, []string{"g g", "home"}, Do(ActionScrollTop))
	r.RegisterMultiple(c, []string{"G", "end"}, Do(ActionScrollBottom))
}

// registerPopupBindings sets up modal messages
func registerPopupBindings(r *Registry) {
	c := ContextFor(mode.Popup)
	r.RegisterMultiple(c, []string{"esc", "enter", "q"}, Do(ActionClosePopup))
	r.RegisterMultiple(c, []string{"up", "k"}, Do(ActionScrollUp))
	r.RegisterMultiple(c, []string{"down", "j"}, Do(ActionScrollDown))
}
