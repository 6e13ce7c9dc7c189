package keybinds

import (
	"fmt"
	"strings"

	"github.com/studiowebux/crateview/internal/mode"
)

// Name identifies the kind of an action
type Name string

const (
	// Lifecycle
	ActionIgnore Name = "ignore" // Do nothing
	ActionQuit   Name = "quit"   // Ask the host to exit

	// Result list navigation
	ActionScrollUp       Name = "scroll_up"        // Select previous row
	ActionScrollDown     Name = "scroll_down"      // Select next row
	ActionScrollTop      Name = "scroll_top"       // Select first row
	ActionScrollBottom   Name = "scroll_bottom"    // Select last row
	ActionScrollInfoUp   Name = "scroll_info_up"   // Scroll info pane up
	ActionScrollInfoDown Name = "scroll_info_down" // Scroll info pane down

	// Paging and ordering
	ActionIncrementPage Name = "increment_page" // Fetch the next page
	ActionDecrementPage Name = "decrement_page" // Fetch the previous page
	ActionToggleSortBy  Name = "toggle_sort_by" // Cycle the sort key
	ActionReloadData    Name = "reload_data"    // Re-issue the current search

	// Modes
	ActionSwitchMode          Name = "switch_mode"            // Enter a mode
	ActionSwitchToLastMode    Name = "switch_to_last_mode"    // Return to the previous mode
	ActionClosePopup          Name = "close_popup"            // Dismiss the popup
	ActionToggleShowCrateInfo Name = "toggle_show_crate_info" // Show or hide the info pane
	ActionNextTab             Name = "next_tab"               // Picker -> Summary
	ActionPreviousTab         Name = "previous_tab"           // Summary -> Picker
	ActionNextSummaryMode     Name = "next_summary_mode"      // Next summary section
	ActionPreviousSummaryMode Name = "previous_summary_mode"  // Previous summary section

	// Search prompt
	ActionSubmitSearch    Name = "submit_search"    // Run the typed query
	ActionHistoryPrevious Name = "history_previous" // Recall an older query
	ActionHistoryNext     Name = "history_next"     // Recall a newer query
	ActionForgetQuery     Name = "forget_query"     // Drop a query from the history

	// Selected crate
	ActionCopyCommand     Name = "copy_command"      // Copy the install command
	ActionOpenDocsURL     Name = "open_docs_url"     // Open documentation in a browser
	ActionOpenRegistryURL Name = "open_registry_url" // Open the registry page in a browser
	ActionInspectRecord   Name = "inspect_record"    // Show the raw record
)

// Action is a resolved, mode-agnostic command. Target is only meaningful
// for switch_mode, Reload and Forward only for toggle_sort_by.
type Action struct {
	Name    Name
	Target  mode.Kind
	Reload  bool
	Forward bool
}

// Ignore is the action that changes nothing
var Ignore = Action{Name: ActionIgnore}

// Do returns a parameterless action
func Do(name Name) Action {
	return Action{Name: name}
}

// SwitchMode returns an action entering target
func SwitchMode(target mode.Kind) Action {
	return Action{Name: ActionSwitchMode, Target: target}
}

// ToggleSortBy returns a sort cycling action
func ToggleSortBy(reload, forward bool) Action {
	return Action{Name: ActionToggleSortBy, Reload: reload, Forward: forward}
}

// String renders the action in the form accepted by ParseAction
func (a Action) String() string {
	switch a.Name {
	case ActionSwitchMode:
		return fmt.Sprintf("%s:%s", a.Name, a.Target)
	case ActionToggleSortBy:
		dir := "backward"
		if a.Forward {
			dir = "forward"
		}
		if a.Reload {
			return fmt.Sprintf("%s:%s,reload", a.Name, dir)
		}
		return fmt.Sprintf("%s:%s", a.Name, dir)
	}
	return string(a.Name)
}

// ParseAction parses "name" or "name:args".
//
//	scroll_top
//	switch_mode:search
//	toggle_sort_by:forward,reload
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Action{}, fmt.Errorf("action cannot be empty")
	}

	name, args, hasArgs := strings.Cut(s, ":")
	a := Action{Name: Name(name)}

	if _, known := actionInfos[a.Name]; !known {
		return Action{}, fmt.Errorf("unknown action %q", name)
	}

	switch a.Name {
	case ActionSwitchMode:
		if !hasArgs {
			return Action{}, fmt.Errorf("%s requires a target mode", name)
		}
		target, err := mode.ParseKind(args)
		if err != nil {
			return Action{}, err
		}
		if target == mode.Popup {
			return Action{}, fmt.Errorf("%s cannot target popup", name)
		}
		a.Target = target
	case ActionToggleSortBy:
		a.Forward = true
		if !hasArgs {
			return a, nil
		}
		for _, opt := range strings.Split(args, ",") {
			switch strings.TrimSpace(opt) {
			case "forward":
				a.Forward = true
			case "backward":
				a.Forward = false
			case "reload":
				a.Reload = true
			default:
				return Action{}, fmt.Errorf("unknown %s option %q", name, opt)
			}
		}
	default:
		if hasArgs {
			return Action{}, fmt.Errorf("%s takes no arguments", name)
		}
	}

	return a, nil
}

// ActionInfo provides metadata about an action
type ActionInfo struct {
	Name        Name
	Description string
	Category    string
}

var actionInfos = map[Name]ActionInfo{
	ActionIgnore: {ActionIgnore, "Do nothing", "General"},
	ActionQuit:   {ActionQuit, "Quit", "General"},

	ActionScrollUp:       {ActionScrollUp, "Previous crate", "Navigation"},
	ActionScrollDown:     {ActionScrollDown, "Next crate", "Navigation"},
	ActionScrollTop:      {ActionScrollTop, "First crate", "Navigation"},
	ActionScrollBottom:   {ActionScrollBottom, "Last crate", "Navigation"},
	ActionScrollInfoUp:   {ActionScrollInfoUp, "Scroll info up", "Navigation"},
	ActionScrollInfoDown: {ActionScrollInfoDown, "Scroll info down", "Navigation"},

	ActionIncrementPage: {ActionIncrementPage, "Next page", "Results"},
	ActionDecrementPage: {ActionDecrementPage, "Previous page", "Results"},
	ActionToggleSortBy:  {ActionToggleSortBy, "Change sort order", "Results"},
	ActionReloadData:    {ActionReloadData, "Reload results", "Results"},

	ActionSwitchMode:          {ActionSwitchMode, "Switch mode", "Modes"},
	ActionSwitchToLastMode:    {ActionSwitchToLastMode, "Back", "Modes"},
	ActionClosePopup:          {ActionClosePopup, "Close popup", "Modes"},
	ActionToggleShowCrateInfo: {ActionToggleShowCrateInfo, "Toggle info pane", "Modes"},
	ActionNextTab:             {ActionNextTab, "Next tab", "Modes"},
	ActionPreviousTab:         {ActionPreviousTab, "Previous tab", "Modes"},
	ActionNextSummaryMode:     {ActionNextSummaryMode, "Next summary section", "Modes"},
	ActionPreviousSummaryMode: {ActionPreviousSummaryMode, "Previous summary section", "Modes"},

	ActionSubmitSearch:    {ActionSubmitSearch, "Search", "Search"},
	ActionHistoryPrevious: {ActionHistoryPrevious, "Older query", "Search"},
	ActionHistoryNext:     {ActionHistoryNext, "Newer query", "Search"},
	ActionForgetQuery:     {ActionForgetQuery, "Forget query", "Search"},

	ActionCopyCommand:     {ActionCopyCommand, "Copy install command", "Crate"},
	ActionOpenDocsURL:     {ActionOpenDocsURL, "Open documentation", "Crate"},
	ActionOpenRegistryURL: {ActionOpenRegistryURL, "Open registry page", "Crate"},
	ActionInspectRecord:   {ActionInspectRecord, "Inspect raw record", "Crate"},
}

// GetActionInfo returns metadata for an action
func GetActionInfo(name Name) (ActionInfo, bool) {
	info, ok := actionInfos[name]
	return info, ok
}

// Describe returns a help line description for a resolved action
func Describe(a Action) string {
	switch a.Name {
	case ActionSwitchMode:
		return "Go to " + a.Target.Title()
	case ActionToggleSortBy:
		desc := "Next sort order"
		if !a.Forward {
			desc = "Previous sort order"
		}
		if !a.Reload {
			desc += " (on submit)"
		}
		return desc
	}
	if info, ok := actionInfos[a.Name]; ok {
		return info.Description
	}
	return string(a.Name)
}
