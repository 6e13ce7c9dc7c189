package mode

import (
	"fmt"
	"strings"
)

// Kind identifies an interaction mode
type Kind int

const (
	PickerHideInfo Kind = iota // result list only
	PickerShowInfo             // result list with info pane
	Search                     // editing the search prompt
	Filter                     // editing the local filter
	Summary                    // registry front page
	Help                       // key binding reference
	Popup                      // modal message, carries a return mode
)

var kindNames = map[Kind]string{
	PickerHideInfo: "picker_hide_info",
	PickerShowInfo: "picker_show_info",
	Search:         "search",
	Filter:         "filter",
	Summary:        "summary",
	Help:           "help",
	Popup:          "popup",
}

// Kinds lists every mode in declaration order
var Kinds = []Kind{PickerHideInfo, PickerShowInfo, Search, Filter, Summary, Help, Popup}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(k))
}

// Title is the label shown in the status bar
func (k Kind) Title() string {
	switch k {
	case PickerHideInfo, PickerShowInfo:
		return "PICKER"
	case Search:
		return "SEARCH"
	case Filter:
		return "FILTER"
	case Summary:
		return "SUMMARY"
	case Help:
		return "HELP"
	case Popup:
		return "POPUP"
	}
	return "?"
}

// IsPicker reports whether k is one of the picker variants
func (k Kind) IsPicker() bool {
	return k == PickerHideInfo || k == PickerShowInfo
}

// IsInput reports whether k edits a text prompt
func (k Kind) IsInput() bool {
	return k == Search || k == Filter
}

// ParseKind converts a configuration name into a Kind
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Mode is the active mode. A popup stores the mode it returns to by value;
// for every other kind returnTo is unused.
type Mode struct {
	kind     Kind
	returnTo Kind
}

// Of returns the plain mode for k. Popup must be entered with OpenPopup.
func Of(k Kind) Mode {
	return Mode{kind: k}
}

// Kind returns the mode's kind
func (m Mode) Kind() Kind {
	return m.kind
}

// ReturnTo returns the mode restored when a popup closes
func (m Mode) ReturnTo() (Kind, bool) {
	if m.kind != Popup {
		return 0, false
	}
	return m.returnTo, true
}

func (m Mode) String() string {
	if m.kind == Popup {
		return fmt.Sprintf("popup(%s)", m.returnTo)
	}
	return m.kind.String()
}
