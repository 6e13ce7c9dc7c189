package mode

// Machine holds the current mode plus the history needed for implicit
// transitions. It is a value type: every transition returns a new Machine and
// a flag telling whether anything changed.
type Machine struct {
	current    Mode
	last       Kind // previous non-popup kind, target of SwitchToLast
	lastPicker Kind // picker variant restored after a search
}

// NewMachine starts in PickerHideInfo
func NewMachine() Machine {
	return Machine{
		current:    Of(PickerHideInfo),
		last:       PickerHideInfo,
		lastPicker: PickerHideInfo,
	}
}

// Current returns the active mode
func (m Machine) Current() Mode {
	return m.current
}

// Kind returns the active mode's kind
func (m Machine) Kind() Kind {
	return m.current.kind
}

// Last returns the previous non-popup kind
func (m Machine) Last() Kind {
	return m.last
}

// LastPicker returns the picker variant most recently shown
func (m Machine) LastPicker() Kind {
	return m.lastPicker
}

// Base returns the non-popup kind underneath the current mode
func (m Machine) Base() Kind {
	if rt, ok := m.current.ReturnTo(); ok {
		return rt
	}
	return m.current.kind
}

// Switch moves to target. Switching to the active kind or to Popup is
// refused; popups are entered through OpenPopup.
func (m Machine) Switch(target Kind) (Machine, bool) {
	if target == Popup || target == m.current.kind {
		return m, false
	}
	if _, known := kindNames[target]; !known {
		return m, false
	}
	m.last = m.Base()
	m.current = Of(target)
	if target.IsPicker() {
		m.lastPicker = target
	}
	return m, true
}

// SwitchToLast returns to the previous non-popup kind
func (m Machine) SwitchToLast() (Machine, bool) {
	return m.Switch(m.last)
}

// OpenPopup enters Popup over the current mode. Opening a popup while one is
// shown keeps the original return mode so popups never stack.
func (m Machine) OpenPopup() Machine {
	m.current = Mode{kind: Popup, returnTo: m.Base()}
	return m
}

// ClosePopup restores the popup's return mode. Outside Popup it is a no-op
// and reports false.
func (m Machine) ClosePopup() (Machine, bool) {
	rt, ok := m.current.ReturnTo()
	if !ok {
		return m, false
	}
	m.current = Of(rt)
	return m, true
}
