package mode

import "testing"

func TestNewMachine(t *testing.T) {
	m := NewMachine()
	if m.Kind() != PickerHideInfo {
		t.Errorf("initial kind = %v, want %v", m.Kind(), PickerHideInfo)
	}
}

func TestSwitch(t *testing.T) {
	tests := []struct {
		name        string
		from        Kind
		target      Kind
		wantKind    Kind
		wantChanged bool
	}{
		{"picker to search", PickerHideInfo, Search, Search, true},
		{"search to filter", Search, Filter, Filter, true},
		{"same kind", Summary, Summary, Summary, false},
		{"popup refused", PickerShowInfo, Popup, PickerShowInfo, false},
		{"unknown refused", Help, Kind(42), Help, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m, _ = m.Switch(tt.from)

			got, changed := m.Switch(tt.target)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got.Kind(), tt.wantKind)
			}
		})
	}
}

func TestSwitchTracksLastPicker(t *testing.T) {
	m := NewMachine()
	m, _ = m.Switch(PickerShowInfo)
	m, _ = m.Switch(Search)
	m, _ = m.Switch(Filter)

	if m.LastPicker() != PickerShowInfo {
		t.Errorf("LastPicker() = %v, want %v", m.LastPicker(), PickerShowInfo)
	}
	if m.Last() != Search {
		t.Errorf("Last() = %v, want %v", m.Last(), Search)
	}
}

func TestSwitchToLast(t *testing.T) {
	m := NewMachine()
	m, _ = m.Switch(Help)

	m, changed := m.SwitchToLast()
	if !changed || m.Kind() != PickerHideInfo {
		t.Fatalf("SwitchToLast() = %v (changed %v), want %v", m.Kind(), changed, PickerHideInfo)
	}

	m, _ = m.SwitchToLast()
	if m.Kind() != Help {
		t.Errorf("second SwitchToLast() = %v, want %v", m.Kind(), Help)
	}
}

func TestPopupStoresReturnMode(t *testing.T) {
	m := NewMachine()
	m, _ = m.Switch(Summary)
	m = m.OpenPopup()

	if m.Kind() != Popup {
		t.Fatalf("Kind() = %v, want %v", m.Kind(), Popup)
	}
	rt, ok := m.Current().ReturnTo()
	if !ok || rt != Summary {
		t.Errorf("ReturnTo() = %v, %v; want %v, true", rt, ok, Summary)
	}

	m, closed := m.ClosePopup()
	if !closed || m.Kind() != Summary {
		t.Errorf("ClosePopup() = %v (closed %v), want %v", m.Kind(), closed, Summary)
	}
}

func TestPopupsDoNotStack(t *testing.T) {
	m := NewMachine()
	m, _ = m.Switch(PickerShowInfo)
	m = m.OpenPopup()
	m = m.OpenPopup()

	m, _ = m.ClosePopup()
	if m.Kind() != PickerShowInfo {
		t.Errorf("after one close Kind() = %v, want %v", m.Kind(), PickerShowInfo)
	}
}

func TestClosePopupOutsidePopup(t *testing.T) {
	m := NewMachine()
	got, closed := m.ClosePopup()
	if closed {
		t.Error("ClosePopup() outside popup reported a change")
	}
	if got != m {
		t.Errorf("ClosePopup() mutated machine: %+v", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseKind("visual"); err == nil {
		t.Error("ParseKind(visual) expected error")
	}
}
