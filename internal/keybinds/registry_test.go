package keybinds

import (
	"testing"

	"github.com/studiowebux/crateview/internal/mode"
)

func TestRegistryLookupChain(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", Do(ActionQuit))
	r.Register(ContextPicker, "q", Do(ActionQuit))
	r.Register(ContextFor(mode.PickerShowInfo), "q", Do(ActionToggleShowCrateInfo))

	tests := []struct {
		name   string
		mode   mode.Kind
		chord  string
		want   Action
		wantOK bool
	}{
		{"global from search", mode.Search, "ctrl+c", Do(ActionQuit), true},
		{"shared picker binding", mode.PickerHideInfo, "q", Do(ActionQuit), true},
		{"specific overrides shared", mode.PickerShowInfo, "q", Do(ActionToggleShowCrateInfo), true},
		{"picker binding not in search", mode.Search, "q", Action{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.mode, SplitChord(tt.chord))
			if ok != tt.wantOK {
				t.Fatalf("Lookup ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryNormalizesChords(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextPicker, "  g   g ", Do(ActionScrollTop))
	r.Register(ContextPicker, " ", Do(ActionQuit))

	if !r.HasBinding(mode.PickerHideInfo, "g g") {
		t.Error("expected \"g g\" to be bound")
	}
	if len(r.ListBindings(mode.PickerHideInfo)) != 1 {
		t.Errorf("whitespace-only chord was registered: %v", r.ListBindings(mode.PickerHideInfo))
	}
	if _, ok := r.Lookup(mode.PickerHideInfo, []string{NormalizeToken(" ")}); ok {
		t.Error("space token should be unbound")
	}
}

func TestRegistryHasLongerPrefix(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextPicker, "g g", Do(ActionScrollTop))
	r.Register(ContextPicker, "gx", Do(ActionQuit))

	tests := []struct {
		seq  []string
		want bool
	}{
		{[]string{"g"}, true},
		{[]string{"g", "g"}, false},
		{[]string{"x"}, false},
	}

	for _, tt := range tests {
		if got := r.HasLongerPrefix(mode.PickerShowInfo, tt.seq); got != tt.want {
			t.Errorf("HasLongerPrefix(%v) = %v, want %v", tt.seq, got, tt.want)
		}
	}
}

func TestRegistryListBindingsHidesShadowed(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "q", Do(ActionQuit))
	r.Register(ContextFor(mode.Help), "q", Do(ActionSwitchToLastMode))

	bindings := r.ListBindings(mode.Help)
	if len(bindings) != 1 {
		t.Fatalf("ListBindings returned %d bindings, want 1", len(bindings))
	}
	if bindings[0].Action != Do(ActionSwitchToLastMode) {
		t.Errorf("binding = %v, want switch_to_last_mode", bindings[0])
	}
}

func TestRegistryGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(mode.PickerHideInfo, Do(ActionScrollTop)); got != "g g, home" {
		t.Errorf("GetBindingString(scroll_top) = %q, want %q", got, "g g, home")
	}
	if got := r.GetBindingString(mode.Popup, Do(ActionCopyCommand)); got != "unbound" {
		t.Errorf("GetBindingString(copy_command) in popup = %q, want unbound", got)
	}
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Unbind(ContextPicker, "q")

	if !r.HasBinding(mode.PickerHideInfo, "q") {
		t.Error("Unbind on clone changed the original")
	}
	if clone.HasBinding(mode.PickerHideInfo, "q") {
		t.Error("Unbind on clone had no effect")
	}
}

func TestDefaultRegistryEveryModeCanLeave(t *testing.T) {
	r := NewDefaultRegistry()
	for _, k := range mode.Kinds {
		if len(r.ListBindings(k)) < 2 {
			t.Errorf("mode %s has fewer than two bindings", k)
		}
	}
	if !r.HasBinding(mode.Popup, "esc") {
		t.Error("popup cannot be closed with esc")
	}
}
