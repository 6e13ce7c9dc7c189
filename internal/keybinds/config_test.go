package keybinds

import (
	"strings"
	"testing"

	"github.com/studiowebux/crateview/internal/mode"
)

func TestApplyConfig(t *testing.T) {
	r := NewDefaultRegistry()
	err := ApplyConfig(r, Config{
		ContextPicker: {
			"ctrl+d": "increment_page",
			"q":      Unbound,
		},
		ContextFor(mode.Search): {
			"ctrl+r": "toggle_sort_by:backward",
		},
	})
	if err != nil {
		t.Fatalf("ApplyConfig() error: %v", err)
	}

	if got, _ := r.Lookup(mode.PickerShowInfo, []string{"ctrl+d"}); got != Do(ActionIncrementPage) {
		t.Errorf("ctrl+d = %v, want increment_page", got)
	}
	if r.HasBinding(mode.PickerHideInfo, "q") {
		t.Error("q should be unbound")
	}
	if got, _ := r.Lookup(mode.Search, []string{"ctrl+r"}); got != ToggleSortBy(false, false) {
		t.Errorf("ctrl+r = %v, want toggle_sort_by:backward", got)
	}
}

func TestApplyConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"unknown context", Config{"sidebar": {"j": "scroll_down"}}, "unknown keybinding context"},
		{"empty chord", Config{ContextPicker: {"  ": "scroll_down"}}, "invalid chord"},
		{"bare modifier", Config{ContextPicker: {"ctrl+": "scroll_down"}}, "modifier without key"},
		{"unknown action", Config{ContextPicker: {"j": "jump"}}, "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyConfig(NewRegistry(), tt.config)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExportDefaultsRoundTrip(t *testing.T) {
	r, err := LoadOrDefault(ExportDefaults())
	if err != nil {
		t.Fatalf("LoadOrDefault(ExportDefaults()) error: %v", err)
	}

	defaults := NewDefaultRegistry()
	for _, k := range mode.Kinds {
		want := defaults.ListBindings(k)
		got := r.ListBindings(k)
		if len(got) != len(want) {
			t.Errorf("mode %s: %d bindings, want %d", k, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("mode %s binding %d = %v, want %v", k, i, got[i], want[i])
			}
		}
	}
}
