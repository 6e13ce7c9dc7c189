package keybinds

import (
	"strings"
	"testing"

	"github.com/studiowebux/crateview/internal/mode"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if _, ok := v.reservedKeys["ctrl+c"]; !ok {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	if len(v.inputModes) == 0 {
		t.Error("Expected input modes to be initialized")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextFor(mode.Search),
				Key:     "q",
				Message: "printable key cannot be typed in the prompt",
			},
			expected: "[conflict] q in context 'search': printable key cannot be typed in the prompt",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Key:     "",
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextPicker,
				Key:     "g",
				Message: "also starts a longer chord",
			},
			expected: "[warning] g in context 'picker': also starts a longer chord",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "errors and warnings",
			result: &ValidationResult{
				Errors:   []ValidationError{{Type: "conflict", Context: ContextGlobal, Key: "ctrl+c", Message: "reserved"}},
				Warnings: []ValidationError{{Type: "warning", Context: ContextPicker, Key: "g", Message: "waits"}},
			},
			contains: []string{"Errors (1):", "Warnings (1):", "ctrl+c", "waits"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestValidateDefaultRegistry(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default bindings have issues:\n%s", result.String())
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		wantErrors   int
		wantWarnings int
		wantKey      string
	}{
		{
			name:   "clean override",
			config: Config{ContextPicker: {"ctrl+d": "increment_page"}},
		},
		{
			name:       "reserved key rebound globally",
			config:     Config{ContextGlobal: {"ctrl+c": "reload_data"}},
			wantErrors: 1,
			wantKey:    "ctrl+c",
		},
		{
			name:         "reserved key rebound in a mode",
			config:       Config{ContextFor(mode.Help): {"ctrl+c": "switch_to_last_mode"}},
			wantWarnings: 1,
			wantKey:      "ctrl+c",
		},
		{
			name:         "chord overlap",
			config:       Config{ContextPicker: {"g": "switch_mode:help"}},
			wantWarnings: 1,
			wantKey:      "g",
		},
		{
			name:       "printable key in search",
			config:     Config{ContextFor(mode.Search): {"x": "submit_search"}},
			wantErrors: 1,
			wantKey:    "x",
		},
		{
			name:         "shadowing global",
			config:       Config{ContextGlobal: {"f1": "switch_mode:help"}, ContextFor(mode.Popup): {"f1": "close_popup"}},
			wantWarnings: 1,
			wantKey:      "f1",
		},
		{
			name:       "invalid action",
			config:     Config{ContextPicker: {"j": "nope"}},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)

			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %d, want %d:\n%s", len(result.Errors), tt.wantErrors, result.String())
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d:\n%s", len(result.Warnings), tt.wantWarnings, result.String())
			}

			if tt.wantKey == "" {
				return
			}
			issues := append(append([]ValidationError{}, result.Errors...), result.Warnings...)
			for _, issue := range issues {
				if issue.Key == tt.wantKey {
					return
				}
			}
			t.Errorf("no issue reported for key %q", tt.wantKey)
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"j", false},
		{"g g", false},
		{"ctrl+c", false},
		{"", true},
		{"alt+", true},
		{"g shift+", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	if err := ValidateAction("open_docs_url"); err != nil {
		t.Errorf("ValidateAction(open_docs_url) error: %v", err)
	}
	if err := ValidateAction(""); err == nil {
		t.Error("ValidateAction(\"\") expected error")
	}
}
