package keybinds

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/studiowebux/crateview/internal/mode"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys maps keys that must keep their action in the global context
	reservedKeys map[string]Action

	// inputModes are modes whose unbound printable keys feed a text prompt
	inputModes []mode.Kind
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": Do(ActionQuit), // Quit should always work
		},
		inputModes: []mode.Kind{mode.Search, mode.Filter},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkReservedKeys(registry, result)
	v.checkPrefixOverlap(registry, result)
	v.checkInputModes(registry, result)
	v.checkShadowing(registry, result)

	sortIssues(result.Errors)
	sortIssues(result.Warnings)
	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(config Config) *ValidationResult {
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{
				Type:    "invalid",
				Message: err.Error(),
			}},
		}
	}
	return v.ValidateRegistry(registry)
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for key, want := range v.reservedKeys {
		if got, ok := registry.bindings[ContextGlobal][key]; !ok || got != want {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "conflict",
				Context: ContextGlobal,
				Key:     key,
				Message: fmt.Sprintf("reserved key must stay bound to %s", want),
			})
		}

		for context, bindings := range registry.bindings {
			if context == ContextGlobal {
				continue
			}
			if got, ok := bindings[key]; ok && got != want {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkPrefixOverlap warns about chords that are also the start of a longer
// chord in the same mode. They fire only after the chord timeout.
func (v *Validator) checkPrefixOverlap(registry *Registry, result *ValidationResult) {
	for _, k := range mode.Kinds {
		for _, b := range registry.ListBindings(k) {
			if b.Context != ContextFor(k) && b.Context != ContextPicker {
				continue
			}
			if k == mode.PickerShowInfo && b.Context == ContextPicker {
				continue // reported once under picker_hide_info
			}
			if registry.HasLongerPrefix(k, SplitChord(b.Chord)) {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: b.Context,
					Key:     b.Chord,
					Message: "also starts a longer chord; fires after the chord timeout",
				})
			}
		}
	}
}

// checkInputModes rejects single printable keys in text prompts, which
// would make those characters impossible to type
func (v *Validator) checkInputModes(registry *Registry, result *ValidationResult) {
	for _, k := range v.inputModes {
		context := ContextFor(k)
		for chord := range registry.bindings[context] {
			tokens := SplitChord(chord)
			if isPrintable(tokens[0]) {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     chord,
					Message: "printable key cannot be typed in the prompt",
				})
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}

		for key, action := range bindings {
			if _, reserved := v.reservedKeys[key]; reserved {
				continue
			}
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

func sortIssues(issues []ValidationError) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Context != issues[j].Context {
			return issues[i].Context < issues[j].Context
		}
		return issues[i].Key < issues[j].Key
	})
}

// isPrintable reports whether token is a single visible character
func isPrintable(token string) bool {
	return utf8.RuneCountInString(token) == 1 || token == "space"
}

// ValidateKey checks if a chord string is valid
func ValidateKey(chord string) error {
	tokens := SplitChord(chord)
	if len(tokens) == 0 {
		return fmt.Errorf("key cannot be empty")
	}

	validModifiers := []string{"ctrl+", "alt+", "shift+", "super+"}
	for _, token := range tokens {
		for _, mod := range validModifiers {
			if token == mod {
				return fmt.Errorf("modifier without key: %s", token)
			}
		}
	}

	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	_, err := ParseAction(actionStr)
	return err
}
