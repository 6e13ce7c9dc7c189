package keybinds

import (
	"fmt"

	"github.com/studiowebux/crateview/internal/mode"
)

// Unbound removes a default binding when used as an action in Config
const Unbound = "unbound"

// Config is the user's keybinding section: context -> chord -> action.
//
//	key_bindings:
//	  picker:
//	    "g g": scroll_top
//	    "x": unbound
//	  search:
//	    "ctrl+s": toggle_sort_by:forward
type Config map[Context]map[string]string

// KnownContexts lists every context accepted in Config
func KnownContexts() []Context {
	contexts := []Context{ContextGlobal, ContextPicker}
	for _, k := range mode.Kinds {
		contexts = append(contexts, ContextFor(k))
	}
	return contexts
}

func isKnownContext(c Context) bool {
	for _, known := range KnownContexts() {
		if c == known {
			return true
		}
	}
	return false
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings.
func ApplyConfig(registry *Registry, config Config) error {
	for context, bindings := range config {
		if !isKnownContext(context) {
			return fmt.Errorf("unknown keybinding context %q", context)
		}

		for chord, actionStr := range bindings {
			if err := ValidateKey(chord); err != nil {
				return fmt.Errorf("invalid chord %q in context %q: %w", chord, context, err)
			}

			if actionStr == Unbound {
				registry.Unbind(context, chord)
				continue
			}

			action, err := ParseAction(actionStr)
			if err != nil {
				return fmt.Errorf("invalid action for %q in context %q: %w", chord, context, err)
			}
			registry.Register(context, chord, action)
		}
	}

	return nil
}

// LoadOrDefault returns the default registry with config applied over it
func LoadOrDefault(config Config) (*Registry, error) {
	registry := NewDefaultRegistry()
	if len(config) == 0 {
		return registry, nil
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportConfig converts a registry back into the Config form
func ExportConfig(registry *Registry) Config {
	config := make(Config)
	for context, bindings := range registry.bindings {
		if len(bindings) == 0 {
			continue
		}
		section := make(map[string]string, len(bindings))
		for chord, action := range bindings {
			section[chord] = action.String()
		}
		config[context] = section
	}
	return config
}

// ExportDefaults exports the default keybindings as a config section
func ExportDefaults() Config {
	return ExportConfig(NewDefaultRegistry())
}
