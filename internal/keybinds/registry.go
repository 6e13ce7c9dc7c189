package keybinds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/studiowebux/crateview/internal/mode"
)

// Context is a binding table. Every mode has its own context; the picker
// variants also share ContextPicker, and every mode falls back to
// ContextGlobal.
type Context string

const (
	ContextGlobal Context = "global" // Available everywhere
	ContextPicker Context = "picker" // Both picker variants
)

// ContextFor returns the context owning bindings specific to k
func ContextFor(k mode.Kind) Context {
	return Context(k.String())
}

// Chain returns the contexts searched for k, most specific first
func Chain(k mode.Kind) []Context {
	if k.IsPicker() {
		return []Context{ContextFor(k), ContextPicker, ContextGlobal}
	}
	return []Context{ContextFor(k), ContextGlobal}
}

// Binding represents a keybinding mapping
type Binding struct {
	Chord   string
	Action  Action
	Context Context
}

// Registry is the key chord table: context -> chord -> action.
// Chords are stored in their canonical space separated form ("g g").
type Registry struct {
	bindings map[Context]map[string]Action
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register binds chord to action in context. chord is a space separated key
// sequence; it is normalized before storing.
func (r *Registry) Register(context Context, chord string, action Action) {
	key := JoinChord(SplitChord(chord))
	if key == "" {
		return
	}
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple chords for the same action
func (r *Registry) RegisterMultiple(context Context, chords []string, action Action) {
	for _, chord := range chords {
		r.Register(context, chord, action)
	}
}

// Unbind removes chord from context
func (r *Registry) Unbind(context Context, chord string) {
	if contextBindings, ok := r.bindings[context]; ok {
		delete(contextBindings, JoinChord(SplitChord(chord)))
	}
}

// Lookup returns the action bound to the exact sequence seq for mode k
func (r *Registry) Lookup(k mode.Kind, seq []string) (Action, bool) {
	key := JoinChord(seq)
	for _, context := range Chain(k) {
		if action, ok := r.bindings[context][key]; ok {
			return action, true
		}
	}
	return Action{}, false
}

// HasLongerPrefix reports whether some chord visible in mode k is strictly
// longer than seq and starts with it
func (r *Registry) HasLongerPrefix(k mode.Kind, seq []string) bool {
	prefix := JoinChord(seq) + " "
	for _, context := range Chain(k) {
		for chord := range r.bindings[context] {
			if strings.HasPrefix(chord, prefix) {
				return true
			}
		}
	}
	return false
}

// GetBinding returns the chords bound to an action for mode k, sorted
func (r *Registry) GetBinding(k mode.Kind, action Action) []string {
	var chords []string
	for _, b := range r.ListBindings(k) {
		if b.Action == action {
			chords = append(chords, b.Chord)
		}
	}
	return chords
}

// GetBindingString returns a human-readable string of chords bound to an action
func (r *Registry) GetBindingString(k mode.Kind, action Action) string {
	chords := r.GetBinding(k, action)
	if len(chords) == 0 {
		return "unbound"
	}
	return strings.Join(chords, ", ")
}

// ListBindings returns every binding reachable in mode k. A chord bound in
// a more specific context hides the same chord in the contexts after it.
func (r *Registry) ListBindings(k mode.Kind) []Binding {
	seen := make(map[string]bool)
	var bindings []Binding

	for _, context := range Chain(k) {
		for chord, action := range r.bindings[context] {
			if seen[chord] {
				continue
			}
			seen[chord] = true
			bindings = append(bindings, Binding{Chord: chord, Action: action, Context: context})
		}
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Action != bindings[j].Action {
			return bindings[i].Action.String() < bindings[j].Action.String()
		}
		return bindings[i].Chord < bindings[j].Chord
	})
	return bindings
}

// Contexts returns the contexts that have at least one binding, sorted
func (r *Registry) Contexts() []Context {
	contexts := make([]Context, 0, len(r.bindings))
	for context, b := range r.bindings {
		if len(b) > 0 {
			contexts = append(contexts, context)
		}
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })
	return contexts
}

// HasBinding checks if a chord is bound in mode k
func (r *Registry) HasBinding(k mode.Kind, chord string) bool {
	_, ok := r.Lookup(k, SplitChord(chord))
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	clone.Merge(r)
	return clone
}

// Merge combines bindings from another registry, with other taking precedence
func (r *Registry) Merge(other *Registry) {
	for context, contextBindings := range other.bindings {
		for chord, action := range contextBindings {
			r.Register(context, chord, action)
		}
	}
}

// SplitChord splits "g g" into normalized tokens
func SplitChord(chord string) []string {
	fields := strings.Fields(chord)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, NormalizeToken(f))
	}
	return tokens
}

// JoinChord is the inverse of SplitChord
func JoinChord(tokens []string) string {
	return strings.Join(tokens, " ")
}

// NormalizeToken maps a raw key name to the token used in chord tables.
// The space bar is spelled "space" so chords stay whitespace separated.
func NormalizeToken(key string) string {
	switch key {
	case " ":
		return "space"
	case "":
		return ""
	}
	return key
}

func (b Binding) String() string {
	return fmt.Sprintf("%s -> %s (%s)", b.Chord, b.Action, b.Context)
}
