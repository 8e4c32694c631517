// Package keymap maps key presses to command ids per UI context.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds the active bindings, defaults plus user overrides.
type Registry struct {
	byContext map[string][]Binding
	overrides map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byContext: make(map[string][]Binding),
		overrides: make(map[string]string),
	}
}

// RegisterDefaults adds DefaultBindings to r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.Register(b)
	}
}

// Register adds a binding. A later binding for the same key and context
// replaces the earlier one.
func (r *Registry) Register(b Binding) {
	b.Key = NormalizeKey(b.Key)
	list := r.byContext[b.Context]
	for i, existing := range list {
		if existing.Key == b.Key {
			list[i] = b
			return
		}
	}
	r.byContext[b.Context] = append(list, b)
}

// SetUserOverride binds key to command in every context that already
// defines command. It reports whether any context accepted the override.
func (r *Registry) SetUserOverride(k, command string) bool {
	k = NormalizeKey(k)
	applied := false
	for ctx, list := range r.byContext {
		for _, b := range list {
			if b.Command == command {
				r.Register(Binding{Key: k, Command: command, Context: ctx})
				applied = true
				break
			}
		}
	}
	if applied {
		r.overrides[k] = command
	}
	return applied
}

// Overrides returns the user overrides applied so far.
func (r *Registry) Overrides() map[string]string {
	out := make(map[string]string, len(r.overrides))
	for k, v := range r.overrides {
		out[k] = v
	}
	return out
}

// Lookup returns the command bound to k in context, falling back to the
// global context.
func (r *Registry) Lookup(context, k string) (string, bool) {
	k = NormalizeKey(k)
	for _, ctx := range []string{context, ContextGlobal} {
		for _, b := range r.byContext[ctx] {
			if b.Key == k {
				return b.Command, true
			}
		}
	}
	return "", false
}

// Handle resolves a key message in context.
func (r *Registry) Handle(msg tea.KeyMsg, context string) (string, bool) {
	return r.Lookup(context, msg.String())
}

// BindingsForContext returns the bindings of a context in registration
// order.
func (r *Registry) BindingsForContext(context string) []Binding {
	list := r.byContext[context]
	out := make([]Binding, len(list))
	copy(out, list)
	return out
}

// KeysForCommand returns the keys bound to command in context.
func (r *Registry) KeysForCommand(context, command string) []string {
	var keys []string
	for _, b := range r.byContext[context] {
		if b.Command == command {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// HelpBindings returns one help binding per command of context, in the
// order the commands were first registered.
func (r *Registry) HelpBindings(context string) []key.Binding {
	var order []string
	keys := make(map[string][]string)
	for _, b := range r.byContext[context] {
		if _, ok := keys[b.Command]; !ok {
			order = append(order, b.Command)
		}
		keys[b.Command] = append(keys[b.Command], b.Key)
	}

	out := make([]key.Binding, 0, len(order))
	for _, cmd := range order {
		out = append(out, key.NewBinding(
			key.WithKeys(keys[cmd]...),
			key.WithHelp(FormatKeys(keys[cmd]), CommandName(cmd)),
		))
	}
	return out
}

// IsTextContext reports whether context has a focused text input. Keys
// without a binding there are typed into the input.
func IsTextContext(context string) bool {
	switch context {
	case ContextRowEdit, ContextResourceEdit, ContextArchiveEdit, ContextLinkEditor, ContextNewCategory:
		return true
	}
	return false
}

// NormalizeKey maps user-facing key names onto tea.KeyMsg strings.
func NormalizeKey(k string) string {
	switch strings.ToLower(k) {
	case "space":
		return " "
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return k
}

// FormatKeys renders keys for display, e.g. "+/=" or "space".
func FormatKeys(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			k = "space"
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		case "left":
			k = "←"
		case "right":
			k = "→"
		}
		parts = append(parts, k)
	}
	return strings.Join(parts, "/")
}
