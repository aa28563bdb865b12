package keybinds

import (
	"maps"
	"slices"
	"strings"
)

// Binding is one key of the help listing
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// keymap maps a key string, as reported by tea.KeyMsg.String, to an action
type keymap map[string]Action

// keys returns the keys bound to action, sorted
func (km keymap) keys(action Action) []string {
	var out []string
	for k, a := range km {
		if a == action {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Registry resolves key presses per context. Keys not found in a context are
// looked up in ContextGlobal.
type Registry struct {
	bindings map[Context]keymap
}

func NewRegistry() *Registry {
	return &Registry{bindings: map[Context]keymap{}}
}

// Register binds key to action in context; a key holds one action per context
func (r *Registry) Register(context Context, key string, action Action) {
	km, ok := r.bindings[context]
	if !ok {
		km = keymap{}
		r.bindings[context] = km
	}
	km[key] = action
}

// RegisterMultiple binds every key in keys to action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, k := range keys {
		r.Register(context, k, action)
	}
}

// Unbind drops the keys of action in context
func (r *Registry) Unbind(context Context, action Action) {
	maps.DeleteFunc(r.bindings[context], func(_ string, a Action) bool {
		return a == action
	})
}

func (r *Registry) Match(context Context, key string) (Action, bool) {
	for _, ctx := range []Context{context, ContextGlobal} {
		if a, ok := r.bindings[ctx][key]; ok {
			return a, true
		}
	}
	return "", false
}

// GetBinding returns the sorted keys of action in context, or in
// ContextGlobal when the context has none
func (r *Registry) GetBinding(context Context, action Action) []string {
	if keys := r.bindings[context].keys(action); len(keys) > 0 {
		return keys
	}
	return r.bindings[ContextGlobal].keys(action)
}

// GetBindingString is GetBinding joined for display
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

// ListBindings returns the context's bindings then the global ones, by key
func (r *Registry) ListBindings(context Context) []Binding {
	contexts := []Context{context}
	if context != ContextGlobal {
		contexts = append(contexts, ContextGlobal)
	}

	var out []Binding
	for _, ctx := range contexts {
		km := r.bindings[ctx]
		for _, k := range slices.Sorted(maps.Keys(km)) {
			out = append(out, Binding{Key: k, Action: km[k], Context: ctx})
		}
	}
	return out
}

func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Clone returns an independent copy
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for ctx, km := range r.bindings {
		c.bindings[ctx] = maps.Clone(km)
	}
	return c
}
