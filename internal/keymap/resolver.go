package keymap

import (
	"fmt"
	"strings"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action
}

// NewResolver creates a resolver from bindings. Later bindings win when a
// key appears twice.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	var keys []string
	for _, b := range r.bindings {
		if b.Action == action {
			keys = append(keys, b.Keys...)
		}
	}
	return keys
}

// Help renders "key desc" pairs for the given actions, using each action's
// first key.
func (r *Resolver) Help(actions ...Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		for _, b := range r.bindings {
			if b.Action == a && len(b.Keys) > 0 {
				parts = append(parts, fmt.Sprintf("%s %s", displayKey(b.Keys[0]), strings.ToLower(b.Description)))
				break
			}
		}
	}
	return strings.Join(parts, " · ")
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
