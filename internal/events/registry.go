// SPDX-License-Identifier: MIT
package events

import (
	"reflect"
	"slices"
	"sync"
)

// registry is an insertion-ordered set of observers keyed by identity. Pointer
// observers compare by address; value observers must be comparable.
type registry[O any] struct {
	mu      sync.Mutex
	members map[any]struct{}
	order   []O
}

// add registers o and reports whether it was not present. Nil, typed-nil and
// non-comparable observers are refused.
func (r *registry[O]) add(o O) bool {
	key := any(o)
	if !usable(key) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[key]; ok {
		return false
	}
	if r.members == nil {
		r.members = make(map[any]struct{})
	}
	r.members[key] = struct{}{}
	r.order = append(r.order, o)
	return true
}

// remove unregisters o and reports whether it was present.
func (r *registry[O]) remove(o O) bool {
	key := any(o)
	if !usable(key) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[key]; !ok {
		return false
	}
	delete(r.members, key)
	r.order = slices.DeleteFunc(r.order, func(m O) bool { return any(m) == key })
	return true
}

func (r *registry[O]) contains(o O) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[any(o)]
	return ok
}

// snapshot returns the members in insertion order.
func (r *registry[O]) snapshot() []O {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

func (r *registry[O]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func usable(o any) bool {
	if o == nil {
		return false
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	return v.Type().Comparable()
}
