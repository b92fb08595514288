/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package update

import "sort"

// Change is either Unchanged or Set(value). The zero value is Unchanged.
// Set(nil) writes an explicit NULL and is not the same as Unchanged.
type Change struct {
	set   bool
	value any
}

// Unchanged leaves the attribute as stored.
var Unchanged = Change{}

// Set replaces the attribute with v.
func Set(v any) Change {
	return Change{set: true, value: v}
}

// IsSet reports whether c carries a new value.
func (c Change) IsSet() bool {
	return c.set
}

// Value returns the new value; it is nil for Unchanged.
func (c Change) Value() any {
	return c.value
}

// ChangeSet maps attribute names to changes. Attributes that are absent or
// Unchanged are left untouched by an update.
type ChangeSet map[string]Change

// Changes starts an empty change-set.
func Changes() ChangeSet {
	return ChangeSet{}
}

// Set records a new value for name and returns cs for chaining.
func (cs ChangeSet) Set(name string, v any) ChangeSet {
	cs[name] = Set(v)
	return cs
}

// Fields returns the names with an effective change, sorted.
func (cs ChangeSet) Fields() []string {
	names := make([]string, 0, len(cs))
	for name, c := range cs {
		if c.IsSet() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Opt is an optional field of a typed patch struct.
type Opt[V any] struct {
	value V
	ok    bool
}

// Some wraps a value that should be written.
func Some[V any](v V) Opt[V] {
	return Opt[V]{value: v, ok: true}
}

// None is the absent option.
func None[V any]() Opt[V] {
	return Opt[V]{}
}

// Get returns the value and whether it is present.
func (o Opt[V]) Get() (V, bool) {
	return o.value, o.ok
}

// Apply records o under name in cs when present.
func (o Opt[V]) Apply(cs ChangeSet, name string) {
	if o.ok {
		cs[name] = Set(o.value)
	}
}
