package porridge

import (
	"github.com/benbjohnson/immutable"
)

// Option keys recognized by the core.
const (
	// KeyFieldPolicy holds the FieldPolicy consulted by every Field.
	KeyFieldPolicy = "field_policy"

	// KeyFieldHierarchy holds the path of field names ([]any) from the
	// serialization root to the field currently being emitted.
	KeyFieldHierarchy = "field_hierarchy"
)

// Options is the immutable per-call map threaded through a pipeline.
//
// It is a persistent structure: With and Without return a new Options that
// shares every existing entry with the receiver, so sibling branches that
// extend the same parent never observe each other's entries. The zero value
// is an empty Options ready to use.
type Options struct {
	entries *immutable.Map[string, any]
}

// NewOptions copies values into a new Options.
func NewOptions(values map[string]any) Options {
	b := immutable.NewMapBuilder[string, any](nil)
	for k, v := range values {
		b.Set(k, v)
	}
	return Options{entries: b.Map()}
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	if o.entries == nil {
		return nil, false
	}
	return o.entries.Get(key)
}

// With returns a copy of o with key set to value.
func (o Options) With(key string, value any) Options {
	entries := o.entries
	if entries == nil {
		entries = immutable.NewMap[string, any](nil)
	}
	return Options{entries: entries.Set(key, value)}
}

// Without returns a copy of o with the given keys removed.
func (o Options) Without(keys ...string) Options {
	if o.entries == nil {
		return o
	}
	entries := o.entries
	for _, k := range keys {
		entries = entries.Delete(k)
	}
	return Options{entries: entries}
}

// Map flattens o into a new map. Mutating the result does not affect o.
func (o Options) Map() map[string]any {
	m := make(map[string]any, o.Len())
	if o.entries == nil {
		return m
	}
	itr := o.entries.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		m[k] = v
	}
	return m
}

// Len returns the number of keys in o.
func (o Options) Len() int {
	if o.entries == nil {
		return 0
	}
	return o.entries.Len()
}

// FieldPolicy returns the policy stored under KeyFieldPolicy when it passes
// the structural check.
func (o Options) FieldPolicy() (FieldPolicy, bool) {
	v, ok := o.Get(KeyFieldPolicy)
	if !ok {
		return nil, false
	}
	p, err := AsFieldPolicy(v)
	if err != nil {
		return nil, false
	}
	return p, true
}

// WithFieldPolicy returns a copy of o carrying policy.
func (o Options) WithFieldPolicy(policy FieldPolicy) Options {
	return o.With(KeyFieldPolicy, policy)
}

// FieldHierarchy returns a copy of the current field path.
// A missing or malformed hierarchy reads as empty.
func (o Options) FieldHierarchy() []any {
	h := o.hierarchy()
	out := make([]any, len(h))
	copy(out, h)
	return out
}

// WithField returns a copy of o whose hierarchy is the current path with
// name appended. The receiver's path is copied, never appended to in place.
func (o Options) WithField(name any) Options {
	h := o.hierarchy()
	path := make([]any, len(h), len(h)+1)
	copy(path, h)
	path = append(path, name)
	return o.With(KeyFieldHierarchy, path)
}

func (o Options) hierarchy() []any {
	v, ok := o.Get(KeyFieldHierarchy)
	if !ok {
		return nil
	}
	switch h := v.(type) {
	case []any:
		return h
	case []string:
		out := make([]any, len(h))
		for i, s := range h {
			out[i] = s
		}
		return out
	}
	return nil
}
