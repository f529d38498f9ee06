package convert

import (
	"fmt"
	"reflect"

	"github.com/viant/x"

	"github.com/thriftcall/thriftcall/internal/conv"
)

// Builder materializes already-converted intermediate values into host
// values.  Structs whose qualified name was bound to a concrete Go type are
// instantiated through the type registry; everything else keeps the generic
// representation (field mappings, []any collections, int64 enum ordinals).
// The registry is populated once at schema-bind time, so no name-based
// reflection happens while converting.
type Builder struct {
	registry *x.Registry
}

// NewBuilder creates a builder with an empty type registry.
func NewBuilder() *Builder {
	return &Builder{registry: x.NewRegistry()}
}

// RegisterType binds a concrete Go type to a qualified Thrift name, e.g.
// RegisterType("todo.Item", reflect.TypeOf(Item{})).
func (b *Builder) RegisterType(qualified string, t reflect.Type) {
	b.registry.Register(x.NewType(t, x.WithName(qualified)))
}

// Struct materializes a struct from its converted field mapping.  With a
// registered type the result is a pointer to a populated instance; otherwise
// the field mapping itself is the struct value.
func (b *Builder) Struct(namespace, name string, fields map[string]any) (any, error) {
	qualified := namespace + "." + name
	entry := b.registry.Lookup(qualified)
	if entry == nil {
		return fields, nil
	}
	instance := reflect.New(entry.Type)
	if err := conv.Convert(fields, instance.Interface()); err != nil {
		return nil, fmt.Errorf("materialize %s: %w", qualified, err)
	}
	return instance.Interface(), nil
}

// List materializes an ordered sequence.
func (b *Builder) List(elems []any) []any { return elems }

// Set materializes an unordered collection, collapsing duplicates on the
// canonical JSON encoding of each converted element and keeping
// first-appearance order.
func (b *Builder) Set(elems []any) []any {
	seen := make(map[string]bool, len(elems))
	out := make([]any, 0, len(elems))
	for _, elem := range elems {
		key := canonicalKey(elem)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, elem)
	}
	return out
}

// Map allocates a typed-key map for the expected entry count.
func (b *Builder) Map(size int) map[any]any {
	return make(map[any]any, size)
}

// MapPut inserts one converted entry.  Pointer keys are dereferenced so that
// registered struct keys compare by value, and uncomparable keys fall back to
// their canonical JSON encoding so insertion can never panic.
func (b *Builder) MapPut(m map[any]any, key, value any) {
	if key != nil {
		rv := reflect.ValueOf(key)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			key = rv.Elem().Interface()
			rv = reflect.ValueOf(key)
		}
		if !rv.Type().Comparable() {
			key = canonicalKey(key)
		}
	}
	m[key] = value
}

// canonicalKey renders a converted value into a stable textual identity.
func canonicalKey(value any) string {
	data, err := EncodeJSON(value)
	if err != nil {
		return fmt.Sprintf("%#v", value)
	}
	return string(data)
}
