package typedesc

import (
	"fmt"
	"strings"

	"github.com/thriftcall/thriftcall/internal/syncmap"
)

// FormatError reports a type string that does not follow the supported
// grammar: primitive | Namespace.Type | list<T> | set<T> | map<K,V>.
type FormatError struct {
	Type   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid type format %q: %s", e.Type, e.Reason)
}

// primitives enumerates the Thrift base types the grammar recognises.  Any
// other bare name must be namespace qualified.
var primitives = map[string]struct{}{
	"bool":   {},
	"byte":   {},
	"i8":     {},
	"i16":    {},
	"i32":    {},
	"i64":    {},
	"double": {},
	"string": {},
	"binary": {},
}

// IsPrimitive reports whether name is one of the Thrift base types.
func IsPrimitive(name string) bool {
	_, ok := primitives[strings.TrimSpace(name)]
	return ok
}

// cache memoizes successful parses so that each distinct type string is
// scanned once per process.  Failed parses are not cached; they abort the
// whole conversion anyway.
var cache = syncmap.NewMap[*Descriptor]()

// Parse turns a declared type string into its structured Descriptor.
// The result is shared across calls and must be treated as read-only.
func Parse(typeName string) (*Descriptor, error) {
	name := strings.TrimSpace(typeName)
	if cached, ok := cache.GetOK(name); ok {
		return cached, nil
	}
	parsed, err := parse(name)
	if err != nil {
		return nil, err
	}
	cache.Set(name, parsed)
	return parsed, nil
}

func parse(name string) (*Descriptor, error) {
	if name == "" {
		return nil, &FormatError{Type: name, Reason: "empty type"}
	}
	if _, ok := primitives[name]; ok {
		return &Descriptor{Kind: KindPrimitive, Primitive: name}, nil
	}
	switch {
	case strings.HasPrefix(name, "list<") && strings.HasSuffix(name, ">"):
		elem, err := Parse(name[len("list<") : len(name)-1])
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindList, Elem: elem}, nil
	case strings.HasPrefix(name, "set<") && strings.HasSuffix(name, ">"):
		elem, err := Parse(name[len("set<") : len(name)-1])
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindSet, Elem: elem}, nil
	case strings.HasPrefix(name, "map<") && strings.HasSuffix(name, ">"):
		inner := name[len("map<") : len(name)-1]
		split := topLevelComma(inner)
		if split == -1 {
			return nil, &FormatError{Type: name, Reason: "missing top-level ',' between key and value types"}
		}
		key, err := Parse(inner[:split])
		if err != nil {
			return nil, err
		}
		value, err := Parse(inner[split+1:])
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindMap, Key: key, Value: value}, nil
	}
	if strings.ContainsAny(name, "<>,") {
		return nil, &FormatError{Type: name, Reason: "malformed generic type"}
	}
	parts := strings.Split(name, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, &FormatError{Type: name, Reason: "expected 'Namespace.Type' with exactly one '.'"}
	}
	return &Descriptor{Kind: KindNamed, Namespace: parts[0], Name: parts[1]}, nil
}

// topLevelComma returns the index of the first ',' that sits at bracket depth
// zero, or -1 when none qualifies.  A naive first-comma split would break on
// inputs such as map<Foo.Bar,list<double>> once the value type nests its own
// comma.
func topLevelComma(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
