package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Index answers the type and endpoint lookups the conversion engine depends
// on.  It is populated once while the schema loads and treated as immutable
// afterwards, which makes concurrent lookups safe without locking.
type Index struct {
	typedefs map[string]string
	structs  map[string]*Struct
	enums    map[string]*Enum
	services map[string]*ServiceDef
}

// NewIndex creates an empty index.  All Add* calls must complete before the
// first lookup.
func NewIndex() *Index {
	return &Index{
		typedefs: map[string]string{},
		structs:  map[string]*Struct{},
		enums:    map[string]*Enum{},
		services: map[string]*ServiceDef{},
	}
}

// AddTypedef registers a qualified alias with its target type string.
func (i *Index) AddTypedef(alias, target string) {
	if _, ok := i.typedefs[alias]; ok {
		return
	}
	i.typedefs[alias] = target
}

// AddStruct registers a struct, union or exception definition.
func (i *Index) AddStruct(s *Struct) {
	if _, ok := i.structs[s.Qualified()]; ok {
		return
	}
	i.structs[s.Qualified()] = s
}

// AddEnum registers an enum definition.
func (i *Index) AddEnum(e *Enum) {
	if _, ok := i.enums[e.Qualified()]; ok {
		return
	}
	i.enums[e.Qualified()] = e
}

// AddService registers a service definition.
func (i *Index) AddService(s *ServiceDef) {
	if _, ok := i.services[s.Qualified()]; ok {
		return
	}
	i.services[s.Qualified()] = s
}

// UnaliasType follows typedef chains down to a canonical type name.  A name
// without a registered alias is returned unchanged.  Cyclic typedef chains
// stop at the first repeated name instead of spinning.
func (i *Index) UnaliasType(typeName string) string {
	name := strings.TrimSpace(typeName)
	seen := map[string]bool{}
	for {
		target, ok := i.typedefs[name]
		if !ok || seen[name] {
			return name
		}
		seen[name] = true
		name = target
	}
}

// Struct looks up a struct definition by qualified name.
func (i *Index) Struct(typeName string) (*Struct, bool) {
	s, ok := i.structs[typeName]
	return s, ok
}

// HasEnum reports whether the qualified name denotes an enum.
func (i *Index) HasEnum(typeName string) bool {
	_, ok := i.enums[typeName]
	return ok
}

// Enum looks up an enum definition by qualified name.
func (i *Index) Enum(typeName string) (*Enum, bool) {
	e, ok := i.enums[typeName]
	return e, ok
}

// FieldsForStruct returns the field mapping of a struct.
func (i *Index) FieldsForStruct(typeName string) (map[string]*Field, error) {
	s, ok := i.structs[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown struct %q", typeName)
	}
	return s.Fields(), nil
}

// FieldsForEndpoint returns the declared parameter mapping of one RPC method.
// The service reference may be qualified ("calc.Calculator") or bare
// ("Calculator") as long as the bare name is unambiguous.
func (i *Index) FieldsForEndpoint(serviceRef, method string) (map[string]*Field, error) {
	_, m, err := i.MethodFor(serviceRef, method)
	if err != nil {
		return nil, err
	}
	return m.Fields(), nil
}

// MethodFor resolves a service reference and method name, walking the extends
// chain so inherited methods resolve through the child service.
func (i *Index) MethodFor(serviceRef, method string) (*ServiceDef, *Method, error) {
	svc, err := i.ResolveService(serviceRef)
	if err != nil {
		return nil, nil, err
	}
	for current := svc; current != nil; {
		if m, ok := current.Method(method); ok {
			return svc, m, nil
		}
		if current.Extends == "" {
			break
		}
		current = i.services[current.Extends]
	}
	return nil, nil, fmt.Errorf("service %q has no method %q", svc.Qualified(), method)
}

// ResolveService locates a service definition by qualified or unique bare
// name.
func (i *Index) ResolveService(serviceRef string) (*ServiceDef, error) {
	ref := strings.TrimSpace(serviceRef)
	if svc, ok := i.services[ref]; ok {
		return svc, nil
	}
	if !strings.Contains(ref, ".") {
		var matches []*ServiceDef
		for _, svc := range i.services {
			if svc.Name == ref {
				matches = append(matches, svc)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return nil, fmt.Errorf("service reference %q is ambiguous, use the qualified name", ref)
		}
	}
	return nil, fmt.Errorf("unknown service %q", ref)
}

// Services returns every registered service sorted by qualified name.
func (i *Index) Services() []*ServiceDef {
	out := make([]*ServiceDef, 0, len(i.services))
	for _, svc := range i.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Qualified() < out[b].Qualified() })
	return out
}

// Stats summarises index content for diagnostics.
type Stats struct {
	Typedefs int `json:"typedefs"`
	Structs  int `json:"structs"`
	Enums    int `json:"enums"`
	Services int `json:"services"`
	Methods  int `json:"methods"`
}

// Stats returns definition counts, used by the CLI check command.
func (i *Index) Stats() Stats {
	s := Stats{
		Typedefs: len(i.typedefs),
		Structs:  len(i.structs),
		Enums:    len(i.enums),
		Services: len(i.services),
	}
	for _, svc := range i.services {
		s.Methods += len(svc.methods)
	}
	return s
}
