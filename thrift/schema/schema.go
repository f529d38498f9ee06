package schema

import "sort"

// Field describes one declared struct member or method parameter.  Type holds
// the declared type string with user-defined references already namespace
// qualified, e.g. "map<string,shared.Item>".
type Field struct {
	ID       int
	Name     string
	Type     string
	Required bool
	Default  any
}

// Struct is an indexed struct, union or exception definition.
type Struct struct {
	Namespace string
	Name      string
	fields    map[string]*Field
	order     []string
}

// NewStruct creates an empty struct definition.
func NewStruct(namespace, name string) *Struct {
	return &Struct{Namespace: namespace, Name: name, fields: map[string]*Field{}}
}

// Qualified returns the namespace-qualified struct name.
func (s *Struct) Qualified() string { return s.Namespace + "." + s.Name }

// Add registers a field; the first definition of a name wins.
func (s *Struct) Add(field *Field) {
	if _, ok := s.fields[field.Name]; ok {
		return
	}
	s.fields[field.Name] = field
	s.order = append(s.order, field.Name)
}

// Fields returns the name-keyed field mapping.  Callers must treat the result
// as read-only.
func (s *Struct) Fields() map[string]*Field { return s.fields }

// FieldNames returns field names in declaration order.
func (s *Struct) FieldNames() []string { return s.order }

// Enum is an indexed enum definition with a bijective symbolic-name to
// ordinal mapping.
type Enum struct {
	Namespace string
	Name      string
	ordinals  map[string]int64
	names     map[int64]string
	order     []string
}

// NewEnum creates an empty enum definition.
func NewEnum(namespace, name string) *Enum {
	return &Enum{Namespace: namespace, Name: name, ordinals: map[string]int64{}, names: map[int64]string{}}
}

// Qualified returns the namespace-qualified enum name.
func (e *Enum) Qualified() string { return e.Namespace + "." + e.Name }

// Add registers a symbolic name with its ordinal.
func (e *Enum) Add(name string, ordinal int64) {
	if _, ok := e.ordinals[name]; ok {
		return
	}
	e.ordinals[name] = ordinal
	e.names[ordinal] = name
	e.order = append(e.order, name)
}

// Ordinal resolves a symbolic name to its ordinal.
func (e *Enum) Ordinal(name string) (int64, bool) {
	v, ok := e.ordinals[name]
	return v, ok
}

// NameOf resolves an ordinal back to its symbolic name.
func (e *Enum) NameOf(ordinal int64) (string, bool) {
	v, ok := e.names[ordinal]
	return v, ok
}

// Names returns symbolic names in declaration order.
func (e *Enum) Names() []string { return e.order }

// Method is one declared RPC method signature.
type Method struct {
	Name       string
	ReturnType string
	Oneway     bool
	fields     map[string]*Field
	order      []string
}

// NewMethod creates an empty method signature.
func NewMethod(name, returnType string) *Method {
	return &Method{Name: name, ReturnType: returnType, fields: map[string]*Field{}}
}

// Add registers a parameter field.
func (m *Method) Add(field *Field) {
	if _, ok := m.fields[field.Name]; ok {
		return
	}
	m.fields[field.Name] = field
	m.order = append(m.order, field.Name)
}

// Fields returns the name-keyed parameter mapping.  Read-only for callers.
func (m *Method) Fields() map[string]*Field { return m.fields }

// FieldNames returns parameter names in declaration order.
func (m *Method) FieldNames() []string { return m.order }

// ServiceDef groups the method signatures one service declares.
type ServiceDef struct {
	Namespace string
	Name      string
	Extends   string
	methods   map[string]*Method
}

// NewServiceDef creates an empty service definition.
func NewServiceDef(namespace, name string) *ServiceDef {
	return &ServiceDef{Namespace: namespace, Name: name, methods: map[string]*Method{}}
}

// Qualified returns the namespace-qualified service name.
func (s *ServiceDef) Qualified() string { return s.Namespace + "." + s.Name }

// Add registers a method signature.
func (s *ServiceDef) Add(method *Method) {
	if _, ok := s.methods[method.Name]; ok {
		return
	}
	s.methods[method.Name] = method
}

// Method looks up a method by name.
func (s *ServiceDef) Method(name string) (*Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Methods returns all method signatures sorted by name for deterministic
// listing.
func (s *ServiceDef) Methods() []*Method {
	out := make([]*Method, 0, len(s.methods))
	for _, m := range s.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
