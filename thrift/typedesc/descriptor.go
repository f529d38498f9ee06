package typedesc

// Kind discriminates the structural category of a parsed type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindNamed
	KindList
	KindSet
	KindMap
)

// Descriptor is the structured form of a declared Thrift type.  Exactly one
// group of fields is populated depending on Kind: Primitive for
// KindPrimitive, Namespace/Name for KindNamed, Elem for KindList/KindSet and
// Key/Value for KindMap.
type Descriptor struct {
	Kind      Kind
	Primitive string
	Namespace string
	Name      string
	Elem      *Descriptor
	Key       *Descriptor
	Value     *Descriptor
}

// Qualified returns the namespace-qualified name of a named type.
func (d *Descriptor) Qualified() string {
	return d.Namespace + "." + d.Name
}

// String renders the descriptor back into its canonical type-string form.
func (d *Descriptor) String() string {
	switch d.Kind {
	case KindPrimitive:
		return d.Primitive
	case KindNamed:
		return d.Qualified()
	case KindList:
		return "list<" + d.Elem.String() + ">"
	case KindSet:
		return "set<" + d.Elem.String() + ">"
	case KindMap:
		return "map<" + d.Key.String() + "," + d.Value.String() + ">"
	}
	return ""
}
