package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/thriftcall/thriftcall/thrift/schema"
	"github.com/thriftcall/thriftcall/thrift/typedesc"
)

// defaultMaxDepth bounds recursive descent so that a cyclic struct schema
// fails with DepthError instead of overflowing the stack.
const defaultMaxDepth = 64

// Converter turns untyped JSON request bodies into the typed argument mapping
// an endpoint declares.  It only reads the immutable schema index, so one
// instance may serve concurrent ConvertArgs calls without locking.
type Converter struct {
	index    *schema.Index
	builder  *Builder
	lenient  bool
	maxDepth int
}

// Option customises a Converter instance.
type Option func(*Converter)

// WithLenientFields makes conversion silently drop JSON keys that match no
// declared field instead of failing with UnknownFieldError.
func WithLenientFields() Option {
	return func(c *Converter) {
		c.lenient = true
	}
}

// WithMaxDepth overrides the recursion bound applied during conversion.
func WithMaxDepth(limit int) Option {
	return func(c *Converter) {
		if limit > 0 {
			c.maxDepth = limit
		}
	}
}

// WithBuilder overrides the value builder, typically to share a type registry
// across converters.
func WithBuilder(builder *Builder) Option {
	return func(c *Converter) {
		c.builder = builder
	}
}

// New creates a converter bound to the supplied schema index.
func New(index *schema.Index, options ...Option) *Converter {
	c := &Converter{index: index, maxDepth: defaultMaxDepth}
	for _, option := range options {
		option(c)
	}
	if c.builder == nil {
		c.builder = NewBuilder()
	}
	return c
}

// Builder exposes the value builder so callers can register concrete argument
// types before converting.
func (c *Converter) Builder() *Builder { return c.builder }

// ConvertArgs converts a JSON request body into the typed argument mapping
// for one endpoint.  When the endpoint declares exactly one field and the
// body is not already keyed by that field's name, the whole body is treated
// as the value of that sole field.
func (c *Converter) ConvertArgs(serviceRef, method string, data any) (map[string]any, error) {
	fields, err := c.index.FieldsForEndpoint(serviceRef, method)
	if err != nil {
		return nil, err
	}
	return c.convertFields(fields, data, 0)
}

// ConvertValue converts a single JSON value against one declared type string.
func (c *Converter) ConvertValue(typeName string, value any) (any, error) {
	return c.convertValue(typeName, value, 0)
}

func (c *Converter) convertFields(fields map[string]*schema.Field, data any, depth int) (map[string]any, error) {
	if depth > c.maxDepth {
		return nil, &DepthError{Limit: c.maxDepth}
	}
	if len(fields) == 1 {
		var sole *schema.Field
		for _, field := range fields {
			sole = field
		}
		if object, ok := data.(map[string]any); !ok {
			data = map[string]any{sole.Name: data}
		} else if _, keyed := object[sole.Name]; !keyed {
			data = map[string]any{sole.Name: data}
		}
	}
	object, ok := data.(map[string]any)
	if !ok {
		return nil, &MalformedInputError{Expected: "JSON object keyed by field name", Value: data}
	}
	args := make(map[string]any, len(object))
	for name, value := range object {
		field, declared := fields[name]
		if !declared {
			if c.lenient {
				continue
			}
			return nil, &UnknownFieldError{Field: name, Declared: declaredNames(fields)}
		}
		converted, err := c.convertValue(field.Type, value, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		args[name] = converted
	}
	return args, nil
}

func (c *Converter) convertValue(typeName string, value any, depth int) (any, error) {
	if depth > c.maxDepth {
		return nil, &DepthError{Limit: c.maxDepth}
	}
	desc, err := typedesc.Parse(c.index.UnaliasType(typeName))
	if err != nil {
		return nil, err
	}
	return c.convertDescriptor(desc, value, depth)
}

func (c *Converter) convertDescriptor(desc *typedesc.Descriptor, value any, depth int) (any, error) {
	if depth > c.maxDepth {
		return nil, &DepthError{Limit: c.maxDepth}
	}
	switch desc.Kind {
	case typedesc.KindNamed:
		return c.convertNamed(desc, value, depth)
	case typedesc.KindList:
		items, err := c.convertElems(desc.Elem, value, depth)
		if err != nil {
			return nil, err
		}
		return c.builder.List(items), nil
	case typedesc.KindSet:
		items, err := c.convertElems(desc.Elem, value, depth)
		if err != nil {
			return nil, err
		}
		return c.builder.Set(items), nil
	case typedesc.KindMap:
		return c.convertMap(desc, value, depth)
	default:
		return convertPrimitive(desc.Primitive, value)
	}
}

func (c *Converter) convertNamed(desc *typedesc.Descriptor, value any, depth int) (any, error) {
	qualified := desc.Qualified()
	if _, ok := c.index.Struct(qualified); ok {
		fields, err := c.index.FieldsForStruct(qualified)
		if err != nil {
			return nil, err
		}
		mapping, err := c.convertFields(fields, value, depth+1)
		if err != nil {
			return nil, err
		}
		return c.builder.Struct(desc.Namespace, desc.Name, mapping)
	}
	if enum, ok := c.index.Enum(qualified); ok {
		return convertEnum(enum, value)
	}
	// Nested references may themselves be aliases; the outer parse sees them
	// before unaliasing.
	if canonical := c.index.UnaliasType(qualified); canonical != qualified {
		return c.convertValue(canonical, value, depth)
	}
	return nil, &UnresolvableTypeError{Type: qualified}
}

func (c *Converter) convertElems(elem *typedesc.Descriptor, value any, depth int) ([]any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &MalformedInputError{Expected: "JSON array", Value: value}
	}
	out := make([]any, 0, len(items))
	for i, item := range items {
		converted, err := c.convertDescriptor(elem, item, depth+1)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *Converter) convertMap(desc *typedesc.Descriptor, value any, depth int) (any, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedInputError{Expected: "JSON object", Value: value}
	}
	structKeys := c.isStructType(desc.Key)
	result := c.builder.Map(len(object))
	for key, elem := range object {
		convertedValue, err := c.convertDescriptor(desc.Value, elem, depth+1)
		if err != nil {
			return nil, fmt.Errorf("map value for key %q: %w", key, err)
		}
		keyInput := any(key)
		if structKeys {
			// JSON object keys are always strings; struct-typed keys arrive as
			// JSON documents embedded in the key string.
			var decoded any
			if err := json.Unmarshal([]byte(key), &decoded); err != nil {
				return nil, &MalformedInputError{Expected: "JSON-encoded struct map key", Value: key}
			}
			keyInput = decoded
		}
		convertedKey, err := c.convertDescriptor(desc.Key, keyInput, depth+1)
		if err != nil {
			return nil, fmt.Errorf("map key %q: %w", key, err)
		}
		c.builder.MapPut(result, convertedKey, convertedValue)
	}
	return result, nil
}

// isStructType reports whether a descriptor denotes a struct, following
// typedef aliases.
func (c *Converter) isStructType(desc *typedesc.Descriptor) bool {
	if desc.Kind != typedesc.KindNamed {
		return false
	}
	qualified := desc.Qualified()
	if _, ok := c.index.Struct(qualified); ok {
		return true
	}
	canonical := c.index.UnaliasType(qualified)
	if canonical == qualified {
		return false
	}
	resolved, err := typedesc.Parse(canonical)
	if err != nil {
		return false
	}
	return c.isStructType(resolved)
}

func convertEnum(enum *schema.Enum, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v == math.Trunc(v) {
			return int64(v), nil
		}
	case json.Number:
		if ordinal, err := v.Int64(); err == nil {
			return ordinal, nil
		}
	case string:
		if ordinal, ok := enum.Ordinal(v); ok {
			return ordinal, nil
		}
	}
	return nil, &InvalidEnumValueError{Enum: enum.Qualified(), Value: value}
}

// convertPrimitive coerces a JSON scalar.  string/double/bool have defined
// coercions; the remaining primitive kinds attempt an integer parse and on
// failure pass the raw scalar through unchanged as the deliberate
// unknown-primitive escape hatch.
func convertPrimitive(kind string, value any) (any, error) {
	switch kind {
	case "string":
		switch v := value.(type) {
		case string:
			return v, nil
		case bool:
			return strconv.FormatBool(v), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case json.Number:
			return v.String(), nil
		case nil, map[string]any, []any:
			return nil, &MalformedInputError{Expected: "JSON scalar for string", Value: value}
		default:
			return fmt.Sprintf("%v", v), nil
		}
	case "double":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, nil
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		case bool:
			if v {
				return float64(1), nil
			}
			return float64(0), nil
		}
		return nil, &MalformedInputError{Expected: "numeric value for double", Value: value}
	case "bool":
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, nil
			}
		case float64:
			return v != 0, nil
		case int:
			return v != 0, nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f != 0, nil
			}
		}
		return nil, &MalformedInputError{Expected: "boolean value", Value: value}
	default:
		switch v := value.(type) {
		case float64:
			return int64(v), nil
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n, nil
			}
			if f, err := v.Float64(); err == nil {
				return int64(f), nil
			}
			return v, nil
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, nil
			}
			return v, nil
		default:
			return value, nil
		}
	}
}

func declaredNames(fields map[string]*schema.Field) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
