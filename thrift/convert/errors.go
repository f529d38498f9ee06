package convert

import (
	"fmt"
	"strings"
)

// UnresolvableTypeError reports a named type the schema index cannot resolve
// to a struct or enum definition.
type UnresolvableTypeError struct {
	Type string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("unresolvable type %q: not a known struct, enum or alias", e.Type)
}

// InvalidEnumValueError reports an enum value that is neither an integer
// ordinal nor a recognised symbolic name.
type InvalidEnumValueError struct {
	Enum  string
	Value any
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value for enum %s: %v", e.Enum, e.Value)
}

// MalformedInputError reports a JSON value whose shape does not match the
// structure the schema expects.
type MalformedInputError struct {
	Expected string
	Value    any
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: expected %s, got %T", e.Expected, e.Value)
}

// UnknownFieldError reports a JSON object key that matches no declared field.
// Raised in strict mode only; lenient conversion skips such keys.
type UnknownFieldError struct {
	Field    string
	Declared []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q, declared fields: %s", e.Field, strings.Join(e.Declared, ", "))
}

// DepthError reports conversion exceeding the recursion bound, which almost
// always means the schema graph contains a cycle.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("conversion exceeded max depth %d: schema may contain a cyclic struct definition", e.Limit)
}
