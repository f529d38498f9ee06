// Package convert implements the schema-directed conversion engine: given
// the immutable schema index and an untyped JSON value, it produces the typed
// argument mapping one endpoint declares.  Conversion is pure recursive
// descent over the parsed type descriptors and either fully succeeds or fails
// with a typed error.
package convert
