// Package typedesc parses declared Thrift type strings into tagged
// descriptors.  The grammar covers base types, namespace-qualified struct and
// enum references and arbitrarily nested list/set/map generics.  Parses are
// memoized per distinct type string so conversion dispatches on structure
// rather than re-scanning strings.
package typedesc
