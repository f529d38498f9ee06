// Package thrift wires the schema index and the conversion engine into one
// service.  Its central Service type loads configuration, parses the Thrift
// IDL into an immutable index and converts JSON request bodies into the typed
// argument mappings endpoints declare.
package thrift
