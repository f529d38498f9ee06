// Package schema builds and serves the immutable index of a parsed Thrift
// IDL: typedef aliases, struct and enum definitions and service method
// signatures.  The index answers the lookups the conversion engine performs:
// alias resolution, struct/enum classification and field listings for structs
// and endpoints.
package schema
