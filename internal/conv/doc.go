// Package conv provides small, reflection-based helpers to convert between
// arbitrary Go values.  The primary helper Convert performs a best-effort JSON
// marshal/unmarshal round-trip which is sufficient for populating registered
// argument struct types from converted field mappings.
package conv
