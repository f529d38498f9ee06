// Package endpoint contains the canonical naming scheme for service method
// references used across the CLI and the library surface.
package endpoint
