// Package config defines the YAML/JSON configuration model of the thriftcall
// service together with helpers to load and validate it.
package config
