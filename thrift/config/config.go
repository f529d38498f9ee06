package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is the YAML/JSON configuration accepted by the thriftcall service.
type Config struct {
	// Schema is the URL of the root Thrift IDL document.
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty" validate:"required"`
	// IncludeDirs lists additional directories include directives resolve
	// against, after the including file's own directory.
	IncludeDirs []string `yaml:"includeDirs,omitempty" json:"includeDirs,omitempty"`
	// LenientFields disables strict unknown-field checking so that request
	// bodies with extra keys convert instead of failing.
	LenientFields bool `yaml:"lenientFields,omitempty" json:"lenientFields,omitempty"`
	// MaxDepth bounds conversion recursion; zero keeps the built-in default.
	MaxDepth int `yaml:"maxDepth,omitempty" json:"maxDepth,omitempty" validate:"gte=0"`
}

// Load reads and decodes a configuration document from any URL afs supports.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", URL, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", URL, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
