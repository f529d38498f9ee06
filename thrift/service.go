package thrift

import (
	"context"
	"reflect"

	"github.com/thriftcall/thriftcall/thrift/config"
	"github.com/thriftcall/thriftcall/thrift/convert"
	"github.com/thriftcall/thriftcall/thrift/endpoint"
	"github.com/thriftcall/thriftcall/thrift/schema"
)

// Service bundles configuration, the loaded schema index and the conversion
// engine.  Both the index and the converter are immutable once New returns,
// so one Service instance may serve concurrent ConvertArgs calls.
type Service struct {
	config    *config.Config
	index     *schema.Index
	converter *convert.Converter
	types     map[string]reflect.Type
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration instance.  When omitted a zero value
// config is assumed, which requires WithIndex.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithIndex supplies an already-built schema index, skipping the IDL load.
func WithIndex(index *schema.Index) Option {
	return func(s *Service) {
		s.index = index
	}
}

// WithType binds a concrete Go type to a qualified Thrift name so that
// converted structs of that name materialize as typed instances.
func WithType(qualified string, t reflect.Type) Option {
	return func(s *Service) {
		s.types[qualified] = t
	}
}

// New constructs a service instance: it validates the configuration, loads
// the schema unless one was supplied and binds the conversion engine.
func New(ctx context.Context, options ...Option) (*Service, error) {
	s := &Service{types: map[string]reflect.Type{}}
	for _, option := range options {
		option(s)
	}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init(ctx context.Context) error {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if s.index == nil {
		if err := s.config.Validate(); err != nil {
			return err
		}
		index, err := schema.Load(ctx, s.config.Schema, s.config.IncludeDirs...)
		if err != nil {
			return err
		}
		s.index = index
	}
	var opts []convert.Option
	if s.config.LenientFields {
		opts = append(opts, convert.WithLenientFields())
	}
	if s.config.MaxDepth > 0 {
		opts = append(opts, convert.WithMaxDepth(s.config.MaxDepth))
	}
	s.converter = convert.New(s.index, opts...)
	for qualified, t := range s.types {
		s.converter.Builder().RegisterType(qualified, t)
	}
	return nil
}

// Config returns the effective configuration.  Callers must treat the result
// as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Index returns the loaded schema index.
func (s *Service) Index() *schema.Index { return s.index }

// Converter returns the bound conversion engine.
func (s *Service) Converter() *convert.Converter { return s.converter }

// ConvertArgs converts a JSON request body into the typed argument mapping of
// the named endpoint.
func (s *Service) ConvertArgs(name endpoint.Name, data any) (map[string]any, error) {
	return s.converter.ConvertArgs(name.Service(), name.Method(), data)
}
