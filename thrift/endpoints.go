package thrift

import (
	"github.com/thriftcall/thriftcall/thrift/endpoint"
	"github.com/thriftcall/thriftcall/thrift/schema"
)

// Param describes one declared endpoint parameter.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// Endpoint summarises one service method for listing and inspection.
type Endpoint struct {
	Name       endpoint.Name `json:"name"`
	Service    string        `json:"service"`
	Method     string        `json:"method"`
	ReturnType string        `json:"returnType"`
	Oneway     bool          `json:"oneway,omitempty"`
	Params     []Param       `json:"params"`
}

// Endpoints returns every declared endpoint, sorted by qualified service name
// and method.
func (s *Service) Endpoints() []Endpoint {
	var out []Endpoint
	for _, svc := range s.index.Services() {
		for _, method := range svc.Methods() {
			out = append(out, describe(svc, method))
		}
	}
	return out
}

// LookupEndpoint resolves one endpoint by name.
func (s *Service) LookupEndpoint(name endpoint.Name) (*Endpoint, error) {
	svc, method, err := s.index.MethodFor(name.Service(), name.Method())
	if err != nil {
		return nil, err
	}
	described := describe(svc, method)
	return &described, nil
}

func describe(svc *schema.ServiceDef, method *schema.Method) Endpoint {
	fields := method.Fields()
	params := make([]Param, 0, len(fields))
	for _, fieldName := range method.FieldNames() {
		field := fields[fieldName]
		params = append(params, Param{Name: field.Name, Type: field.Type, Required: field.Required})
	}
	return Endpoint{
		Name:       endpoint.NewName(svc.Qualified(), method.Name),
		Service:    svc.Qualified(),
		Method:     method.Name,
		ReturnType: method.ReturnType,
		Oneway:     method.Oneway,
		Params:     params,
	}
}
