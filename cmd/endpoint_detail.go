package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/thriftcall/thriftcall/thrift/endpoint"
)

// EndpointCmd prints the declared signature of a single endpoint.
type EndpointCmd struct {
	Name string `short:"n" long:"name" description:"endpoint name (Service.method)" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

func (c *EndpointCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	ep, err := svc.LookupEndpoint(endpoint.Canonical(c.Name))
	if err != nil {
		return err
	}

	if c.JSON {
		data, _ := json.MarshalIndent(ep, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("Service : %s\n", ep.Service)
	fmt.Printf("Method  : %s\n", ep.Method)
	fmt.Printf("Returns : %s\n", ep.ReturnType)
	if ep.Oneway {
		fmt.Printf("Oneway  : true\n")
	}
	fmt.Printf("Params  :\n")
	for _, param := range ep.Params {
		required := ""
		if param.Required {
			required = " (required)"
		}
		fmt.Printf("    %s %s%s\n", param.Name, param.Type, required)
	}
	return nil
}
