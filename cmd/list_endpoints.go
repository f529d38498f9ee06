package cmd

import (
	"fmt"
	"strings"

	"github.com/thriftcall/thriftcall/thrift"
)

// ListEndpointsCmd prints every declared endpoint with its signature.
type ListEndpointsCmd struct{}

func (c *ListEndpointsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	// Endpoints come back sorted already (helpful for tests & scripting).
	for _, ep := range svc.Endpoints() {
		fmt.Printf("%s\t%s\n", ep.Name, signature(ep))
	}
	return nil
}

func signature(ep thrift.Endpoint) string {
	params := make([]string, 0, len(ep.Params))
	for _, param := range ep.Params {
		params = append(params, param.Name+": "+param.Type)
	}
	ret := ep.ReturnType
	if ep.Oneway {
		ret = "oneway " + ret
	}
	return fmt.Sprintf("%s (%s)", ret, strings.Join(params, ", "))
}
