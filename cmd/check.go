package cmd

import (
	"encoding/json"
	"fmt"
)

// CheckCmd parses the schema and reports what was indexed, which makes it a
// cheap smoke test for IDL changes.
type CheckCmd struct {
	JSON bool `long:"json" description:"print result as JSON"`
}

func (c *CheckCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	stats := svc.Index().Stats()
	if c.JSON {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("typedefs: %d\n", stats.Typedefs)
	fmt.Printf("structs : %d\n", stats.Structs)
	fmt.Printf("enums   : %d\n", stats.Enums)
	fmt.Printf("services: %d\n", stats.Services)
	fmt.Printf("methods : %d\n", stats.Methods)
	return nil
}
