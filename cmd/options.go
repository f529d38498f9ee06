package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config   string   `short:"f" long:"config" description:"Service configuration YAML/JSON path"`
	Schema   string   `short:"t" long:"thrift" description:"Root Thrift IDL path (alternative to --config)"`
	Includes []string `short:"I" long:"include" description:"Additional include directory"`
	Lenient  bool     `long:"lenient" description:"Ignore JSON keys that match no declared field"`

	Convert       *ConvertCmd       `command:"convert"        description:"Convert a JSON request body into typed endpoint arguments"`
	ListEndpoints *ListEndpointsCmd `command:"list-endpoints" description:"List all declared endpoints"`
	Endpoint      *EndpointCmd      `command:"endpoint"       description:"Show detailed info about one endpoint"`
	Check         *CheckCmd         `command:"check"          description:"Parse the schema and report definition counts"`
}

// Init instantiates the sub-command referenced by the given positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(arg string) {
	switch arg {
	case "convert":
		o.Convert = &ConvertCmd{}
	case "list-endpoints":
		o.ListEndpoints = &ListEndpointsCmd{}
	case "endpoint":
		o.Endpoint = &EndpointCmd{}
	case "check":
		o.Check = &CheckCmd{}
	}
}
