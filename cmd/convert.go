package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thriftcall/thriftcall/thrift/convert"
	"github.com/thriftcall/thriftcall/thrift/endpoint"
)

// ConvertCmd converts a JSON request body into the typed argument mapping of
// one endpoint and prints the result.  The body can be supplied either inline
// via -i/--input or loaded from a JSON file via --file.
type ConvertCmd struct {
	Name   string `short:"n" long:"name" description:"Endpoint name (Service.method)" required:"yes"`
	Inline string `short:"i" long:"input" description:"Inline JSON request body"`
	File   string `long:"file" description:"Path to JSON file with request body (use - for stdin)"`
	Pretty bool   `long:"pretty" description:"Indent the printed argument mapping"`
}

func (c *ConvertCmd) Execute(_ []string) error {
	if c.Inline != "" && c.File != "" {
		return fmt.Errorf("-i/--input and --file are mutually exclusive")
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	// ------------------------------------------------------------------
	// Decode request body
	// ------------------------------------------------------------------
	var body any
	switch {
	case c.Inline != "":
		if err := json.Unmarshal([]byte(c.Inline), &body); err != nil {
			return fmt.Errorf("invalid inline JSON: %w", err)
		}
	case c.File != "":
		var rdr io.Reader
		if c.File == "-" {
			rdr = os.Stdin
		} else {
			f, err := os.Open(c.File)
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer f.Close()
			rdr = f
		}
		data, err := io.ReadAll(rdr)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return fmt.Errorf("request body must be provided via -i/--input or --file")
	}

	args, err := svc.ConvertArgs(endpoint.Canonical(c.Name), body)
	if err != nil {
		return err
	}

	out, err := convert.EncodeJSON(args)
	if err != nil {
		return err
	}
	if c.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}
	fmt.Println(string(out))
	return nil
}
