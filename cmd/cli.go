package cmd

import (
	"log"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Run is the entry point for the CLI.  The function is intentionally separated
// from the main package to keep the command usable from tests as well.
func Run(args []string) {
	// Make global settings discoverable by sub-commands before the full flags
	// parsing is performed.
	setGlobals(extractGlobals(args))

	opts := &Options{}
	for _, arg := range args {
		opts.Init(arg)
	}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		// flags already prints user-friendly message – just set exit code.
		log.Fatalf("%v", err)
	}
}

// globals carries the options every sub-command needs to build the service
// singleton.
type globals struct {
	configPath  string
	schemaURL   string
	includeDirs []string
	lenient     bool
}

// extractGlobals searches the raw argument list for the service-level options
// before the full flags parsing is performed so that sub-commands can build
// the service early from a deterministic location.
func extractGlobals(args []string) globals {
	var g globals
	value := func(i int) string {
		if i+1 < len(args) {
			return args[i+1]
		}
		return ""
	}
	for i, a := range args {
		switch a {
		case "-f", "--config":
			g.configPath = value(i)
		case "-t", "--thrift":
			g.schemaURL = value(i)
		case "-I", "--include":
			if dir := value(i); dir != "" {
				g.includeDirs = append(g.includeDirs, dir)
			}
		case "--lenient":
			g.lenient = true
		default:
			switch {
			case strings.HasPrefix(a, "--config="):
				g.configPath = strings.TrimPrefix(a, "--config=")
			case strings.HasPrefix(a, "--thrift="):
				g.schemaURL = strings.TrimPrefix(a, "--thrift=")
			case strings.HasPrefix(a, "--include="):
				g.includeDirs = append(g.includeDirs, strings.TrimPrefix(a, "--include="))
			}
		}
	}
	return g
}
