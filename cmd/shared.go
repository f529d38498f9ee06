package cmd

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/thriftcall/thriftcall/thrift"
	"github.com/thriftcall/thriftcall/thrift/config"
)

var (
	shared globals

	svcOnce sync.Once
	svcInst *thrift.Service
	svcErr  error
)

// setGlobals remembers the CLI-level options so that the service singleton
// can be created lazily by whichever sub-command is executed first.
func setGlobals(g globals) { shared = g }

// serviceSingleton initialises a thrift.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.
func serviceSingleton() (*thrift.Service, error) {
	svcOnce.Do(func() {
		ctx := context.Background()
		var cfg *config.Config
		if shared.configPath != "" {
			cfg, svcErr = config.Load(ctx, shared.configPath)
			if svcErr != nil {
				return
			}
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		if shared.schemaURL != "" {
			cfg.Schema = shared.schemaURL
		}
		cfg.IncludeDirs = append(cfg.IncludeDirs, shared.includeDirs...)
		if shared.lenient {
			cfg.LenientFields = true
		}
		if debug := os.Getenv("THRIFTCALL_DEBUG_CONFIG"); debug == "1" {
			_ = json.NewEncoder(os.Stderr).Encode(cfg)
		}
		svcInst, svcErr = thrift.New(ctx, thrift.WithConfig(cfg))
	})
	return svcInst, svcErr
}
