package cmdutil

import (
	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/compose"
	"github.com/refig/refig/internal/config"
	"github.com/refig/refig/internal/output"
	"github.com/refig/refig/pkg/refig"
)

// ClientOpts holds options for creating a refig client.
type ClientOpts struct {
	// Source is recorded as the metadata source file. Empty means the
	// calling frame is looked up as usual.
	Source string
}

// NewClient creates a refig client from the global configuration.
func NewClient(gc *cmdtypes.GlobalConfig, opts ClientOpts) *refig.Client {
	cfg := gc.Config.WithDefaults()
	logger := output.Logger()

	composeOpts := []compose.Option{
		compose.WithCell(compose.EnvCell{Name: cfg.Cell.Env}),
		compose.WithLogger(logger),
	}
	if cfg.GitEnabled() {
		composeOpts = append(composeOpts, compose.WithRevision(compose.GitRevision{Dir: cfg.Git.Dir, Logger: logger}))
	} else {
		composeOpts = append(composeOpts, compose.WithRevision(compose.None{}))
	}
	if opts.Source != "" {
		source := opts.Source
		composeOpts = append(composeOpts, compose.WithSource(compose.SourceFunc(func() (string, bool) {
			return source, true
		})))
	}

	root := gc.Root
	if root == "" {
		root = cfg.Root
	}

	return refig.New(
		refig.WithRoot(root),
		refig.WithLogger(logger),
		refig.WithComposer(compose.New(composeOpts...)),
	)
}

// ResolveRoot resolves the figures root for the flag value and records the
// source in gc.
func ResolveRoot(gc *cmdtypes.GlobalConfig, flagValue string) {
	var configValue string
	if gc.Config != nil {
		configValue = gc.Config.Root
	}
	result := config.ResolveRoot(config.ResolveRootOptions{
		FlagValue:   flagValue,
		ConfigValue: configValue,
	})
	gc.Root = result.Root
	gc.RootSource = result.Source

	shadowed := make(map[config.ConfigSource]any, len(result.Shadowed))
	for k, v := range result.Shadowed {
		shadowed[k] = v
	}
	config.LogResolvedValues(output.Logger(), []config.ResolvedValue{{
		Key:      "root",
		Value:    result.Root,
		Source:   result.Source,
		Shadowed: shadowed,
	}})
}
