package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/refig/refig/internal/cmdtypes"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging the config file, REFIG_*
environment variables and defaults. The figures root is shown as resolved
for this invocation together with where it came from.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runShow(c, gc)
		},
	}
}

func runShow(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	cfg := gc.Config.WithDefaults()
	if gc.Root != "" {
		cfg.Root = gc.Root
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "# config: %s\n", gc.ConfigPath)
	if gc.RootSource != "" {
		fmt.Fprintf(out, "# root source: %s\n", gc.RootSource)
	}
	_, err = out.Write(data)
	return err
}
