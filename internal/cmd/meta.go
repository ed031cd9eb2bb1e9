package cmd

import (
	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/cmdutil"
	"github.com/refig/refig/internal/output"
	"github.com/refig/refig/pkg/refig"
)

// NewMetaCmd creates the meta command.
func NewMetaCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "meta <path>",
		Short: "Print the metadata embedded in a figure",
		Long: `Print the refig metadata embedded in a PNG or SVG figure.

The record is printed as indented JSON with sorted keys. Use -o yaml for
YAML output.`,
		Example: `  # Show metadata of the latest copy
  refig meta figures/latest/plot.png

  # As YAML
  refig meta figures/history/plot/_20261016T120000_abc1234.svg -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runMeta(c, args[0], outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "json", "Output format: json, yaml")

	return c
}

func runMeta(c *cobra.Command, path, outputFlag string) error {
	format, err := output.ParseOutputFormat(outputFlag, output.MetaFormats()...)
	if err != nil {
		return cmdutil.Fail("invalid flag", err)
	}

	rec, err := refig.Load(path)
	if err != nil {
		return cmdutil.Fail("reading metadata", err)
	}
	output.Debug("metadata loaded", "path", path, "keys", len(rec))

	if err := output.WriteRecord(c.OutOrStdout(), rec, format); err != nil {
		return cmdutil.Fail("writing metadata", err)
	}
	return nil
}
