package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/cmdutil"
	"github.com/refig/refig/internal/output"
	"github.com/refig/refig/pkg/refig"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the metadata of two figures",
		Long: `Compare the refig metadata embedded in two figures, for example the
latest copy and an older snapshot.

Exits 0 when the records are identical and 1 when they differ.`,
		Example: `  refig diff figures/history/plot/_20261016T120000_abc1234.png figures/latest/plot.png`,
		Args:    cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args[0], args[1])
		},
	}
}

func runDiff(c *cobra.Command, fromPath, toPath string) error {
	from, err := refig.Load(fromPath)
	if err != nil {
		return cmdutil.Fail("reading metadata", err)
	}
	to, err := refig.Load(toPath)
	if err != nil {
		return cmdutil.Fail("reading metadata", err)
	}

	report, changed, err := output.DiffRecords(fromPath, from, toPath, to, output.UseColor())
	if err != nil {
		return cmdutil.Fail("comparing metadata", err)
	}

	out := c.OutOrStdout()
	if !changed {
		fmt.Fprintln(out, "No differences")
		return nil
	}
	fmt.Fprintln(out, report)
	return &cmdtypes.ExitError{Code: ExitGeneralError, Printed: true}
}
