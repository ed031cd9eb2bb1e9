package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show refig version information.

Displays the refig version, commit, build date and Go version. The same
version is recorded as refig_version in saved figures.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(c *cobra.Command, _ []string) error {
	info := version.GetInfo()
	out := c.OutOrStdout()

	fmt.Fprintf(out, "refig version %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)

	return nil
}
