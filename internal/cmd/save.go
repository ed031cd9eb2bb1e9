package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/cmdutil"
	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/output"
	"github.com/refig/refig/pkg/refig"
)

// saveOptions holds the flags for the save command.
type saveOptions struct {
	figure  cmdutil.FigureFlags
	meta    cmdutil.MetaFlags
	timeout time.Duration
}

// NewSaveCmd creates the save command.
func NewSaveCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &saveOptions{}

	c := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a figure with reproducibility metadata",
		Long: `Save a rendered figure under the figures root.

The image comes either from an existing file (--from) or from a plotting
command that writes it to stdout (--exec). The format follows the
extension of <name>: .png or .svg.

The figure is written twice with identical bytes:
  <root>/latest/<name>
  <root>/history/<stem>/_<timestamp>_<revision><ext>`,
		Example: `  # Save an image produced elsewhere
  refig save plot.png --from out/plot.png

  # Run a plotting script and tag the run
  refig save plot.svg --exec "python plot.py" --meta run=5 --meta tuned=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSave(c, args[0], gc, opts)
		},
	}

	opts.figure.AddTo(c)
	opts.meta.AddTo(c)
	c.Flags().DurationVar(&opts.timeout, "timeout", 0, "Maximum time to wait for rendering (0 means no limit)")

	return c
}

func runSave(c *cobra.Command, name string, gc *cmdtypes.GlobalConfig, opts *saveOptions) error {
	if err := opts.figure.Validate(); err != nil {
		return cmdutil.Fail("no figure to save", &rerrors.ConfigurationError{Message: err.Error()})
	}

	renderCfg, err := opts.figure.RenderConfig()
	if err != nil {
		return cmdutil.Fail("invalid flag", err)
	}

	extras, err := opts.meta.Extras()
	if err != nil {
		return cmdutil.Fail("invalid metadata", err)
	}

	fig, source := opts.figure.Figure()
	client := cmdutil.NewClient(gc, cmdutil.ClientOpts{Source: source})
	logger := output.FigureLogger(name)
	logger.Debug("saving figure", "source", source, "root", client.Root(), "extras", len(extras))

	var result refig.SaveResult
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var saveErr error
		result, saveErr = client.Save(ctx, name,
			refig.WithFigure(fig),
			refig.WithMetadata(extras),
			refig.WithRenderConfig(renderCfg),
		)
		return saveErr
	}, output.WithTitle(fmt.Sprintf("Rendering %s", name)), output.WithTimeout(opts.timeout))
	if err != nil {
		return cmdutil.Fail(fmt.Sprintf("saving %s", name), err)
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Saved %s", name)))
	fmt.Fprintln(out, output.FormatPathLine("latest ", result.LatestPath()))
	fmt.Fprintln(out, output.FormatPathLine("history", result.HistoryPath()))
	return nil
}
