package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/cmdutil"
	"github.com/refig/refig/internal/layout"
	"github.com/refig/refig/internal/output"
)

// snapshotJSON is the JSON form of a history entry.
type snapshotJSON struct {
	Path      string     `json:"path"`
	Timestamp string     `json:"timestamp"`
	Time      *time.Time `json:"time,omitempty"`
	Revision  string     `json:"revision"`
	Size      int64      `json:"size"`
	Digest    string     `json:"digest"`
	Latest    bool       `json:"latest"`
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "history <name>",
		Short: "List the saved snapshots of a figure",
		Long: `List the snapshots under <root>/history/<stem>/ with their timestamp,
git revision, size and BLAKE3 digest. The snapshot whose content matches
the current latest copy is marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runHistory(c, args[0], gc, outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, json")

	return c
}

func runHistory(c *cobra.Command, name string, gc *cmdtypes.GlobalConfig, outputFlag string) error {
	format, err := output.ParseOutputFormat(outputFlag, output.HistoryFormats()...)
	if err != nil {
		return cmdutil.Fail("invalid flag", err)
	}

	snapshots, err := layout.New(gc.Root).Snapshots(name)
	if err != nil {
		return cmdutil.Fail("listing history", err)
	}
	output.FigureLogger(name).Debug("history listed", "snapshots", len(snapshots))

	out := c.OutOrStdout()
	if format == output.FormatJSON {
		entries := make([]snapshotJSON, len(snapshots))
		for i, s := range snapshots {
			entries[i] = snapshotJSON{
				Path:      s.Path,
				Timestamp: s.Timestamp,
				Revision:  s.Revision,
				Size:      s.Size,
				Digest:    s.Digest,
				Latest:    s.Latest,
			}
			if !s.Time.IsZero() {
				t := s.Time
				entries[i].Time = &t
			}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return cmdutil.Fail("encoding history", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(snapshots) == 0 {
		fmt.Fprintf(out, "No snapshots for %s\n", name)
		return nil
	}
	fmt.Fprintln(out, output.RenderHistoryTable(snapshots))
	return nil
}
