// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refig/refig/internal/cmd/config"
	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/cmdutil"
	iconfig "github.com/refig/refig/internal/config"
	"github.com/refig/refig/internal/output"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	config     string
	root       string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the refig CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	gc := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "refig",
		Short: "Reproducible figures",
		Long: `refig saves rendered figures together with the metadata needed to
reproduce them: source file, creation time, notebook cell, git revision
and refig version. Each save updates figures/latest/<name> and adds a
snapshot under figures/history/<stem>/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          unknownSubcommand,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, flags, gc)
		},
		RunE: func(c *cobra.Command, _ []string) error {
			_ = c.Help()
			return &cmdtypes.ExitError{Code: ExitGeneralError, Printed: true}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: REFIG_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", "Figures root directory (env: REFIG_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewMetaCmd(gc),
		NewSaveCmd(gc),
		NewHistoryCmd(gc),
		NewDiffCmd(gc),
		NewVersionCmd(gc),
		config.NewConfigCmd(gc),
	)

	return rootCmd
}

// unknownSubcommand rejects positional arguments on the root command and
// prints the usage, which SilenceUsage would otherwise hide.
func unknownSubcommand(c *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	fmt.Fprint(c.ErrOrStderr(), c.UsageString())
	msg := fmt.Sprintf("unknown command %q for %q", args[0], c.CommandPath())
	if suggestions := c.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += "\n\nDid you mean this?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return fmt.Errorf("%s", msg)
}

// initializeGlobals loads configuration, sets up logging and fills gc.
func initializeGlobals(c *cobra.Command, flags *rootFlags, gc *cmdtypes.GlobalConfig) error {
	configPath, loadErr := iconfig.ResolveConfigPath(iconfig.ResolveConfigPathOptions{FlagValue: flags.config})

	var cfg *iconfig.Config
	if loadErr == nil {
		cfg, loadErr = iconfig.NewLoader().LoadWithDefaults(configPath.ConfigPath)
	}
	if loadErr != nil {
		cfg = iconfig.DefaultConfig()
	}

	logCfg := output.LogConfig{Verbose: flags.verbose}
	// flag (if explicitly set) > config > default (nil = true)
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		// Commands that don't touch figures still work with defaults.
		output.Warn("ignoring config file", "path", configPath.ConfigPath, "error", loadErr)
	}

	gc.Config = cfg
	gc.ConfigPath = configPath.ConfigPath
	gc.Verbose = flags.verbose
	cmdutil.ResolveRoot(gc, flags.root)

	output.Debug("initializing CLI",
		"config", gc.ConfigPath,
		"config_source", configPath.Source,
		"root", gc.Root,
		"git", cfg.GitEnabled(),
		"cell_env", cfg.Cell.Env,
	)
	return nil
}
