// Package main is the entry point for the refig CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/refig/refig/internal/cmd"
	rerrors "github.com/refig/refig/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *rerrors.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(rerrors.ExitCodeFromError(err))
	}
}
