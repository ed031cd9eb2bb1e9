// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/refig/refig/internal/config"
	rerrors "github.com/refig/refig/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.Config
	ConfigPath string // resolved --config path
	Root       string // resolved figures root
	RootSource config.ConfigSource
	Verbose    bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess            = rerrors.ExitSuccess
	ExitGeneralError       = rerrors.ExitGeneralError
	ExitFormatError        = rerrors.ExitFormatError
	ExitConfigurationError = rerrors.ExitConfigurationError
	ExitMetadataError      = rerrors.ExitMetadataError
	ExitNotFound           = rerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError so cmd code and
// main share one type.
type ExitError = rerrors.ExitError

// NewExitError creates an ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return rerrors.NewExitError(err, code)
}
