package cmdutil

import (
	"errors"
	"fmt"

	"github.com/refig/refig/internal/cmdtypes"
	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/output"
)

// Fail logs err under msg and returns it as an *ExitError marked as printed,
// with the exit code derived from the error taxonomy.
func Fail(msg string, err error) error {
	PrintError(msg, err)
	return &cmdtypes.ExitError{Err: err, Code: rerrors.ExitCodeFromError(err), Printed: true}
}

// PrintError prints a command error in a user-friendly format. Load and
// embedding failures get the file or format as a separate key.
func PrintError(msg string, err error) {
	var (
		loadErr        *rerrors.LoadError
		embedErr       *rerrors.EmbeddingError
		unsupportedErr *rerrors.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &loadErr):
		output.Error(msg, "file", loadErr.Path, "error", loadErr.Err)
	case errors.As(err, &embedErr):
		output.Error(msg, "format", embedErr.Format, "error", embedErr.Err)
	case errors.As(err, &unsupportedErr):
		output.Error(fmt.Sprintf("%s: %s", msg, unsupportedErr.Error()))
	default:
		output.Error(msg, "error", err)
	}
}
