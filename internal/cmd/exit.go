package cmd

import "github.com/refig/refig/internal/cmdtypes"

// Exit codes returned by refig commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = cmdtypes.ExitSuccess

	// ExitGeneralError indicates an unspecified error occurred, or that
	// `refig diff` found differences.
	ExitGeneralError = cmdtypes.ExitGeneralError

	// ExitFormatError indicates an unreadable image or unsupported extension.
	ExitFormatError = cmdtypes.ExitFormatError

	// ExitConfigurationError indicates no figure source was given.
	ExitConfigurationError = cmdtypes.ExitConfigurationError

	// ExitMetadataError indicates metadata could not be embedded or loaded.
	ExitMetadataError = cmdtypes.ExitMetadataError

	// ExitNotFound indicates a figure, snapshot or file was not found.
	ExitNotFound = cmdtypes.ExitNotFound
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitFormatError:
		return "Format Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitMetadataError:
		return "Metadata Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
