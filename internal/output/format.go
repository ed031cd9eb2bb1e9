package output

import (
	"fmt"
	"strings"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs in table format.
	FormatTable OutputFormat = "table"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is known.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses s into one of allowed. Matching is
// case-insensitive and "yml" is accepted for YAML.
func ParseOutputFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(names, ", "))
}

// MetaFormats are the formats accepted by `refig meta`.
func MetaFormats() []OutputFormat {
	return []OutputFormat{FormatJSON, FormatYAML}
}

// HistoryFormats are the formats accepted by `refig history`.
func HistoryFormats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatJSON}
}
