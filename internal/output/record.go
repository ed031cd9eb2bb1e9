package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/refig/refig/internal/record"
)

// WriteRecord writes rec to w. JSON is indented by two spaces with sorted
// keys; YAML uses sorted keys as well.
func WriteRecord(w io.Writer, rec record.Record, format OutputFormat) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = rec.MarshalIndent()
	case FormatYAML:
		data, err = yaml.Marshal(yamlValue(map[string]any(rec)))
	default:
		return fmt.Errorf("unsupported record format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding metadata as %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// yamlValue replaces json.Number values, integers too large for int64, with
// plain scalars so they print as numbers rather than quoted strings.
func yamlValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}
