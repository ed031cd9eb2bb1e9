// Package cmdutil provides shared command utilities.
// It centralizes flag groups, client construction, and error reporting
// for the figure commands.
package cmdutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/refig/refig/internal/record"
	"github.com/refig/refig/internal/render"
)

// FigureFlags selects where `refig save` takes the rendered image from.
type FigureFlags struct {
	From    string
	Exec    string
	Dir     string
	Options []string
}

// AddTo registers the figure flags on the given cobra command.
func (f *FigureFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.From, "from", "",
		"Already-rendered image file to save")
	cmd.Flags().StringVar(&f.Exec, "exec", "",
		"Plotting command that writes the image to stdout")
	cmd.Flags().StringVar(&f.Dir, "dir", "",
		"Working directory for --exec (default: current directory)")
	cmd.Flags().StringArrayVar(&f.Options, "opt", nil,
		"Render option key=value passed to --exec as REFIG_OPT_<KEY> (can be repeated)")
}

// Validate checks that exactly one of From or Exec is provided.
func (f *FigureFlags) Validate() error {
	if f.From != "" && f.Exec != "" {
		return fmt.Errorf("--from and --exec are mutually exclusive")
	}
	if f.From == "" && strings.TrimSpace(f.Exec) == "" {
		return fmt.Errorf("either --from or --exec is required")
	}
	return nil
}

// Figure returns the figure described by the flags and the file recorded as
// its source: the image file for --from, the resolved program for --exec.
func (f *FigureFlags) Figure() (render.Figure, string) {
	if f.From != "" {
		return render.FileFigure{Path: f.From}, absPath(f.From)
	}

	fields := strings.Fields(f.Exec)
	name, args := fields[0], fields[1:]
	source := name
	if resolved, err := exec.LookPath(name); err == nil {
		source = absPath(resolved)
	}
	return render.CommandFigure{Name: name, Args: args, Dir: f.Dir}, source
}

// RenderConfig parses the --opt values.
func (f *FigureFlags) RenderConfig() (render.RenderConfig, error) {
	cfg := render.RenderConfig{}
	for _, opt := range f.Options {
		key, value, ok := strings.Cut(opt, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --opt %q: expected key=value", opt)
		}
		cfg[key] = value
	}
	return cfg, nil
}

// MetaFlags holds the extra metadata given on the command line.
type MetaFlags struct {
	Values MetaValues
	File   string
}

// AddTo registers the metadata flags on the given cobra command.
func (f *MetaFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().Var(&f.Values, "meta",
		"Extra metadata key=value; JSON values are decoded (can be repeated)")
	cmd.Flags().StringVar(&f.File, "meta-file", "",
		"JSON file (comments allowed) with extra metadata")
}

// Extras merges the --meta-file object with the --meta values, which win
// on collision.
func (f *MetaFlags) Extras() (map[string]any, error) {
	extras := map[string]any{}
	if f.File != "" {
		data, err := os.ReadFile(f.File)
		if err != nil {
			return nil, fmt.Errorf("reading metadata file: %w", err)
		}
		fromFile, err := record.Unmarshal(jsonc.ToJSON(data))
		if err != nil {
			return nil, fmt.Errorf("parsing metadata file %s: %w", f.File, err)
		}
		for k, v := range fromFile {
			extras[k] = v
		}
	}
	for k, v := range f.Values.values {
		extras[k] = v
	}
	return extras, nil
}

var _ pflag.Value = (*MetaValues)(nil)

// MetaValues is a repeatable key=value flag. Values that parse as JSON keep
// their JSON type; anything else is a string.
type MetaValues struct {
	values map[string]any
}

// String implements pflag.Value.
func (m *MetaValues) String() string {
	if m == nil || len(m.values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m.values[k])
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Set implements pflag.Value.
func (m *MetaValues) Set(s string) error {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if m.values == nil {
		m.values = map[string]any{}
	}
	v, err := record.UnmarshalValue([]byte(raw))
	if err != nil {
		v = raw
	}
	m.values[key] = v
	return nil
}

// Type implements pflag.Value.
func (m *MetaValues) Type() string {
	return "key=value"
}

// Map returns the parsed values.
func (m *MetaValues) Map() map[string]any {
	return m.values
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
