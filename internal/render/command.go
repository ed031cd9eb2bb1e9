package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Environment passed to plotting commands.
const (
	EnvFormat    = "REFIG_FORMAT"
	EnvOptPrefix = "REFIG_OPT_"
)

// CommandFigure runs an external plotting program and takes its standard
// output as the rendered image. The requested format is exported as
// REFIG_FORMAT and every other option as REFIG_OPT_<KEY>.
type CommandFigure struct {
	Name string
	Args []string
	// Dir is the working directory of the command. Empty means the
	// current directory.
	Dir string
}

// Render implements Figure.
func (c CommandFigure) Render(ctx context.Context, cfg RenderConfig) ([]byte, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("plotting command is empty")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), commandEnv(cfg)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", c.Name, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", c.Name, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s produced no output", c.Name)
	}
	return stdout.Bytes(), nil
}

func commandEnv(cfg RenderConfig) []string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == FormatKey {
			env = append(env, EnvFormat+"="+cfg.Format())
			continue
		}
		env = append(env, EnvOptPrefix+envName(k)+"="+fmt.Sprint(cfg[k]))
	}
	return env
}

// envName upper-cases key and replaces anything outside [A-Z0-9_] with '_'.
func envName(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
