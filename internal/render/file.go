package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	rerrors "github.com/refig/refig/internal/errors"
)

// FileFigure is an image that was rendered ahead of time and stored on disk.
type FileFigure struct {
	Path string
}

// Render implements Figure. It fails when the requested format does not
// match the kind of file found at Path.
func (f FileFigure) Render(ctx context.Context, cfg RenderConfig) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rerrors.Wrap(rerrors.ErrNotFound, "figure file "+f.Path)
		}
		return nil, fmt.Errorf("reading figure %s: %w", f.Path, err)
	}

	want := cfg.Format()
	if got := Sniff(data); want != "" && got != want {
		if got == "" {
			got = "unknown"
		}
		return nil, rerrors.NewFormatError(want, fmt.Sprintf("%s holds %s data", f.Path, got), nil)
	}
	return data, nil
}
