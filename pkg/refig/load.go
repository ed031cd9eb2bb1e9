package refig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/refig/refig/internal/pngmeta"
	"github.com/refig/refig/internal/svgmeta"
)

// Load reads the metadata record embedded in the figure at path. Files
// starting with the PNG signature are read as PNG, everything else as SVG.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w: %w", path, ErrNotFound, err)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rec Record
	if pngmeta.IsPNGHeader(data) {
		rec, err = pngmeta.Extract(data)
	} else {
		rec, err = svgmeta.Extract(data)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return rec, nil
}
