// Package export writes a drawing to raster, PDF and SVG files and reads
// SVG files back into shapes.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"VectorBoard/internal/render"
)

// ErrUnsupportedFormat is returned for a file extension no encoder handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DefaultExtension is appended to export paths given without one.
const DefaultExtension = ".png"

// Extensions lists every format Save understands.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".pdf", ".svg"}
}

// Format returns the lower-case extension of path, or DefaultExtension.
func Format(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// Save writes the drawing to path in the format its extension names. A
// path with no extension is saved as PNG with ".png" appended. It returns
// the path actually written.
func Save(path string, width, height int, scene render.Scene) (string, error) {
	if filepath.Ext(path) == "" {
		path += DefaultExtension
	}
	switch Format(path) {
	case ".png":
		return path, SavePNG(path, width, height, scene)
	case ".jpg", ".jpeg":
		return path, SaveJPEG(path, width, height, scene)
	case ".bmp":
		return path, SaveBMP(path, width, height, scene)
	case ".pdf":
		return path, SavePDF(path, width, height, scene.Shapes)
	case ".svg":
		return path, SaveSVG(path, width, height, scene.Shapes)
	}
	return path, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Encode writes the drawing to w in format, an extension such as ".pdf".
// An empty format means PNG.
func Encode(w io.Writer, format string, width, height int, scene render.Scene) error {
	if format == "" {
		format = DefaultExtension
	}
	switch strings.ToLower(format) {
	case ".png":
		return EncodePNG(w, width, height, scene)
	case ".jpg", ".jpeg":
		return EncodeJPEG(w, width, height, scene)
	case ".bmp":
		return EncodeBMP(w, width, height, scene)
	case ".pdf":
		return WritePDF(w, width, height, scene.Shapes)
	case ".svg":
		return WriteSVG(w, width, height, scene.Shapes)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
