package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"

	"VectorBoard/internal/state"
)

// ImageExtensions lists the picture formats ReadImage decodes.
func ImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp"}
}

// ReadImage decodes a PNG, JPEG or BMP picture into a shape whose top left
// corner sits at anchor.
func ReadImage(r io.Reader, anchor state.Point) (*state.Shape, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	log.Printf("[EXPORT] Decoded %s image %dx%d", format, b.Dx(), b.Dy())
	return state.NewShape(state.DefaultStyle(), state.NewImage(src, anchor)), nil
}

// ReadImageFile decodes the picture at path.
func ReadImageFile(path string, anchor state.Point) (*state.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := ReadImage(f, anchor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

const pngDataPrefix = "data:image/png;base64,"

// imageDataURI embeds src as a base64 PNG.
func imageDataURI(src image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return pngDataPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// svgImage reads an image element whose href is a base64 data URI.
func svgImage(el *svgElement) (*state.Image, bool) {
	href := el.attrs["href"]
	if !strings.HasPrefix(href, "data:image/") {
		return nil, false
	}
	_, payload, ok := strings.Cut(href, ";base64,")
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, false
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	pic := state.NewImage(src, state.Point{X: el.float("x"), Y: el.float("y")})
	if w := el.float("width"); w > 0 {
		pic.Width = w
	}
	if h := el.float("height"); h > 0 {
		pic.Height = h
	}
	return pic, true
}
