package export

import (
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"

	"VectorBoard/internal/render"
)

// JPEGQuality is the encoder quality used for JPEG export.
const JPEGQuality = 95

// SavePNG renders scene at 1:1 and writes it to path as PNG.
func SavePNG(path string, width, height int, scene render.Scene) error {
	dc := render.NewContext(width, height, 1, scene)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	log.Printf("[EXPORT] Saved PNG %s (%dx%d)", path, width, height)
	return nil
}

// SaveJPEG renders scene at 1:1 and writes it to path as JPEG.
func SaveJPEG(path string, width, height int, scene render.Scene) error {
	img := render.Render(width, height, 1, scene)
	if err := gg.SaveJPG(path, img, JPEGQuality); err != nil {
		return fmt.Errorf("save jpeg %s: %w", path, err)
	}
	log.Printf("[EXPORT] Saved JPEG %s (%dx%d)", path, width, height)
	return nil
}

// EncodePNG renders scene and writes PNG bytes to w.
func EncodePNG(w io.Writer, width, height int, scene render.Scene) error {
	if err := render.NewContext(width, height, 1, scene).EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeJPEG renders scene and writes JPEG bytes to w.
func EncodeJPEG(w io.Writer, width, height int, scene render.Scene) error {
	img := render.Render(width, height, 1, scene)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// EncodeBMP renders scene and writes BMP bytes to w.
func EncodeBMP(w io.Writer, width, height int, scene render.Scene) error {
	if err := bmp.Encode(w, render.Render(width, height, 1, scene)); err != nil {
		return fmt.Errorf("encode bmp: %w", err)
	}
	return nil
}

// SaveBMP renders scene at 1:1 and writes it to path as BMP.
func SaveBMP(path string, width, height int, scene render.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeBMP(f, width, height, scene); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("[EXPORT] Saved BMP %s (%dx%d)", path, width, height)
	return nil
}
