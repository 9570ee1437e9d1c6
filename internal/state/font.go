package state

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontDPI is the resolution text is measured and rasterised at.
const FontDPI = 96

// DefaultFontSize is the point size new text is placed at.
const DefaultFontSize = 12

var fontFiles = []struct {
	family string
	ttf    []byte
}{
	{"Go Regular", goregular.TTF},
	{"Go Mono", gomono.TTF},
	{"Go Bold", gobold.TTF},
	{"Go Italic", goitalic.TTF},
}

// Font selects a bundled family at a point size.
type Font struct {
	Family string
	Size   int
}

// DefaultFont is the font the editor starts with.
func DefaultFont() Font {
	return Font{Family: fontFiles[0].family, Size: DefaultFontSize}
}

// FontFamilies lists the bundled families.
func FontFamilies() []string {
	names := make([]string, len(fontFiles))
	for i, f := range fontFiles {
		names[i] = f.family
	}
	return names
}

// KnownFamily reports whether family is bundled.
func KnownFamily(family string) bool {
	for _, f := range fontFiles {
		if f.family == family {
			return true
		}
	}
	return false
}

// TTF returns the font file for f's family, falling back to Go Regular.
func (f Font) TTF() []byte {
	for _, ff := range fontFiles {
		if ff.family == f.Family {
			return ff.ttf
		}
	}
	return fontFiles[0].ttf
}

// PixelSize is the em size in pixels at FontDPI.
func (f Font) PixelSize() float64 {
	return float64(f.Size) * FontDPI / 72
}

type faceKey struct {
	family string
	size   int
	scale  float64
}

var (
	faceMu    sync.Mutex
	parsed    = map[string]*truetype.Font{}
	faceCache = map[faceKey]font.Face{}
)

// Face returns a cached face for f rendered at the given scale.
func (f Font) Face(scale float64) (font.Face, error) {
	if scale <= 0 {
		scale = 1
	}
	faceMu.Lock()
	defer faceMu.Unlock()

	key := faceKey{f.Family, f.Size, scale}
	if face, ok := faceCache[key]; ok {
		return face, nil
	}
	tt, ok := parsed[f.Family]
	if !ok {
		var err error
		tt, err = truetype.Parse(f.TTF())
		if err != nil {
			return nil, fmt.Errorf("parse font %q: %w", f.Family, err)
		}
		parsed[f.Family] = tt
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    float64(f.Size) * scale,
		DPI:     FontDPI,
		Hinting: font.HintingFull,
	})
	faceCache[key] = face
	return face, nil
}

// TextMetrics measures content in f at unit scale.
func TextMetrics(content string, f Font) (width, ascent, descent float64) {
	face, err := f.Face(1)
	if err != nil {
		// Bundled fonts always parse; approximate if one ever does not.
		px := f.PixelSize()
		return float64(len(content)) * px * 0.6, px * 0.8, px * 0.2
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	m := face.Metrics()
	adv := font.MeasureString(face, content)
	return float64(adv) / 64, float64(m.Ascent) / 64, float64(m.Descent) / 64
}
