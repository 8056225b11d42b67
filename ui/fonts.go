package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/ttf"
)

// Fonts manages a set of TrueType fonts at different sizes
type Fonts struct {
	Large  *ttf.Font // screen titles
	Medium *ttf.Font // option labels
	Small  *ttf.Font // +/- glyphs and hints
}

// Point sizes at a 240px tall watch display; larger screens scale up.
const (
	baseHeight = 240
	largePt    = 24
	mediumPt   = 20
	smallPt    = 14
)

var fallbackFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
}

// LoadFonts opens preferred (when set) or the first system font that works,
// sized for a display screenHeight pixels tall.
func LoadFonts(preferred string, screenHeight int32) (*Fonts, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize TTF: %v", err)
	}

	paths := fallbackFontPaths
	if preferred != "" {
		paths = append([]string{preferred}, fallbackFontPaths...)
	}

	scale := float64(screenHeight) / baseHeight
	if scale < 1 {
		scale = 1
	}

	fonts := &Fonts{
		Large:  openFirst(paths, int(largePt*scale)),
		Medium: openFirst(paths, int(mediumPt*scale)),
		Small:  openFirst(paths, int(smallPt*scale)),
	}
	if fonts.Large == nil && fonts.Medium == nil && fonts.Small == nil {
		return fonts, fmt.Errorf("no usable font found in %v", paths)
	}
	return fonts, nil
}

func openFirst(paths []string, size int) *ttf.Font {
	for _, path := range paths {
		if font, err := ttf.OpenFont(path, size); err == nil {
			return font
		}
	}
	return nil
}

// Close cleans up font resources
func (f *Fonts) Close() {
	if f == nil {
		return
	}
	if f.Large != nil {
		f.Large.Close()
	}
	if f.Medium != nil {
		f.Medium.Close()
	}
	if f.Small != nil {
		f.Small.Close()
	}
}
