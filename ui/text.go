package ui

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Align positions text horizontally relative to the x passed to RenderText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

var (
	White    = sdl.Color{R: 255, G: 255, B: 255, A: 255}
	Muted    = sdl.Color{R: 148, G: 163, B: 184, A: 255}
	Disabled = sdl.Color{R: 71, G: 85, B: 105, A: 255}
	Orange   = sdl.Color{R: 255, G: 165, B: 0, A: 255}
)

// RenderText renders a single line of text with its left edge, centre or
// right edge at x depending on align. Nothing is drawn without a font.
func RenderText(renderer *sdl.Renderer, text string, x, y int32, color sdl.Color, font *ttf.Font, align Align) error {
	if font == nil || text == "" {
		return nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return err
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	_, _, w, h, err := texture.Query()
	if err != nil {
		return err
	}

	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}

	dstRect := sdl.Rect{X: x, Y: y, W: w, H: h}
	return renderer.Copy(texture, nil, &dstRect)
}

// RenderLines renders newline separated text one line below the other,
// starting at y.
func RenderLines(renderer *sdl.Renderer, text string, x, y int32, color sdl.Color, font *ttf.Font, align Align) error {
	if font == nil {
		return nil
	}
	lineHeight := int32(font.LineSkip())
	for i, line := range strings.Split(text, "\n") {
		if err := RenderText(renderer, line, x, y+int32(i)*lineHeight, color, font, align); err != nil {
			return err
		}
	}
	return nil
}

// LinesHeight returns the pixel height RenderLines needs for text.
func LinesHeight(text string, font *ttf.Font) int32 {
	if font == nil {
		return 0
	}
	return int32(strings.Count(text, "\n")+1) * int32(font.LineSkip())
}
