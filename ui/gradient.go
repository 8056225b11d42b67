package ui

import "github.com/veandco/go-sdl2/sdl"

// Backdrop colors for the home view.
var (
	BackdropTop    = sdl.Color{R: 24, G: 16, B: 4, A: 255}
	BackdropBottom = sdl.Color{R: 0, G: 0, B: 0, A: 255}
)

// Blend returns the color a fraction t of the way from a to b. t is clamped
// to [0, 1].
func Blend(a, b sdl.Color, t float64) sdl.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t + 0.5)
	}
	return sdl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// DrawGradientRect fills a rectangle with a vertical gradient from top to
// bottom.
func DrawGradientRect(renderer *sdl.Renderer, x, y, width, height int32, top, bottom sdl.Color) {
	for i := int32(0); i < height; i++ {
		var t float64
		if height > 1 {
			t = float64(i) / float64(height-1)
		}
		c := Blend(top, bottom, t)
		renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		renderer.DrawLine(x, y+i, x+width-1, y+i)
	}
}
