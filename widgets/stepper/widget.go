package stepper

import (
	"chime-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	buttonWidth = 50
	labelInset  = 6
)

// Widget is one "- label +" row
type Widget struct {
	binding  Binding
	position LabelPosition

	bounds   sdl.Rect
	decrease sdl.Rect
	increase sdl.Rect
}

// NewWidget creates a stepper bound to binding
func NewWidget(binding Binding, position LabelPosition) *Widget {
	return &Widget{binding: binding, position: position}
}

// Layout places the row and its two buttons inside the given area
func (w *Widget) Layout(x, y, width, height int32) {
	w.bounds = sdl.Rect{X: x, Y: y, W: width, H: height}
	w.decrease = sdl.Rect{X: x, Y: y, W: buttonWidth, H: height}
	w.increase = sdl.Rect{X: x + width - buttonWidth, Y: y, W: buttonWidth, H: height}
}

// Bounds returns the area assigned by Layout
func (w *Widget) Bounds() sdl.Rect {
	return w.bounds
}

// Click runs the button under (x, y) if it is enabled and reports whether
// the point was on the row at all
func (w *Widget) Click(x, y int32) bool {
	p := sdl.Point{X: x, Y: y}
	switch {
	case p.InRect(&w.decrease):
		if w.binding.CanDecrease() {
			w.binding.Decrease()
		}
		return true
	case p.InRect(&w.increase):
		if w.binding.CanIncrease() {
			w.binding.Increase()
		}
		return true
	}
	return p.InRect(&w.bounds)
}

// Decrease steps down when allowed
func (w *Widget) Decrease() {
	if w.binding.CanDecrease() {
		w.binding.Decrease()
	}
}

// Increase steps up when allowed
func (w *Widget) Increase() {
	if w.binding.CanIncrease() {
		w.binding.Increase()
	}
}

// Draw renders both buttons and the label. Disabled buttons are greyed out;
// the focused row gets an outline.
func (w *Widget) Draw(renderer *sdl.Renderer, labelFont, glyphFont *ttf.Font, focused bool) error {
	if focused {
		renderer.SetDrawColor(59, 130, 246, 255)
		renderer.DrawRect(&w.bounds)
	}

	if err := drawButton(renderer, w.decrease, "-", w.binding.CanDecrease(), glyphFont); err != nil {
		return err
	}
	if err := drawButton(renderer, w.increase, "+", w.binding.CanIncrease(), glyphFont); err != nil {
		return err
	}

	if labelFont == nil {
		return nil
	}
	label := w.binding.Label()
	labelX := w.bounds.X + buttonWidth + labelInset
	labelY := w.bounds.Y
	if w.position == LabelBottom {
		labelY = w.bounds.Y + w.bounds.H - ui.LinesHeight(label, labelFont)
	}
	return ui.RenderLines(renderer, label, labelX, labelY, ui.White, labelFont, ui.AlignLeft)
}

func drawButton(renderer *sdl.Renderer, rect sdl.Rect, glyph string, enabled bool, font *ttf.Font) error {
	color := ui.White
	if enabled {
		renderer.SetDrawColor(51, 65, 85, 255)
	} else {
		renderer.SetDrawColor(30, 41, 59, 255)
		color = ui.Disabled
	}
	renderer.FillRect(&rect)

	if font == nil {
		return nil
	}
	textY := rect.Y + rect.H/2 - int32(font.Height())/2
	return ui.RenderText(renderer, glyph, rect.X+rect.W/2, textY, color, font, ui.AlignCenter)
}
