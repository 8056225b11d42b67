package settingChimes

import (
	"chime-frame/pkg/chimes"
	"chime-frame/pkg/selector"
	"chime-frame/ui"
	"chime-frame/widgets/stepper"

	"github.com/veandco/go-sdl2/sdl"
)

// NewSettingChimesScreen builds the screen over an open chimes model
func NewSettingChimesScreen(model *chimes.Model) *SettingChimesScreen {
	s := &SettingChimesScreen{model: model}
	s.rows[frequencyRow] = stepper.NewWidget(bind(model.Frequency()), stepper.LabelBottom)
	s.rows[durationRow] = stepper.NewWidget(bind(model.Duration()), stepper.LabelTop)
	s.Layout(240, 240)
	return s
}

// bind exposes a selector to a stepper through its method values.
func bind[T any](sel *selector.Selector[T]) stepper.Binding {
	return stepper.Binding{
		Label:       sel.Label,
		CanDecrease: sel.CanDecrease,
		CanIncrease: sel.CanIncrease,
		Decrease:    sel.Decrease,
		Increase:    sel.Increase,
	}
}

// Layout stacks the rows under the title for a screen of the given size
func (s *SettingChimesScreen) Layout(width, height int32) {
	rowWidth := width - 2*containerMargin
	for i, row := range s.rows {
		y := int32(containerTop + i*(rowHeight+rowGap))
		row.Layout(containerMargin, y, rowWidth, rowHeight)
	}
}

// Focus returns the index of the row keyboard steps apply to
func (s *SettingChimesScreen) Focus() int {
	return s.focus
}

// MoveFocus moves keyboard focus between rows with wrapping
func (s *SettingChimesScreen) MoveFocus(delta int) {
	s.focus = (s.focus + delta + rowCount) % rowCount
}

// Decrease steps the focused row down
func (s *SettingChimesScreen) Decrease() {
	s.rows[s.focus].Decrease()
}

// Increase steps the focused row up
func (s *SettingChimesScreen) Increase() {
	s.rows[s.focus].Increase()
}

// Click forwards a pointer press to the row under it and focuses that row
func (s *SettingChimesScreen) Click(x, y int32) {
	for i, row := range s.rows {
		if row.Click(x, y) {
			s.focus = i
			return
		}
	}
}

// Draw renders the title and both rows
func (s *SettingChimesScreen) Draw(renderer *sdl.Renderer, fonts *ui.Fonts, width, height int32) error {
	if fonts == nil {
		return nil
	}

	titleX := width/2 + containerMargin
	if err := ui.RenderText(renderer, "Chimes", titleX, 15, ui.White, fonts.Large, ui.AlignCenter); err != nil {
		return err
	}
	drawClockIcon(renderer, titleX-70, 27)

	for i, row := range s.rows {
		if err := row.Draw(renderer, fonts.Medium, fonts.Large, i == s.focus); err != nil {
			return err
		}
	}
	return nil
}

// Close saves the settings. The screen must not be used afterwards.
func (s *SettingChimesScreen) Close() error {
	return s.model.Close()
}

// drawClockIcon draws a small orange clock face centred on (cx, cy).
func drawClockIcon(renderer *sdl.Renderer, cx, cy int32) {
	const r = 9
	renderer.SetDrawColor(ui.Orange.R, ui.Orange.G, ui.Orange.B, ui.Orange.A)
	renderer.DrawRect(&sdl.Rect{X: cx - r, Y: cy - r, W: 2*r + 1, H: 2*r + 1})
	renderer.DrawLine(cx, cy, cx, cy-r+3)
	renderer.DrawLine(cx, cy, cx+r-4, cy)
}
