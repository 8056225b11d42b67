package root

import (
	"fmt"
	"time"

	"chime-frame/pkg/chimes"
	"chime-frame/pkg/input"
	"chime-frame/pkg/logger"
	"chime-frame/screens/settingChimes"
	"chime-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

// NewRootScreen creates the root screen on the home view
func NewRootScreen(window *sdl.Window, renderer *sdl.Renderer, fonts *ui.Fonts, store chimes.Store, actuator chimes.Actuator) *RootScreen {
	rs := &RootScreen{
		window:       window,
		renderer:     renderer,
		fonts:        fonts,
		store:        store,
		actuator:     actuator,
		keyTracker:   input.NewKeyPressTracker(),
		clickTracker: input.NewClickTracker(),
		sample:       input.SampleFrame,
		now:          time.Now,
	}
	rs.size = func() (int32, int32) { return rs.window.GetSize() }
	rs.ringer = chimes.NewRinger(store, actuator, rs.now())
	return rs
}

// Update samples input, runs the chime schedule and dispatches to the open
// screen
func (rs *RootScreen) Update() error {
	rs.frame = rs.sample()

	rs.ringer.Tick(rs.now())

	if rs.chimesScreen != nil {
		rs.handleChimesInput()
		return nil
	}
	return rs.handleHomeInput()
}

// handleHomeInput opens the settings screen or quits
func (rs *RootScreen) handleHomeInput() error {
	// Every tracker sees every frame so a press is never carried over into
	// the next screen.
	open := rs.pressed(sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE, sdl.SCANCODE_DOWN)
	clicked := rs.clickTracker.Clicked(rs.frame.Pointer)
	quit := rs.pressed(sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q)

	switch {
	case open || clicked:
		rs.openChimes()
	case quit:
		return ErrQuit
	}
	return nil
}

// handleChimesInput maps keys and clicks onto the settings screen
func (rs *RootScreen) handleChimesInput() {
	s := rs.chimesScreen

	if rs.pressed(sdl.SCANCODE_UP) {
		s.MoveFocus(-1)
	}
	if rs.pressed(sdl.SCANCODE_DOWN, sdl.SCANCODE_TAB) {
		s.MoveFocus(1)
	}
	if rs.pressed(sdl.SCANCODE_LEFT, sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS) {
		s.Decrease()
	}
	if rs.pressed(sdl.SCANCODE_RIGHT, sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS) {
		s.Increase()
	}
	if p := rs.frame.Pointer; rs.clickTracker.Clicked(p) {
		s.Click(p.X, p.Y)
	}

	if rs.pressed(sdl.SCANCODE_ESCAPE, sdl.SCANCODE_BACKSPACE) {
		rs.closeChimes()
	}
}

func (rs *RootScreen) pressed(scancodes ...sdl.Scancode) bool {
	return rs.keyTracker.IsPressed(rs.frame.Keys, scancodes...)
}

// openChimes builds a fresh settings screen from the stored values
func (rs *RootScreen) openChimes() {
	model, err := chimes.New(rs.store, rs.actuator)
	if err != nil {
		logger.Error("Failed to open chimes settings", "error", err)
		return
	}

	screen := settingChimes.NewSettingChimesScreen(model)
	w, h := rs.size()
	screen.Layout(w, h)
	rs.chimesScreen = screen
}

// closeChimes tears the settings screen down, which saves the settings
func (rs *RootScreen) closeChimes() {
	if err := rs.chimesScreen.Close(); err != nil {
		logger.Warn("Failed to save chime settings", "error", err)
	}
	rs.chimesScreen = nil
}

// Draw renders the complete frame using SDL2
func (rs *RootScreen) Draw() error {
	w, h := rs.size()

	rs.renderer.SetDrawColor(0, 0, 0, 255)
	rs.renderer.Clear()

	var err error
	if rs.chimesScreen != nil {
		err = rs.chimesScreen.Draw(rs.renderer, rs.fonts, w, h)
	} else {
		err = rs.drawHome(w, h)
	}
	if err != nil {
		return err
	}

	rs.renderer.Present()
	return nil
}

// drawHome renders the clock and the current chime settings
func (rs *RootScreen) drawHome(width, height int32) error {
	if rs.fonts == nil {
		return nil
	}

	ui.DrawGradientRect(rs.renderer, 0, 0, width, height, ui.BackdropTop, ui.BackdropBottom)

	cx := width / 2
	now := rs.now()
	if err := ui.RenderText(rs.renderer, now.Format("15:04"), cx, height/4, ui.White, rs.fonts.Large, ui.AlignCenter); err != nil {
		return err
	}

	freq := chimes.FrequencyOptions()[chimes.FrequencyIndex(rs.store.GetChimesFrequency())]
	summary := fmt.Sprintf("Chime every %s\nBuzz %d ms", freq.Label, rs.store.GetChimesDuration())
	if err := ui.RenderLines(rs.renderer, summary, cx, height/2, ui.Muted, rs.fonts.Small, ui.AlignCenter); err != nil {
		return err
	}

	next := "Next chime " + rs.ringer.NextChime().Format("15:04")
	return ui.RenderText(rs.renderer, next, cx, height-40, ui.Muted, rs.fonts.Small, ui.AlignCenter)
}

// Close saves any open settings screen
func (rs *RootScreen) Close() {
	if rs.chimesScreen != nil {
		rs.closeChimes()
	}
}
