package root

import (
	"errors"
	"time"

	"chime-frame/pkg/chimes"
	"chime-frame/pkg/input"
	"chime-frame/screens/settingChimes"
	"chime-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

// ErrQuit is returned by Update when the user leaves the home view.
var ErrQuit = errors.New("quit requested")

// RootScreen owns the display and switches between the home view and the
// chimes settings screen
type RootScreen struct {
	// SDL2 rendering
	window   *sdl.Window
	renderer *sdl.Renderer
	fonts    *ui.Fonts

	// Collaborators shared by every screen opened from here
	store    chimes.Store
	actuator chimes.Actuator
	ringer   *chimes.Ringer

	// Open settings screen, nil while the home view is shown
	chimesScreen *settingChimes.SettingChimesScreen

	// Input tracking
	sample func() input.Frame
	frame  input.Frame

	// Press state tracking to avoid duplicate calls
	keyTracker   input.KeyPressTracker
	clickTracker input.ClickTracker

	size func() (int32, int32)
	now  func() time.Time
}
