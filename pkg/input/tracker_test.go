package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func keyState(down ...sdl.Scancode) []uint8 {
	state := make([]uint8, sdl.NUM_SCANCODES)
	for _, sc := range down {
		state[sc] = 1
	}
	return state
}

func TestKeyPressTrackerCountsHeldKeyOnce(t *testing.T) {
	kpt := NewKeyPressTracker()

	if !kpt.IsPressed(keyState(sdl.SCANCODE_LEFT), sdl.SCANCODE_LEFT) {
		t.Fatal("first frame with key down was not a press")
	}
	if kpt.IsPressed(keyState(sdl.SCANCODE_LEFT), sdl.SCANCODE_LEFT) {
		t.Error("held key reported a second press")
	}
	if kpt.IsPressed(keyState(), sdl.SCANCODE_LEFT) {
		t.Error("release reported a press")
	}
	if !kpt.IsPressed(keyState(sdl.SCANCODE_LEFT), sdl.SCANCODE_LEFT) {
		t.Error("second press after release was missed")
	}
}

func TestKeyPressTrackerUpdatesAllScancodes(t *testing.T) {
	kpt := NewKeyPressTracker()
	both := keyState(sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE)

	if !kpt.IsPressed(both, sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE) {
		t.Fatal("press missed")
	}
	// Space was recorded as down even though Return already matched.
	if kpt.IsPressed(both, sdl.SCANCODE_SPACE) {
		t.Error("space reported as a new press while held")
	}
}

func TestKeyPressTrackerShortState(t *testing.T) {
	kpt := NewKeyPressTracker()
	if kpt.IsPressed(nil, sdl.SCANCODE_ESCAPE) {
		t.Error("nil keyboard state reported a press")
	}
}

func TestClickTracker(t *testing.T) {
	ct := NewClickTracker()
	down := Pointer{X: 10, Y: 20, Buttons: sdl.ButtonLMask()}
	up := Pointer{X: 10, Y: 20}

	if !ct.Clicked(down) {
		t.Fatal("button down was not a click")
	}
	if ct.Clicked(down) {
		t.Error("held button clicked twice")
	}
	if ct.Clicked(up) {
		t.Error("release was a click")
	}
	if !ct.Clicked(Pointer{Buttons: sdl.ButtonRMask()}) {
		t.Error("right button click missed")
	}
}
