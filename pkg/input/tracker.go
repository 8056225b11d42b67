package input

import "github.com/veandco/go-sdl2/sdl"

// KeyPressTracker turns polled keyboard state into press events: a key that
// stays down across frames counts once.
type KeyPressTracker struct {
	pressed map[sdl.Scancode]bool
}

// NewKeyPressTracker creates a new KeyPressTracker
func NewKeyPressTracker() KeyPressTracker {
	return KeyPressTracker{
		pressed: make(map[sdl.Scancode]bool),
	}
}

// IsPressed reports whether any of scancodes went down since the previous
// call. Every scancode's state is updated, even after a match.
func (kpt *KeyPressTracker) IsPressed(keyState []uint8, scancodes ...sdl.Scancode) bool {
	hit := false
	for _, sc := range scancodes {
		down := int(sc) < len(keyState) && keyState[sc] != 0
		if down && !kpt.pressed[sc] {
			hit = true
		}
		kpt.pressed[sc] = down
	}
	return hit
}

// Pointer is the mouse (or a single touch, which SDL reports as the left
// button) as sampled once per frame.
type Pointer struct {
	X, Y    int32
	Buttons uint32
}

// Sample reads the current pointer state.
func Sample() Pointer {
	x, y, buttons := sdl.GetMouseState()
	return Pointer{X: x, Y: y, Buttons: buttons}
}

// Frame is the keyboard and pointer state read at the start of a frame.
type Frame struct {
	Keys    []uint8
	Pointer Pointer
}

// SampleFrame reads the keyboard and pointer from SDL.
func SampleFrame() Frame {
	return Frame{Keys: sdl.GetKeyboardState(), Pointer: Sample()}
}

// Point returns the pointer position.
func (p Pointer) Point() sdl.Point {
	return sdl.Point{X: p.X, Y: p.Y}
}

// ClickTracker reports a click on the frame a button goes down.
type ClickTracker struct {
	// Keyed by SDL button mask (e.g. sdl.ButtonLMask())
	pressed map[uint32]bool
}

// NewClickTracker creates a new ClickTracker
func NewClickTracker() ClickTracker {
	return ClickTracker{
		pressed: make(map[uint32]bool),
	}
}

// Clicked reports whether the left or right button went down since the
// previous call.
func (ct *ClickTracker) Clicked(p Pointer) bool {
	hit := false
	for _, mask := range []uint32{sdl.ButtonLMask(), sdl.ButtonRMask()} {
		down := p.Buttons&mask != 0
		if down && !ct.pressed[mask] {
			hit = true
		}
		ct.pressed[mask] = down
	}
	return hit
}
