package motor

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// HapticDriver plays pulses as rumble effects on an SDL haptic device, such
// as a game controller or a phone's vibrator.
type HapticDriver struct {
	haptic *sdl.Haptic
}

// NewHapticDriver opens haptic device index. The SDL haptic subsystem is
// initialised here if the caller has not done it yet.
func NewHapticDriver(index int) (*HapticDriver, error) {
	if sdl.WasInit(sdl.INIT_HAPTIC) == 0 {
		if err := sdl.InitSubSystem(sdl.INIT_HAPTIC); err != nil {
			return nil, fmt.Errorf("SDL_INIT_HAPTIC failed: %v", err)
		}
	}

	n, err := sdl.NumHaptics()
	if err != nil {
		return nil, err
	}
	if index >= n {
		return nil, fmt.Errorf("haptic device %d not found (%d available)", index, n)
	}

	h, err := sdl.HapticOpen(index)
	if err != nil {
		return nil, fmt.Errorf("opening haptic device %d: %w", index, err)
	}

	supported, err := h.RumbleSupported()
	if err != nil || !supported {
		h.Close()
		return nil, fmt.Errorf("haptic device %d does not support rumble", index)
	}
	if err := h.RumbleInit(); err != nil {
		h.Close()
		return nil, fmt.Errorf("initialising rumble: %w", err)
	}

	return &HapticDriver{haptic: h}, nil
}

// Pulse starts a full-strength rumble. SDL stops it on its own after d.
func (h *HapticDriver) Pulse(d time.Duration) error {
	return h.haptic.RumblePlay(1.0, uint32(d/time.Millisecond))
}

func (h *HapticDriver) Close() error {
	h.haptic.RumbleStop()
	h.haptic.Close()
	return nil
}
