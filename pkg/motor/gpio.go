package motor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// GPIODriver drives the motor through a sysfs GPIO value file, e.g.
// /sys/class/gpio/gpio16/value. The pin must already be exported as an output.
type GPIODriver struct {
	path string

	mu    sync.Mutex
	timer *time.Timer
	// pulse counts pulses so a stop scheduled by an earlier pulse can tell
	// it has been superseded.
	pulse uint64
}

// NewGPIODriver checks that the value file is writable and switches the motor
// off. path may be the pin directory (/sys/class/gpio/gpio16), in which case
// its value file is used.
func NewGPIODriver(path string) (*GPIODriver, error) {
	if path == "" {
		return nil, fmt.Errorf("gpio driver needs a value file path")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "value")
	}
	d := &GPIODriver{path: path}
	if err := d.set(false); err != nil {
		return nil, fmt.Errorf("initialising gpio %s: %w", path, err)
	}
	return d, nil
}

// Pulse switches the pin on and schedules it off after d. A pulse that arrives
// while another is running replaces its stop time.
func (g *GPIODriver) Pulse(d time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	g.pulse++
	if err := g.set(true); err != nil {
		return err
	}
	pulse := g.pulse
	g.timer = time.AfterFunc(d, func() { g.stop(pulse) })
	return nil
}

// Path returns the value file the driver writes.
func (g *GPIODriver) Path() string {
	return g.path
}

// stop ends the given pulse unless a newer one has started since.
func (g *GPIODriver) stop(pulse uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if pulse != g.pulse {
		return
	}
	g.timer = nil
	// Nobody is left to report to; a stuck pin is cleared by the next pulse
	// or by Close.
	_ = g.set(false)
}

// Close cancels any running pulse and leaves the motor off.
func (g *GPIODriver) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pulse++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	return g.set(false)
}

func (g *GPIODriver) set(on bool) error {
	value := []byte("0")
	if on {
		value = []byte("1")
	}
	return os.WriteFile(g.path, value, 0644)
}
