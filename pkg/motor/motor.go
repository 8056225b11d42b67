package motor

import (
	"errors"
	"fmt"
	"time"

	"chime-frame/pkg/logger"
)

// ErrUnknownDriver is returned by Open for a driver name it does not know.
var ErrUnknownDriver = errors.New("unknown motor driver")

// Driver switches the vibration motor on for a while. Implementations must
// return without waiting for the pulse to finish.
type Driver interface {
	Pulse(d time.Duration) error
	Close() error
}

// Controller is the haptic actuator handed to screens.
type Controller struct {
	driver Driver
}

func New(driver Driver) *Controller {
	return &Controller{driver: driver}
}

// Open picks a driver by name: "log", "gpio" (sysfs value file at gpioPath)
// or "sdl" (first SDL haptic device).
func Open(name, gpioPath string) (*Controller, error) {
	var driver Driver
	switch name {
	case "", "log":
		driver = LogDriver{}
	case "gpio":
		d, err := NewGPIODriver(gpioPath)
		if err != nil {
			return nil, err
		}
		driver = d
	case "sdl":
		d, err := NewHapticDriver(0)
		if err != nil {
			return nil, err
		}
		driver = d
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
	return New(driver), nil
}

// RunForDuration pulses the motor for ms milliseconds. Failures are logged;
// the caller never waits on or hears about them.
func (c *Controller) RunForDuration(ms int) {
	if ms <= 0 {
		return
	}
	if err := c.driver.Pulse(time.Duration(ms) * time.Millisecond); err != nil {
		logger.Warn("Motor pulse failed", "ms", ms, "error", err)
	}
}

func (c *Controller) Close() error {
	return c.driver.Close()
}

// LogDriver only logs pulses. Used on machines without a motor.
type LogDriver struct{}

func (LogDriver) Pulse(d time.Duration) error {
	logger.Info("Buzz", "duration", d)
	return nil
}

func (LogDriver) Close() error {
	return nil
}
