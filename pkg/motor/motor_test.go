package motor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeDriver struct {
	pulses []time.Duration
	err    error
	closed bool
}

func (d *fakeDriver) Pulse(dur time.Duration) error {
	d.pulses = append(d.pulses, dur)
	return d.err
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func TestRunForDuration(t *testing.T) {
	driver := &fakeDriver{}
	c := New(driver)

	c.RunForDuration(50)
	c.RunForDuration(0)
	c.RunForDuration(-10)

	if len(driver.pulses) != 1 || driver.pulses[0] != 50*time.Millisecond {
		t.Errorf("pulses = %v, want [50ms]", driver.pulses)
	}
}

func TestRunForDurationSwallowsDriverErrors(t *testing.T) {
	driver := &fakeDriver{err: errors.New("motor unplugged")}
	c := New(driver)

	// Must not panic or block.
	c.RunForDuration(35)

	if len(driver.pulses) != 1 {
		t.Errorf("pulses = %v, want one attempt", driver.pulses)
	}
}

func TestCloseClosesDriver(t *testing.T) {
	driver := &fakeDriver{}
	if err := New(driver).Close(); err != nil {
		t.Fatal(err)
	}
	if !driver.closed {
		t.Error("driver not closed")
	}
}

func TestOpen(t *testing.T) {
	c, err := Open("log", "")
	if err != nil {
		t.Fatalf("Open(log) returned unexpected error: %v", err)
	}
	c.RunForDuration(10)

	if _, err := Open("piezo", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Open(piezo) error = %v, want %v", err, ErrUnknownDriver)
	}
	if _, err := Open("gpio", ""); err == nil {
		t.Error("Open(gpio) without a path succeeded")
	}
}

func readPin(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading pin: %v", err)
	}
	return string(data)
}

func waitForPin(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if readPin(t, path) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("pin never became %q", want)
}

func TestGPIODriverPulse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value")

	d, err := NewGPIODriver(path)
	if err != nil {
		t.Fatalf("NewGPIODriver() returned unexpected error: %v", err)
	}
	if got := readPin(t, path); got != "0" {
		t.Fatalf("pin = %q after init, want 0", got)
	}

	if err := d.Pulse(200 * time.Millisecond); err != nil {
		t.Fatalf("Pulse() returned unexpected error: %v", err)
	}
	if got := readPin(t, path); got != "1" {
		t.Fatalf("pin = %q during pulse, want 1", got)
	}

	waitForPin(t, path, "0")
}

func TestGPIODriverCloseStopsPulse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value")
	d, err := NewGPIODriver(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Pulse(time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}
	if got := readPin(t, path); got != "0" {
		t.Errorf("pin = %q after Close, want 0", got)
	}
}

func TestNewGPIODriverMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "value")
	if _, err := NewGPIODriver(path); err == nil {
		t.Error("NewGPIODriver() succeeded on a missing directory")
	}
}

func TestNewGPIODriverAcceptsPinDirectory(t *testing.T) {
	dir := t.TempDir()

	d, err := NewGPIODriver(dir)
	if err != nil {
		t.Fatalf("NewGPIODriver(%q) returned unexpected error: %v", dir, err)
	}
	defer d.Close()

	want := filepath.Join(dir, "value")
	if d.Path() != want {
		t.Errorf("Path() = %q, want %q", d.Path(), want)
	}
	if got := readPin(t, want); got != "0" {
		t.Errorf("pin = %q after init, want 0", got)
	}
}

func TestGPIODriverStaleStopKeepsNewPulse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value")
	d, err := NewGPIODriver(path)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := d.Pulse(time.Hour); err != nil {
		t.Fatal(err)
	}
	first := d.pulse
	if err := d.Pulse(time.Hour); err != nil {
		t.Fatal(err)
	}

	// The first pulse's timer firing late must not end the second pulse.
	d.stop(first)
	if got := readPin(t, path); got != "1" {
		t.Fatalf("pin = %q after stale stop, want 1", got)
	}

	d.stop(d.pulse)
	if got := readPin(t, path); got != "0" {
		t.Errorf("pin = %q after current stop, want 0", got)
	}
}
