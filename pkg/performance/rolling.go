package performance

import "time"

// Window averages the most recent durations it has been given.
type Window struct {
	samples []time.Duration
	sum     time.Duration
	next    int
	full    bool
}

// NewWindow creates a window over the last size samples. Sizes below one
// are raised to one.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{samples: make([]time.Duration, size)}
}

// Add records d, evicting the oldest sample once the window is full.
func (w *Window) Add(d time.Duration) {
	if w.full {
		w.sum -= w.samples[w.next]
	}
	w.samples[w.next] = d
	w.sum += d

	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.full = true
	}
}

// Len returns how many samples are in the window.
func (w *Window) Len() int {
	if w.full {
		return len(w.samples)
	}
	return w.next
}

// Average returns the mean of the samples, or zero when there are none.
func (w *Window) Average() time.Duration {
	n := w.Len()
	if n == 0 {
		return 0
	}
	return w.sum / time.Duration(n)
}

// Max returns the longest sample in the window.
func (w *Window) Max() time.Duration {
	var longest time.Duration
	for _, d := range w.samples[:w.Len()] {
		if d > longest {
			longest = d
		}
	}
	return longest
}
