package performance

import (
	"runtime"
	"time"
)

// FrameMonitor tracks how long the render loop spends per frame against a
// frame budget. It is meant to be used from the render thread only.
type FrameMonitor struct {
	budget  time.Duration
	update  *Window
	draw    *Window
	total   *Window
	frames  int
	overrun int
	started time.Time
}

// Report is a snapshot of the frame timings.
type Report struct {
	AvgUpdate  time.Duration
	AvgDraw    time.Duration
	AvgFrame   time.Duration
	MaxFrame   time.Duration
	Frames     int
	Overruns   int
	HeapMB     uint64
	Uptime     time.Duration
	OverBudget bool
}

// NewFrameMonitor averages over the last window frames. budget is the time
// one frame may take at the target rate.
func NewFrameMonitor(window int, budget time.Duration) *FrameMonitor {
	return &FrameMonitor{
		budget:  budget,
		update:  NewWindow(window),
		draw:    NewWindow(window),
		total:   NewWindow(window),
		started: time.Now(),
	}
}

// Record adds the timings of one frame.
func (m *FrameMonitor) Record(update, draw time.Duration) {
	m.update.Add(update)
	m.draw.Add(draw)

	frame := update + draw
	m.total.Add(frame)
	m.frames++
	if frame > m.budget {
		m.overrun++
	}
}

// Frames returns how many frames have been recorded.
func (m *FrameMonitor) Frames() int {
	return m.frames
}

// Report summarizes the current window.
func (m *FrameMonitor) Report() Report {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	avg := m.total.Average()
	return Report{
		AvgUpdate:  m.update.Average(),
		AvgDraw:    m.draw.Average(),
		AvgFrame:   avg,
		MaxFrame:   m.total.Max(),
		Frames:     m.frames,
		Overruns:   m.overrun,
		HeapMB:     mem.HeapAlloc / (1024 * 1024),
		Uptime:     time.Since(m.started),
		OverBudget: avg > m.budget,
	}
}
