package chimes

import (
	"time"

	"chime-frame/pkg/logger"
)

// Next returns the first chime instant strictly after t. Chimes line up with
// the top of the hour; a non-positive interval means once an hour.
func Next(t time.Time, minutes int) time.Time {
	if minutes <= 0 {
		minutes = 60
	}
	step := time.Duration(minutes) * time.Minute

	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	elapsed := t.Sub(hour)
	return hour.Add((elapsed/step + 1) * step)
}

// Ringer buzzes the motor every time the configured chime interval comes
// around.
type Ringer struct {
	store    Store
	actuator Actuator
	next     time.Time
	minutes  int
}

// NewRinger schedules the first chime after now.
func NewRinger(store Store, actuator Actuator, now time.Time) *Ringer {
	r := &Ringer{store: store, actuator: actuator}
	r.schedule(now)
	return r
}

// Tick rings when now has reached the scheduled chime and reports whether it
// did. A frequency change in the store reschedules from now.
func (r *Ringer) Tick(now time.Time) bool {
	if r.store.GetChimesFrequency() != r.minutes {
		r.schedule(now)
		return false
	}
	if now.Before(r.next) {
		return false
	}

	ms := r.store.GetChimesDuration()
	logger.Debug("Chime", "at", now.Format(time.Kitchen), "ms", ms)
	r.actuator.RunForDuration(ms)
	r.schedule(now)
	return true
}

// NextChime returns the instant of the next scheduled chime.
func (r *Ringer) NextChime() time.Time {
	return r.next
}

func (r *Ringer) schedule(now time.Time) {
	r.minutes = r.store.GetChimesFrequency()
	r.next = Next(now, r.minutes)
}
