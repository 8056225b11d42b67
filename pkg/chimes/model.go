package chimes

import (
	"fmt"

	"chime-frame/pkg/logger"
	"chime-frame/pkg/selector"
)

// Store is the part of the settings store the chimes screen needs.
type Store interface {
	GetChimesFrequency() int
	SetChimesFrequency(minutes int)
	GetChimesDuration() int
	SetChimesDuration(ms int)
	Save() error
}

// Actuator runs the vibration motor. Calls return immediately.
type Actuator interface {
	RunForDuration(ms int)
}

// Model backs one open chimes settings screen. Build a new one every time the
// screen opens and Close it when the screen goes away.
type Model struct {
	store    Store
	actuator Actuator

	frequency *selector.Selector[FrequencyOption]
	duration  *selector.Selector[int]

	closed bool
}

// New reads the stored chime settings and positions both selectors on them.
// Nothing is written and the motor does not run until the user steps a
// selector.
func New(store Store, actuator Actuator) (*Model, error) {
	m := &Model{store: store, actuator: actuator}

	freq, err := selector.New(frequencyOptions[:], FrequencyIndex(store.GetChimesFrequency()), FrequencyLabel)
	if err != nil {
		return nil, fmt.Errorf("frequency selector: %w", err)
	}
	freq.OnChange(m.frequencyChanged)
	m.frequency = freq

	dur, err := selector.New(durationOptions[:], DurationIndex(store.GetChimesDuration()), DurationLabel)
	if err != nil {
		return nil, fmt.Errorf("duration selector: %w", err)
	}
	dur.OnChange(m.durationChanged)
	m.duration = dur

	freq.MarkReady()
	dur.MarkReady()

	logger.Debug("Chimes screen opened",
		"frequency", freq.CurrentValue().Minutes,
		"duration", dur.CurrentValue())

	return m, nil
}

// Frequency returns the chime interval selector.
func (m *Model) Frequency() *selector.Selector[FrequencyOption] {
	return m.frequency
}

// Duration returns the buzz duration selector.
func (m *Model) Duration() *selector.Selector[int] {
	return m.duration
}

// Close saves the settings store. Only the first call saves.
func (m *Model) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("saving chime settings: %w", err)
	}
	return nil
}

func (m *Model) frequencyChanged(o FrequencyOption) {
	m.store.SetChimesFrequency(o.Minutes)
}

func (m *Model) durationChanged(ms int) {
	m.actuator.RunForDuration(ms)
	m.store.SetChimesDuration(ms)
}
