package selector

import (
	"errors"
	"slices"
)

var (
	// ErrNoOptions is returned when a selector is built over an empty list.
	ErrNoOptions = errors.New("selector needs at least one option")
	// ErrIndexOutOfRange is returned when the starting index is outside the list.
	ErrIndexOutOfRange = errors.New("selector index out of range")
)

// State tells whether change handlers are allowed to run yet.
type State int

const (
	// Initializing is the state during construction. Changes update the label
	// and the enablement flags but handlers are not called.
	Initializing State = iota
	// Ready is entered once via MarkReady and never left.
	Ready
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Find returns the first index whose option satisfies match, or 0 when
// nothing does.
func Find[T any](options []T, match func(T) bool) int {
	for i, opt := range options {
		if match(opt) {
			return i
		}
	}
	return 0
}

// Selector tracks which of a fixed, ordered list of options is chosen and
// moves that choice one step at a time, clamped at both ends.
type Selector[T any] struct {
	options []T
	index   int
	state   State
	format  func(T) string

	label       string
	canDecrease bool
	canIncrease bool

	handlers []func(T)
}

// New builds a selector over a copy of options, starting at index. format
// renders the display label; a nil format leaves the label empty.
func New[T any](options []T, index int, format func(T) string) (*Selector[T], error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	if index < 0 || index >= len(options) {
		return nil, ErrIndexOutOfRange
	}

	s := &Selector[T]{
		options: slices.Clone(options),
		index:   index,
		state:   Initializing,
		format:  format,
	}
	s.changed()
	return s, nil
}

// OnChange registers fn to be called with the new value after every
// successful step taken in the Ready state.
func (s *Selector[T]) OnChange(fn func(T)) {
	s.handlers = append(s.handlers, fn)
}

// MarkReady ends construction. Calling it again has no effect.
func (s *Selector[T]) MarkReady() {
	s.state = Ready
}

func (s *Selector[T]) State() State {
	return s.state
}

func (s *Selector[T]) CanDecrease() bool {
	return s.canDecrease
}

func (s *Selector[T]) CanIncrease() bool {
	return s.canIncrease
}

// Decrease moves one step toward the start of the list. At index 0 it does
// nothing.
func (s *Selector[T]) Decrease() {
	if s.index > 0 {
		s.index--
		s.changed()
	}
}

// Increase moves one step toward the end of the list. At the last index it
// does nothing.
func (s *Selector[T]) Increase() {
	if s.index < len(s.options)-1 {
		s.index++
		s.changed()
	}
}

// CurrentValue returns the selected option.
func (s *Selector[T]) CurrentValue() T {
	return s.options[s.index]
}

func (s *Selector[T]) Index() int {
	return s.index
}

func (s *Selector[T]) Len() int {
	return len(s.options)
}

// Label returns the display string for the selected option.
func (s *Selector[T]) Label() string {
	return s.label
}

func (s *Selector[T]) changed() {
	s.canDecrease = s.index > 0
	s.canIncrease = s.index < len(s.options)-1

	value := s.options[s.index]
	if s.format != nil {
		s.label = s.format(value)
	}

	if s.state != Ready {
		return
	}
	for _, fn := range s.handlers {
		fn(value)
	}
}
