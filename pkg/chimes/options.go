package chimes

import (
	"fmt"
	"slices"

	"chime-frame/pkg/selector"
)

// FrequencyOption is a chime interval in minutes with its display label.
type FrequencyOption struct {
	Minutes int
	Label   string
}

// Coarsest interval first.
var frequencyOptions = [...]FrequencyOption{
	{60, "full hour"},
	{30, "half hour"},
	{20, "20 mins"},
	{15, "15 mins"},
	{10, "ten mins"},
	{5, "five mins"},
	{2, "two mins"},
	{1, "minute"},
}

// Buzz durations in milliseconds, shortest first.
var durationOptions = [...]int{10, 35, 50, 80, 120, 180, 250}

// FrequencyOptions returns a copy of the selectable chime intervals.
func FrequencyOptions() []FrequencyOption {
	return slices.Clone(frequencyOptions[:])
}

// DurationOptions returns a copy of the selectable buzz durations.
func DurationOptions() []int {
	return slices.Clone(durationOptions[:])
}

// FrequencyIndex picks the first interval at or below the stored value, so an
// unknown value rounds toward the finer interval. Values below every option
// fall back to the first one.
func FrequencyIndex(stored int) int {
	return selector.Find(frequencyOptions[:], func(o FrequencyOption) bool {
		return o.Minutes <= stored
	})
}

// DurationIndex picks the first duration at or above the stored value.
func DurationIndex(stored int) int {
	return selector.Find(durationOptions[:], func(ms int) bool {
		return ms >= stored
	})
}

func FrequencyLabel(o FrequencyOption) string {
	return "Every\n" + o.Label
}

func DurationLabel(ms int) string {
	return fmt.Sprintf("buzz for\n%d ms.", ms)
}
