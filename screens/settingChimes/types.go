package settingChimes

import (
	"chime-frame/pkg/chimes"
	"chime-frame/widgets/stepper"
)

// Layout constants for a 240x240 display.
const (
	containerMargin = 10
	containerTop    = 50
	rowHeight       = 80
	rowGap          = 10
)

// Row order on screen.
const (
	frequencyRow = iota
	durationRow
	rowCount
)

// SettingChimesScreen shows the chime frequency and buzz duration steppers
type SettingChimesScreen struct {
	model *chimes.Model
	rows  [rowCount]*stepper.Widget
	focus int
}
