package stepper

// Binding connects a stepper to the value it edits. Every field is a plain
// callback; the widget never stores a reference to its owner.
type Binding struct {
	Label       func() string
	CanDecrease func() bool
	CanIncrease func() bool
	Decrease    func()
	Increase    func()
}

// LabelPosition anchors the label inside the space between the two buttons.
type LabelPosition int

const (
	LabelTop LabelPosition = iota
	LabelBottom
)
