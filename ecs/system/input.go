package system

import (
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

// Axis names understood by an InputSource.
const (
	AxisLeftStickHorizontal  = "LeftStickHorizontal"
	AxisLeftStickVertical    = "LeftStickVertical"
	AxisRightStickHorizontal = "RightStickHorizontal"
	AxisRightTrigger         = "RightTrigger"
	AxisDPadHorizontal       = "DPadHorizontal"
	AxisDPadVertical         = "DPadVertical"
)

// InputSource is a level-triggered input device. Axis values are roughly in
// [-1, 1]; Look returns the head rotation delta of the frame in degrees.
type InputSource interface {
	Axis(name string) float64
	Button(name string) bool
	Look() (dyaw, dpitch float64)
}

// InputSystem samples the input source once per frame into every Input
// component and derives D-pad press edges from the previous sample.
type InputSystem struct {
	source InputSource
	lastX  float64
	lastY  float64
	primed bool
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	x := i.source.Axis(AxisDPadHorizontal)
	y := i.source.Axis(AxisDPadVertical)
	if !i.primed {
		// A direction already held when the scene starts is not a press.
		i.lastX, i.lastY = x, y
		i.primed = true
	}

	right := x == 1 && i.lastX != 1
	left := x == -1 && i.lastX != -1
	up := y == 1 && i.lastY != 1
	down := y == -1 && i.lastY != -1
	i.lastX, i.lastY = x, y

	strafe := i.source.Axis(AxisLeftStickHorizontal)
	forward := i.source.Axis(AxisLeftStickVertical)
	rotate := i.source.Axis(AxisRightStickHorizontal)
	trigger := i.source.Axis(AxisRightTrigger)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Strafe = strafe
		input.Forward = forward
		input.Rotate = rotate
		input.Trigger = trigger
		input.DPadX = x
		input.DPadY = y
		input.Up = up
		input.Down = down
		input.Left = left
		input.Right = right
	})
}
