package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vrlocomotion/ecs/system"
)

const (
	stickDeadzone    = 0.2
	mouseSensitivity = 0.15
	padLookSpeed     = 2.5
	keyLookSpeed     = 1.5
)

// Buttons understood by EbitenInput.Button.
const (
	ButtonStart = "Start"
	ButtonBack  = "Back"
)

// EbitenInput reads the first standard gamepad with a keyboard and mouse
// fallback.
type EbitenInput struct {
	lastCursorX, lastCursorY int
	cursorPrimed             bool
	mouseLook                bool
}

var _ system.InputSource = (*EbitenInput)(nil)

func NewEbitenInput(mouseLook bool) *EbitenInput {
	return &EbitenInput{mouseLook: mouseLook}
}

func (in *EbitenInput) gamepad() (ebiten.GamepadID, bool) {
	gamepads := ebiten.AppendGamepadIDs(nil)
	for _, id := range gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

func (in *EbitenInput) Axis(name string) float64 {
	id, hasPad := in.gamepad()

	switch name {
	case system.AxisLeftStickHorizontal:
		if hasPad {
			if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(v) > stickDeadzone {
				return v
			}
		}
		return keyAxis(ebiten.KeyA, ebiten.KeyD)
	case system.AxisLeftStickVertical:
		if hasPad {
			if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical); math.Abs(v) > stickDeadzone {
				return v
			}
		}
		// Stick up is negative.
		return keyAxis(ebiten.KeyW, ebiten.KeyS)
	case system.AxisRightStickHorizontal:
		if hasPad {
			if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(v) > stickDeadzone {
				return v
			}
		}
		return keyAxis(ebiten.KeyQ, ebiten.KeyE)
	case system.AxisRightTrigger:
		v := 0.0
		if hasPad {
			v = ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight)
		}
		if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			v = 1
		}
		return v
	case system.AxisDPadHorizontal:
		if hasPad {
			if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
				return -1
			}
			if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
				return 1
			}
		}
		return keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	case system.AxisDPadVertical:
		if hasPad {
			if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
				return 1
			}
			if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
				return -1
			}
		}
		return keyAxis(ebiten.KeyArrowDown, ebiten.KeyArrowUp)
	}
	return 0
}

func (in *EbitenInput) Button(name string) bool {
	id, hasPad := in.gamepad()
	switch name {
	case ButtonStart:
		return ebiten.IsKeyPressed(ebiten.KeyEnter) ||
			(hasPad && ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight))
	case ButtonBack:
		return ebiten.IsKeyPressed(ebiten.KeyEscape) ||
			(hasPad && ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterLeft))
	}
	return false
}

// Look returns the head rotation of this frame from the right stick, the
// IJKL keys and, when enabled, the mouse.
func (in *EbitenInput) Look() (float64, float64) {
	dyaw := keyAxis(ebiten.KeyJ, ebiten.KeyL) * keyLookSpeed
	dpitch := keyAxis(ebiten.KeyI, ebiten.KeyK) * keyLookSpeed

	if id, ok := in.gamepad(); ok {
		// The right stick's horizontal axis spins carried boxes, so the pad
		// only pitches the head.
		if v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical); math.Abs(v) > stickDeadzone {
			dpitch += v * padLookSpeed
		}
	}

	if in.mouseLook {
		x, y := ebiten.CursorPosition()
		if in.cursorPrimed {
			dyaw += float64(x-in.lastCursorX) * mouseSensitivity
			dpitch += float64(y-in.lastCursorY) * mouseSensitivity
		}
		in.lastCursorX, in.lastCursorY = x, y
		in.cursorPrimed = true
	}

	return dyaw, dpitch
}

// ResetLook forgets the last cursor position so a cursor mode change does not
// read as a head turn.
func (in *EbitenInput) ResetLook() {
	in.cursorPrimed = false
}

func keyAxis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}
