package component

// Input is the per-frame input snapshot of the player. Axis values are in
// [-1, 1] (the trigger in [0, 1]); the D-pad fields are press edges, true
// only on the frame the direction became fully pressed.
type Input struct {
	Strafe  float64
	Forward float64
	Rotate  float64
	Trigger float64

	DPadX float64
	DPadY float64

	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// PickupPressed reports the pickup edge (D-pad up).
func (in *Input) PickupPressed() bool { return in != nil && in.Up }

// DropPressed reports the drop edge (D-pad down).
func (in *Input) DropPressed() bool { return in != nil && in.Down }

var InputComponent = NewComponent[Input]()
