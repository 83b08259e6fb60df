package component

// CameraRig is the head pose of the player. Yaw and Pitch are in degrees;
// Pitch is kept in [0, 360) with positive values looking down, so a pitch of
// 30 means 30 degrees below the horizon and 330 means 30 degrees above it.
type CameraRig struct {
	Yaw       float64
	Pitch     float64
	EyeHeight float64
	// LookSpeed scales look deltas from the input source, degrees per unit.
	LookSpeed float64
}

var CameraRigComponent = NewComponent[CameraRig]()

// FadeOverlay is the teleport fade. While CameraEnabled is false the view is
// blacked out; Pending holds the deferred task that turns it back on.
type FadeOverlay struct {
	CameraEnabled bool
	Pending       uint64
}

var FadeOverlayComponent = NewComponent[FadeOverlay]()
