package component

// CarryState is the pickup controller state.
type CarryState int

const (
	CarryIdle CarryState = iota
	CarryCarrying
)

// Carrier lets an entity pick up and carry one pickup-category body.
type Carrier struct {
	State CarryState
	// Carried is the carried entity (an ecs.Entity), zero when idle.
	Carried uint64

	Offset        float64
	Radius        float64
	SmoothingRate float64
	RotationSpeed float64
	ThrowSpeed    float64
}

var CarrierComponent = NewComponent[Carrier]()
